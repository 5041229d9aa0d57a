package main

import (
	"os"

	"github.com/roach88/xunit/internal/cli"
	"github.com/roach88/xunit/internal/runner"
	"github.com/roach88/xunit/internal/selftest"
)

func main() {
	reg := runner.NewRegistry()
	selftest.Register(reg)

	os.Exit(cli.Main(reg, os.Args[1:], os.Stdout, os.Stderr))
}
