package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/roach88/xunit/internal/check"
	"github.com/roach88/xunit/internal/runner"
	"github.com/roach88/xunit/internal/store"
	"github.com/roach88/xunit/internal/testutil"
)

type passSuite struct{}

func (s *passSuite) TestOne()           {}
func (s *passSuite) TestTwo() error     { return nil }
func (s *passSuite) TestSkipped() error { return errors.New("must not run") }

type failSuite struct{}

func (s *failSuite) TestBad()  { check.Equal(1, 2, "numbers") }
func (s *failSuite) TestGood() {}

func passingRegistry() *runner.Registry {
	reg := runner.NewRegistry()
	reg.Register(runner.Define[passSuite]("PassSuite", nil).Ignore("TestSkipped"))
	return reg
}

func mixedRegistry() *runner.Registry {
	reg := passingRegistry()
	reg.Register(runner.Define[failSuite]("FailSuite", nil))
	return reg
}

// cliEnv runs commands against one registry, database and ID sequence from
// an isolated working directory.
type cliEnv struct {
	t   *testing.T
	reg *runner.Registry
	ids *testutil.SequentialIDs
	dir string
	db  string
}

func newCLIEnv(t *testing.T, reg *runner.Registry) *cliEnv {
	t.Helper()
	dir := t.TempDir()
	chdir(t, dir)
	return &cliEnv{
		t:   t,
		reg: reg,
		ids: testutil.NewSequentialIDs("run"),
		dir: dir,
		db:  filepath.Join(dir, "history.db"),
	}
}

// exec runs args with the environment's database and returns stdout, stderr
// and the exit code.
func (e *cliEnv) exec(args ...string) (string, string, int) {
	e.t.Helper()
	args = append(args, "--db", e.db)
	return e.execRaw(args...)
}

// execRaw runs args without adding the database flag.
func (e *cliEnv) execRaw(args ...string) (string, string, int) {
	e.t.Helper()
	var stdout, stderr bytes.Buffer
	opts := &RootOptions{Registry: e.reg, IDs: e.ids}
	code := execute(opts, args, &stdout, &stderr)
	return stdout.String(), stderr.String(), code
}

func (e *cliEnv) store() *store.Store {
	e.t.Helper()
	st, err := store.Open(e.db)
	if err != nil {
		e.t.Fatalf("open store: %v", err)
	}
	e.t.Cleanup(func() { st.Close() })
	return st
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
