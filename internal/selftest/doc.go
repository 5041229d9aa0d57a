// Package selftest holds test classes that exercise the check package
// through the runner. The CLI registers them by default, so a plain
// `xunit run` verifies the harness end to end.
//
// Every class here is expected to pass. Failures are provoked inside
// check.Throws probes, which keeps the diagnostic log quiet.
package selftest
