package selftest

import "github.com/roach88/xunit/internal/runner"

// Classes returns fresh descriptors for every self-test class.
func Classes() []*runner.Class {
	return []*runner.Class{
		runner.Define[EqualitySuite]("EqualitySuite", nil),
		runner.Define[AssertionSuite]("AssertionSuite", nil),
		runner.Define[ThrowsSuite]("ThrowsSuite", nil),
		runner.Define[LifecycleSuite]("LifecycleSuite", newLifecycleSuite).
			Ignore("TestIgnoredNeverRuns"),
		runner.Define[StringifySuite]("StringifySuite", nil),
	}
}

// Register adds every self-test class to reg.
func Register(reg *runner.Registry) {
	for _, c := range Classes() {
		reg.Register(c)
	}
}
