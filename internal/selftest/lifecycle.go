package selftest

import (
	"errors"

	"github.com/roach88/xunit/internal/check"
)

// LifecycleSuite checks that every method sees a fresh instance with Before
// applied.
type LifecycleSuite struct {
	built  bool
	events []string
}

func newLifecycleSuite() (*LifecycleSuite, error) {
	return &LifecycleSuite{built: true}, nil
}

func (s *LifecycleSuite) Before() {
	s.events = append(s.events, "before")
}

func (s *LifecycleSuite) After() error {
	if len(s.events) == 0 || s.events[0] != "before" {
		return errors.New("before hook did not run first")
	}
	return nil
}

func (s *LifecycleSuite) TestFactoryUsed() {
	check.True(s.built, "instance comes from the factory")
}

func (s *LifecycleSuite) TestFreshInstance() {
	s.events = append(s.events, "body")
	check.Deep(s.events, []string{"before", "body"}, "no state from other methods")
}

func (s *LifecycleSuite) TestReturnsNil() error {
	check.Equal(len(s.events), 1, "before ran once")
	return nil
}

func (s *LifecycleSuite) TestIgnoredNeverRuns() {
	check.Fail("ignored methods must not execute")
}
