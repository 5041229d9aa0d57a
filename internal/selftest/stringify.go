package selftest

import (
	"github.com/roach88/xunit/internal/check"
	"github.com/roach88/xunit/internal/value"
)

// StringifySuite covers the rendering of operands in failure messages.
type StringifySuite struct{}

func (s *StringifySuite) TestStrings() {
	check.Equal(value.Stringify("a<b>"), `"a<b>"`, "quoted without HTML escaping")
	check.Equal(value.Stringify(`say "hi"`), `"say \"hi\""`, "inner quotes escaped")
}

func (s *StringifySuite) TestSymbols() {
	check.Equal(value.Stringify(value.NewSymbol("id")), "Symbol(id)", "described symbol")
	check.Equal(value.Stringify(value.AnonymousSymbol()), "Symbol()", "anonymous symbol")
}

func (s *StringifySuite) TestOthers() {
	check.Equal(value.Stringify(nil), "nil", "nil")
	check.Equal(value.Stringify(42), "42", "int")
	check.Equal(value.Stringify([]int{1, 2}), "[1 2]", "slice")
}
