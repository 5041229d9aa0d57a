package selftest

import (
	"math"

	"github.com/roach88/xunit/internal/check"
	"github.com/roach88/xunit/internal/value"
)

// EqualitySuite covers the three equality strategies.
type EqualitySuite struct{}

type point struct {
	X, Y int
}

type node struct {
	Value int
	Next  *node
}

func (s *EqualitySuite) TestDirectPrimitives() {
	check.Equal(1, 1, "same ints")
	check.Equal("a", "a", "same strings")
	check.False(check.DirectEqual(1, int64(1)), "no numeric coercion")
	check.False(check.DirectEqual(math.NaN(), math.NaN()), "NaN is not equal to itself")
	check.True(check.DirectEqual(nil, nil), "nil equals nil")
}

func (s *EqualitySuite) TestDirectIdentity() {
	xs := []int{1, 2}
	check.Equal(xs, xs, "same slice")
	check.False(check.DirectEqual(xs, []int{1, 2}), "distinct slices differ")

	sym := value.NewSymbol("token")
	check.Equal(sym, sym, "same symbol")
	check.False(check.DirectEqual(sym, value.NewSymbol("token")), "symbols compare by identity")
}

func (s *EqualitySuite) TestShallow() {
	check.Shallow([]int{1, 2, 3}, []int{1, 2, 3}, "element-wise")
	check.Shallow(map[string]int{"a": 1, "b": 2}, map[string]int{"b": 2, "a": 1}, "key order is irrelevant")
	check.Shallow(map[string]any{"X": 1, "Y": 2}, point{X: 1, Y: 2}, "maps and structs share keys")

	check.False(check.ShallowEqual([]int{1}, []int{1, 2}), "lengths differ")
	check.False(check.ShallowEqual(map[string]int{"a": 1}, map[string]int{"b": 1}), "key sets differ")
	check.False(check.ShallowEqual([][]int{{1}}, [][]int{{1}}), "nested values compare by identity")
}

func (s *EqualitySuite) TestDeep() {
	check.Deep([][]int{{1}, {2, 3}}, [][]int{{1}, {2, 3}}, "nested slices")
	check.Deep(
		map[string]any{"p": &point{X: 1, Y: 2}, "tags": []string{"a"}},
		map[string]any{"p": &point{X: 1, Y: 2}, "tags": []string{"a"}},
		"nested keyed values",
	)
	check.False(check.DeepEqual([][]int{{1}}, [][]int{{2}}), "leaf differs")
}

func (s *EqualitySuite) TestDeepCycles() {
	a := &node{Value: 1}
	a.Next = a
	b := &node{Value: 1}
	b.Next = b
	check.Deep(a, b, "self-referencing nodes")

	c := &node{Value: 2}
	c.Next = c
	check.False(check.DeepEqual(a, c), "cycle with different payload")
}

func (s *EqualitySuite) TestNilIsNotEmpty() {
	check.False(check.ShallowEqual([]int(nil), []int{}), "nil slice")
	check.False(check.DeepEqual(map[string]int(nil), map[string]int{}), "nil map")
}
