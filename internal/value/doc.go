// Package value provides the tagged value model used by structural equality.
//
// Go values are classified into a small set of kinds:
//
//   - Null: untyped nil and nil pointers, maps, slices, funcs, chans, interfaces
//   - Primitive: booleans, numbers, strings and Symbol tokens
//   - Sequence: slices and arrays (and non-nil pointers to arrays)
//   - Keyed: maps, structs, and non-nil pointers to structs or maps
//   - Reference: funcs, chans, unsafe pointers and pointers to anything else
//
// A View exposes the structure of Sequence and Keyed values without requiring
// the value to be exported, so comparisons can descend into unexported struct
// fields.
//
// Stringify renders values for diagnostics only; it never participates in
// equality.
package value
