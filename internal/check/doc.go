// Package check provides the comparison and failure-raising primitives used
// inside test method bodies.
//
// Every primitive takes the values under test plus a message. When the
// comparison holds the primitive returns normally. When it does not, the
// message and raw operands are logged to the diagnostic logger and the
// primitive panics with a *Failure, which the test runner recovers and
// classifies.
//
// # Equality Strategies
//
//   - DirectEqual: same dynamic type and ==, with no numeric coercion. Maps,
//     slices, pointers, chans and funcs compare by identity. NaN is not equal
//     to itself.
//   - ShallowEqual: DirectEqual, or two sequences of equal length whose
//     elements are DirectEqual, or two keyed structures with the same key set
//     whose values are DirectEqual. Nested structures compare by identity.
//   - DeepEqual: ShallowEqual's algorithm applied recursively. Cyclic
//     structures terminate: a pair of references already under comparison is
//     assumed equal.
//
// # Diagnostic Logging
//
// Failures are logged through a process-wide *slog.Logger (SetLogger). The
// logging flag (SetLogging) is switched off while Throws and ThrowsLike probe
// an operation, so failures used as control flow inside the probe stay quiet.
package check
