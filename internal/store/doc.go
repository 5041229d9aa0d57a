// Package store provides SQLite-backed history of test runs.
//
// Every run-all or single-test run can be recorded as a Run: the class
// reports it produced, a logical sequence number, and a digest of the
// canonical JSON form of its reports.
//
// # Ordering
//
// Runs are ordered by seq, a logical counter assigned on write. Wall-clock
// time is never stored. Within a run, classes and results keep the order
// the runner produced them in.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Results cascade with their run
package store
