// Package rules is the validation engine: a fixed battery of independent
// rules evaluated against one frozen snapshot.
//
// Every rule is a pure function of the snapshot and the externally supplied
// census constants. Rules never read each other's output and never perform
// I/O; Evaluate cannot fail and always returns a deterministic, sorted
// violation sequence. Because the snapshot is frozen, the battery could be
// evaluated concurrently without locks, but the reference behavior is a
// simple sequential pass; the final sort makes evaluation order
// unobservable either way.
//
// The battery lives in registry.go in declaration order; the shared
// algorithms (UPN check digit, interval overlap, working-day thresholds,
// code sets) have their own files.
package rules
