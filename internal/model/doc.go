// Package model defines the normalized snapshot of one CIN census return.
//
// This package contains type definitions and the parent-identity index only.
// All other internal packages import model; model imports nothing internal.
// This keeps the snapshot the foundational layer with no circular
// dependencies.
//
// Key design constraints:
//   - The Snapshot is built once by the shredder and never mutated after
//     Freeze; both the rule engine and the rebuilder read it concurrently
//     without locking.
//   - Every entity carries the synthetic identity its source element was
//     assigned in document order, so ascending identity IS document order.
//   - Absent values are represented structurally (nil pointers), never as
//     sentinel dates or magic numbers.
package model
