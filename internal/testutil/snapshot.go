// Package testutil provides helpers for building snapshots by hand in
// tests, without the shredder.
package testutil

import "github.com/careworks/cincensus/internal/model"

// Date parses a YYYY-MM-DD literal into an optional date.
func Date(s string) *model.Date {
	d := model.MustDate(s)
	return &d
}

// Bool returns an optional boolean.
func Bool(b bool) *bool { return &b }

// Int returns an optional integer.
func Int(n int) *int { return &n }

// Freeze freezes a hand-built snapshot and returns it, so fixtures read as
// one expression.
func Freeze(s *model.Snapshot) *model.Snapshot {
	s.Freeze()
	return s
}
