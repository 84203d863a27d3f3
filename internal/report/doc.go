// Package report shapes rule findings into the per-level validation report
// and writes it to its sinks.
//
// A report has one section per applicability level, in a fixed level order,
// each record already enriched with the owning child's identity fields. The
// sinks are plain text, JSON (via the cli formatter), and a SQLite database
// with one findings table per level plus a runs table keyed by a UUIDv7 run
// id, so successive runs over the same return can be compared in place.
package report
