// Package rebuild renders a snapshot back into the return's document tree.
//
// For an unmodified snapshot the output shreds back to an identical
// snapshot. Every level is emitted in ascending identity order, which is
// document order for shredded input, except assessment factors, which are
// always emitted sorted by code. Presence policy is explicit per field:
// always-present elements render with empty content when the value is
// absent, optional elements are omitted.
package rebuild
