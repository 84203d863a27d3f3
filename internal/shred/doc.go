// Package shred turns one parsed census return into the normalized snapshot.
//
// Extraction is declarative: every entity type has a Spec naming its
// containment path and a projection of fields (sub-path, attribute, or inner
// text, with a target kind). One generic routine executes all specs; the
// three nested scalar lists (disabilities, assessment factors, protection
// plan reviews) are resolved through the shared wrapper-identity join.
//
// Coercion failures are silent: a field that fails its kind is absent in the
// snapshot and left for the rule engine to judge. Only a document that does
// not parse, or whose root is not a Message, is fatal.
package shred
