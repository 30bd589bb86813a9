// Package model defines the resume document graph shared by the store, the
// persistence adapter and every projection. A Document is a plain value: list
// sections are slices of entries, each entry carrying an identifier that is
// assigned once at creation (or backfilled on load) and never reassigned.
// Mutation helpers live in pkg/store; the types here only know how to copy
// themselves with one field replaced (`WithField`) so that copy-on-write can
// be enforced in a single place. Field names match the persisted JSON keys,
// which keeps the editor, the persisted payload and the error messages
// aligned on one vocabulary.
package model
