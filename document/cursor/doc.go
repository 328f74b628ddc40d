// Package cursor provides the editing handle over a document. A
// cursor pairs a position with an anchor; every structural edit, text
// insertion, removal and formatting change goes through it.
//
// Positions count document characters, with one separator between
// adjacent blocks. Both position and anchor are clamped to the
// document on every read, so a cursor left past the end after an edit
// elsewhere degrades to the document end instead of going invalid.
package cursor
