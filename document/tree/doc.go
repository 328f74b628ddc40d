// Package tree provides the ordered element tree underlying the document
// model. It is a generic arena: payloads are owned by the model, addressed
// by stable integer ids, and kept in document order through a sparse
// integer sort-key index.
//
// The model maintains three maps with identical key sets (payloads,
// sort keys, and parents) plus the root's self-referential parent entry.
// Document order is ascending sort-key order. Every structural change is
// followed by a full renumbering pass that rewrites the keys to multiples
// of Step, so the index is always valid and the gaps stay usable.
//
// Structural queries (levels, subtree listings, ancestor lookups) are
// derived by scanning the document-order range bounded by level
// comparisons, O(subtree size) per call.
//
// The model is not safe for concurrent use. One writer at a time;
// callers serialize externally.
package tree
