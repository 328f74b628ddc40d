// Package document implements an in-memory rich text document model.
//
// A document is an ordered tree of elements: frames group content,
// blocks hold one paragraph each, and text and image elements carry
// the content itself. Editing happens through cursors, which address
// the document by character position with one separator counted
// between adjacent blocks.
//
// The facade wires the subpackages together:
//
//	document/tree     ordered tree with sparse sort keys
//	document/element  the manager and the element kinds
//	document/cursor   position, anchor, selection and edits
//	document/format   character, block, frame and image formats
//	document/signal   synchronous change notification hubs
//
// Documents and cursors are not safe for concurrent use. Callers that
// share a document across goroutines serialize access externally.
package document
