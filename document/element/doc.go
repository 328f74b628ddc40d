// Package element implements the document's content model: the
// Manager that owns the ordered element tree, and the Frame, Block,
// Text and Image handles that operate on it.
//
// Structure is validated before mutation. Blocks and frames live under
// frames; texts and images live under blocks. The root frame (id 0)
// always exists and a cleared document collapses back to one frame,
// one block, one empty text element.
//
// Position accounting is block based. Each block contributes its text
// length plus one separator character; the last block drops the
// trailing separator. Frames add structure but no characters of their
// own.
package element
