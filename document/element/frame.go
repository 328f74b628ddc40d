package element

import (
	"fmt"

	"github.com/dshills/textdoc/document/format"
	"github.com/dshills/textdoc/document/tree"
)

// Frame is a grouping container. Frames hold blocks and nested frames
// and contribute no characters of their own; their length is derived
// entirely from their children.
type Frame struct {
	m      *Manager
	id     ElementID
	format format.FrameFormat
}

// ID returns the frame's identity.
func (f *Frame) ID() ElementID { return f.id }

// Kind returns KindFrame.
func (f *Frame) Kind() Kind { return KindFrame }

func (f *Frame) setID(id ElementID) { f.id = id }

func (f *Frame) checkParent(parent Element) error {
	if parent.Kind() != KindFrame {
		return fmt.Errorf("%w: frame requires a frame parent, got %s", ErrWrongParent, parent.Kind())
	}
	return nil
}

// TextLength returns the sum over direct children of length plus one
// separator each, minus the trailing separator. An empty frame has
// length 0.
func (f *Frame) TextLength() int {
	children := f.m.ListAllDirectChildren(f.id)
	if len(children) == 0 {
		return 0
	}
	length := 0
	for _, child := range children {
		length += child.TextLength() + 1
	}
	return length - 1
}

// Start returns the frame's first cursor position, which is the start
// of the first element inside it.
func (f *Frame) Start() int {
	next := f.m.NextElement(f.id)
	if next == nil {
		return 0
	}
	return next.Start()
}

// End returns the position just past the frame's content.
func (f *Frame) End() int {
	return f.Start() + f.TextLength()
}

// FirstCursorPosition is Start under its traditional name.
func (f *Frame) FirstCursorPosition() int { return f.Start() }

// LastCursorPosition is End under its traditional name.
func (f *Frame) LastCursorPosition() int { return f.End() }

// Children returns every descendant of the frame in document order.
func (f *Frame) Children() []Element {
	return f.m.ListAllChildren(f.id)
}

// DirectChildren returns the frame's immediate children in document
// order.
func (f *Frame) DirectChildren() []Element {
	return f.m.ListAllDirectChildren(f.id)
}

// IsRoot reports whether this is the document's root frame.
func (f *Frame) IsRoot() bool { return f.id == tree.Root }

// Format returns the frame's format.
func (f *Frame) Format() format.FrameFormat { return f.format }

// SetFormat replaces the frame's format and reports whether it
// changed.
func (f *Frame) SetFormat(ff format.FrameFormat) bool {
	if f.format.Equals(ff) {
		return false
	}
	f.format = ff
	return true
}

// MergeFormat folds the set properties of ff into the frame's format
// and reports whether anything changed.
func (f *Frame) MergeFormat(ff format.FrameFormat) bool {
	return f.format.MergeWith(ff)
}
