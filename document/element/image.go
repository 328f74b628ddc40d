package element

import (
	"fmt"

	"github.com/dshills/textdoc/document/format"
)

// ObjectReplacementCharacter stands in for an image in plain text.
const ObjectReplacementCharacter = "￼"

// Image is an atomic inline object. It always occupies exactly one
// document character and cannot be partially edited.
type Image struct {
	m      *Manager
	id     ElementID
	format format.ImageFormat
}

// ID returns the image's identity.
func (img *Image) ID() ElementID { return img.id }

// Kind returns KindImage.
func (img *Image) Kind() Kind { return KindImage }

func (img *Image) setID(id ElementID) { img.id = id }

func (img *Image) checkParent(parent Element) error {
	if parent.Kind() != KindBlock {
		return fmt.Errorf("%w: image requires a block parent, got %s", ErrWrongParent, parent.Kind())
	}
	return nil
}

// PlainText returns the image's single-character stand-in.
func (img *Image) PlainText() string { return " " }

// TextLength is always 1.
func (img *Image) TextLength() int { return 1 }

// PositionInBlock returns the image's offset inside its parent block.
func (img *Image) PositionInBlock() int {
	b, ok := img.m.ParentElement(img.id).(*Block)
	if !ok {
		return 0
	}
	return b.PositionOfChild(img.id)
}

// Start returns the image's position in document coordinates.
func (img *Image) Start() int {
	b, ok := img.m.ParentElement(img.id).(*Block)
	if !ok {
		return 0
	}
	return b.Position() + img.PositionInBlock()
}

// End returns the position just past the image.
func (img *Image) End() int { return img.Start() + 1 }

// Format returns the image's format.
func (img *Image) Format() format.ImageFormat { return img.format }

// SetFormat replaces the image's format and reports whether it
// changed.
func (img *Image) SetFormat(f format.ImageFormat) bool {
	if img.format.Equals(f) {
		return false
	}
	img.format = f
	return true
}

// MergeFormat folds the set properties of f into the image's format
// and reports whether anything changed.
func (img *Image) MergeFormat(f format.ImageFormat) bool {
	return img.format.MergeWith(f)
}
