package element

import (
	"fmt"

	"github.com/dshills/textdoc/document/format"
)

// Text is a run of characters sharing one character format. Texts live
// inside blocks and never contain other elements.
type Text struct {
	m      *Manager
	id     ElementID
	text   string
	format format.CharFormat
}

// ID returns the text element's identity.
func (t *Text) ID() ElementID { return t.id }

// Kind returns KindText.
func (t *Text) Kind() Kind { return KindText }

func (t *Text) setID(id ElementID) { t.id = id }

func (t *Text) checkParent(parent Element) error {
	if parent.Kind() != KindBlock {
		return fmt.Errorf("%w: text requires a block parent, got %s", ErrWrongParent, parent.Kind())
	}
	return nil
}

// PlainText returns the run's characters.
func (t *Text) PlainText() string { return t.text }

// SetText replaces the run's characters.
func (t *Text) SetText(s string) { t.text = s }

// InsertPlainText splices s into the run at the given offset. Offsets
// past the end append.
func (t *Text) InsertPlainText(offset int, s string) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(t.text) {
		offset = len(t.text)
	}
	t.text = t.text[:offset] + s + t.text[offset:]
}

// RemoveText deletes the characters in [left, right).
func (t *Text) RemoveText(left, right int) error {
	if left < 0 || left > right || right > len(t.text) {
		return fmt.Errorf("%w: remove [%d, %d) in text of length %d",
			ErrOutsideElementBounds, left, right, len(t.text))
	}
	t.text = t.text[:left] + t.text[right:]
	return nil
}

// Split cuts the run at the given offset. The tail moves into a new
// text element inserted directly after this one, carrying a copy of
// the format. Splitting at the end produces an empty tail.
func (t *Text) Split(offset int) (*Text, error) {
	if offset < 0 || offset > len(t.text) {
		return nil, fmt.Errorf("%w: split at %d in text of length %d",
			ErrOutsideElementBounds, offset, len(t.text))
	}
	tail, err := t.m.InsertNewText(t.id, After)
	if err != nil {
		return nil, err
	}
	tail.text = t.text[offset:]
	tail.format = t.format
	t.text = t.text[:offset]
	return tail, nil
}

// TextLength returns the run's length in characters.
func (t *Text) TextLength() int { return len(t.text) }

// PositionInBlock returns the run's offset inside its parent block.
func (t *Text) PositionInBlock() int {
	b, ok := t.m.ParentElement(t.id).(*Block)
	if !ok {
		return 0
	}
	return b.PositionOfChild(t.id)
}

// Start returns the run's first position in document coordinates.
func (t *Text) Start() int {
	b, ok := t.m.ParentElement(t.id).(*Block)
	if !ok {
		return 0
	}
	return b.Position() + t.PositionInBlock()
}

// End returns the position just past the run.
func (t *Text) End() int { return t.Start() + len(t.text) }

// Format returns the run's character format.
func (t *Text) Format() format.CharFormat { return t.format }

// SetFormat replaces the run's character format and reports whether it
// changed.
func (t *Text) SetFormat(cf format.CharFormat) bool {
	if t.format.Equals(cf) {
		return false
	}
	t.format = cf
	return true
}

// MergeFormat folds the set properties of cf into the run's format and
// reports whether anything changed.
func (t *Text) MergeFormat(cf format.CharFormat) bool {
	return t.format.MergeWith(cf)
}
