package element

import (
	"fmt"
	"strings"

	"github.com/dshills/textdoc/document/format"
)

// Block is one paragraph of content. Blocks hold an ordered run of
// text and image children and contribute one separator character to
// the document after their content, except for the last block.
type Block struct {
	m      *Manager
	id     ElementID
	format format.BlockFormat
}

// ID returns the block's identity.
func (b *Block) ID() ElementID { return b.id }

// Kind returns KindBlock.
func (b *Block) Kind() Kind { return KindBlock }

func (b *Block) setID(id ElementID) { b.id = id }

func (b *Block) checkParent(parent Element) error {
	if parent.Kind() != KindFrame {
		return fmt.Errorf("%w: block requires a frame parent, got %s", ErrWrongParent, parent.Kind())
	}
	return nil
}

// ============================================================================
// Geometry
// ============================================================================

// Position returns the block's first cursor position in document
// coordinates: the sum over preceding blocks of length plus one
// separator. Frames are transparent to the count.
func (b *Block) Position() int {
	pos := 0
	for _, blk := range b.m.BlockList() {
		if blk.id == b.id {
			break
		}
		pos += blk.TextLength() + 1
	}
	return pos
}

// BlockNumber returns the block's zero-based rank among all blocks.
func (b *Block) BlockNumber() int {
	n := 0
	for _, blk := range b.m.BlockList() {
		if blk.id == b.id {
			return n
		}
		n++
	}
	return -1
}

// TextLength returns the sum of the children's lengths. The separator
// is not included; it belongs to the document-level count.
func (b *Block) TextLength() int {
	length := 0
	for _, child := range b.Children() {
		length += child.TextLength()
	}
	return length
}

// Start returns the block's first cursor position.
func (b *Block) Start() int { return b.Position() }

// End returns the block's last cursor position.
func (b *Block) End() int { return b.Position() + b.TextLength() }

// Children returns the block's children in document order.
func (b *Block) Children() []Element {
	return b.m.ListAllChildren(b.id)
}

// FirstChild returns the block's first child, or nil for a block with
// no children.
func (b *Block) FirstChild() Element {
	children := b.Children()
	if len(children) == 0 {
		return nil
	}
	return children[0]
}

// ConvertPositionFromDocument translates a document position into an
// offset inside this block.
func (b *Block) ConvertPositionFromDocument(position int) int {
	return position - b.Position()
}

// ConvertPositionFromBlockToChild translates a block offset into an
// offset inside the child that contains it. Offset 0 always maps to
// the start of the first child; an offset on the boundary between two
// children maps to the end of the earlier one.
func (b *Block) ConvertPositionFromBlockToChild(posInBlock int) int {
	pos := 0
	for _, child := range b.Children() {
		if posInBlock == 0 {
			return 0
		}
		end := pos + child.TextLength()
		if posInBlock >= pos && posInBlock <= end {
			return posInBlock - pos
		}
		pos = end
	}
	return pos
}

// findElement returns the child containing the block offset, resolving
// boundaries to the earlier child, or nil when the offset is past the
// block's content.
func (b *Block) findElement(posInBlock int) Element {
	pos := 0
	for _, child := range b.Children() {
		if posInBlock == 0 {
			return child
		}
		end := pos + child.TextLength()
		if posInBlock >= pos && posInBlock <= end {
			return child
		}
		pos = end
	}
	return nil
}

// PositionOfChild returns the block offset at which the given child
// starts.
func (b *Block) PositionOfChild(id ElementID) int {
	pos := 0
	for _, child := range b.Children() {
		if child.ID() == id {
			return pos
		}
		pos += child.TextLength()
	}
	return pos
}

// ============================================================================
// Content
// ============================================================================

// PlainText returns the block's content with images rendered as a
// single placeholder character.
func (b *Block) PlainText() string {
	var sb strings.Builder
	for _, child := range b.Children() {
		switch c := child.(type) {
		case *Text:
			sb.WriteString(c.PlainText())
		case *Image:
			sb.WriteString(c.PlainText())
		}
	}
	return sb.String()
}

// PlainTextBetweenPositions returns the content between two block
// offsets, both clamped to the block's length.
func (b *Block) PlainTextBetweenPositions(left, right int) string {
	text := b.PlainText()
	if left < 0 {
		left = 0
	}
	if right > len(text) {
		right = len(text)
	}
	if left > right {
		return ""
	}
	return text[left:right]
}

// InsertPlainText splices text at the given block offset. Inserting at
// an offset inside or at the edge of a text child splices into that
// child; inserting at an image boundary creates a new text element
// after the image, seeded with the block's leading character format.
func (b *Block) InsertPlainText(text string, posInBlock int) error {
	el := b.findElement(posInBlock)
	if el == nil {
		return fmt.Errorf("%w: offset %d in block %d", ErrOutsideElementBounds, posInBlock, b.id)
	}
	switch child := el.(type) {
	case *Text:
		child.InsertPlainText(b.ConvertPositionFromBlockToChild(posInBlock), text)
	case *Image:
		nt, err := b.insertNewTextElement(posInBlock)
		if err != nil {
			return err
		}
		nt.SetText(text)
		nt.SetFormat(b.CharFormat())
	}
	return nil
}

// insertNewTextElement makes room for a fresh text element at the
// given block offset, splitting an existing text child when the offset
// falls inside one.
func (b *Block) insertNewTextElement(posInBlock int) (*Text, error) {
	el := b.findElement(posInBlock)
	if el == nil {
		return nil, fmt.Errorf("%w: offset %d in block %d", ErrOutsideElementBounds, posInBlock, b.id)
	}
	switch child := el.(type) {
	case *Text:
		if posInBlock != child.PositionInBlock()+child.TextLength() {
			if _, err := child.Split(b.ConvertPositionFromBlockToChild(posInBlock)); err != nil {
				return nil, err
			}
		}
		return b.m.InsertNewText(child.ID(), After)
	case *Image:
		return b.m.InsertNewText(child.ID(), After)
	}
	return nil, fmt.Errorf("%w: unexpected child kind %s", ErrUnknown, el.Kind())
}

// SetPlainText replaces the block's whole content with text.
func (b *Block) SetPlainText(text string) error {
	if err := b.Clear(); err != nil {
		return err
	}
	return b.InsertPlainText(text, 0)
}

// Clear removes every child and leaves the block with one empty text
// element.
func (b *Block) Clear() error {
	var ids []ElementID
	for _, child := range b.Children() {
		ids = append(ids, child.ID())
	}
	b.m.Remove(ids)
	_, err := b.m.InsertNewText(b.id, AsChild)
	return err
}

// RemoveBetweenPositions deletes the content between two block
// offsets. It returns the resulting cursor position in document
// coordinates and the number of characters removed. Partially covered
// text children are trimmed; images are removed only when wholly
// covered. Adjacent text children left with equal formats are merged.
func (b *Block) RemoveBetweenPositions(posA, posB int) (newPosition, removed int, err error) {
	left, right := posA, posB
	if left > right {
		left, right = right, left
	}
	leftEl := b.findElement(left)
	rightEl := b.findElement(right)
	if leftEl == nil || rightEl == nil {
		return 0, 0, fmt.Errorf("%w: remove [%d, %d) in block %d", ErrOutsideElementBounds, left, right, b.id)
	}
	if leftEl.ID() == rightEl.ID() {
		switch child := leftEl.(type) {
		case *Text:
			if err := child.RemoveText(
				b.ConvertPositionFromBlockToChild(left),
				b.ConvertPositionFromBlockToChild(right),
			); err != nil {
				return 0, 0, err
			}
		case *Image:
			// An image boundary pair resolving to the same child
			// covers no removable characters.
			return b.Position() + left, 0, nil
		}
	} else {
		// Children strictly between the edges are removed whole.
		// Collect them before touching either edge so the walk still
		// sees both boundary children.
		var doomed []ElementID
		collecting := false
		for _, child := range b.Children() {
			if child.ID() == leftEl.ID() {
				collecting = true
				continue
			}
			if child.ID() == rightEl.ID() {
				break
			}
			if collecting {
				doomed = append(doomed, child.ID())
			}
		}
		// Trim the right element's head first so the offsets computed
		// against the untouched left side stay valid.
		switch child := rightEl.(type) {
		case *Text:
			if err := child.RemoveText(0, b.ConvertPositionFromBlockToChild(right)); err != nil {
				return 0, 0, err
			}
		case *Image:
			// The right bound resolved onto the image, so the range
			// runs through its end and it is wholly covered.
			doomed = append(doomed, child.ID())
		}
		switch child := leftEl.(type) {
		case *Text:
			if err := child.RemoveText(b.ConvertPositionFromBlockToChild(left), child.TextLength()); err != nil {
				return 0, 0, err
			}
		case *Image:
			// Atomic; removed only when the range starts at or before
			// its own start. Otherwise the boundary resolved past it
			// and there is nothing to trim.
			if b.ConvertPositionFromBlockToChild(left) == 0 {
				doomed = append(doomed, child.ID())
			}
		}
		b.m.Remove(doomed)
	}
	b.analyzeForMerges()
	return b.Position() + left, right - left, nil
}

// ============================================================================
// Structure
// ============================================================================

// Split cuts the block at the given offset. A new block is inserted
// directly after this one and the children from the cut onward move
// into it. The cut child itself is split when the offset falls inside
// it.
func (b *Block) Split(posInBlock int) (*Block, error) {
	newBlock, err := b.m.InsertNewBlock(b.id, After)
	if err != nil {
		return nil, err
	}
	el := b.findElement(posInBlock)
	if el == nil {
		return nil, fmt.Errorf("%w: offset %d in block %d", ErrOutsideElementBounds, posInBlock, b.id)
	}
	var splitPoint Element
	switch child := el.(type) {
	case *Text:
		tail, err := child.Split(b.ConvertPositionFromBlockToChild(posInBlock))
		if err != nil {
			return nil, err
		}
		splitPoint = tail
	case *Image:
		nt, err := b.m.InsertNewText(child.ID(), After)
		if err != nil {
			return nil, err
		}
		splitPoint = nt
	}
	children := b.Children()
	from := -1
	for i, child := range children {
		if child.ID() == splitPoint.ID() {
			from = i
			break
		}
	}
	if from < 0 {
		return nil, fmt.Errorf("%w: split point vanished", ErrUnknown)
	}
	// Reverse order keeps document order intact: each move lands the
	// element directly after its new parent.
	for i := len(children) - 1; i >= from; i-- {
		if err := b.m.model.MoveWhileChangingParent(children[i].ID(), newBlock.ID()); err != nil {
			return nil, err
		}
	}
	return newBlock, nil
}

// MergeWith appends other's children to this block and removes other.
func (b *Block) MergeWith(other *Block) error {
	children := append(b.Children(), other.Children()...)
	for i := len(children) - 1; i >= 0; i-- {
		if err := b.m.model.MoveWhileChangingParent(children[i].ID(), b.id); err != nil {
			return err
		}
	}
	b.m.Remove([]ElementID{other.ID()})
	b.analyzeForMerges()
	return nil
}

// analyzeForMerges coalesces adjacent text children whose formats are
// equal, restarting the scan after each merge.
func (b *Block) analyzeForMerges() {
	for {
		merged := false
		children := b.Children()
		for i := 0; i+1 < len(children); i++ {
			t1, ok1 := children[i].(*Text)
			t2, ok2 := children[i+1].(*Text)
			if !ok1 || !ok2 {
				continue
			}
			if t1.Format().Equals(t2.Format()) {
				t1.SetText(t1.PlainText() + t2.PlainText())
				b.m.Remove([]ElementID{t2.ID()})
				merged = true
				break
			}
		}
		if !merged {
			return
		}
	}
}

// ============================================================================
// Formatting
// ============================================================================

// Format returns the block's format.
func (b *Block) Format() format.BlockFormat { return b.format }

// SetFormat replaces the block's format and reports whether it
// changed.
func (b *Block) SetFormat(bf format.BlockFormat) bool {
	if b.format.Equals(bf) {
		return false
	}
	b.format = bf
	return true
}

// MergeFormat folds the set properties of bf into the block's format
// and reports whether anything changed.
func (b *Block) MergeFormat(bf format.BlockFormat) bool {
	return b.format.MergeWith(bf)
}

// CharFormat returns the character format in effect at the start of
// the block: the first text child's format, or the zero format when
// the block starts with an image.
func (b *Block) CharFormat() format.CharFormat {
	if t, ok := b.FirstChild().(*Text); ok {
		return t.Format()
	}
	return format.CharFormat{}
}

// CharFormatAt returns the character format at a block offset. Only
// offset 0 resolves today, and only onto a leading text child.
func (b *Block) CharFormatAt(posInBlock int) (format.CharFormat, bool) {
	if posInBlock != 0 {
		return format.CharFormat{}, false
	}
	t, ok := b.FirstChild().(*Text)
	if !ok {
		return format.CharFormat{}, false
	}
	return t.Format(), true
}

// SetCharFormat applies cf to every text child and reports whether any
// of them changed.
func (b *Block) SetCharFormat(cf format.CharFormat) bool {
	changed := false
	for _, child := range b.Children() {
		if t, ok := child.(*Text); ok {
			if t.SetFormat(cf) {
				changed = true
			}
		}
	}
	return changed
}
