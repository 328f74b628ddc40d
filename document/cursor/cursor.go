package cursor

import (
	"fmt"
	"strings"

	"github.com/dshills/textdoc/document/element"
	"github.com/dshills/textdoc/document/format"
	"github.com/dshills/textdoc/document/tree"
)

// MoveMode controls what happens to the anchor when the position
// moves.
type MoveMode uint8

const (
	// MoveAnchor moves the anchor together with the position,
	// collapsing any selection.
	MoveAnchor MoveMode = iota

	// KeepAnchor leaves the anchor in place, extending or shrinking
	// the selection.
	KeepAnchor
)

// MoveOperation names a cursor motion. Only character and block
// granularity motions are supported; word and visual-line motions
// would need layout knowledge the model does not have.
type MoveOperation uint8

const (
	NoMove MoveOperation = iota
	Start
	StartOfBlock
	PreviousCharacter
	Left
	End
	EndOfBlock
	NextCharacter
	Right
)

// Cursor is a position and an anchor into one document. When the two
// differ, the span between them is the selection. Both are stored raw
// and clamped to the document bounds on every read, so a cursor stays
// valid across edits made through other cursors.
type Cursor struct {
	m        *element.Manager
	position int
	anchor   int
}

// New returns a cursor at the start of the document.
func New(m *element.Manager) *Cursor {
	return &Cursor{m: m}
}

// clamp bounds a raw position to the document.
func (c *Cursor) clamp(position int) int {
	if position < 0 {
		return 0
	}
	if end := c.m.RootFrame().End(); position > end {
		return end
	}
	return position
}

// Position returns the cursor position, clamped to the document.
func (c *Cursor) Position() int { return c.clamp(c.position) }

// AnchorPosition returns the anchor, clamped to the document.
func (c *Cursor) AnchorPosition() int { return c.clamp(c.anchor) }

// HasSelection reports whether position and anchor differ.
func (c *Cursor) HasSelection() bool { return c.Position() != c.AnchorPosition() }

// SetPosition moves the cursor, clamping to the document. MoveAnchor
// drags the anchor along; KeepAnchor extends the selection.
func (c *Cursor) SetPosition(position int, mode MoveMode) {
	position = c.clamp(position)
	c.position = position
	if mode == MoveAnchor {
		c.anchor = position
	}
}

// MovePosition applies a navigation operation.
func (c *Cursor) MovePosition(op MoveOperation, mode MoveMode) {
	switch op {
	case NoMove:
	case Start:
		c.SetPosition(0, mode)
	case StartOfBlock:
		c.SetPosition(c.CurrentBlock().Start(), mode)
	case PreviousCharacter, Left:
		c.SetPosition(c.Position()-1, mode)
	case End:
		c.SetPosition(c.m.RootFrame().End(), mode)
	case EndOfBlock:
		c.SetPosition(c.CurrentBlock().End(), mode)
	case NextCharacter, Right:
		c.SetPosition(c.Position()+1, mode)
	}
}

// CurrentBlock returns the block under the cursor position.
func (c *Cursor) CurrentBlock() *element.Block {
	return c.blockAt(c.Position())
}

// CurrentFrame returns the innermost frame under the cursor position,
// the root frame when no nested frame contains it.
func (c *Cursor) CurrentFrame() *element.Frame {
	if f := c.m.FindFrame(c.Position()); f != nil {
		return f
	}
	return c.m.RootFrame()
}

func (c *Cursor) blockAt(position int) *element.Block {
	if b := c.m.FindBlock(position); b != nil {
		return b
	}
	return c.m.LastBlock()
}

func (c *Cursor) ordered() (left, right int) {
	p, a := c.Position(), c.AnchorPosition()
	if p <= a {
		return p, a
	}
	return a, p
}

// ============================================================================
// Editing
// ============================================================================

// InsertPlainText inserts text at the cursor, replacing the selection
// if one exists. Newlines split blocks, so inserting n lines leaves
// n-1 new blocks behind. It returns the document positions at which
// the inserted run starts and ends, and leaves the cursor collapsed at
// the end.
func (c *Cursor) InsertPlainText(text string) (start, end int, err error) {
	left, right := c.ordered()

	newPosition := left
	removed := 0
	if left != right {
		newPosition, removed, err = c.removeBetween(left, right, false)
		if err != nil {
			return 0, 0, err
		}
	}
	start = newPosition

	block := c.blockAt(newPosition)
	if block == nil {
		return 0, 0, fmt.Errorf("%w: no block at %d", element.ErrUnknown, newPosition)
	}

	lines := strings.Split(text, "\n")
	count := len(lines)
	var tail *element.Block

	newPos := newPosition
	for i, line := range lines {
		switch {
		case i == 0:
			posInBlock := block.ConvertPositionFromDocument(newPos)
			if count > 1 {
				tail, err = block.Split(posInBlock)
				if err != nil {
					return 0, 0, err
				}
				newPos++
			}
			if err := block.InsertPlainText(line, posInBlock); err != nil {
				return 0, 0, err
			}
		case i == count-1:
			if err := tail.InsertPlainText(line, 0); err != nil {
				return 0, 0, err
			}
		default:
			block, err = c.m.InsertNewBlock(block.ID(), element.After)
			if err != nil {
				return 0, 0, err
			}
			if err := block.SetPlainText(line); err != nil {
				return 0, 0, err
			}
			newPos++
		}
		newPos += len(line)
	}

	c.m.NotifyTextChanged(start, removed, len(text))
	if count == 1 {
		c.m.NotifyElementChanged(block, element.ChildrenChanged)
	} else {
		c.m.NotifyElementChanged(c.parentOrRoot(block.ID()), element.ChildrenChanged)
	}

	c.SetPosition(newPos, MoveAnchor)
	return start, newPos, nil
}

// InsertBlock splits the current block at the cursor, replacing the
// selection if one exists, and returns the block that now starts at
// the cursor.
func (c *Cursor) InsertBlock() (*element.Block, error) {
	left, right := c.ordered()

	newPosition := left
	removed := 0
	if left != right {
		var err error
		newPosition, removed, err = c.removeBetween(left, right, false)
		if err != nil {
			return nil, err
		}
	}

	oldBlock := c.blockAt(newPosition)
	if oldBlock == nil {
		return nil, fmt.Errorf("%w: no block at %d", element.ErrElementNotFound, newPosition)
	}
	newBlock, err := oldBlock.Split(oldBlock.ConvertPositionFromDocument(newPosition))
	if err != nil {
		return nil, err
	}
	if len(newBlock.Children()) == 0 {
		if _, err := c.m.InsertNewText(newBlock.ID(), element.AsChild); err != nil {
			return nil, err
		}
	}

	c.SetPosition(newPosition+1, MoveAnchor)

	c.m.NotifyTextChanged(newPosition, removed, 1)
	c.m.NotifyElementChanged(c.parentOrRoot(oldBlock.ID()), element.ChildrenChanged)
	return newBlock, nil
}

// InsertFrame inserts a new frame at the cursor, replacing the
// selection if one exists. The current block splits at the cursor and
// the frame, holding one empty block, lands between the halves. The
// cursor ends up inside the frame.
func (c *Cursor) InsertFrame() (*element.Frame, error) {
	left, right := c.ordered()

	newPosition := left
	removed := 0
	if left != right {
		var err error
		newPosition, removed, err = c.removeBetween(left, right, false)
		if err != nil {
			return nil, err
		}
	}

	oldBlock := c.blockAt(newPosition)
	if oldBlock == nil {
		return nil, fmt.Errorf("%w: no block at %d", element.ErrElementNotFound, newPosition)
	}
	newBlock, err := oldBlock.Split(oldBlock.ConvertPositionFromDocument(newPosition))
	if err != nil {
		return nil, err
	}
	if len(newBlock.Children()) == 0 {
		if _, err := c.m.InsertNewText(newBlock.ID(), element.AsChild); err != nil {
			return nil, err
		}
	}

	frame, err := c.m.InsertNewFrame(oldBlock.ID(), element.After)
	if err != nil {
		return nil, err
	}
	block, err := c.m.InsertNewBlock(frame.ID(), element.AsChild)
	if err != nil {
		return nil, err
	}
	if _, err := c.m.InsertNewText(block.ID(), element.AsChild); err != nil {
		return nil, err
	}

	c.SetPosition(block.Position(), MoveAnchor)

	c.m.NotifyTextChanged(newPosition, removed, 1)
	c.m.NotifyElementChanged(c.parentOrRoot(frame.ID()), element.ChildrenChanged)
	return frame, nil
}

// Remove deletes the selection. Blocks partially covered are trimmed
// and the outer blocks merge; nested frames covered only in part are
// removed whole. It returns the resulting cursor position and the
// number of characters removed.
func (c *Cursor) Remove() (newPosition, removed int, err error) {
	return c.removeBetween(c.Position(), c.AnchorPosition(), true)
}

// removeBetween is Remove over an explicit span. Structural edits used
// as a sub-step of an insert pass emitSignals false so the caller can
// report one combined change instead.
func (c *Cursor) removeBetween(position, anchor int, emitSignals bool) (int, int, error) {
	left, right := position, anchor
	if left > right {
		left, right = right, left
	}

	topBlock := c.m.FindBlock(left)
	bottomBlock := c.m.FindBlock(right)
	if topBlock == nil || bottomBlock == nil {
		return 0, 0, fmt.Errorf("%w: span [%d, %d)", element.ErrElementNotFound, left, right)
	}

	leftIn := topBlock.ConvertPositionFromDocument(left)
	rightIn := bottomBlock.ConvertPositionFromDocument(right)

	if topBlock.ID() == bottomBlock.ID() {
		newPos, removed, err := topBlock.RemoveBetweenPositions(leftIn, rightIn)
		if err != nil {
			return 0, 0, err
		}
		c.SetPosition(newPos, MoveAnchor)
		if emitSignals {
			c.m.NotifyTextChanged(newPos, removed, 0)
			c.m.NotifyElementChanged(topBlock, element.ChildrenChanged)
		}
		return newPos, removed, nil
	}

	topLevel := c.m.Level(topBlock.ID())
	bottomLevel := c.m.Level(bottomBlock.ID())
	minLevel := topLevel
	if bottomLevel < minLevel {
		minLevel = bottomLevel
	}

	between := c.elementsBetween(topBlock.ID(), bottomBlock.ID())

	hasShallower := false
	for _, el := range between {
		if c.m.Level(el.ID()) < minLevel {
			hasShallower = true
			break
		}
	}

	var newPos, removed int
	var signalTarget element.Element

	switch {
	case hasShallower:
		// An element shallower than both blocks sits inside the span,
		// so the span crosses out of a shared container. The whole
		// nearest common ancestor goes away.
		ancestor, err := c.m.CommonAncestor(topBlock.ID(), bottomBlock.ID())
		if err != nil {
			return 0, 0, err
		}
		removed = ancestor.TextLength()
		if prev := c.m.PreviousElement(ancestor.ID()); prev != nil {
			newPos = prev.End()
		} else {
			newPos = 0
		}
		signalTarget = c.parentOrRoot(ancestor.ID())
		c.m.Remove([]element.ElementID{ancestor.ID()})
		if ancestor.ID() == tree.Root {
			signalTarget = c.m.RootFrame()
		}

	case topLevel > bottomLevel:
		// The top block is nested deeper than the bottom one. The
		// subtree holding it is removed whole, down to the ancestor
		// that is a sibling of the bottom block.
		sibling, err := c.m.SiblingAncestor(topBlock.ID(), bottomBlock.ID())
		if err != nil {
			return 0, 0, err
		}
		removed = sibling.TextLength()
		if prev := c.m.PreviousElement(sibling.ID()); prev != nil {
			newPos = prev.End()
		} else {
			newPos = 0
		}
		signalTarget = c.parentOrRoot(bottomBlock.ID())

		doomed, counted := c.partitionBetween(between, sibling.ID(), true)
		c.m.Remove([]element.ElementID{sibling.ID()})
		removed += counted

		trimmed, err := c.trimHead(bottomBlock, rightIn)
		if err != nil {
			return 0, 0, err
		}
		removed += trimmed
		c.m.Remove(doomed)

	case topLevel < bottomLevel:
		// Mirror case: the bottom block is nested deeper. Its whole
		// subtree is removed, down to the ancestor that is a sibling
		// of the top block, and the top block keeps its head.
		sibling, err := c.m.SiblingAncestor(bottomBlock.ID(), topBlock.ID())
		if err != nil {
			return 0, 0, err
		}
		signalTarget = c.parentOrRoot(topBlock.ID())

		newPos, removed, err = topBlock.RemoveBetweenPositions(leftIn, topBlock.TextLength())
		if err != nil {
			return 0, 0, err
		}

		doomed, counted := c.partitionBetween(between, sibling.ID(), true)
		removed += counted
		removed += sibling.TextLength()
		c.m.Remove(doomed)
		c.m.Remove([]element.ElementID{sibling.ID()})

	default:
		// Same depth: trim both ends, drop everything in between and
		// merge the two remaining blocks into one.
		signalTarget = c.parentOrRoot(topBlock.ID())

		var err error
		newPos, removed, err = topBlock.RemoveBetweenPositions(leftIn, topBlock.TextLength())
		if err != nil {
			return 0, 0, err
		}

		doomed, counted := c.partitionBetween(between, 0, true)
		removed += counted
		c.m.Remove(doomed)

		trimmed, err := c.trimHead(bottomBlock, rightIn)
		if err != nil {
			return 0, 0, err
		}
		removed += trimmed

		if err := topBlock.MergeWith(bottomBlock); err != nil {
			return 0, 0, err
		}
		removed++
	}

	c.m.FillEmptyFrames()
	c.m.Renumber()

	c.SetPosition(newPos, MoveAnchor)

	if emitSignals {
		c.m.NotifyTextChanged(newPos, removed, 0)
		c.m.NotifyElementChanged(signalTarget, element.ChildrenChanged)
	}
	return newPos, removed, nil
}

// trimHead removes the first rightIn characters of a block.
func (c *Cursor) trimHead(b *element.Block, rightIn int) (int, error) {
	_, removed, err := b.RemoveBetweenPositions(0, rightIn)
	return removed, err
}

// elementsBetween returns the elements strictly between a and b in
// document order, both excluded, a's own descendants included.
func (c *Cursor) elementsBetween(a, b element.ElementID) []element.Element {
	var out []element.Element
	seen := false
	for _, el := range c.m.ListAllChildren(tree.Root) {
		if el.ID() == a {
			seen = true
			continue
		}
		if el.ID() == b {
			break
		}
		if seen {
			out = append(out, el)
		}
	}
	return out
}

// partitionBetween picks the blocks and frames from a between-span
// that must be removed individually, skipping the subtree rooted at
// skip since that one is removed whole. Blocks contribute their length
// plus one separator to the removed-character count; frames carry no
// characters of their own.
func (c *Cursor) partitionBetween(between []element.Element, skip element.ElementID, includeFrames bool) (doomed []element.ElementID, counted int) {
	for _, el := range between {
		if skip != 0 && (el.ID() == skip || c.isDescendantOf(el.ID(), skip)) {
			continue
		}
		switch el.Kind() {
		case element.KindBlock:
			counted += el.TextLength() + 1
			doomed = append(doomed, el.ID())
		case element.KindFrame:
			if includeFrames {
				doomed = append(doomed, el.ID())
			}
		}
	}
	return doomed, counted
}

// isDescendantOf walks the parent chain of id looking for ancestor.
func (c *Cursor) isDescendantOf(id, ancestor element.ElementID) bool {
	for p := c.m.ParentElement(id); p != nil; p = c.m.ParentElement(p.ID()) {
		if p.ID() == ancestor {
			return true
		}
	}
	return false
}

// parentOrRoot returns id's parent element, or the root frame when id
// is the root itself.
func (c *Cursor) parentOrRoot(id element.ElementID) element.Element {
	if p := c.m.ParentElement(id); p != nil {
		return p
	}
	return c.m.RootFrame()
}

// ============================================================================
// Selection content
// ============================================================================

// SelectedText returns the plain text between position and anchor.
// Block boundaries render as newlines; images as a placeholder space.
func (c *Cursor) SelectedText() string {
	left, right := c.ordered()
	if left == right {
		return ""
	}

	topBlock := c.m.FindBlock(left)
	bottomBlock := c.m.FindBlock(right)
	if topBlock == nil || bottomBlock == nil {
		return ""
	}

	leftIn := topBlock.ConvertPositionFromDocument(left)
	rightIn := bottomBlock.ConvertPositionFromDocument(right)

	if topBlock.ID() == bottomBlock.ID() {
		return topBlock.PlainTextBetweenPositions(leftIn, rightIn)
	}

	parts := []string{topBlock.PlainTextBetweenPositions(leftIn, topBlock.TextLength())}
	for _, el := range c.elementsBetween(topBlock.ID(), bottomBlock.ID()) {
		if b, ok := el.(*element.Block); ok {
			parts = append(parts, b.PlainText())
		}
	}
	parts = append(parts, bottomBlock.PlainTextBetweenPositions(0, rightIn))

	joined := strings.Join(parts, "\n")
	if n := right - left; n < len(joined) {
		return joined[:n]
	}
	return joined
}

// ============================================================================
// Formatting
// ============================================================================

// CharFormat returns the character format at the cursor position. Only
// a position at the very start of a block resolves today.
func (c *Cursor) CharFormat() (format.CharFormat, bool) {
	b := c.CurrentBlock()
	return b.CharFormatAt(b.ConvertPositionFromDocument(c.Position()))
}

// BlockFormat returns the format of the block under the cursor.
func (c *Cursor) BlockFormat() format.BlockFormat {
	return c.CurrentBlock().Format()
}

// FrameFormat returns the format of the frame under the cursor.
func (c *Cursor) FrameFormat() format.FrameFormat {
	return c.CurrentFrame().Format()
}

// SetBlockFormat replaces the format of the block under a collapsed
// cursor, or of every block touched by the selection.
func (c *Cursor) SetBlockFormat(bf format.BlockFormat) error {
	return c.eachSelectedBlock(func(b *element.Block) bool { return b.SetFormat(bf) })
}

// MergeBlockFormat folds bf into the format of the block under a
// collapsed cursor, or of every block touched by the selection.
func (c *Cursor) MergeBlockFormat(bf format.BlockFormat) error {
	return c.eachSelectedBlock(func(b *element.Block) bool { return b.MergeFormat(bf) })
}

func (c *Cursor) eachSelectedBlock(apply func(*element.Block) bool) error {
	if !c.HasSelection() {
		b := c.CurrentBlock()
		if b == nil {
			return fmt.Errorf("%w: no current block", element.ErrElementNotFound)
		}
		if apply(b) {
			c.m.NotifyElementChanged(b, element.FormatChanged)
		}
		return nil
	}

	for _, b := range c.selectedBlocks() {
		if apply(b) {
			c.m.NotifyElementChanged(b, element.FormatChanged)
			n := b.TextLength()
			c.m.NotifyTextChanged(b.Position(), n, n)
		}
	}
	return nil
}

// selectedBlocks returns every block the selection touches, outer
// blocks included.
func (c *Cursor) selectedBlocks() []*element.Block {
	left, right := c.ordered()
	topBlock := c.m.FindBlock(left)
	bottomBlock := c.m.FindBlock(right)
	if topBlock == nil || bottomBlock == nil {
		return nil
	}

	blocks := []*element.Block{topBlock}
	if topBlock.ID() == bottomBlock.ID() {
		return blocks
	}
	for _, el := range c.elementsBetween(topBlock.ID(), bottomBlock.ID()) {
		if b, ok := el.(*element.Block); ok {
			blocks = append(blocks, b)
		}
	}
	return append(blocks, bottomBlock)
}

// SetFrameFormat replaces the format of the frame under a collapsed
// cursor, or of every frame touched by the selection.
func (c *Cursor) SetFrameFormat(ff format.FrameFormat) error {
	return c.eachSelectedFrame(func(f *element.Frame) bool { return f.SetFormat(ff) })
}

// MergeFrameFormat folds ff into the format of the frame under a
// collapsed cursor, or of every frame touched by the selection.
func (c *Cursor) MergeFrameFormat(ff format.FrameFormat) error {
	return c.eachSelectedFrame(func(f *element.Frame) bool { return f.MergeFormat(ff) })
}

func (c *Cursor) eachSelectedFrame(apply func(*element.Frame) bool) error {
	if !c.HasSelection() {
		f := c.CurrentFrame()
		if apply(f) {
			c.m.NotifyElementChanged(f, element.FormatChanged)
		}
		return nil
	}

	for _, f := range c.selectedFrames() {
		if apply(f) {
			c.m.NotifyElementChanged(f, element.FormatChanged)
			n := f.TextLength()
			c.m.NotifyTextChanged(f.FirstCursorPosition(), n, n)
		}
	}
	return nil
}

// selectedFrames returns every frame enclosing a block the selection
// touches, deduplicated, outer frames included.
func (c *Cursor) selectedFrames() []*element.Frame {
	var frames []*element.Frame
	seen := make(map[element.ElementID]bool)
	for _, b := range c.selectedBlocks() {
		f, ok := c.parentOrRoot(b.ID()).(*element.Frame)
		if !ok || seen[f.ID()] {
			continue
		}
		seen[f.ID()] = true
		frames = append(frames, f)
	}
	return frames
}
