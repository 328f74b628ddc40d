package element

import (
	"fmt"

	"github.com/dshills/textdoc/document/signal"
	"github.com/dshills/textdoc/document/tree"
)

// Manager owns the element tree. It creates elements through typed
// factories, validates parent/child structure before mutating, and
// fans out change notifications.
//
// The root frame always exists with id 0 and can never be replaced,
// only cleared back to its single-empty-block skeleton.
type Manager struct {
	model          *tree.Model[Element]
	textChanges    *signal.Hub[TextChange]
	elementChanges *signal.Hub[ElementChange]
}

// NewManager returns a manager holding the minimal document: a root
// frame containing one block with one empty text element.
func NewManager() *Manager {
	m := &Manager{
		textChanges:    signal.NewHub[TextChange](),
		elementChanges: signal.NewHub[ElementChange](),
	}
	root := &Frame{m: m, id: tree.Root}
	m.model = tree.New[Element](root)
	m.buildSkeleton()
	return m
}

// buildSkeleton adds the empty block and text under an empty root.
func (m *Manager) buildSkeleton() {
	blk, err := m.InsertNewBlock(tree.Root, AsChild)
	if err != nil {
		panic(fmt.Sprintf("textdoc: corrupt root frame: %v", err))
	}
	if _, err := m.InsertNewText(blk.ID(), AsChild); err != nil {
		panic(fmt.Sprintf("textdoc: corrupt root block: %v", err))
	}
}

// ============================================================================
// Factories
// ============================================================================

// InsertNewFrame creates a frame relative to target. The prospective
// parent must be a frame.
func (m *Manager) InsertNewFrame(target ElementID, mode InsertMode) (*Frame, error) {
	f := &Frame{m: m}
	if err := m.insert(f, target, mode); err != nil {
		return nil, err
	}
	return f, nil
}

// InsertNewBlock creates a block relative to target. The prospective
// parent must be a frame.
func (m *Manager) InsertNewBlock(target ElementID, mode InsertMode) (*Block, error) {
	b := &Block{m: m}
	if err := m.insert(b, target, mode); err != nil {
		return nil, err
	}
	return b, nil
}

// InsertNewText creates a text element relative to target. The
// prospective parent must be a block.
func (m *Manager) InsertNewText(target ElementID, mode InsertMode) (*Text, error) {
	t := &Text{m: m}
	if err := m.insert(t, target, mode); err != nil {
		return nil, err
	}
	return t, nil
}

// InsertNewImage creates an image element relative to target. The
// prospective parent must be a block.
func (m *Manager) InsertNewImage(target ElementID, mode InsertMode) (*Image, error) {
	img := &Image{m: m}
	if err := m.insert(img, target, mode); err != nil {
		return nil, err
	}
	return img, nil
}

// insert resolves the prospective parent and validates structure
// before touching the tree, so a rejected insert leaves no trace.
func (m *Manager) insert(el Element, target ElementID, mode InsertMode) error {
	parentID, err := m.prospectiveParent(target, mode)
	if err != nil {
		return err
	}
	parent, ok := m.model.Get(parentID)
	if !ok {
		return fmt.Errorf("%w: parent %d vanished during insert", ErrUnknown, parentID)
	}
	if err := el.checkParent(parent); err != nil {
		return err
	}
	var id ElementID
	switch mode {
	case Before:
		id, err = m.model.InsertBefore(target, el)
	case After:
		id, err = m.model.InsertAfter(target, el)
	case AsChild:
		id, err = m.model.InsertAsChild(target, el)
	default:
		return fmt.Errorf("%w: insert mode %d", ErrForbiddenOperation, mode)
	}
	if err != nil {
		return err
	}
	el.setID(id)
	return nil
}

// prospectiveParent returns the id that would become the new element's
// parent without mutating anything.
func (m *Manager) prospectiveParent(target ElementID, mode InsertMode) (ElementID, error) {
	if !m.model.Contains(target) {
		return 0, fmt.Errorf("%w: target %d", ErrElementNotFound, target)
	}
	switch mode {
	case Before, After:
		if target == tree.Root {
			return 0, fmt.Errorf("%w: root frame cannot have siblings", ErrForbiddenOperation)
		}
		p, ok := m.model.Parent(target)
		if !ok {
			return 0, fmt.Errorf("%w: parent of %d", ErrElementNotFound, target)
		}
		return p, nil
	case AsChild:
		return target, nil
	default:
		return 0, fmt.Errorf("%w: insert mode %d", ErrForbiddenOperation, mode)
	}
}

// ============================================================================
// Removal
// ============================================================================

// Remove deletes the listed elements and their subtrees. Removing id 0
// clears the whole document back to the minimal skeleton instead of
// deleting the root frame. Ids already swept away by an earlier entry
// in the list are skipped.
func (m *Manager) Remove(ids []ElementID) {
	for _, id := range ids {
		if id == tree.Root {
			m.Clear()
			continue
		}
		if !m.model.Contains(id) {
			continue
		}
		// Errors here would mean a corrupt tree; Contains was checked.
		_ = m.model.RemoveRecursively(id)
	}
}

// Clear removes every descendant of the root frame and rebuilds the
// single-empty-block skeleton. The root frame keeps its identity.
func (m *Manager) Clear() {
	for _, child := range m.ListAllDirectChildren(tree.Root) {
		_ = m.model.RemoveRecursively(child.ID())
	}
	m.buildSkeleton()
}

// FillEmptyFrames gives every frame with no direct children a block
// with an empty text element, restoring the invariant that every frame
// holds at least one block.
func (m *Manager) FillEmptyFrames() {
	var empty []ElementID
	for _, el := range m.elementsInOrder() {
		f, ok := el.(*Frame)
		if !ok {
			continue
		}
		if len(m.ListAllDirectChildren(f.ID())) == 0 {
			empty = append(empty, f.ID())
		}
	}
	for _, id := range empty {
		blk, err := m.InsertNewBlock(id, AsChild)
		if err != nil {
			continue
		}
		_, _ = m.InsertNewText(blk.ID(), AsChild)
	}
}

// Renumber reassigns sparse sort keys over the whole tree.
func (m *Manager) Renumber() {
	m.model.Renumber()
}

// ============================================================================
// Lookup and navigation
// ============================================================================

// Element returns the element with the given id.
func (m *Manager) Element(id ElementID) (Element, bool) {
	return m.model.Get(id)
}

// resolve maps a list of ids onto their element handles.
func (m *Manager) resolve(ids []ElementID) []Element {
	elements := make([]Element, 0, len(ids))
	for _, id := range ids {
		if el, ok := m.model.Get(id); ok {
			elements = append(elements, el)
		}
	}
	return elements
}

// elementsInOrder returns every element in document order.
func (m *Manager) elementsInOrder() []Element {
	return m.resolve(m.model.InOrder())
}

// RootFrame returns the root frame (id 0).
func (m *Manager) RootFrame() *Frame {
	el, ok := m.model.Get(tree.Root)
	if !ok {
		panic("textdoc: root frame missing")
	}
	return el.(*Frame)
}

// ParentElement returns the parent of id, or nil when id is the root
// or unknown.
func (m *Manager) ParentElement(id ElementID) Element {
	p, ok := m.model.Parent(id)
	if !ok || p == id {
		return nil
	}
	el, _ := m.model.Get(p)
	return el
}

// Level returns the depth of id, counting the root as 0.
func (m *Manager) Level(id ElementID) int {
	return m.model.Level(id)
}

// NextElement returns the element following id in document order, or
// nil at the end.
func (m *Manager) NextElement(id ElementID) Element {
	next, ok := m.model.NextElement(id)
	if !ok {
		return nil
	}
	el, _ := m.model.Get(next)
	return el
}

// PreviousElement returns the element preceding id in document order,
// or nil at the start.
func (m *Manager) PreviousElement(id ElementID) Element {
	prev, ok := m.model.PreviousElement(id)
	if !ok {
		return nil
	}
	el, _ := m.model.Get(prev)
	return el
}

// ElementOrder returns id's rank in document order, the root being 0,
// or -1 for unknown ids.
func (m *Manager) ElementOrder(id ElementID) int {
	idx, ok := m.model.ElementOrder(id)
	if !ok {
		return -1
	}
	return idx
}

// ListAllChildren returns every descendant of id in document order.
func (m *Manager) ListAllChildren(id ElementID) []Element {
	return m.resolve(m.model.ListAllChildren(id))
}

// ListAllDirectChildren returns the immediate children of id in
// document order.
func (m *Manager) ListAllDirectChildren(id ElementID) []Element {
	return m.resolve(m.model.ListAllDirectChildren(id))
}

// CommonAncestor returns the nearest element that is an ancestor of
// both a and b.
func (m *Manager) CommonAncestor(a, b ElementID) (Element, error) {
	id, err := m.model.CommonAncestor(a, b)
	if err != nil {
		return nil, err
	}
	el, ok := m.model.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: ancestor %d", ErrElementNotFound, id)
	}
	return el, nil
}

// SiblingAncestor returns the element on a's ancestor path, a
// included, whose parent is also b's parent.
func (m *Manager) SiblingAncestor(a, b ElementID) (Element, error) {
	id, err := m.model.SiblingAncestor(a, b)
	if err != nil {
		return nil, err
	}
	el, ok := m.model.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: ancestor %d", ErrElementNotFound, id)
	}
	return el, nil
}

// ============================================================================
// Block and frame queries
// ============================================================================

// BlockList returns all blocks in document order.
func (m *Manager) BlockList() []*Block {
	var blocks []*Block
	for _, el := range m.elementsInOrder() {
		if b, ok := el.(*Block); ok {
			blocks = append(blocks, b)
		}
	}
	return blocks
}

// BlockCount returns the number of blocks in the document. A valid
// document always has at least one.
func (m *Manager) BlockCount() int {
	n := 0
	for _, el := range m.elementsInOrder() {
		if _, ok := el.(*Block); ok {
			n++
		}
	}
	return n
}

// FirstBlock returns the first block in document order.
func (m *Manager) FirstBlock() *Block {
	for _, el := range m.elementsInOrder() {
		if b, ok := el.(*Block); ok {
			return b
		}
	}
	return nil
}

// LastBlock returns the last block in document order.
func (m *Manager) LastBlock() *Block {
	var last *Block
	for _, el := range m.elementsInOrder() {
		if b, ok := el.(*Block); ok {
			last = b
		}
	}
	return last
}

// FindBlock returns the block containing the document position. A
// position equal to a block's end still belongs to that block, so the
// boundary between two blocks resolves to the earlier one.
func (m *Manager) FindBlock(position int) *Block {
	counter := 0
	for _, b := range m.BlockList() {
		end := counter + b.TextLength()
		if position >= counter && position <= end {
			return b
		}
		counter = end + 1
	}
	return nil
}

// FindFrame returns the innermost frame other than the root whose
// range contains the document position, or nil when only the root
// contains it.
func (m *Manager) FindFrame(position int) *Frame {
	var found *Frame
	for _, el := range m.elementsInOrder() {
		f, ok := el.(*Frame)
		if !ok || f.ID() == tree.Root {
			continue
		}
		if position >= f.Start() && position <= f.End() {
			found = f
		}
	}
	return found
}

// ============================================================================
// Notifications
// ============================================================================

// OnTextChanged registers fn to run after each text edit.
func (m *Manager) OnTextChanged(fn func(TextChange)) signal.Subscription {
	return m.textChanges.Subscribe(fn)
}

// OnElementChanged registers fn to run after each structural or
// formatting change.
func (m *Manager) OnElementChanged(fn func(ElementChange)) signal.Subscription {
	return m.elementChanges.Subscribe(fn)
}

// NotifyTextChanged reports one logical text edit to subscribers.
func (m *Manager) NotifyTextChanged(position, removed, added int) {
	m.textChanges.Notify(TextChange{Position: position, Removed: removed, Added: added})
}

// NotifyElementChanged reports an element change to subscribers.
func (m *Manager) NotifyElementChanged(el Element, reason ChangeReason) {
	m.elementChanges.Notify(ElementChange{Element: el, Reason: reason})
}
