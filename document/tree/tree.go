package tree

import (
	"errors"
	"fmt"
	"sort"
)

// Errors returned by tree operations.
var (
	// ErrElementNotFound indicates a referenced id is not in the tree.
	ErrElementNotFound = errors.New("element not found")

	// ErrForbiddenOperation indicates a structurally illegal request,
	// such as inserting a sibling of the root.
	ErrForbiddenOperation = errors.New("forbidden operation")
)

// ElementID is the stable integer identity of an element. It is assigned
// once at creation and never reused while the element is reachable.
type ElementID int

// Root is the id of the root element. The root always exists, is its own
// parent, and cannot gain siblings.
const Root ElementID = 0

// Step is the gap between consecutive sort keys after renumbering.
// New elements are keyed into the gaps and a full renumbering pass
// restores the spacing after every structural change.
const Step = 1000

// tailKey is the near-maximum sentinel used when inserting at the
// absolute tail of the document. Renumbering replaces it immediately.
const tailKey = int(^uint(0)>>1) - Step

// Model is the ordered element tree. It owns the payloads, a sparse
// integer sort-key index whose ascending iteration is document order,
// and a parent map. The key sets of the three maps are identical except
// for the root's self-referential parent entry.
//
// Model is not safe for concurrent use; callers serialize externally.
type Model[T any] struct {
	elements map[ElementID]T
	order    map[int]ElementID
	parent   map[ElementID]ElementID

	// sortedKeys mirrors the key set of order in ascending order so
	// document-order scans do not re-sort on every call.
	sortedKeys []int

	nextID ElementID
}

// New creates a model holding only the root element.
func New[T any](root T) *Model[T] {
	m := &Model[T]{
		elements: map[ElementID]T{Root: root},
		order:    map[int]ElementID{0: Root},
		parent:   map[ElementID]ElementID{Root: Root},
		nextID:   Root + 1,
	}
	m.sortedKeys = []int{0}
	return m
}

// Len returns the number of elements in the tree, root included.
func (m *Model[T]) Len() int {
	return len(m.elements)
}

// Contains reports whether id is in the tree.
func (m *Model[T]) Contains(id ElementID) bool {
	_, ok := m.elements[id]
	return ok
}

// Get returns the payload for id.
func (m *Model[T]) Get(id ElementID) (T, bool) {
	el, ok := m.elements[id]
	return el, ok
}

// Parent returns the parent of id. The root is its own parent.
func (m *Model[T]) Parent(id ElementID) (ElementID, bool) {
	p, ok := m.parent[id]
	return p, ok
}

// InOrder returns all element ids in document order.
func (m *Model[T]) InOrder() []ElementID {
	ids := make([]ElementID, 0, len(m.sortedKeys))
	for _, key := range m.sortedKeys {
		ids = append(ids, m.order[key])
	}
	return ids
}

// InsertBefore places el as the sibling immediately preceding target.
func (m *Model[T]) InsertBefore(target ElementID, el T) (ElementID, error) {
	if target == Root {
		return 0, fmt.Errorf("%w: root has no siblings", ErrForbiddenOperation)
	}
	key, ok := m.keyOf(target)
	if !ok {
		return 0, fmt.Errorf("%w: target %d", ErrElementNotFound, target)
	}
	return m.insert(el, key-1, m.parent[target]), nil
}

// InsertAfter places el as the sibling following target, after target's
// entire subtree.
func (m *Model[T]) InsertAfter(target ElementID, el T) (ElementID, error) {
	if target == Root {
		return 0, fmt.Errorf("%w: root has no siblings", ErrForbiddenOperation)
	}
	if !m.Contains(target) {
		return 0, fmt.Errorf("%w: target %d", ErrElementNotFound, target)
	}
	return m.insert(el, m.keyPastSubtree(target), m.parent[target]), nil
}

// InsertAsChild places el as the final child of parent.
func (m *Model[T]) InsertAsChild(parent ElementID, el T) (ElementID, error) {
	if !m.Contains(parent) {
		return 0, fmt.Errorf("%w: parent %d", ErrElementNotFound, parent)
	}
	return m.insert(el, m.keyPastSubtree(parent), parent), nil
}

// keyPastSubtree returns a sort key that lands just past id's subtree:
// one below the key of the next element at or above id's level, or the
// tail sentinel when no such element bounds the gap.
func (m *Model[T]) keyPastSubtree(id ElementID) int {
	level := m.Level(id)
	idx := m.indexOf(id)
	for i := idx + 1; i < len(m.sortedKeys); i++ {
		next := m.order[m.sortedKeys[i]]
		if m.Level(next) <= level {
			return m.sortedKeys[i] - 1
		}
	}
	return tailKey
}

// insert assigns a fresh id, places el at key under parent, and
// renumbers. The key only needs to sort correctly for one pass.
func (m *Model[T]) insert(el T, key int, parent ElementID) ElementID {
	id := m.nextID
	m.nextID++

	m.elements[id] = el
	m.parent[id] = parent
	m.setKey(key, id)
	m.Renumber()
	return id
}

// RemoveRecursively deletes id and its entire contiguous document-order
// subtree from all three maps. The root cannot be removed; resetting the
// document is the caller's concern.
func (m *Model[T]) RemoveRecursively(id ElementID) error {
	if id == Root {
		return fmt.Errorf("%w: cannot remove the root", ErrForbiddenOperation)
	}
	if !m.Contains(id) {
		return fmt.Errorf("%w: %d", ErrElementNotFound, id)
	}

	level := m.Level(id)
	idx := m.indexOf(id)

	doomed := []ElementID{id}
	for i := idx + 1; i < len(m.sortedKeys); i++ {
		next := m.order[m.sortedKeys[i]]
		if m.Level(next) <= level {
			break
		}
		doomed = append(doomed, next)
	}

	for _, d := range doomed {
		m.deleteKey(m.mustKeyOf(d))
		delete(m.elements, d)
		delete(m.parent, d)
	}
	return nil
}

// ListAllChildren returns the ids of id's full subtree, excluding id
// itself, in document order.
func (m *Model[T]) ListAllChildren(id ElementID) []ElementID {
	return m.childScan(id, func(level, childLevel int) bool {
		return childLevel > level
	})
}

// ListAllDirectChildren returns the ids of id's immediate children in
// document order.
func (m *Model[T]) ListAllDirectChildren(id ElementID) []ElementID {
	return m.childScan(id, func(level, childLevel int) bool {
		return childLevel == level+1
	})
}

func (m *Model[T]) childScan(id ElementID, keep func(level, childLevel int) bool) []ElementID {
	if !m.Contains(id) {
		return nil
	}
	level := m.Level(id)
	idx := m.indexOf(id)

	var children []ElementID
	for i := idx + 1; i < len(m.sortedKeys); i++ {
		next := m.order[m.sortedKeys[i]]
		childLevel := m.Level(next)
		if childLevel <= level {
			break
		}
		if keep(level, childLevel) {
			children = append(children, next)
		}
	}
	return children
}

// Level returns the number of parent hops from id to the root.
func (m *Model[T]) Level(id ElementID) int {
	level := 0
	for id != Root {
		id = m.parent[id]
		level++
	}
	return level
}

// ancestorChain returns id followed by its ancestors up to and
// including the root.
func (m *Model[T]) ancestorChain(id ElementID) []ElementID {
	chain := []ElementID{id}
	for id != Root {
		id = m.parent[id]
		chain = append(chain, id)
	}
	return chain
}

// CommonAncestor returns the nearest common ancestor of a and b. The
// chains include the elements themselves, so an element that contains
// the other is its own answer. The walk runs leaf-to-root on both
// sides; the first shared element is by construction the nearest one.
func (m *Model[T]) CommonAncestor(a, b ElementID) (ElementID, error) {
	if !m.Contains(a) || !m.Contains(b) {
		return 0, fmt.Errorf("%w: %d/%d", ErrElementNotFound, a, b)
	}

	inA := make(map[ElementID]struct{})
	for _, id := range m.ancestorChain(a) {
		inA[id] = struct{}{}
	}
	for _, id := range m.ancestorChain(b) {
		if _, ok := inA[id]; ok {
			return id, nil
		}
	}
	return Root, nil
}

// SiblingAncestor returns the element on a's ancestor path (a included)
// whose parent is b's parent. It identifies the single subtree to delete
// when a is nested more deeply than b.
func (m *Model[T]) SiblingAncestor(a, b ElementID) (ElementID, error) {
	if !m.Contains(a) || !m.Contains(b) {
		return 0, fmt.Errorf("%w: %d/%d", ErrElementNotFound, a, b)
	}

	parentB := m.parent[b]
	for _, id := range m.ancestorChain(a) {
		if id != Root && m.parent[id] == parentB {
			return id, nil
		}
	}
	return 0, fmt.Errorf("%w: no ancestor of %d is a sibling of %d", ErrElementNotFound, a, b)
}

// MoveWhileChangingParent reparents id under newParent and repositions
// its sort key to just after newParent's own key, then renumbers.
//
// The element lands at the front of newParent's children, not the end.
// Callers moving several elements must iterate in reverse document
// order to preserve their relative order.
func (m *Model[T]) MoveWhileChangingParent(id, newParent ElementID) error {
	if id == Root {
		return fmt.Errorf("%w: cannot move the root", ErrForbiddenOperation)
	}
	if !m.Contains(id) {
		return fmt.Errorf("%w: %d", ErrElementNotFound, id)
	}
	parentKey, ok := m.keyOf(newParent)
	if !ok {
		return fmt.Errorf("%w: new parent %d", ErrElementNotFound, newParent)
	}

	m.deleteKey(m.mustKeyOf(id))
	m.parent[id] = newParent
	m.setKey(parentKey+1, id)
	m.Renumber()
	return nil
}

// NextElement returns the element following id in document order.
func (m *Model[T]) NextElement(id ElementID) (ElementID, bool) {
	idx := m.indexOf(id)
	if idx < 0 || idx+1 >= len(m.sortedKeys) {
		return 0, false
	}
	return m.order[m.sortedKeys[idx+1]], true
}

// PreviousElement returns the element preceding id in document order.
func (m *Model[T]) PreviousElement(id ElementID) (ElementID, bool) {
	idx := m.indexOf(id)
	if idx <= 0 {
		return 0, false
	}
	return m.order[m.sortedKeys[idx-1]], true
}

// ElementOrder returns id's position in document order, root first.
func (m *Model[T]) ElementOrder(id ElementID) (int, bool) {
	idx := m.indexOf(id)
	if idx < 0 {
		return 0, false
	}
	return idx, true
}

// Renumber rewrites all sort keys to 0, Step, 2*Step, … in the current
// document order, keeping the gaps usable for future inserts. It runs
// after every structural change; the per-edit cost buys an always-valid
// sparse index.
func (m *Model[T]) Renumber() {
	ids := m.InOrder()

	m.order = make(map[int]ElementID, len(ids))
	m.sortedKeys = m.sortedKeys[:0]
	for i, id := range ids {
		key := i * Step
		m.order[key] = id
		m.sortedKeys = append(m.sortedKeys, key)
	}
}

// keyOf returns the sort key currently assigned to id.
func (m *Model[T]) keyOf(id ElementID) (int, bool) {
	for _, key := range m.sortedKeys {
		if m.order[key] == id {
			return key, true
		}
	}
	return 0, false
}

func (m *Model[T]) mustKeyOf(id ElementID) int {
	key, ok := m.keyOf(id)
	if !ok {
		panic(fmt.Sprintf("tree: id %d has no sort key", id))
	}
	return key
}

// indexOf returns id's index into sortedKeys, or -1.
func (m *Model[T]) indexOf(id ElementID) int {
	for i, key := range m.sortedKeys {
		if m.order[key] == id {
			return i
		}
	}
	return -1
}

// setKey binds key to id, keeping sortedKeys sorted.
func (m *Model[T]) setKey(key int, id ElementID) {
	if _, taken := m.order[key]; taken {
		panic(fmt.Sprintf("tree: duplicate sort key %d", key))
	}
	m.order[key] = id
	at := sort.SearchInts(m.sortedKeys, key)
	m.sortedKeys = append(m.sortedKeys, 0)
	copy(m.sortedKeys[at+1:], m.sortedKeys[at:])
	m.sortedKeys[at] = key
}

// deleteKey unbinds key, keeping sortedKeys sorted.
func (m *Model[T]) deleteKey(key int) {
	delete(m.order, key)
	at := sort.SearchInts(m.sortedKeys, key)
	if at < len(m.sortedKeys) && m.sortedKeys[at] == key {
		m.sortedKeys = append(m.sortedKeys[:at], m.sortedKeys[at+1:]...)
	}
}
