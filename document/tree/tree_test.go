package tree

import (
	"errors"
	"testing"
)

func TestNewHoldsOnlyRoot(t *testing.T) {
	m := New("root")

	if got := m.Len(); got != 1 {
		t.Errorf("Len() = %d, want 1", got)
	}
	if !m.Contains(Root) {
		t.Error("Contains(Root) = false, want true")
	}
	v, ok := m.Get(Root)
	if !ok || v != "root" {
		t.Errorf("Get(Root) = %q, %v", v, ok)
	}
}

func TestInsertAsChildOrdering(t *testing.T) {
	m := New("root")

	a, err := m.InsertAsChild(Root, "a")
	if err != nil {
		t.Fatalf("InsertAsChild: %v", err)
	}
	b, err := m.InsertAsChild(Root, "b")
	if err != nil {
		t.Fatalf("InsertAsChild: %v", err)
	}
	c, err := m.InsertAsChild(a, "c")
	if err != nil {
		t.Fatalf("InsertAsChild: %v", err)
	}

	want := []ElementID{Root, a, c, b}
	got := m.InOrder()
	if len(got) != len(want) {
		t.Fatalf("InOrder() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("InOrder()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestInsertBeforeAndAfter(t *testing.T) {
	m := New("root")
	a, _ := m.InsertAsChild(Root, "a")
	b, _ := m.InsertAfter(a, "b")
	c, _ := m.InsertBefore(b, "c")

	want := []ElementID{Root, a, c, b}
	got := m.InOrder()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("InOrder() = %v, want %v", got, want)
		}
	}
}

func TestInsertAfterSkipsSubtree(t *testing.T) {
	m := New("root")
	a, _ := m.InsertAsChild(Root, "a")
	inner, _ := m.InsertAsChild(a, "inner")
	leaf, _ := m.InsertAsChild(inner, "leaf")

	// b is a's sibling and must land after a's whole subtree.
	b, _ := m.InsertAfter(a, "b")

	want := []ElementID{Root, a, inner, leaf, b}
	got := m.InOrder()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("InOrder() = %v, want %v", got, want)
		}
	}
	if p, _ := m.Parent(b); p != Root {
		t.Errorf("Parent(b) = %d, want %d", p, Root)
	}
}

func TestSiblingOfRootRejected(t *testing.T) {
	m := New("root")

	if _, err := m.InsertBefore(Root, "x"); !errors.Is(err, ErrForbiddenOperation) {
		t.Errorf("InsertBefore(Root) error = %v, want ErrForbiddenOperation", err)
	}
	if _, err := m.InsertAfter(Root, "x"); !errors.Is(err, ErrForbiddenOperation) {
		t.Errorf("InsertAfter(Root) error = %v, want ErrForbiddenOperation", err)
	}
}

func TestInsertUnknownTarget(t *testing.T) {
	m := New("root")

	if _, err := m.InsertAsChild(99, "x"); !errors.Is(err, ErrElementNotFound) {
		t.Errorf("InsertAsChild(99) error = %v, want ErrElementNotFound", err)
	}
}

func TestRemoveRecursively(t *testing.T) {
	m := New("root")
	a, _ := m.InsertAsChild(Root, "a")
	inner, _ := m.InsertAsChild(a, "inner")
	leaf, _ := m.InsertAsChild(inner, "leaf")
	b, _ := m.InsertAfter(a, "b")

	if err := m.RemoveRecursively(a); err != nil {
		t.Fatalf("RemoveRecursively: %v", err)
	}

	for _, id := range []ElementID{a, inner, leaf} {
		if m.Contains(id) {
			t.Errorf("Contains(%d) = true after removal", id)
		}
	}
	if !m.Contains(b) {
		t.Error("sibling removed along with subtree")
	}
	if got := m.Len(); got != 2 {
		t.Errorf("Len() = %d, want 2", got)
	}
}

func TestRemoveRootRejected(t *testing.T) {
	m := New("root")

	if err := m.RemoveRecursively(Root); !errors.Is(err, ErrForbiddenOperation) {
		t.Errorf("RemoveRecursively(Root) error = %v, want ErrForbiddenOperation", err)
	}
}

func TestListChildren(t *testing.T) {
	m := New("root")
	a, _ := m.InsertAsChild(Root, "a")
	inner, _ := m.InsertAsChild(a, "inner")
	b, _ := m.InsertAfter(a, "b")

	direct := m.ListAllDirectChildren(Root)
	if len(direct) != 2 || direct[0] != a || direct[1] != b {
		t.Errorf("ListAllDirectChildren(Root) = %v, want [%d %d]", direct, a, b)
	}

	all := m.ListAllChildren(Root)
	if len(all) != 3 || all[0] != a || all[1] != inner || all[2] != b {
		t.Errorf("ListAllChildren(Root) = %v, want [%d %d %d]", all, a, inner, b)
	}
}

func TestLevel(t *testing.T) {
	m := New("root")
	a, _ := m.InsertAsChild(Root, "a")
	inner, _ := m.InsertAsChild(a, "inner")

	for _, tc := range []struct {
		id   ElementID
		want int
	}{
		{Root, 0},
		{a, 1},
		{inner, 2},
	} {
		if got := m.Level(tc.id); got != tc.want {
			t.Errorf("Level(%d) = %d, want %d", tc.id, got, tc.want)
		}
	}
}

func TestCommonAncestor(t *testing.T) {
	m := New("root")
	f1, _ := m.InsertAsChild(Root, "f1")
	a, _ := m.InsertAsChild(f1, "a")
	b, _ := m.InsertAsChild(f1, "b")
	f2, _ := m.InsertAfter(f1, "f2")
	c, _ := m.InsertAsChild(f2, "c")

	anc, err := m.CommonAncestor(a, b)
	if err != nil {
		t.Fatalf("CommonAncestor: %v", err)
	}
	if anc != f1 {
		t.Errorf("CommonAncestor(a, b) = %d, want %d", anc, f1)
	}

	anc, err = m.CommonAncestor(a, c)
	if err != nil {
		t.Fatalf("CommonAncestor: %v", err)
	}
	if anc != Root {
		t.Errorf("CommonAncestor(a, c) = %d, want root", anc)
	}
}

func TestSiblingAncestor(t *testing.T) {
	m := New("root")
	f1, _ := m.InsertAsChild(Root, "f1")
	deep, _ := m.InsertAsChild(f1, "deep")
	b, _ := m.InsertAfter(f1, "b")

	sib, err := m.SiblingAncestor(deep, b)
	if err != nil {
		t.Fatalf("SiblingAncestor: %v", err)
	}
	if sib != f1 {
		t.Errorf("SiblingAncestor(deep, b) = %d, want %d", sib, f1)
	}
}

func TestMoveWhileChangingParentReverseOrder(t *testing.T) {
	m := New("root")
	a, _ := m.InsertAsChild(Root, "a")
	x, _ := m.InsertAsChild(a, "x")
	y, _ := m.InsertAfter(x, "y")
	b, _ := m.InsertAfter(a, "b")

	// Moving in reverse keeps x before y under the new parent.
	for _, id := range []ElementID{y, x} {
		if err := m.MoveWhileChangingParent(id, b); err != nil {
			t.Fatalf("MoveWhileChangingParent: %v", err)
		}
	}

	got := m.ListAllDirectChildren(b)
	if len(got) != 2 || got[0] != x || got[1] != y {
		t.Errorf("children of b = %v, want [%d %d]", got, x, y)
	}
	if p, _ := m.Parent(x); p != b {
		t.Errorf("Parent(x) = %d, want %d", p, b)
	}
}

func TestNavigation(t *testing.T) {
	m := New("root")
	a, _ := m.InsertAsChild(Root, "a")
	b, _ := m.InsertAfter(a, "b")

	if next, ok := m.NextElement(a); !ok || next != b {
		t.Errorf("NextElement(a) = %d, %v, want %d", next, ok, b)
	}
	if prev, ok := m.PreviousElement(b); !ok || prev != a {
		t.Errorf("PreviousElement(b) = %d, %v, want %d", prev, ok, a)
	}
	if _, ok := m.PreviousElement(Root); ok {
		t.Error("PreviousElement(Root) reported a predecessor")
	}
	if _, ok := m.NextElement(b); ok {
		t.Error("NextElement(last) reported a successor")
	}
	if order, ok := m.ElementOrder(b); !ok || order != 2 {
		t.Errorf("ElementOrder(b) = %d, %v, want 2", order, ok)
	}
}

func TestRenumberKeepsOrder(t *testing.T) {
	m := New("root")
	var ids []ElementID
	for i := 0; i < 100; i++ {
		id, err := m.InsertAsChild(Root, "x")
		if err != nil {
			t.Fatalf("InsertAsChild: %v", err)
		}
		ids = append(ids, id)
	}

	m.Renumber()

	got := m.InOrder()
	if len(got) != len(ids)+1 {
		t.Fatalf("InOrder() len = %d, want %d", len(got), len(ids)+1)
	}
	for i, id := range ids {
		if got[i+1] != id {
			t.Fatalf("order changed after Renumber at %d: got %d, want %d", i, got[i+1], id)
		}
	}
}
