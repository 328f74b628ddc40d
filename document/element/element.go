package element

import "github.com/dshills/textdoc/document/tree"

// ElementID is re-exported for convenience.
type ElementID = tree.ElementID

// Kind tags the element variants of the document tree.
type Kind uint8

const (
	KindFrame Kind = iota
	KindBlock
	KindText
	KindImage
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindFrame:
		return "frame"
	case KindBlock:
		return "block"
	case KindText:
		return "text"
	case KindImage:
		return "image"
	default:
		return "unknown"
	}
}

// InsertMode selects where a new element is placed relative to its
// target: as the preceding sibling, the following sibling, or the final
// child.
type InsertMode uint8

const (
	Before InsertMode = iota
	After
	AsChild
)

// Element is the common handle interface over Frame, Block, Text and
// Image. Handles hold only their id and a back-reference to the owning
// Manager; all navigation goes through the Manager's maps.
type Element interface {
	// ID returns the stable identity assigned at creation.
	ID() ElementID

	// Kind returns the variant tag.
	Kind() Kind

	// TextLength returns the element's content length in document
	// characters.
	TextLength() int

	// Start returns the element's first cursor position in document
	// coordinates.
	Start() int

	// End returns Start plus TextLength.
	End() int

	// setID records the identity after a successful insert.
	setID(id ElementID)

	// checkParent validates the structural rule against the actual
	// parent: Frame/Block under Frame, Text/Image under Block.
	checkParent(parent Element) error
}

// ChangeReason qualifies an element-change notification.
type ChangeReason uint8

const (
	// FormatChanged means only formatting attributes changed.
	FormatChanged ChangeReason = iota

	// ContentChanged means the element's own content changed.
	ContentChanged

	// InternalStructureChanged means children were rearranged without
	// being added or removed.
	InternalStructureChanged

	// ChildrenChanged means children were added or removed.
	ChildrenChanged
)

// String returns the reason name.
func (r ChangeReason) String() string {
	switch r {
	case FormatChanged:
		return "format-changed"
	case ContentChanged:
		return "content-changed"
	case InternalStructureChanged:
		return "internal-structure-changed"
	case ChildrenChanged:
		return "children-changed"
	default:
		return "unknown"
	}
}

// TextChange is the payload of a text-change notification: one logical
// edit at Position that removed Removed characters and added Added.
type TextChange struct {
	Position int
	Removed  int
	Added    int
}

// ElementChange is the payload of an element-change notification.
type ElementChange struct {
	Element Element
	Reason  ChangeReason
}
