package document

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/xlab/treeprint"

	"github.com/dshills/textdoc/document/cursor"
	"github.com/dshills/textdoc/document/element"
	"github.com/dshills/textdoc/document/signal"
)

// Document is the top-level handle over one rich text document. It
// owns the element manager and hands out cursors for editing.
//
// A new document is never empty: it holds one root frame, one block
// and one empty text element, so there is always a valid cursor
// position 0.
type Document struct {
	id      uuid.UUID
	manager *element.Manager
	tabs    []Tab

	initText string
}

// New creates a document, applying any options.
func New(opts ...Option) (*Document, error) {
	d := &Document{
		id:      uuid.New(),
		manager: element.NewManager(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.initText != "" {
		if err := d.SetPlainText(d.initText); err != nil {
			return nil, err
		}
		d.initText = ""
	}
	return d, nil
}

// ID returns the document's instance identity.
func (d *Document) ID() uuid.UUID { return d.id }

// Elements exposes the underlying element manager for direct tree
// inspection and manipulation.
func (d *Document) Elements() *element.Manager { return d.manager }

// NewCursor returns a fresh cursor at the start of the document.
// Any number of cursors may edit the same document in turn.
func (d *Document) NewCursor() *cursor.Cursor {
	return cursor.New(d.manager)
}

// SetPlainText replaces the whole document content. Each line of text
// becomes one block under the root frame; nested frames do not
// survive.
func (d *Document) SetPlainText(text string) error {
	removed := d.manager.RootFrame().End()
	d.manager.Clear()

	lines := strings.Split(text, "\n")
	block := d.manager.FirstBlock()
	if err := block.InsertPlainText(lines[0], 0); err != nil {
		return err
	}
	for _, line := range lines[1:] {
		next, err := d.manager.InsertNewBlock(block.ID(), element.After)
		if err != nil {
			return err
		}
		if err := next.SetPlainText(line); err != nil {
			return err
		}
		block = next
	}

	d.manager.NotifyTextChanged(0, removed, len(text))
	d.manager.NotifyElementChanged(d.manager.RootFrame(), element.ChildrenChanged)
	return nil
}

// ToPlainText renders the document as plain text, one line per block.
func (d *Document) ToPlainText() string {
	var lines []string
	for _, b := range d.manager.BlockList() {
		lines = append(lines, b.PlainText())
	}
	return strings.Join(lines, "\n")
}

// BlockCount returns the number of blocks. At least 1.
func (d *Document) BlockCount() int { return d.manager.BlockCount() }

// CharacterCount returns the document length, block separators
// included.
func (d *Document) CharacterCount() int { return d.manager.RootFrame().End() }

// Tabs returns the document's tab stops.
func (d *Document) Tabs() []Tab { return d.tabs }

// SetTabs replaces the document's tab stops.
func (d *Document) SetTabs(tabs []Tab) { d.tabs = tabs }

// OnTextChanged registers fn to run after each text edit.
func (d *Document) OnTextChanged(fn func(element.TextChange)) signal.Subscription {
	return d.manager.OnTextChanged(fn)
}

// OnElementChanged registers fn to run after each structural or
// formatting change.
func (d *Document) OnElementChanged(fn func(element.ElementChange)) signal.Subscription {
	return d.manager.OnElementChanged(fn)
}

// DumpElements renders the element tree for debugging.
func (d *Document) DumpElements() string {
	root := d.manager.RootFrame()
	tp := treeprint.NewWithRoot(describeElement(root))
	d.dumpChildren(tp, root.ID())
	return tp.String()
}

func (d *Document) dumpChildren(branch treeprint.Tree, id element.ElementID) {
	for _, child := range d.manager.ListAllDirectChildren(id) {
		d.dumpChildren(branch.AddBranch(describeElement(child)), child.ID())
	}
}

func describeElement(el element.Element) string {
	switch e := el.(type) {
	case *element.Frame:
		return fmt.Sprintf("frame %d [%d, %d]", e.ID(), e.Start(), e.End())
	case *element.Block:
		return fmt.Sprintf("block %d [%d, %d] %q", e.ID(), e.Start(), e.End(), e.PlainText())
	case *element.Text:
		return fmt.Sprintf("text %d %q", e.ID(), e.PlainText())
	case *element.Image:
		return fmt.Sprintf("image %d %q", e.ID(), element.ObjectReplacementCharacter)
	default:
		return fmt.Sprintf("element %d", el.ID())
	}
}
