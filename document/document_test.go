package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/textdoc/document/cursor"
	"github.com/dshills/textdoc/document/element"
)

func TestNewDocumentIsNeverEmpty(t *testing.T) {
	d, err := New()
	require.NoError(t, err)

	assert.Equal(t, 1, d.BlockCount())
	assert.Equal(t, 0, d.CharacterCount())
	assert.Equal(t, "", d.ToPlainText())
	assert.NotEqual(t, d.ID().String(), "")
}

func TestNewWithOptions(t *testing.T) {
	tabs := []Tab{{Position: 8, Type: LeftTab}}
	d, err := New(WithPlainText("one\ntwo"), WithTabStops(tabs))
	require.NoError(t, err)

	assert.Equal(t, 2, d.BlockCount())
	assert.Equal(t, "one\ntwo", d.ToPlainText())
	assert.Equal(t, tabs, d.Tabs())
}

func TestSetPlainTextRoundTrip(t *testing.T) {
	d, err := New()
	require.NoError(t, err)

	for _, text := range []string{
		"",
		"single",
		"beginning\nblock\nend",
		"\nleading empty",
		"trailing empty\n",
	} {
		require.NoError(t, d.SetPlainText(text))
		assert.Equal(t, text, d.ToPlainText(), "round trip of %q", text)
		assert.Equal(t, len(text), d.CharacterCount(), "length of %q", text)
	}
}

func TestSetPlainTextSignals(t *testing.T) {
	d, err := New()
	require.NoError(t, err)

	var texts []element.TextChange
	d.OnTextChanged(func(tc element.TextChange) { texts = append(texts, tc) })

	var elements []element.ElementChange
	d.OnElementChanged(func(ec element.ElementChange) { elements = append(elements, ec) })

	require.NoError(t, d.SetPlainText("new\nplain_text\ntest"))

	require.Len(t, texts, 1)
	assert.Equal(t, element.TextChange{Position: 0, Removed: 0, Added: 19}, texts[0])

	require.Len(t, elements, 1)
	assert.Equal(t, element.ElementID(0), elements[0].Element.ID())
	assert.Equal(t, element.ChildrenChanged, elements[0].Reason)
}

func TestSetPlainTextReportsReplacedLength(t *testing.T) {
	d, err := New(WithPlainText("beginning\nblock\nend"))
	require.NoError(t, err)

	var texts []element.TextChange
	d.OnTextChanged(func(tc element.TextChange) { texts = append(texts, tc) })

	require.NoError(t, d.SetPlainText("short"))

	require.Len(t, texts, 1)
	assert.Equal(t, element.TextChange{Position: 0, Removed: 19, Added: 5}, texts[0])
}

func TestCursorEditsThroughDocument(t *testing.T) {
	d, err := New(WithPlainText("beginningend"))
	require.NoError(t, err)

	var texts []element.TextChange
	d.OnTextChanged(func(tc element.TextChange) { texts = append(texts, tc) })

	c := d.NewCursor()
	c.SetPosition(9, cursor.MoveAnchor)
	start, end, err := c.InsertPlainText("new\nplain_text\ntest")
	require.NoError(t, err)

	assert.Equal(t, 9, start)
	assert.Equal(t, 3, d.BlockCount())
	assert.Equal(t, "beginningnew\nplain_text\ntestend", d.ToPlainText())
	assert.Equal(t, end, c.Position())

	require.Len(t, texts, 1)
	assert.Equal(t, 9, texts[0].Position)
	assert.Equal(t, 19, texts[0].Added)
}

func TestTwoCursorsShareOneDocument(t *testing.T) {
	d, err := New(WithPlainText("beginning\nblock\nend"))
	require.NoError(t, err)

	editor := d.NewCursor()
	observer := d.NewCursor()
	observer.MovePosition(cursor.End, cursor.MoveAnchor)
	require.Equal(t, 19, observer.Position())

	editor.SetPosition(3, cursor.MoveAnchor)
	editor.SetPosition(17, cursor.KeepAnchor)
	_, _, err = editor.Remove()
	require.NoError(t, err)

	// The stale cursor degrades to the new document end.
	assert.Equal(t, 5, observer.Position())
	assert.Equal(t, "begnd", d.ToPlainText())
}

func TestDumpElements(t *testing.T) {
	d, err := New(WithPlainText("one\ntwo"))
	require.NoError(t, err)

	dump := d.DumpElements()
	assert.Contains(t, dump, "frame 0")
	assert.Contains(t, dump, `"one"`)
	assert.Contains(t, dump, `"two"`)
}

func TestElementsExposesManager(t *testing.T) {
	d, err := New(WithPlainText("abc"))
	require.NoError(t, err)

	m := d.Elements()
	require.NotNil(t, m)
	assert.Equal(t, 3, m.RootFrame().End())
	assert.Equal(t, "abc", m.FirstBlock().PlainText())
}
