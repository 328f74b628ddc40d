package element

import (
	"testing"

	"github.com/dshills/textdoc/document/format"
)

// twoRunBlock builds a block holding "plain_text" and " is life" as
// two text runs with distinct formats so they do not merge.
func twoRunBlock(t *testing.T) (*Manager, *Block) {
	t.Helper()
	m := NewManager()
	b := m.FirstBlock()

	t1 := b.FirstChild().(*Text)
	t1.SetText("plain_text")

	t2, err := m.InsertNewText(t1.ID(), After)
	if err != nil {
		t.Fatalf("InsertNewText: %v", err)
	}
	t2.SetText(" is life")
	cf := format.CharFormat{}
	cf.Font.SetBold()
	t2.SetFormat(cf)

	return m, b
}

func TestBlockPositionAccounting(t *testing.T) {
	m := NewManager()
	b1 := m.FirstBlock()
	if err := b1.SetPlainText("beginning"); err != nil {
		t.Fatalf("SetPlainText: %v", err)
	}
	b2, _ := m.InsertNewBlock(b1.ID(), After)
	if err := b2.SetPlainText("block"); err != nil {
		t.Fatalf("SetPlainText: %v", err)
	}
	b3, _ := m.InsertNewBlock(b2.ID(), After)
	if err := b3.SetPlainText("end"); err != nil {
		t.Fatalf("SetPlainText: %v", err)
	}

	for _, tc := range []struct {
		name        string
		block       *Block
		pos, length int
		number      int
	}{
		{"first", b1, 0, 9, 0},
		{"second", b2, 10, 5, 1},
		{"third", b3, 16, 3, 2},
	} {
		if got := tc.block.Position(); got != tc.pos {
			t.Errorf("%s Position() = %d, want %d", tc.name, got, tc.pos)
		}
		if got := tc.block.TextLength(); got != tc.length {
			t.Errorf("%s TextLength() = %d, want %d", tc.name, got, tc.length)
		}
		if got := tc.block.BlockNumber(); got != tc.number {
			t.Errorf("%s BlockNumber() = %d, want %d", tc.name, got, tc.number)
		}
	}
	if got := m.RootFrame().End(); got != 19 {
		t.Errorf("document End() = %d, want 19", got)
	}
}

func TestConvertPositionFromBlockToChild(t *testing.T) {
	_, b := twoRunBlock(t)

	// Runs: "plain_text" covers [0, 10], " is life" covers [10, 18].
	for _, tc := range []struct {
		posInBlock, want int
	}{
		{0, 0},
		{3, 3},
		{10, 10},
		{14, 4},
		{18, 8},
	} {
		if got := b.ConvertPositionFromBlockToChild(tc.posInBlock); got != tc.want {
			t.Errorf("ConvertPositionFromBlockToChild(%d) = %d, want %d", tc.posInBlock, got, tc.want)
		}
	}
}

func TestBlockPlainText(t *testing.T) {
	_, b := twoRunBlock(t)

	if got := b.PlainText(); got != "plain_text is life" {
		t.Errorf("PlainText() = %q", got)
	}
	if got := b.PlainTextBetweenPositions(6, 14); got != "text is" {
		t.Errorf("PlainTextBetweenPositions(6, 14) = %q", got)
	}
	if got := b.PlainTextBetweenPositions(10, 99); got != " is life" {
		t.Errorf("clamped PlainTextBetweenPositions = %q", got)
	}
}

func TestBlockInsertPlainText(t *testing.T) {
	m := NewManager()
	b := m.FirstBlock()
	if err := b.SetPlainText("AB"); err != nil {
		t.Fatalf("SetPlainText: %v", err)
	}

	if err := b.InsertPlainText("plain_text", 1); err != nil {
		t.Fatalf("InsertPlainText: %v", err)
	}

	if got := b.PlainText(); got != "Aplain_textB" {
		t.Errorf("PlainText() = %q, want Aplain_textB", got)
	}
	if got := b.TextLength(); got != 12 {
		t.Errorf("TextLength() = %d, want 12", got)
	}
}

func TestBlockSplit(t *testing.T) {
	m := NewManager()
	b := m.FirstBlock()
	if err := b.SetPlainText("beginning"); err != nil {
		t.Fatalf("SetPlainText: %v", err)
	}

	tail, err := b.Split(5)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}

	if got := b.PlainText(); got != "begin" {
		t.Errorf("head PlainText() = %q, want begin", got)
	}
	if got := tail.PlainText(); got != "ning" {
		t.Errorf("tail PlainText() = %q, want ning", got)
	}
	if got := m.BlockCount(); got != 2 {
		t.Errorf("BlockCount() = %d, want 2", got)
	}
	if got := tail.Position(); got != 6 {
		t.Errorf("tail Position() = %d, want 6", got)
	}
}

func TestBlockSplitAtEnd(t *testing.T) {
	m := NewManager()
	b := m.FirstBlock()
	if err := b.SetPlainText("abc"); err != nil {
		t.Fatalf("SetPlainText: %v", err)
	}

	tail, err := b.Split(3)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}

	if got := tail.PlainText(); got != "" {
		t.Errorf("tail PlainText() = %q, want empty", got)
	}
	if got := len(tail.Children()); got != 1 {
		t.Errorf("tail children = %d, want 1", got)
	}
}

func TestBlockMergeWithIsSplitInverse(t *testing.T) {
	m := NewManager()
	b := m.FirstBlock()
	if err := b.SetPlainText("beginning"); err != nil {
		t.Fatalf("SetPlainText: %v", err)
	}

	tail, err := b.Split(5)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if err := b.MergeWith(tail); err != nil {
		t.Fatalf("MergeWith: %v", err)
	}

	if got := b.PlainText(); got != "beginning" {
		t.Errorf("PlainText() = %q, want beginning", got)
	}
	if got := m.BlockCount(); got != 1 {
		t.Errorf("BlockCount() = %d, want 1", got)
	}
	// Equal formats coalesce back into a single run.
	if got := len(b.Children()); got != 1 {
		t.Errorf("children = %d after merge, want 1", got)
	}
}

func TestRemoveBetweenPositionsSameRun(t *testing.T) {
	m := NewManager()
	b := m.FirstBlock()
	if err := b.SetPlainText("beginning end"); err != nil {
		t.Fatalf("SetPlainText: %v", err)
	}

	newPos, removed, err := b.RemoveBetweenPositions(3, 10)
	if err != nil {
		t.Fatalf("RemoveBetweenPositions: %v", err)
	}

	if got := b.PlainText(); got != "begend" {
		t.Errorf("PlainText() = %q, want begend", got)
	}
	if newPos != 3 || removed != 7 {
		t.Errorf("RemoveBetweenPositions = (%d, %d), want (3, 7)", newPos, removed)
	}
}

func TestRemoveBetweenPositionsAcrossRuns(t *testing.T) {
	_, b := twoRunBlock(t)

	// Spans the run boundary: "plain_text" / " is life".
	_, removed, err := b.RemoveBetweenPositions(5, 13)
	if err != nil {
		t.Fatalf("RemoveBetweenPositions: %v", err)
	}

	if got := b.PlainText(); got != "plain life" {
		t.Errorf("PlainText() = %q, want %q", got, "plain life")
	}
	if removed != 8 {
		t.Errorf("removed = %d, want 8", removed)
	}
}

func TestImageInBlock(t *testing.T) {
	m := NewManager()
	b := m.FirstBlock()
	t1 := b.FirstChild().(*Text)
	t1.SetText("ab")

	img, err := m.InsertNewImage(t1.ID(), After)
	if err != nil {
		t.Fatalf("InsertNewImage: %v", err)
	}

	if got := img.TextLength(); got != 1 {
		t.Errorf("image TextLength() = %d, want 1", got)
	}
	if got := b.TextLength(); got != 3 {
		t.Errorf("block TextLength() = %d, want 3", got)
	}
	if got := b.PlainText(); got != "ab " {
		t.Errorf("PlainText() = %q, want %q", got, "ab ")
	}
	if got := img.PositionInBlock(); got != 2 {
		t.Errorf("image PositionInBlock() = %d, want 2", got)
	}
}

func imageRunBlock(t *testing.T) (*Manager, *Block) {
	t.Helper()
	m := NewManager()
	b := m.FirstBlock()
	t1 := b.FirstChild().(*Text)
	t1.SetText("ab")
	img, err := m.InsertNewImage(t1.ID(), After)
	if err != nil {
		t.Fatalf("InsertNewImage: %v", err)
	}
	t2, err := m.InsertNewText(img.ID(), After)
	if err != nil {
		t.Fatalf("InsertNewText: %v", err)
	}
	t2.SetText("cd")
	return m, b
}

func TestRemoveBetweenPositionsRightEdgeOnImage(t *testing.T) {
	_, b := imageRunBlock(t)

	newPos, removed, err := b.RemoveBetweenPositions(1, 3)
	if err != nil {
		t.Fatalf("RemoveBetweenPositions: %v", err)
	}
	if got := b.PlainText(); got != "acd" {
		t.Errorf("PlainText() = %q, want %q", got, "acd")
	}
	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}
	if newPos != 1 {
		t.Errorf("newPosition = %d, want 1", newPos)
	}
	if got := len(b.Children()); got != 1 {
		t.Errorf("children after merge = %d, want 1", got)
	}
}

func TestRemoveBetweenPositionsCoveredLeadingImage(t *testing.T) {
	m := NewManager()
	b := m.FirstBlock()
	t1 := b.FirstChild().(*Text)
	t1.SetText("cd")
	if _, err := m.InsertNewImage(t1.ID(), Before); err != nil {
		t.Fatalf("InsertNewImage: %v", err)
	}

	newPos, removed, err := b.RemoveBetweenPositions(0, 2)
	if err != nil {
		t.Fatalf("RemoveBetweenPositions: %v", err)
	}
	if got := b.PlainText(); got != "d" {
		t.Errorf("PlainText() = %q, want %q", got, "d")
	}
	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}
	if newPos != 0 {
		t.Errorf("newPosition = %d, want 0", newPos)
	}
}

func TestRemoveBetweenPositionsKeepsUncoveredImage(t *testing.T) {
	m := NewManager()
	b := m.FirstBlock()
	t1 := b.FirstChild().(*Text)
	t1.SetText("cd")
	if _, err := m.InsertNewImage(t1.ID(), Before); err != nil {
		t.Fatalf("InsertNewImage: %v", err)
	}

	// The span starts after the image, so the image survives.
	_, removed, err := b.RemoveBetweenPositions(1, 2)
	if err != nil {
		t.Fatalf("RemoveBetweenPositions: %v", err)
	}
	if got := b.PlainText(); got != " d" {
		t.Errorf("PlainText() = %q, want %q", got, " d")
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
}

func TestCharFormatAt(t *testing.T) {
	_, b := twoRunBlock(t)

	cf, ok := b.CharFormatAt(0)
	if !ok {
		t.Fatal("CharFormatAt(0) not resolved")
	}
	if cf.Font.Bold() {
		t.Error("leading run reported bold")
	}
	if _, ok := b.CharFormatAt(5); ok {
		t.Error("CharFormatAt(5) resolved, want miss")
	}
}

func TestTextSplitAndRemove(t *testing.T) {
	m := NewManager()
	b := m.FirstBlock()
	t1 := b.FirstChild().(*Text)
	t1.SetText("abcdef")

	tail, err := t1.Split(4)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if t1.PlainText() != "abcd" || tail.PlainText() != "ef" {
		t.Errorf("split = %q / %q", t1.PlainText(), tail.PlainText())
	}

	if err := t1.RemoveText(1, 3); err != nil {
		t.Fatalf("RemoveText: %v", err)
	}
	if got := t1.PlainText(); got != "ad" {
		t.Errorf("PlainText() = %q, want ad", got)
	}

	if err := t1.RemoveText(1, 5); err == nil {
		t.Error("out of bounds RemoveText succeeded")
	}
}
