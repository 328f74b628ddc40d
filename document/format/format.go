// Package format holds the formatting value objects of the document
// model: character, block, frame and image formats plus the font.
//
// All fields are optional. Merging follows if-set-overwrite semantics
// per field: a set field in the incoming format replaces the receiver's
// field, an unset field leaves it alone. Set and merge operations report
// whether anything actually changed so callers can skip redundant
// change signals. The formats carry no tree-structural logic.
package format

import "slices"

// Ptr returns a pointer to v, for building formats with optional fields.
func Ptr[T any](v T) *T {
	return &v
}

// mergeField overwrites *dst when src is set, reporting a change.
func mergeField[T comparable](dst **T, src *T) bool {
	if src == nil {
		return false
	}
	if *dst != nil && **dst == *src {
		return false
	}
	v := *src
	*dst = &v
	return true
}

// eqField compares two optional fields by value.
func eqField[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Alignment is the horizontal alignment of a block.
type Alignment uint8

const (
	AlignLeft Alignment = iota
	AlignRight
	AlignHCenter
	AlignJustify
)

// MarkerType is the checklist marker of a block.
type MarkerType uint8

const (
	NoMarker MarkerType = iota
	MarkerUnchecked
	MarkerChecked
)

// UnderlineStyle selects how underlined text is drawn.
type UnderlineStyle uint8

const (
	NoUnderline UnderlineStyle = iota
	SingleUnderline
	DashUnderline
	DotLine
	DashDotLine
	DashDotDotLine
	WaveUnderline
	SpellCheckUnderline
)

// CharVerticalAlignment positions characters relative to the baseline.
type CharVerticalAlignment uint8

const (
	AlignNormal CharVerticalAlignment = iota
	AlignSuperScript
	AlignSubScript
	AlignMiddle
	AlignBottom
	AlignTop
	AlignBaseline
)

// FramePosition selects how a frame participates in surrounding flow.
type FramePosition uint8

const (
	InFlow FramePosition = iota
	FloatLeft
	FloatRight
)

// CharFormat describes a run of characters sharing one appearance.
type CharFormat struct {
	Font Font

	AnchorHref        *string
	AnchorNames       []string
	IsAnchor          *bool
	ToolTip           *string
	UnderlineStyle    *UnderlineStyle
	VerticalAlignment *CharVerticalAlignment
}

// MergeWith overwrites every field of c that is set in other.
func (c *CharFormat) MergeWith(other CharFormat) bool {
	changed := c.Font.MergeWith(other.Font)
	changed = mergeField(&c.AnchorHref, other.AnchorHref) || changed
	if other.AnchorNames != nil && !slices.Equal(c.AnchorNames, other.AnchorNames) {
		c.AnchorNames = slices.Clone(other.AnchorNames)
		changed = true
	}
	changed = mergeField(&c.IsAnchor, other.IsAnchor) || changed
	changed = mergeField(&c.ToolTip, other.ToolTip) || changed
	changed = mergeField(&c.UnderlineStyle, other.UnderlineStyle) || changed
	changed = mergeField(&c.VerticalAlignment, other.VerticalAlignment) || changed
	return changed
}

// Equals reports structural equality.
func (c CharFormat) Equals(other CharFormat) bool {
	return c.Font.Equals(other.Font) &&
		eqField(c.AnchorHref, other.AnchorHref) &&
		slices.Equal(c.AnchorNames, other.AnchorNames) &&
		eqField(c.IsAnchor, other.IsAnchor) &&
		eqField(c.ToolTip, other.ToolTip) &&
		eqField(c.UnderlineStyle, other.UnderlineStyle) &&
		eqField(c.VerticalAlignment, other.VerticalAlignment)
}

// BlockFormat describes paragraph-level presentation.
type BlockFormat struct {
	Alignment    *Alignment
	TopMargin    *int
	BottomMargin *int
	LeftMargin   *int
	RightMargin  *int
	HeadingLevel *int
	Indent       *int
	TextIndent   *int
	Marker       *MarkerType
}

// MergeWith overwrites every field of b that is set in other.
func (b *BlockFormat) MergeWith(other BlockFormat) bool {
	changed := false
	changed = mergeField(&b.Alignment, other.Alignment) || changed
	changed = mergeField(&b.TopMargin, other.TopMargin) || changed
	changed = mergeField(&b.BottomMargin, other.BottomMargin) || changed
	changed = mergeField(&b.LeftMargin, other.LeftMargin) || changed
	changed = mergeField(&b.RightMargin, other.RightMargin) || changed
	changed = mergeField(&b.HeadingLevel, other.HeadingLevel) || changed
	changed = mergeField(&b.Indent, other.Indent) || changed
	changed = mergeField(&b.TextIndent, other.TextIndent) || changed
	changed = mergeField(&b.Marker, other.Marker) || changed
	return changed
}

// Equals reports structural equality.
func (b BlockFormat) Equals(other BlockFormat) bool {
	return eqField(b.Alignment, other.Alignment) &&
		eqField(b.TopMargin, other.TopMargin) &&
		eqField(b.BottomMargin, other.BottomMargin) &&
		eqField(b.LeftMargin, other.LeftMargin) &&
		eqField(b.RightMargin, other.RightMargin) &&
		eqField(b.HeadingLevel, other.HeadingLevel) &&
		eqField(b.Indent, other.Indent) &&
		eqField(b.TextIndent, other.TextIndent) &&
		eqField(b.Marker, other.Marker)
}

// FrameFormat describes a layout region.
type FrameFormat struct {
	Height       *int
	Width        *int
	TopMargin    *int
	BottomMargin *int
	LeftMargin   *int
	RightMargin  *int
	Padding      *int
	Border       *int
	Position     *FramePosition
}

// MergeWith overwrites every field of f that is set in other.
func (f *FrameFormat) MergeWith(other FrameFormat) bool {
	changed := false
	changed = mergeField(&f.Height, other.Height) || changed
	changed = mergeField(&f.Width, other.Width) || changed
	changed = mergeField(&f.TopMargin, other.TopMargin) || changed
	changed = mergeField(&f.BottomMargin, other.BottomMargin) || changed
	changed = mergeField(&f.LeftMargin, other.LeftMargin) || changed
	changed = mergeField(&f.RightMargin, other.RightMargin) || changed
	changed = mergeField(&f.Padding, other.Padding) || changed
	changed = mergeField(&f.Border, other.Border) || changed
	changed = mergeField(&f.Position, other.Position) || changed
	return changed
}

// Equals reports structural equality.
func (f FrameFormat) Equals(other FrameFormat) bool {
	return eqField(f.Height, other.Height) &&
		eqField(f.Width, other.Width) &&
		eqField(f.TopMargin, other.TopMargin) &&
		eqField(f.BottomMargin, other.BottomMargin) &&
		eqField(f.LeftMargin, other.LeftMargin) &&
		eqField(f.RightMargin, other.RightMargin) &&
		eqField(f.Padding, other.Padding) &&
		eqField(f.Border, other.Border) &&
		eqField(f.Position, other.Position)
}

// ImageFormat describes an inline image. It embeds a character format
// so an image can carry run-level attributes like an anchor.
type ImageFormat struct {
	CharFormat

	Height  *int
	Width   *int
	Quality *int
	Name    *string
}

// MergeWith overwrites every field of i that is set in other.
func (i *ImageFormat) MergeWith(other ImageFormat) bool {
	changed := i.CharFormat.MergeWith(other.CharFormat)
	changed = mergeField(&i.Height, other.Height) || changed
	changed = mergeField(&i.Width, other.Width) || changed
	changed = mergeField(&i.Quality, other.Quality) || changed
	changed = mergeField(&i.Name, other.Name) || changed
	return changed
}

// Equals reports structural equality.
func (i ImageFormat) Equals(other ImageFormat) bool {
	return i.CharFormat.Equals(other.CharFormat) &&
		eqField(i.Height, other.Height) &&
		eqField(i.Width, other.Width) &&
		eqField(i.Quality, other.Quality) &&
		eqField(i.Name, other.Name)
}
