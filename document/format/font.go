package format

import "slices"

// Weight is a predefined font weight, OpenType compatible.
type Weight int

const (
	WeightThin       Weight = 100
	WeightExtraLight Weight = 200
	WeightLight      Weight = 300
	WeightNormal     Weight = 400
	WeightMedium     Weight = 500
	WeightDemiBold   Weight = 600
	WeightBold       Weight = 700
	WeightExtraBold  Weight = 800
	WeightBlack      Weight = 900
)

// Style selects the glyph style.
type Style uint8

const (
	StyleNormal Style = iota
	StyleItalic
	StyleOblique
)

// SizeType selects the unit of a font size.
type SizeType uint8

const (
	SizePoint SizeType = iota
	SizePixel
)

// FontSize is a sized value with its unit.
type FontSize struct {
	Type  SizeType
	Value int
}

// Capitalisation selects the rendered letter case.
type Capitalisation uint8

const (
	MixedCase Capitalisation = iota
	AllUppercase
	AllLowercase
	SmallCaps
	Capitalize
)

// SpacingType selects how letter spacing values are interpreted.
type SpacingType uint8

const (
	// PercentageSpacing keeps spacing unchanged at 100; 200 enlarges the
	// spacing after a character by the width of the character itself.
	PercentageSpacing SpacingType = iota
	// AbsoluteSpacing adds or removes the given number of pixels.
	AbsoluteSpacing
)

// Font describes character rendering. Every field is optional; an unset
// field means "inherit whatever applies".
type Font struct {
	Weight            *Weight
	Style             *Style
	Underline         *bool
	StrikeOut         *bool
	Size              *FontSize
	Capitalisation    *Capitalisation
	Families          []string
	LetterSpacing     *int
	LetterSpacingType *SpacingType
	WordSpacing       *int
}

// Bold reports whether the font weighs at least bold.
func (f Font) Bold() bool {
	return f.Weight != nil && *f.Weight >= WeightBold
}

// SetBold sets the weight to bold.
func (f *Font) SetBold() {
	f.Weight = Ptr(WeightBold)
}

// Italic reports whether the style is italic or oblique.
func (f Font) Italic() bool {
	return f.Style != nil && *f.Style >= StyleItalic
}

// SetItalic sets the style to italic.
func (f *Font) SetItalic() {
	f.Style = Ptr(StyleItalic)
}

// Family returns the first configured family, if any.
func (f Font) Family() (string, bool) {
	if len(f.Families) == 0 {
		return "", false
	}
	return f.Families[0], true
}

// MergeWith overwrites every field of f that is set in other. It reports
// whether anything changed.
func (f *Font) MergeWith(other Font) bool {
	changed := false
	changed = mergeField(&f.Weight, other.Weight) || changed
	changed = mergeField(&f.Style, other.Style) || changed
	changed = mergeField(&f.Underline, other.Underline) || changed
	changed = mergeField(&f.StrikeOut, other.StrikeOut) || changed
	changed = mergeField(&f.Size, other.Size) || changed
	changed = mergeField(&f.Capitalisation, other.Capitalisation) || changed
	if other.Families != nil && !slices.Equal(f.Families, other.Families) {
		f.Families = slices.Clone(other.Families)
		changed = true
	}
	changed = mergeField(&f.LetterSpacing, other.LetterSpacing) || changed
	changed = mergeField(&f.LetterSpacingType, other.LetterSpacingType) || changed
	changed = mergeField(&f.WordSpacing, other.WordSpacing) || changed
	return changed
}

// Equals reports structural equality.
func (f Font) Equals(other Font) bool {
	return eqField(f.Weight, other.Weight) &&
		eqField(f.Style, other.Style) &&
		eqField(f.Underline, other.Underline) &&
		eqField(f.StrikeOut, other.StrikeOut) &&
		eqField(f.Size, other.Size) &&
		eqField(f.Capitalisation, other.Capitalisation) &&
		slices.Equal(f.Families, other.Families) &&
		eqField(f.LetterSpacing, other.LetterSpacing) &&
		eqField(f.LetterSpacingType, other.LetterSpacingType) &&
		eqField(f.WordSpacing, other.WordSpacing)
}
