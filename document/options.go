package document

// TabType names the alignment behavior of one tab stop.
type TabType uint8

const (
	LeftTab TabType = iota
	RightTab
	CenterTab
	DelimiterTab
)

// Tab is one tab stop. The model only stores tab stops; honoring them
// is a layout concern.
type Tab struct {
	Position  int
	Type      TabType
	Delimiter rune
}

// Option configures a Document during creation.
type Option func(*Document)

// WithPlainText sets the initial content of the document.
func WithPlainText(text string) Option {
	return func(d *Document) {
		d.initText = text
	}
}

// WithTabStops sets the document's tab stops.
func WithTabStops(tabs []Tab) Option {
	return func(d *Document) {
		d.tabs = tabs
	}
}
