package cst

// HeadingStyle distinguishes ATX (#) from Setext (underline) headings.
type HeadingStyle uint8

const (
	// HeadingATX represents '#'-prefixed headings.
	HeadingATX HeadingStyle = iota

	// HeadingSetext represents underlined headings (==== / ----).
	HeadingSetext
)

// TaskState is the checkbox state of a list item.
type TaskState uint8

const (
	// TaskNone means the item carries no task marker.
	TaskNone TaskState = iota

	// TaskUnchecked represents "[ ]".
	TaskUnchecked

	// TaskChecked represents "[x]" or "[X]".
	TaskChecked
)

// Alignment is a GFM table column alignment.
type Alignment uint8

const (
	// AlignNone means no alignment colon was given.
	AlignNone Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// String returns the HTML attribute value for the alignment, or "" for none.
func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return ""
	}
}

// BlockAttrs holds attributes for block-level nodes. Only the field matching
// the node kind is set.
type BlockAttrs struct {
	// Heading holds attributes for KindHeading.
	Heading *HeadingAttrs

	// Code holds attributes for KindFencedCode and KindIndentedCode.
	Code *CodeAttrs

	// List holds attributes for KindList.
	List *ListAttrs

	// Item holds attributes for KindListItem.
	Item *ItemAttrs

	// LinkRef holds attributes for KindLinkRefDef.
	LinkRef *LinkRefAttrs

	// Table holds attributes for KindTable.
	Table *TableAttrs

	// Cell holds attributes for KindTableCell.
	Cell *CellAttrs

	// BreakMarker is the marker character for KindThematicBreak
	// ('-', '_', or '*').
	BreakMarker byte

	// FootnoteLabel is the label for KindFootnoteDef, without "[^" and "]".
	FootnoteLabel string

	// BlankCount is the number of blank lines in a KindBlankLines run.
	BlankCount int
}

// HeadingAttrs holds attributes for heading nodes.
type HeadingAttrs struct {
	// Level is the heading level (1-6).
	Level int

	// Style is ATX or Setext.
	Style HeadingStyle

	// SetextMarker is the underline character ('=' or '-') for Setext
	// headings.
	SetextMarker byte
}

// CodeAttrs holds attributes for code block nodes.
type CodeAttrs struct {
	// FenceChar is the fence character ('`' or '~'); zero for indented
	// code.
	FenceChar byte

	// FenceLength is the number of fence characters (>= 3).
	FenceLength int

	// Info is the info string, backslash-unescaped and trimmed.
	Info string

	// Body is the span of the raw code body, fences excluded.
	Body Span

	// Literal is the code body with container prefixes stripped, ending
	// with a newline unless empty. This is the content rendered into
	// <pre><code>.
	Literal []byte

	// Closed is true when a closing fence was found (always true for
	// indented code). The incremental driver refuses to splice a window
	// whose last block is an unclosed fence, since a full parse could
	// swallow the following blocks.
	Closed bool
}

// ListAttrs holds attributes for list nodes.
type ListAttrs struct {
	// Ordered is true for ordered lists.
	Ordered bool

	// Start is the starting number for ordered lists.
	Start int

	// Marker is the bullet character ('-', '+', '*') or the ordered
	// delimiter ('.' or ')').
	Marker byte

	// Tight is true if no blank line separates any two items' contents.
	Tight bool
}

// ItemAttrs holds attributes for list item nodes.
type ItemAttrs struct {
	// Task is the checkbox state lifted from the item's first paragraph.
	Task TaskState

	// Width is the marker width including trailing spaces: continuation
	// lines belong to the item only if indented by at least this much.
	Width int
}

// LinkRefAttrs holds attributes for link reference definition nodes.
type LinkRefAttrs struct {
	// Label is the reference label, brackets excluded, not normalized.
	Label string

	// Destination is the link destination.
	Destination string

	// Title is the optional title, quotes excluded.
	Title string
}

// TableAttrs holds attributes for table nodes.
type TableAttrs struct {
	// Alignments holds one entry per column, from the delimiter row.
	Alignments []Alignment
}

// CellAttrs holds attributes for table cell nodes.
type CellAttrs struct {
	// Header is true for cells in the header row.
	Header bool

	// Align is the column alignment this cell renders with.
	Align Alignment
}

// RefStyle indicates the syntax style of a reference link or image.
type RefStyle uint8

const (
	// RefFull represents [text][label].
	RefFull RefStyle = iota

	// RefCollapsed represents [label][].
	RefCollapsed

	// RefShortcut represents [label].
	RefShortcut
)

// LinkAttrs holds attributes for link and image nodes.
type LinkAttrs struct {
	// Destination is the link URL (inline links and images).
	Destination string

	// Title is the optional link title.
	Title string

	// Label is the reference label for KindRefLink and KindRefImage.
	Label string

	// Style is the reference syntax used for KindRefLink and KindRefImage.
	Style RefStyle
}

// AutolinkAttrs holds attributes for autolink nodes.
type AutolinkAttrs struct {
	// URL is the destination, angle brackets excluded.
	URL string

	// Email is true for email autolinks (rendered with mailto:).
	Email bool
}

// InlineAttrs holds attributes for inline-level nodes.
type InlineAttrs struct {
	// Literal overrides the node's source slice as its text content.
	// Set for escaped characters and for content assembled across
	// container-stripped lines; nil means the span slice is the content.
	Literal []byte

	// Ticks is the backtick run length for KindCodeSpan.
	Ticks int

	// Marker is the delimiter character for KindEmphasis, KindStrong
	// ('*' or '_') and KindStrikethrough ('~').
	Marker byte

	// Link holds attributes for link, image, and reference nodes.
	Link *LinkAttrs

	// Autolink holds attributes for KindAutolink.
	Autolink *AutolinkAttrs

	// FootnoteLabel is the label for KindFootnoteRef.
	FootnoteLabel string
}
