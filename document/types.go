package document

// Type definitions for the normalized block model. Everything here is already
// validated: renderers never have to check shapes again.

// BlockKind distinguishes the different kinds of blocks.
type BlockKind string

const (
	BlockHeading      BlockKind = "heading"
	BlockParagraph    BlockKind = "paragraph"
	BlockImage        BlockKind = "image"
	BlockCode         BlockKind = "code"
	BlockEquation     BlockKind = "equation"
	BlockList         BlockKind = "list"
	BlockTable        BlockKind = "table"
	BlockSectionBreak BlockKind = "sectionBreak"
	BlockPageBreak    BlockKind = "pageBreak"
	BlockQuote        BlockKind = "blockquote"
	BlockGeneric      BlockKind = "generic"
)

// Flow reports whether blocks of this kind take part in normal document flow
// and so must never be positioned.
func (k BlockKind) Flow() bool {
	switch k {
	case BlockHeading, BlockParagraph, BlockList, BlockCode, BlockEquation, BlockQuote, BlockGeneric:
		return true
	}
	return false
}

// Block is a top-level structural unit of the document. Exactly one of the
// kind specific pointers is set, matching Kind; Heading, Paragraph, Quote and
// Generic blocks keep their inline content in Content.
type Block struct {
	Kind BlockKind
	// Type is the type tag as the producer wrote it.
	Type           string
	Style          any // *Object, raw declaration string or nil
	ParagraphStyle *Object

	Content  Content
	Level    int
	Image    *Image
	Code     *Code
	Equation *Equation
	List     *List
	Table    *Table
	Section  *SectionBreak
	// Empty is set for generic blocks without content, those render nothing.
	Empty bool
}

// Content is inline content or, inside table cells, nested blocks.
type Content struct {
	Runs   []Run
	Blocks []Block
}

// IsEmpty reports absence of any content.
func (c Content) IsEmpty() bool {
	return len(c.Runs) == 0 && len(c.Blocks) == 0
}

// PlainText extracts text of all text runs (and nested blocks).
func (c Content) PlainText() string {
	var text string
	for _, r := range c.Runs {
		if r.Kind == RunText {
			text += r.Text.Text
		}
	}
	for _, b := range c.Blocks {
		text += b.Content.PlainText()
	}
	return text
}

// RunKind distinguishes inline runs.
type RunKind string

const (
	RunText  RunKind = "text"
	RunField RunKind = "field"
	RunImage RunKind = "image"
)

// Run is a single inline item.
type Run struct {
	Kind  RunKind
	Text  *TextRun
	Field *FieldRun
	Image *ImageRun
}

// TextRun is formatted text. Size-like values (FontSize, LetterSpacing) are
// kept raw so unit resolution stays with the style resolver.
type TextRun struct {
	Text string
	// Typed is set when producer supplied explicit run type.
	Typed bool

	Bold           bool
	Italic         bool
	Underline      bool
	Wavy           bool
	Strikethrough  bool
	Double         bool
	Subscript      bool
	Superscript    bool
	UnderlineColor string
	Color          string
	Highlight      string
	FontFamily     string
	FontSize       any
	LetterSpacing  any
	TextShadow     string
	Link           string
	HasLink        bool
	Style          any
}

// FieldRun is placeholder computed from its code at render time.
type FieldRun struct {
	Code string
}

// Field codes with special display.
const (
	FieldPageNumber  = "PAGE_NUMBER"
	FieldTotalPages  = "TOTAL_PAGES"
	FieldCurrentDate = "CURRENT_DATE"
)

// ImageRun is an inline image.
type ImageRun struct {
	Src   string
	Alt   string
	Style any
}

// Image is a block image.
type Image struct {
	Src string
	Alt string
}

// Code is code block, either verbatim text (Raw) or formatted runs.
type Code struct {
	Language string
	Raw      string
	IsRaw    bool
}

// Equation keeps LaTeX source untouched.
type Equation struct {
	Latex string
}

// List is ordered or unordered list. Nested lists always share listType of
// their parent.
type List struct {
	Ordered     bool
	MarkerStyle string
	Items       []ListItem
}

// ListItem has inline content and optional nested list.
type ListItem struct {
	Content Content
	Sub     *List
}

// Table is table block with its configuration.
type Table struct {
	ColumnWidths []any
	HasHeaderRow bool
	BandedRows   bool
	BorderColor  string
	Rows         []Row
}

// Row is a table row.
type Row struct {
	Cells []Cell
}

// Cell is a table cell, zero spans mean attribute was not supplied.
type Cell struct {
	Content Content
	ColSpan int
	RowSpan int
	Style   any
}

// SectionBreak keeps the section configuration as supplied.
type SectionBreak struct {
	Config      *Object
	Orientation string
}
