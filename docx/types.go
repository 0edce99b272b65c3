// Package docx reads WordprocessingML packages into a strongly typed tree
// suitable for rendering. Only the part of the format which affects
// presentation is interpreted.
package docx

// Document is a parsed word processing document. Sections hold the body
// content in document order.
type Document struct {
	Sections  []Section
	Styles    *Styles
	Numbering *Numbering
	Meta      Meta
	// Lang is the default language of the document text (BCP 47), may be
	// empty
	Lang string
	// DefaultTab is distance between automatic tab stops in twips, 0 when
	// not specified.
	DefaultTab int
	// Media lists package names of all media parts.
	Media []string
}

// Meta keeps core document properties.
type Meta struct {
	Title   string
	Subject string
	Creator string
	Lang    string
}

// Section is a run of body content sharing page geometry.
type Section struct {
	Props   SectionProps
	Headers []HeaderFooter
	Footers []HeaderFooter
	Blocks  []Block
}

// HeaderFooterKind distinguishes headers from footers.
type HeaderFooterKind string

const (
	KindHeader HeaderFooterKind = "header"
	KindFooter HeaderFooterKind = "footer"
)

// HeaderFooter is content of a header or footer part referenced by section.
type HeaderFooter struct {
	Kind HeaderFooterKind
	// Type is one of "default", "first", "even".
	Type   string
	Blocks []Block
}

// BlockKind distinguishes the different kinds of block level content.
type BlockKind string

const (
	BlockParagraph  BlockKind = "paragraph"
	BlockTable      BlockKind = "table"
	BlockStructured BlockKind = "structured"
)

// Block stores a single piece of block level content, keeping the original
// ordering.
type Block struct {
	Kind       BlockKind
	Paragraph  *Paragraph
	Table      *Table
	Structured *StructuredBlock
}

// StructuredBlock is content control (w:sdt) content at block level.
type StructuredBlock struct {
	Tag    string
	Blocks []Block
}

// Paragraph is w:p.
type Paragraph struct {
	StyleID string
	Props   ParagraphProps
	// Tabs is the paragraph tab stop table: nil when paragraph has none,
	// non nil (possibly empty) when w:tabs is present.
	Tabs    []TabStop
	Content []Inline
}

// TabStop is a single custom tab stop.
type TabStop struct {
	Val    string
	Pos    int
	Leader string
}

// InlineKind distinguishes content of a paragraph.
type InlineKind string

const (
	InlineRun      InlineKind = "run"
	InlineBookmark InlineKind = "bookmark"
)

// Inline stores a single piece of paragraph content.
type Inline struct {
	Kind     InlineKind
	Run      *Run
	Bookmark *Bookmark
}

// Bookmark is start of a named location.
type Bookmark struct {
	ID   string
	Name string
}

// Run is w:r. Runs inside hyperlinks carry link target in Href.
type Run struct {
	StyleID string
	Props   RunProps
	Href    string
	Content []RunItem
}

// IsEmpty reports whether run has no content at all.
func (r *Run) IsEmpty() bool {
	return len(r.Content) == 0
}

// RunItemKind distinguishes run content.
type RunItemKind string

const (
	RunText  RunItemKind = "text"
	RunTab   RunItemKind = "tab"
	RunBreak RunItemKind = "break"
	RunImage RunItemKind = "image"
)

// BreakType is w:br/@w:type.
type BreakType string

const (
	BreakLine   BreakType = "textWrapping"
	BreakPage   BreakType = "page"
	BreakColumn BreakType = "column"
)

// RunItem is a single piece of run content.
type RunItem struct {
	Kind  RunItemKind
	Text  string
	Break BreakType
	Image *Image
}

// Image is a picture placed in a run, either DrawingML or VML.
type Image struct {
	// Name is the package name of embedded media, empty when picture is
	// linked or embedded media could not be resolved.
	Name string
	// Link is external target for linked pictures.
	Link   string
	Extent *Extent
	// Style is VML shape style attribute.
	Style string
	Alt   string
}

// Extent is picture size in EMU.
type Extent struct {
	CX, CY int64
}

// Table is w:tbl.
type Table struct {
	StyleID string
	Props   TableProps
	// Grid keeps column widths in twips.
	Grid []int
	Rows []Row
}

// Row is w:tr.
type Row struct {
	// Header is set for rows repeated as table header.
	Header bool
	Cells  []Cell
}

// VMerge is vertical merge state of a table cell.
type VMerge string

const (
	VMergeNone     VMerge = ""
	VMergeRestart  VMerge = "restart"
	VMergeContinue VMerge = "continue"
)

// Cell is w:tc.
type Cell struct {
	Props CellProps
	// GridSpan is number of grid columns spanned, 0 when not specified.
	GridSpan int
	VMerge   VMerge
	Blocks   []Block
}

// Span returns number of grid columns occupied by the cell.
func (c *Cell) Span() int {
	if c.GridSpan < 1 {
		return 1
	}
	return c.GridSpan
}
