package docx

// Property bags keep formatting explicitly specified on a node or a style.
// Nil pointer means the fact was not set and should be inherited.

// Border is a single border definition. Size is in eighths of a point.
type Border struct {
	Val   string
	Size  int
	Color string
	Space int
}

// Defined reports whether border is actually drawn.
func (b *Border) Defined() bool {
	if b == nil {
		return false
	}
	switch b.Val {
	case "", "none", "nil":
		return false
	}
	return true
}

// Borders is a set of borders for paragraph, table or cell.
type Borders struct {
	Top     *Border
	Left    *Border
	Bottom  *Border
	Right   *Border
	InsideH *Border
	InsideV *Border
}

func (b *Borders) inherit(base *Borders) {
	if base == nil {
		return
	}
	inherit(&b.Top, base.Top)
	inherit(&b.Left, base.Left)
	inherit(&b.Bottom, base.Bottom)
	inherit(&b.Right, base.Right)
	inherit(&b.InsideH, base.InsideH)
	inherit(&b.InsideV, base.InsideV)
}

// Shading is w:shd.
type Shading struct {
	Val   string
	Color string
	Fill  string
}

// Width is table or cell measurement, Type is one of dxa, pct, auto, nil.
type Width struct {
	W    int
	Type string
}

// ParagraphProps is w:pPr. Distances are in twips.
type ParagraphProps struct {
	Align        *string
	IndentLeft   *int
	IndentRight  *int
	FirstLine    *int
	Hanging      *int
	SpaceBefore  *int
	SpaceAfter   *int
	Line         *int
	LineRule     *string
	OutlineLevel *int
	Shading      *Shading
	Borders      *Borders
	NumID        *string
	NumLevel     *int
}

// IsZero reports whether no property is set.
func (p *ParagraphProps) IsZero() bool {
	return *p == ParagraphProps{}
}

func (p *ParagraphProps) inherit(base *ParagraphProps) {
	inherit(&p.Align, base.Align)
	inherit(&p.IndentLeft, base.IndentLeft)
	inherit(&p.IndentRight, base.IndentRight)
	inherit(&p.FirstLine, base.FirstLine)
	inherit(&p.Hanging, base.Hanging)
	inherit(&p.SpaceBefore, base.SpaceBefore)
	inherit(&p.SpaceAfter, base.SpaceAfter)
	inherit(&p.Line, base.Line)
	inherit(&p.LineRule, base.LineRule)
	inherit(&p.OutlineLevel, base.OutlineLevel)
	inherit(&p.Shading, base.Shading)
	inheritBorders(&p.Borders, base.Borders)
	inherit(&p.NumID, base.NumID)
	inherit(&p.NumLevel, base.NumLevel)
}

// RunProps is w:rPr. Size is in half points.
type RunProps struct {
	Bold      *bool
	Italic    *bool
	Underline *string
	Strike    *bool
	DStrike   *bool
	Caps      *bool
	SmallCaps *bool
	Hidden    *bool
	Color     *string
	Size      *int
	Font      *string
	Highlight *string
	Shading   *Shading
	VertAlign *string
	Lang      *string
}

// IsZero reports whether no property is set.
func (p *RunProps) IsZero() bool {
	return *p == RunProps{}
}

func (p *RunProps) inherit(base *RunProps) {
	inherit(&p.Bold, base.Bold)
	inherit(&p.Italic, base.Italic)
	inherit(&p.Underline, base.Underline)
	inherit(&p.Strike, base.Strike)
	inherit(&p.DStrike, base.DStrike)
	inherit(&p.Caps, base.Caps)
	inherit(&p.SmallCaps, base.SmallCaps)
	inherit(&p.Hidden, base.Hidden)
	inherit(&p.Color, base.Color)
	inherit(&p.Size, base.Size)
	inherit(&p.Font, base.Font)
	inherit(&p.Highlight, base.Highlight)
	inherit(&p.Shading, base.Shading)
	inherit(&p.VertAlign, base.VertAlign)
	inherit(&p.Lang, base.Lang)
}

// TableProps is w:tblPr.
type TableProps struct {
	Width   *Width
	Align   *string
	Indent  *Width
	Borders *Borders
	Shading *Shading
}

// IsZero reports whether no property is set.
func (p *TableProps) IsZero() bool {
	return *p == TableProps{}
}

func (p *TableProps) inherit(base *TableProps) {
	inherit(&p.Width, base.Width)
	inherit(&p.Align, base.Align)
	inherit(&p.Indent, base.Indent)
	inheritBorders(&p.Borders, base.Borders)
	inherit(&p.Shading, base.Shading)
}

// CellProps is w:tcPr.
type CellProps struct {
	Width   *Width
	VAlign  *string
	Shading *Shading
	Borders *Borders
}

// IsZero reports whether no property is set.
func (p *CellProps) IsZero() bool {
	return *p == CellProps{}
}

func (p *CellProps) inherit(base *CellProps) {
	inherit(&p.Width, base.Width)
	inherit(&p.VAlign, base.VAlign)
	inherit(&p.Shading, base.Shading)
	inheritBorders(&p.Borders, base.Borders)
}

// SectionProps is w:sectPr. Distances are in twips.
type SectionProps struct {
	PageWidth    *int
	PageHeight   *int
	MarginTop    *int
	MarginBottom *int
	MarginLeft   *int
	MarginRight  *int
	// header and footer relationship ids by type
	HeaderRefs map[string]string
	FooterRefs map[string]string
}

func inherit[T any](dst **T, src *T) {
	if *dst == nil && src != nil {
		*dst = src
	}
}

func inheritBorders(dst **Borders, src *Borders) {
	if src == nil {
		return
	}
	if *dst == nil {
		*dst = src
		return
	}
	merged := **dst
	merged.inherit(src)
	*dst = &merged
}
