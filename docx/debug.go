package docx

import (
	"fmt"
	"reflect"

	"dxc/utils/debug"
)

type treeWriter struct {
	*debug.TreeWriter
}

// String returns a readable tree of the parsed document, used for debug
// dumps only.
func (d *Document) String() string {
	if d == nil {
		return "<nil Document>"
	}
	return treeWriter{debug.NewTreeWriter()}.document(d).String()
}

func (tw treeWriter) document(d *Document) treeWriter {
	tw.Line(0, "Document lang=%q defaultTab=%d", d.Lang, d.DefaultTab)
	tw.Line(1, "Meta title=%q subject=%q creator=%q lang=%q", d.Meta.Title, d.Meta.Subject, d.Meta.Creator, d.Meta.Lang)
	if d.Styles != nil {
		tw.Line(1, "Defaults")
		tw.props(2, "Paragraph", &d.Styles.Defaults.Paragraph)
		tw.props(2, "Run", &d.Styles.Defaults.Run)
		for _, st := range d.Styles.All() {
			tw.Line(1, "Style id=%q type=%s name=%q basedOn=%q default=%t", st.ID, st.Type, st.Name, st.BasedOn, st.Default)
			tw.props(2, "Paragraph", &st.Paragraph)
			tw.props(2, "Run", &st.Run)
			tw.props(2, "Table", &st.Table)
			tw.props(2, "Cell", &st.Cell)
		}
	}
	if len(d.Media) > 0 {
		tw.Line(1, "Media: %d", len(d.Media))
		for i, name := range d.Media {
			tw.Line(2, "Media[%d]=%q", i, name)
		}
	}
	for i := range d.Sections {
		tw.section(1, &d.Sections[i], i)
	}
	return tw
}

func (tw treeWriter) section(depth int, s *Section, idx int) {
	tw.Line(depth, "Section[%d]", idx)
	tw.props(depth+1, "Props", &s.Props)
	for _, hf := range append(append([]HeaderFooter{}, s.Headers...), s.Footers...) {
		tw.Line(depth+1, "%s type=%q", hf.Kind, hf.Type)
		tw.blocks(depth+2, hf.Blocks)
	}
	tw.blocks(depth+1, s.Blocks)
}

func (tw treeWriter) blocks(depth int, blocks []Block) {
	for i := range blocks {
		b := &blocks[i]
		switch b.Kind {
		case BlockParagraph:
			tw.paragraph(depth, b.Paragraph)
		case BlockTable:
			tw.table(depth, b.Table)
		case BlockStructured:
			tw.Line(depth, "Structured tag=%q", b.Structured.Tag)
			tw.blocks(depth+1, b.Structured.Blocks)
		}
	}
}

func (tw treeWriter) paragraph(depth int, p *Paragraph) {
	tw.Line(depth, "Paragraph style=%q tabs=%d", p.StyleID, len(p.Tabs))
	tw.props(depth+1, "Props", &p.Props)
	for _, in := range p.Content {
		switch in.Kind {
		case InlineBookmark:
			tw.Line(depth+1, "Bookmark id=%q name=%q", in.Bookmark.ID, in.Bookmark.Name)
		case InlineRun:
			tw.run(depth+1, in.Run)
		}
	}
}

func (tw treeWriter) run(depth int, r *Run) {
	tw.Line(depth, "Run style=%q href=%q", r.StyleID, r.Href)
	tw.props(depth+1, "Props", &r.Props)
	for _, it := range r.Content {
		switch it.Kind {
		case RunText:
			tw.TextBlock(depth+1, "Text", it.Text)
		case RunTab:
			tw.Line(depth+1, "Tab")
		case RunBreak:
			tw.Line(depth+1, "Break type=%s", it.Break)
		case RunImage:
			img := it.Image
			ext := "none"
			if img.Extent != nil {
				ext = fmt.Sprintf("%dx%d", img.Extent.CX, img.Extent.CY)
			}
			tw.Line(depth+1, "Image name=%q link=%q extent=%s style=%q alt=%q", img.Name, img.Link, ext, img.Style, img.Alt)
		}
	}
}

func (tw treeWriter) table(depth int, t *Table) {
	tw.Line(depth, "Table style=%q grid=%v", t.StyleID, t.Grid)
	tw.props(depth+1, "Props", &t.Props)
	for i, row := range t.Rows {
		tw.Line(depth+1, "Row[%d] header=%t", i, row.Header)
		for j := range row.Cells {
			c := &row.Cells[j]
			tw.Line(depth+2, "Cell[%d] span=%d vmerge=%q", j, c.Span(), c.VMerge)
			tw.props(depth+3, "Props", &c.Props)
			tw.blocks(depth+3, c.Blocks)
		}
	}
}

// props prints set fields of property bag on a single line.
func (tw treeWriter) props(depth int, label string, bag any) {
	v := reflect.ValueOf(bag).Elem()
	kv := make([]string, 0, 2*v.NumField())
	for i := range v.NumField() {
		kv = append(kv, v.Type().Field(i).Name, describe(v.Field(i)))
	}
	tw.Fields(depth, label, kv...)
}

func describe(f reflect.Value) string {
	switch f.Kind() {
	case reflect.Pointer:
		if f.IsNil() {
			return ""
		}
		if f.Elem().Kind() == reflect.Struct {
			return fmt.Sprintf("%+v", f.Elem().Interface())
		}
		return fmt.Sprintf("%v", f.Elem().Interface())
	case reflect.Map:
		if f.Len() == 0 {
			return ""
		}
		return fmt.Sprintf("%v", f.Interface())
	}
	return ""
}
