package xhtml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"golang.org/x/net/html/atom"

	"dxc/config"
	"dxc/css"
	"dxc/docx"
	"dxc/docx/docxtest"
	"dxc/media"
)

const testStyles = `
<w:docDefaults>
  <w:rPrDefault><w:rPr><w:sz w:val="24"/></w:rPr></w:rPrDefault>
  <w:pPrDefault><w:pPr><w:spacing w:after="160"/></w:pPr></w:pPrDefault>
</w:docDefaults>
<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/><w:rPr><w:color w:val="333333"/></w:rPr></w:style>
<w:style w:type="paragraph" w:styleId="Heading1"><w:basedOn w:val="Normal"/><w:pPr><w:outlineLvl w:val="0"/><w:jc w:val="center"/></w:pPr><w:rPr><w:b/></w:rPr></w:style>
<w:style w:type="character" w:styleId="Strong"><w:rPr><w:b/></w:rPr></w:style>
<w:style w:type="table" w:styleId="Grid"><w:tblPr><w:tblBorders><w:left w:val="single" w:sz="16" w:color="auto"/></w:tblBorders></w:tblPr></w:style>`

func load(t *testing.T, b *docxtest.Builder) *docx.Document {
	t.Helper()

	data := b.Bytes(t)
	doc, err := docx.Read(bytes.NewReader(data), int64(len(data)), zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	return doc
}

type element struct {
	tag   atom.Atom
	attrs Attrs
}

// recorder validates nesting and keeps every opened element.
type recorder struct {
	stack    []atom.Atom
	elements []element
	events   int
}

func (r *recorder) Open(name atom.Atom, attrs Attrs) error {
	r.stack = append(r.stack, name)
	r.elements = append(r.elements, element{tag: name, attrs: attrs})
	r.events++
	return nil
}

func (r *recorder) Close(name atom.Atom) error {
	if len(r.stack) == 0 || r.stack[len(r.stack)-1] != name {
		return fmt.Errorf("unbalanced close of %s, open %v", name, r.stack)
	}
	r.stack = r.stack[:len(r.stack)-1]
	r.events++
	return nil
}

func (r *recorder) Text(string) error {
	if len(r.stack) == 0 {
		return errors.New("text outside of element")
	}
	r.events++
	return nil
}

func (r *recorder) find(tag atom.Atom) []element {
	var out []element
	for _, e := range r.elements {
		if e.tag == tag {
			out = append(out, e)
		}
	}
	return out
}

func record(t *testing.T, doc *docx.Document, opts Options) *recorder {
	t.Helper()

	rec := &recorder{}
	if err := Render(doc, rec, opts, zaptest.NewLogger(t)); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if len(rec.stack) != 0 {
		t.Fatalf("elements left open: %v", rec.stack)
	}
	return rec
}

func markup(t *testing.T, doc *docx.Document, opts Options) string {
	t.Helper()

	var buf bytes.Buffer
	if err := Write(&buf, doc, config.OutputFmtXhtml, 0, opts, zaptest.NewLogger(t)); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	return buf.String()
}

func fragment() Options {
	return Options{Fragment: true}
}

const mixedBody = `
<w:p><w:pPr><w:pStyle w:val="Heading1"/></w:pPr><w:r><w:t>Title</w:t></w:r></w:p>
<w:p><w:pPr><w:numPr><w:ilvl w:val="0"/><w:numId w:val="1"/></w:numPr></w:pPr><w:r><w:rPr><w:rStyle w:val="Strong"/><w:i/></w:rPr><w:t>item</w:t></w:r></w:p>
<w:p><w:r><w:t>plain</w:t><w:tab/><w:br/></w:r><w:hyperlink w:anchor="x"><w:r><w:rPr><w:color w:val="0000FF"/></w:rPr><w:t>link</w:t></w:r></w:hyperlink></w:p>
<w:tbl><w:tblPr><w:tblStyle w:val="Grid"/></w:tblPr><w:tblGrid><w:gridCol w:w="2000"/><w:gridCol w:w="2000"/></w:tblGrid>
  <w:tr><w:trPr><w:tblHeader/></w:trPr><w:tc><w:p><w:r><w:t>a</w:t></w:r></w:p></w:tc><w:tc><w:p><w:r><w:t>b</w:t></w:r></w:p></w:tc></w:tr>
  <w:tr><w:tc><w:tcPr><w:gridSpan w:val="2"/><w:shd w:val="clear" w:fill="EEEEEE"/></w:tcPr><w:p/></w:tc></w:tr>
</w:tbl>
<w:sdt><w:sdtContent><w:p><w:r><w:t>inside</w:t></w:r></w:p></w:sdtContent></w:sdt>
<w:sectPr><w:pgSz w:w="11906" w:h="16838"/><w:pgMar w:top="1440" w:right="1440" w:bottom="1440" w:left="1440"/></w:sectPr>`

const testNumbering = `
<w:abstractNum w:abstractNumId="0">
  <w:lvl w:ilvl="0"><w:start w:val="1"/><w:numFmt w:val="decimal"/><w:lvlText w:val="%1."/><w:pPr><w:ind w:left="720" w:hanging="360"/></w:pPr><w:rPr><w:color w:val="FF0000"/></w:rPr></w:lvl>
</w:abstractNum>
<w:num w:numId="1"><w:abstractNumId w:val="0"/></w:num>`

func mixedDocument(t *testing.T) *docx.Document {
	return load(t, docxtest.New(mixedBody).WithStyles(testStyles).WithNumbering(testNumbering).WithTitle("Mixed"))
}

func TestRender_Balanced(t *testing.T) {
	doc := mixedDocument(t)
	for _, mode := range []config.StyleMode{config.StyleModeClasses, config.StyleModeInline} {
		for _, frag := range []bool{false, true} {
			t.Run(fmt.Sprintf("%s-fragment-%t", mode, frag), func(t *testing.T) {
				rec := record(t, doc, Options{Mode: mode, Fragment: frag})
				if rec.events == 0 {
					t.Fatal("no events produced")
				}
				if len(rec.find(atom.Div)) < 2 {
					t.Errorf("expected section and structured block wrappers, got %d div", len(rec.find(atom.Div)))
				}
				if frag && len(rec.find(atom.Html)) != 0 {
					t.Errorf("fragment must not contain document wrapper")
				}
				if !frag && len(rec.find(atom.Head)) != 1 {
					t.Errorf("document must have head")
				}
			})
		}
	}
}

func TestRender_Headings(t *testing.T) {
	tests := []struct {
		level string
		tag   atom.Atom
	}{
		{"0", atom.H1},
		{"1", atom.H2},
		{"2", atom.H3},
		{"3", atom.H4},
		{"4", atom.H5},
		{"5", atom.H6},
		{"6", atom.P},
		{"9", atom.P},
		{"", atom.P},
	}
	for _, tt := range tests {
		t.Run("level-"+tt.level, func(t *testing.T) {
			pPr := ""
			if tt.level != "" {
				pPr = `<w:pPr><w:outlineLvl w:val="` + tt.level + `"/></w:pPr>`
			}
			doc := load(t, docxtest.New(`<w:p>`+pPr+`<w:r><w:t>text</w:t></w:r></w:p>`))
			out := markup(t, doc, fragment())

			open := "<" + tt.tag.String()
			if tt.level != "" {
				open += ` class="outlineLvl-` + tt.level + `"`
			}
			if !strings.Contains(out, open) {
				t.Errorf("expected %q in %s", open, out)
			}
			if !strings.Contains(out, "text</"+tt.tag.String()+">") {
				t.Errorf("expected matching close of %s in %s", tt.tag, out)
			}
		})
	}
}

func TestRender_HeadingFromStyle(t *testing.T) {
	doc := load(t, docxtest.New(`<w:p><w:pPr><w:pStyle w:val="Heading1"/></w:pPr><w:r><w:t>T</w:t></w:r></w:p>`).WithStyles(testStyles))
	out := markup(t, doc, fragment())
	if !strings.Contains(out, `<h1 class="Heading1"`) {
		t.Errorf("heading style not promoted: %s", out)
	}
	if strings.Contains(out, "outlineLvl-") {
		t.Errorf("outline class must only come from direct formatting: %s", out)
	}
}

// effective computes what element looks like after class level rules are
// applied.
func effective(reg *css.Registry, e element) (css.Properties, error) {
	var classes []string
	if v, ok := e.attrs.Get(atom.Class); ok {
		classes = strings.Fields(v)
	}
	props := reg.Expand(e.tag.String(), classes)
	if v, ok := e.attrs.Get(atom.Style); ok {
		inline, err := css.ParseInline(v)
		if err != nil {
			return nil, err
		}
		props.Merge(inline)
	}
	return props, nil
}

// checkEquivalent renders document in both modes and makes sure every
// element ends up with the same presentation.
func checkEquivalent(t *testing.T, doc *docx.Document, opts Options) {
	t.Helper()

	reg := Stylesheet(doc, opts, zaptest.NewLogger(t))

	opts.Fragment = true
	opts.Mode = config.StyleModeClasses
	classes := record(t, doc, opts)
	opts.Mode = config.StyleModeInline
	inline := record(t, doc, opts)

	if len(classes.elements) != len(inline.elements) {
		t.Fatalf("modes produced different structure: %d vs %d elements", len(classes.elements), len(inline.elements))
	}
	for i := range classes.elements {
		c, in := classes.elements[i], inline.elements[i]
		if c.tag != in.tag {
			t.Fatalf("element %d: %s vs %s", i, c.tag, in.tag)
		}
		got, err := effective(reg, c)
		if err != nil {
			t.Fatalf("element %d: %v", i, err)
		}
		want := css.Properties{}
		if v, ok := in.attrs.Get(atom.Style); ok {
			if want, err = css.ParseInline(v); err != nil {
				t.Fatalf("element %d: %v", i, err)
			}
		}
		if !got.Equal(want) {
			t.Errorf("element %d (%s): class mode %q, inline mode %q", i, c.tag, got.Inline(), want.Inline())
		}
	}
}

func TestRender_ModesEquivalent(t *testing.T) {
	checkEquivalent(t, mixedDocument(t), Options{})
}

func TestRender_ModesEquivalentTagRules(t *testing.T) {
	sheet := css.NewParser(zap.NewNop()).Parse([]byte(`
span { letter-spacing: 1pt; }
a { color: #0000FF; }
img { border: 0; }
div { margin: 0; }
br { clear: both; }
`))
	body := fmt.Sprintf(drawing, "r:link") + `
<w:p><w:bookmarkStart w:id="1" w:name="here"/><w:r><w:t>a</w:t><w:tab/><w:br/></w:r><w:hyperlink w:anchor="here"><w:r><w:t>go</w:t></w:r></w:hyperlink></w:p>
<w:sdt><w:sdtContent><w:p><w:r><w:t>inside</w:t></w:r></w:p></w:sdtContent></w:sdt>`
	doc := load(t, docxtest.New(body).WithStyles(testStyles).
		WithRel(docxtest.Rel{ID: "rIdImg", Type: "image", Target: "http://example.com/a.png", External: true}))

	checkEquivalent(t, doc, Options{Stylesheet: sheet})

	rec := record(t, doc, Options{Mode: config.StyleModeInline, Fragment: true, Stylesheet: sheet})
	for _, tt := range []struct {
		tag  atom.Atom
		want string
	}{
		{atom.A, "color:#0000FF;"},
		{atom.Img, "border:0;"},
		{atom.Div, "margin:0;"},
		{atom.Br, "clear:both;"},
	} {
		found := rec.find(tt.tag)
		if len(found) == 0 {
			t.Errorf("no %s produced", tt.tag)
			continue
		}
		for _, e := range found {
			if style, _ := e.attrs.Get(atom.Style); !strings.Contains(style, tt.want) {
				t.Errorf("%s style = %q, want %q expanded", tt.tag, style, tt.want)
			}
		}
	}
}

func TestWrite_HTMLStylesheetNotEscaped(t *testing.T) {
	styles := `<w:docDefaults><w:rPrDefault><w:rPr><w:rFonts w:ascii="Calibri"/></w:rPr></w:rPrDefault></w:docDefaults>`
	doc := load(t, docxtest.New(`<w:p><w:r><w:t>it's</w:t></w:r></w:p>`).WithStyles(styles))

	var buf bytes.Buffer
	if err := Write(&buf, doc, config.OutputFmtHtml, 0, Options{}, zaptest.NewLogger(t)); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "font-family: 'Calibri';") {
		t.Errorf("stylesheet must be written verbatim: %s", out)
	}
	if !strings.Contains(out, "it&#39;s") {
		t.Errorf("body text must still be escaped: %s", out)
	}

	out = markup(t, doc, Options{})
	if !strings.Contains(out, "font-family: &#39;Calibri&#39;;") {
		t.Errorf("xhtml stylesheet must be escaped: %s", out)
	}
}

func TestRender_ClassModeDelta(t *testing.T) {
	doc := load(t, docxtest.New(`<w:p><w:r><w:rPr><w:rStyle w:val="Strong"/><w:b/></w:rPr><w:t>x</w:t></w:r></w:p>`).WithStyles(testStyles))
	rec := record(t, doc, Options{Fragment: true})

	spans := rec.find(atom.Span)
	if len(spans) != 1 {
		t.Fatalf("expected single span, got %d", len(spans))
	}
	if v, _ := spans[0].attrs.Get(atom.Class); v != "Normal Strong" {
		t.Errorf("class = %q", v)
	}
	style, _ := spans[0].attrs.Get(atom.Style)
	if strings.Contains(style, "font-weight") || strings.Contains(style, "color") {
		t.Errorf("class provided properties repeated inline: %q", style)
	}
	if !strings.Contains(style, "white-space:pre-wrap") {
		t.Errorf("run must preserve white space: %q", style)
	}
}

func TestRender_ListLabel(t *testing.T) {
	doc := load(t, docxtest.New(strings.Repeat(`<w:p><w:pPr><w:numPr><w:ilvl w:val="0"/><w:numId w:val="1"/></w:numPr></w:pPr><w:r><w:t>item</w:t></w:r></w:p>`, 2)).
		WithNumbering(testNumbering))
	out := markup(t, doc, fragment())

	for _, label := range []string{">1. </span>", ">2. </span>"} {
		if !strings.Contains(out, label) {
			t.Errorf("expected label %q in %s", label, out)
		}
	}
	if !strings.Contains(out, "color:#FF0000;") {
		t.Errorf("label must carry level run formatting: %s", out)
	}
	if !strings.Contains(out, "margin-left:36pt;") || !strings.Contains(out, "text-indent:-18pt;") {
		t.Errorf("paragraph must carry level indentation: %s", out)
	}
}

func TestRender_ListLabelEmpty(t *testing.T) {
	numbering := `
<w:abstractNum w:abstractNumId="0">
  <w:lvl w:ilvl="0"><w:numFmt w:val="none"/><w:lvlText w:val=""/><w:pPr><w:ind w:left="720"/></w:pPr><w:rPr><w:color w:val="FF0000"/></w:rPr></w:lvl>
</w:abstractNum>
<w:num w:numId="1"><w:abstractNumId w:val="0"/></w:num>`
	doc := load(t, docxtest.New(`<w:p><w:pPr><w:numPr><w:ilvl w:val="0"/><w:numId w:val="1"/></w:numPr></w:pPr><w:r><w:t>item</w:t></w:r></w:p>`).
		WithNumbering(numbering))

	rec := record(t, doc, fragment())
	if spans := rec.find(atom.Span); len(spans) != 0 {
		t.Errorf("empty label must not produce span, got %d", len(spans))
	}
	out := markup(t, doc, fragment())
	if !strings.Contains(out, ">item</p>") {
		t.Errorf("expected unlabeled item in %s", out)
	}
	if !strings.Contains(out, "margin-left:36pt;") {
		t.Errorf("paragraph must keep level indentation: %s", out)
	}
}

func TestRender_Table(t *testing.T) {
	t.Run("cell borders", func(t *testing.T) {
		doc := load(t, docxtest.New(`<w:tbl><w:tblPr><w:tblBorders><w:top w:val="single" w:sz="8" w:color="FF0000"/><w:bottom w:val="dashed" w:sz="8"/></w:tblBorders></w:tblPr>
<w:tr><w:tc><w:p/></w:tc></w:tr></w:tbl>`))
		rec := record(t, doc, fragment())
		cells := rec.find(atom.Td)
		if len(cells) != 1 {
			t.Fatalf("expected 1 cell, got %d", len(cells))
		}
		style, _ := cells[0].attrs.Get(atom.Style)
		if !strings.Contains(style, "border-top:1px solid #FF0000;") {
			t.Errorf("cell style = %q", style)
		}
		if strings.Contains(style, "border-bottom") {
			t.Errorf("only solid borders go to cells: %q", style)
		}
		tables := rec.find(atom.Table)
		if style, _ := tables[0].attrs.Get(atom.Style); !strings.Contains(style, "border-collapse:collapse;") {
			t.Errorf("table style = %q", style)
		}
	})

	t.Run("top and left borders only", func(t *testing.T) {
		doc := load(t, docxtest.New(`<w:tbl><w:tblPr><w:tblBorders><w:top w:val="single" w:sz="8" w:color="FF0000"/><w:left w:val="single" w:sz="8" w:color="00FF00"/></w:tblBorders></w:tblPr>
<w:tr><w:tc><w:p/></w:tc></w:tr></w:tbl>`))
		rec := record(t, doc, fragment())
		cells := rec.find(atom.Td)
		if len(cells) != 1 {
			t.Fatalf("expected 1 cell, got %d", len(cells))
		}
		style, _ := cells[0].attrs.Get(atom.Style)
		props, err := css.ParseInline(style)
		if err != nil {
			t.Fatalf("ParseInline() error = %v", err)
		}
		var borders []string
		for _, name := range props.Names() {
			if strings.HasPrefix(name, "border") {
				borders = append(borders, name)
			}
		}
		if len(borders) != 2 || borders[0] != "border-left" || borders[1] != "border-top" {
			t.Errorf("cell borders = %v, style %q", borders, style)
		}
	})

	t.Run("style borders and own borders", func(t *testing.T) {
		doc := load(t, docxtest.New(`<w:tbl><w:tblPr><w:tblStyle w:val="Grid"/></w:tblPr>
<w:tr><w:tc><w:p/></w:tc><w:tc><w:tcPr><w:tcBorders><w:left w:val="double" w:sz="4" w:color="00FF00"/></w:tcBorders></w:tcPr><w:p/></w:tc></w:tr></w:tbl>`).WithStyles(testStyles))
		rec := record(t, doc, Options{Mode: config.StyleModeInline, Fragment: true})
		cells := rec.find(atom.Td)
		if len(cells) != 2 {
			t.Fatalf("expected 2 cells, got %d", len(cells))
		}
		if style, _ := cells[0].attrs.Get(atom.Style); !strings.Contains(style, "border-left:2px solid #000000;") {
			t.Errorf("style border not applied: %q", style)
		}
		if style, _ := cells[1].attrs.Get(atom.Style); !strings.Contains(style, "border-left:0.5pt double #00FF00;") {
			t.Errorf("own border must win: %q", style)
		}
	})

	t.Run("merged cells", func(t *testing.T) {
		doc := load(t, docxtest.New(`<w:tbl>
<w:tr><w:tc><w:tcPr><w:vMerge w:val="restart"/></w:tcPr><w:p/></w:tc><w:tc><w:p/></w:tc></w:tr>
<w:tr><w:tc><w:tcPr><w:vMerge/></w:tcPr><w:p/></w:tc><w:tc><w:p/></w:tc></w:tr>
<w:tr><w:tc><w:tcPr><w:vMerge/></w:tcPr><w:p/></w:tc><w:tc><w:p/></w:tc></w:tr>
<w:tr><w:tc><w:tcPr><w:gridSpan w:val="2"/></w:tcPr><w:p/></w:tc></w:tr>
</w:tbl>`))
		out := markup(t, doc, fragment())
		if !strings.Contains(out, `<td rowspan="3">`) {
			t.Errorf("expected rowspan in %s", out)
		}
		if !strings.Contains(out, `<td colspan="2">`) {
			t.Errorf("expected colspan in %s", out)
		}
		if n := strings.Count(out, "<td"); n != 5 {
			t.Errorf("continuation cells must not be emitted, got %d cells", n)
		}
	})

	t.Run("orphan continuation", func(t *testing.T) {
		doc := load(t, docxtest.New(`<w:tbl>
<w:tr><w:tc><w:tcPr><w:vMerge/></w:tcPr><w:p/></w:tc></w:tr>
<w:tr><w:tc><w:tcPr><w:vMerge/></w:tcPr><w:p/></w:tc></w:tr>
</w:tbl>`))
		out := markup(t, doc, fragment())
		if !strings.Contains(out, `<td rowspan="2">`) {
			t.Errorf("orphan continuation must start a group: %s", out)
		}
	})

	t.Run("header row", func(t *testing.T) {
		doc := load(t, docxtest.New(`<w:tbl><w:tr><w:trPr><w:tblHeader/></w:trPr><w:tc><w:p/></w:tc></w:tr><w:tr><w:tc><w:p/></w:tc></w:tr></w:tbl>`))
		rec := record(t, doc, fragment())
		if len(rec.find(atom.Th)) != 1 || len(rec.find(atom.Tr)) != 1 {
			t.Errorf("expected one th and one tr row")
		}
	})
}

func TestMergeGroups_Invariant(t *testing.T) {
	g := mergeGroups{size: map[cellPos]int{}, start: map[cellPos]cellPos{{row: 1}: {row: 0}}}
	_, _, err := g.rowspan(cellPos{row: 1}, &docx.Cell{VMerge: docx.VMergeContinue})
	if !errors.Is(err, ErrInvariant) {
		t.Errorf("expected ErrInvariant, got %v", err)
	}
	_, _, err = g.rowspan(cellPos{row: 2}, &docx.Cell{VMerge: docx.VMergeRestart})
	if !errors.Is(err, ErrInvariant) {
		t.Errorf("expected ErrInvariant, got %v", err)
	}
}

func TestRender_Inline(t *testing.T) {
	nbsp := strings.Repeat("\u00a0", 4)
	tests := []struct {
		name string
		body string
		want string
	}{
		{"tab without stops", `<w:p><w:r><w:tab/></w:r></w:p>`, "<p><span>" + nbsp + "</span></p>"},
		{"tab with empty stop table", `<w:p><w:pPr><w:tabs/></w:pPr><w:r><w:tab/></w:r></w:p>`, "<p>" + nbsp + "</p>"},
		{"tab with stops", `<w:p><w:pPr><w:tabs><w:tab w:val="left" w:pos="720"/></w:tabs></w:pPr><w:r><w:tab/></w:r></w:p>`, "<p>" + nbsp + "</p>"},
		{"empty run", `<w:p><w:r/></w:p>`, "<p><br/></p>"},
		{"breaks", `<w:p><w:r><w:br w:type="page"/><w:br w:type="column"/><w:br/></w:r></w:p>`, "<p><br/><br/><br/></p>"},
		{"plain text", `<w:p><w:r><w:t>a &amp; b</w:t></w:r></w:p>`, "<p>a &amp; b</p>"},
		{"bookmark", `<w:p><w:bookmarkStart w:id="1" w:name="here"/><w:bookmarkStart w:id="0" w:name="_GoBack"/></w:p>`, `<p><a id="here"/></p>`},
		{"internal link", `<w:p><w:hyperlink w:anchor="here"><w:r><w:t>go</w:t></w:r></w:hyperlink></w:p>`, `<p><a href="#here">go</a></p>`},
		{"empty run in link", `<w:p><w:hyperlink w:anchor="here"><w:r/></w:hyperlink></w:p>`, `<p><br/></p>`},
		{"structured", `<w:sdt><w:sdtContent><w:p/></w:sdtContent></w:sdt>`, "<div><p/></div>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := markup(t, load(t, docxtest.New(tt.body)), fragment())
			if !strings.Contains(out, tt.want) {
				t.Errorf("expected %q in %q", tt.want, out)
			}
		})
	}
}

const drawing = `<w:p><w:r><w:drawing><wp:inline><wp:extent cx="12700" cy="25400"/><wp:docPr id="1" name="Picture 1" descr="picture"/>
<a:graphic><a:graphicData><pic:pic><pic:blipFill><a:blip %s="rIdImg"/></pic:blipFill></pic:pic></a:graphicData></a:graphic></wp:inline></w:drawing></w:r></w:p>`

type parts map[string][]byte

func (p parts) ReadPart(name string) ([]byte, error) {
	data, ok := p[name]
	if !ok {
		return nil, io.ErrUnexpectedEOF
	}
	return data, nil
}

func TestRender_Images(t *testing.T) {
	t.Run("external link", func(t *testing.T) {
		doc := load(t, docxtest.New(fmt.Sprintf(drawing, "r:link")).
			WithRel(docxtest.Rel{ID: "rIdImg", Type: "image", Target: "http://example.com/a.png", External: true}))
		out := markup(t, doc, fragment())
		want := `<img style="height:2pt;width:1pt;" src="http://example.com/a.png" alt="picture"/>`
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in %q", want, out)
		}
	})

	t.Run("embedded", func(t *testing.T) {
		doc := load(t, docxtest.New(fmt.Sprintf(drawing, "r:embed")).WithMedia("rIdImg", "image1.png", docxtest.PNG))
		if len(doc.Media) != 1 {
			t.Fatalf("expected 1 media part, got %v", doc.Media)
		}
		idx := media.NewIndex(parts{doc.Media[0]: docxtest.PNG}, doc.Media, false, zaptest.NewLogger(t))

		out := markup(t, doc, Options{Fragment: true, Media: idx})
		if !strings.Contains(out, `src="word/media/image1.png"`) {
			t.Errorf("embedded picture not resolved: %q", out)
		}
		out = markup(t, doc, Options{Fragment: true, Media: idx, Resolver: media.DataURIResolver{}})
		if !strings.Contains(out, `src="data:image/png;base64,`) {
			t.Errorf("embedded picture not inlined: %q", out)
		}
		out = markup(t, doc, Options{Fragment: true})
		if strings.Contains(out, "<img") {
			t.Errorf("picture without media must be skipped: %q", out)
		}
	})

	t.Run("vml", func(t *testing.T) {
		doc := load(t, docxtest.New(`<w:p><w:r><w:pict><v:shape style="width:10pt;height:20pt;position:absolute" alt="shape"><v:imagedata r:id="rIdImg" o:title=""/></v:shape></w:pict></w:r></w:p>`).
			WithRel(docxtest.Rel{ID: "rIdImg", Type: "image", Target: "http://example.com/b.png", External: true}))
		out := markup(t, doc, fragment())
		want := `<img style="height:20pt;width:10pt;" src="http://example.com/b.png" alt="shape"/>`
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in %q", want, out)
		}
	})
}

func TestRender_Document(t *testing.T) {
	doc := mixedDocument(t)

	out := markup(t, doc, Options{})
	for _, want := range []string{
		`<?xml version="1.0" encoding="UTF-8"?>`,
		"<!DOCTYPE html>",
		`<html xmlns="http://www.w3.org/1999/xhtml">`,
		"<title>Mixed</title>",
		`<meta charset="utf-8"/>`,
		"<style>",
		`<div style="margin-bottom:72pt;margin-left:72pt;margin-right:72pt;margin-top:72pt;width:595.3pt;">`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output", want)
		}
	}

	out = markup(t, doc, Options{Mode: config.StyleModeInline})
	if strings.Contains(out, "<style>") {
		t.Errorf("inline mode must not produce stylesheet")
	}

	var buf bytes.Buffer
	if err := Write(&buf, doc, config.OutputFmtHtml, 2, Options{}, zaptest.NewLogger(t)); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if strings.HasPrefix(buf.String(), "<?xml") || !strings.HasPrefix(buf.String(), "<!DOCTYPE html>") {
		t.Errorf("unexpected html prologue: %q", buf.String()[:40])
	}
}

func TestRender_HeadersFooters(t *testing.T) {
	hdr := []byte(`<?xml version="1.0" encoding="UTF-8"?><w:hdr ` + docxtest.NS + `><w:p><w:r><w:t>running head</w:t></w:r></w:p></w:hdr>`)
	doc := load(t, docxtest.New(`<w:p><w:pPr><w:sectPr><w:headerReference w:type="default" r:id="rIdHdr"/></w:sectPr></w:pPr></w:p><w:p/><w:sectPr/>`).
		WithPart("word/header1.xml", hdr).
		WithRel(docxtest.Rel{ID: "rIdHdr", Type: "header", Target: "header1.xml"}))

	out := markup(t, doc, fragment())
	if strings.Contains(out, "running head") {
		t.Errorf("headers must be off by default")
	}
	out = markup(t, doc, Options{Fragment: true, HeadersFooters: true})
	if n := strings.Count(out, `<div class="header">`); n != 2 {
		t.Errorf("header must repeat in following section, got %d in %s", n, out)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWrite_DestinationError(t *testing.T) {
	doc := mixedDocument(t)
	err := Write(failingWriter{}, doc, config.OutputFmtXhtml, 0, Options{}, zaptest.NewLogger(t))
	var de *DestinationError
	if !errors.As(err, &de) {
		t.Fatalf("expected DestinationError, got %v", err)
	}
}
