package docx_test

import (
	"testing"

	"golang.org/x/text/language"

	"dxc/docx"
	"dxc/docx/docxtest"
	"dxc/numfmt"
)

const testNumbering = `
<w:abstractNum w:abstractNumId="0">
  <w:lvl w:ilvl="0"><w:start w:val="1"/><w:numFmt w:val="decimal"/><w:lvlText w:val="%1."/></w:lvl>
  <w:lvl w:ilvl="1"><w:start w:val="1"/><w:numFmt w:val="lowerLetter"/><w:lvlText w:val="%1.%2)"/></w:lvl>
</w:abstractNum>
<w:abstractNum w:abstractNumId="1">
  <w:lvl w:ilvl="0"><w:numFmt w:val="bullet"/><w:lvlText w:val="&#xF0B7;"/></w:lvl>
</w:abstractNum>
<w:num w:numId="1"><w:abstractNumId w:val="0"/></w:num>
<w:num w:numId="2"><w:abstractNumId w:val="1"/></w:num>
<w:num w:numId="3"><w:abstractNumId w:val="0"/><w:lvlOverride w:ilvl="0"><w:startOverride w:val="5"/></w:lvlOverride></w:num>
`

func TestListCounter(t *testing.T) {
	doc := read(t, docxtest.New(`<w:p/>`).WithNumbering(testNumbering))
	counter := docx.NewListCounter(doc.Numbering, numfmt.New(language.English, false))

	steps := []struct {
		ref  docx.ListRef
		want string
	}{
		{docx.ListRef{NumID: "1", Level: 0}, "1."},
		{docx.ListRef{NumID: "1", Level: 1}, "1.a)"},
		{docx.ListRef{NumID: "1", Level: 1}, "1.b)"},
		{docx.ListRef{NumID: "1", Level: 0}, "2."},
		{docx.ListRef{NumID: "1", Level: 1}, "2.a)"},
		{docx.ListRef{NumID: "2", Level: 0}, "•"},
		{docx.ListRef{NumID: "3", Level: 0}, "5."},
		{docx.ListRef{NumID: "3", Level: 0}, "6."},
	}
	for i, step := range steps {
		got, ok := counter.Next(step.ref)
		if !ok {
			t.Fatalf("step %d: level not found", i)
		}
		if got != step.want {
			t.Errorf("step %d: got %q, want %q", i, got, step.want)
		}
	}

	if _, ok := counter.Next(docx.ListRef{NumID: "42"}); ok {
		t.Errorf("unknown list must not produce label")
	}
}

func TestListOf(t *testing.T) {
	id, zero, lvl := "7", "0", 2
	if ref, ok := docx.ListOf(&docx.ParagraphProps{NumID: &id, NumLevel: &lvl}); !ok || ref.NumID != "7" || ref.Level != 2 {
		t.Errorf("direct numbering = %+v %t", ref, ok)
	}
	if ref, ok := docx.ListOf(&docx.ParagraphProps{NumLevel: &lvl}, &docx.ParagraphProps{NumID: &id}); !ok || ref.Level != 2 {
		t.Errorf("level from paragraph, id from style = %+v %t", ref, ok)
	}
	if _, ok := docx.ListOf(&docx.ParagraphProps{NumID: &zero}, &docx.ParagraphProps{NumID: &id}); ok {
		t.Errorf("numId 0 must remove numbering")
	}
	if _, ok := docx.ListOf(nil, &docx.ParagraphProps{}); ok {
		t.Errorf("no numbering expected")
	}
}

func TestReplaceSymbols(t *testing.T) {
	if got := docx.ReplaceSymbols("\uf0a7 x\x01"); got != "▪ x" {
		t.Errorf("got %q", got)
	}
}
