// Package docxtest synthesizes word processing packages for tests.
package docxtest

import (
	"archive/zip"
	"bytes"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

const (
	NS = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" ` +
		`xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" ` +
		`xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing" ` +
		`xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" ` +
		`xmlns:pic="http://schemas.openxmlformats.org/drawingml/2006/picture" ` +
		`xmlns:v="urn:schemas-microsoft-com:vml" ` +
		`xmlns:o="urn:schemas-microsoft-com:office:office"`

	relsNS  = `xmlns="http://schemas.openxmlformats.org/package/2006/relationships"`
	relBase = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/"
)

// PNG is a valid 1x1 transparent image.
var PNG = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0d, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

// Rel is a relationship of the main document part.
type Rel struct {
	ID       string
	Type     string // short type, e.g. "image", "hyperlink"
	Target   string
	External bool
}

// Builder accumulates package parts.
type Builder struct {
	Body      string
	Styles    string
	Numbering string
	Core      string
	Rels      []Rel
	Parts     map[string][]byte
}

// New returns builder for document with body content (inner XML of w:body).
func New(body string) *Builder {
	return &Builder{Body: body, Parts: make(map[string][]byte)}
}

// WithStyles sets inner XML of w:styles.
func (b *Builder) WithStyles(styles string) *Builder {
	b.Styles = styles
	return b
}

// WithNumbering sets inner XML of w:numbering.
func (b *Builder) WithNumbering(numbering string) *Builder {
	b.Numbering = numbering
	return b
}

// WithTitle sets core properties title.
func (b *Builder) WithTitle(title string) *Builder {
	b.Core = title
	return b
}

// WithRel adds relationship to the main part.
func (b *Builder) WithRel(rel Rel) *Builder {
	b.Rels = append(b.Rels, rel)
	return b
}

// WithPart adds arbitrary part.
func (b *Builder) WithPart(name string, data []byte) *Builder {
	b.Parts[name] = data
	return b
}

// WithMedia adds image part and relationship to it.
func (b *Builder) WithMedia(id, name string, data []byte) *Builder {
	b.Parts["word/media/"+name] = data
	return b.WithRel(Rel{ID: id, Type: "image", Target: "media/" + name})
}

// Bytes produces package content.
func (b *Builder) Bytes(t testing.TB) []byte {
	t.Helper()

	parts := map[string][]byte{
		"[Content_Types].xml": []byte(`<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`),
		"_rels/.rels": []byte(`<?xml version="1.0" encoding="UTF-8"?><Relationships ` + relsNS + `>` +
			`<Relationship Id="rId1" Type="` + relBase + `officeDocument" Target="word/document.xml"/>` +
			`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties" Target="docProps/core.xml"/>` +
			`</Relationships>`),
		"word/document.xml": []byte(`<?xml version="1.0" encoding="UTF-8"?><w:document ` + NS + `><w:body>` + b.Body + `</w:body></w:document>`),
	}
	rels := b.Rels
	if b.Styles != "" {
		parts["word/styles.xml"] = []byte(`<?xml version="1.0" encoding="UTF-8"?><w:styles ` + NS + `>` + b.Styles + `</w:styles>`)
		rels = append(rels, Rel{ID: "rIdStyles", Type: "styles", Target: "styles.xml"})
	}
	if b.Numbering != "" {
		parts["word/numbering.xml"] = []byte(`<?xml version="1.0" encoding="UTF-8"?><w:numbering ` + NS + `>` + b.Numbering + `</w:numbering>`)
		rels = append(rels, Rel{ID: "rIdNumbering", Type: "numbering", Target: "numbering.xml"})
	}
	if b.Core != "" {
		parts["docProps/core.xml"] = []byte(`<?xml version="1.0" encoding="UTF-8"?><cp:coreProperties ` +
			`xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" ` +
			`xmlns:dc="http://purl.org/dc/elements/1.1/"><dc:title>` + b.Core + `</dc:title></cp:coreProperties>`)
	}
	var sb bytes.Buffer
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?><Relationships ` + relsNS + `>`)
	for _, rel := range rels {
		sb.WriteString(`<Relationship Id="` + rel.ID + `" Type="` + relBase + rel.Type + `" Target="` + rel.Target + `"`)
		if rel.External {
			sb.WriteString(` TargetMode="External"`)
		}
		sb.WriteString(`/>`)
	}
	sb.WriteString(`</Relationships>`)
	parts["word/_rels/document.xml.rels"] = sb.Bytes()
	maps.Copy(parts, b.Parts)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range slices.Sorted(maps.Keys(parts)) {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create zip entry %s: %v", name, err)
		}
		if _, err := w.Write(parts[name]); err != nil {
			t.Fatalf("write zip entry %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

// Write stores package into directory and returns its path.
func (b *Builder) Write(t testing.TB, dir, name string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, b.Bytes(t), 0o644); err != nil {
		t.Fatalf("write document: %v", err)
	}
	return path
}
