package docx

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/beevik/etree"
	fixzip "github.com/hidez8891/zip"
	"golang.org/x/net/html/charset"
)

// ErrNotDocument is returned when package does not contain word processing
// main document part.
var ErrNotDocument = errors.New("not a word processing document")

// Relationship types used by the reader.
const (
	relOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	relStyles         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles"
	relNumbering      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/numbering"
	relImage          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"
	relHyperlink      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink"
	relCoreProps      = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	relStrictPrefix   = "http://purl.oclc.org/ooxml/officeDocument/relationships/"
	relTransPrefix    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/"
)

// Relationship is a single entry of part relationships.
type Relationship struct {
	ID   string
	Type string
	// Target is package name of the target part for internal targets and
	// verbatim URI otherwise.
	Target   string
	External bool
}

// Relationships maps relationship ids to relationships.
type Relationships map[string]Relationship

// ByType returns first relationship of type.
func (r Relationships) ByType(typ string) (Relationship, bool) {
	for _, rel := range r {
		if sameRelType(rel.Type, typ) {
			return rel, true
		}
	}
	return Relationship{}, false
}

// strict OOXML uses different namespace for the same relationship types
func sameRelType(a, b string) bool {
	if a == b {
		return true
	}
	return strings.TrimPrefix(a, relStrictPrefix) == strings.TrimPrefix(b, relTransPrefix) ||
		strings.TrimPrefix(a, relTransPrefix) == strings.TrimPrefix(b, relStrictPrefix)
}

// Package is an opened OPC package.
type Package struct {
	zr    *fixzip.Reader
	parts map[string]*fixzip.File
	close func() error
}

// Open opens package file by name.
func Open(name string) (*Package, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("unable to open document: %w", err)
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("unable to stat document: %w", err)
	}
	pkg, err := NewPackage(f, fi.Size())
	if err != nil {
		f.Close()
		return nil, err
	}
	pkg.close = f.Close
	return pkg, nil
}

// NewPackage opens package from random access reader.
func NewPackage(r io.ReaderAt, size int64) (*Package, error) {
	zr, err := fixzip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotDocument, err)
	}
	pkg := &Package{zr: zr, parts: make(map[string]*fixzip.File, len(zr.File))}
	for _, f := range zr.File {
		pkg.parts[strings.TrimPrefix(f.Name, "/")] = f
	}
	return pkg, nil
}

// Close releases underlying file, if any.
func (p *Package) Close() error {
	if p.close == nil {
		return nil
	}
	return p.close()
}

// Has reports whether part exists. Part names are case insensitive in OPC,
// most producers are consistent though, so exact match is tried first.
func (p *Package) Has(name string) bool {
	_, ok := p.lookup(name)
	return ok
}

func (p *Package) lookup(name string) (*fixzip.File, bool) {
	name = strings.TrimPrefix(name, "/")
	if f, ok := p.parts[name]; ok {
		return f, true
	}
	for n, f := range p.parts {
		if strings.EqualFold(n, name) {
			return f, true
		}
	}
	return nil, false
}

// Parts returns names of all parts with prefix.
func (p *Package) Parts(prefix string) []string {
	var names []string
	for _, f := range p.zr.File {
		name := strings.TrimPrefix(f.Name, "/")
		if strings.HasPrefix(name, prefix) && !strings.HasSuffix(name, "/") {
			names = append(names, name)
		}
	}
	return names
}

// ReadPart returns content of the part.
func (p *Package) ReadPart(name string) ([]byte, error) {
	f, ok := p.lookup(name)
	if !ok {
		return nil, fmt.Errorf("part %q: %w", name, os.ErrNotExist)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("unable to open part %q: %w", name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("unable to read part %q: %w", name, err)
	}
	return data, nil
}

// readXML reads and parses XML part.
func (p *Package) readXML(name string) (*etree.Document, error) {
	data, err := p.ReadPart(name)
	if err != nil {
		return nil, err
	}
	doc := etree.NewDocument()
	doc.ReadSettings = etree.ReadSettings{
		CharsetReader: charset.NewReaderLabel,
		Permissive:    true,
	}
	if _, err := doc.ReadFrom(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("unable to parse part %q: %w", name, err)
	}
	return doc, nil
}

// relsName returns name of relationships part for the part.
func relsName(part string) string {
	dir, file := path.Split(part)
	return path.Join(dir, "_rels", file+".rels")
}

// Rels reads relationships of the part, use "" for package relationships.
// Missing relationships part is not an error.
func (p *Package) Rels(part string) (Relationships, error) {
	name := relsName(part)
	rels := make(Relationships)
	if !p.Has(name) {
		return rels, nil
	}
	doc, err := p.readXML(name)
	if err != nil {
		return nil, err
	}
	root := doc.Root()
	if root == nil {
		return rels, nil
	}
	base := path.Dir(part)
	for _, el := range root.ChildElements() {
		if el.Tag != "Relationship" {
			continue
		}
		rel := Relationship{
			ID:       el.SelectAttrValue("Id", ""),
			Type:     el.SelectAttrValue("Type", ""),
			Target:   el.SelectAttrValue("Target", ""),
			External: strings.EqualFold(el.SelectAttrValue("TargetMode", ""), "External"),
		}
		if rel.ID == "" {
			continue
		}
		if !rel.External {
			rel.Target = resolveTarget(base, rel.Target)
		}
		rels[rel.ID] = rel
	}
	return rels, nil
}

func resolveTarget(base, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(path.Clean(target), "/")
	}
	if base == "." || base == "" {
		return path.Clean(target)
	}
	return path.Clean(path.Join(base, target))
}

// MainPart returns name of the main document part.
func (p *Package) MainPart() (string, error) {
	rels, err := p.Rels("")
	if err != nil {
		return "", err
	}
	if rel, ok := rels.ByType(relOfficeDocument); ok && p.Has(rel.Target) {
		return rel.Target, nil
	}
	if p.Has("word/document.xml") {
		return "word/document.xml", nil
	}
	return "", ErrNotDocument
}
