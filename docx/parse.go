package docx

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/beevik/etree"
	"github.com/maruel/natural"
	"go.uber.org/zap"
)

// Parsing is intentionally forgiving: unknown elements are ignored and
// unresolvable references degrade to missing facts. Only failure to read the
// main document part is an error.

// Load opens and parses document file.
func Load(name string, log *zap.Logger) (*Document, error) {
	pkg, err := Open(name)
	if err != nil {
		return nil, err
	}
	defer pkg.Close()
	return Parse(pkg, log)
}

// Read parses document from random access reader.
func Read(r io.ReaderAt, size int64, log *zap.Logger) (*Document, error) {
	pkg, err := NewPackage(r, size)
	if err != nil {
		return nil, err
	}
	return Parse(pkg, log)
}

type parser struct {
	pkg  *Package
	log  *zap.Logger
	part string
	rels Relationships
}

// Parse reads document from opened package.
func Parse(pkg *Package, log *zap.Logger) (*Document, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("docx")

	main, err := pkg.MainPart()
	if err != nil {
		return nil, err
	}
	rels, err := pkg.Rels(main)
	if err != nil {
		return nil, fmt.Errorf("document relationships: %w", err)
	}
	p := &parser{pkg: pkg, log: log, part: main, rels: rels}

	doc := &Document{
		Styles:    newStyles(),
		Numbering: newNumbering(),
	}
	if err := p.parseStyles(doc); err != nil {
		log.Warn("Unable to read styles, ignoring", zap.Error(err))
	}
	if err := p.parseNumbering(doc); err != nil {
		log.Warn("Unable to read numbering, ignoring", zap.Error(err))
	}
	p.parseSettings(doc)
	p.parseCoreProps(doc)

	xml, err := pkg.readXML(main)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotDocument, err)
	}
	root := xml.Root()
	if root == nil || root.Tag != "document" {
		return nil, fmt.Errorf("%w: unexpected root element", ErrNotDocument)
	}
	body := child(root, "body")
	if body == nil {
		return nil, fmt.Errorf("%w: document has no body", ErrNotDocument)
	}
	doc.Sections = p.parseBody(body)

	if doc.Lang == "" {
		doc.Lang = doc.Meta.Lang
	}
	doc.Media = pkg.Parts("word/media/")
	slices.SortFunc(doc.Media, func(a, b string) int {
		switch {
		case natural.Less(a, b):
			return -1
		case natural.Less(b, a):
			return 1
		}
		return 0
	})
	return doc, nil
}

// parseBody splits body content into sections. Paragraph level w:sectPr ends
// section it belongs to, body level one describes the last section.
func (p *parser) parseBody(body *etree.Element) []Section {
	var (
		sections []Section
		current  Section
	)
	for _, el := range body.ChildElements() {
		if el.Tag == "sectPr" {
			current.Props = p.parseSectionProps(el)
			continue
		}
		blocks := p.parseBlock(el)
		current.Blocks = append(current.Blocks, blocks...)
		if el.Tag != "p" {
			continue
		}
		if sp := child(child(el, "pPr"), "sectPr"); sp != nil {
			current.Props = p.parseSectionProps(sp)
			p.attachHeadersFooters(&current)
			sections = append(sections, current)
			current = Section{}
		}
	}
	p.attachHeadersFooters(&current)
	return append(sections, current)
}

// parseBlock returns blocks for block level element. Wrappers which do not
// affect presentation are unwrapped.
func (p *parser) parseBlock(el *etree.Element) []Block {
	switch el.Tag {
	case "p":
		para := p.parseParagraph(el)
		return []Block{{Kind: BlockParagraph, Paragraph: para}}
	case "tbl":
		tbl := p.parseTable(el)
		return []Block{{Kind: BlockTable, Table: tbl}}
	case "sdt":
		sb := &StructuredBlock{Tag: val(child(child(el, "sdtPr"), "tag"))}
		sb.Blocks = p.parseBlocks(child(el, "sdtContent"))
		return []Block{{Kind: BlockStructured, Structured: sb}}
	case "customXml", "ins", "smartTag":
		return p.parseBlocks(el)
	case "bookmarkStart", "bookmarkEnd", "del", "proofErr", "permStart", "permEnd",
		"commentRangeStart", "commentRangeEnd", "moveFromRangeStart", "moveFromRangeEnd",
		"moveToRangeStart", "moveToRangeEnd":
		return nil
	default:
		p.log.Debug("Unexpected block element, ignoring", zap.String("tag", el.Tag))
		return nil
	}
}

func (p *parser) parseBlocks(el *etree.Element) []Block {
	if el == nil {
		return nil
	}
	var blocks []Block
	for _, c := range el.ChildElements() {
		blocks = append(blocks, p.parseBlock(c)...)
	}
	return blocks
}

func (p *parser) attachHeadersFooters(sec *Section) {
	refs := func(kind HeaderFooterKind, ids map[string]string) []HeaderFooter {
		types := make([]string, 0, len(ids))
		for t := range ids {
			types = append(types, t)
		}
		slices.Sort(types)

		var out []HeaderFooter
		for _, t := range types {
			rel, ok := p.rels[ids[t]]
			if !ok || rel.External {
				p.log.Debug("Unresolved header/footer reference, ignoring", zap.String("kind", string(kind)), zap.String("id", ids[t]))
				continue
			}
			blocks, err := p.parseHeaderFooter(rel.Target)
			if err != nil {
				p.log.Warn("Unable to read header/footer part, ignoring", zap.String("part", rel.Target), zap.Error(err))
				continue
			}
			out = append(out, HeaderFooter{Kind: kind, Type: t, Blocks: blocks})
		}
		return out
	}
	sec.Headers = refs(KindHeader, sec.Props.HeaderRefs)
	sec.Footers = refs(KindFooter, sec.Props.FooterRefs)
}

// parseHeaderFooter parses separate part, relationships are part specific.
func (p *parser) parseHeaderFooter(part string) ([]Block, error) {
	rels, err := p.pkg.Rels(part)
	if err != nil {
		return nil, err
	}
	xml, err := p.pkg.readXML(part)
	if err != nil {
		return nil, err
	}
	sub := &parser{pkg: p.pkg, log: p.log, part: part, rels: rels}
	return sub.parseBlocks(xml.Root()), nil
}

func (p *parser) parseSettings(doc *Document) {
	name := resolveTarget("word", "settings.xml")
	if rel, ok := p.rels.ByType(relTransPrefix + "settings"); ok {
		name = rel.Target
	}
	if !p.pkg.Has(name) {
		return
	}
	xml, err := p.pkg.readXML(name)
	if err != nil {
		p.log.Debug("Unable to read settings, ignoring", zap.Error(err))
		return
	}
	if v, ok := parseTwips(val(child(xml.Root(), "defaultTabStop"))); ok {
		doc.DefaultTab = v
	}
}

func (p *parser) parseCoreProps(doc *Document) {
	rels, err := p.pkg.Rels("")
	if err != nil {
		return
	}
	rel, ok := rels.ByType(relCoreProps)
	if !ok || !p.pkg.Has(rel.Target) {
		return
	}
	xml, err := p.pkg.readXML(rel.Target)
	if err != nil || xml.Root() == nil {
		p.log.Debug("Unable to read core properties, ignoring", zap.Error(err))
		return
	}
	for _, el := range xml.Root().ChildElements() {
		text := strings.TrimSpace(el.Text())
		switch el.Tag {
		case "title":
			doc.Meta.Title = text
		case "subject":
			doc.Meta.Subject = text
		case "creator":
			doc.Meta.Creator = text
		case "language":
			doc.Meta.Lang = text
		}
	}
}

// child returns first child element with local name, nil safe.
func child(el *etree.Element, tag string) *etree.Element {
	if el == nil {
		return nil
	}
	for _, c := range el.ChildElements() {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

// descendant returns first element with local name in document order.
func descendant(el *etree.Element, tag string) *etree.Element {
	if el == nil {
		return nil
	}
	for _, c := range el.ChildElements() {
		if c.Tag == tag {
			return c
		}
		if d := descendant(c, tag); d != nil {
			return d
		}
	}
	return nil
}

// attr returns value of attribute by local name ignoring namespace.
// WordprocessingML attributes are namespace qualified but the prefix varies
// between producers.
func attr(el *etree.Element, key string) string {
	if el == nil {
		return ""
	}
	for _, a := range el.Attr {
		if a.Key == key && a.Space != "xmlns" {
			return a.Value
		}
	}
	return ""
}

func hasAttr(el *etree.Element, key string) bool {
	if el == nil {
		return false
	}
	for _, a := range el.Attr {
		if a.Key == key && a.Space != "xmlns" {
			return true
		}
	}
	return false
}

// relAttr returns attribute from relationships namespace.
func relAttr(el *etree.Element, key string) string {
	if el == nil {
		return ""
	}
	for _, a := range el.Attr {
		if a.Key == key && (a.Space == "r" || strings.HasSuffix(a.NamespaceURI(), "/relationships")) {
			return a.Value
		}
	}
	return ""
}

func val(el *etree.Element) string {
	return attr(el, "val")
}
