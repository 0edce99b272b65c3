package docx

import (
	"github.com/beevik/etree"
	"go.uber.org/zap"

	"dxc/numfmt"
)

// partByType locates part related to the main document falling back to the
// conventional name.
func (p *parser) partByType(typ, fallback string) (string, bool) {
	if rel, ok := p.rels.ByType(typ); ok && !rel.External && p.pkg.Has(rel.Target) {
		return rel.Target, true
	}
	if p.pkg.Has(fallback) {
		return fallback, true
	}
	return "", false
}

func (p *parser) parseStyles(doc *Document) error {
	name, ok := p.partByType(relStyles, "word/styles.xml")
	if !ok {
		return nil
	}
	xml, err := p.pkg.readXML(name)
	if err != nil {
		return err
	}
	root := xml.Root()
	if root == nil {
		return nil
	}

	styles := doc.Styles
	if defs := child(root, "docDefaults"); defs != nil {
		if rpr := child(child(defs, "rPrDefault"), "rPr"); rpr != nil {
			styles.Defaults.Run = parseRunProps(rpr)
		}
		if ppr := child(child(defs, "pPrDefault"), "pPr"); ppr != nil {
			styles.Defaults.Paragraph = parseParagraphProps(ppr)
		}
		if styles.Defaults.Run.Lang != nil {
			doc.Lang = *styles.Defaults.Run.Lang
		}
	}

	for _, el := range root.ChildElements() {
		if el.Tag != "style" {
			continue
		}
		st := &Style{
			ID:      attr(el, "styleId"),
			Type:    StyleType(attr(el, "type")),
			Name:    val(child(el, "name")),
			BasedOn: val(child(el, "basedOn")),
		}
		if st.ID == "" {
			p.log.Debug("Style without identifier, ignoring", zap.String("name", st.Name))
			continue
		}
		if st.Type == "" {
			st.Type = StyleParagraph
		}
		if hasAttr(el, "default") {
			st.Default = parseOnOff(attr(el, "default"))
		}
		if ppr := child(el, "pPr"); ppr != nil {
			st.Paragraph = parseParagraphProps(ppr)
		}
		if rpr := child(el, "rPr"); rpr != nil {
			st.Run = parseRunProps(rpr)
		}
		if tpr := child(el, "tblPr"); tpr != nil {
			st.Table = parseTableProps(tpr)
		}
		if tcpr := child(el, "tcPr"); tcpr != nil {
			st.Cell = parseCellProps(tcpr)
		}
		styles.add(st)
	}
	styles.flatten(p.log)
	return nil
}

func (p *parser) parseNumbering(doc *Document) error {
	name, ok := p.partByType(relNumbering, "word/numbering.xml")
	if !ok {
		return nil
	}
	xml, err := p.pkg.readXML(name)
	if err != nil {
		return err
	}
	root := xml.Root()
	if root == nil {
		return nil
	}

	numbering := doc.Numbering
	for _, el := range root.ChildElements() {
		switch el.Tag {
		case "abstractNum":
			abs := &AbstractNum{ID: attr(el, "abstractNumId"), Levels: make(map[int]*Level)}
			for _, l := range el.ChildElements() {
				if l.Tag != "lvl" {
					continue
				}
				ilvl, ok := parseInt(attr(l, "ilvl"))
				if !ok {
					continue
				}
				abs.Levels[ilvl] = parseLevel(l)
			}
			numbering.abstract[abs.ID] = abs
		case "num":
			num := &Num{
				ID:         attr(el, "numId"),
				AbstractID: val(child(el, "abstractNumId")),
				Overrides:  make(map[int]int),
			}
			for _, o := range el.ChildElements() {
				if o.Tag != "lvlOverride" {
					continue
				}
				ilvl, ok := parseInt(attr(o, "ilvl"))
				if !ok {
					continue
				}
				if start, ok := parseInt(val(child(o, "startOverride"))); ok {
					num.Overrides[ilvl] = start
				}
			}
			numbering.nums[num.ID] = num
		}
	}
	return nil
}

func parseLevel(el *etree.Element) *Level {
	lvl := &Level{Start: 1, Format: numfmt.Decimal}
	if v, ok := parseInt(val(child(el, "start"))); ok {
		lvl.Start = v
	}
	if f := val(child(el, "numFmt")); f != "" {
		lvl.Format = numfmt.Kind(f)
	}
	if t := child(el, "lvlText"); t != nil {
		lvl.Text = val(t)
	}
	if ppr := child(el, "pPr"); ppr != nil {
		lvl.Paragraph = parseParagraphProps(ppr)
	}
	if rpr := child(el, "rPr"); rpr != nil {
		lvl.Run = parseRunProps(rpr)
	}
	return lvl
}
