package docx

import (
	"github.com/beevik/etree"
)

func intPtr(s string) *int {
	if v, ok := parseTwips(s); ok {
		return &v
	}
	return nil
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func onOff(el *etree.Element) *bool {
	if el == nil {
		return nil
	}
	v := parseOnOff(val(el))
	return &v
}

// firstAttr returns value of the first present attribute, logical names
// (start/end) used by strict documents are listed alongside physical ones.
func firstAttr(el *etree.Element, keys ...string) string {
	for _, k := range keys {
		if hasAttr(el, k) {
			return attr(el, k)
		}
	}
	return ""
}

func parseParagraphProps(el *etree.Element) ParagraphProps {
	var pp ParagraphProps
	for _, c := range el.ChildElements() {
		switch c.Tag {
		case "jc":
			pp.Align = strPtr(val(c))
		case "ind":
			pp.IndentLeft = intPtr(firstAttr(c, "left", "start"))
			pp.IndentRight = intPtr(firstAttr(c, "right", "end"))
			pp.FirstLine = intPtr(attr(c, "firstLine"))
			pp.Hanging = intPtr(attr(c, "hanging"))
		case "spacing":
			pp.SpaceBefore = intPtr(attr(c, "before"))
			pp.SpaceAfter = intPtr(attr(c, "after"))
			pp.Line = intPtr(attr(c, "line"))
			pp.LineRule = strPtr(attr(c, "lineRule"))
		case "outlineLvl":
			if v, ok := parseInt(val(c)); ok {
				pp.OutlineLevel = &v
			}
		case "shd":
			pp.Shading = parseShading(c)
		case "pBdr":
			pp.Borders = parseBorders(c)
		case "numPr":
			if id := child(c, "numId"); id != nil {
				v := val(id)
				pp.NumID = &v
			}
			if lvl, ok := parseInt(val(child(c, "ilvl"))); ok {
				pp.NumLevel = &lvl
			}
		}
	}
	return pp
}

func parseRunProps(el *etree.Element) RunProps {
	var rp RunProps
	for _, c := range el.ChildElements() {
		switch c.Tag {
		case "b":
			rp.Bold = onOff(c)
		case "i":
			rp.Italic = onOff(c)
		case "u":
			v := val(c)
			if v == "" {
				v = "single"
			}
			rp.Underline = &v
		case "strike":
			rp.Strike = onOff(c)
		case "dstrike":
			rp.DStrike = onOff(c)
		case "caps":
			rp.Caps = onOff(c)
		case "smallCaps":
			rp.SmallCaps = onOff(c)
		case "vanish":
			rp.Hidden = onOff(c)
		case "color":
			rp.Color = strPtr(val(c))
		case "sz":
			if v, ok := parseInt(val(c)); ok {
				rp.Size = &v
			}
		case "rFonts":
			rp.Font = strPtr(firstAttr(c, "ascii", "hAnsi", "cs", "eastAsia"))
		case "highlight":
			rp.Highlight = strPtr(val(c))
		case "shd":
			rp.Shading = parseShading(c)
		case "vertAlign":
			rp.VertAlign = strPtr(val(c))
		case "lang":
			rp.Lang = strPtr(val(c))
		}
	}
	return rp
}

func parseTableProps(el *etree.Element) TableProps {
	var tp TableProps
	for _, c := range el.ChildElements() {
		switch c.Tag {
		case "tblW":
			tp.Width = parseWidth(c)
		case "jc":
			tp.Align = strPtr(val(c))
		case "tblInd":
			tp.Indent = parseWidth(c)
		case "tblBorders":
			tp.Borders = parseBorders(c)
		case "shd":
			tp.Shading = parseShading(c)
		}
	}
	return tp
}

func parseCellProps(el *etree.Element) CellProps {
	var cp CellProps
	for _, c := range el.ChildElements() {
		switch c.Tag {
		case "tcW":
			cp.Width = parseWidth(c)
		case "vAlign":
			cp.VAlign = strPtr(val(c))
		case "shd":
			cp.Shading = parseShading(c)
		case "tcBorders":
			cp.Borders = parseBorders(c)
		}
	}
	return cp
}

func (p *parser) parseSectionProps(el *etree.Element) SectionProps {
	var sp SectionProps
	for _, c := range el.ChildElements() {
		switch c.Tag {
		case "pgSz":
			sp.PageWidth = intPtr(attr(c, "w"))
			sp.PageHeight = intPtr(attr(c, "h"))
		case "pgMar":
			sp.MarginTop = intPtr(attr(c, "top"))
			sp.MarginBottom = intPtr(attr(c, "bottom"))
			sp.MarginLeft = intPtr(firstAttr(c, "left", "start"))
			sp.MarginRight = intPtr(firstAttr(c, "right", "end"))
		case "headerReference":
			if sp.HeaderRefs == nil {
				sp.HeaderRefs = make(map[string]string)
			}
			sp.HeaderRefs[refType(c)] = relAttr(c, "id")
		case "footerReference":
			if sp.FooterRefs == nil {
				sp.FooterRefs = make(map[string]string)
			}
			sp.FooterRefs[refType(c)] = relAttr(c, "id")
		}
	}
	return sp
}

func refType(el *etree.Element) string {
	if t := attr(el, "type"); t != "" {
		return t
	}
	return "default"
}

func parseShading(el *etree.Element) *Shading {
	return &Shading{Val: val(el), Color: attr(el, "color"), Fill: attr(el, "fill")}
}

func parseWidth(el *etree.Element) *Width {
	w := &Width{Type: attr(el, "type")}
	w.W, _ = parseTwips(attr(el, "w"))
	return w
}

func parseBorders(el *etree.Element) *Borders {
	b := &Borders{}
	for _, c := range el.ChildElements() {
		border := parseBorder(c)
		switch c.Tag {
		case "top":
			b.Top = border
		case "left", "start":
			b.Left = border
		case "bottom":
			b.Bottom = border
		case "right", "end":
			b.Right = border
		case "insideH":
			b.InsideH = border
		case "insideV":
			b.InsideV = border
		}
	}
	return b
}

func parseBorder(el *etree.Element) *Border {
	b := &Border{Val: val(el), Color: attr(el, "color")}
	b.Size, _ = parseInt(attr(el, "sz"))
	b.Space, _ = parseInt(attr(el, "space"))
	return b
}
