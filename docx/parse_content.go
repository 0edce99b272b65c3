package docx

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"
)

func (p *parser) parseParagraph(el *etree.Element) *Paragraph {
	para := &Paragraph{}
	if ppr := child(el, "pPr"); ppr != nil {
		para.StyleID = val(child(ppr, "pStyle"))
		para.Props = parseParagraphProps(ppr)
		if tabs := child(ppr, "tabs"); tabs != nil {
			para.Tabs = parseTabs(tabs)
		}
	}
	para.Content = p.parseInlines(el, "")
	return para
}

func parseTabs(el *etree.Element) []TabStop {
	tabs := make([]TabStop, 0)
	for _, t := range el.ChildElements() {
		if t.Tag != "tab" {
			continue
		}
		stop := TabStop{Val: val(t), Leader: attr(t, "leader")}
		stop.Pos, _ = parseTwips(attr(t, "pos"))
		tabs = append(tabs, stop)
	}
	return tabs
}

// parseInlines collects paragraph content. href is link target inherited from
// enclosing hyperlink.
func (p *parser) parseInlines(el *etree.Element, href string) []Inline {
	if el == nil {
		return nil
	}
	var out []Inline
	for _, c := range el.ChildElements() {
		switch c.Tag {
		case "pPr":
		case "r":
			if r := p.parseRun(c, href); r != nil {
				out = append(out, Inline{Kind: InlineRun, Run: r})
			}
		case "hyperlink":
			out = append(out, p.parseInlines(c, p.hyperlinkTarget(c))...)
		case "bookmarkStart":
			out = append(out, Inline{Kind: InlineBookmark, Bookmark: &Bookmark{ID: attr(c, "id"), Name: attr(c, "name")}})
		case "sdt":
			out = append(out, p.parseInlines(child(c, "sdtContent"), href)...)
		case "ins", "smartTag", "customXml", "fldSimple", "dir", "bdo", "moveTo":
			out = append(out, p.parseInlines(c, href)...)
		case "del", "moveFrom", "bookmarkEnd", "proofErr", "commentRangeStart", "commentRangeEnd",
			"permStart", "permEnd", "oMathPara", "oMath":
		default:
			p.log.Debug("Unexpected paragraph content, ignoring", zap.String("tag", c.Tag))
		}
	}
	return out
}

// hyperlinkTarget resolves hyperlink destination. Unresolvable relationship
// ids are dropped, anchors refer to bookmarks.
func (p *parser) hyperlinkTarget(el *etree.Element) string {
	var target string
	if id := relAttr(el, "id"); id != "" {
		if rel, ok := p.rels[id]; ok {
			target = rel.Target
		} else {
			p.log.Debug("Unresolved hyperlink relationship, ignoring", zap.String("id", id))
		}
	}
	if anchor := attr(el, "anchor"); anchor != "" {
		target += "#" + anchor
	}
	return target
}

func (p *parser) parseRun(el *etree.Element, href string) *Run {
	run := &Run{Href: href}
	if rpr := child(el, "rPr"); rpr != nil {
		run.StyleID = val(child(rpr, "rStyle"))
		run.Props = parseRunProps(rpr)
	}
	for _, c := range el.ChildElements() {
		switch c.Tag {
		case "rPr":
		case "t":
			run.Content = append(run.Content, RunItem{Kind: RunText, Text: c.Text()})
		case "tab", "ptab":
			run.Content = append(run.Content, RunItem{Kind: RunTab})
		case "br":
			typ := BreakType(attr(c, "type"))
			if typ == "" {
				typ = BreakLine
			}
			run.Content = append(run.Content, RunItem{Kind: RunBreak, Break: typ})
		case "cr":
			run.Content = append(run.Content, RunItem{Kind: RunBreak, Break: BreakLine})
		case "noBreakHyphen":
			run.Content = append(run.Content, RunItem{Kind: RunText, Text: "\u2011"})
		case "softHyphen":
			run.Content = append(run.Content, RunItem{Kind: RunText, Text: "\u00ad"})
		case "sym":
			if code, err := strconv.ParseUint(attr(c, "char"), 16, 32); err == nil {
				run.Content = append(run.Content, RunItem{Kind: RunText, Text: ReplaceSymbols(string(rune(code)))})
			}
		case "drawing":
			if img := p.parseDrawing(c); img != nil {
				run.Content = append(run.Content, RunItem{Kind: RunImage, Image: img})
			}
		case "pict", "object":
			if img := p.parseVML(c); img != nil {
				run.Content = append(run.Content, RunItem{Kind: RunImage, Image: img})
			}
		case "delText", "instrText", "fldChar", "lastRenderedPageBreak", "footnoteReference",
			"endnoteReference", "commentReference", "annotationRef", "separator", "continuationSeparator":
		default:
			p.log.Debug("Unexpected run content, ignoring", zap.String("tag", c.Tag))
		}
	}
	return run
}

// parseDrawing handles DrawingML pictures, both inline and anchored.
func (p *parser) parseDrawing(el *etree.Element) *Image {
	holder := child(el, "inline")
	if holder == nil {
		holder = child(el, "anchor")
	}
	blip := descendant(holder, "blip")
	if blip == nil {
		p.log.Debug("Drawing without picture, ignoring")
		return nil
	}
	img := &Image{}
	if ext := child(holder, "extent"); ext != nil {
		cx, okx := strconv.ParseInt(attr(ext, "cx"), 10, 64)
		cy, oky := strconv.ParseInt(attr(ext, "cy"), 10, 64)
		if okx == nil && oky == nil {
			img.Extent = &Extent{CX: cx, CY: cy}
		}
	}
	if pr := child(holder, "docPr"); pr != nil {
		img.Alt = attr(pr, "descr")
		if img.Alt == "" {
			img.Alt = attr(pr, "title")
		}
	}
	p.resolvePicture(img, relAttr(blip, "embed"), relAttr(blip, "link"))
	return img
}

// parseVML handles legacy pictures.
func (p *parser) parseVML(el *etree.Element) *Image {
	data := descendant(el, "imagedata")
	if data == nil {
		return nil
	}
	img := &Image{Alt: attr(data, "title")}
	if shape := descendant(el, "shape"); shape != nil {
		img.Style = shape.SelectAttrValue("style", "")
		if img.Alt == "" {
			img.Alt = shape.SelectAttrValue("alt", "")
		}
	}
	p.resolvePicture(img, relAttr(data, "id"), relAttr(data, "href"))
	return img
}

func (p *parser) resolvePicture(img *Image, embed, link string) {
	for _, id := range []string{embed, link} {
		if id == "" {
			continue
		}
		rel, ok := p.rels[id]
		if !ok {
			p.log.Debug("Unresolved picture relationship, ignoring", zap.String("part", p.part), zap.String("id", id))
			continue
		}
		if rel.External {
			img.Link = rel.Target
		} else if img.Name == "" {
			img.Name = rel.Target
		}
	}
}

func (p *parser) parseTable(el *etree.Element) *Table {
	tbl := &Table{}
	if tpr := child(el, "tblPr"); tpr != nil {
		tbl.StyleID = val(child(tpr, "tblStyle"))
		tbl.Props = parseTableProps(tpr)
	}
	if grid := child(el, "tblGrid"); grid != nil {
		for _, col := range grid.ChildElements() {
			if col.Tag != "gridCol" {
				continue
			}
			w, _ := parseTwips(attr(col, "w"))
			tbl.Grid = append(tbl.Grid, w)
		}
	}
	for _, c := range el.ChildElements() {
		switch c.Tag {
		case "tr":
			tbl.Rows = append(tbl.Rows, p.parseRow(c))
		case "sdt", "customXml":
			// rows wrapped into content controls
			for _, r := range descendants(c, "tr") {
				tbl.Rows = append(tbl.Rows, p.parseRow(r))
			}
		}
	}
	return tbl
}

func descendants(el *etree.Element, tag string) []*etree.Element {
	var out []*etree.Element
	for _, c := range el.ChildElements() {
		if c.Tag == tag {
			out = append(out, c)
			continue
		}
		out = append(out, descendants(c, tag)...)
	}
	return out
}

func (p *parser) parseRow(el *etree.Element) Row {
	var row Row
	if trpr := child(el, "trPr"); trpr != nil {
		if h := child(trpr, "tblHeader"); h != nil {
			row.Header = parseOnOff(val(h))
		}
	}
	for _, c := range el.ChildElements() {
		switch c.Tag {
		case "tc":
			row.Cells = append(row.Cells, p.parseCell(c))
		case "sdt", "customXml":
			for _, tc := range descendants(c, "tc") {
				row.Cells = append(row.Cells, p.parseCell(tc))
			}
		}
	}
	return row
}

func (p *parser) parseCell(el *etree.Element) Cell {
	var cell Cell
	if tcpr := child(el, "tcPr"); tcpr != nil {
		cell.Props = parseCellProps(tcpr)
		if n, ok := parseInt(val(child(tcpr, "gridSpan"))); ok {
			cell.GridSpan = n
		}
		if vm := child(tcpr, "vMerge"); vm != nil {
			if strings.EqualFold(val(vm), "restart") {
				cell.VMerge = VMergeRestart
			} else {
				cell.VMerge = VMergeContinue
			}
		}
	}
	for _, c := range el.ChildElements() {
		if c.Tag == "tcPr" {
			continue
		}
		cell.Blocks = append(cell.Blocks, p.parseBlock(c)...)
	}
	return cell
}
