package xhtml

import (
	"math"
	"strconv"
	"strings"

	"dxc/css"
	"dxc/docx"
)

// Translation of WordprocessingML formatting into CSS. Facts which are not
// set produce no properties.

func points(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64) + "pt"
}

func twips(v int) string {
	return points(docx.TwipsToPoints(v))
}

func isHex(s string) bool {
	if len(s) != 6 {
		return false
	}
	for _, r := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return false
		}
	}
	return true
}

// color returns CSS color for hex value, "auto" and malformed values are
// ignored.
func color(s string) string {
	if !isHex(s) {
		return ""
	}
	return "#" + strings.ToUpper(s)
}

func setTwips(p css.Properties, name string, v *int) {
	if v != nil {
		p.Set(name, twips(*v))
	}
}

func shading(p css.Properties, sh *docx.Shading) {
	if sh == nil || sh.Val == "nil" {
		return
	}
	p.Set("background-color", color(sh.Fill))
}

var borderStyles = map[string]string{
	"single":        "solid",
	"thick":         "solid",
	"double":        "double",
	"dotted":        "dotted",
	"dashed":        "dashed",
	"dotDash":       "dashed",
	"dotDotDash":    "dotted",
	"triple":        "double",
	"inset":         "inset",
	"outset":        "outset",
	"threeDEmboss":  "ridge",
	"threeDEngrave": "groove",
}

// border formats border in points. Size is in eighths of a point.
func border(b *docx.Border) string {
	style, ok := borderStyles[b.Val]
	if !ok {
		style = "solid"
	}
	c := color(b.Color)
	if c == "" {
		c = "#000000"
	}
	size := b.Size
	if size <= 0 {
		size = 4
	}
	return points(float64(size)/8) + " " + style + " " + c
}

func borders(p css.Properties, b *docx.Borders) {
	if b == nil {
		return
	}
	for _, side := range []struct {
		name   string
		border *docx.Border
	}{{"top", b.Top}, {"right", b.Right}, {"bottom", b.Bottom}, {"left", b.Left}} {
		if side.border.Defined() {
			p.Set("border-"+side.name, border(side.border))
		} else if side.border != nil {
			p.Set("border-"+side.name, "none")
		}
	}
}

// tableBorder formats table level border applied to cells, pixel width
// equals border width in points.
func tableBorder(b *docx.Border) string {
	c := color(b.Color)
	if c == "" {
		c = "#000000"
	}
	return strconv.FormatFloat(float64(b.Size)/8, 'f', -1, 64) + "px solid " + c
}

var alignments = map[string]string{
	"left":       "left",
	"start":      "left",
	"center":     "center",
	"right":      "right",
	"end":        "right",
	"both":       "justify",
	"distribute": "justify",
	"justify":    "justify",
}

func paragraphCSS(pp *docx.ParagraphProps) css.Properties {
	p := make(css.Properties)
	if pp == nil {
		return p
	}
	if pp.Align != nil {
		p.Set("text-align", alignments[*pp.Align])
	}
	setTwips(p, "margin-left", pp.IndentLeft)
	setTwips(p, "margin-right", pp.IndentRight)
	setTwips(p, "text-indent", pp.FirstLine)
	if pp.Hanging != nil {
		p.Set("text-indent", twips(-*pp.Hanging))
	}
	setTwips(p, "margin-top", pp.SpaceBefore)
	setTwips(p, "margin-bottom", pp.SpaceAfter)
	if pp.Line != nil && *pp.Line > 0 {
		rule := "auto"
		if pp.LineRule != nil {
			rule = *pp.LineRule
		}
		if rule == "auto" {
			// 240 is single line
			p.Set("line-height", strconv.FormatFloat(math.Round(float64(*pp.Line)/240*100)/100, 'f', -1, 64))
		} else {
			p.Set("line-height", twips(*pp.Line))
		}
	}
	shading(p, pp.Shading)
	borders(p, pp.Borders)
	return p
}

var highlights = map[string]string{
	"black":       "#000000",
	"blue":        "#0000FF",
	"cyan":        "#00FFFF",
	"green":       "#00FF00",
	"magenta":     "#FF00FF",
	"red":         "#FF0000",
	"yellow":      "#FFFF00",
	"white":       "#FFFFFF",
	"darkBlue":    "#000080",
	"darkCyan":    "#008080",
	"darkGreen":   "#008000",
	"darkMagenta": "#800080",
	"darkRed":     "#800000",
	"darkYellow":  "#808000",
	"darkGray":    "#808080",
	"lightGray":   "#C0C0C0",
}

func choose(cond bool, yes, no string) string {
	if cond {
		return yes
	}
	return no
}

func on(b *bool) bool {
	return b != nil && *b
}

func runCSS(rp *docx.RunProps) css.Properties {
	p := make(css.Properties)
	if rp == nil {
		return p
	}
	if rp.Bold != nil {
		p.Set("font-weight", choose(*rp.Bold, "bold", "normal"))
	}
	if rp.Italic != nil {
		p.Set("font-style", choose(*rp.Italic, "italic", "normal"))
	}

	var decorations []string
	if rp.Underline != nil && *rp.Underline != "none" {
		decorations = append(decorations, "underline")
	}
	if on(rp.Strike) || on(rp.DStrike) {
		decorations = append(decorations, "line-through")
	}
	switch {
	case len(decorations) > 0:
		p.Set("text-decoration", strings.Join(decorations, " "))
	case rp.Underline != nil || rp.Strike != nil || rp.DStrike != nil:
		p.Set("text-decoration", "none")
	}

	if rp.Color != nil {
		p.Set("color", color(*rp.Color))
	}
	if rp.Size != nil && *rp.Size > 0 {
		// half points
		p.Set("font-size", points(float64(*rp.Size)/2))
	}
	if rp.Font != nil {
		p.Set("font-family", "'"+strings.ReplaceAll(*rp.Font, "'", "")+"'")
	}
	shading(p, rp.Shading)
	if rp.Highlight != nil {
		p.Set("background-color", highlights[*rp.Highlight])
	}
	if rp.VertAlign != nil {
		switch *rp.VertAlign {
		case "superscript":
			p.Set("vertical-align", "super")
		case "subscript":
			p.Set("vertical-align", "sub")
		case "baseline":
			p.Set("vertical-align", "baseline")
		}
	}
	if on(rp.Caps) {
		p.Set("text-transform", "uppercase")
	}
	if on(rp.SmallCaps) {
		p.Set("font-variant", "small-caps")
	}
	if on(rp.Hidden) {
		p.Set("display", "none")
	}
	return p
}

func width(w *docx.Width) string {
	if w == nil {
		return ""
	}
	switch w.Type {
	case "dxa", "":
		if w.W > 0 {
			return twips(w.W)
		}
	case "pct":
		// fiftieths of a percent
		if w.W > 0 {
			return strconv.FormatFloat(float64(w.W)/50, 'f', -1, 64) + "%"
		}
	}
	return ""
}

func tableCSS(tp *docx.TableProps) css.Properties {
	p := make(css.Properties)
	if tp == nil {
		return p
	}
	p.Set("width", width(tp.Width))
	if tp.Align != nil {
		switch *tp.Align {
		case "center":
			p.Set("margin-left", "auto")
			p.Set("margin-right", "auto")
		case "right", "end":
			p.Set("margin-left", "auto")
		}
	}
	if tp.Indent != nil && (tp.Indent.Type == "dxa" || tp.Indent.Type == "") {
		p.Set("margin-left", twips(tp.Indent.W))
	}
	shading(p, tp.Shading)
	return p
}

func cellCSS(cp *docx.CellProps) css.Properties {
	p := make(css.Properties)
	if cp == nil {
		return p
	}
	p.Set("width", width(cp.Width))
	if cp.VAlign != nil {
		switch *cp.VAlign {
		case "top":
			p.Set("vertical-align", "top")
		case "center":
			p.Set("vertical-align", "middle")
		case "bottom":
			p.Set("vertical-align", "bottom")
		}
	}
	shading(p, cp.Shading)
	borders(p, cp.Borders)
	return p
}

// imageStyle sizes picture from its extent in EMU.
func imageStyle(img *docx.Image) css.Properties {
	p := make(css.Properties)
	if img.Extent != nil {
		p.Set("width", points(docx.EMUToPoints(img.Extent.CX)))
		p.Set("height", points(docx.EMUToPoints(img.Extent.CY)))
	}
	return p
}
