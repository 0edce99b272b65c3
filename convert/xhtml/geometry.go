package xhtml

import (
	"dxc/css"
	"dxc/docx"
)

// sectionStyle produces page geometry of a section: page width and margins.
// Absent facts produce no properties.
func sectionStyle(sp *docx.SectionProps) css.Properties {
	p := make(css.Properties)
	setTwips(p, "width", sp.PageWidth)
	setTwips(p, "margin-top", sp.MarginTop)
	setTwips(p, "margin-bottom", sp.MarginBottom)
	setTwips(p, "margin-left", sp.MarginLeft)
	setTwips(p, "margin-right", sp.MarginRight)
	return p
}
