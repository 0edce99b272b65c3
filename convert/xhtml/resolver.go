package xhtml

import (
	"strings"

	"golang.org/x/net/html/atom"

	"dxc/config"
	"dxc/css"
	"dxc/docx"
)

// resolver decides which presentation goes into class and style attributes.
// Node level properties are owner named style translated to CSS with direct
// formatting layered on top. In class mode only what classes do not already
// provide is written inline, in inline mode all matching class level rules
// are expanded into the style attribute.
type resolver struct {
	styles   *docx.Styles
	registry *css.Registry
	mode     config.StyleMode
}

// nodeStyle returns node level properties for style target. Nil means no
// style attribute is needed: there is no owner style, no direct formatting
// and no class.
func (r *resolver) nodeStyle(target atom.Atom, owner *docx.Style, direct css.Properties, hasClass bool) css.Properties {
	if owner == nil && len(direct) == 0 && !hasClass {
		return nil
	}
	props := make(css.Properties)
	if owner != nil {
		switch target {
		case atom.P:
			props.Merge(paragraphCSS(&owner.Paragraph))
		case atom.Span:
			props.Merge(runCSS(&owner.Run))
		case atom.Table:
			props.Merge(tableCSS(&owner.Table))
		case atom.Td:
			props.Merge(cellCSS(&owner.Cell))
		}
	}
	props.Merge(direct)
	if target == atom.P || target == atom.Span {
		props.Set("white-space", "pre-wrap")
	}
	return props
}

// attrs produces class and style attributes for element tag.
func (r *resolver) attrs(tag atom.Atom, classes []string, node css.Properties) Attrs {
	var a Attrs
	a = a.With(atom.Class, strings.Join(classes, " "))

	var style css.Properties
	switch r.mode {
	case config.StyleModeInline:
		style = r.registry.Expand(tag.String(), classes)
		style.Merge(node)
	default:
		if node != nil {
			style = node.Delta(r.registry.Expand(tag.String(), classes))
		}
	}
	return a.With(atom.Style, style.Inline())
}

// style returns named style of the type, nil when id is unknown.
func (r *resolver) style(id string) *docx.Style {
	st, ok := r.styles.Get(id)
	if !ok {
		return nil
	}
	return st
}

// headingTag picks element for paragraph from its outline level: own
// paragraph properties first, then owner named style. fromDirect reports
// where the level came from.
func headingTag(direct *docx.ParagraphProps, owner *docx.Style) (tag atom.Atom, level int, fromDirect bool) {
	var lvl *int
	if direct.OutlineLevel != nil {
		lvl, fromDirect = direct.OutlineLevel, true
	} else if owner != nil {
		lvl = owner.Paragraph.OutlineLevel
	}
	if lvl == nil {
		return atom.P, -1, false
	}
	headings := []atom.Atom{atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6}
	if *lvl >= 0 && *lvl < len(headings) {
		return headings[*lvl], *lvl, fromDirect
	}
	return atom.P, *lvl, fromDirect
}
