package xhtml

import (
	"go.uber.org/zap"

	"dxc/css"
	"dxc/docx"
)

// headings are rendered paragraphs, paragraph rules apply to them as well
var headingTags = []string{"h1", "h2", "h3", "h4", "h5", "h6"}

// buildRegistry registers class level styles: document defaults as tag wide
// rules, named styles as classes and finally extra stylesheet, so its rules
// win over document ones.
func buildRegistry(doc *docx.Document, ignoreUnused bool, extra *css.Stylesheet, log *zap.Logger) *css.Registry {
	reg := css.NewRegistry()
	reg.Alias("p", headingTags...)

	styles := doc.Styles
	if styles != nil {
		reg.Add("p", "", paragraphCSS(&styles.Defaults.Paragraph))
		reg.Add("span", "", runCSS(&styles.Defaults.Run))
	}

	var used map[string]bool
	if ignoreUnused {
		used = usedStyles(doc)
	}
	for _, st := range styles.All() {
		if used != nil && !used[st.ID] {
			continue
		}
		class := css.ClassName(st.ID)
		switch st.Type {
		case docx.StyleParagraph:
			reg.Add("p", class, paragraphCSS(&st.Paragraph))
			reg.Add("span", class, runCSS(&st.Run))
		case docx.StyleCharacter:
			reg.Add("span", class, runCSS(&st.Run))
		case docx.StyleTable:
			reg.Add("table", class, tableCSS(&st.Table))
			reg.Add("td", class, cellCSS(&st.Cell))
		}
	}
	if extra != nil {
		reg.AddStylesheet(extra)
	}
	log.Debug("Stylesheet prepared", zap.Int("rules", reg.Len()), zap.Int("styles", len(styles.All())), zap.Bool("ignore_unused", ignoreUnused))
	return reg
}

// usedStyles collects identifiers of styles referenced by the content.
func usedStyles(doc *docx.Document) map[string]bool {
	used := make(map[string]bool)
	if def := doc.Styles.Default(docx.StyleParagraph); def != "" {
		used[def] = true
	}
	var walk func(blocks []docx.Block)
	walk = func(blocks []docx.Block) {
		for _, b := range blocks {
			switch b.Kind {
			case docx.BlockParagraph:
				used[b.Paragraph.StyleID] = true
				for _, in := range b.Paragraph.Content {
					if in.Kind == docx.InlineRun {
						used[in.Run.StyleID] = true
					}
				}
			case docx.BlockTable:
				used[b.Table.StyleID] = true
				for _, row := range b.Table.Rows {
					for _, cell := range row.Cells {
						walk(cell.Blocks)
					}
				}
			case docx.BlockStructured:
				walk(b.Structured.Blocks)
			}
		}
	}
	for _, sec := range doc.Sections {
		walk(sec.Blocks)
		for _, hf := range sec.Headers {
			walk(hf.Blocks)
		}
		for _, hf := range sec.Footers {
			walk(hf.Blocks)
		}
	}
	delete(used, "")
	return used
}
