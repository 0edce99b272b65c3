package content

import (
	"dxc/utils/debug"
)

type treeWriter struct {
	*debug.TreeWriter
}

// String returns a readable tree of the whole Content starting with parsed
// document. It exists solely for manual inspection during debugging.
func (c *Content) String() string {
	if c == nil {
		return "<nil Content>"
	}

	tw := treeWriter{debug.NewTreeWriter()}
	tw.Line(0, "Content: source[%q] id[%q] format[%s]", c.SrcName, c.DocID, c.OutputFormat)
	out := tw.String() + c.Doc.String()

	if c.Media.Len() > 0 {
		tw := treeWriter{debug.NewTreeWriter()}
		tw.Line(0, "Media index: %d", c.Media.Len())
		for _, item := range c.Media.Items() {
			tw.Line(1, "Media[%q] file[%q] mime[%q] size[%d]", item.Name, item.FileName, item.MimeType, len(item.Data))
		}
		out += "\n" + tw.String()
	}
	return out
}
