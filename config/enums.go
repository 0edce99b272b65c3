package config

// How presentation is written into markup.
// ENUM(classes, inline)
type StyleMode int

// What happens to pictures stored in the document.
// ENUM(extract, embed, skip)
type ImagesMode int

// Requested output type.
// ENUM(xhtml, html)
type OutputFmt int

func (o OutputFmt) Ext() string {
	switch o {
	case OutputFmtXhtml:
		return ".xhtml"
	case OutputFmtHtml:
		return ".html"
	default:
		// this should never happen
		panic("unsupported format requested")
	}
}
