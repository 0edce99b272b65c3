package media

import (
	"encoding/base64"
	"net/url"
	"path"
)

// Resolver produces URI markup uses to refer to media item.
type Resolver interface {
	Resolve(item *Item) string
}

// DefaultPrefix points into the package media folder.
const DefaultPrefix = "word/media/"

// PathResolver refers to items by file name under Prefix, which is usually
// directory relative to the output file.
type PathResolver struct {
	Prefix string
}

func (r PathResolver) Resolve(item *Item) string {
	u := url.URL{Path: path.Join(r.Prefix, item.FileName)}
	return u.EscapedPath()
}

// DataURIResolver embeds item content into markup.
type DataURIResolver struct{}

func (DataURIResolver) Resolve(item *Item) string {
	return "data:" + item.MimeType + ";base64," + base64.StdEncoding.EncodeToString(item.Data)
}
