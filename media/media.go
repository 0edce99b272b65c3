// Package media keeps pictures embedded into document package and decides
// how rendered markup refers to them.
package media

import (
	"fmt"
	"mime"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/h2non/filetype"
	"github.com/maruel/natural"
	"go.uber.org/zap"
)

// Item is a single media part.
type Item struct {
	// Name is package part name, e.g. word/media/image1.png.
	Name string
	// FileName is name to use when item is written out.
	FileName string
	MimeType string
	Data     []byte
}

// Source gives access to package parts.
type Source interface {
	ReadPart(name string) ([]byte, error)
}

// Index maps package names to media items.
type Index struct {
	items map[string]*Item
	files map[string]bool
}

// NewIndex reads all named parts from source. Parts which could not be read
// are skipped, references to them render as unresolved.
func NewIndex(src Source, names []string, normalize bool, log *zap.Logger) *Index {
	idx := &Index{
		items: make(map[string]*Item, len(names)),
		files: make(map[string]bool, len(names)),
	}
	for _, name := range names {
		data, err := src.ReadPart(name)
		if err != nil {
			log.Warn("Unable to read media, skipping", zap.String("name", name), zap.Error(err))
			continue
		}
		item := &Item{Name: name, Data: data, MimeType: detectMimeType(name, data)}
		if normalize {
			normalizeItem(item, log)
		}
		item.FileName = idx.uniqueFileName(item)
		idx.items[name] = item
	}
	return idx
}

// Get returns item by package name. Safe on nil receiver.
func (idx *Index) Get(name string) (*Item, bool) {
	if idx == nil {
		return nil, false
	}
	item, ok := idx.items[strings.TrimPrefix(name, "/")]
	return item, ok
}

// Len returns number of items.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.items)
}

// Items returns all items in natural order of their names.
func (idx *Index) Items() []*Item {
	if idx == nil {
		return nil
	}
	out := make([]*Item, 0, len(idx.items))
	for _, item := range idx.items {
		out = append(out, item)
	}
	slices.SortFunc(out, func(a, b *Item) int {
		switch {
		case natural.Less(a.Name, b.Name):
			return -1
		case natural.Less(b.Name, a.Name):
			return 1
		}
		return 0
	})
	return out
}

// Extract writes all items into directory creating it when necessary.
func (idx *Index) Extract(dir string) error {
	if idx.Len() == 0 {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("unable to create media directory: %w", err)
	}
	for _, item := range idx.Items() {
		if err := os.WriteFile(filepath.Join(dir, item.FileName), item.Data, 0644); err != nil {
			return fmt.Errorf("unable to write media %q: %w", item.Name, err)
		}
	}
	return nil
}

func (idx *Index) uniqueFileName(item *Item) string {
	base := path.Base(item.Name)
	ext := path.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	if want := mimeToExt(item.MimeType); want != "" && !strings.EqualFold(ext, want) {
		ext = want
	}
	name := stem + ext
	for i := 1; idx.files[strings.ToLower(name)]; i++ {
		name = fmt.Sprintf("%s-%d%s", stem, i, ext)
	}
	idx.files[strings.ToLower(name)] = true
	return name
}

// detectMimeType sniffs content, falls back to name extension.
func detectMimeType(name string, data []byte) string {
	if kind, err := filetype.Match(data); err == nil && kind != filetype.Unknown {
		return kind.MIME.Value
	}
	switch strings.ToLower(path.Ext(name)) {
	case ".emf":
		return "image/emf"
	case ".wmf":
		return "image/wmf"
	case ".svg":
		return "image/svg+xml"
	}
	if t := mime.TypeByExtension(path.Ext(name)); t != "" {
		return t
	}
	return "application/octet-stream"
}

// mimeToExt returns preferred file extension for common image types, empty
// when extension should be kept as is.
func mimeToExt(mimeType string) string {
	switch strings.ToLower(mimeType) {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/bmp":
		return ".bmp"
	case "image/svg+xml":
		return ".svg"
	case "image/webp":
		return ".webp"
	case "image/tiff":
		return ".tiff"
	}
	return ""
}
