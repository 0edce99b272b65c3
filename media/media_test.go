package media

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zaptest"
	"golang.org/x/image/bmp"

	"dxc/docx/docxtest"
)

type mapSource map[string][]byte

func (m mapSource) ReadPart(name string) ([]byte, error) {
	data, ok := m[name]
	if !ok {
		return nil, os.ErrNotExist
	}
	return data, nil
}

func bmpImage(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, img); err != nil {
		t.Fatalf("encode bmp: %v", err)
	}
	return buf.Bytes()
}

func TestNewIndex(t *testing.T) {
	src := mapSource{
		"word/media/image1.png":  docxtest.PNG,
		"word/media/image2.jpeg": docxtest.PNG, // wrong extension
		"word/media/image3.emf":  []byte("not really emf"),
	}
	idx := NewIndex(src, []string{"word/media/image2.jpeg", "word/media/image1.png", "word/media/image3.emf", "word/media/missing.png"}, false, zaptest.NewLogger(t))

	if idx.Len() != 3 {
		t.Fatalf("expected 3 items, got %d", idx.Len())
	}
	item, ok := idx.Get("word/media/image2.jpeg")
	if !ok {
		t.Fatalf("image2 not found")
	}
	if item.MimeType != "image/png" || item.FileName != "image2.png" {
		t.Errorf("sniffed item = %s %s", item.MimeType, item.FileName)
	}
	if item, _ := idx.Get("/word/media/image3.emf"); item == nil || item.MimeType != "image/emf" || item.FileName != "image3.emf" {
		t.Errorf("emf item = %+v", item)
	}
	if _, ok := idx.Get("word/media/missing.png"); ok {
		t.Errorf("unreadable part must be skipped")
	}

	items := idx.Items()
	if items[0].Name != "word/media/image1.png" || items[2].Name != "word/media/image3.emf" {
		t.Errorf("items not in natural order: %s, %s, %s", items[0].Name, items[1].Name, items[2].Name)
	}
}

func TestNewIndex_UniqueFileNames(t *testing.T) {
	src := mapSource{
		"word/media/a.png":  docxtest.PNG,
		"word/media/a.jpeg": docxtest.PNG,
	}
	idx := NewIndex(src, []string{"word/media/a.png", "word/media/a.jpeg"}, false, zaptest.NewLogger(t))
	first, _ := idx.Get("word/media/a.png")
	second, _ := idx.Get("word/media/a.jpeg")
	if first.FileName != "a.png" || second.FileName != "a-1.png" {
		t.Errorf("file names = %q, %q", first.FileName, second.FileName)
	}
}

func TestNormalize(t *testing.T) {
	src := mapSource{"word/media/pic.bmp": bmpImage(t)}

	raw := NewIndex(src, []string{"word/media/pic.bmp"}, false, zaptest.NewLogger(t))
	if item, _ := raw.Get("word/media/pic.bmp"); item.MimeType != "image/bmp" {
		t.Errorf("without normalization mime = %s", item.MimeType)
	}

	idx := NewIndex(src, []string{"word/media/pic.bmp"}, true, zaptest.NewLogger(t))
	item, _ := idx.Get("word/media/pic.bmp")
	if item.MimeType != "image/png" || item.FileName != "pic.png" {
		t.Fatalf("normalized item = %s %s", item.MimeType, item.FileName)
	}
	if _, format, err := image.Decode(bytes.NewReader(item.Data)); err != nil || format != "png" {
		t.Errorf("normalized data is not png: %s %v", format, err)
	}
}

func TestResolvers(t *testing.T) {
	item := &Item{Name: "word/media/my image.png", FileName: "my image.png", MimeType: "image/png", Data: []byte{1, 2, 3}}

	if got := (PathResolver{Prefix: DefaultPrefix}).Resolve(item); got != "word/media/my%20image.png" {
		t.Errorf("default path = %q", got)
	}
	if got := (PathResolver{Prefix: "report_media"}).Resolve(item); got != "report_media/my%20image.png" {
		t.Errorf("extract path = %q", got)
	}
	if got := (DataURIResolver{}).Resolve(item); got != "data:image/png;base64,AQID" {
		t.Errorf("data uri = %q", got)
	}
}

func TestExtract(t *testing.T) {
	idx := NewIndex(mapSource{"word/media/image1.png": docxtest.PNG}, []string{"word/media/image1.png"}, false, zaptest.NewLogger(t))
	dir := filepath.Join(t.TempDir(), "out_media")
	if err := idx.Extract(dir); err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "image1.png"))
	if err != nil {
		t.Fatalf("extracted file missing: %v", err)
	}
	if !bytes.Equal(data, docxtest.PNG) {
		t.Errorf("extracted content differs")
	}

	var empty *Index
	none := filepath.Join(t.TempDir(), "none")
	if err := empty.Extract(none); err != nil {
		t.Errorf("empty extract: %v", err)
	}
	if _, err := os.Stat(none); !os.IsNotExist(err) {
		t.Errorf("empty index must not create directory")
	}
}
