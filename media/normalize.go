package media

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// formats browsers are not expected to display
var convertible = map[string]bool{
	"image/bmp":  true,
	"image/tiff": true,
	"image/webp": true,
}

// normalizeItem re-encodes pictures in formats poorly supported by readers
// into PNG. Item is left intact when conversion fails.
func normalizeItem(item *Item, log *zap.Logger) {
	if !convertible[item.MimeType] {
		return
	}
	img, format, err := image.Decode(bytes.NewReader(item.Data))
	if err != nil {
		log.Warn("Unable to decode image, keeping original", zap.String("name", item.Name), zap.String("content-type", item.MimeType), zap.Error(err))
		return
	}
	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, img, imaging.PNG, imaging.PNGCompressionLevel(png.BestCompression)); err != nil {
		log.Warn("Unable to encode image, keeping original", zap.String("name", item.Name), zap.Error(err))
		return
	}
	log.Debug("Image converted to PNG", zap.String("name", item.Name), zap.String("format", format))
	item.Data = buf.Bytes()
	item.MimeType = "image/png"
}
