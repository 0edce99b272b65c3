// Package content prepares source documents for rendering: parses the
// package, assigns document identity and collects embedded media.
package content

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"dxc/config"
	"dxc/docx"
	"dxc/media"
	"dxc/misc"
	"dxc/state"
)

// Content is a parsed document ready to be rendered.
type Content struct {
	SrcName      string
	DocID        string
	OutputFormat config.OutputFmt
	Doc          *docx.Document
	// Media is nil when images are not going to be rendered.
	Media *media.Index

	tmpDir string
}

func (c *Content) WorkDir() string { return c.tmpDir }

// Prepare reads and parses document package.
func Prepare(ctx context.Context, r io.ReaderAt, size int64, srcName string, format config.OutputFmt, log *zap.Logger) (*Content, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	env := state.EnvFromContext(ctx)

	pkg, err := docx.NewPackage(r, size)
	if err != nil {
		return nil, fmt.Errorf("unable to open package: %w", err)
	}
	defer pkg.Close()

	doc, err := docx.Parse(pkg, log)
	if err != nil {
		return nil, fmt.Errorf("unable to parse document: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("unable to generate document UUID: %w", err)
	}

	c := &Content{
		SrcName:      srcName,
		DocID:        id.String(),
		OutputFormat: format,
		Doc:          doc,
	}

	imgs := &env.Cfg.Document.Images
	if imgs.Mode != config.ImagesModeSkip {
		c.Media = media.NewIndex(pkg, doc.Media, imgs.Normalize, log.Named("media"))
	} else if len(doc.Media) > 0 {
		log.Debug("Skipping document media", zap.Int("count", len(doc.Media)))
	}

	if env.Rpt == nil {
		return c, nil
	}

	// Save source and parsed document for debugging
	if c.tmpDir, err = os.MkdirTemp("", misc.GetAppName()+"-"); err != nil {
		return nil, fmt.Errorf("unable to create temporary directory: %w", err)
	}
	env.Rpt.Store(fmt.Sprintf("%s-%s", misc.GetAppName(), c.DocID), c.tmpDir)

	baseSrcName := filepath.Base(srcName)
	if err := saveSource(filepath.Join(c.tmpDir, baseSrcName), io.NewSectionReader(r, 0, size)); err != nil {
		return nil, fmt.Errorf("unable to write input doc for debugging: %w", err)
	}
	if err := os.WriteFile(filepath.Join(c.tmpDir, baseSrcName+"_prepared"), []byte(c.String()), 0644); err != nil {
		return nil, fmt.Errorf("unable to write prepared doc for debugging: %w", err)
	}
	return c, nil
}

func saveSource(name string, r io.Reader) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	_, err = io.Copy(f, r)
	return err
}
