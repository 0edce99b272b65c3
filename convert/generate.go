package convert

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"dxc/config"
	"dxc/content"
	"dxc/convert/xhtml"
	"dxc/css"
	"dxc/docx"
	"dxc/media"
	"dxc/numfmt"
	"dxc/state"
)

// generate renders prepared document into output file, writing media out
// when requested.
func generate(ctx context.Context, c *content.Content, outputName string, log *zap.Logger) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	env := state.EnvFromContext(ctx)
	cfg := &env.Cfg.Document

	opts := xhtml.Options{
		Mode:               cfg.StyleMode,
		Fragment:           cfg.Fragment,
		HeadersFooters:     cfg.HeadersFooters,
		IgnoreUnusedStyles: cfg.IgnoreUnusedStyles,
		Media:              c.Media,
		Numbers:            numbers(&cfg.Numbering, c.Doc, log),
		Title:              strings.TrimSuffix(filepath.Base(c.SrcName), filepath.Ext(c.SrcName)),
	}
	if len(env.Stylesheet) > 0 {
		sheet := css.NewParser(log).Parse(env.Stylesheet, "stylesheet")
		for _, w := range sheet.Warnings {
			log.Warn("Stylesheet problem", zap.String("warning", w))
		}
		opts.Stylesheet = sheet
	}

	switch cfg.Images.Mode {
	case config.ImagesModeExtract:
		dir := strings.TrimSuffix(outputName, filepath.Ext(outputName)) + cfg.Images.DirSuffix
		if err := c.Media.Extract(dir); err != nil {
			return err
		}
		opts.Resolver = media.PathResolver{Prefix: filepath.Base(dir)}
	case config.ImagesModeEmbed:
		opts.Resolver = media.DataURIResolver{}
	}

	if env.Rpt != nil && c.WorkDir() != "" {
		sheet := xhtml.Stylesheet(c.Doc, opts, log)
		if err := os.WriteFile(filepath.Join(c.WorkDir(), "stylesheet.css"), []byte(sheet.String()), 0644); err != nil {
			return fmt.Errorf("unable to write stylesheet for debugging: %w", err)
		}
	}

	f, err := os.Create(outputName)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()
	return xhtml.Write(f, c.Doc, c.OutputFormat, cfg.Indent, opts, log)
}

// numbers selects language for list labels: configured one first, then
// document language.
func numbers(cfg *config.NumberingConfig, doc *docx.Document, log *zap.Logger) *numfmt.Formatter {
	tag := language.English
	for _, name := range []string{cfg.Language, doc.Lang} {
		if name == "" {
			continue
		}
		t, err := language.Parse(name)
		if err != nil {
			log.Debug("Unable to parse language, ignoring", zap.String("lang", name), zap.Error(err))
			continue
		}
		tag = t
		break
	}
	return numfmt.New(tag, cfg.LocalizedDigits)
}
