package convert

import (
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"dxc/config"
	"dxc/content"
	"dxc/state"
)

// buildOutputPath returns output file name for document. Without name
// template source base name is used, otherwise expanded template which may
// add subdirectories. Source directory structure is kept unless NoDirs is
// set. Every name segment is cleaned and, if requested, transliterated.
func buildOutputPath(c *content.Content, src, dst string, env *state.LocalEnv) string {
	outDir := dst
	if !env.NoDirs {
		outDir = filepath.Join(dst, filepath.Dir(src))
	}
	ext := c.OutputFormat.Ext()

	segments := []string{strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))}
	if tmpl := env.Cfg.Document.OutputNameTemplate; tmpl != "" {
		expanded, err := expandTemplate(c, config.OutputNameTemplateFieldName, tmpl, c.OutputFormat)
		if err != nil {
			env.Log.Warn("Unable to prepare output filename, using default", zap.Error(err))
		} else if parts := splitPath(expanded); len(parts) > 0 {
			segments = parts
		}
	}

	parts := make([]string, 0, len(segments)+1)
	parts = append(parts, outDir)
	for i, s := range segments {
		s = cleanPathSegment(s, env)
		if i == len(segments)-1 {
			s += ext
		}
		parts = append(parts, s)
	}
	return filepath.Join(parts...)
}

// splitPath breaks expanded template into non empty segments, both slash
// kinds separate directories.
func splitPath(path string) []string {
	return strings.FieldsFunc(filepath.ToSlash(path), func(r rune) bool {
		return r == '/' || r == '\\'
	})
}

func cleanPathSegment(segment string, env *state.LocalEnv) string {
	if env.Cfg.Document.FileNameTransliterate {
		segment = slug.Make(segment)
	}
	return config.CleanFileName(segment)
}
