package convert

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"dxc/config"
	"dxc/content"
)

// Values is a struct that holds variables we make available for template expansion
type Values struct {
	Context    string
	Title      string
	Subject    string
	Creator    string
	Language   string
	Format     string
	SourceFile string
	DocID      string
}

func expandTemplate(c *content.Content, name config.TemplateFieldName, field string, format config.OutputFmt) (string, error) {
	funcMap := sprig.FuncMap()

	tmpl, err := template.New(string(name)).Funcs(funcMap).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}

	meta := c.Doc.Meta
	values := Values{
		Context:    string(name),
		Title:      meta.Title,
		Subject:    meta.Subject,
		Creator:    meta.Creator,
		Language:   c.Doc.Lang,
		Format:     format.String(),
		SourceFile: strings.TrimSuffix(filepath.Base(c.SrcName), filepath.Ext(c.SrcName)),
		DocID:      c.DocID,
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}
