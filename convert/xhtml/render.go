// Package xhtml renders parsed word processing documents as XHTML (or HTML)
// markup.
package xhtml

import (
	"fmt"
	"io"

	"go.uber.org/zap"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/language"

	"dxc/config"
	"dxc/css"
	"dxc/docx"
	"dxc/media"
	"dxc/numfmt"
)

// Options control rendering.
type Options struct {
	Mode               config.StyleMode
	Fragment           bool
	HeadersFooters     bool
	IgnoreUnusedStyles bool
	// Stylesheet is registered after document styles.
	Stylesheet *css.Stylesheet
	// Media is index of embedded pictures, pictures referencing embedded
	// media are dropped when nil.
	Media    *media.Index
	Resolver media.Resolver
	// Numbers formats list labels, when nil ASCII digits are used.
	Numbers *numfmt.Formatter
	// Title is used when document has no title of its own.
	Title string
}

// Render walks document producing markup events into sink. It returns
// *DestinationError when sink fails and ErrInvariant when document structure
// could not be represented. Every call keeps its own state so documents may
// be rendered concurrently.
func Render(doc *docx.Document, sink Sink, opts Options, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	s := newRenderState(doc, sink, opts, log.Named("xhtml"))
	if opts.Fragment {
		return s.sections()
	}
	return s.document()
}

// Write renders document into w. XHTML output with positive indent is built
// in memory and indented, otherwise it is streamed.
func Write(w io.Writer, doc *docx.Document, format config.OutputFmt, indent int, opts Options, log *zap.Logger) error {
	xml := format == config.OutputFmtXhtml
	if xml && indent > 0 {
		sink := NewTreeSink()
		if err := Render(doc, sink, opts, log); err != nil {
			return err
		}
		if _, err := sink.WriteTo(w, indent); err != nil {
			return &DestinationError{Err: err}
		}
		return nil
	}
	sink := NewStreamSink(w, xml)
	if err := Render(doc, sink, opts, log); err != nil {
		return err
	}
	if err := sink.Flush(); err != nil {
		return &DestinationError{Err: err}
	}
	return nil
}

// Stylesheet returns class level styles which would be used for document.
func Stylesheet(doc *docx.Document, opts Options, log *zap.Logger) *css.Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return buildRegistry(doc, opts.IgnoreUnusedStyles, opts.Stylesheet, log)
}

type renderState struct {
	doc     *docx.Document
	opts    Options
	out     *emitter
	res     *resolver
	lists   *docx.ListCounter
	log     *zap.Logger
	headers []docx.HeaderFooter
	footers []docx.HeaderFooter
	// paragraph being rendered, nil outside of paragraphs
	para *docx.Paragraph
}

func newRenderState(doc *docx.Document, sink Sink, opts Options, log *zap.Logger) *renderState {
	if opts.Resolver == nil {
		opts.Resolver = media.PathResolver{Prefix: media.DefaultPrefix}
	}
	if opts.Numbers == nil {
		opts.Numbers = numfmt.New(language.English, false)
	}
	return &renderState{
		doc:  doc,
		opts: opts,
		out:  &emitter{sink: sink},
		res: &resolver{
			styles:   doc.Styles,
			registry: buildRegistry(doc, opts.IgnoreUnusedStyles, opts.Stylesheet, log),
			mode:     opts.Mode,
		},
		lists: docx.NewListCounter(doc.Numbering, opts.Numbers),
		log:   log,
	}
}

func (s *renderState) document() error {
	return s.out.element(atom.Html, nil, func() error {
		if err := s.out.element(atom.Head, nil, s.head); err != nil {
			return err
		}
		return s.out.element(atom.Body, s.res.attrs(atom.Body, nil, nil), s.sections)
	})
}

func (s *renderState) head() error {
	title := s.doc.Meta.Title
	if title == "" {
		title = s.opts.Title
	}
	if err := s.out.element(atom.Title, nil, func() error { return s.out.text(title) }); err != nil {
		return err
	}
	if err := s.out.empty(atom.Meta, Attrs{}.With(atom.Charset, "utf-8")); err != nil {
		return err
	}
	if s.opts.Mode != config.StyleModeClasses || s.res.registry.Len() == 0 {
		return nil
	}
	return s.out.element(atom.Style, nil, func() error {
		return s.out.text("\n" + s.res.registry.String())
	})
}

// sections renders every section in its own page geometry wrapper.
func (s *renderState) sections() error {
	for i := range s.doc.Sections {
		sec := &s.doc.Sections[i]
		if len(sec.Headers) > 0 {
			s.headers = sec.Headers
		}
		if len(sec.Footers) > 0 {
			s.footers = sec.Footers
		}
		attrs := s.res.attrs(atom.Div, nil, sectionStyle(&sec.Props))
		err := s.out.element(atom.Div, attrs, func() error {
			if err := s.headerFooter(s.headers, "header"); err != nil {
				return err
			}
			if err := s.blocks(sec.Blocks); err != nil {
				return err
			}
			return s.headerFooter(s.footers, "footer")
		})
		if err != nil {
			return fmt.Errorf("section %d: %w", i, err)
		}
	}
	return nil
}

// headerFooter renders default header or footer, sections without their own
// references continue using previous ones.
func (s *renderState) headerFooter(parts []docx.HeaderFooter, class string) error {
	if !s.opts.HeadersFooters {
		return nil
	}
	for i := range parts {
		if parts[i].Type != "default" {
			continue
		}
		classes := []string{class}
		return s.out.element(atom.Div, s.res.attrs(atom.Div, classes, nil), func() error {
			return s.blocks(parts[i].Blocks)
		})
	}
	return nil
}
