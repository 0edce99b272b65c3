package xhtml

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Sink receives markup events. Text is raw character data, sinks are
// responsible for escaping.
type Sink interface {
	Open(name atom.Atom, attrs Attrs) error
	Close(name atom.Atom) error
	Text(s string) error
}

// ErrInvariant reports broken structural assumption about the document or
// produced event stream.
var ErrInvariant = errors.New("structural invariant violated")

// DestinationError is returned when sink fails, rendering stops at the first
// such failure.
type DestinationError struct {
	Err error
}

func (e *DestinationError) Error() string {
	return fmt.Sprintf("unable to write markup: %v", e.Err)
}

func (e *DestinationError) Unwrap() error {
	return e.Err
}

const (
	xhtmlNS   = "http://www.w3.org/1999/xhtml"
	xmlHeader = `<?xml version="1.0" encoding="UTF-8"?>`
	doctype   = "<!DOCTYPE html>"
)

var voidElements = map[atom.Atom]bool{
	atom.Br:   true,
	atom.Img:  true,
	atom.Meta: true,
}

// content of these is not parsed for character references in HTML
var rawTextElements = map[atom.Atom]bool{
	atom.Style: true,
}

// StreamSink writes markup directly without building a tree. In XML mode
// every empty element is self closed, otherwise only void elements are.
type StreamSink struct {
	w       *bufio.Writer
	xml     bool
	stack   []atom.Atom
	pending bool
}

func NewStreamSink(w io.Writer, xml bool) *StreamSink {
	return &StreamSink{w: bufio.NewWriter(w), xml: xml}
}

func (s *StreamSink) Open(name atom.Atom, attrs Attrs) error {
	if err := s.finishStartTag(); err != nil {
		return err
	}
	var b strings.Builder
	if name == atom.Html && len(s.stack) == 0 {
		if s.xml {
			b.WriteString(xmlHeader + "\n")
		}
		b.WriteString(doctype + "\n")
	}
	b.WriteByte('<')
	b.WriteString(name.String())
	if name == atom.Html && s.xml {
		b.WriteString(` xmlns="` + xhtmlNS + `"`)
	}
	for _, a := range attrs {
		b.WriteByte(' ')
		b.WriteString(a.Key.String())
		b.WriteString(`="`)
		b.WriteString(html.EscapeString(a.Val))
		b.WriteByte('"')
	}
	s.stack = append(s.stack, name)
	s.pending = true
	_, err := s.w.WriteString(b.String())
	return err
}

func (s *StreamSink) Close(name atom.Atom) error {
	if len(s.stack) == 0 || s.stack[len(s.stack)-1] != name {
		return fmt.Errorf("%w: unexpected end of %s", ErrInvariant, name)
	}
	s.stack = s.stack[:len(s.stack)-1]

	var err error
	switch {
	case s.pending && (s.xml || voidElements[name]):
		_, err = s.w.WriteString("/>")
	case s.pending:
		_, err = s.w.WriteString("></" + name.String() + ">")
	default:
		_, err = s.w.WriteString("</" + name.String() + ">")
	}
	s.pending = false
	if err == nil && len(s.stack) == 0 {
		// top level elements go on separate lines
		err = s.w.WriteByte('\n')
	}
	return err
}

func (s *StreamSink) Text(text string) error {
	if text == "" {
		return nil
	}
	if err := s.finishStartTag(); err != nil {
		return err
	}
	if !s.xml && len(s.stack) > 0 && rawTextElements[s.stack[len(s.stack)-1]] {
		_, err := s.w.WriteString(text)
		return err
	}
	_, err := s.w.WriteString(html.EscapeString(text))
	return err
}

// Flush writes buffered data to underlying writer.
func (s *StreamSink) Flush() error {
	return s.w.Flush()
}

func (s *StreamSink) finishStartTag() error {
	if !s.pending {
		return nil
	}
	s.pending = false
	return s.w.WriteByte('>')
}

// TreeSink builds XHTML document in memory which allows indented output.
type TreeSink struct {
	doc   *etree.Document
	stack []*etree.Element
}

func NewTreeSink() *TreeSink {
	return &TreeSink{doc: etree.NewDocument()}
}

func (s *TreeSink) Open(name atom.Atom, attrs Attrs) error {
	var el *etree.Element
	if len(s.stack) == 0 {
		if name == atom.Html {
			s.doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
			s.doc.CreateDirective("DOCTYPE html")
		}
		el = s.doc.CreateElement(name.String())
		if name == atom.Html {
			el.CreateAttr("xmlns", xhtmlNS)
		}
	} else {
		el = s.stack[len(s.stack)-1].CreateElement(name.String())
	}
	for _, a := range attrs {
		el.CreateAttr(a.Key.String(), a.Val)
	}
	s.stack = append(s.stack, el)
	return nil
}

func (s *TreeSink) Close(name atom.Atom) error {
	if len(s.stack) == 0 || s.stack[len(s.stack)-1].Tag != name.String() {
		return fmt.Errorf("%w: unexpected end of %s", ErrInvariant, name)
	}
	s.stack = s.stack[:len(s.stack)-1]
	return nil
}

func (s *TreeSink) Text(text string) error {
	if text == "" {
		return nil
	}
	if len(s.stack) == 0 {
		return fmt.Errorf("%w: text outside of element", ErrInvariant)
	}
	s.stack[len(s.stack)-1].CreateText(text)
	return nil
}

// Document returns produced tree.
func (s *TreeSink) Document() *etree.Document {
	return s.doc
}

// WriteTo serializes produced tree indenting block structure with width
// spaces per level. Content of text containers is never touched so
// significant white space survives.
func (s *TreeSink) WriteTo(w io.Writer, width int) (int64, error) {
	if width > 0 {
		indentTree(&s.doc.Element, -1, width)
	}
	s.doc.WriteSettings = etree.WriteSettings{
		CanonicalText:    true,
		CanonicalAttrVal: true,
	}
	return s.doc.WriteTo(w)
}

// elements with mixed content
var textContainers = map[string]bool{
	"p": true, "h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"span": true, "a": true, "title": true, "style": true,
}

func indentTree(el *etree.Element, depth, width int) {
	if textContainers[el.Tag] || len(el.Child) == 0 {
		return
	}
	for _, t := range el.Child {
		if _, ok := t.(*etree.Element); !ok && depth >= 0 {
			return
		}
	}
	children := el.ChildElements()
	for _, c := range children {
		indentTree(c, depth+1, width)
	}
	if depth < 0 {
		// document level: separate top level tokens
		for i := len(el.Child) - 1; i > 0; i-- {
			el.InsertChildAt(i, etree.NewText("\n"))
		}
		el.AddChild(etree.NewText("\n"))
		return
	}
	pad := "\n" + strings.Repeat(" ", (depth+1)*width)
	for i := len(children) - 1; i >= 0; i-- {
		el.InsertChildAt(children[i].Index(), etree.NewText(pad))
	}
	el.AddChild(etree.NewText("\n" + strings.Repeat(" ", depth*width)))
}
