package xhtml

import (
	"slices"

	"golang.org/x/net/html/atom"
)

// elements which could be produced, anything else is a programming error
var vocabulary = map[atom.Atom]bool{
	atom.Html: true, atom.Head: true, atom.Title: true, atom.Meta: true, atom.Style: true, atom.Body: true,
	atom.Div: true, atom.P: true, atom.Span: true, atom.A: true, atom.Br: true, atom.Img: true,
	atom.Table: true, atom.Tr: true, atom.Th: true, atom.Td: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
}

// attribute output order
var attrOrder = []atom.Atom{
	atom.Class, atom.Style, atom.Href, atom.Src, atom.Alt, atom.Id, atom.Colspan, atom.Rowspan, atom.Charset,
}

// Attr is a single attribute of produced element.
type Attr struct {
	Key atom.Atom
	Val string
}

// Attrs is ordered set of attributes. Keys are always kept in the same
// order regardless of the order they were set in.
type Attrs []Attr

// With returns attributes with key set to val. Empty values are ignored.
func (a Attrs) With(key atom.Atom, val string) Attrs {
	if val == "" {
		return a
	}
	rank := slices.Index(attrOrder, key)
	if rank < 0 {
		panic("attribute outside of vocabulary: " + key.String())
	}
	for i := range a {
		if a[i].Key == key {
			out := slices.Clone(a)
			out[i].Val = val
			return out
		}
	}
	pos := len(a)
	for i := range a {
		if slices.Index(attrOrder, a[i].Key) > rank {
			pos = i
			break
		}
	}
	return slices.Insert(slices.Clone(a), pos, Attr{Key: key, Val: val})
}

// Get returns attribute value.
func (a Attrs) Get(key atom.Atom) (string, bool) {
	for _, attr := range a {
		if attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}
