// Package debug produces indented text dumps of parsed documents.
package debug

import (
	"fmt"
	"strconv"
	"strings"
)

const indent = "  "

type TreeWriter struct {
	w *strings.Builder
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{w: &strings.Builder{}}
}

func (tw TreeWriter) String() string {
	return tw.w.String()
}

func (tw TreeWriter) Line(depth int, format string, args ...any) {
	tw.w.WriteString(strings.Repeat(indent, depth))
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

// TextBlock writes document text quoted so whitespace and control
// characters stay visible.
func (tw TreeWriter) TextBlock(depth int, label, value string) {
	tw.Line(depth, "%s: %s", label, encodeText(value))
}

// Fields writes label followed by name=value pairs from kv, pairs with
// empty value are omitted. Nothing is written when all values are empty.
func (tw TreeWriter) Fields(depth int, label string, kv ...string) {
	var parts []string
	for i := 0; i+1 < len(kv); i += 2 {
		if kv[i+1] != "" {
			parts = append(parts, kv[i]+"="+kv[i+1])
		}
	}
	if len(parts) == 0 {
		return
	}
	tw.Line(depth, "%s %s", label, strings.Join(parts, " "))
}

func encodeText(raw string) string {
	if raw == "" {
		return raw
	}
	return strconv.Quote(raw)
}
