// Package css keeps presentation properties computed for rendered elements,
// the registry of class level styles and a small parser for inline
// declarations and simple stylesheets.
package css

import (
	"maps"
	"slices"
	"strings"
)

// Properties maps CSS property name to its value. Keys are unique, setting
// the same property twice keeps the last value.
type Properties map[string]string

// Set stores property value, empty values are ignored.
func (p Properties) Set(name, value string) {
	if name == "" || value == "" {
		return
	}
	p[name] = value
}

// Get returns property value.
func (p Properties) Get(name string) (string, bool) {
	v, ok := p[name]
	return v, ok
}

// Merge copies all properties from other, values from other win.
func (p Properties) Merge(other Properties) {
	maps.Copy(p, other)
}

// Clone returns independent copy, nil stays nil.
func (p Properties) Clone() Properties {
	if p == nil {
		return nil
	}
	return maps.Clone(p)
}

// Delta returns properties which are either absent from base or have
// different value there.
func (p Properties) Delta(base Properties) Properties {
	out := make(Properties, len(p))
	for k, v := range p {
		if bv, ok := base[k]; ok && bv == v {
			continue
		}
		out[k] = v
	}
	return out
}

// Equal reports whether both sets have the same properties.
func (p Properties) Equal(other Properties) bool {
	return maps.Equal(p, other)
}

// Names returns sorted property names.
func (p Properties) Names() []string {
	return slices.Sorted(maps.Keys(p))
}

// Inline serializes properties for use in style attribute. Order is stable.
func (p Properties) Inline() string {
	if len(p) == 0 {
		return ""
	}
	var b strings.Builder
	for _, k := range p.Names() {
		b.WriteString(k)
		b.WriteByte(':')
		b.WriteString(p[k])
		b.WriteByte(';')
	}
	return b.String()
}

func (p Properties) String() string {
	return p.Inline()
}

// ClassName turns arbitrary style identifier into something usable as CSS
// class name.
func ClassName(id string) string {
	if id == "" {
		return ""
	}
	var b strings.Builder
	for i, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
			b.WriteRune(r)
		case r >= '0' && r <= '9', r == '-':
			if i == 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
		case r > 0x7f:
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
