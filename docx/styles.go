package docx

import (
	"go.uber.org/zap"
)

// StyleType is w:style/@w:type.
type StyleType string

const (
	StyleParagraph StyleType = "paragraph"
	StyleCharacter StyleType = "character"
	StyleTable     StyleType = "table"
	StyleNumbering StyleType = "numbering"
)

// Style is a named style. After loading its properties already include
// everything inherited through w:basedOn.
type Style struct {
	ID        string
	Name      string
	Type      StyleType
	BasedOn   string
	Default   bool
	Paragraph ParagraphProps
	Run       RunProps
	Table     TableProps
	Cell      CellProps
}

// Defaults is w:docDefaults.
type Defaults struct {
	Paragraph ParagraphProps
	Run       RunProps
}

// Styles is the style sheet of the document.
type Styles struct {
	Defaults Defaults
	styles   map[string]*Style
	order    []string
}

func newStyles() *Styles {
	return &Styles{styles: make(map[string]*Style)}
}

// Get returns style by identifier. Safe to call on nil receiver.
func (s *Styles) Get(id string) (*Style, bool) {
	if s == nil || id == "" {
		return nil, false
	}
	st, ok := s.styles[id]
	return st, ok
}

// All returns styles in the order of definition.
func (s *Styles) All() []*Style {
	if s == nil {
		return nil
	}
	out := make([]*Style, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.styles[id])
	}
	return out
}

// Default returns identifier of default style of the type.
func (s *Styles) Default(t StyleType) string {
	for _, st := range s.All() {
		if st.Type == t && st.Default {
			return st.ID
		}
	}
	return ""
}

func (s *Styles) add(st *Style) {
	if _, exists := s.styles[st.ID]; !exists {
		s.order = append(s.order, st.ID)
	}
	s.styles[st.ID] = st
}

// flatten folds w:basedOn chains so that every style carries complete set of
// its properties. Cycles are broken at the first repeated style.
func (s *Styles) flatten(log *zap.Logger) {
	done := make(map[string]bool, len(s.styles))
	var resolve func(st *Style, seen map[string]bool)
	resolve = func(st *Style, seen map[string]bool) {
		if done[st.ID] || st.BasedOn == "" {
			done[st.ID] = true
			return
		}
		seen[st.ID] = true
		base, ok := s.styles[st.BasedOn]
		switch {
		case !ok:
			log.Debug("Style is based on unknown style, ignoring", zap.String("style", st.ID), zap.String("based_on", st.BasedOn))
		case seen[base.ID]:
			log.Warn("Style inheritance loop, ignoring", zap.String("style", st.ID), zap.String("based_on", st.BasedOn))
		default:
			resolve(base, seen)
			st.Paragraph.inherit(&base.Paragraph)
			st.Run.inherit(&base.Run)
			st.Table.inherit(&base.Table)
			st.Cell.inherit(&base.Cell)
		}
		done[st.ID] = true
	}
	for _, id := range s.order {
		resolve(s.styles[id], make(map[string]bool))
	}
}
