package css

import (
	"fmt"
	"io"
	"slices"
	"strings"
)

// Rule is class level style: properties applied to elements with Tag (any
// element when empty) and Class (all such elements when empty).
type Rule struct {
	Tag   string
	Class string
	Props Properties
}

// Selector returns CSS selector for the rule.
func (r Rule) Selector() string {
	if r.Class == "" {
		return r.Tag
	}
	return r.Tag + "." + r.Class
}

type ruleKey struct {
	tag, class string
}

// Registry accumulates class level styles in registration order. Rules for
// the same selector are merged, later properties win.
type Registry struct {
	rules []Rule
	index map[ruleKey]int
	// when writing stylesheet selectors for a tag are extended to
	// additional element names rendered from the same source (headings are
	// rendered paragraphs)
	aliases map[string][]string
}

func NewRegistry() *Registry {
	return &Registry{
		index:   make(map[ruleKey]int),
		aliases: make(map[string][]string),
	}
}

// Alias makes stylesheet rules for tag also apply to elements with names.
func (r *Registry) Alias(tag string, names ...string) {
	r.aliases[tag] = append(r.aliases[tag], names...)
}

// Add registers properties for tag/class pair. Empty property sets are not
// registered.
func (r *Registry) Add(tag, class string, props Properties) {
	if len(props) == 0 {
		return
	}
	k := ruleKey{tag: tag, class: class}
	if i, ok := r.index[k]; ok {
		r.rules[i].Props.Merge(props)
		return
	}
	r.index[k] = len(r.rules)
	r.rules = append(r.rules, Rule{Tag: tag, Class: class, Props: props.Clone()})
}

// AddStylesheet registers all rules of the parsed stylesheet.
func (r *Registry) AddStylesheet(sheet *Stylesheet) {
	if sheet == nil {
		return
	}
	for _, rule := range sheet.Rules {
		r.Add(rule.Tag, rule.Class, rule.Props)
	}
}

// Lookup returns properties registered for exact tag/class pair.
func (r *Registry) Lookup(tag, class string) (Properties, bool) {
	if i, ok := r.index[ruleKey{tag: tag, class: class}]; ok {
		return r.rules[i].Props, true
	}
	return nil, false
}

// Rules returns registered rules in registration order.
func (r *Registry) Rules() []Rule {
	return r.rules
}

func (r *Registry) Len() int {
	return len(r.rules)
}

// Expand computes class level properties for element the way a browser
// cascades written stylesheet: tag wide rules first, then rules for any of
// the classes alone, then rules for class on the same tag. Within the same
// specificity later registered rule wins regardless of class attribute
// order. Rules for aliased tags apply the same way they do in written
// stylesheet.
func (r *Registry) Expand(tag string, classes []string) Properties {
	out := make(Properties)
	for rank := range 3 {
		for _, rule := range r.rules {
			if specificity(rule) == rank && r.applies(rule, tag, classes) {
				out.Merge(rule.Props)
			}
		}
	}
	return out
}

func specificity(rule Rule) int {
	switch {
	case rule.Class == "":
		return 0
	case rule.Tag == "":
		return 1
	default:
		return 2
	}
}

func (r *Registry) applies(rule Rule, tag string, classes []string) bool {
	if rule.Class == "" {
		return r.matches(rule.Tag, tag)
	}
	if !slices.Contains(classes, rule.Class) {
		return false
	}
	return rule.Tag == "" || r.matches(rule.Tag, tag)
}

func (r *Registry) matches(ruleTag, tag string) bool {
	return ruleTag == tag || slices.Contains(r.aliases[ruleTag], tag)
}

func (r *Registry) selector(rule Rule) string {
	names := r.aliases[rule.Tag]
	if len(names) == 0 || rule.Tag == "" {
		return rule.Selector()
	}
	parts := make([]string, 0, len(names)+1)
	parts = append(parts, rule.Selector())
	for _, n := range names {
		parts = append(parts, Rule{Tag: n, Class: rule.Class}.Selector())
	}
	return strings.Join(parts, ", ")
}

// WriteTo writes registered rules as stylesheet.
func (r *Registry) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, rule := range r.rules {
		n, err := fmt.Fprintf(w, "%s {\n", r.selector(rule))
		total += int64(n)
		if err != nil {
			return total, err
		}
		for _, name := range rule.Props.Names() {
			n, err = fmt.Fprintf(w, "  %s: %s;\n", name, rule.Props[name])
			total += int64(n)
			if err != nil {
				return total, err
			}
		}
		n, err = io.WriteString(w, "}\n")
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func (r *Registry) String() string {
	var b strings.Builder
	_, _ = r.WriteTo(&b)
	return b.String()
}
