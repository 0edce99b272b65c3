package css

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Stylesheet is the result of parsing: rules with simple selectors in source
// order and warnings for everything which was skipped.
type Stylesheet struct {
	Rules    []Rule
	Warnings []string
}

// Parser parses CSS stylesheets into rules usable by Registry.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// Parse parses CSS text into a Stylesheet.
// The optional source parameter identifies what's being parsed (for debug logging).
func (p *Parser) Parse(data []byte, source ...string) *Stylesheet {
	sheet := &Stylesheet{}

	if len(source) > 0 && source[0] != "" {
		p.log.Debug("Parsing CSS", zap.String("source", source[0]), zap.Int("bytes", len(data)))
	}

	parser := css.NewParser(parse.NewInput(bytes.NewReader(data)), false)
	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); err != nil && !errors.Is(err, io.EOF) {
				p.log.Debug("CSS parse error", zap.Error(err))
				sheet.Warnings = append(sheet.Warnings, "parse error: "+err.Error())
			}
			return sheet

		case css.BeginAtRuleGrammar:
			p.skipAtRuleBlock(parser)
			p.log.Debug("Skipping @-rule", zap.String("rule", string(data)))

		case css.AtRuleGrammar:
			p.log.Debug("Skipping @-rule", zap.String("rule", string(data)))

		case css.BeginRulesetGrammar:
			selectors := splitSelectors(data, parser.Values())
			props := p.parseDeclarations(parser)
			for _, sel := range selectors {
				tag, class, ok := parseSimpleSelector(sel)
				if !ok {
					sheet.Warnings = append(sheet.Warnings, "unsupported selector: "+sel)
					p.log.Debug("Skipping selector", zap.String("selector", sel))
					continue
				}
				sheet.Rules = append(sheet.Rules, Rule{Tag: tag, Class: class, Props: props.Clone()})
			}
		}
	}
}

// ParseInline parses content of a style attribute.
func ParseInline(s string) (Properties, error) {
	props := make(Properties)
	parser := css.NewParser(parse.NewInputString(s), true)
	for {
		gt, _, data := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); err != nil && !errors.Is(err, io.EOF) {
				return props, fmt.Errorf("unable to parse inline style: %w", err)
			}
			return props, nil
		case css.DeclarationGrammar:
			props.Set(strings.ToLower(string(data)), rawValue(parser.Values()))
		}
	}
}

// splitSelectors extracts selector strings from token data.
func splitSelectors(data []byte, values []css.Token) []string {
	var sb strings.Builder
	sb.Write(data)
	for _, v := range values {
		sb.Write(v.Data)
	}

	var selectors []string
	for s := range strings.SplitSeq(sb.String(), ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			selectors = append(selectors, s)
		}
	}
	return selectors
}

// parseSimpleSelector accepts "tag", ".class" and "tag.class".
func parseSimpleSelector(sel string) (tag, class string, ok bool) {
	if sel == "" || strings.ContainsAny(sel, " \t\n+~>[:*#") {
		return "", "", false
	}
	tag, class, found := strings.Cut(sel, ".")
	if found && (class == "" || strings.Contains(class, ".")) {
		return "", "", false
	}
	return strings.ToLower(tag), class, true
}

// parseDeclarations parses property declarations until EndRulesetGrammar.
func (p *Parser) parseDeclarations(parser *css.Parser) Properties {
	props := make(Properties)
	for {
		gt, _, data := parser.Next()
		switch gt {
		case css.ErrorGrammar, css.EndRulesetGrammar:
			return props
		case css.DeclarationGrammar:
			props.Set(strings.ToLower(string(data)), rawValue(parser.Values()))
		case css.CustomPropertyGrammar:
			continue
		}
	}
}

// rawValue rebuilds value text from tokens collapsing whitespace. Commas
// are always followed by single space and never preceded by one.
func rawValue(tokens []css.Token) string {
	var b strings.Builder
	space := false
	for _, t := range tokens {
		switch t.TokenType {
		case css.WhitespaceToken:
			space = b.Len() > 0
		case css.CommaToken:
			b.WriteString(", ")
			space = false
		default:
			if space && !strings.HasSuffix(b.String(), " ") {
				b.WriteByte(' ')
			}
			b.Write(t.Data)
			space = false
		}
	}
	return strings.TrimSpace(b.String())
}

// skipAtRuleBlock skips tokens until the matching end of an @-rule block.
func (p *Parser) skipAtRuleBlock(parser *css.Parser) {
	depth := 1
	for depth > 0 {
		gt, _, _ := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			return
		case css.BeginAtRuleGrammar, css.BeginRulesetGrammar:
			depth++
		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			depth--
		}
	}
}
