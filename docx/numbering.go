package docx

import (
	"strconv"
	"strings"

	"dxc/numfmt"
)

// Level is a single level of abstract numbering definition.
type Level struct {
	Start  int
	Format numfmt.Kind
	// Text is w:lvlText, "%N" is replaced with counter of level N (1 based).
	Text      string
	Paragraph ParagraphProps
	Run       RunProps
}

// AbstractNum is w:abstractNum.
type AbstractNum struct {
	ID     string
	Levels map[int]*Level
}

// Num is w:num, an instance of abstract numbering.
type Num struct {
	ID         string
	AbstractID string
	// start overrides by level
	Overrides map[int]int
}

// Numbering is the numbering part of the document.
type Numbering struct {
	abstract map[string]*AbstractNum
	nums     map[string]*Num
}

func newNumbering() *Numbering {
	return &Numbering{
		abstract: make(map[string]*AbstractNum),
		nums:     make(map[string]*Num),
	}
}

// Level returns level definition for list instance. Safe on nil receiver.
func (n *Numbering) Level(numID string, ilvl int) (*Level, bool) {
	if n == nil {
		return nil, false
	}
	num, ok := n.nums[numID]
	if !ok {
		return nil, false
	}
	abs, ok := n.abstract[num.AbstractID]
	if !ok {
		return nil, false
	}
	lvl, ok := abs.Levels[ilvl]
	return lvl, ok
}

func (n *Numbering) start(numID string, ilvl int) int {
	if num, ok := n.nums[numID]; ok {
		if v, ok := num.Overrides[ilvl]; ok {
			return v
		}
	}
	if lvl, ok := n.Level(numID, ilvl); ok {
		return lvl.Start
	}
	return 1
}

// ListRef points paragraph to list instance and level.
type ListRef struct {
	NumID string
	Level int
}

// ListOf returns list membership of paragraph given its effective
// properties. Numbering id "0" removes numbering.
func ListOf(props ...*ParagraphProps) (ListRef, bool) {
	var ref ListRef
	found := false
	for _, p := range props {
		if p == nil {
			continue
		}
		if p.NumID != nil && !found {
			ref.NumID, found = *p.NumID, true
		}
		if p.NumLevel != nil && ref.Level == 0 {
			ref.Level = *p.NumLevel
		}
	}
	if !found || ref.NumID == "" || ref.NumID == "0" {
		return ListRef{}, false
	}
	return ref, true
}

const maxLevels = 9

// ListCounter keeps list counters for a single rendering and produces label
// text for list paragraphs.
type ListCounter struct {
	numbering *Numbering
	format    *numfmt.Formatter
	counters  map[string]*[maxLevels]int
}

func NewListCounter(numbering *Numbering, format *numfmt.Formatter) *ListCounter {
	return &ListCounter{
		numbering: numbering,
		format:    format,
		counters:  make(map[string]*[maxLevels]int),
	}
}

// Next advances counter for the list level and returns its label. Deeper
// levels restart.
func (c *ListCounter) Next(ref ListRef) (string, bool) {
	lvl, ok := c.numbering.Level(ref.NumID, ref.Level)
	if !ok || ref.Level < 0 || ref.Level >= maxLevels {
		return "", false
	}

	counts, ok := c.counters[ref.NumID]
	if !ok {
		counts = &[maxLevels]int{}
		c.counters[ref.NumID] = counts
	}
	if counts[ref.Level] == 0 {
		counts[ref.Level] = c.numbering.start(ref.NumID, ref.Level)
	} else {
		counts[ref.Level]++
	}
	for i := ref.Level + 1; i < maxLevels; i++ {
		counts[i] = 0
	}

	text := lvl.Text
	for i := maxLevels; i >= 1; i-- {
		placeholder := "%" + strconv.Itoa(i)
		if !strings.Contains(text, placeholder) {
			continue
		}
		value := counts[i-1]
		if value == 0 {
			value = c.numbering.start(ref.NumID, i-1)
		}
		kind := lvl.Format
		if l, ok := c.numbering.Level(ref.NumID, i-1); ok && i-1 != ref.Level {
			kind = l.Format
		}
		if kind == numfmt.Bullet {
			kind = numfmt.Decimal
		}
		text = strings.ReplaceAll(text, placeholder, c.format.Format(kind, value))
	}
	return ReplaceSymbols(text), true
}

// symbol font characters mapped from private use area
var symbolChars = map[rune]rune{
	'\uf0b7': '•', // bullet
	'\uf0a7': '▪', // small square
	'\uf06f': '◦', // white bullet
	'\uf0d8': '➢', // arrowhead
	'\uf076': '❖', // diamond
	'\uf0fc': '✓', // check mark
	'\uf0a8': '●', // black circle
	'\uf02d': '–', // dash
	'\uf0e0': '⇨', // arrow
}

// ReplaceSymbols maps private use Symbol/Wingdings characters commonly used
// in bullets to their Unicode equivalents and drops characters not allowed
// in XML.
func ReplaceSymbols(s string) string {
	return strings.Map(func(r rune) rune {
		if m, ok := symbolChars[r]; ok {
			return m
		}
		if r < 0x20 && r != '\t' && r != '\n' && r != '\r' {
			return -1
		}
		if r == 0xfffe || r == 0xffff {
			return -1
		}
		return r
	}, s)
}
