// Package numfmt turns list and heading counters into label text according
// to WordprocessingML numbering formats.
package numfmt

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Kind is numbering format as named by w:numFmt/@w:val.
type Kind string

const (
	Decimal                 Kind = "decimal"
	DecimalZero             Kind = "decimalZero"
	UpperRoman              Kind = "upperRoman"
	LowerRoman              Kind = "lowerRoman"
	UpperLetter             Kind = "upperLetter"
	LowerLetter             Kind = "lowerLetter"
	Ordinal                 Kind = "ordinal"
	CardinalText            Kind = "cardinalText"
	OrdinalText             Kind = "ordinalText"
	ChineseCounting         Kind = "chineseCounting"
	ChineseCountingThousand Kind = "chineseCountingThousand"
	ChineseLegalSimplified  Kind = "chineseLegalSimplified"
	IdeographTraditional    Kind = "ideographTraditional"
	IdeographZodiac         Kind = "ideographZodiac"
	Bullet                  Kind = "bullet"
	None                    Kind = "none"
)

// Formatter formats counters. Decimal kinds may be rendered with digits of
// the formatter language.
type Formatter struct {
	lang      language.Tag
	printer   *message.Printer
	localized bool
}

// New returns formatter for language. When localized is false digits are
// always ASCII.
func New(lang language.Tag, localized bool) *Formatter {
	return &Formatter{
		lang:      lang,
		printer:   message.NewPrinter(lang),
		localized: localized,
	}
}

var defaultFormatter = New(language.English, false)

// Format formats n using ASCII digits for decimal kinds.
func Format(kind Kind, n int) string {
	return defaultFormatter.Format(kind, n)
}

// Language returns formatter language.
func (f *Formatter) Language() language.Tag {
	return f.lang
}

// Format returns label text for n. Unknown kinds are formatted as decimal.
// Format never fails, values out of range of a particular numbering system
// fall back to decimal.
func (f *Formatter) Format(kind Kind, n int) string {
	switch kind {
	case Bullet, None:
		return ""
	case DecimalZero:
		return f.decimal(n, 2)
	case UpperRoman:
		return strings.ToUpper(roman(n, f))
	case LowerRoman:
		return roman(n, f)
	case UpperLetter:
		return strings.ToUpper(letters(n, f))
	case LowerLetter:
		return letters(n, f)
	case Ordinal:
		return f.decimal(n, 0) + ordinalSuffix(n)
	case CardinalText:
		return capitalize(cardinalWords(n))
	case OrdinalText:
		return capitalize(ordinalWords(n))
	case ChineseCounting, ChineseCountingThousand:
		return chinese(n, counting, true, f)
	case ChineseLegalSimplified:
		return chinese(n, legal, false, f)
	case IdeographTraditional:
		return fromTable(n, heavenlyStems, f)
	case IdeographZodiac:
		return fromTable(n, earthlyBranches, f)
	default:
		return f.decimal(n, 0)
	}
}

func (f *Formatter) decimal(n, minDigits int) string {
	if !f.localized {
		s := strconv.Itoa(n)
		if n >= 0 && len(s) < minDigits {
			s = strings.Repeat("0", minDigits-len(s)) + s
		}
		return s
	}
	opts := []number.Option{number.NoSeparator()}
	if minDigits > 0 {
		opts = append(opts, number.MinIntegerDigits(minDigits))
	}
	return f.printer.Sprint(number.Decimal(n, opts...))
}

func ordinalSuffix(n int) string {
	if n < 0 {
		n = -n
	}
	switch n % 100 {
	case 11, 12, 13:
		return "th"
	}
	switch n % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	}
	return "th"
}

var romanDigits = []struct {
	value int
	text  string
}{
	{1000, "m"}, {900, "cm"}, {500, "d"}, {400, "cd"},
	{100, "c"}, {90, "xc"}, {50, "l"}, {40, "xl"},
	{10, "x"}, {9, "ix"}, {5, "v"}, {4, "iv"}, {1, "i"},
}

// roman uses repeated "m" above 3999 the way word processors do.
func roman(n int, f *Formatter) string {
	if n <= 0 {
		return f.decimal(n, 0)
	}
	var b strings.Builder
	for _, d := range romanDigits {
		for n >= d.value {
			b.WriteString(d.text)
			n -= d.value
		}
	}
	return b.String()
}

// letters repeats the letter: 1 a, 26 z, 27 aa, 28 bb.
func letters(n int, f *Formatter) string {
	if n <= 0 {
		return f.decimal(n, 0)
	}
	letter := byte('a' + (n-1)%26)
	return strings.Repeat(string(letter), (n-1)/26+1)
}

func fromTable(n int, table []string, f *Formatter) string {
	if n <= 0 || n > len(table) {
		return f.decimal(n, 0)
	}
	return table[n-1]
}

var (
	heavenlyStems   = []string{"甲", "乙", "丙", "丁", "戊", "己", "庚", "辛", "壬", "癸"}
	earthlyBranches = []string{"子", "丑", "寅", "卯", "辰", "巳", "午", "未", "申", "酉", "戌", "亥"}
)

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
