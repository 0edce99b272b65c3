package numfmt

import (
	"strconv"
	"strings"
)

type chineseTable struct {
	digits [10]rune
	// multipliers for tens, hundreds, thousands, ten thousands
	series [4]rune
}

var (
	counting = chineseTable{
		digits: [10]rune{'〇', '一', '二', '三', '四', '五', '六', '七', '八', '九'},
		series: [4]rune{'十', '百', '千', '万'},
	}
	legal = chineseTable{
		digits: [10]rune{'零', '壹', '贰', '叁', '肆', '伍', '陆', '柒', '捌', '玖'},
		series: [4]rune{'拾', '佰', '仟', '萬'},
	}
)

const chineseMax = 99999

// chinese writes n with multipliers, runs of zeros collapse to a single zero
// digit and trailing zeros are dropped. With shortTeens numbers 11..19 lose
// the leading "one" (十一 rather than 一十一), 10 included.
func chinese(n int, t chineseTable, shortTeens bool, f *Formatter) string {
	if n <= 0 || n > chineseMax {
		return f.decimal(n, 0)
	}
	if n <= 9 {
		return string(t.digits[n])
	}

	s := strconv.Itoa(n)
	var b strings.Builder
	addZero := false
	for i, c := range s {
		d := int(c - '0')
		pos := len(s) - i - 2
		switch {
		case d > 0:
			b.WriteRune(t.digits[d])
			if pos >= 0 {
				b.WriteRune(t.series[pos])
			}
			addZero = true
		case addZero && i != len(s)-1:
			b.WriteRune(t.digits[0])
			addZero = false
		}
	}

	out := []rune(b.String())
	if out[len(out)-1] == t.digits[0] {
		out = out[:len(out)-1]
	}
	if shortTeens && n >= 10 && n < 20 && out[0] == t.digits[1] {
		out = out[1:]
	}
	return string(out)
}
