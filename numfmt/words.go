package numfmt

import "strings"

var (
	ones = []string{"", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine",
		"ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen", "sixteen", "seventeen", "eighteen", "nineteen"}
	tens   = []string{"", "", "twenty", "thirty", "forty", "fifty", "sixty", "seventy", "eighty", "ninety"}
	scales = []string{"", "thousand", "million", "billion", "trillion", "quadrillion", "quintillion"}
)

// cardinalWords spells n in English: "one hundred twenty-three".
func cardinalWords(n int) string {
	if n == 0 {
		return "zero"
	}
	if n < 0 {
		return "minus " + cardinalWords(-n)
	}

	var groups []string
	for i := 0; n > 0 && i < len(scales); i++ {
		g := n % 1000
		n /= 1000
		if g == 0 {
			continue
		}
		w := hundreds(g)
		if scales[i] != "" {
			w += " " + scales[i]
		}
		groups = append([]string{w}, groups...)
	}
	return strings.Join(groups, " ")
}

func hundreds(n int) string {
	var parts []string
	if h := n / 100; h > 0 {
		parts = append(parts, ones[h]+" hundred")
	}
	switch r := n % 100; {
	case r == 0:
	case r < 20:
		parts = append(parts, ones[r])
	case r%10 == 0:
		parts = append(parts, tens[r/10])
	default:
		parts = append(parts, tens[r/10]+"-"+ones[r%10])
	}
	return strings.Join(parts, " ")
}

var irregularOrdinals = map[string]string{
	"one":    "first",
	"two":    "second",
	"three":  "third",
	"five":   "fifth",
	"eight":  "eighth",
	"nine":   "ninth",
	"twelve": "twelfth",
}

// ordinalWords spells n as English ordinal: "twenty-first".
func ordinalWords(n int) string {
	w := cardinalWords(n)
	cut := strings.LastIndexAny(w, " -") + 1
	head, last := w[:cut], w[cut:]
	switch {
	case irregularOrdinals[last] != "":
		last = irregularOrdinals[last]
	case strings.HasSuffix(last, "y"):
		last = strings.TrimSuffix(last, "y") + "ieth"
	default:
		last += "th"
	}
	return head + last
}
