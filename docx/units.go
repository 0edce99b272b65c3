package docx

import (
	"math"
	"strconv"
	"strings"
)

// Measurement conversions. Transitional documents use plain integers, strict
// ones may carry universal measure with unit suffix.

const (
	TwipsPerPoint = 20
	EMUPerPoint   = 12700
)

var twipsPerUnit = map[string]float64{
	"mm": 1440 / 25.4,
	"cm": 1440 / 2.54,
	"in": 1440,
	"pt": 20,
	"pc": 240,
	"pi": 240,
}

// parseTwips parses distance measured in twips.
func parseTwips(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v, true
	}
	if len(s) > 2 {
		if k, ok := twipsPerUnit[s[len(s)-2:]]; ok {
			if f, err := strconv.ParseFloat(s[:len(s)-2], 64); err == nil {
				return int(math.Round(f * k)), true
			}
		}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(math.Round(f)), true
	}
	return 0, false
}

// parseInt parses plain decimal number, fractions are rounded.
func parseInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if v, err := strconv.Atoi(s); err == nil {
		return v, true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(math.Round(f)), true
	}
	return 0, false
}

// parseOnOff parses ST_OnOff, missing value means on.
func parseOnOff(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "0", "false", "off", "none":
		return false
	}
	return true
}

// TwipsToPoints converts twips to points.
func TwipsToPoints(v int) float64 {
	return float64(v) / TwipsPerPoint
}

// EMUToPoints converts English Metric Units to points.
func EMUToPoints(v int64) float64 {
	return float64(v) / EMUPerPoint
}
