package contractparse

import (
	"regexp"
	"strings"
)

var (
	phoneLabelRe = regexp.MustCompile(`(?i)(?:^|[^\p{L}])(?:số điện thoại|điện thoại|sđt|đt|di động|tel|phone|mobile)[ \t]*[:.]?[ \t]*(\+?\d[\d .\-()]{7,16}\d)`)
	phoneBareRe  = regexp.MustCompile(`(?:^|[^\d+])(0\d{9})(?:[^\d]|$)`)
)

var phoneStrategies = []Strategy[string]{
	pattern("labelled", phoneLabelRe, 1),
	pattern("bare_mobile", phoneBareRe, 1),
}

func extractPhone(text string) (string, bool) {
	raw, _, ok := firstMatch(text, phoneStrategies)
	if !ok {
		return "", false
	}
	return NormalizePhone(raw)
}

// NormalizePhone strips separators and rewrites the number to +84 form.
// Numbers already carrying a "+" are kept as dialled.
func NormalizePhone(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	plus := strings.HasPrefix(raw, "+")

	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	if len(d) < 9 || len(d) > 13 {
		return "", false
	}

	switch {
	case plus:
		return "+" + d, true
	case strings.HasPrefix(d, "0"):
		return "+84" + d[1:], true
	case strings.HasPrefix(d, "84") && len(d) >= 11:
		return "+" + d, true
	default:
		return "+84" + d, true
	}
}
