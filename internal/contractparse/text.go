package contractparse

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// window returns at most n runes of text starting at byte offset start.
func window(text string, start, n int) string {
	if start < 0 {
		start = 0
	}
	if start >= len(text) {
		return ""
	}
	rest := text[start:]
	if n <= 0 || utf8.RuneCountInString(rest) <= n {
		return rest
	}

	i := 0
	for count := 0; count < n; count++ {
		_, size := utf8.DecodeRuneInString(rest[i:])
		i += size
	}
	return rest[:i]
}

// submatch returns capture group g of the first match of re in s.
func submatch(re *regexp.Regexp, s string, g int) (string, bool) {
	m := re.FindStringSubmatch(s)
	if m == nil || g >= len(m) {
		return "", false
	}
	v := cleanValue(m[g])
	return v, v != ""
}

const trimCutset = " \t\r\n.,;:-–—*•"

func cleanValue(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return strings.Trim(s, trimCutset)
}

func ptr[T any](v T) *T { return &v }

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

// validDate builds a UTC date, rejecting overflowing values such as 31/02.
func validDate(y, m, d int) (time.Time, bool) {
	if m < 1 || m > 12 || d < 1 || d > 31 || y < 1900 || y > 2200 {
		return time.Time{}, false
	}
	t := date(y, m, d)
	if t.Day() != d || int(t.Month()) != m {
		return time.Time{}, false
	}
	return t, true
}

func containsAny(re *regexp.Regexp, s string) bool {
	return s != "" && re.MatchString(s)
}

// lines splits text into trimmed, non-empty lines.
func lines(text string) []string {
	raw := strings.Split(text, "\n")
	out := raw[:0]
	for _, l := range raw {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}
