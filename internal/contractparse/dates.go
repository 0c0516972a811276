package contractparse

import (
	"regexp"
	"sort"
	"strconv"
	"time"
)

var (
	numericDateRe = regexp.MustCompile(`(\d{1,2})[/.\-](\d{1,2})[/.\-](\d{4})`)
	wordDateRe    = regexp.MustCompile(`(?i)ngày[ \t]+(\d{1,2})[ \t]+tháng[ \t]+(\d{1,2})[ \t]+năm[ \t]+(\d{4})`)
	// partialDateRe also accepts dd/mm without a year; group 3 may be empty.
	partialDateRe = regexp.MustCompile(`(\d{1,2})[/.\-](\d{1,2})(?:[/.\-](\d{4}))?`)
)

// findDates returns every valid calendar date in text, in order of appearance.
func findDates(text string) []time.Time {
	type hit struct {
		pos int
		t   time.Time
	}
	var hits []hit

	for _, m := range numericDateRe.FindAllStringSubmatchIndex(text, -1) {
		if !digitBoundary(text, m[0], m[1]) {
			continue
		}
		if t, ok := parseDMY(text[m[2]:m[3]], text[m[4]:m[5]], text[m[6]:m[7]]); ok {
			hits = append(hits, hit{m[0], t})
		}
	}
	for _, m := range wordDateRe.FindAllStringSubmatchIndex(text, -1) {
		if t, ok := parseDMY(text[m[2]:m[3]], text[m[4]:m[5]], text[m[6]:m[7]]); ok {
			hits = append(hits, hit{m[0], t})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })
	out := make([]time.Time, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.t)
	}
	return out
}

// digitBoundary rejects matches glued to further digits, e.g. inside "123/05/2025".
func digitBoundary(text string, start, end int) bool {
	if start > 0 && isDigit(text[start-1]) {
		return false
	}
	if end < len(text) && isDigit(text[end]) {
		return false
	}
	return true
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func parseDMY(d, m, y string) (time.Time, bool) {
	day, err1 := strconv.Atoi(d)
	month, err2 := strconv.Atoi(m)
	year, err3 := strconv.Atoi(y)
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, false
	}
	return validDate(year, month, day)
}

// extractDateRange takes the earliest and latest date of the scoped text.
// A single distinct date yields a start date only.
func extractDateRange(idx *SectionIndex) (start, end *time.Time) {
	scope, ok := idx.Section(2)
	if !ok {
		scope = idx.Text()
	}

	dates := findDates(scope)
	if len(dates) == 0 {
		return nil, nil
	}

	lo, hi := dates[0], dates[0]
	for _, d := range dates[1:] {
		if d.Before(lo) {
			lo = d
		}
		if d.After(hi) {
			hi = d
		}
	}

	start = ptr(lo)
	if hi.After(lo) {
		end = ptr(hi)
	}
	return start, end
}

// partialDate is a day/month pair whose year may be missing.
type partialDate struct {
	day, month, year int
}

func parsePartial(s string) (partialDate, bool) {
	m := partialDateRe.FindStringSubmatch(s)
	if m == nil {
		return partialDate{}, false
	}
	d, _ := strconv.Atoi(m[1])
	mo, _ := strconv.Atoi(m[2])
	y := 0
	if m[3] != "" {
		y, _ = strconv.Atoi(m[3])
	}
	if d < 1 || d > 31 || mo < 1 || mo > 12 {
		return partialDate{}, false
	}
	return partialDate{day: d, month: mo, year: y}, true
}

// resolve fills a missing year from the contract start: the date lands in
// the start year, or the following one when it would precede the start.
func (p partialDate) resolve(anchor time.Time) (time.Time, bool) {
	if p.year != 0 {
		return validDate(p.year, p.month, p.day)
	}
	t, ok := validDate(anchor.Year(), p.month, p.day)
	if !ok {
		return t, false
	}
	if t.Before(anchor) {
		return validDate(anchor.Year()+1, p.month, p.day)
	}
	return t, true
}
