package contractparse

import (
	"regexp"
	"sort"
	"time"
)

var (
	substitutePhraseRe = regexp.MustCompile(`(?i)nghỉ bù|làm bù`)
	substituteDateRe   = regexp.MustCompile(dayMonth)
)

const maxReasonRunes = 255

// extractSubstituteDays collects the dates written after "nghỉ bù" or
// "làm bù" on the same line. Dates that fall inside an extracted holiday
// are part of the holiday itself and are skipped.
func extractSubstituteDays(idx *SectionIndex, anchor time.Time, holidays []HolidaySpec) []SubstituteSpec {
	scope, ok := idx.Sub(3, 4)
	if !ok {
		if scope, ok = idx.Section(3); !ok {
			scope = idx.Text()
		}
	}

	var out []SubstituteSpec
	seen := make(map[time.Time]bool)
	for _, line := range lines(scope) {
		loc := substitutePhraseRe.FindStringIndex(line)
		if loc == nil {
			continue
		}

		for _, m := range substituteDateRe.FindAllStringIndex(line[loc[1]:], -1) {
			raw := line[loc[1]+m[0] : loc[1]+m[1]]
			if !digitBoundary(line, loc[1]+m[0], loc[1]+m[1]) {
				continue
			}
			p, ok := parsePartial(raw)
			if !ok {
				continue
			}
			d, ok := p.resolve(anchor)
			if !ok || seen[d] || insideHoliday(d, holidays) {
				continue
			}
			seen[d] = true
			out = append(out, SubstituteSpec{Date: d, Reason: window(line, 0, maxReasonRunes)})
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func insideHoliday(d time.Time, holidays []HolidaySpec) bool {
	for _, h := range holidays {
		if h.Covers(d) {
			return true
		}
	}
	return false
}

// NearestHoliday returns the index of the holiday closest to d, measured to
// the nearest edge of its span, provided it lies in the same year and within
// maxDays. It returns -1 when nothing qualifies.
func NearestHoliday(d time.Time, holidays []HolidaySpec, maxDays int) int {
	best, bestDist := -1, maxDays+1
	for i, h := range holidays {
		if h.Date.Year() != d.Year() && h.Last().Year() != d.Year() {
			continue
		}
		dist := 0
		switch {
		case d.Before(h.Date):
			dist = int(h.Date.Sub(d).Hours() / 24)
		case d.After(h.Last()):
			dist = int(d.Sub(h.Last()).Hours() / 24)
		}
		if dist < bestDist {
			best, bestDist = i, dist
		}
	}
	return best
}
