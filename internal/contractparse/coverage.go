package contractparse

import (
	"regexp"
	"strconv"
)

const (
	Coverage24x7      = "24x7"
	CoverageDayOnly   = "day_only"
	CoverageNightOnly = "night_only"
)

var (
	guardCountRe    = regexp.MustCompile(`(?i)(?:^|[^\d/])(\d{1,3})[ \t]*(?:\([^)\n]{0,30}\)[ \t]*)?(?:nhân viên[ \t]+|người[ \t]+|nv[ \t]+)?(?:bảo vệ|bao ve)`)
	guardQuantityRe = regexp.MustCompile(`(?i)số lượng(?:[ \t]+(?:bảo vệ|nhân viên(?:[ \t]+bảo vệ)?))?[ \t]*:[ \t]*(\d{1,3})`)
	guardPeopleRe   = regexp.MustCompile(`(?i)(?:^|[^\d/])(\d{1,3})[ \t]+người`)

	coverage24Re    = regexp.MustCompile(`(?i)24[ \t]*/[ \t]*(?:7|24)|24x7|24[ \t]+giờ`)
	coverageDayRe   = regexp.MustCompile(`(?i)ban ngày`)
	coverageNightRe = regexp.MustCompile(`(?i)ban đêm`)
)

func countStrategy(name string, re *regexp.Regexp) Strategy[int] {
	return Strategy[int]{
		Name: name,
		Fn: func(text string) (int, bool) {
			for _, m := range re.FindAllStringSubmatch(text, -1) {
				if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
					return n, true
				}
			}
			return 0, false
		},
	}
}

var guardStrategies = []Strategy[int]{
	countStrategy("n_guards", guardCountRe),
	countStrategy("quantity_label", guardQuantityRe),
}

// extractGuardCount looks for a headcount in the whole text and finally for
// "N người" inside clause 1.
func extractGuardCount(idx *SectionIndex) (int, bool) {
	if n, _, ok := firstMatch(idx.Text(), guardStrategies); ok {
		return n, true
	}
	if clause1, ok := idx.Section(1); ok {
		return countStrategy("n_people", guardPeopleRe).Fn(clause1)
	}
	return 0, false
}

var coverageStrategies = []Strategy[string]{
	{Name: "round_the_clock", Fn: func(s string) (string, bool) { return Coverage24x7, containsAny(coverage24Re, s) }},
	{Name: "day_only", Fn: func(s string) (string, bool) { return CoverageDayOnly, containsAny(coverageDayRe, s) }},
	{Name: "night_only", Fn: func(s string) (string, bool) { return CoverageNightOnly, containsAny(coverageNightRe, s) }},
}

func extractCoverage(text string) (string, bool) {
	v, _, ok := firstMatch(text, coverageStrategies)
	return v, ok
}
