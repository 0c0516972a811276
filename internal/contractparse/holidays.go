package contractparse

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"
)

const (
	HolidayCategoryNational = "national"
	HolidayCategoryTet      = "tet"

	tetMinDays = 3
	tetMaxDays = 10
)

const dayMonth = `(\d{1,2}[/.\-]\d{1,2}(?:[/.\-]\d{4})?)`

var (
	tetSpanRe = regexp.MustCompile(`(?i)tết[^\n]{0,120}?` + dayMonth +
		`[ \t]*(?:đến|tới|-|–|—)[ \t]*(?:hết[ \t]+)?(?:ngày[ \t]+)?` + dayMonth)
	solarNewYearNameRe = regexp.MustCompile(`(?i)tết[ \t]+dương[ \t]+lịch`)
	tetWordRe          = regexp.MustCompile(`(?i)tết`)
)

// singleHoliday is a fixed-date national holiday. The named pattern wins;
// the literal day/month is only trusted inside a dedicated holiday clause.
type singleHoliday struct {
	name      string
	day       int
	month     int
	namedRe   *regexp.Regexp
	literalRe *regexp.Regexp
	// secondDay allows an optional adjacent day such as 1/9 or 3/9 next to 2/9.
	secondDay []int
}

var singleHolidays = []singleHoliday{
	{
		name:      "Tết Dương lịch",
		day:       1,
		month:     1,
		namedRe:   solarNewYearNameRe,
		literalRe: regexp.MustCompile(`(?:^|[^\d/])0?1[/.\-]0?1(?:[/.\-](\d{4}))?(?:[^\d/]|$)`),
	},
	{
		name:      "Ngày Giải phóng miền Nam",
		day:       30,
		month:     4,
		namedRe:   regexp.MustCompile(`(?i)giải phóng miền nam|thống nhất đất nước|ngày chiến thắng`),
		literalRe: regexp.MustCompile(`(?:^|[^\d/])30[/.\-]0?4(?:[/.\-](\d{4}))?(?:[^\d/]|$)`),
	},
	{
		name:      "Ngày Quốc tế Lao động",
		day:       1,
		month:     5,
		namedRe:   regexp.MustCompile(`(?i)quốc tế lao động`),
		literalRe: regexp.MustCompile(`(?:^|[^\d/])0?1[/.\-]0?5(?:[/.\-](\d{4}))?(?:[^\d/]|$)`),
	},
	{
		name:      "Quốc khánh",
		day:       2,
		month:     9,
		namedRe:   regexp.MustCompile(`(?i)quốc khánh`),
		literalRe: regexp.MustCompile(`(?:^|[^\d/])0?2[/.\-]0?9(?:[/.\-](\d{4}))?(?:[^\d/]|$)`),
		secondDay: []int{1, 3},
	},
}

var (
	hungKingsRe = regexp.MustCompile(`(?i)(?:giỗ tổ[ \t]+)?hùng vương`)
	dayMonthRe  = regexp.MustCompile(dayMonth)
	lunarRe     = regexp.MustCompile(`(?i)âm lịch|\(al\)`)
)

// lunarMarkerWindow bounds how far after a date an "âm lịch" marker still
// qualifies it.
const lunarMarkerWindow = 20

type holidayResult struct {
	holidays []HolidaySpec
	warnings []string
}

// extractHolidays reads clause 3.4. Dates without a year take the year of
// anchor (the contract start) or the next one when they would precede it.
func extractHolidays(idx *SectionIndex, anchor time.Time) holidayResult {
	var res holidayResult

	scope, dedicated := idx.Sub(3, 4)
	if !dedicated {
		if scope, _ = idx.Section(3); scope == "" {
			scope = idx.Text()
		}
	}

	if tet, ok, rejected := extractTet(scope, anchor); ok {
		res.holidays = append(res.holidays, tet)
	} else {
		res.warnings = append(res.warnings, rejected...)
	}

	if h, ok := extractHungKings(scope, anchor); ok {
		res.holidays = append(res.holidays, h)
	}

	for _, sh := range singleHolidays {
		if h, ok := sh.extract(scope, anchor, dedicated); ok {
			res.holidays = append(res.holidays, h)
		}
	}

	res.holidays = dedupeHolidays(res.holidays)
	return res
}

// extractTet returns the first Tết span that passes the sanity checks. A
// span starting on 1 January is the solar new year and is never Tết.
func extractTet(scope string, anchor time.Time) (HolidaySpec, bool, []string) {
	var rejected []string

	for _, m := range tetSpanRe.FindAllStringSubmatchIndex(scope, -1) {
		// the lazy prefix may run over several "Tết" mentions; judge the last one
		prefix := scope[m[0]:m[2]]
		words := tetWordRe.FindAllStringIndex(prefix, -1)
		if solarNewYearNameRe.MatchString(prefix[words[len(words)-1][0]:]) {
			continue
		}

		from, ok1 := parsePartial(scope[m[2]:m[3]])
		to, ok2 := parsePartial(scope[m[4]:m[5]])
		if !ok1 || !ok2 {
			continue
		}
		if from.year == 0 && to.year != 0 {
			from.year = to.year
			if from.month > to.month {
				from.year--
			}
		}

		start, okS := from.resolve(anchor)
		if !okS {
			continue
		}
		if to.year == 0 {
			to.year = start.Year()
			if to.month < from.month {
				to.year++
			}
		}
		end, okE := to.resolve(anchor)
		if !okE {
			continue
		}

		days := int(end.Sub(start).Hours()/24) + 1
		if reason := tetRejection(start, days); reason != "" {
			rejected = append(rejected, fmt.Sprintf("Tết span %s - %s rejected: %s",
				start.Format("02/01/2006"), end.Format("02/01/2006"), reason))
			continue
		}

		return HolidaySpec{
			Name:      "Tết Nguyên Đán",
			Category:  HolidayCategoryTet,
			Date:      start,
			EndDate:   ptr(end),
			IsTet:     true,
			TotalDays: days,
		}, true, nil
	}
	return HolidaySpec{}, false, rejected
}

func tetRejection(start time.Time, days int) string {
	switch {
	case days < tetMinDays:
		return fmt.Sprintf("%d day(s) is shorter than %d", days, tetMinDays)
	case days > tetMaxDays:
		return fmt.Sprintf("%d days is longer than %d", days, tetMaxDays)
	case start.Month() > time.February:
		return "starts after February"
	case start.Month() == time.January && start.Day() == 1:
		return "starts on 1 January"
	}
	return ""
}

// extractHungKings needs an explicit solar date because the festival follows
// the lunar calendar. Dates on the same line that are marked as lunar are
// skipped, so "(10/3 âm lịch): 18/04/2026" yields 18/04.
func extractHungKings(scope string, anchor time.Time) (HolidaySpec, bool) {
	loc := hungKingsRe.FindStringIndex(scope)
	if loc == nil {
		return HolidaySpec{}, false
	}
	line := scope[loc[1]:]
	if nl := strings.IndexByte(line, '\n'); nl >= 0 {
		line = line[:nl]
	}

	for _, m := range dayMonthRe.FindAllStringIndex(line, -1) {
		if lunarRe.MatchString(window(untilDigit(line[m[1]:]), 0, lunarMarkerWindow)) {
			continue
		}
		p, ok := parsePartial(line[m[0]:m[1]])
		if !ok {
			continue
		}
		d, ok := p.resolve(anchor)
		if !ok {
			continue
		}
		return HolidaySpec{
			Name:      "Giỗ Tổ Hùng Vương",
			Category:  HolidayCategoryNational,
			Date:      d,
			TotalDays: 1,
		}, true
	}
	return HolidaySpec{}, false
}

// untilDigit cuts s before its first digit.
func untilDigit(s string) string {
	if i := strings.IndexFunc(s, unicode.IsDigit); i >= 0 {
		return s[:i]
	}
	return s
}

func (sh singleHoliday) extract(scope string, anchor time.Time, literalAllowed bool) (HolidaySpec, bool) {
	year := 0
	switch {
	case sh.namedRe.MatchString(scope):
	case literalAllowed && sh.literalRe.MatchString(scope):
		if m := sh.literalRe.FindStringSubmatch(scope); len(m) > 1 && m[1] != "" {
			year, _ = strconv.Atoi(m[1])
		}
	default:
		return HolidaySpec{}, false
	}

	d, ok := partialDate{day: sh.day, month: sh.month, year: year}.resolve(anchor)
	if !ok {
		return HolidaySpec{}, false
	}

	h := HolidaySpec{
		Name:      sh.name,
		Category:  HolidayCategoryNational,
		Date:      d,
		TotalDays: 1,
	}

	if len(sh.secondDay) > 0 {
		if loc := sh.namedRe.FindStringIndex(scope); loc != nil {
			line := scope[loc[0]:]
			if nl := strings.IndexByte(line, '\n'); nl >= 0 {
				line = line[:nl]
			}
			for _, extra := range sh.secondDay {
				if secondDayRe(extra, sh.month).MatchString(line) {
					other := date(d.Year(), sh.month, extra)
					if other.Before(h.Date) {
						h.EndDate, h.Date = ptr(h.Date), other
					} else {
						h.EndDate = ptr(other)
					}
					h.TotalDays = 2
					break
				}
			}
		}
	}
	return h, true
}

func secondDayRe(day, month int) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf(`(?:^|[^\d/])0?%d[/.\-]0?%d(?:[^\d]|$)`, day, month))
}

func dedupeHolidays(in []HolidaySpec) []HolidaySpec {
	seen := make(map[time.Time]bool, len(in))
	out := in[:0]
	for _, h := range in {
		if seen[h.Date] {
			continue
		}
		seen[h.Date] = true
		out = append(out, h)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}
