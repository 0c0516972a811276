package contractparse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	ShiftMorning   = "morning"
	ShiftNoon      = "noon"
	ShiftAfternoon = "afternoon"
	ShiftEvening   = "evening"
	ShiftNight     = "night"
	ShiftWeekend   = "weekend"
)

var shiftLineRe = regexp.MustCompile(
	`(?im)^[ \t]*[-•*+–]?[ \t]*ca[ \t]+([^:\n(]{1,40}?)[ \t]*[:(\-–][ \t]*(?:từ[ \t]+)?` +
		`(\d{1,2})[ \t]*(?:h|giờ|g|:)[ \t]*(\d{2})?[ \t]*` +
		`(?:-|–|—|đến|tới)[ \t]*` +
		`(\d{1,2})[ \t]*(?:h|giờ|g|:)?[ \t]*(\d{2})?`,
)

// shiftVocabulary is checked in order; "cuối tuần" must win over "sáng"
// in names like "ca sáng cuối tuần".
var shiftVocabulary = []struct {
	keyword string
	name    string
}{
	{"cuối tuần", ShiftWeekend},
	{"sáng", ShiftMorning},
	{"trưa", ShiftNoon},
	{"chiều", ShiftAfternoon},
	{"tối", ShiftEvening},
	{"đêm", ShiftNight},
}

func canonicalShiftName(label string, ordinal int) string {
	l := strings.ToLower(label)
	for _, v := range shiftVocabulary {
		if strings.Contains(l, v.keyword) {
			return v.name
		}
	}
	return fmt.Sprintf("shift_%d", ordinal)
}

// extractShifts reads clause 3.1 (clause 3, then the whole text as fallbacks).
func extractShifts(idx *SectionIndex) []ShiftSpec {
	scope, ok := idx.Sub(3, 1)
	if !ok {
		if scope, ok = idx.Section(3); !ok {
			scope = idx.Text()
		}
	}

	var shifts []ShiftSpec
	seen := make(map[string]bool)
	for _, m := range shiftLineRe.FindAllStringSubmatch(scope, -1) {
		start, ok1 := clock(m[2], m[3])
		end, ok2 := clock(m[4], m[5])
		if !ok1 || !ok2 {
			continue
		}

		key := start.String() + "-" + end.String()
		if seen[key] {
			continue
		}
		seen[key] = true

		label := cleanValue(m[1])
		s := ShiftSpec{
			Name:  canonicalShiftName(label, len(shifts)+1),
			Label: "Ca " + label,
			Start: start,
			End:   end,
		}
		s.CrossesMidnight, s.DurationHours = shiftSpan(start, end)
		shifts = append(shifts, s)
	}
	return shifts
}

func clock(h, m string) (TimeOfDay, bool) {
	hour, err := strconv.Atoi(h)
	if err != nil {
		return TimeOfDay{}, false
	}
	minute := 0
	if m != "" {
		if minute, err = strconv.Atoi(m); err != nil {
			return TimeOfDay{}, false
		}
	}
	if hour == 24 && minute == 0 {
		hour = 0
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return TimeOfDay{}, false
	}
	return TimeOfDay{Hour: hour, Minute: minute}, true
}

// shiftSpan treats an end earlier than the start as crossing midnight and an
// end equal to the start as a full 24 hour shift.
func shiftSpan(start, end TimeOfDay) (bool, float64) {
	diff := end.Minutes() - start.Minutes()
	switch {
	case diff < 0:
		return true, float64(diff+24*60) / 60
	case diff == 0:
		return false, 24
	default:
		return false, float64(diff) / 60
	}
}

// applyWeekdays sets the weekday flags: weekend shifts run on Saturday and
// Sunday only, every other shift runs Monday to Friday plus the weekend days
// the weekend policy enables.
func applyWeekdays(shifts []ShiftSpec, weekend WeekendPolicy, onHolidays bool) {
	for i := range shifts {
		s := &shifts[i]
		weekday := !s.IsWeekendShift()
		s.Monday, s.Tuesday, s.Wednesday, s.Thursday, s.Friday = weekday, weekday, weekday, weekday, weekday
		if s.IsWeekendShift() {
			s.Saturday, s.Sunday = true, true
		} else {
			s.Saturday, s.Sunday = weekend.Saturday, weekend.Sunday
		}
		s.AppliesOnHolidays = onHolidays
	}
}
