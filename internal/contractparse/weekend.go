package contractparse

import "regexp"

const (
	WeekendRuleAbsent        = "clause_absent"
	WeekendRuleNormalWorkday = "normal_workday"
	WeekendRuleNoSeparateOff = "no_separate_rest"
	WeekendRuleRestDays      = "rest_days"
	WeekendRuleDaysMentioned = "days_mentioned"
)

var (
	weekendNormalRe     = regexp.MustCompile(`(?is)duy trì.{0,200}?như ngày làm việc bình thường`)
	weekendNoSeparateRe = regexp.MustCompile(`(?i)không có chế độ nghỉ riêng`)
	weekendOffRe        = regexp.MustCompile(`(?i)nghỉ riêng|không làm việc|được nghỉ|nghỉ[ \t]+(?:vào[ \t]+)?(?:các[ \t]+)?(?:ngày[ \t]+)?(?:thứ bảy|thứ 7|chủ nhật|cuối tuần)`)
	saturdayRe          = regexp.MustCompile(`(?i)thứ bảy|thứ 7|thu bay`)
	sundayRe            = regexp.MustCompile(`(?i)chủ nhật|chu nhat`)
)

// extractWeekendPolicy decides weekend coverage from clause 3.3. The steps
// run in a fixed order and the first one that applies decides.
func extractWeekendPolicy(idx *SectionIndex) WeekendPolicy {
	clause, ok := idx.Sub(3, 3)
	if !ok {
		return WeekendPolicy{Rule: WeekendRuleAbsent}
	}

	p := WeekendPolicy{ClausePresent: true}
	switch {
	case weekendNormalRe.MatchString(clause):
		p.Saturday, p.Sunday, p.Rule = true, true, WeekendRuleNormalWorkday
	case weekendNoSeparateRe.MatchString(clause):
		p.Saturday, p.Sunday, p.Rule = true, true, WeekendRuleNoSeparateOff
	case weekendOffRe.MatchString(clause):
		p.Rule = WeekendRuleRestDays
	default:
		p.Rule = WeekendRuleDaysMentioned
		p.Saturday = saturdayRe.MatchString(clause)
		p.Sunday = sundayRe.MatchString(clause)
		if !p.Saturday && !p.Sunday {
			p.Saturday, p.Sunday = true, true
		}
	}
	return p
}

var (
	holidayWorkRe = regexp.MustCompile(`(?i)vẫn[ \t]+(?:làm việc|trực|bố trí)`)
	holidayRestRe = regexp.MustCompile(`(?i)(?:không[ \t]+(?:làm việc|trực|bố trí bảo vệ)|tạm ngừng[ \t]+(?:dịch vụ|trực))[^.\n]{0,40}(?:lễ|tết)`)
)

// extractAppliesOnHolidays reports whether shifts keep running on public
// holidays. Shifts run unless clause 3.2 or 3.4 suspends work on holidays.
func extractAppliesOnHolidays(idx *SectionIndex) bool {
	var scope string
	for _, sub := range []int{2, 4} {
		if s, ok := idx.Sub(3, sub); ok {
			scope += s + "\n"
		}
	}
	if scope == "" {
		return true
	}

	if holidayWorkRe.MatchString(scope) {
		return true
	}
	return !holidayRestRe.MatchString(scope)
}
