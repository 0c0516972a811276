package contractparse

import (
	"math"
	"regexp"
	"time"
)

const (
	TypeLongTerm  = "long_term"
	TypeShortTerm = "short_term"
	TypeMonthly   = "monthly"
	TypeWeekly    = "weekly"
	TypeOneDay    = "one_day"
	TypeEvent     = "event"

	ScopeShiftBased = "shift_based"
	ScopeEventBased = "event_based"

	DefaultAdvanceGenerationDays = 30

	daysPerMonth = 30.44
	// a contract without an end date is treated as a one-year long-term engagement
	openEndedMonths = 12
)

var (
	kwLongTermRe  = regexp.MustCompile(`(?i)dài hạn`)
	kwShortTermRe = regexp.MustCompile(`(?i)ngắn hạn`)
	kwOneDayRe    = regexp.MustCompile(`(?i)(?:hợp đồng|dịch vụ|bảo vệ)[ \t]+(?:trong[ \t]+)?một ngày|theo sự kiện|0?1 ngày duy nhất`)
	kwWeeklyRe    = regexp.MustCompile(`(?i)hàng tuần|theo tuần`)
	kwAutoRenewRe = regexp.MustCompile(`(?i)tự động gia hạn`)
	kwEventRe     = regexp.MustCompile(`(?i)sự kiện`)
	forceMajeure  = regexp.MustCompile(`(?i)^[ \t]*bất khả kháng`)
)

// keywordRule is one text override. Only the first matching type rule
// applies; the auto-renew rule sets flags whatever type was chosen.
type keywordRule struct {
	name     string
	setsType bool
	match    func(text string) bool
	apply    func(c *Classification)
}

func typeRule(name string, match func(string) bool, contractType string) keywordRule {
	return keywordRule{
		name:     name,
		setsType: true,
		match:    match,
		apply:    func(c *Classification) { setType(c, contractType) },
	}
}

var keywordRules = []keywordRule{
	typeRule("long_term", kwLongTermRe.MatchString, TypeLongTerm),
	typeRule("short_term", kwShortTermRe.MatchString, TypeShortTerm),
	typeRule("one_day", kwOneDayRe.MatchString, TypeOneDay),
	typeRule("weekly", kwWeeklyRe.MatchString, TypeWeekly),
	{
		name:  "auto_renew",
		match: kwAutoRenewRe.MatchString,
		apply: func(c *Classification) { c.AutoRenewal, c.IsRenewable = true, true },
	},
	typeRule("event", mentionsEvent, TypeEvent),
}

// mentionsEvent ignores "sự kiện bất khả kháng", the force majeure clause
// every contract carries.
func mentionsEvent(text string) bool {
	for _, loc := range kwEventRe.FindAllStringIndex(text, -1) {
		if !forceMajeure.MatchString(text[loc[1]:]) {
			return true
		}
	}
	return false
}

// Classify derives the contract type from the date span and lets keyword
// phrases in the text override it.
func Classify(start, end *time.Time, text string) Classification {
	c := Classification{AdvanceGenerationDays: DefaultAdvanceGenerationDays}

	switch {
	case start == nil || end == nil:
		setType(&c, TypeLongTerm)
		c.DurationMonths = openEndedMonths
	default:
		days := end.Sub(*start).Hours() / 24
		c.DurationMonths = DurationMonths(*start, *end)
		switch {
		case days <= 1:
			setType(&c, TypeOneDay)
		case days <= 7:
			setType(&c, TypeWeekly)
		case days <= 30:
			setType(&c, TypeMonthly)
		case days <= 6*daysPerMonth:
			setType(&c, TypeShortTerm)
		default:
			setType(&c, TypeLongTerm)
		}
	}

	typed := false
	for _, rule := range keywordRules {
		if rule.setsType && typed {
			continue
		}
		if rule.match(text) {
			rule.apply(&c)
			typed = typed || rule.setsType
		}
	}
	return c
}

// DurationMonths rounds the day span up to whole months, at least one.
func DurationMonths(start, end time.Time) int {
	days := end.Sub(start).Hours() / 24
	months := int(math.Ceil(days / daysPerMonth))
	if months < 1 {
		return 1
	}
	return months
}

func setType(c *Classification, contractType string) {
	c.ContractType = contractType
	switch contractType {
	case TypeOneDay, TypeEvent:
		c.ServiceScope = ScopeEventBased
		c.AutoGenerateShifts = false
		c.AdvanceGenerationDays = 0
		c.IsRenewable = c.AutoRenewal
	default:
		c.ServiceScope = ScopeShiftBased
		c.AutoGenerateShifts = true
		c.AdvanceGenerationDays = DefaultAdvanceGenerationDays
		c.IsRenewable = c.AutoRenewal || contractType == TypeLongTerm || contractType == TypeShortTerm
	}
}
