package contractparse

import (
	"regexp"
	"strings"
)

const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// Honorifics are matched case-insensitively, names must be capitalised words.
// The honorific has to open a line or follow ":;," so place names such as
// "Bà Rịa" inside an address are not taken for a person.
const (
	honorific   = `(?i:(ông|bà))`
	personName  = `(\p{Lu}\p{L}*(?:[ \t]+\p{Lu}\p{L}*){0,5})`
	titleMarker = `[ \t]*(?:[-–—,]|(?i:chức vụ)[ \t]*:)[ \t]*([^\n]+)`
)

var (
	contactLabelledRe = regexp.MustCompile(`(?m)(?i:người đại diện|đại diện|người liên hệ)[^:\n]{0,30}:[ \t]*` + honorific + `[ \t]+` + personName + titleMarker)
	contactTitledRe   = regexp.MustCompile(`(?m)(?:^|[:;,])[ \t]*[-•*+]?[ \t]*` + honorific + `[ \t]+` + personName + titleMarker)
	contactNameRe     = regexp.MustCompile(`(?m)(?:^|[:;,])[ \t]*[-•*+]?[ \t]*` + honorific + `[ \t]+` + personName)

	// titleStopRe marks where a different field starts on the same line.
	titleStopRe = regexp.MustCompile(`(?i)(?:cccd|cmnd|căn cước|số định danh|chứng minh|điện thoại|sđt|đt[ \t]*:|email|e-mail|địa chỉ|mã số thuế|mst[ \t]*:)`)
)

type contactPerson struct {
	Honorific string
	Name      string
	Title     string
}

func contactStrategy(name string, re *regexp.Regexp, withTitle bool) Strategy[contactPerson] {
	return Strategy[contactPerson]{
		Name: name,
		Fn: func(text string) (contactPerson, bool) {
			m := re.FindStringSubmatch(text)
			if m == nil {
				return contactPerson{}, false
			}
			c := contactPerson{
				Honorific: strings.ToLower(m[1]),
				Name:      cleanValue(m[2]),
			}
			if withTitle {
				c.Title = cutTitle(m[3])
				if c.Title == "" {
					return contactPerson{}, false
				}
			}
			return c, c.Name != ""
		},
	}
}

var contactStrategies = []Strategy[contactPerson]{
	contactStrategy("labelled_with_title", contactLabelledRe, true),
	contactStrategy("honorific_with_title", contactTitledRe, true),
	contactStrategy("name_only", contactNameRe, false),
}

func extractContact(text string) (contactPerson, bool) {
	c, _, ok := firstMatch(text, contactStrategies)
	return c, ok
}

func cutTitle(s string) string {
	if loc := titleStopRe.FindStringIndex(s); loc != nil {
		s = s[:loc[0]]
	}
	return cleanValue(s)
}

func genderOf(honorific string) string {
	switch honorific {
	case "ông":
		return GenderMale
	case "bà":
		return GenderFemale
	}
	return ""
}
