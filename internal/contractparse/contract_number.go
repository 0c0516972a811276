package contractparse

import (
	"regexp"
	"strings"
)

const contractMarkerSuffix = "/HĐDV-BV"

var (
	numberDateCodeRe = regexp.MustCompile(`(?i)số(?:[ \t]+(?:hợp đồng|hđ))?[ \t]*[:.]?[ \t]*(\d{8}(?:/[^\s,;()]+)?)(?:[^\d]|$)`)
	numberSlashedRe  = regexp.MustCompile(`(?i)số(?:[ \t]+(?:hợp đồng|hđ))?[ \t]*[:.]?[ \t]*(\d{1,4}/\d{4}(?:/[^\s,;()]+)?)(?:[^\d/]|$)`)
	numberLabelRe    = regexp.MustCompile(`(?i)số hợp đồng[ \t]*[:.][ \t]*([^\s,;()]+)`)
)

var contractNumberStrategies = []Strategy[string]{
	pattern("date_code", numberDateCodeRe, 1),
	pattern("slashed", numberSlashedRe, 1),
	pattern("labelled", numberLabelRe, 1),
}

func extractContractNumber(text string) (string, bool) {
	v, _, ok := firstMatch(text, contractNumberStrategies)
	if !ok {
		return "", false
	}
	return withContractMarker(v), true
}

// withContractMarker appends the service-contract marker to numbers that
// carry no "HĐ" segment at all.
func withContractMarker(number string) string {
	number = strings.TrimRight(number, "/")
	if strings.Contains(strings.ToUpper(number), "HĐ") {
		return number
	}
	return number + contractMarkerSuffix
}
