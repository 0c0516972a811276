package contractparse

import (
	"regexp"
	"strings"
)

var (
	locationNameRe = regexp.MustCompile(`(?im)^[ \t]*[-•*+]?[ \t]*(?:địa điểm(?:[ \t]+(?:làm việc|bảo vệ|mục tiêu|thực hiện))?|mục tiêu(?:[ \t]+bảo vệ)?|tên mục tiêu)[ \t]*:[ \t]*([^\n]+)$`)

	siteAddressRe   = regexp.MustCompile(`(?im)(?:địa chỉ[ \t]+(?:mục tiêu|địa điểm|nơi làm việc|làm việc))[ \t]*:[ \t]*([^\n]+)$`)
	siteAtRe        = regexp.MustCompile(`(?im)(?:^|[\s(,;])tại[ \t]*:[ \t]*([^\n]+)$`)
	clauseAddressRe = regexp.MustCompile(`(?im)^[ \t]*[-•*+]?[ \t]*địa chỉ[ \t]*:[ \t]*([^\n]+)$`)
	inlineAddressRe = regexp.MustCompile(`(?i)[,;(][ \t]*địa chỉ[ \t]*:?`)
)

// extractLocation looks for the guarded site in clause 1, or in the first
// window runes when the clause heading is missing. A plain "Địa chỉ:" label
// is only trusted inside clause 1 since the party blocks above it carry
// their own addresses.
func extractLocation(idx *SectionIndex, windowRunes int) LocationFields {
	scope, inClause := idx.Section(1)
	if !inClause {
		scope = window(idx.Text(), 0, windowRunes)
	}

	var loc LocationFields
	if name, ok := submatch(locationNameRe, scope, 1); ok {
		// "Mục tiêu bảo vệ: Nhà máy X, địa chỉ: 12 Lê Lợi"
		if cut := inlineAddressRe.FindStringIndex(name); cut != nil {
			if addr := cleanValue(name[cut[1]:]); addr != "" {
				loc.Address = ptr(addr)
			}
			name = cleanValue(name[:cut[0]])
		}
		if name != "" {
			loc.Name = ptr(name)
		}
	}

	if loc.Address != nil {
		return loc
	}

	strategies := []Strategy[string]{
		pattern("site_address", siteAddressRe, 1),
		pattern("at_label", siteAtRe, 1),
	}
	if inClause {
		strategies = append(strategies, pattern("clause_address", clauseAddressRe, 1))
	}
	if addr, _, ok := firstMatch(scope, strategies); ok {
		loc.Address = ptr(strings.TrimSpace(addr))
	}
	return loc
}
