package contractparse

import (
	"regexp"
	"strings"
)

var (
	partyLineRe   = regexp.MustCompile(`(?im)^[ \t]*(?:bên|ben)[ \t]+b(?:[^\p{L}\p{N}]|$)`)
	partyInlineRe = regexp.MustCompile(`(?i)(?:bên|ben)[ \t]+b(?:[^\p{L}\p{N}]|$)`)

	partyNameLabelRe   = regexp.MustCompile(`(?im)^[ \t]*(?:bên|ben)[ \t]+b(?:[ \t]*\([^)\n]*\))?[ \t]*[:\-–][ \t]*([^\n]*)$`)
	companyNameLabelRe = regexp.MustCompile(`(?im)^[ \t]*[-•*+]?[ \t]*(?:tên công ty|tên doanh nghiệp|tên đơn vị|tên khách hàng|tên tổ chức)[ \t]*[:\-][ \t]*([^\n]+)$`)
	entityLineRe       = regexp.MustCompile(`(?im)^[ \t]*((?:công ty|doanh nghiệp|hộ kinh doanh|ngân hàng|trường|bệnh viện|ông|bà)[ \t]+[^\n]+)$`)

	addressLabelRe = regexp.MustCompile(`(?im)^[ \t]*[-•*+]?[ \t]*(?:địa chỉ(?:[ \t]+trụ sở(?:[ \t]+chính)?)?|trụ sở(?:[ \t]+chính)?|dia chi)[ \t]*:[ \t]*([^\n]+)$`)
	emailRe        = regexp.MustCompile(`(?i)[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}`)
	identityRe     = regexp.MustCompile(`(?i)(?:cccd|cmnd|căn cước(?: công dân)?|chứng minh nhân dân|số định danh(?: cá nhân)?)[^\d\n]{0,20}(\d[\d .]{7,16}\d)`)

	// partyNameRejectRe catches label-only captures such as "(BÊN THUÊ DỊCH VỤ)".
	partyNameRejectRe = regexp.MustCompile(`(?i)^(?:\(|bên (?:thuê|sử dụng|nhận)|đại diện|địa chỉ)`)
)

const entityLineWindow = 400

type partyOptions struct {
	AddressWindow int
	PhoneWindow   int
	EmailWindow   int
}

type partyResult struct {
	fields            PartyFields
	markerFound       bool
	identityDiscarded []string
}

// extractParty reads the customer block. Address, phone, email and contact
// data are looked up in bounded windows after the "Bên B" marker so values of
// party A or later clauses do not leak in. Without a marker the windows start
// at the top of the document.
func extractParty(text string, opts partyOptions) partyResult {
	var res partyResult

	start := 0
	if loc := partyLineRe.FindStringIndex(text); loc != nil {
		start, res.markerFound = loc[0], true
	} else if loc := partyInlineRe.FindStringIndex(text); loc != nil {
		start, res.markerFound = loc[0], true
	}
	block := text[start:]

	nameStrategies := []Strategy[string]{
		{Name: "party_label", Fn: func(s string) (string, bool) {
			v, ok := submatch(partyNameLabelRe, s, 1)
			if !ok || partyNameRejectRe.MatchString(v) {
				return "", false
			}
			return v, true
		}},
		pattern("company_label", companyNameLabelRe, 1),
		{Name: "entity_line", Fn: func(s string) (string, bool) {
			return submatch(entityLineRe, window(s, 0, entityLineWindow), 1)
		}},
	}
	if name, _, ok := firstMatch(block, nameStrategies); ok {
		res.fields.Name = ptr(name)
	}

	if v, ok := submatch(addressLabelRe, window(block, 0, opts.AddressWindow), 1); ok {
		res.fields.Address = ptr(v)
	}
	if v, ok := extractPhone(window(block, 0, opts.PhoneWindow)); ok {
		res.fields.Phone = ptr(v)
	}
	if v := emailRe.FindString(window(block, 0, opts.EmailWindow)); v != "" {
		res.fields.Email = ptr(strings.ToLower(v))
	}

	// the identity shares the widest window since it usually sits next to the email
	for _, m := range identityRe.FindAllStringSubmatch(window(block, 0, opts.EmailWindow), -1) {
		digits := strings.NewReplacer(" ", "", ".", "").Replace(m[1])
		if validIdentityNumber(digits) {
			res.fields.IdentityNumber = ptr(digits)
			break
		}
		res.identityDiscarded = append(res.identityDiscarded, digits)
	}

	if c, ok := extractContact(window(block, 0, opts.EmailWindow)); ok {
		res.fields.ContactName = ptr(c.Name)
		if c.Title != "" {
			res.fields.ContactTitle = ptr(c.Title)
		}
		if g := genderOf(c.Honorific); g != "" {
			res.fields.Gender = ptr(g)
		}
	}

	return res
}

// validIdentityNumber accepts the 9-digit legacy ID and the 12-digit citizen ID.
func validIdentityNumber(s string) bool {
	if len(s) != 9 && len(s) != 12 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}
