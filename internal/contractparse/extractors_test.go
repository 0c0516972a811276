package contractparse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectionIndex(t *testing.T) {
	text := "Mở đầu\nĐIỀU 1: A\nnội dung một\nĐiều 2. B\nnội dung hai\n3.1 không thuộc điều nào\nDieu 3 C\n3.1 Ca:\nx\n3.3 Cuối tuần\ny\n"
	idx := NewSectionIndex(text, 5000)

	assert.Equal(t, []string{"1", "2", "3"}, idx.Clauses())

	s1, ok := idx.Section(1)
	require.True(t, ok)
	assert.Equal(t, "ĐIỀU 1: A\nnội dung một\n", s1)

	_, ok = idx.Section(4)
	assert.False(t, ok)

	sub, ok := idx.Sub(3, 1)
	require.True(t, ok)
	assert.Equal(t, "3.1 Ca:\nx\n", sub)

	sub, ok = idx.Sub(3, 3)
	require.True(t, ok)
	assert.Equal(t, "3.3 Cuối tuần\ny\n", sub)

	_, ok = idx.Sub(3, 4)
	assert.False(t, ok)
}

func TestSectionIndex_LastClauseIsCapped(t *testing.T) {
	idx := NewSectionIndex("Điều 9: ạạạạạạạạạạ", 10)
	s, ok := idx.Section(9)
	require.True(t, ok)
	assert.Equal(t, "Điều 9: ạạ", s)
}

func TestExtractContractNumber(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Số: 01062025/HĐDV-BV/ABC", "01062025/HĐDV-BV/ABC"},
		{"Số: 01062025", "01062025/HĐDV-BV"},
		{"Số: 123/2025/HĐ-BV ngày ký", "123/2025/HĐ-BV"},
		{"Số: 45/2025", "45/2025/HĐDV-BV"},
		{"Số hợp đồng: ABC-77", "ABC-77/HĐDV-BV"},
	}
	for _, tt := range tests {
		got, ok := extractContractNumber(tt.text)
		require.True(t, ok, tt.text)
		assert.Equal(t, tt.want, got, tt.text)
	}

	_, ok := extractContractNumber("CCCD số 079085001234")
	assert.False(t, ok)
}

func TestExtractDateRange_OrderIndependent(t *testing.T) {
	forward := NewSectionIndex("ĐIỀU 2: Từ ngày 01/06/2025 đến ngày 31/05/2026, gia hạn 15-07-2025", 5000)
	backward := NewSectionIndex("ĐIỀU 2: đến ngày 31/05/2026, gia hạn 15.07.2025, từ ngày 01 tháng 06 năm 2025", 5000)

	s1, e1 := extractDateRange(forward)
	s2, e2 := extractDateRange(backward)
	require.NotNil(t, s1)
	require.NotNil(t, e1)
	assert.Equal(t, *s1, *s2)
	assert.Equal(t, *e1, *e2)
	assert.Equal(t, date(2025, 6, 1), *s1)
	assert.Equal(t, date(2026, 5, 31), *e1)
}

func TestExtractDateRange_SingleDate(t *testing.T) {
	start, end := extractDateRange(NewSectionIndex("Hiệu lực từ 01/06/2025. Ký ngày 01/06/2025", 5000))
	require.NotNil(t, start)
	assert.Equal(t, date(2025, 6, 1), *start)
	assert.Nil(t, end)
}

func TestExtractDateRange_RejectsImpossibleDates(t *testing.T) {
	start, _ := extractDateRange(NewSectionIndex("ngày 31/02/2025 và 123/05/2025", 5000))
	assert.Nil(t, start)
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"0901234567", "+84901234567", true},
		{"090.123.4567", "+84901234567", true},
		{"(028) 3823 4567", "+842838234567", true},
		{"901234567", "+84901234567", true},
		{"+84 90 123 4567", "+84901234567", true},
		{"12345", "", false},
	}
	for _, tt := range tests {
		got, ok := NormalizePhone(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

// A number that already carries the 84 country code without "+" is not
// prefixed a second time.
func TestNormalizePhone_CountryCodeWithoutPlus(t *testing.T) {
	got, ok := NormalizePhone("84901234567")
	require.True(t, ok)
	assert.Equal(t, "+84901234567", got)

	got, ok = NormalizePhone("84 28 3823 4567")
	require.True(t, ok)
	assert.Equal(t, "+842838234567", got)
}

func TestExtractContact_Cascade(t *testing.T) {
	c, ok := extractContact("Đại diện: Ông Nguyễn Văn An – Giám đốc, CCCD: 079085001234")
	require.True(t, ok)
	assert.Equal(t, "Nguyễn Văn An", c.Name)
	assert.Equal(t, "Giám đốc", c.Title)
	assert.Equal(t, GenderMale, genderOf(c.Honorific))

	c, ok = extractContact("Bà LÊ THỊ HOA - Trưởng phòng hành chính Điện thoại: 0901234567")
	require.True(t, ok)
	assert.Equal(t, "LÊ THỊ HOA", c.Name)
	assert.Equal(t, "Trưởng phòng hành chính", c.Title)
	assert.Equal(t, GenderFemale, genderOf(c.Honorific))

	c, ok = extractContact("Người liên hệ: Bà Phạm Thu Trang")
	require.True(t, ok)
	assert.Equal(t, "Phạm Thu Trang", c.Name)
	assert.Empty(t, c.Title)
}

func TestExtractContact_IgnoresPlaceNames(t *testing.T) {
	_, ok := extractContact("Địa chỉ: 5 Lê Lợi, TP. Vũng Tàu, tỉnh Bà Rịa - Vũng Tàu")
	assert.False(t, ok)
}

func TestExtractParty_IdentityMustBe9Or12Digits(t *testing.T) {
	res := extractParty("Bên B: Công ty A\nCCCD: 0790850012\nCMND: 123456789", partyOptions{800, 600, 1000})
	require.NotNil(t, res.fields.IdentityNumber)
	assert.Equal(t, "123456789", *res.fields.IdentityNumber)
	assert.Equal(t, []string{"0790850012"}, res.identityDiscarded)
}

func TestExtractParty_WindowsStopBleeding(t *testing.T) {
	filler := ""
	for i := 0; i < 60; i++ {
		filler += "nội dung khác\n"
	}
	text := "Bên B: Công ty A\n" + filler + "Điện thoại: 0901234567\nEmail: late@x.vn"
	res := extractParty(text, partyOptions{AddressWindow: 800, PhoneWindow: 600, EmailWindow: 1000})

	assert.Nil(t, res.fields.Phone)
	require.NotNil(t, res.fields.Email)
	assert.Equal(t, "late@x.vn", *res.fields.Email)
}

func TestExtractParty_NameOnFollowingLine(t *testing.T) {
	res := extractParty("BÊN B (BÊN THUÊ DỊCH VỤ):\nCÔNG TY TNHH THƯƠNG MẠI XYZ\nĐịa chỉ: Hà Nội", partyOptions{800, 600, 1000})
	require.NotNil(t, res.fields.Name)
	assert.Equal(t, "CÔNG TY TNHH THƯƠNG MẠI XYZ", *res.fields.Name)
}

func TestExtractShifts(t *testing.T) {
	idx := NewSectionIndex(`ĐIỀU 3: CA
3.1 Ca trực:
- Ca sáng: 06h00 – 14h00
- Ca chiều: 14h00 - 22h00
- Ca đêm: 22h00 đến 06h00
- Ca phụ: 06:00 - 14:00
- Ca cuối tuần: 08h00 – 08h00
- Ca hành chính: 07h30 – 16h30
3.2 Khác`, 5000)

	shifts := extractShifts(idx)
	require.Len(t, shifts, 5)

	assert.Equal(t, ShiftMorning, shifts[0].Name)
	assert.Equal(t, ShiftAfternoon, shifts[1].Name)

	night := shifts[2]
	assert.Equal(t, ShiftNight, night.Name)
	assert.True(t, night.CrossesMidnight)
	assert.Equal(t, 8.0, night.DurationHours)

	weekend := shifts[3]
	assert.Equal(t, ShiftWeekend, weekend.Name)
	assert.False(t, weekend.CrossesMidnight)
	assert.Equal(t, 24.0, weekend.DurationHours)

	assert.Equal(t, "shift_5", shifts[4].Name)
	assert.Equal(t, "07:30", shifts[4].Start.String())
	assert.Equal(t, 9.0, shifts[4].DurationHours)

	applyWeekdays(shifts, WeekendPolicy{Saturday: true}, false)
	assert.True(t, shifts[0].Saturday)
	assert.False(t, shifts[0].Sunday)
	assert.False(t, weekend.Monday)
	assert.True(t, shifts[3].Sunday)
	assert.False(t, shifts[3].Monday)
	assert.False(t, shifts[0].AppliesOnHolidays)
}

func TestExtractWeekendPolicy_Cascade(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		sat, sun bool
		rule     string
	}{
		{"absent", "ĐIỀU 3: CA\n3.1 Ca sáng: 06h00 - 14h00", false, false, WeekendRuleAbsent},
		{"normal workday", "ĐIỀU 3\n3.3 Thứ Bảy, Chủ nhật: duy trì lực lượng\nnhư ngày làm việc bình thường", true, true, WeekendRuleNormalWorkday},
		{"no separate rest", "ĐIỀU 3\n3.3 Cuối tuần: không có chế độ nghỉ riêng", true, true, WeekendRuleNoSeparateOff},
		{"rest", "ĐIỀU 3\n3.3 Bảo vệ được nghỉ vào Chủ nhật", false, false, WeekendRuleRestDays},
		{"saturday only", "ĐIỀU 3\n3.3 Làm việc cả thứ 7", true, false, WeekendRuleDaysMentioned},
		{"neither mentioned", "ĐIỀU 3\n3.3 Cuối tuần: theo lịch trực", true, true, WeekendRuleDaysMentioned},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := extractWeekendPolicy(NewSectionIndex(tt.text, 5000))
			assert.Equal(t, tt.sat, p.Saturday)
			assert.Equal(t, tt.sun, p.Sunday)
			assert.Equal(t, tt.rule, p.Rule)
		})
	}
}

func TestExtractAppliesOnHolidays(t *testing.T) {
	assert.True(t, extractAppliesOnHolidays(NewSectionIndex("không có điều 3", 5000)))
	assert.False(t, extractAppliesOnHolidays(NewSectionIndex("ĐIỀU 3\n3.2 Bảo vệ không làm việc vào các ngày lễ, tết.", 5000)))
	assert.True(t, extractAppliesOnHolidays(NewSectionIndex("ĐIỀU 3\n3.4 Ngày lễ: bảo vệ vẫn trực bình thường.", 5000)))
}

func TestExtractTet_SanityChecks(t *testing.T) {
	anchor := date(2025, 6, 1)
	tests := []struct {
		name string
		text string
		ok   bool
	}{
		{"valid", "Tết Nguyên Đán: từ 14/02/2026 đến 22/02/2026", true},
		{"solar new year one day", "Tết: từ 01/01/2026 đến 01/01/2026", false},
		{"starts on jan 1", "Nghỉ Tết từ 01/01/2026 đến 05/01/2026", false},
		{"too short", "Tết: 10/02/2026 - 11/02/2026", false},
		{"too long", "Tết: 01/02/2026 - 20/02/2026", false},
		{"after february", "Tết: 02/03/2026 - 06/03/2026", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, ok, _ := extractTet(tt.text, anchor)
			assert.Equal(t, tt.ok, ok)
			if ok {
				assert.True(t, h.IsTet)
			}
		})
	}
}

func TestExtractTet_YearInferredFromEnd(t *testing.T) {
	h, ok, _ := extractTet("Tết Âm lịch: từ 28/01 đến 03/02/2026", date(2025, 6, 1))
	require.True(t, ok)
	assert.Equal(t, date(2026, 1, 28), h.Date)
	assert.Equal(t, date(2026, 2, 3), *h.EndDate)
	assert.Equal(t, 7, h.TotalDays)
}

func TestExtractTet_SkipsSolarNewYearLine(t *testing.T) {
	text := "Tết Dương lịch 01/01/2026, Tết Nguyên Đán từ 28/01/2026 đến 03/02/2026"
	h, ok, _ := extractTet(text, date(2025, 6, 1))
	require.True(t, ok)
	assert.Equal(t, date(2026, 1, 28), h.Date)
}

func TestExtractHolidays_LiteralDatesNeedDedicatedClause(t *testing.T) {
	anchor := date(2025, 1, 1)

	dedicated := extractHolidays(NewSectionIndex("ĐIỀU 3\n3.4 Ngày nghỉ: 30/4, 01/05", 5000), anchor)
	assert.Len(t, dedicated.holidays, 2)

	loose := extractHolidays(NewSectionIndex("Hiệu lực từ 01/05/2025", 5000), anchor)
	assert.Empty(t, loose.holidays)
}

func TestExtractHungKings_SkipsLunarDates(t *testing.T) {
	anchor := date(2026, 1, 1)

	h, ok := extractHungKings("- Giỗ Tổ Hùng Vương (10/3 âm lịch): 18/04/2026", anchor)
	require.True(t, ok)
	assert.Equal(t, date(2026, 4, 18), h.Date)

	h, ok = extractHungKings("- Giỗ Tổ Hùng Vương: 18/04/2026 (tức 10/3 âm lịch)", anchor)
	require.True(t, ok)
	assert.Equal(t, date(2026, 4, 18), h.Date)

	_, ok = extractHungKings("- Giỗ Tổ Hùng Vương: 10/3 (AL)\n- Quốc khánh: 02/09", anchor)
	assert.False(t, ok)
}

func TestExtractSubstituteDays(t *testing.T) {
	idx := NewSectionIndex("ĐIỀU 3\n3.4 Lễ:\n- Tết: từ 28/01/2026 đến 03/02/2026\n- Nghỉ bù ngày 31/01/2026 và 07/02/2026\n", 5000)
	tet, _, _ := extractTet("Tết: từ 28/01/2026 đến 03/02/2026", date(2025, 6, 1))

	subs := extractSubstituteDays(idx, date(2025, 6, 1), []HolidaySpec{tet})
	require.Len(t, subs, 1)
	assert.Equal(t, date(2026, 2, 7), subs[0].Date)

	assert.Equal(t, 0, NearestHoliday(subs[0].Date, []HolidaySpec{tet}, 7))
	assert.Equal(t, -1, NearestHoliday(date(2026, 2, 20), []HolidaySpec{tet}, 7))
}

func TestClassify(t *testing.T) {
	d := func(y, m, dd int) *time.Time { v := date(y, m, dd); return &v }

	tests := []struct {
		name       string
		start, end *time.Time
		text       string
		wantType   string
		wantMonths int
		autoGen    bool
		renewable  bool
	}{
		{"one day", d(2025, 6, 1), d(2025, 6, 2), "", TypeOneDay, 1, false, false},
		{"weekly", d(2025, 6, 1), d(2025, 6, 7), "", TypeWeekly, 1, true, false},
		{"monthly", d(2025, 6, 1), d(2025, 6, 30), "", TypeMonthly, 1, true, false},
		{"short term", d(2025, 6, 1), d(2025, 10, 1), "", TypeShortTerm, 5, true, true},
		{"long term", d(2025, 6, 1), d(2026, 5, 31), "", TypeLongTerm, 12, true, true},
		{"open ended", d(2025, 6, 1), nil, "", TypeLongTerm, 12, true, true},
		{"keyword beats dates", d(2025, 6, 1), d(2025, 6, 30), "hợp đồng dài hạn", TypeLongTerm, 1, true, true},
		{"event keyword", d(2025, 6, 1), d(2026, 5, 31), "bảo vệ sự kiện ra mắt", TypeEvent, 12, false, false},
		{"force majeure is not an event", d(2025, 6, 1), d(2026, 5, 31), "sự kiện bất khả kháng", TypeLongTerm, 12, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Classify(tt.start, tt.end, tt.text)
			assert.Equal(t, tt.wantType, c.ContractType)
			assert.Equal(t, tt.wantMonths, c.DurationMonths)
			assert.Equal(t, tt.autoGen, c.AutoGenerateShifts)
			assert.Equal(t, tt.renewable, c.IsRenewable)
		})
	}
}

func TestClassify_AutoRenewalKeepsScanning(t *testing.T) {
	c := Classify(nil, nil, "tự động gia hạn; hợp đồng theo sự kiện")
	assert.Equal(t, TypeOneDay, c.ContractType)
	assert.True(t, c.AutoRenewal)

	c = Classify(nil, nil, "hợp đồng tự động gia hạn mỗi năm")
	assert.Equal(t, TypeLongTerm, c.ContractType)
	assert.True(t, c.AutoRenewal)
	assert.True(t, c.IsRenewable)
	assert.Equal(t, DefaultAdvanceGenerationDays, c.AdvanceGenerationDays)
}
