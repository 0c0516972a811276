package contractparse

import (
	"fmt"
	"time"
)

// ExtractedFields is everything pulled out of one contract text. Every field
// is optional; absent values stay nil and usually leave a warning behind.
type ExtractedFields struct {
	ContractNumber *string
	StartDate      *time.Time
	EndDate        *time.Time

	Customer PartyFields
	Location LocationFields

	GuardsRequired *int
	CoverageType   *string

	Shifts            []ShiftSpec
	Weekend           WeekendPolicy
	AppliesOnHolidays bool

	Holidays       []HolidaySpec
	SubstituteDays []SubstituteSpec

	Classification Classification

	Warnings []string
}

func (f *ExtractedFields) warn(format string, args ...any) {
	f.Warnings = append(f.Warnings, fmt.Sprintf(format, args...))
}

// PartyFields describes the customer side ("Bên B") of the contract.
type PartyFields struct {
	Name           *string
	Address        *string
	Phone          *string
	Email          *string
	IdentityNumber *string
	ContactName    *string
	ContactTitle   *string
	Gender         *string
}

type LocationFields struct {
	Name    *string
	Address *string
	// AddressFromCustomer is set when no site address was found and the
	// customer's own address was used instead.
	AddressFromCustomer bool
}

// TimeOfDay is a wall-clock time without date, minute precision.
type TimeOfDay struct {
	Hour   int
	Minute int
}

func (t TimeOfDay) Minutes() int { return t.Hour*60 + t.Minute }

func (t TimeOfDay) String() string { return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute) }

type ShiftSpec struct {
	Name            string
	Label           string
	Start           TimeOfDay
	End             TimeOfDay
	CrossesMidnight bool
	DurationHours   float64

	Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday bool
	AppliesOnHolidays                                               bool
}

// IsWeekendShift reports whether the shift only runs on Saturday and Sunday.
func (s ShiftSpec) IsWeekendShift() bool { return s.Name == ShiftWeekend }

type WeekendPolicy struct {
	ClausePresent bool
	Saturday      bool
	Sunday        bool
	// Rule names the cascade step that decided the policy.
	Rule string
}

type HolidaySpec struct {
	Name      string
	Category  string
	Date      time.Time
	EndDate   *time.Time
	IsTet     bool
	TotalDays int
}

// Last returns the final day covered by the holiday.
func (h HolidaySpec) Last() time.Time {
	if h.EndDate != nil {
		return *h.EndDate
	}
	return h.Date
}

// Covers reports whether d falls inside the holiday span.
func (h HolidaySpec) Covers(d time.Time) bool {
	return !d.Before(h.Date) && !d.After(h.Last())
}

type SubstituteSpec struct {
	Date   time.Time
	Reason string
}

type Classification struct {
	ContractType          string
	ServiceScope          string
	DurationMonths        int
	AutoGenerateShifts    bool
	AdvanceGenerationDays int
	IsRenewable           bool
	AutoRenewal           bool
}
