package contract

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusDraft = "draft"

	PeriodInitial = "initial"
	PeriodRenewal = "renewal"
)

type Contract struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID            uuid.UUID `gorm:"type:uuid;index;not null"`
	ContractNumber        string    `gorm:"index;not null"`
	ContractTitle         string
	ContractType          string `gorm:"not null"`
	ServiceScope          string `gorm:"not null"`
	CoverageType          *string
	StartDate             time.Time  `gorm:"type:date;not null"`
	EndDate               *time.Time `gorm:"type:date"`
	DurationMonths        int
	Status                string `gorm:"not null;default:draft"`
	AutoGenerateShifts    bool
	AdvanceGenerationDays int
	IsRenewable           bool
	AutoRenewal           bool
	SourceFileName        string
	SourceFileReference   *string
	ImportedBy            *string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

func (Contract) TableName() string { return "contracts" }

type ContractPeriod struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ContractID      uuid.UUID  `gorm:"type:uuid;index;not null"`
	PeriodNumber    int        `gorm:"not null"`
	PeriodType      string     `gorm:"not null"`
	PeriodStartDate time.Time  `gorm:"type:date;not null"`
	PeriodEndDate   *time.Time `gorm:"type:date"`
	IsCurrentPeriod bool
	CreatedAt       time.Time
}

func (ContractPeriod) TableName() string { return "contract_periods" }

type CustomerLocation struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID   uuid.UUID `gorm:"type:uuid;index;not null"`
	LocationName string    `gorm:"not null"`
	Address      *string
	Latitude     *float64
	Longitude    *float64
	IsGeocoded   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (CustomerLocation) TableName() string { return "customer_locations" }

type ContractLocation struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	ContractID     uuid.UUID `gorm:"type:uuid;index;not null"`
	LocationID     uuid.UUID `gorm:"type:uuid;not null"`
	GuardsRequired int
	CoverageType   string
	IsPrimary      bool
	CreatedAt      time.Time
}

func (ContractLocation) TableName() string { return "contract_locations" }

type ContractShiftSchedule struct {
	ID                      uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ContractID              uuid.UUID  `gorm:"type:uuid;index;not null"`
	LocationID              *uuid.UUID `gorm:"type:uuid"`
	ScheduleName            string
	ShiftStartTime          string `gorm:"type:varchar(5)"`
	ShiftEndTime            string `gorm:"type:varchar(5)"`
	AppliesMonday           bool
	AppliesTuesday          bool
	AppliesWednesday        bool
	AppliesThursday         bool
	AppliesFriday           bool
	AppliesSaturday         bool
	AppliesSunday           bool
	AppliesOnPublicHolidays bool
	CrossesMidnight         bool
	DurationHours           float64
	GuardsPerShift          int
	CreatedAt               time.Time
}

func (ContractShiftSchedule) TableName() string { return "contract_shift_schedules" }

type PublicHoliday struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	HolidayDate      time.Time  `gorm:"type:date;uniqueIndex:uq_public_holidays_date_year;not null"`
	HolidayEndDate   *time.Time `gorm:"type:date"`
	HolidayName      string     `gorm:"not null"`
	HolidayCategory  string
	Year             int `gorm:"uniqueIndex:uq_public_holidays_date_year;not null"`
	IsTetHoliday     bool
	TotalHolidayDays int
	CreatedAt        time.Time
}

func (PublicHoliday) TableName() string { return "public_holidays" }

type HolidaySubstituteWorkDay struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	HolidayID      *uuid.UUID `gorm:"type:uuid;index"`
	ContractID     uuid.UUID  `gorm:"type:uuid;index;not null"`
	SubstituteDate time.Time  `gorm:"type:date;not null"`
	Year           int
	Reason         string
	CreatedAt      time.Time
}

func (HolidaySubstituteWorkDay) TableName() string { return "holiday_substitute_work_days" }

// Models lists every table owned by this package, for auto-migration.
func Models() []any {
	return []any{
		&Contract{},
		&ContractPeriod{},
		&CustomerLocation{},
		&ContractLocation{},
		&ContractShiftSchedule{},
		&PublicHoliday{},
		&HolidaySubstituteWorkDay{},
	}
}
