package contract

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Vietanh2703/BASMS-BE-sub000/internal/shared/connection"
	"github.com/Vietanh2703/BASMS-BE-sub000/internal/shared/dbutil"

	"gorm.io/gorm"
)

const holidaySavepoint = "public_holiday_insert"

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	CreateContract(ctx context.Context, c *Contract) error
	CreatePeriod(ctx context.Context, p *ContractPeriod) error
	CreateCustomerLocation(ctx context.Context, l *CustomerLocation) error
	CreateContractLocation(ctx context.Context, l *ContractLocation) error
	CreateShiftSchedule(ctx context.Context, s *ContractShiftSchedule) error
	FindHolidayByDate(ctx context.Context, date time.Time, year int) (*PublicHoliday, error)
	CreateHoliday(ctx context.Context, h *PublicHoliday) error
	CreateSubstituteDay(ctx context.Context, d *HolidaySubstituteWorkDay) error
}

type repository struct {
	db   *gorm.DB
	inTx bool
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db:   connection.BindTx(r.db, tx),
		inTx: tx != nil,
	}
}

func (r *repository) CreateContract(ctx context.Context, c *Contract) error {
	return r.db.WithContext(ctx).Create(c).Error
}

// CreatePeriod makes p the only current period of its contract. Earlier
// periods are retired first; a zero PeriodNumber is assigned the next one.
func (r *repository) CreatePeriod(ctx context.Context, p *ContractPeriod) error {
	db := r.db.WithContext(ctx)

	if p.PeriodNumber == 0 {
		var last int
		if err := db.Model(&ContractPeriod{}).
			Where("contract_id = ?", p.ContractID).
			Select("COALESCE(MAX(period_number), 0)").
			Scan(&last).Error; err != nil {
			return err
		}
		p.PeriodNumber = last + 1
	}

	if err := db.Model(&ContractPeriod{}).
		Where("contract_id = ? AND is_current_period = ?", p.ContractID, true).
		Update("is_current_period", false).Error; err != nil {
		return err
	}

	p.IsCurrentPeriod = true
	return db.Create(p).Error
}

func (r *repository) CreateCustomerLocation(ctx context.Context, l *CustomerLocation) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) CreateContractLocation(ctx context.Context, l *ContractLocation) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) CreateShiftSchedule(ctx context.Context, s *ContractShiftSchedule) error {
	return r.db.WithContext(ctx).Create(s).Error
}

// FindHolidayByDate returns nil when the calendar has no holiday starting on
// date in year.
func (r *repository) FindHolidayByDate(ctx context.Context, date time.Time, year int) (*PublicHoliday, error) {
	var h PublicHoliday
	err := r.db.WithContext(ctx).
		Where("holiday_date = ? AND year = ?", date, year).
		First(&h).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// CreateHoliday runs under a savepoint inside a transaction; the calendar
// is shared between contracts, so concurrent imports can collide on it.
func (r *repository) CreateHoliday(ctx context.Context, h *PublicHoliday) error {
	if !r.inTx {
		return r.db.WithContext(ctx).Create(h).Error
	}
	return dbutil.WithSavepoint(ctx, r.db, holidaySavepoint, func(db *gorm.DB) error {
		return db.Create(h).Error
	})
}

func (r *repository) CreateSubstituteDay(ctx context.Context, d *HolidaySubstituteWorkDay) error {
	return r.db.WithContext(ctx).Create(d).Error
}
