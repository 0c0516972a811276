package customer

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Vietanh2703/BASMS-BE-sub000/internal/shared/connection"
	"github.com/Vietanh2703/BASMS-BE-sub000/internal/shared/dbutil"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const insertSavepoint = "customer_insert"

// Repository finders return (nil, nil) when no row matches.
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindByEmail(ctx context.Context, email string) (*Customer, error)
	FindByIdentityNumber(ctx context.Context, identityNumber string) (*Customer, error)
	FindByPhone(ctx context.Context, phone string) (*Customer, error)
	Create(ctx context.Context, c *Customer) error
	Update(ctx context.Context, id uuid.UUID, fields map[string]any) error
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

func (r *repository) FindByEmail(ctx context.Context, email string) (*Customer, error) {
	return r.findOne(ctx, "lower(email) = lower(?)", email)
}

func (r *repository) FindByIdentityNumber(ctx context.Context, identityNumber string) (*Customer, error) {
	return r.findOne(ctx, "identity_number = ?", identityNumber)
}

func (r *repository) FindByPhone(ctx context.Context, phone string) (*Customer, error) {
	return r.findOne(ctx, "phone = ?", phone)
}

func (r *repository) findOne(ctx context.Context, query string, arg string) (*Customer, error) {
	var c Customer
	err := r.db.WithContext(ctx).
		Where(query, arg).
		Order("created_at ASC").
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts c. Inside a transaction the insert runs under a savepoint so
// a unique violation leaves the outer transaction usable for the re-query.
func (r *repository) Create(ctx context.Context, c *Customer) error {
	if !r.inTx {
		return r.db.WithContext(ctx).Create(c).Error
	}

	return dbutil.WithSavepoint(ctx, r.db, insertSavepoint, func(db *gorm.DB) error {
		return db.Create(c).Error
	})
}

// Update writes only the given columns of customer id.
func (r *repository) Update(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&Customer{}).
		Where("id = ?", id).
		Updates(fields).Error
}
