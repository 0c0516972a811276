package dbutil

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// WithSavepoint runs fn under a named savepoint on db, which must be bound to
// an open transaction. On failure the savepoint is rolled back so the outer
// transaction stays usable; Postgres otherwise aborts it on the first error.
func WithSavepoint(ctx context.Context, db *gorm.DB, name string, fn func(db *gorm.DB) error) error {
	db = db.WithContext(ctx)

	if err := db.Exec("SAVEPOINT " + name).Error; err != nil {
		return err
	}
	if err := fn(db); err != nil {
		if rbErr := db.Exec("ROLLBACK TO SAVEPOINT " + name).Error; rbErr != nil {
			return errors.Join(err, rbErr)
		}
		return err
	}
	return db.Exec("RELEASE SAVEPOINT " + name).Error
}
