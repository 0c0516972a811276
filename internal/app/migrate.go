package app

import (
	"github.com/Vietanh2703/BASMS-BE-sub000/internal/account"
	"github.com/Vietanh2703/BASMS-BE-sub000/internal/contract"
	"github.com/Vietanh2703/BASMS-BE-sub000/internal/customer"
	"github.com/Vietanh2703/BASMS-BE-sub000/internal/messaging/kafka"
	"github.com/Vietanh2703/BASMS-BE-sub000/internal/shared/counter"

	"gorm.io/gorm"
)

// Models lists every table the import service owns, in creation order.
func Models() []any {
	models := []any{
		&counter.Counter{},
		&account.User{},
		&customer.Customer{},
	}
	models = append(models, contract.Models()...)
	return append(models, &kafka.OutboxRecord{})
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
