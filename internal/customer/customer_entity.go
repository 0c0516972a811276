package customer

import (
	"time"

	"github.com/google/uuid"
)

const (
	GenderMale   = "male"
	GenderFemale = "female"
)

type Customer struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code               string    `gorm:"uniqueIndex:uq_customers_code;not null"`
	Name               string    `gorm:"not null"`
	Address            *string
	Phone              *string `gorm:"uniqueIndex:uq_customers_phone"`
	Email              *string `gorm:"uniqueIndex:uq_customers_email"`
	IdentityNumber     *string `gorm:"uniqueIndex:uq_customers_identity_number"`
	Gender             *string
	ContactPersonName  *string
	ContactPersonTitle *string
	UserID             *uuid.UUID `gorm:"type:uuid"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (Customer) TableName() string { return "customers" }
