package counter

import "time"

type Counter struct {
	Scope       string    `gorm:"type:varchar(64);primaryKey"`
	CounterType string    `gorm:"type:varchar(64);primaryKey"`
	LastValue   int64     `gorm:"not null;default:0"`
	UpdatedAt   time.Time `gorm:"not null"`
}

func (Counter) TableName() string { return "counters" }
