package kafka

import "time"

// OutboxRecord is the schema of outbox_events, used for migrations only.
// Reads and writes go through OutboxRepository.
type OutboxRecord struct {
	ID            string `gorm:"type:uuid;primaryKey"`
	RequestID     *string
	AggregateType string `gorm:"not null"`
	AggregateID   string `gorm:"type:uuid;not null"`
	EventType     string `gorm:"not null"`
	Topic         string `gorm:"not null"`
	Payload       []byte `gorm:"type:jsonb;not null"`
	Status        string `gorm:"not null;index:idx_outbox_status_created"`
	RetryCount    int    `gorm:"not null;default:0"`
	ErrorMessage  *string
	NextRetryAt   *time.Time
	ProcessedAt   *time.Time
	CreatedAt     time.Time `gorm:"index:idx_outbox_status_created"`
	UpdatedAt     time.Time
}

func (OutboxRecord) TableName() string { return "outbox_events" }
