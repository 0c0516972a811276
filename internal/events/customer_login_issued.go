package events

import "time"

const (
	CustomerLoginIssuedTopic     = "customer.login_issued"
	CustomerLoginIssuedEventType = "customer.login_issued"
)

// CustomerLoginIssuedEvent carries a freshly generated password. It is
// published straight to the broker and never written to the outbox table.
type CustomerLoginIssuedEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id,omitempty"`
	UserID       string    `json:"user_id"`
	Email        string    `json:"email"`
	CustomerName string    `json:"customer_name"`
	Password     string    `json:"password"`
	LoginURL     string    `json:"login_url,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}
