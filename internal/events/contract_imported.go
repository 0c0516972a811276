package events

import "time"

const (
	ContractImportedTopic     = "contracts.imported.v1"
	ContractImportedEventType = "contract.imported"
)

type ContractImportedEvent struct {
	EventType        string    `json:"event_type"`
	RequestID        string    `json:"request_id,omitempty"`
	ContractID       string    `json:"contract_id"`
	ContractNumber   string    `json:"contract_number"`
	CustomerID       string    `json:"customer_id"`
	CustomerCreated  bool      `json:"customer_created"`
	ContractType     string    `json:"contract_type"`
	StartDate        string    `json:"start_date"`
	EndDate          string    `json:"end_date,omitempty"`
	LocationIDs      []string  `json:"location_ids"`
	ShiftScheduleIDs []string  `json:"shift_schedule_ids"`
	AutoGenerate     bool      `json:"auto_generate_shifts"`
	SourceFileName   string    `json:"source_file_name"`
	ImportedBy       string    `json:"imported_by,omitempty"`
	OccurredAt       time.Time `json:"occurred_at"`
}
