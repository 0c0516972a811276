package contractimport

import (
	"fmt"

	"github.com/Vietanh2703/BASMS-BE-sub000/internal/contractparse"
	"github.com/Vietanh2703/BASMS-BE-sub000/internal/shared/apperror"

	"github.com/google/uuid"
)

type ImportRequest struct {
	// FileReference locates the source in the object store. It is ignored
	// when Content is set, except for source cleanup.
	FileReference string
	FileName      string
	Content       []byte
	UploadedBy    string

	// RequireExistingCustomer fails the import instead of creating a customer.
	RequireExistingCustomer bool
}

// ExtractedIdentity echoes the customer fields read from the document.
type ExtractedIdentity struct {
	Name           *string `json:"name,omitempty"`
	Address        *string `json:"address,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	Email          *string `json:"email,omitempty"`
	IdentityNumber *string `json:"identity_number,omitempty"`
	ContactName    *string `json:"contact_name,omitempty"`
	ContactTitle   *string `json:"contact_title,omitempty"`
}

type ImportResult struct {
	Success      bool   `json:"success"`
	ErrorCode    string `json:"error_code,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`

	ContractID       *uuid.UUID  `json:"contract_id,omitempty"`
	CustomerID       *uuid.UUID  `json:"customer_id,omitempty"`
	CustomerCode     string      `json:"customer_code,omitempty"`
	CustomerCreated  bool        `json:"customer_created"`
	LocationIDs      []uuid.UUID `json:"location_ids"`
	ShiftScheduleIDs []uuid.UUID `json:"shift_schedule_ids"`

	ContractNumber   string `json:"contract_number,omitempty"`
	ContractType     string `json:"contract_type,omitempty"`
	CustomerName     string `json:"customer_name,omitempty"`
	LocationsCreated int    `json:"locations_created"`
	SchedulesCreated int    `json:"schedules_created"`
	HolidaysCreated  int    `json:"holidays_created"`

	RawText           string             `json:"raw_text,omitempty"`
	Warnings          []string           `json:"warnings"`
	ConfidenceScore   int                `json:"confidence_score"`
	ExtractedIdentity *ExtractedIdentity `json:"extracted_identity,omitempty"`
}

func newResult() *ImportResult {
	return &ImportResult{
		LocationIDs:      []uuid.UUID{},
		ShiftScheduleIDs: []uuid.UUID{},
		Warnings:         []string{},
	}
}

func (r *ImportResult) warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// fail marks the result as failed. Unknown errors surface as INTERNAL_ERROR
// without their message.
func (r *ImportResult) fail(err error) {
	httpErr := apperror.ToHTTP(err)
	r.Success = false
	r.ErrorCode = httpErr.Code
	r.ErrorMessage = httpErr.Message
}

func identityOf(p contractparse.PartyFields) *ExtractedIdentity {
	return &ExtractedIdentity{
		Name:           p.Name,
		Address:        p.Address,
		Phone:          p.Phone,
		Email:          p.Email,
		IdentityNumber: p.IdentityNumber,
		ContactName:    p.ContactName,
		ContactTitle:   p.ContactTitle,
	}
}
