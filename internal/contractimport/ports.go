package contractimport

import (
	"context"

	"github.com/Vietanh2703/BASMS-BE-sub000/internal/contract"
	"github.com/Vietanh2703/BASMS-BE-sub000/internal/contractparse"
	"github.com/Vietanh2703/BASMS-BE-sub000/internal/docextract"

	"github.com/google/uuid"
)

//go:generate mockgen -source=ports.go -destination=mock/ports_mock.go -package=mock

// ObjectStore fetches and removes uploaded source documents.
type ObjectStore interface {
	Download(ctx context.Context, ref string) ([]byte, error)
	// Delete reports whether an object was actually removed.
	Delete(ctx context.Context, ref string) (bool, error)
}

type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Geocoder returns nil coordinates, without error, for an address it cannot
// place.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*Coordinates, error)
}

type AccountRequest struct {
	Email    string
	FullName string
	Phone    string
	Address  string
}

type ProvisionedAccount struct {
	UserID uuid.UUID
	// Password is empty when the account already existed.
	Password string
	Created  bool
}

type AccountProvisioner interface {
	CreateAccount(ctx context.Context, req AccountRequest) (*ProvisionedAccount, error)
}

type LoginInfo struct {
	UserID         uuid.UUID
	CustomerName   string
	Email          string
	Password       string
	ContractNumber string
}

type Notifier interface {
	SendLoginInfo(ctx context.Context, info LoginInfo) error
}

type TextExtractor interface {
	Extract(ctx context.Context, data []byte, fileName string) (*docextract.Document, error)
}

type ContractPersister interface {
	Persist(ctx context.Context, req contract.PersistRequest) (contract.PersistResult, error)
}

type FieldParser interface {
	Parse(ctx context.Context, text string) (*contractparse.ExtractedFields, error)
}
