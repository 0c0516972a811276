package contractimport

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Vietanh2703/BASMS-BE-sub000/internal/contract"
	contractimporterrors "github.com/Vietanh2703/BASMS-BE-sub000/internal/contractimport/errors"
	"github.com/Vietanh2703/BASMS-BE-sub000/internal/contractparse"
	"github.com/Vietanh2703/BASMS-BE-sub000/internal/customer"
	customererrors "github.com/Vietanh2703/BASMS-BE-sub000/internal/customer/errors"
	"github.com/Vietanh2703/BASMS-BE-sub000/internal/docextract"
	"github.com/Vietanh2703/BASMS-BE-sub000/internal/shared/apperror"
	"github.com/Vietanh2703/BASMS-BE-sub000/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const generatedNumberPrefix = "IMPORT-"

type Service interface {
	Import(ctx context.Context, req ImportRequest) (*ImportResult, error)
}

type Option func(*service)

func WithObjectStore(store ObjectStore) Option {
	return func(s *service) { s.store = store }
}

func WithGeocoder(g Geocoder) Option {
	return func(s *service) { s.geocoder = g }
}

func WithAccountProvisioner(p AccountProvisioner) Option {
	return func(s *service) { s.accounts = p }
}

func WithNotifier(n Notifier) Option {
	return func(s *service) { s.notifier = n }
}

// WithDeleteSource removes the source object after a successful import.
func WithDeleteSource(enabled bool) Option {
	return func(s *service) { s.deleteSource = enabled }
}

func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *service) {
		if l != nil {
			s.logger = l.Named("contractimport.service")
		}
	}
}

type service struct {
	extractor TextExtractor
	parser    FieldParser
	persister ContractPersister

	store    ObjectStore
	geocoder Geocoder
	accounts AccountProvisioner
	notifier Notifier

	deleteSource bool
	now          func() time.Time
	logger       *zap.Logger
}

// NewService builds the import pipeline. The collaborators passed as options
// are optional; a missing one skips its step.
func NewService(extractor TextExtractor, parser FieldParser, persister ContractPersister, opts ...Option) Service {
	s := &service{
		extractor: extractor,
		parser:    parser,
		persister: persister,
		now:       time.Now,
		logger:    zap.L().Named("contractimport.service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Import runs one document through extraction, persistence and scoring. The
// returned result is never nil; a non-nil error means Success is false.
func (s *service) Import(ctx context.Context, req ImportRequest) (*ImportResult, error) {
	rid := contextutil.GetRequestID(ctx)
	log := contextutil.GetLogger(ctx, s.logger).With(
		zap.String("request_id", rid),
		zap.String("file_name", req.FileName),
	)
	res := newResult()

	fail := func(stage string, err error) (*ImportResult, error) {
		res.fail(err)
		log.Warn("contract import failed",
			zap.String("stage", stage),
			zap.String("code", res.ErrorCode),
			zap.Error(err),
		)
		return res, err
	}

	if _, err := docextract.DetectFormat(req.FileName); err != nil {
		return fail("detect_format", err)
	}

	content, err := s.load(ctx, req)
	if err != nil {
		return fail("download", err)
	}

	doc, err := s.extractor.Extract(ctx, content, req.FileName)
	if err != nil {
		return fail("extract", err)
	}
	res.RawText = doc.Text
	res.Warnings = append(res.Warnings, doc.Warnings...)

	fields, err := s.parser.Parse(ctx, doc.Text)
	if err != nil {
		return fail("parse", err)
	}
	res.Warnings = append(res.Warnings, fields.Warnings...)
	res.ExtractedIdentity = identityOf(fields.Customer)
	res.ContractType = fields.Classification.ContractType

	name := strings.TrimSpace(deref(fields.Customer.Name))
	if name == "" {
		return fail("validate", customererrors.ErrMissingCustomerName)
	}
	res.CustomerName = name

	identity := identityFor(fields.Customer, name)
	account := s.provisionAccount(ctx, log, fields.Customer, name, res)
	if account != nil {
		uid := account.UserID
		identity.UserID = &uid
	}

	coords := s.geocode(ctx, log, fields, res)

	number := strings.TrimSpace(deref(fields.ContractNumber))
	if number == "" {
		number = s.generateNumber()
		res.warn("contract number generated: %s", number)
	}
	res.ContractNumber = number

	start := s.today()
	if fields.StartDate != nil {
		start = *fields.StartDate
	} else {
		res.warn("start date defaulted to import date %s", start.Format(time.DateOnly))
	}

	persisted, err := s.persister.Persist(ctx, contract.PersistRequest{
		Fields:          fields,
		Customer:        identity,
		ResolveOptions:  customer.ResolveOptions{RequireExisting: req.RequireExistingCustomer},
		ContractNumber:  number,
		StartDate:       start,
		SourceFileName:  req.FileName,
		SourceReference: req.FileReference,
		ImportedBy:      req.UploadedBy,
		Coordinates:     coords,
	})
	if err != nil {
		return fail("persist", err)
	}

	contractID, customerID := persisted.ContractID, persisted.CustomerID
	res.Success = true
	res.ContractID = &contractID
	res.CustomerID = &customerID
	res.CustomerCode = persisted.CustomerCode
	res.CustomerCreated = persisted.CustomerCreated
	res.LocationIDs = append(res.LocationIDs, persisted.LocationIDs...)
	res.ShiftScheduleIDs = append(res.ShiftScheduleIDs, persisted.ShiftScheduleIDs...)
	res.LocationsCreated = len(persisted.LocationIDs)
	res.SchedulesCreated = len(persisted.ShiftScheduleIDs)
	res.HolidaysCreated = persisted.HolidaysCreated
	res.Warnings = append(res.Warnings, persisted.Warnings...)
	res.ConfidenceScore = Score(scoreInput(fields, res.SchedulesCreated))

	if account != nil && account.Password != "" {
		s.notify(ctx, log, LoginInfo{
			UserID:         account.UserID,
			CustomerName:   name,
			Email:          deref(fields.Customer.Email),
			Password:       account.Password,
			ContractNumber: number,
		}, res)
	}

	if s.deleteSource {
		s.cleanup(ctx, log, req.FileReference, res)
	}

	log.Info("contract import success",
		zap.String("contract_id", contractID.String()),
		zap.String("customer_id", customerID.String()),
		zap.Int("confidence_score", res.ConfidenceScore),
		zap.Int("warnings", len(res.Warnings)),
	)
	return res, nil
}

func (s *service) load(ctx context.Context, req ImportRequest) ([]byte, error) {
	if len(req.Content) > 0 {
		return req.Content, nil
	}
	if strings.TrimSpace(req.FileReference) == "" {
		return nil, contractimporterrors.ErrMissingSource
	}
	if s.store == nil {
		return nil, contractimporterrors.ErrSourceUnavailable
	}

	data, err := s.store.Download(ctx, req.FileReference)
	if err != nil {
		if _, ok := apperror.As(err); ok {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", contractimporterrors.ErrSourceUnavailable, err)
	}
	return data, nil
}

func (s *service) provisionAccount(
	ctx context.Context,
	log *zap.Logger,
	p contractparse.PartyFields,
	name string,
	res *ImportResult,
) *ProvisionedAccount {
	email := strings.TrimSpace(deref(p.Email))
	if email == "" || s.accounts == nil {
		return nil
	}

	account, err := s.accounts.CreateAccount(ctx, AccountRequest{
		Email:    email,
		FullName: name,
		Phone:    deref(p.Phone),
		Address:  deref(p.Address),
	})
	if err != nil {
		log.Warn("account provisioning failed", zap.String("email", email), zap.Error(err))
		res.warn("customer account could not be created: %v", err)
		return nil
	}
	return account
}

// geocode only runs when a site will be created.
func (s *service) geocode(
	ctx context.Context,
	log *zap.Logger,
	f *contractparse.ExtractedFields,
	res *ImportResult,
) *contract.Coordinates {
	address := strings.TrimSpace(deref(f.Location.Address))
	if s.geocoder == nil || address == "" || f.GuardsRequired == nil || *f.GuardsRequired <= 0 {
		return nil
	}

	c, err := s.geocoder.Geocode(ctx, address)
	if err != nil {
		log.Warn("geocoding failed", zap.String("address", address), zap.Error(err))
		res.warn("location could not be geocoded: %v", err)
		return nil
	}
	if c == nil {
		res.warn("location address %q could not be placed on the map", address)
		return nil
	}
	return &contract.Coordinates{Latitude: c.Latitude, Longitude: c.Longitude}
}

func (s *service) notify(ctx context.Context, log *zap.Logger, info LoginInfo, res *ImportResult) {
	if s.notifier == nil {
		res.warn("login details for %s were not sent: no notifier configured", info.Email)
		return
	}
	if err := s.notifier.SendLoginInfo(ctx, info); err != nil {
		log.Warn("login notification failed", zap.String("email", info.Email), zap.Error(err))
		res.warn("login details for %s were not sent: %v", info.Email, err)
	}
}

func (s *service) cleanup(ctx context.Context, log *zap.Logger, ref string, res *ImportResult) {
	if s.store == nil || strings.TrimSpace(ref) == "" {
		return
	}
	deleted, err := s.store.Delete(ctx, ref)
	if err != nil {
		log.Warn("source cleanup failed", zap.String("file_reference", ref), zap.Error(err))
		res.warn("source document was not deleted: %v", err)
		return
	}
	if !deleted {
		log.Debug("source already removed", zap.String("file_reference", ref))
	}
}

func (s *service) today() time.Time {
	now := s.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// generateNumber yields IMPORT-yyyymmdd-XXXXXXXX.
func (s *service) generateNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return generatedNumberPrefix + s.now().UTC().Format("20060102") + "-" + suffix
}

func identityFor(p contractparse.PartyFields, name string) customer.Identity {
	return customer.Identity{
		Name:           name,
		Address:        p.Address,
		Phone:          p.Phone,
		Email:          p.Email,
		IdentityNumber: p.IdentityNumber,
		Gender:         p.Gender,
		ContactName:    p.ContactName,
		ContactTitle:   p.ContactTitle,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
