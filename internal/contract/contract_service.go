package contract

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	contracterrors "github.com/Vietanh2703/BASMS-BE-sub000/internal/contract/errors"
	"github.com/Vietanh2703/BASMS-BE-sub000/internal/contractparse"
	"github.com/Vietanh2703/BASMS-BE-sub000/internal/customer"
	"github.com/Vietanh2703/BASMS-BE-sub000/internal/events"
	"github.com/Vietanh2703/BASMS-BE-sub000/internal/messaging/kafka"
	"github.com/Vietanh2703/BASMS-BE-sub000/internal/shared/apperror"
	"github.com/Vietanh2703/BASMS-BE-sub000/internal/shared/contextutil"
	"github.com/Vietanh2703/BASMS-BE-sub000/internal/shared/dbutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// substituteLinkDays bounds how far a substitute work-day may sit from the
// holiday it compensates for.
const substituteLinkDays = 7

type CustomerResolver interface {
	Resolve(ctx context.Context, tx *sql.Tx, id customer.Identity, opts customer.ResolveOptions) (customer.ResolveResult, error)
}

type Coordinates struct {
	Latitude  float64
	Longitude float64
}

type PersistRequest struct {
	Fields         *contractparse.ExtractedFields
	Customer       customer.Identity
	ResolveOptions customer.ResolveOptions

	// ContractNumber and StartDate are final values; the caller fills in
	// generated or defaulted ones before persisting.
	ContractNumber string
	StartDate      time.Time

	SourceFileName  string
	SourceReference string
	ImportedBy      string

	// Coordinates is nil when the location was not geocoded.
	Coordinates *Coordinates
}

type PersistResult struct {
	ContractID        uuid.UUID
	CustomerID        uuid.UUID
	CustomerCode      string
	CustomerCreated   bool
	CustomerMatchedBy string
	PeriodID          uuid.UUID
	LocationIDs       []uuid.UUID
	ShiftScheduleIDs  []uuid.UUID
	HolidayIDs        []uuid.UUID
	HolidaysCreated   int
	SubstituteDayIDs  []uuid.UUID
	Warnings          []string
}

type Service interface {
	Persist(ctx context.Context, req PersistRequest) (PersistResult, error)
	RenewPeriod(ctx context.Context, contractID uuid.UUID, start time.Time, end *time.Time) (*ContractPeriod, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	resolver CustomerResolver
	outbox   kafka.OutboxRepository
	backoff  dbutil.Backoff
	logger   *zap.Logger
}

// NewService builds the persistence orchestrator. backoff drives the
// re-query after a concurrent import wins a holiday calendar insert.
func NewService(
	db *sql.DB,
	repo Repository,
	resolver CustomerResolver,
	outboxRepo kafka.OutboxRepository,
	backoff dbutil.Backoff,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("contract.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("contract.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		resolver: resolver,
		outbox:   outboxRepo,
		backoff:  backoff,
		logger:   l,
	}
}

// Persist writes the whole record graph of one imported contract in a single
// transaction. Any failure rolls everything back.
func (s *service) Persist(ctx context.Context, req PersistRequest) (PersistResult, error) {
	rid := contextutil.GetRequestID(ctx)
	log := contextutil.GetLogger(ctx, s.logger)

	if req.Fields == nil {
		req.Fields = &contractparse.ExtractedFields{}
	}
	if req.StartDate.IsZero() {
		return PersistResult{}, contracterrors.ErrMissingStartDate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("persist contract begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return PersistResult{}, transactionFailure(err)
	}
	defer tx.Rollback()

	res, err := s.persist(ctx, tx, req)
	if err != nil {
		log.Warn("persist contract rolled back",
			zap.String("request_id", rid),
			zap.String("contract_number", req.ContractNumber),
			zap.Error(err),
		)
		return PersistResult{}, transactionFailure(err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("persist contract commit failed", zap.String("request_id", rid), zap.Error(err))
		return PersistResult{}, transactionFailure(err)
	}

	log.Info("persist contract success",
		zap.String("request_id", rid),
		zap.String("contract_id", res.ContractID.String()),
		zap.String("customer_id", res.CustomerID.String()),
		zap.Int("locations", len(res.LocationIDs)),
		zap.Int("schedules", len(res.ShiftScheduleIDs)),
		zap.Int("holidays_created", res.HolidaysCreated),
	)
	return res, nil
}

func (s *service) persist(ctx context.Context, tx *sql.Tx, req PersistRequest) (PersistResult, error) {
	f := req.Fields
	qtx := s.repo.WithTx(tx)
	var res PersistResult

	resolved, err := s.resolver.Resolve(ctx, tx, req.Customer, req.ResolveOptions)
	if err != nil {
		return res, err
	}
	cust := resolved.Customer
	res.CustomerID = cust.ID
	res.CustomerCode = cust.Code
	res.CustomerCreated = resolved.Created
	res.CustomerMatchedBy = resolved.MatchedBy

	c := newContract(req, cust.ID)
	if err := qtx.CreateContract(ctx, c); err != nil {
		return res, fmt.Errorf("create contract: %w", err)
	}
	res.ContractID = c.ID

	period := &ContractPeriod{
		ID:              uuid.New(),
		ContractID:      c.ID,
		PeriodNumber:    1,
		PeriodType:      PeriodInitial,
		PeriodStartDate: c.StartDate,
		PeriodEndDate:   c.EndDate,
	}
	if err := qtx.CreatePeriod(ctx, period); err != nil {
		return res, fmt.Errorf("create contract period: %w", err)
	}
	res.PeriodID = period.ID

	if guards := deref(f.GuardsRequired); guards > 0 {
		if err := s.persistSite(ctx, qtx, req, c, cust, guards, &res); err != nil {
			return res, err
		}
	}

	if err := s.persistCalendar(ctx, qtx, f, c.ID, &res); err != nil {
		return res, err
	}

	if s.outbox != nil {
		if err := s.queueImported(ctx, tx, req, c, &res); err != nil {
			return res, err
		}
	}
	return res, nil
}

func (s *service) persistSite(
	ctx context.Context,
	qtx Repository,
	req PersistRequest,
	c *Contract,
	cust *customer.Customer,
	guards int,
	res *PersistResult,
) error {
	f := req.Fields

	name := strings.TrimSpace(derefStr(f.Location.Name))
	if name == "" {
		name = cust.Name
	}
	loc := &CustomerLocation{
		ID:           uuid.New(),
		CustomerID:   cust.ID,
		LocationName: name,
		Address:      f.Location.Address,
	}
	if req.Coordinates != nil {
		lat, lng := req.Coordinates.Latitude, req.Coordinates.Longitude
		loc.Latitude, loc.Longitude = &lat, &lng
		loc.IsGeocoded = true
	}
	if err := qtx.CreateCustomerLocation(ctx, loc); err != nil {
		return fmt.Errorf("create customer location: %w", err)
	}
	res.LocationIDs = append(res.LocationIDs, loc.ID)

	coverage := derefStr(f.CoverageType)
	if coverage == "" {
		coverage = contractparse.Coverage24x7
	}
	if err := qtx.CreateContractLocation(ctx, &ContractLocation{
		ID:             uuid.New(),
		ContractID:     c.ID,
		LocationID:     loc.ID,
		GuardsRequired: guards,
		CoverageType:   coverage,
		IsPrimary:      true,
	}); err != nil {
		return fmt.Errorf("create contract location: %w", err)
	}

	for _, sh := range f.Shifts {
		sched := newSchedule(sh, c.ID, loc.ID, guards)
		if err := qtx.CreateShiftSchedule(ctx, sched); err != nil {
			return fmt.Errorf("create shift schedule %s: %w", sh.Name, err)
		}
		res.ShiftScheduleIDs = append(res.ShiftScheduleIDs, sched.ID)
	}
	return nil
}

// persistCalendar adds the contract's holidays to the shared calendar,
// reusing rows that already exist for the same date and year, including rows
// a concurrent import inserted after the lookup. It then records
// substitute work-days against the nearest holiday.
func (s *service) persistCalendar(
	ctx context.Context,
	qtx Repository,
	f *contractparse.ExtractedFields,
	contractID uuid.UUID,
	res *PersistResult,
) error {
	holidayIDs := make([]uuid.UUID, len(f.Holidays))
	for i, h := range f.Holidays {
		existing, err := qtx.FindHolidayByDate(ctx, h.Date, h.Date.Year())
		if err != nil {
			return fmt.Errorf("find public holiday %s: %w", h.Date.Format(time.DateOnly), err)
		}
		if existing != nil {
			holidayIDs[i] = existing.ID
			continue
		}

		row := &PublicHoliday{
			ID:               uuid.New(),
			HolidayDate:      h.Date,
			HolidayEndDate:   h.EndDate,
			HolidayName:      h.Name,
			HolidayCategory:  h.Category,
			Year:             h.Date.Year(),
			IsTetHoliday:     h.IsTet,
			TotalHolidayDays: h.TotalDays,
		}
		saved, created, err := dbutil.InsertOrReconcile(ctx, s.backoff,
			func(ctx context.Context) (*PublicHoliday, error) {
				if err := qtx.CreateHoliday(ctx, row); err != nil {
					return nil, err
				}
				return row, nil
			},
			func(ctx context.Context) (*PublicHoliday, bool, error) {
				found, err := qtx.FindHolidayByDate(ctx, h.Date, h.Date.Year())
				return found, found != nil, err
			},
		)
		if err != nil {
			return fmt.Errorf("create public holiday %s: %w", h.Name, err)
		}
		holidayIDs[i] = saved.ID
		if created {
			res.HolidaysCreated++
		}
	}
	res.HolidayIDs = holidayIDs

	for _, sub := range f.SubstituteDays {
		day := &HolidaySubstituteWorkDay{
			ID:             uuid.New(),
			ContractID:     contractID,
			SubstituteDate: sub.Date,
			Year:           sub.Date.Year(),
			Reason:         sub.Reason,
		}
		if i := contractparse.NearestHoliday(sub.Date, f.Holidays, substituteLinkDays); i >= 0 {
			id := holidayIDs[i]
			day.HolidayID = &id
		} else {
			res.Warnings = append(res.Warnings, fmt.Sprintf(
				"substitute day %s has no holiday within %d days",
				sub.Date.Format(time.DateOnly), substituteLinkDays,
			))
		}
		if err := qtx.CreateSubstituteDay(ctx, day); err != nil {
			return fmt.Errorf("create substitute day: %w", err)
		}
		res.SubstituteDayIDs = append(res.SubstituteDayIDs, day.ID)
	}
	return nil
}

// RenewPeriod opens the next period of a contract and retires the current one.
func (s *service) RenewPeriod(ctx context.Context, contractID uuid.UUID, start time.Time, end *time.Time) (*ContractPeriod, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	if start.IsZero() {
		return nil, contracterrors.ErrMissingStartDate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, transactionFailure(err)
	}
	defer tx.Rollback()

	period := &ContractPeriod{
		ID:              uuid.New(),
		ContractID:      contractID,
		PeriodType:      PeriodRenewal,
		PeriodStartDate: start,
		PeriodEndDate:   end,
	}
	if err := s.repo.WithTx(tx).CreatePeriod(ctx, period); err != nil {
		log.Warn("renew contract period rolled back",
			zap.String("contract_id", contractID.String()),
			zap.Error(err),
		)
		return nil, transactionFailure(fmt.Errorf("create contract period: %w", err))
	}
	if err := tx.Commit(); err != nil {
		return nil, transactionFailure(err)
	}

	log.Info("contract period renewed",
		zap.String("contract_id", contractID.String()),
		zap.Int("period_number", period.PeriodNumber),
	)
	return period, nil
}

func (s *service) queueImported(ctx context.Context, tx *sql.Tx, req PersistRequest, c *Contract, res *PersistResult) error {
	rid := contextutil.GetRequestID(ctx)

	payload := events.ContractImportedEvent{
		EventType:        events.ContractImportedEventType,
		RequestID:        rid,
		ContractID:       c.ID.String(),
		ContractNumber:   c.ContractNumber,
		CustomerID:       res.CustomerID.String(),
		CustomerCreated:  res.CustomerCreated,
		ContractType:     c.ContractType,
		StartDate:        c.StartDate.Format(time.DateOnly),
		LocationIDs:      uuidStrings(res.LocationIDs),
		ShiftScheduleIDs: uuidStrings(res.ShiftScheduleIDs),
		AutoGenerate:     c.AutoGenerateShifts,
		SourceFileName:   req.SourceFileName,
		ImportedBy:       req.ImportedBy,
		OccurredAt:       time.Now().UTC(),
	}
	if c.EndDate != nil {
		payload.EndDate = c.EndDate.Format(time.DateOnly)
	}

	event, err := kafka.NewEvent(rid, "contract", c.ID.String(),
		events.ContractImportedEventType, events.ContractImportedTopic, payload)
	if err != nil {
		return err
	}
	if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
		return fmt.Errorf("queue contract imported event: %w", err)
	}
	return nil
}

func newContract(req PersistRequest, customerID uuid.UUID) *Contract {
	f := req.Fields
	cl := f.Classification

	c := &Contract{
		ID:                    uuid.New(),
		CustomerID:            customerID,
		ContractNumber:        req.ContractNumber,
		ContractTitle:         "Hợp đồng dịch vụ bảo vệ " + req.ContractNumber,
		ContractType:          cl.ContractType,
		ServiceScope:          cl.ServiceScope,
		CoverageType:          f.CoverageType,
		StartDate:             req.StartDate,
		EndDate:               f.EndDate,
		DurationMonths:        cl.DurationMonths,
		Status:                StatusDraft,
		AutoGenerateShifts:    cl.AutoGenerateShifts,
		AdvanceGenerationDays: cl.AdvanceGenerationDays,
		IsRenewable:           cl.IsRenewable,
		AutoRenewal:           cl.AutoRenewal,
		SourceFileName:        req.SourceFileName,
	}
	if req.SourceReference != "" {
		ref := req.SourceReference
		c.SourceFileReference = &ref
	}
	if req.ImportedBy != "" {
		by := req.ImportedBy
		c.ImportedBy = &by
	}
	return c
}

func newSchedule(sh contractparse.ShiftSpec, contractID, locationID uuid.UUID, guards int) *ContractShiftSchedule {
	name := sh.Name
	if sh.Label != "" {
		name = sh.Label
	}
	return &ContractShiftSchedule{
		ID:                      uuid.New(),
		ContractID:              contractID,
		LocationID:              &locationID,
		ScheduleName:            name,
		ShiftStartTime:          sh.Start.String(),
		ShiftEndTime:            sh.End.String(),
		AppliesMonday:           sh.Monday,
		AppliesTuesday:          sh.Tuesday,
		AppliesWednesday:        sh.Wednesday,
		AppliesThursday:         sh.Thursday,
		AppliesFriday:           sh.Friday,
		AppliesSaturday:         sh.Saturday,
		AppliesSunday:           sh.Sunday,
		AppliesOnPublicHolidays: sh.AppliesOnHolidays,
		CrossesMidnight:         sh.CrossesMidnight,
		DurationHours:           sh.DurationHours,
		GuardsPerShift:          guards,
	}
}

// transactionFailure keeps application errors as they are so callers can
// still tell a missing customer from a broken database.
func transactionFailure(err error) error {
	if _, ok := apperror.As(err); ok {
		return err
	}
	return fmt.Errorf("%w: %w", contracterrors.ErrTransactionFailure, err)
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func deref(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func derefStr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
