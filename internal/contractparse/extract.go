package contractparse

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/unicode/norm"
)

type Options struct {
	MaxSectionSpan int
	AddressWindow  int
	PhoneWindow    int
	EmailWindow    int
	LocationWindow int
}

func DefaultOptions() Options {
	return Options{
		MaxSectionSpan: 5000,
		AddressWindow:  800,
		PhoneWindow:    600,
		EmailWindow:    1000,
		LocationWindow: 3000,
	}
}

type Parser struct {
	opts   Options
	now    func() time.Time
	logger *zap.Logger
}

func NewParser(opts Options, logger ...*zap.Logger) *Parser {
	d := DefaultOptions()
	if opts.MaxSectionSpan <= 0 {
		opts.MaxSectionSpan = d.MaxSectionSpan
	}
	if opts.AddressWindow <= 0 {
		opts.AddressWindow = d.AddressWindow
	}
	if opts.PhoneWindow <= 0 {
		opts.PhoneWindow = d.PhoneWindow
	}
	if opts.EmailWindow <= 0 {
		opts.EmailWindow = d.EmailWindow
	}
	if opts.LocationWindow <= 0 {
		opts.LocationWindow = d.LocationWindow
	}

	l := zap.L().Named("contractparse")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("contractparse")
	}
	return &Parser{opts: opts, now: time.Now, logger: l}
}

// WithClock replaces the clock used when a contract carries no start date.
func (p *Parser) WithClock(now func() time.Time) *Parser {
	cp := *p
	cp.now = now
	return &cp
}

// Parse runs every field extractor over text. Independent extractors run
// concurrently; the ones that need the contract start date (holidays,
// substitute days) run afterwards. Only context cancellation returns an error.
func (p *Parser) Parse(ctx context.Context, text string) (*ExtractedFields, error) {
	text = norm.NFC.String(text)
	idx := NewSectionIndex(text, p.opts.MaxSectionSpan)

	var (
		number      string
		numberFound bool
		start, end  *time.Time
		party       partyResult
		guards      int
		guardsFound bool
		coverage    string
		covFound    bool
		shifts      []ShiftSpec
		weekend     WeekendPolicy
		onHolidays  bool
		location    LocationFields
	)

	g, gctx := errgroup.WithContext(ctx)
	run := func(fn func()) {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fn()
			return nil
		})
	}

	run(func() { number, numberFound = extractContractNumber(text) })
	run(func() { start, end = extractDateRange(idx) })
	run(func() {
		party = extractParty(text, partyOptions{
			AddressWindow: p.opts.AddressWindow,
			PhoneWindow:   p.opts.PhoneWindow,
			EmailWindow:   p.opts.EmailWindow,
		})
	})
	run(func() { guards, guardsFound = extractGuardCount(idx) })
	run(func() { coverage, covFound = extractCoverage(text) })
	run(func() { shifts = extractShifts(idx) })
	run(func() { weekend = extractWeekendPolicy(idx) })
	run(func() { onHolidays = extractAppliesOnHolidays(idx) })
	run(func() { location = extractLocation(idx, p.opts.LocationWindow) })

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f := &ExtractedFields{
		StartDate:         start,
		EndDate:           end,
		Customer:          party.fields,
		Shifts:            shifts,
		Weekend:           weekend,
		AppliesOnHolidays: onHolidays,
		Location:          location,
	}

	if numberFound {
		f.ContractNumber = ptr(number)
	} else {
		f.warn("contract number not found")
	}
	if start == nil {
		f.warn("contract start date not found")
	}
	if end == nil {
		f.warn("contract end date not found")
	}

	if !party.markerFound {
		f.warn("party B block not found, customer fields were searched in the whole document")
	}
	for _, id := range party.identityDiscarded {
		f.warn("identity number %q discarded: must be 9 or 12 digits", id)
	}
	if f.Customer.Phone == nil {
		f.warn("customer phone not found")
	}
	if f.Customer.Email == nil {
		f.warn("customer email not found")
	}
	if f.Customer.Address == nil {
		f.warn("customer address not found")
	}
	if f.Customer.ContactName == nil {
		f.warn("contact person not found")
	}

	if guardsFound {
		f.GuardsRequired = ptr(guards)
	} else {
		f.warn("guard headcount not found")
	}
	if covFound {
		f.CoverageType = ptr(coverage)
	} else if guardsFound {
		f.warn("coverage type not found")
	}

	if len(shifts) == 0 {
		f.warn("no shift schedule found in clause 3.1")
	}
	applyWeekdays(f.Shifts, weekend, onHolidays)

	anchor := p.anchorDate(start)
	hol := extractHolidays(idx, anchor)
	f.Holidays = hol.holidays
	f.Warnings = append(f.Warnings, hol.warnings...)
	f.SubstituteDays = extractSubstituteDays(idx, anchor, f.Holidays)

	if f.Location.Address == nil && f.Customer.Address != nil {
		f.Location.Address = ptr(*f.Customer.Address)
		f.Location.AddressFromCustomer = true
		f.warn("location address not found, using customer address")
	}
	if f.Location.Name == nil && f.Customer.Name != nil {
		f.Location.Name = ptr(*f.Customer.Name)
	}

	f.Classification = Classify(start, end, text)

	p.logger.Debug("contract fields extracted",
		zap.Strings("clauses", idx.Clauses()),
		zap.Bool("contract_number", numberFound),
		zap.Int("shifts", len(f.Shifts)),
		zap.Int("holidays", len(f.Holidays)),
		zap.String("contract_type", f.Classification.ContractType),
		zap.Int("warnings", len(f.Warnings)),
	)
	return f, nil
}

// anchorDate is the contract start, or today when the start is unknown.
func (p *Parser) anchorDate(start *time.Time) time.Time {
	if start != nil {
		return *start
	}
	now := p.now().UTC()
	return date(now.Year(), int(now.Month()), now.Day())
}
