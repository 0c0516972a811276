package customer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	customererrors "github.com/Vietanh2703/BASMS-BE-sub000/internal/customer/errors"
	"github.com/Vietanh2703/BASMS-BE-sub000/internal/shared/contextutil"
	"github.com/Vietanh2703/BASMS-BE-sub000/internal/shared/counter"
	"github.com/Vietanh2703/BASMS-BE-sub000/internal/shared/dbutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	MatchedByEmail    = "email"
	MatchedByIdentity = "identity_number"
	MatchedByPhone    = "phone"

	codeScope = "global"
)

// Identity is the customer as described by an imported contract.
type Identity struct {
	Name           string
	Address        *string
	Phone          *string
	Email          *string
	IdentityNumber *string
	Gender         *string
	ContactName    *string
	ContactTitle   *string
	UserID         *uuid.UUID
}

func (i Identity) String() string {
	return fmt.Sprintf("name=%q email=%q identity=%q phone=%q",
		i.Name, deref(i.Email), deref(i.IdentityNumber), deref(i.Phone))
}

type ResolveOptions struct {
	// RequireExisting fails with ErrCustomerNotFound instead of creating.
	RequireExisting bool
}

type ResolveResult struct {
	Customer  *Customer
	Created   bool
	MatchedBy string
}

type Resolver struct {
	repo    Repository
	counter counter.Repository
	backoff dbutil.Backoff
	logger  *zap.Logger
}

func NewResolver(repo Repository, counter counter.Repository, logger ...*zap.Logger) *Resolver {
	l := zap.L().Named("customer.resolver")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("customer.resolver")
	}
	return &Resolver{
		repo:    repo,
		counter: counter,
		backoff: dbutil.DefaultBackoff(),
		logger:  l,
	}
}

// WithBackoff replaces the reconcile schedule used after a lost insert race.
func (r *Resolver) WithBackoff(b dbutil.Backoff) *Resolver {
	cp := *r
	cp.backoff = b
	return &cp
}

// Resolve finds the customer matching id (email, then identity number, then
// phone) or creates one. It runs entirely on tx.
func (r *Resolver) Resolve(ctx context.Context, tx *sql.Tx, id Identity, opts ResolveOptions) (ResolveResult, error) {
	id.Name = strings.TrimSpace(id.Name)
	if id.Name == "" {
		return ResolveResult{}, customererrors.ErrMissingCustomerName
	}

	log := contextutil.GetLogger(ctx, r.logger)
	repo := r.repo.WithTx(tx)

	existing, matchedBy, err := r.lookup(ctx, repo, id)
	if err != nil {
		return ResolveResult{}, err
	}
	if existing != nil {
		if err := r.merge(ctx, repo, existing, id); err != nil {
			return ResolveResult{}, err
		}
		log.Debug("customer matched",
			zap.String("customer_id", existing.ID.String()),
			zap.String("matched_by", matchedBy),
		)
		return ResolveResult{Customer: existing, MatchedBy: matchedBy}, nil
	}

	if opts.RequireExisting {
		return ResolveResult{}, fmt.Errorf("%w: %s", customererrors.ErrCustomerNotFound, id)
	}

	seq, err := r.counter.WithTx(tx).GetNextValue(ctx, codeScope, counter.CustomerCode)
	if err != nil {
		return ResolveResult{}, err
	}
	candidate := newCustomer(id, fmt.Sprintf("KH-%06d", seq))

	var reconciledBy string
	c, created, err := dbutil.InsertOrReconcile(ctx, r.backoff,
		func(ctx context.Context) (*Customer, error) {
			if err := repo.Create(ctx, candidate); err != nil {
				if dbutil.IsUniqueViolation(err) {
					log.Debug("customer insert collided",
						zap.String("constraint", dbutil.ConstraintName(err)),
						zap.String("code", candidate.Code),
					)
				}
				return nil, err
			}
			return candidate, nil
		},
		func(ctx context.Context) (*Customer, bool, error) {
			found, by, err := r.lookup(ctx, repo, id)
			reconciledBy = by
			return found, found != nil, err
		},
	)
	if errors.Is(err, dbutil.ErrReconcileExhausted) {
		log.Warn("customer reconcile exhausted", zap.String("identity", id.String()))
		return ResolveResult{}, fmt.Errorf("%w: %w", customererrors.ErrCustomerCreationRace, err)
	}
	if err != nil {
		return ResolveResult{}, err
	}

	if !created {
		if err := r.merge(ctx, repo, c, id); err != nil {
			return ResolveResult{}, err
		}
		log.Info("customer insert lost race, reusing concurrent row",
			zap.String("customer_id", c.ID.String()),
			zap.String("matched_by", reconciledBy),
		)
		return ResolveResult{Customer: c, MatchedBy: reconciledBy}, nil
	}

	log.Info("customer created",
		zap.String("customer_id", c.ID.String()),
		zap.String("code", c.Code),
	)
	return ResolveResult{Customer: c, Created: true}, nil
}

func (r *Resolver) lookup(ctx context.Context, repo Repository, id Identity) (*Customer, string, error) {
	steps := []struct {
		by   string
		key  *string
		find func(context.Context, string) (*Customer, error)
	}{
		{MatchedByEmail, id.Email, repo.FindByEmail},
		{MatchedByIdentity, id.IdentityNumber, repo.FindByIdentityNumber},
		{MatchedByPhone, id.Phone, repo.FindByPhone},
	}

	for _, s := range steps {
		if deref(s.key) == "" {
			continue
		}
		c, err := s.find(ctx, *s.key)
		if err != nil {
			return nil, "", err
		}
		if c != nil {
			return c, s.by, nil
		}
	}
	return nil, "", nil
}

// merge back-fills the matched customer. Phone is never back-filled and an
// identity number already owned by another customer is left out, so a
// match never collides with the unique keys of a different row.
func (r *Resolver) merge(ctx context.Context, repo Repository, c *Customer, id Identity) error {
	if deref(c.IdentityNumber) == "" && deref(id.IdentityNumber) != "" {
		owner, err := repo.FindByIdentityNumber(ctx, deref(id.IdentityNumber))
		if err != nil {
			return err
		}
		if owner != nil && owner.ID != c.ID {
			contextutil.GetLogger(ctx, r.logger).Debug("identity number belongs to another customer",
				zap.String("customer_id", c.ID.String()),
				zap.String("owner_id", owner.ID.String()),
			)
			id.IdentityNumber = nil
		}
	}

	changes := fillIfEmpty(c, id)
	if len(changes) == 0 {
		return nil
	}
	return repo.Update(ctx, c.ID, changes)
}

// fillIfEmpty copies extracted values onto c only where c has none and
// returns the changed columns.
func fillIfEmpty(c *Customer, id Identity) map[string]any {
	changes := make(map[string]any)
	fill := func(column string, dst **string, src *string) {
		if deref(*dst) == "" && deref(src) != "" {
			v := *src
			*dst = &v
			changes[column] = v
		}
	}

	fill("address", &c.Address, id.Address)
	fill("contact_person_name", &c.ContactPersonName, id.ContactName)
	fill("contact_person_title", &c.ContactPersonTitle, id.ContactTitle)
	fill("identity_number", &c.IdentityNumber, id.IdentityNumber)
	fill("gender", &c.Gender, id.Gender)

	if c.UserID == nil && id.UserID != nil {
		uid := *id.UserID
		c.UserID = &uid
		changes["user_id"] = uid
	}
	return changes
}

func newCustomer(id Identity, code string) *Customer {
	c := &Customer{
		ID:     uuid.New(),
		Code:   code,
		Name:   id.Name,
		UserID: id.UserID,
	}
	fillIfEmpty(c, id)
	if phone := deref(id.Phone); phone != "" {
		c.Phone = &phone
	}
	if deref(id.Email) != "" {
		email := strings.ToLower(*id.Email)
		c.Email = &email
	}
	return c
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
