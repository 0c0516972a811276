package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	accounterrors "github.com/Vietanh2703/BASMS-BE-sub000/internal/account/errors"
	"github.com/Vietanh2703/BASMS-BE-sub000/internal/contractimport"
	"github.com/Vietanh2703/BASMS-BE-sub000/internal/shared/contextutil"
	"github.com/Vietanh2703/BASMS-BE-sub000/internal/shared/dbutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var _ contractimport.AccountProvisioner = (*Provisioner)(nil)

// Provisioner creates customer logins for imported contracts.
type Provisioner struct {
	repo       Repository
	random     RandomSource
	bcryptCost int
	backoff    dbutil.Backoff
	logger     *zap.Logger
}

type Option func(*Provisioner)

func WithRandomSource(src RandomSource) Option {
	return func(p *Provisioner) { p.random = src }
}

// WithBcryptCost lowers the hashing cost, mainly for tests.
func WithBcryptCost(cost int) Option {
	return func(p *Provisioner) { p.bcryptCost = cost }
}

func WithBackoff(b dbutil.Backoff) Option {
	return func(p *Provisioner) { p.backoff = b }
}

func WithLogger(l *zap.Logger) Option {
	return func(p *Provisioner) {
		if l != nil {
			p.logger = l.Named("account.provisioner")
		}
	}
}

func NewProvisioner(repo Repository, opts ...Option) *Provisioner {
	p := &Provisioner{
		repo:       repo,
		random:     CryptoSource(),
		bcryptCost: bcrypt.DefaultCost,
		backoff:    dbutil.DefaultBackoff(),
		logger:     zap.L().Named("account.provisioner"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// CreateAccount returns the user owning req.Email, creating it with a fresh
// password when none exists. A password is only returned for new accounts.
func (p *Provisioner) CreateAccount(ctx context.Context, req contractimport.AccountRequest) (*contractimport.ProvisionedAccount, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, accounterrors.ErrMissingEmail
	}
	log := contextutil.GetLogger(ctx, p.logger)

	existing, err := p.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		log.Debug("account already exists", zap.String("user_id", existing.ID.String()))
		return &contractimport.ProvisionedAccount{UserID: existing.ID}, nil
	}

	password, err := GeneratePassword(p.random)
	if err != nil {
		return nil, fmt.Errorf("generate password: %w", err)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), p.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &User{
		ID:           uuid.New(),
		Email:        email,
		FullName:     strings.TrimSpace(req.FullName),
		PasswordHash: string(hashed),
		Role:         RoleCustomer,
		IsActive:     true,
	}
	if req.Phone != "" {
		user.Phone = &req.Phone
	}
	if req.Address != "" {
		user.Address = &req.Address
	}

	u, created, err := dbutil.InsertOrReconcile(ctx, p.backoff,
		func(ctx context.Context) (*User, error) {
			if err := p.repo.Create(ctx, user); err != nil {
				return nil, err
			}
			return user, nil
		},
		func(ctx context.Context) (*User, bool, error) {
			found, err := p.repo.GetByEmail(ctx, email)
			return found, found != nil, err
		},
	)
	if errors.Is(err, dbutil.ErrReconcileExhausted) {
		return nil, fmt.Errorf("%w: %w", accounterrors.ErrAccountRace, err)
	}
	if err != nil {
		return nil, err
	}

	if !created {
		log.Info("account created concurrently, reusing", zap.String("user_id", u.ID.String()))
		return &contractimport.ProvisionedAccount{UserID: u.ID}, nil
	}

	log.Info("account created", zap.String("user_id", u.ID.String()))
	return &contractimport.ProvisionedAccount{
		UserID:   u.ID,
		Password: password,
		Created:  true,
	}, nil
}
