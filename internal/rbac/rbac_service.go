package rbac

import (
	"fmt"
	"strings"
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"go.uber.org/zap"
)

const (
	ResourceContract = "contract"
	ActionImport     = "import"

	RoleAdmin   = "ADMIN"
	RoleManager = "MANAGER"
)

// DefaultPolicies lets managers import contracts; admins inherit it.
func DefaultPolicies() ([]Policy, []Inheritance) {
	policies := []Policy{
		{Role: RoleManager, Resource: ResourceContract, Action: ActionImport},
	}
	inheritance := []Inheritance{
		{Role: RoleAdmin, Parent: RoleManager},
	}
	return policies, inheritance
}

type Service interface {
	Enforce(req EnforceRequest) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   *zap.Logger
}

func NewService(policies []Policy, inheritance []Inheritance, logger ...*zap.Logger) (Service, error) {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}

	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("load rbac model: %w", err)
	}
	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("create rbac enforcer: %w", err)
	}

	for _, p := range policies {
		if _, err := enforcer.AddPolicy(normalizeRole(p.Role), p.Resource, p.Action); err != nil {
			return nil, err
		}
	}
	for _, g := range inheritance {
		if _, err := enforcer.AddGroupingPolicy(normalizeRole(g.Role), normalizeRole(g.Parent)); err != nil {
			return nil, err
		}
	}

	l.Info("rbac policy loaded",
		zap.Int("policies", len(policies)),
		zap.Int("inheritance", len(inheritance)),
	)
	return &service{enforcer: enforcer, logger: l}, nil
}

func (s *service) Enforce(req EnforceRequest) (bool, error) {
	role := normalizeRole(req.Role)
	if role == "" {
		return false, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	allowed, err := s.enforcer.Enforce(role, req.Resource, req.Action)
	if err != nil {
		s.logger.Warn("rbac enforce failed",
			zap.String("role", role),
			zap.String("resource", req.Resource),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("rbac enforce result",
		zap.String("role", role),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}

func normalizeRole(role string) string {
	return strings.ToUpper(strings.TrimSpace(role))
}
