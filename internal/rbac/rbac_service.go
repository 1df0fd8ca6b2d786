package rbac

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
	"sync"

	"github.com/fenixfl1/CompuPay/internal/activitylog"
	"github.com/fenixfl1/CompuPay/internal/domain"
	rbacerrors "github.com/fenixfl1/CompuPay/internal/rbac/errors"
	"github.com/fenixfl1/CompuPay/internal/shared/contextutil"
	"github.com/fenixfl1/CompuPay/internal/shared/counter"
	"github.com/fenixfl1/CompuPay/internal/shared/filter"
	"github.com/fenixfl1/CompuPay/internal/shared/response"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

const (
	roleKind       = "role"
	menuOptionKind = "menu_option"
	userKind       = "user"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(ctx context.Context, req domain.EnforceRequest) (bool, error)
	LoadUserPolicy(ctx context.Context, username string) error

	ActiveRoleIDs(ctx context.Context, username string) ([]int, error)
	MenuOptions(ctx context.Context, username string) ([]MenuOptionResponse, error)
	MenuChildren(ctx context.Context, username, parentID string) ([]MenuOptionResponse, error)
	CreateMenuOption(ctx context.Context, req CreateMenuOptionRequest, actor string) (MenuOptionResponse, error)
	UpdateMenuOption(ctx context.Context, id string, req UpdateMenuOptionRequest, actor string) (MenuOptionResponse, error)

	CreateRole(ctx context.Context, req CreateRoleRequest, actor string) (RoleResponse, error)
	UpdateRole(ctx context.Context, id int, req UpdateRoleRequest, actor string) (RoleResponse, error)
	GetRole(ctx context.Context, id int) (RoleResponse, error)
	ListRoles(ctx context.Context, res filter.Result, page response.Page) ([]RoleResponse, int64, error)
	SetRolePermissions(ctx context.Context, roleID int, req SetRolePermissionsRequest, actor string) error

	AssignRoles(ctx context.Context, username string, roleIDs []int, actor string) error
	AssignRolesTx(ctx context.Context, tx *sql.Tx, userID int, roleIDs []int, actor string) error
	RemoveRoles(ctx context.Context, username string, roleIDs []int, actor string) error
	ChangeUserRoles(ctx context.Context, username string, roleIDs []int, actor string) error

	ListOperations(ctx context.Context) ([]OperationResponse, error)
	GrantOperation(ctx context.Context, req GrantOperationRequest, actor string) error
	RevokeOperation(ctx context.Context, req RevokeOperationRequest, actor string) error

	CreateParameter(ctx context.Context, req CreateParameterRequest, actor string) (ParameterResponse, error)
	ListParameters(ctx context.Context) ([]ParameterResponse, error)

	Describe(ctx context.Context, id string) (string, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	enforcer *casbin.Enforcer
	counter  counter.Repository
	activity activitylog.Service
	logger   *zap.Logger
	mu       sync.Mutex
}

func NewService(
	db *sql.DB,
	repo Repository,
	enforcer *casbin.Enforcer,
	counterRepo counter.Repository,
	activity activitylog.Service,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &service{
		db:       db,
		repo:     repo,
		enforcer: enforcer,
		counter:  counterRepo,
		activity: activity,
		logger:   l,
	}
}

func (s *service) LoadUserPolicy(ctx context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.loadUserPolicyUnlocked(ctx, username)
	return err
}

// loadUserPolicyUnlocked replaces the enforcer policy with the rules that
// apply to username: g(username, role) for every active role assignment,
// p(role, path, operation) for what those roles reach, and
// p(username, path, operation) for direct grants.
func (s *service) loadUserPolicyUnlocked(ctx context.Context, username string) (*UserRef, error) {
	u, err := s.repo.FindUser(ctx, username)
	if err != nil {
		return nil, mapRepositoryError(err, rbacerrors.ErrUserNotFound)
	}

	s.enforcer.ClearPolicy()

	roles, err := s.repo.FindRoleNames(ctx, u.UserID)
	if err != nil {
		return nil, err
	}
	for _, role := range roles {
		if _, err := s.enforcer.AddGroupingPolicy(u.Username, role); err != nil {
			return nil, err
		}
	}

	rolePolicies, err := s.repo.FindRolePolicies(ctx, u.UserID)
	if err != nil {
		return nil, err
	}
	grants, err := s.repo.FindGrantPolicies(ctx, u.UserID)
	if err != nil {
		return nil, err
	}

	for _, p := range append(rolePolicies, grants...) {
		if _, err := s.enforcer.AddPolicy(p.Subject, normalizePath(p.Path), p.Operation); err != nil {
			return nil, err
		}
	}

	s.logger.Debug("rbac policy loaded",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("username", u.Username),
		zap.Int("roles", len(roles)),
		zap.Int("role_policies", len(rolePolicies)),
		zap.Int("grants", len(grants)),
	)
	return u, nil
}

func (s *service) Enforce(ctx context.Context, req domain.EnforceRequest) (bool, error) {
	if req.IsSuperuser {
		return true, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.loadUserPolicyUnlocked(ctx, req.Subject)
	if err != nil {
		return false, err
	}
	if u.IsSuperuser {
		return true, nil
	}

	allowed, err := s.enforcer.Enforce(req.Subject, normalizePath(req.Resource), req.Action)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.String("username", req.Subject),
			zap.String("resource", req.Resource),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("rbac enforce",
		zap.String("username", req.Subject),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}

func (s *service) Describe(ctx context.Context, id string) (string, error) {
	roleID, err := strconv.Atoi(id)
	if err != nil {
		return "", rbacerrors.ErrInvalidRoleID
	}
	row, err := s.repo.FindRoleByID(ctx, roleID)
	if err != nil {
		return "", mapRepositoryError(err, rbacerrors.ErrRoleNotFound)
	}
	return row.Name, nil
}

func (s *service) findUser(ctx context.Context, username string) (*UserRef, error) {
	u, err := s.repo.FindUser(ctx, username)
	if err != nil {
		return nil, mapRepositoryError(err, rbacerrors.ErrUserNotFound)
	}
	return u, nil
}

func normalizePath(p string) string {
	return strings.Trim(strings.TrimSpace(p), "/")
}
