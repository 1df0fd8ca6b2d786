package auth

import (
	"context"
	"errors"
	"time"

	autherrors "github.com/fenixfl1/CompuPay/internal/auth/errors"
	"github.com/fenixfl1/CompuPay/internal/auth/token"
	"github.com/fenixfl1/CompuPay/internal/shared/contextutil"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	accessTTL          = 24 * time.Hour
	rememberAccessTTL  = 30 * 24 * time.Hour
	refreshTTL         = 7 * 24 * time.Hour
	rememberRefreshTTL = 30 * 24 * time.Hour
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, req LoginRequest) (Session, error)
	Refresh(ctx context.Context, refreshToken string) (Session, error)
	Me(ctx context.Context, username string) (AuthResponse, error)
}

// PolicyLoader warms the authorization policy of a user after login.
type PolicyLoader interface {
	LoadUserPolicy(ctx context.Context, username string) error
}

type service struct {
	repo     Repository
	policies PolicyLoader
	logger   *zap.Logger
}

func NewService(repo Repository, policies PolicyLoader, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &service{repo: repo, policies: policies, logger: l}
}

func (s *service) Login(ctx context.Context, req LoginRequest) (Session, error) {
	acc, err := s.repo.GetByUsername(ctx, req.Username)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("login lookup failed",
				zap.String("request_id", contextutil.GetRequestID(ctx)),
				zap.Error(err),
			)
		}
		return Session{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acc.Password), []byte(req.Password)); err != nil {
		return Session{}, autherrors.ErrInvalidCredentials
	}
	if !acc.CanLogin() {
		return Session{}, autherrors.ErrUserInactive
	}

	if s.policies != nil {
		if err := s.policies.LoadUserPolicy(ctx, acc.Username); err != nil {
			s.logger.Warn("policy warmup failed",
				zap.String("request_id", contextutil.GetRequestID(ctx)),
				zap.String("username", acc.Username),
				zap.Error(err),
			)
		}
	}

	aTTL, rTTL := accessTTL, refreshTTL
	if req.Remember {
		aTTL, rTTL = rememberAccessTTL, rememberRefreshTTL
	}
	return s.issue(*acc, aTTL, rTTL)
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (Session, error) {
	claims, err := token.Parse(refreshToken, token.TypeRefresh)
	if err != nil {
		return Session{}, autherrors.ErrInvalidRefreshToken
	}

	acc, err := s.repo.GetByUsername(ctx, claims.Username)
	if err != nil {
		return Session{}, autherrors.ErrUserNotFound
	}
	if !acc.CanLogin() {
		return Session{}, autherrors.ErrUserInactive
	}

	return s.issue(*acc, accessTTL, refreshTTL)
}

func (s *service) Me(ctx context.Context, username string) (AuthResponse, error) {
	acc, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return AuthResponse{}, autherrors.ErrUserNotFound
	}
	return mapToResponse(*acc), nil
}

func (s *service) issue(acc Account, aTTL, rTTL time.Duration) (Session, error) {
	access, exp, err := token.Generate(acc.UserID, acc.Username, acc.IsSuperuser, token.TypeAccess, aTTL)
	if err != nil {
		return Session{}, autherrors.ErrTokenGenerationFailed
	}
	refresh, _, err := token.Generate(acc.UserID, acc.Username, acc.IsSuperuser, token.TypeRefresh, rTTL)
	if err != nil {
		return Session{}, autherrors.ErrTokenGenerationFailed
	}

	return Session{
		User:         mapToResponse(acc),
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    exp,
	}, nil
}
