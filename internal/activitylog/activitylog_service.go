package activitylog

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/fenixfl1/CompuPay/internal/shared/apperror"
	"github.com/fenixfl1/CompuPay/internal/shared/contextutil"
	"github.com/fenixfl1/CompuPay/internal/shared/filter"
	"github.com/fenixfl1/CompuPay/internal/shared/response"

	"go.uber.org/zap"
	"gorm.io/datatypes"
)

var ErrMalformedRef = apperror.New(
	apperror.CodePayloadValidation,
	"activity reference requires a kind and an id",
	http.StatusBadRequest,
)

//go:generate mockgen -source=activitylog_service.go -destination=mock/activitylog_service_mock.go -package=mock
type Service interface {
	// Register appends one immutable row. Callers treat a failure as
	// non-fatal: log it and carry on with the primary operation.
	Register(ctx context.Context, ref EntityRef, actor string, action Action, message string) error
	Recent(ctx context.Context, res filter.Result, page response.Page) ([]ActivityResponse, int64, error)
}

type service struct {
	repo     Repository
	registry *Registry
	logger   *zap.Logger
}

var now = time.Now

func NewService(repo Repository, registry *Registry, logger ...*zap.Logger) Service {
	l := zap.L().Named("activitylog.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("activitylog.service")
	}
	if registry == nil {
		registry = NewRegistry()
	}
	return &service{repo: repo, registry: registry, logger: l}
}

func (s *service) Register(ctx context.Context, ref EntityRef, actor string, action Action, message string) error {
	ref.Kind = strings.TrimSpace(ref.Kind)
	ref.ID = strings.TrimSpace(ref.ID)
	if ref.Kind == "" || ref.ID == "" {
		return ErrMalformedRef
	}
	if !action.Valid() {
		return apperror.Newf(apperror.CodePayloadValidation, http.StatusBadRequest,
			"invalid activity action %d", int16(action))
	}

	entry := &ActivityLog{
		ActionTime:    now(),
		ContentType:   ref.Kind,
		ObjectID:      ref.ID,
		ObjectRepr:    s.registry.Describe(ctx, ref),
		ActionFlag:    action,
		ChangeMessage: message,
	}
	if actor != "" {
		entry.Username = &actor
	}
	if rid := contextutil.GetRequestID(ctx); rid != "" {
		entry.Metadata = datatypes.JSONMap{"request_id": rid}
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		s.logger.Error("register activity failed",
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.String("kind", ref.Kind),
			zap.String("object_id", ref.ID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (s *service) Recent(ctx context.Context, res filter.Result, page response.Page) ([]ActivityResponse, int64, error) {
	logs, total, err := s.repo.FindPage(ctx, res, page)
	if err != nil {
		s.logger.Error("list activities failed", zap.Error(err))
		return nil, 0, err
	}

	out := make([]ActivityResponse, len(logs))
	for i, l := range logs {
		out[i] = mapToResponse(l)
	}
	return out, total, nil
}

// Record registers an activity and only logs a failure. It is the helper
// feature services call after a successful write.
func Record(ctx context.Context, svc Service, logger *zap.Logger, ref EntityRef, actor string, action Action, message string) {
	if svc == nil {
		return
	}
	if err := svc.Register(ctx, ref, actor, action, message); err != nil && logger != nil {
		logger.Warn("activity log skipped",
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.String("kind", ref.Kind),
			zap.String("object_id", ref.ID),
			zap.Error(err),
		)
	}
}
