package department

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/fenixfl1/CompuPay/internal/activitylog"
	departmenterrors "github.com/fenixfl1/CompuPay/internal/department/errors"
	"github.com/fenixfl1/CompuPay/internal/shared/contextutil"
	"github.com/fenixfl1/CompuPay/internal/shared/entity"
	"github.com/fenixfl1/CompuPay/internal/shared/filter"
	"github.com/fenixfl1/CompuPay/internal/shared/response"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	OptionsCacheKey = "departments:options"
	optionsCacheTTL = 30 * time.Minute
	describerKind   = "department"
)

//go:generate mockgen -source=department_service.go -destination=mock/department_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateDepartmentRequest, actor string) (DepartmentResponse, error)
	Update(ctx context.Context, id int, req UpdateDepartmentRequest, actor string) (DepartmentResponse, error)
	GetByID(ctx context.Context, id int) (DepartmentResponse, error)
	List(ctx context.Context, res filter.Result, page response.Page) ([]DepartmentResponse, int64, error)
	GetOptions(ctx context.Context) ([]DepartmentOption, error)
	Describe(ctx context.Context, id string) (string, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	rdb      *redis.Client
	sf       *singleflight.Group
	activity activitylog.Service
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	rdb *redis.Client,
	activity activitylog.Service,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("department.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &service{
		db:       db,
		repo:     repo,
		rdb:      rdb,
		sf:       &singleflight.Group{},
		activity: activity,
		logger:   l,
	}
}

func (s *service) Create(
	ctx context.Context,
	req CreateDepartmentRequest,
	actor string,
) (DepartmentResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DepartmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	dept := &Department{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
	}
	if err := entity.PrepareCreate(&dept.Base, actor); err != nil {
		return DepartmentResponse{}, err
	}

	if err := qtx.Create(ctx, dept); err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return DepartmentResponse{}, err
	}

	s.invalidateOptions(ctx)
	activitylog.Record(ctx, s.activity, s.logger,
		activitylog.Ref(describerKind, dept.DepartmentID), actor, activitylog.ActionCreate,
		fmt.Sprintf("department %s created", dept.Name))

	return mapToResponse(DepartmentRow{Department: *dept}), nil
}

func (s *service) Update(
	ctx context.Context,
	id int,
	req UpdateDepartmentRequest,
	actor string,
) (DepartmentResponse, error) {
	raw := req.fields()
	if len(raw) == 0 {
		return DepartmentResponse{}, departmenterrors.ErrEmptyUpdate
	}

	fields, err := entity.PrepareUpdate(raw, actor)
	if err != nil {
		return DepartmentResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DepartmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.Update(ctx, id, fields); err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	row, err := qtx.FindByID(ctx, id)
	if err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return DepartmentResponse{}, err
	}

	s.invalidateOptions(ctx)
	activitylog.Record(ctx, s.activity, s.logger,
		activitylog.Ref(describerKind, id), actor, activitylog.ActionUpdate,
		fmt.Sprintf("department %s updated", row.Name))

	return mapToResponse(*row), nil
}

func (s *service) GetByID(ctx context.Context, id int) (DepartmentResponse, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*row), nil
}

func (s *service) List(
	ctx context.Context,
	res filter.Result,
	page response.Page,
) ([]DepartmentResponse, int64, error) {
	rows, total, err := s.repo.FindPage(ctx, res, page)
	if err != nil {
		return nil, 0, err
	}

	out := make([]DepartmentResponse, len(rows))
	for i, r := range rows {
		out[i] = mapToResponse(r)
	}
	return out, total, nil
}

// GetOptions returns the active departments as select options. Results are
// cached and concurrent misses share one query.
func (s *service) GetOptions(ctx context.Context) ([]DepartmentOption, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, OptionsCacheKey).Result()
		if err == nil {
			var opts []DepartmentOption
			if err := json.Unmarshal([]byte(cached), &opts); err == nil {
				return opts, nil
			}
		}
	}

	v, err, _ := s.sf.Do(OptionsCacheKey, func() (any, error) {
		depts, err := s.repo.FindOptions(ctx)
		if err != nil {
			return nil, err
		}

		opts := make([]DepartmentOption, len(depts))
		for i, d := range depts {
			opts[i] = DepartmentOption{Value: d.DepartmentID, Label: d.Name}
		}

		if s.rdb != nil {
			if data, err := json.Marshal(opts); err == nil {
				s.rdb.Set(ctx, OptionsCacheKey, data, optionsCacheTTL)
			}
		}
		return opts, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]DepartmentOption), nil
}

func (s *service) Describe(ctx context.Context, id string) (string, error) {
	deptID, err := strconv.Atoi(id)
	if err != nil {
		return "", departmenterrors.ErrInvalidDepartmentID
	}
	row, err := s.repo.FindByID(ctx, deptID)
	if err != nil {
		return "", mapRepositoryError(err)
	}
	return row.Name, nil
}

func (s *service) invalidateOptions(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, OptionsCacheKey).Err(); err != nil {
		s.logger.Warn("failed to invalidate department options cache",
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.Error(err),
		)
	}
}

func mapToResponse(r DepartmentRow) DepartmentResponse {
	return DepartmentResponse{
		DepartmentID:  r.DepartmentID,
		Name:          r.Name,
		Description:   r.Description,
		Color:         r.Color,
		EmployeeCount: r.EmployeeCount,
		State:         r.State,
		CreatedAt:     r.CreatedAt,
		CreatedBy:     r.CreatedBy,
		UpdatedAt:     r.UpdatedAt,
	}
}
