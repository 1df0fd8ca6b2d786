package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fenixfl1/CompuPay/internal/activitylog"
	"github.com/fenixfl1/CompuPay/internal/events"
	"github.com/fenixfl1/CompuPay/internal/messaging/kafka"
	"github.com/fenixfl1/CompuPay/internal/shared/contextutil"
	"github.com/fenixfl1/CompuPay/internal/shared/entity"
	"github.com/fenixfl1/CompuPay/internal/shared/filter"
	"github.com/fenixfl1/CompuPay/internal/shared/response"
	"github.com/fenixfl1/CompuPay/internal/shared/steps"
	usererrors "github.com/fenixfl1/CompuPay/internal/user/errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const describerKind = "user"

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateUserRequest, actor string) (UserResponse, error)
	Update(ctx context.Context, username string, req UpdateUserRequest, actor string) (UpdateUserResult, error)
	ChangeState(ctx context.Context, username, state, actor string) error
	ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error
	UpdateAvatar(ctx context.Context, username string, avatar *string, actor string) error
	CheckUsername(ctx context.Context, username string) error
	CheckIdentityDocument(ctx context.Context, document string) error
	Get(ctx context.Context, username string) (UserResponse, error)
	List(ctx context.Context, res filter.Result, page response.Page) ([]UserResponse, int64, error)
	Describe(ctx context.Context, id string) (string, error)
}

// RoleAssigner manages role membership on behalf of the user service.
type RoleAssigner interface {
	AssignRolesTx(ctx context.Context, tx *sql.Tx, userID int, roleIDs []int, actor string) error
	ChangeUserRoles(ctx context.Context, username string, roleIDs []int, actor string) error
}

// DeductionAssigner attaches payroll deductions to a user.
type DeductionAssigner interface {
	AssignDeductions(ctx context.Context, username string, deductionIDs []int, actor string) error
}

type service struct {
	db         *sql.DB
	repo       Repository
	roles      RoleAssigner
	deductions DeductionAssigner
	outbox     kafka.OutboxRepository
	activity   activitylog.Service
	logger     *zap.Logger
}

type Deps struct {
	Roles      RoleAssigner
	Deductions DeductionAssigner
	Outbox     kafka.OutboxRepository
	Activity   activitylog.Service
}

func NewService(db *sql.DB, repo Repository, deps Deps, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &service{
		db:         db,
		repo:       repo,
		roles:      deps.Roles,
		deductions: deps.Deductions,
		outbox:     deps.Outbox,
		activity:   deps.Activity,
		logger:     l,
	}
}

func (s *service) Create(ctx context.Context, req CreateUserRequest, actor string) (UserResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	if req.Salary.IsNegative() {
		return UserResponse{}, usererrors.ErrInvalidSalary
	}
	hired, err := parseDate(req.HiredDate)
	if err != nil {
		return UserResponse{}, usererrors.ErrInvalidDate
	}
	contractEnd, err := parseDate(req.ContractEnd)
	if err != nil {
		return UserResponse{}, usererrors.ErrInvalidDate
	}
	birth, err := parseDate(req.BirthDate)
	if err != nil {
		return UserResponse{}, usererrors.ErrInvalidDate
	}

	var supervisorID *int
	if req.Supervisor != nil && *req.Supervisor != "" {
		sup, err := s.repo.FindByUsername(ctx, *req.Supervisor)
		if err != nil {
			if errors.Is(mapRepositoryError(err), usererrors.ErrUserNotFound) {
				return UserResponse{}, usererrors.ErrSupervisorNotFound
			}
			return UserResponse{}, err
		}
		supervisorID = &sup.UserID
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("hash password failed", zap.String("request_id", rid), zap.Error(err))
		return UserResponse{}, err
	}

	u := &User{
		Username:         strings.TrimSpace(req.Username),
		IdentityDocument: strings.TrimSpace(req.IdentityDocument),
		DocumentType:     defaultString(req.DocumentType, "C"),
		Name:             req.Name,
		LastName:         req.LastName,
		Email:            req.Email,
		Password:         string(hashed),
		Phone:            req.Phone,
		HiredDate:        hired,
		ContractEnd:      contractEnd,
		BirthDate:        birth,
		Currency:         defaultString(req.Currency, "DOP"),
		Salary:           req.Salary,
		Gender:           req.Gender,
		Address:          req.Address,
		IsStaff:          req.IsStaff,
		IsActive:         true,
		SupervisorID:     supervisorID,
		DepartmentID:     req.DepartmentID,
	}
	if err := entity.PrepareCreate(&u.Base, actor, States...); err != nil {
		return UserResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create user begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return UserResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, u); err != nil {
		s.logger.Warn("create user persist failed", zap.String("request_id", rid), zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}

	if len(req.Roles) > 0 && s.roles != nil {
		if err := s.roles.AssignRolesTx(ctx, tx, u.UserID, req.Roles, actor); err != nil {
			s.logger.Warn("create user role assignment failed",
				zap.String("request_id", rid),
				zap.String("username", u.Username),
				zap.Error(err),
			)
			return UserResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create user commit failed", zap.String("request_id", rid), zap.Error(err))
		return UserResponse{}, err
	}

	if len(req.Deductions) > 0 && s.deductions != nil {
		if err := s.deductions.AssignDeductions(ctx, u.Username, req.Deductions, actor); err != nil {
			s.logger.Warn("deduction assignment failed, removing user",
				zap.String("request_id", rid),
				zap.String("username", u.Username),
				zap.Error(err),
			)
			s.compensateCreate(ctx, u.UserID)
			return UserResponse{}, err
		}
	}

	s.queueCreated(ctx, u, actor)
	activitylog.Record(ctx, s.activity, s.logger,
		activitylog.Ref(describerKind, u.UserID), actor, activitylog.ActionCreate,
		fmt.Sprintf("@%s created user @%s", actor, u.Username))

	s.logger.Info("create user success",
		zap.String("request_id", rid),
		zap.Int("user_id", u.UserID),
	)
	return s.Get(ctx, u.Username)
}

// compensateCreate undoes a committed user whose creation could not finish.
func (s *service) compensateCreate(ctx context.Context, userID int) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("compensation begin tx failed", zap.Int("user_id", userID), zap.Error(err))
		return
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Delete(ctx, userID); err != nil {
		s.logger.Error("compensation delete failed", zap.Int("user_id", userID), zap.Error(err))
		return
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("compensation commit failed", zap.Int("user_id", userID), zap.Error(err))
	}
}

func (s *service) queueCreated(ctx context.Context, u *User, actor string) {
	if s.outbox == nil {
		return
	}
	rid := contextutil.GetRequestID(ctx)
	ev := events.UserCreatedEvent{
		EventType:  "user_created",
		RequestID:  rid,
		UserID:     u.UserID,
		Username:   u.Username,
		CreatedBy:  actor,
		OccurredAt: time.Now().UTC(),
	}
	row, err := kafka.NewOutboxEvent(rid, describerKind, strconv.Itoa(u.UserID), ev.EventType, events.UserCreatedTopic, ev)
	if err == nil {
		err = s.outbox.Create(ctx, row)
	}
	if err != nil {
		s.logger.Warn("user created event not queued",
			zap.String("request_id", rid),
			zap.Int("user_id", u.UserID),
			zap.Error(err),
		)
	}
}

func (s *service) Update(ctx context.Context, username string, req UpdateUserRequest, actor string) (UpdateUserResult, error) {
	if req.Username != nil || req.IdentityDocument != nil {
		return UpdateUserResult{}, usererrors.ErrFieldNotUpdatable
	}

	current, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return UpdateUserResult{}, mapRepositoryError(err)
	}

	raw, err := s.updateFields(ctx, req)
	if err != nil {
		return UpdateUserResult{}, err
	}
	if len(raw) == 0 && req.Roles == nil && req.Deductions == nil {
		return UpdateUserResult{}, usererrors.ErrEmptyUpdate
	}

	if len(raw) > 0 {
		fields, err := entity.PrepareUpdate(raw, actor, States...)
		if err != nil {
			return UpdateUserResult{}, err
		}
		if err := s.repo.Update(ctx, current.UserID, fields); err != nil {
			return UpdateUserResult{}, mapRepositoryError(err)
		}
	}

	var result steps.List
	if len(req.Roles) > 0 && s.roles != nil {
		result.Run("assign_roles", func() error {
			return s.roles.ChangeUserRoles(ctx, username, req.Roles, actor)
		})
	}
	if len(req.Deductions) > 0 && s.deductions != nil {
		result.Run("assign_deductions", func() error {
			return s.deductions.AssignDeductions(ctx, username, req.Deductions, actor)
		})
	}
	if result.Degraded() {
		s.logger.Warn("update user completed with failed steps",
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.String("username", username),
			zap.Any("steps", result),
		)
	}

	if actor != username {
		activitylog.Record(ctx, s.activity, s.logger,
			activitylog.Ref(describerKind, current.UserID), actor, activitylog.ActionUpdate,
			fmt.Sprintf("@%s updated user @%s", actor, username))
	}

	res, err := s.Get(ctx, username)
	if err != nil {
		return UpdateUserResult{}, err
	}
	return UpdateUserResult{User: res, Steps: result}, nil
}

func (s *service) updateFields(ctx context.Context, req UpdateUserRequest) (map[string]any, error) {
	out := map[string]any{}
	set := func(col string, v any, ok bool) {
		if ok {
			out[col] = v
		}
	}

	set("name", deref(req.Name), req.Name != nil)
	set("last_name", deref(req.LastName), req.LastName != nil)
	set("email", deref(req.Email), req.Email != nil)
	set("phone", deref(req.Phone), req.Phone != nil)
	set("currency", deref(req.Currency), req.Currency != nil)
	set("gender", deref(req.Gender), req.Gender != nil)
	set("address", deref(req.Address), req.Address != nil)
	if req.DepartmentID != nil {
		out["department_id"] = *req.DepartmentID
	}
	if req.IsStaff != nil {
		out["is_staff"] = *req.IsStaff
	}
	if req.State != nil {
		out["state"] = *req.State
	}
	if req.Salary != nil {
		if req.Salary.IsNegative() {
			return nil, usererrors.ErrInvalidSalary
		}
		out["salary"] = *req.Salary
	}

	dates := []struct {
		col string
		val *string
	}{
		{"hired_date", req.HiredDate},
		{"contract_end", req.ContractEnd},
		{"birth_date", req.BirthDate},
	}
	for _, d := range dates {
		if d.val == nil {
			continue
		}
		t, err := parseDate(d.val)
		if err != nil {
			return nil, usererrors.ErrInvalidDate
		}
		out[d.col] = t
	}

	if req.Supervisor != nil {
		sup, err := s.repo.FindByUsername(ctx, *req.Supervisor)
		if err != nil {
			if errors.Is(mapRepositoryError(err), usererrors.ErrUserNotFound) {
				return nil, usererrors.ErrSupervisorNotFound
			}
			return nil, err
		}
		out["supervisor_id"] = sup.UserID
	}
	return out, nil
}

func (s *service) ChangeState(ctx context.Context, username, state, actor string) error {
	fields, err := entity.PrepareUpdate(map[string]any{"state": state}, actor, States...)
	if err != nil {
		return err
	}

	u, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return mapRepositoryError(err)
	}
	if err := s.repo.Update(ctx, u.UserID, fields); err != nil {
		return mapRepositoryError(err)
	}

	verb := "enabled"
	if state == entity.StateInactive {
		verb = "disabled"
	}
	activitylog.Record(ctx, s.activity, s.logger,
		activitylog.Ref(describerKind, u.UserID), actor, activitylog.ActionUpdate,
		fmt.Sprintf("@%s %s user @%s", actor, verb, username))
	return nil
}

func (s *service) ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error {
	u, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return mapRepositoryError(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(oldPassword)); err != nil {
		return usererrors.ErrWrongPassword
	}
	if oldPassword == newPassword {
		return usererrors.ErrSamePassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	fields, err := entity.PrepareUpdate(map[string]any{"password": string(hashed)}, username)
	if err != nil {
		return err
	}
	return mapRepositoryError(s.repo.Update(ctx, u.UserID, fields))
}

func (s *service) UpdateAvatar(ctx context.Context, username string, avatar *string, actor string) error {
	u, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return mapRepositoryError(err)
	}
	fields, err := entity.PrepareUpdate(map[string]any{"avatar": avatar}, actor)
	if err != nil {
		return err
	}
	return mapRepositoryError(s.repo.Update(ctx, u.UserID, fields))
}

func (s *service) CheckUsername(ctx context.Context, username string) error {
	taken, err := s.repo.Exists(ctx, "username", strings.TrimSpace(username))
	if err != nil {
		return err
	}
	if taken {
		return usererrors.ErrUsernameExists
	}
	return nil
}

func (s *service) CheckIdentityDocument(ctx context.Context, document string) error {
	taken, err := s.repo.Exists(ctx, "identity_document", strings.TrimSpace(document))
	if err != nil {
		return err
	}
	if taken {
		return usererrors.ErrIdentityDocumentExists
	}
	return nil
}

func (s *service) Get(ctx context.Context, username string) (UserResponse, error) {
	row, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}
	roles, err := s.repo.FindRoles(ctx, row.UserID)
	if err != nil {
		return UserResponse{}, err
	}
	return mapToResponse(*row, roles), nil
}

func (s *service) List(ctx context.Context, res filter.Result, page response.Page) ([]UserResponse, int64, error) {
	rows, total, err := s.repo.FindPage(ctx, res, page)
	if err != nil {
		return nil, 0, err
	}

	out := make([]UserResponse, len(rows))
	for i, r := range rows {
		out[i] = mapToResponse(r, nil)
	}
	return out, total, nil
}

func (s *service) Describe(ctx context.Context, id string) (string, error) {
	userID, err := strconv.Atoi(id)
	if err != nil {
		return "", usererrors.ErrUserNotFound
	}
	row, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return "", mapRepositoryError(err)
	}
	return "@" + row.Username, nil
}

func defaultString(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
