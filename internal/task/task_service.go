package task

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/fenixfl1/CompuPay/internal/activitylog"
	"github.com/fenixfl1/CompuPay/internal/messaging/kafka"
	"github.com/fenixfl1/CompuPay/internal/shared/contextutil"
	"github.com/fenixfl1/CompuPay/internal/shared/entity"
	"github.com/fenixfl1/CompuPay/internal/shared/filter"
	"github.com/fenixfl1/CompuPay/internal/shared/response"
	"github.com/fenixfl1/CompuPay/internal/shared/steps"
	taskerrors "github.com/fenixfl1/CompuPay/internal/task/errors"

	"go.uber.org/zap"
)

const (
	describerKind = "task"
	tagKind       = "tag"
)

//go:generate mockgen -source=task_service.go -destination=mock/task_service_mock.go -package=mock
type Service interface {
	CreateTask(ctx context.Context, req CreateTaskRequest, actor string) (CreateTaskResult, error)
	UpdateTask(ctx context.Context, id int, req UpdateTaskRequest, actor string) (TaskResponse, error)
	UpdateTaskState(ctx context.Context, id int, req UpdateTaskStateRequest, actor string) (TaskResponse, error)
	AddOrRemoveUsers(ctx context.Context, id int, usernames []string, actor string) (TaskResponse, error)
	AddTags(ctx context.Context, id int, tagIDs []int, actor string) error
	RemoveTags(ctx context.Context, id int, tagIDs []int, actor string) error
	GetTask(ctx context.Context, id int) (TaskResponse, error)
	ListTasks(ctx context.Context, res filter.Result, page response.Page) ([]TaskResponse, int64, error)
	CreateTag(ctx context.Context, req CreateTagRequest, actor string) (TagResponse, error)
	UpdateTag(ctx context.Context, id int, req UpdateTagRequest, actor string) (TagResponse, error)
	ListTags(ctx context.Context, res filter.Result, page response.Page) ([]TagResponse, int64, error)
	Describe(ctx context.Context, id string) (string, error)
}

// Broadcaster pushes a message to everyone following a task.
type Broadcaster interface {
	BroadcastTask(ctx context.Context, taskID int, message string) error
}

type service struct {
	db          *sql.DB
	repo        Repository
	outbox      kafka.OutboxRepository
	broadcaster Broadcaster
	activity    activitylog.Service
	logger      *zap.Logger
}

type Deps struct {
	Outbox      kafka.OutboxRepository
	Broadcaster Broadcaster
	Activity    activitylog.Service
}

func NewService(db *sql.DB, repo Repository, deps Deps, logger ...*zap.Logger) Service {
	l := zap.L().Named("task.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &service{
		db:          db,
		repo:        repo,
		outbox:      deps.Outbox,
		broadcaster: deps.Broadcaster,
		activity:    deps.Activity,
		logger:      l,
	}
}

// CreateTask persists the task first. Tags and users are attached
// afterwards as independent steps; a failed step degrades the message but
// never removes the task.
func (s *service) CreateTask(ctx context.Context, req CreateTaskRequest, actor string) (CreateTaskResult, error) {
	priority := strings.ToUpper(strings.TrimSpace(req.Priority))
	if priority == "" {
		priority = PriorityMedium
	}
	if !slices.Contains(Priorities, priority) {
		return CreateTaskResult{}, taskerrors.ErrInvalidPriority
	}
	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return CreateTaskResult{}, taskerrors.ErrInvalidDateRange
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return CreateTaskResult{}, err
	}
	defer tx.Rollback()

	t := &Task{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Priority:    priority,
		Status:      StatusPending,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}
	if err := entity.PrepareCreate(&t.Base, actor); err != nil {
		return CreateTaskResult{}, err
	}
	if err := s.repo.WithTx(tx).Create(ctx, t); err != nil {
		return CreateTaskResult{}, mapRepositoryError(err, taskerrors.ErrTaskNotFound)
	}
	if err := tx.Commit(); err != nil {
		return CreateTaskResult{}, err
	}

	var result steps.List
	if len(req.Tags) > 0 {
		result.Run("attach_tags", func() error {
			return s.attachTags(ctx, t.TaskID, req.Tags, actor)
		})
	}
	if len(req.Users) > 0 {
		result.Run("attach_users", func() error {
			_, err := s.syncUsers(ctx, t.TaskID, req.Users, actor)
			return err
		})
	}

	activitylog.Record(ctx, s.activity, s.logger,
		activitylog.Ref(describerKind, t.TaskID), actor, activitylog.ActionCreate,
		fmt.Sprintf("@%s created task %s", actor, t.Name))

	res := mapTask(*t)
	if decorated, err := s.decorate(ctx, []Task{*t}); err == nil {
		res = decorated[0]
	} else {
		s.logger.Warn("task relations not loaded",
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.Int("task_id", t.TaskID),
			zap.Error(err),
		)
	}

	return CreateTaskResult{
		Task:    res,
		Steps:   result,
		Message: result.Message("Task created", "Task created, but some attachments failed"),
	}, nil
}

func (s *service) UpdateTask(ctx context.Context, id int, req UpdateTaskRequest, actor string) (TaskResponse, error) {
	raw := req.fields()
	if len(raw) == 0 {
		return TaskResponse{}, taskerrors.ErrEmptyUpdate
	}
	if p, ok := raw["priority"].(string); ok {
		p = strings.ToUpper(strings.TrimSpace(p))
		if !slices.Contains(Priorities, p) {
			return TaskResponse{}, taskerrors.ErrInvalidPriority
		}
		raw["priority"] = p
	}

	fields, err := entity.PrepareUpdate(raw, actor)
	if err != nil {
		return TaskResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TaskResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	current, err := qtx.FindByID(ctx, id)
	if err != nil {
		return TaskResponse{}, mapRepositoryError(err, taskerrors.ErrTaskNotFound)
	}
	start, end := current.StartDate, current.EndDate
	if req.StartDate != nil {
		start = req.StartDate
	}
	if req.EndDate != nil {
		end = req.EndDate
	}
	if start != nil && end != nil && end.Before(*start) {
		return TaskResponse{}, taskerrors.ErrInvalidDateRange
	}

	if err := qtx.Update(ctx, id, fields); err != nil {
		return TaskResponse{}, mapRepositoryError(err, taskerrors.ErrTaskNotFound)
	}
	updated, err := qtx.FindByID(ctx, id)
	if err != nil {
		return TaskResponse{}, mapRepositoryError(err, taskerrors.ErrTaskNotFound)
	}

	if err := tx.Commit(); err != nil {
		return TaskResponse{}, err
	}

	s.broadcast(ctx, id, fmt.Sprintf("La tarea %s fue actualizada por @%s", updated.Name, actor))
	activitylog.Record(ctx, s.activity, s.logger,
		activitylog.Ref(describerKind, id), actor, activitylog.ActionUpdate,
		fmt.Sprintf("@%s updated task %s", actor, updated.Name))

	return s.load(ctx, *updated)
}

// UpdateTaskState stamps completion_date when the task is completed and
// clears it otherwise. An empty status follows the completed flag.
func (s *service) UpdateTaskState(ctx context.Context, id int, req UpdateTaskStateRequest, actor string) (TaskResponse, error) {
	completed := req.Completed != nil && *req.Completed
	status := strings.ToUpper(strings.TrimSpace(req.Status))
	if status != "" && !slices.Contains(Statuses, status) {
		return TaskResponse{}, taskerrors.ErrInvalidStatus
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TaskResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	current, err := qtx.FindByID(ctx, id)
	if err != nil {
		return TaskResponse{}, mapRepositoryError(err, taskerrors.ErrTaskNotFound)
	}
	if !current.IsActive() {
		return TaskResponse{}, taskerrors.ErrTaskInactive
	}

	if status == "" {
		switch {
		case completed:
			status = StatusDone
		case current.Status == StatusDone:
			status = StatusPending
		default:
			status = current.Status
		}
	}

	fields := map[string]any{
		"completed":       completed,
		"completion_date": nil,
		"status":          status,
	}
	if completed {
		fields["completion_date"] = time.Now()
	}
	fields, err = entity.PrepareUpdate(fields, actor)
	if err != nil {
		return TaskResponse{}, err
	}

	if err := qtx.Update(ctx, id, fields); err != nil {
		return TaskResponse{}, mapRepositoryError(err, taskerrors.ErrTaskNotFound)
	}
	updated, err := qtx.FindByID(ctx, id)
	if err != nil {
		return TaskResponse{}, mapRepositoryError(err, taskerrors.ErrTaskNotFound)
	}

	if err := tx.Commit(); err != nil {
		return TaskResponse{}, err
	}

	s.broadcast(ctx, id, fmt.Sprintf("La tarea %s cambió a %s", updated.Name, status))
	activitylog.Record(ctx, s.activity, s.logger,
		activitylog.Ref(describerKind, id), actor, activitylog.ActionUpdate,
		fmt.Sprintf("@%s moved task %s to %s", actor, updated.Name, status))

	return s.load(ctx, *updated)
}

func (s *service) GetTask(ctx context.Context, id int) (TaskResponse, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return TaskResponse{}, mapRepositoryError(err, taskerrors.ErrTaskNotFound)
	}
	return s.load(ctx, *t)
}

func (s *service) ListTasks(ctx context.Context, res filter.Result, page response.Page) ([]TaskResponse, int64, error) {
	tasks, total, err := s.repo.FindPage(ctx, res, page)
	if err != nil {
		return nil, 0, err
	}
	out, err := s.decorate(ctx, tasks)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (s *service) Describe(ctx context.Context, id string) (string, error) {
	taskID, err := strconv.Atoi(id)
	if err != nil {
		return "", taskerrors.ErrInvalidTaskID
	}
	t, err := s.repo.FindByID(ctx, taskID)
	if err != nil {
		return "", mapRepositoryError(err, taskerrors.ErrTaskNotFound)
	}
	return t.Name, nil
}

func (s *service) load(ctx context.Context, t Task) (TaskResponse, error) {
	out, err := s.decorate(ctx, []Task{t})
	if err != nil {
		return TaskResponse{}, err
	}
	return out[0], nil
}

// decorate attaches active assignees and tags to every task with one query
// per relation.
func (s *service) decorate(ctx context.Context, tasks []Task) ([]TaskResponse, error) {
	out := make([]TaskResponse, len(tasks))
	if len(tasks) == 0 {
		return out, nil
	}

	ids := make([]int, len(tasks))
	index := make(map[int]int, len(tasks))
	for i, t := range tasks {
		ids[i] = t.TaskID
		index[t.TaskID] = i
		out[i] = mapTask(t)
	}

	assignees, err := s.repo.FindAssignees(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, a := range assignees {
		i := index[a.TaskID]
		out[i].Users = append(out[i].Users, AssigneeResponse{
			Username: a.Username,
			FullName: strings.TrimSpace(a.Name + " " + a.LastName),
			Avatar:   a.Avatar,
		})
	}

	tags, err := s.repo.FindTaskTags(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, tg := range tags {
		i := index[tg.TaskID]
		out[i].Tags = append(out[i].Tags, TagResponse{TagID: tg.TagID, Name: tg.Name, Color: tg.Color})
	}

	return out, nil
}

func (s *service) broadcast(ctx context.Context, taskID int, message string) {
	if s.broadcaster == nil {
		return
	}
	if err := s.broadcaster.BroadcastTask(ctx, taskID, message); err != nil {
		s.logger.Warn("task broadcast failed",
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.Int("task_id", taskID),
			zap.Error(err),
		)
	}
}
