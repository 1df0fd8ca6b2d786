package task_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/fenixfl1/CompuPay/internal/events"
	"github.com/fenixfl1/CompuPay/internal/messaging/kafka"
	kafkaMock "github.com/fenixfl1/CompuPay/internal/messaging/kafka/mock"
	"github.com/fenixfl1/CompuPay/internal/shared/entity"
	"github.com/fenixfl1/CompuPay/internal/task"
	taskerrors "github.com/fenixfl1/CompuPay/internal/task/errors"
	taskMock "github.com/fenixfl1/CompuPay/internal/task/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeBroadcaster struct {
	taskID   int
	messages []string
	err      error
}

func (f *fakeBroadcaster) BroadcastTask(_ context.Context, taskID int, message string) error {
	f.taskID = taskID
	f.messages = append(f.messages, message)
	return f.err
}

type serviceDeps struct {
	db          *sql.DB
	sqlMock     sqlmock.Sqlmock
	repo        *taskMock.MockRepository
	outbox      *kafkaMock.MockOutboxRepository
	broadcaster *fakeBroadcaster
	service     task.Service
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := taskMock.NewMockRepository(ctrl)
	outbox := kafkaMock.NewMockOutboxRepository(ctrl)
	b := &fakeBroadcaster{}

	svc := task.NewService(db, repo, task.Deps{Outbox: outbox, Broadcaster: b}, zap.NewNop())

	return &serviceDeps{
		db:          db,
		sqlMock:     sqlMock,
		repo:        repo,
		outbox:      outbox,
		broadcaster: b,
		service:     svc,
	}
}

func activeTask(id int, name string) *task.Task {
	return &task.Task{
		TaskID:   id,
		Name:     name,
		Priority: task.PriorityMedium,
		Status:   task.StatusPending,
		Base:     entity.Base{State: entity.StateActive},
	}
}

func TestTaskService_CreateTask(t *testing.T) {
	ctx := context.Background()

	t.Run("attaches tags and users", func(t *testing.T) {
		deps := setupServiceTest(t)

		for i := 0; i < 3; i++ {
			deps.sqlMock.ExpectBegin()
			deps.sqlMock.ExpectCommit()
		}
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo).Times(3)
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, tk *task.Task) error {
				assert.Equal(t, task.StatusPending, tk.Status)
				assert.Equal(t, task.PriorityHigh, tk.Priority)
				assert.Equal(t, "admin", tk.CreatedBy)
				tk.TaskID = 9
				return nil
			})

		// attach_tags
		deps.repo.EXPECT().FindByID(ctx, 9).Return(activeTask(9, "Cierre"), nil).Times(2)
		deps.repo.EXPECT().FindTags(ctx, []int{1, 2}).Return([]task.Tag{{TagID: 1}, {TagID: 2}}, nil)
		deps.repo.EXPECT().FindTagLinks(ctx, 9, []int{1, 2}).Return(nil, nil)
		deps.repo.EXPECT().SetTagLinksState(ctx, 9, gomock.Nil(), entity.StateActive, "admin").Return(nil)
		deps.repo.EXPECT().CreateTagLinks(ctx, gomock.Len(2)).Return(nil)

		// attach_users
		deps.repo.EXPECT().FindUsers(ctx, []string{"jdoe"}).Return([]task.UserRef{{UserID: 4, Username: "jdoe"}}, nil)
		deps.repo.EXPECT().FindAssignments(ctx, 9, gomock.Nil()).Return(nil, nil)
		deps.repo.EXPECT().SetAssignmentsState(ctx, 9, gomock.Nil(), gomock.Any(), "admin").Return(nil).Times(2)
		deps.repo.EXPECT().
			CreateAssignments(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, rows []task.TaskAssignment) error {
				require.Len(t, rows, 1)
				assert.Equal(t, 4, rows[0].UserID)
				assert.Equal(t, entity.StateActive, rows[0].State)
				return nil
			})
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, ev kafka.OutboxEvent) error {
				assert.Equal(t, events.TaskAssignedTopic, ev.Topic)
				assert.Equal(t, "9", ev.AggregateID)
				var payload events.TaskAssignedEvent
				require.NoError(t, json.Unmarshal(ev.Payload, &payload))
				assert.Equal(t, "jdoe", payload.Username)
				assert.Equal(t, "admin", payload.AssignedBy)
				return nil
			})

		deps.repo.EXPECT().FindAssignees(ctx, []int{9}).Return([]task.AssigneeRow{
			{TaskID: 9, UserID: 4, Username: "jdoe", Name: "John", LastName: "Doe"},
		}, nil)
		deps.repo.EXPECT().FindTaskTags(ctx, []int{9}).Return([]task.TagRow{
			{TaskID: 9, TagID: 1, Name: "urgente"},
		}, nil)

		res, err := deps.service.CreateTask(ctx, task.CreateTaskRequest{
			Name:     "Cierre",
			Priority: "h",
			Tags:     []int{1, 2, 1},
			Users:    []string{"jdoe", " jdoe "},
		}, "admin")

		require.NoError(t, err)
		assert.Equal(t, "Task created", res.Message)
		assert.False(t, res.Steps.Degraded())
		assert.Len(t, res.Steps, 2)
		assert.Equal(t, "John Doe", res.Task.Users[0].FullName)
		assert.Equal(t, "urgente", res.Task.Tags[0].Name)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("failed step degrades message but keeps task", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo).Times(2)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, tk *task.Task) error {
			tk.TaskID = 3
			return nil
		})
		deps.repo.EXPECT().FindByID(ctx, 3).Return(activeTask(3, "Inventario"), nil)
		deps.repo.EXPECT().FindUsers(ctx, []string{"ghost"}).Return(nil, nil)
		deps.repo.EXPECT().FindAssignees(ctx, []int{3}).Return(nil, nil)
		deps.repo.EXPECT().FindTaskTags(ctx, []int{3}).Return(nil, nil)

		res, err := deps.service.CreateTask(ctx, task.CreateTaskRequest{
			Name:  "Inventario",
			Users: []string{"ghost"},
		}, "admin")

		require.NoError(t, err)
		assert.Equal(t, 3, res.Task.TaskID)
		assert.Equal(t, task.PriorityMedium, res.Task.Priority)
		assert.True(t, res.Steps.Degraded())
		assert.Equal(t, "attach_users", res.Steps[0].Step)
		assert.Equal(t, taskerrors.ErrUserNotFound.Error(), res.Steps[0].Error)
		assert.Equal(t, "Task created, but some attachments failed", res.Message)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("end before start", func(t *testing.T) {
		deps := setupServiceTest(t)
		start := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 0, -1)

		_, err := deps.service.CreateTask(ctx, task.CreateTaskRequest{
			Name: "x", StartDate: &start, EndDate: &end,
		}, "admin")

		assert.ErrorIs(t, err, taskerrors.ErrInvalidDateRange)
	})
}

func TestTaskService_UpdateTaskState(t *testing.T) {
	ctx := context.Background()
	yes, no := true, false

	t.Run("completing stamps completion date", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, 5).Return(activeTask(5, "Reporte"), nil)
		deps.repo.EXPECT().
			Update(ctx, 5, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ int, fields map[string]any) error {
				assert.Equal(t, true, fields["completed"])
				assert.Equal(t, task.StatusDone, fields["status"])
				assert.IsType(t, time.Time{}, fields["completion_date"])
				return nil
			})
		done := activeTask(5, "Reporte")
		done.Completed = true
		done.Status = task.StatusDone
		deps.repo.EXPECT().FindByID(ctx, 5).Return(done, nil)
		deps.repo.EXPECT().FindAssignees(ctx, []int{5}).Return(nil, nil)
		deps.repo.EXPECT().FindTaskTags(ctx, []int{5}).Return(nil, nil)

		res, err := deps.service.UpdateTaskState(ctx, 5, task.UpdateTaskStateRequest{Completed: &yes}, "admin")

		require.NoError(t, err)
		assert.True(t, res.Completed)
		assert.Equal(t, 5, deps.broadcaster.taskID)
		assert.Len(t, deps.broadcaster.messages, 1)
	})

	t.Run("reopening clears completion date", func(t *testing.T) {
		deps := setupServiceTest(t)

		current := activeTask(5, "Reporte")
		current.Status = task.StatusDone
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, 5).Return(current, nil)
		deps.repo.EXPECT().
			Update(ctx, 5, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ int, fields map[string]any) error {
				assert.Equal(t, false, fields["completed"])
				assert.Nil(t, fields["completion_date"])
				assert.Equal(t, task.StatusPending, fields["status"])
				return nil
			})
		deps.repo.EXPECT().FindByID(ctx, 5).Return(activeTask(5, "Reporte"), nil)
		deps.repo.EXPECT().FindAssignees(ctx, []int{5}).Return(nil, nil)
		deps.repo.EXPECT().FindTaskTags(ctx, []int{5}).Return(nil, nil)

		_, err := deps.service.UpdateTaskState(ctx, 5, task.UpdateTaskStateRequest{Completed: &no}, "admin")

		assert.NoError(t, err)
	})

	t.Run("unknown status", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.UpdateTaskState(ctx, 5, task.UpdateTaskStateRequest{Completed: &no, Status: "LATER"}, "admin")

		assert.ErrorIs(t, err, taskerrors.ErrInvalidStatus)
	})

	t.Run("task not found", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, 5).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.UpdateTaskState(ctx, 5, task.UpdateTaskStateRequest{Completed: &yes}, "admin")

		assert.ErrorIs(t, err, taskerrors.ErrTaskNotFound)
	})
}

func TestTaskService_UpdateTask_BroadcastFailureIsIgnored(t *testing.T) {
	ctx := context.Background()
	deps := setupServiceTest(t)
	deps.broadcaster.err = errors.New("redis down")
	name := "Cierre fiscal"

	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectCommit()
	deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
	deps.repo.EXPECT().FindByID(ctx, 2).Return(activeTask(2, "Cierre"), nil)
	deps.repo.EXPECT().Update(ctx, 2, gomock.Any()).Return(nil)
	deps.repo.EXPECT().FindByID(ctx, 2).Return(activeTask(2, name), nil)
	deps.repo.EXPECT().FindAssignees(ctx, []int{2}).Return(nil, nil)
	deps.repo.EXPECT().FindTaskTags(ctx, []int{2}).Return(nil, nil)

	res, err := deps.service.UpdateTask(ctx, 2, task.UpdateTaskRequest{Name: &name}, "admin")

	require.NoError(t, err)
	assert.Equal(t, name, res.Name)
	assert.Len(t, deps.broadcaster.messages, 1)
}

func TestTaskService_AddTags_ReactivatesRemovedLink(t *testing.T) {
	ctx := context.Background()
	deps := setupServiceTest(t)

	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectCommit()
	deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
	deps.repo.EXPECT().FindByID(ctx, 1).Return(activeTask(1, "x"), nil)
	deps.repo.EXPECT().FindTags(ctx, []int{7, 8}).Return([]task.Tag{{TagID: 7}, {TagID: 8}}, nil)
	deps.repo.EXPECT().FindTagLinks(ctx, 1, []int{7, 8}).Return([]task.TaskTag{
		{ID: 30, TaskID: 1, TagID: 7, Base: entity.Base{State: entity.StateInactive}},
	}, nil)
	deps.repo.EXPECT().SetTagLinksState(ctx, 1, []int{7}, entity.StateActive, "admin").Return(nil)
	deps.repo.EXPECT().
		CreateTagLinks(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, rows []task.TaskTag) error {
			require.Len(t, rows, 1)
			assert.Equal(t, 8, rows[0].TagID)
			return nil
		})

	err := deps.service.AddTags(ctx, 1, []int{7, 8}, "admin")

	assert.NoError(t, err)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestTaskService_AddTags_UnknownTag(t *testing.T) {
	ctx := context.Background()
	deps := setupServiceTest(t)

	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectRollback()
	deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
	deps.repo.EXPECT().FindByID(ctx, 1).Return(activeTask(1, "x"), nil)
	deps.repo.EXPECT().FindTags(ctx, []int{99}).Return(nil, nil)

	err := deps.service.AddTags(ctx, 1, []int{99}, "admin")

	assert.ErrorIs(t, err, taskerrors.ErrTagNotFound)
}

func TestTaskService_Describe(t *testing.T) {
	ctx := context.Background()
	deps := setupServiceTest(t)

	deps.repo.EXPECT().FindByID(ctx, 12).Return(activeTask(12, "Auditoría"), nil)

	name, err := deps.service.Describe(ctx, "12")
	assert.NoError(t, err)
	assert.Equal(t, "Auditoría", name)

	_, err = deps.service.Describe(ctx, "abc")
	assert.ErrorIs(t, err, taskerrors.ErrInvalidTaskID)
}
