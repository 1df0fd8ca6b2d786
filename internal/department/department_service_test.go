package department_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/fenixfl1/CompuPay/internal/department"
	departmenterrors "github.com/fenixfl1/CompuPay/internal/department/errors"
	departmentMock "github.com/fenixfl1/CompuPay/internal/department/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type serviceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	service   department.Service
	repo      *departmentMock.MockRepository
	redismock redismock.ClientMock
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, _ := sqlmock.New()
	dbRedis, redisMock := redismock.NewClientMock()
	repo := departmentMock.NewMockRepository(ctrl)

	svc := department.NewService(db, repo, dbRedis, nil, zap.NewNop())

	return &serviceDeps{
		db:        db,
		sqlMock:   sqlMock,
		service:   svc,
		repo:      repo,
		redismock: redisMock,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestDepartmentService_GetOptions(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit skips repository", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		cached, _ := json.Marshal([]department.DepartmentOption{
			{Value: 1, Label: "Contabilidad"},
			{Value: 2, Label: "Tecnología"},
		})
		deps.redismock.ExpectGet(department.OptionsCacheKey).SetVal(string(cached))
		deps.repo.EXPECT().FindOptions(gomock.Any()).Times(0)

		opts, err := deps.service.GetOptions(ctx)

		assert.NoError(t, err)
		assert.Len(t, opts, 2)
		assert.Equal(t, "Contabilidad", opts[0].Label)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("cache miss loads and stores", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.redismock.ExpectGet(department.OptionsCacheKey).RedisNil()
		deps.repo.EXPECT().
			FindOptions(ctx).
			Return([]department.Department{{DepartmentID: 4, Name: "Finanzas"}}, nil).
			Times(1)
		deps.redismock.Regexp().ExpectSet(department.OptionsCacheKey, `.*`, 30*time.Minute).SetVal("OK")

		opts, err := deps.service.GetOptions(ctx)

		assert.NoError(t, err)
		assert.Equal(t, []department.DepartmentOption{{Value: 4, Label: "Finanzas"}}, opts)
	})

	t.Run("repository error", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.redismock.ExpectGet(department.OptionsCacheKey).RedisNil()
		deps.repo.EXPECT().FindOptions(ctx).Return(nil, errors.New("db down"))

		opts, err := deps.service.GetOptions(ctx)

		assert.Error(t, err)
		assert.Nil(t, opts)
	})
}

func TestDepartmentService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success invalidates options cache", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, d *department.Department) error {
				assert.Equal(t, "admin", d.CreatedBy)
				assert.Equal(t, "A", d.State)
				d.DepartmentID = 7
				return nil
			})
		deps.redismock.ExpectDel(department.OptionsCacheKey).SetVal(1)

		res, err := deps.service.Create(ctx, department.CreateDepartmentRequest{Name: "Ventas"}, "admin")

		assert.NoError(t, err)
		assert.Equal(t, 7, res.DepartmentID)
		assert.Equal(t, "Ventas", res.Name)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("duplicate name", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			Return(&pgconn.PgError{Code: "23505", ConstraintName: "uq_department_name"})

		_, err := deps.service.Create(ctx, department.CreateDepartmentRequest{Name: "Ventas"}, "admin")

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentNameExists)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestDepartmentService_Update(t *testing.T) {
	ctx := context.Background()
	name := "Operaciones"

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			Update(ctx, 3, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ int, fields map[string]any) error {
				assert.Equal(t, name, fields["name"])
				assert.Equal(t, "admin", fields["updated_by"])
				assert.Contains(t, fields, "updated_at")
				return nil
			})
		deps.repo.EXPECT().FindByID(ctx, 3).Return(&department.DepartmentRow{
			Department:    department.Department{DepartmentID: 3, Name: name},
			EmployeeCount: 12,
		}, nil)
		deps.redismock.ExpectDel(department.OptionsCacheKey).SetVal(1)

		res, err := deps.service.Update(ctx, 3, department.UpdateDepartmentRequest{Name: &name}, "admin")

		assert.NoError(t, err)
		assert.Equal(t, int64(12), res.EmployeeCount)
	})

	t.Run("empty payload", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Update(ctx, 3, department.UpdateDepartmentRequest{}, "admin")

		assert.ErrorIs(t, err, departmenterrors.ErrEmptyUpdate)
	})

	t.Run("invalid state", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		state := "X"
		_, err := deps.service.Update(ctx, 3, department.UpdateDepartmentRequest{State: &state}, "admin")

		assert.Error(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Update(ctx, 99, gomock.Any()).Return(gorm.ErrRecordNotFound)

		_, err := deps.service.Update(ctx, 99, department.UpdateDepartmentRequest{Name: &name}, "admin")

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentNotFound)
	})
}

func TestDepartmentService_Describe(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()
	ctx := context.Background()

	deps.repo.EXPECT().FindByID(ctx, 5).Return(&department.DepartmentRow{
		Department: department.Department{DepartmentID: 5, Name: "Legal"},
	}, nil)

	repr, err := deps.service.Describe(ctx, "5")
	assert.NoError(t, err)
	assert.Equal(t, "Legal", repr)

	_, err = deps.service.Describe(ctx, "abc")
	assert.ErrorIs(t, err, departmenterrors.ErrInvalidDepartmentID)
}
