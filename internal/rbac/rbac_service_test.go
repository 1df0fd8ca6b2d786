package rbac_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/fenixfl1/CompuPay/internal/domain"
	"github.com/fenixfl1/CompuPay/internal/rbac"
	rbacerrors "github.com/fenixfl1/CompuPay/internal/rbac/errors"
	"github.com/fenixfl1/CompuPay/internal/rbac/infra"
	rbacMock "github.com/fenixfl1/CompuPay/internal/rbac/mock"
	"github.com/fenixfl1/CompuPay/internal/shared/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeCounter struct {
	calls []string
	next  int64
}

func (f *fakeCounter) NextValue(_ context.Context, scope, key string, floor int64) (int64, error) {
	f.calls = append(f.calls, scope+":"+key)
	if f.next <= floor {
		f.next = floor + 1
	}
	return f.next, nil
}

type serviceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	repo    *rbacMock.MockRepository
	counter *fakeCounter
	service rbac.Service
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, _ := sqlmock.New()
	repo := rbacMock.NewMockRepository(ctrl)
	repo.EXPECT().WithTx(gomock.Any()).Return(repo).AnyTimes()

	enforcer, err := infra.NewEnforcer("")
	assert.NoError(t, err)

	counter := &fakeCounter{}
	svc := rbac.NewService(db, repo, enforcer, counter, nil, zap.NewNop())

	return &serviceDeps{db: db, sqlMock: sqlMock, repo: repo, counter: counter, service: svc}
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

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func TestRBACService_Enforce(t *testing.T) {
	ctx := context.Background()

	expectPolicy := func(deps *serviceDeps) {
		deps.repo.EXPECT().FindUser(gomock.Any(), "mperez").
			Return(&rbac.UserRef{UserID: 4, Username: "mperez"}, nil)
		deps.repo.EXPECT().FindRoleNames(gomock.Any(), 4).Return([]string{"RRHH"}, nil)
		deps.repo.EXPECT().FindRolePolicies(gomock.Any(), 4).Return([]rbac.PolicyRow{
			{Subject: "RRHH", Path: "/users", Operation: "view"},
			{Subject: "RRHH", Path: "/users", Operation: "create"},
		}, nil)
		deps.repo.EXPECT().FindGrantPolicies(gomock.Any(), 4).Return([]rbac.PolicyRow{
			{Subject: "mperez", Path: "payroll/*", Operation: "process"},
		}, nil)
	}

	tests := []struct {
		name     string
		resource string
		action   string
		allowed  bool
	}{
		{"role operation allowed", "users", "create", true},
		{"role lacks operation", "users", "delete", false},
		{"direct grant matches sub path", "payroll/entries", "process", true},
		{"unrelated resource denied", "departments", "view", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := setupServiceTest(t)
			defer deps.db.Close()
			expectPolicy(deps)

			allowed, err := deps.service.Enforce(ctx, domain.EnforceRequest{
				Subject:  "mperez",
				Resource: tt.resource,
				Action:   tt.action,
			})

			assert.NoError(t, err)
			assert.Equal(t, tt.allowed, allowed)
		})
	}

	t.Run("superuser flag bypasses policy", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		allowed, err := deps.service.Enforce(ctx, domain.EnforceRequest{
			Subject: "admin", IsSuperuser: true, Resource: "payroll", Action: "process",
		})

		assert.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("unknown user", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()
		deps.repo.EXPECT().FindUser(gomock.Any(), "ghost").Return(nil, gorm.ErrRecordNotFound)

		allowed, err := deps.service.Enforce(ctx, domain.EnforceRequest{
			Subject: "ghost", Resource: "users", Action: "view",
		})

		assert.ErrorIs(t, err, rbacerrors.ErrUserNotFound)
		assert.False(t, allowed)
	})
}

func TestRBACService_MenuOptions(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()
	ctx := context.Background()

	deps.repo.EXPECT().FindUser(gomock.Any(), "mperez").
		Return(&rbac.UserRef{UserID: 4, Username: "mperez"}, nil)
	deps.repo.EXPECT().ActiveRoleIDs(gomock.Any(), 4).Return([]int{2}, nil)
	deps.repo.EXPECT().FindRootMenuOptions(gomock.Any(), 4, []int{2}).Return([]rbac.MenuOption{
		{MenuOptionID: "1", Name: "Dashboard", Path: strPtr("/dashboard"), SortOrder: 0},
		{MenuOptionID: "2", Name: "Nómina", Path: strPtr("/payroll"), SortOrder: 1},
	}, nil)
	deps.repo.EXPECT().FindChildMenuOptions(gomock.Any(), []string{"1", "2"}).Return([]rbac.MenuOption{
		{MenuOptionID: "2-1", Name: "Historial", ParentID: strPtr("2"), SortOrder: 0},
		{MenuOptionID: "2-2", Name: "Ajustes", ParentID: strPtr("2"), SortOrder: 1},
	}, nil)
	deps.repo.EXPECT().FindChildMenuOptions(gomock.Any(), []string{"2-1", "2-2"}).Return(nil, nil)
	deps.repo.EXPECT().FindMenuOperations(gomock.Any(), 4, []string{"1", "2", "2-1", "2-2"}).
		Return([]rbac.MenuOperationRow{
			{MenuOptionID: "2-1", OperationID: 1},
			{MenuOptionID: "2-1", OperationID: 5},
		}, nil)
	deps.repo.EXPECT().FindMenuParameters(gomock.Any(), []string{"1", "2", "2-1", "2-2"}).
		Return([]rbac.MenuParameterRow{{MenuOptionID: "1", Name: "refresh", Value: "60"}}, nil)

	tree, err := deps.service.MenuOptions(ctx, "mperez")

	assert.NoError(t, err)
	assert.Len(t, tree, 2)
	assert.Equal(t, "1", tree[0].MenuOptionID)
	assert.Equal(t, map[string]string{"refresh": "60"}, tree[0].Parameters)
	assert.Nil(t, tree[0].Children)

	assert.Len(t, tree[1].Children, 2)
	assert.Equal(t, "2-1", tree[1].Children[0].MenuOptionID)
	assert.Equal(t, []int{1, 5}, tree[1].Children[0].Operations)
	assert.Empty(t, tree[1].Children[1].Operations)
}

func TestRBACService_CreateMenuOption(t *testing.T) {
	ctx := context.Background()

	t.Run("child id derives from parent and counter", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()
		expectTx(t, deps.sqlMock, true)

		parent := strPtr("2")
		deps.repo.EXPECT().FindMenuOption(gomock.Any(), "2").Return(&rbac.MenuOption{MenuOptionID: "2"}, nil)
		deps.repo.EXPECT().CountSiblings(gomock.Any(), parent, "").Return(int64(2), nil)
		deps.repo.EXPECT().SiblingOrderTaken(gomock.Any(), parent, 2, "").Return(false, nil)
		deps.repo.EXPECT().CreateMenuOption(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, opt *rbac.MenuOption) error {
				assert.Equal(t, "2-3", opt.MenuOptionID)
				assert.Equal(t, rbac.MenuTypeItem, opt.Type)
				assert.Equal(t, entity.StateActive, opt.State)
				assert.Equal(t, "admin", opt.CreatedBy)
				return nil
			})
		deps.repo.EXPECT().AttachMenuRoles(gomock.Any(), "2-3", []int{1}, "admin").Return(nil)
		deps.repo.EXPECT().AttachMenuParameters(gomock.Any(), "2-3", gomock.Nil(), "admin").Return(nil)

		res, err := deps.service.CreateMenuOption(ctx, rbac.CreateMenuOptionRequest{
			Name:     "Deducciones",
			ParentID: parent,
			Order:    intPtr(2),
			Roles:    []int{1},
		}, "admin")

		assert.NoError(t, err)
		assert.Equal(t, "2-3", res.MenuOptionID)
		assert.Equal(t, []string{"menu_option:2"}, deps.counter.calls)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("root id uses root counter", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()
		expectTx(t, deps.sqlMock, true)

		deps.repo.EXPECT().CountSiblings(gomock.Any(), (*string)(nil), "").Return(int64(4), nil)
		deps.repo.EXPECT().SiblingOrderTaken(gomock.Any(), (*string)(nil), 4, "").Return(false, nil)
		deps.repo.EXPECT().CreateMenuOption(gomock.Any(), gomock.Any()).Return(nil)
		deps.repo.EXPECT().AttachMenuRoles(gomock.Any(), "5", gomock.Any(), "admin").Return(nil)
		deps.repo.EXPECT().AttachMenuParameters(gomock.Any(), "5", gomock.Any(), "admin").Return(nil)

		res, err := deps.service.CreateMenuOption(ctx, rbac.CreateMenuOptionRequest{
			Name:  "Tareas",
			Type:  "group",
			Order: intPtr(4),
		}, "admin")

		assert.NoError(t, err)
		assert.Equal(t, "5", res.MenuOptionID)
		assert.Equal(t, []string{"menu_option:root"}, deps.counter.calls)
	})

	t.Run("order beyond sibling count", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()
		expectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().CountSiblings(gomock.Any(), (*string)(nil), "").Return(int64(2), nil)
		deps.repo.EXPECT().CreateMenuOption(gomock.Any(), gomock.Any()).Times(0)

		_, err := deps.service.CreateMenuOption(ctx, rbac.CreateMenuOptionRequest{
			Name: "Fuera", Order: intPtr(3),
		}, "admin")

		assert.ErrorIs(t, err, rbacerrors.ErrMenuOrderOutOfRange)
		assert.Empty(t, deps.counter.calls)
	})

	t.Run("two siblings with the same order", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()
		expectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().CountSiblings(gomock.Any(), (*string)(nil), "").Return(int64(2), nil)
		deps.repo.EXPECT().SiblingOrderTaken(gomock.Any(), (*string)(nil), 1, "").Return(true, nil)

		_, err := deps.service.CreateMenuOption(ctx, rbac.CreateMenuOptionRequest{
			Name: "Duplicado", Order: intPtr(1),
		}, "admin")

		assert.ErrorIs(t, err, rbacerrors.ErrMenuOrderTaken)
	})

	t.Run("invalid type", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.CreateMenuOption(ctx, rbac.CreateMenuOptionRequest{
			Name: "X", Type: "button", Order: intPtr(0),
		}, "admin")

		assert.ErrorIs(t, err, rbacerrors.ErrInvalidMenuType)
	})
}

func TestRBACService_UpdateMenuOption_OrderChecked(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()
	expectTx(t, deps.sqlMock, false)

	parent := strPtr("2")
	deps.repo.EXPECT().FindMenuOption(gomock.Any(), "2-1").
		Return(&rbac.MenuOption{MenuOptionID: "2-1", ParentID: parent, SortOrder: 0}, nil)
	deps.repo.EXPECT().CountSiblings(gomock.Any(), parent, "2-1").Return(int64(1), nil)
	deps.repo.EXPECT().SiblingOrderTaken(gomock.Any(), parent, 1, "2-1").Return(true, nil)
	deps.repo.EXPECT().UpdateMenuOption(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := deps.service.UpdateMenuOption(context.Background(), "2-1",
		rbac.UpdateMenuOptionRequest{Order: intPtr(1)}, "admin")

	assert.ErrorIs(t, err, rbacerrors.ErrMenuOrderTaken)
}

func TestRBACService_AssignRoles(t *testing.T) {
	ctx := context.Background()
	user := &rbac.UserRef{UserID: 9, Username: "jdoe"}

	t.Run("reactivates inactive rows and inserts new ones", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()
		expectTx(t, deps.sqlMock, true)

		deps.repo.EXPECT().FindUser(gomock.Any(), "jdoe").Return(user, nil)
		deps.repo.EXPECT().CountActiveRoles(gomock.Any(), []int{1, 2, 3}).Return(int64(3), nil)
		deps.repo.EXPECT().FindAssignments(gomock.Any(), 9, []int{1, 2, 3}).Return([]rbac.RoleAssignment{
			{ID: 10, RoleID: 1, UserID: 9, Base: entity.Base{State: entity.StateActive}},
			{ID: 11, RoleID: 2, UserID: 9, Base: entity.Base{State: entity.StateInactive}},
		}, nil)
		deps.repo.EXPECT().SetAssignmentsState(gomock.Any(), 9, []int{2}, entity.StateActive, "admin").Return(nil)
		deps.repo.EXPECT().CreateAssignments(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, rows []rbac.RoleAssignment) error {
				assert.Len(t, rows, 1)
				assert.Equal(t, 3, rows[0].RoleID)
				assert.Equal(t, 9, rows[0].UserID)
				return nil
			})

		err := deps.service.AssignRoles(ctx, "jdoe", []int{1, 2, 3, 3}, "admin")

		assert.NoError(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("unknown role", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()
		expectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().FindUser(gomock.Any(), "jdoe").Return(user, nil)
		deps.repo.EXPECT().CountActiveRoles(gomock.Any(), []int{1, 99}).Return(int64(1), nil)

		err := deps.service.AssignRoles(ctx, "jdoe", []int{1, 99}, "admin")

		assert.ErrorIs(t, err, rbacerrors.ErrRoleNotFound)
	})

	t.Run("empty list", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		err := deps.service.AssignRoles(ctx, "jdoe", nil, "admin")

		assert.ErrorIs(t, err, rbacerrors.ErrEmptyRoleList)
	})
}

func TestRBACService_ChangeUserRoles(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()
	expectTx(t, deps.sqlMock, true)

	gomock.InOrder(
		deps.repo.EXPECT().FindUser(gomock.Any(), "jdoe").Return(&rbac.UserRef{UserID: 9, Username: "jdoe"}, nil),
		deps.repo.EXPECT().SetAssignmentsState(gomock.Any(), 9, gomock.Nil(), entity.StateInactive, "admin").Return(nil),
		deps.repo.EXPECT().CountActiveRoles(gomock.Any(), []int{4}).Return(int64(1), nil),
		deps.repo.EXPECT().FindAssignments(gomock.Any(), 9, []int{4}).Return(nil, nil),
		deps.repo.EXPECT().CreateAssignments(gomock.Any(), gomock.Len(1)).Return(nil),
	)

	err := deps.service.ChangeUserRoles(context.Background(), "jdoe", []int{4}, "admin")

	assert.NoError(t, err)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestRBACService_GrantOperation(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the grant and syncs menu options", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()
		expectTx(t, deps.sqlMock, true)

		deps.repo.EXPECT().FindUser(gomock.Any(), "jdoe").Return(&rbac.UserRef{UserID: 9, Username: "jdoe"}, nil)
		deps.repo.EXPECT().FindOperation(gomock.Any(), 5).Return(&rbac.Operation{OperationID: 5, Name: "process"}, nil)
		deps.repo.EXPECT().FindUserPermission(gomock.Any(), 9, 5).Return(nil, gorm.ErrRecordNotFound)
		deps.repo.EXPECT().CreateUserPermission(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, p *rbac.UserPermission) error {
				p.UserPermissionID = 31
				return nil
			})
		deps.repo.EXPECT().SyncPermissionMenuOptions(gomock.Any(), 31, []string{"2", "2-1"}, "admin").Return(nil)

		err := deps.service.GrantOperation(ctx, rbac.GrantOperationRequest{
			Username: "jdoe", OperationID: 5, MenuOptionIDs: []string{"2", " 2-1 ", "2"},
		}, "admin")

		assert.NoError(t, err)
	})

	t.Run("reactivates a revoked grant", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()
		expectTx(t, deps.sqlMock, true)

		deps.repo.EXPECT().FindUser(gomock.Any(), "jdoe").Return(&rbac.UserRef{UserID: 9, Username: "jdoe"}, nil)
		deps.repo.EXPECT().FindOperation(gomock.Any(), 5).Return(&rbac.Operation{OperationID: 5}, nil)
		deps.repo.EXPECT().FindUserPermission(gomock.Any(), 9, 5).Return(&rbac.UserPermission{
			UserPermissionID: 31, UserID: 9, OperationID: 5, Base: entity.Base{State: entity.StateInactive},
		}, nil)
		deps.repo.EXPECT().SetUserPermissionState(gomock.Any(), 31, entity.StateActive, "admin").Return(nil)
		deps.repo.EXPECT().CreateUserPermission(gomock.Any(), gomock.Any()).Times(0)
		deps.repo.EXPECT().SyncPermissionMenuOptions(gomock.Any(), 31, []string{"3"}, "admin").Return(nil)

		err := deps.service.GrantOperation(ctx, rbac.GrantOperationRequest{
			Username: "jdoe", OperationID: 5, MenuOptionIDs: []string{"3"},
		}, "admin")

		assert.NoError(t, err)
	})
}

func TestRBACService_Describe(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	deps.repo.EXPECT().FindRoleByID(gomock.Any(), 3).
		Return(&rbac.RoleRow{Role: rbac.Role{RoleID: 3, Name: "Contabilidad"}}, nil)

	label, err := deps.service.Describe(context.Background(), "3")

	assert.NoError(t, err)
	assert.Equal(t, "Contabilidad", label)
}
