package dashboard_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fenixfl1/CompuPay/internal/activitylog"
	"github.com/fenixfl1/CompuPay/internal/dashboard"
	dashboardMock "github.com/fenixfl1/CompuPay/internal/dashboard/mock"
	"github.com/fenixfl1/CompuPay/internal/shared/filter"
	"github.com/fenixfl1/CompuPay/internal/shared/response"

	"github.com/go-redis/redismock/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type serviceDeps struct {
	service   dashboard.Service
	repo      *dashboardMock.MockRepository
	redismock redismock.ClientMock
}

type fakeActivity struct {
	activitylog.Service
	recent func(ctx context.Context, res filter.Result, page response.Page) ([]activitylog.ActivityResponse, int64, error)
}

func (f *fakeActivity) Recent(ctx context.Context, res filter.Result, page response.Page) ([]activitylog.ActivityResponse, int64, error) {
	return f.recent(ctx, res, page)
}

func setupServiceTest(t *testing.T, activity activitylog.Service) *serviceDeps {
	ctrl := gomock.NewController(t)
	rdb, redisMock := redismock.NewClientMock()
	repo := dashboardMock.NewMockRepository(ctrl)

	return &serviceDeps{
		service:   dashboard.NewService(repo, activity, rdb, zap.NewNop()),
		repo:      repo,
		redismock: redisMock,
	}
}

func color(s string) *string { return &s }

func TestDashboardService_EmployeesByDepartment(t *testing.T) {
	t.Run("miss loads and caches", func(t *testing.T) {
		deps := setupServiceTest(t, nil)
		ctx := context.Background()

		deps.redismock.ExpectGet(dashboard.DepartmentsCacheKey).RedisNil()
		deps.repo.EXPECT().EmployeesByDepartment(ctx).Return([]dashboard.DepartmentCount{
			{Name: "Finanzas", Value: 4, Fill: color("#ff0000")},
			{Name: "Ventas", Value: 0},
		}, nil)
		deps.redismock.Regexp().ExpectSet(dashboard.DepartmentsCacheKey, `.*`, 5*time.Minute).SetVal("OK")

		rows, err := deps.service.EmployeesByDepartment(ctx)

		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, int64(4), rows[0].Value)
		assert.Nil(t, rows[1].Fill)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("hit skips the database", func(t *testing.T) {
		deps := setupServiceTest(t, nil)

		deps.redismock.ExpectGet(dashboard.DepartmentsCacheKey).
			SetVal(`[{"name":"Finanzas","value":4,"fill":"#ff0000"}]`)

		rows, err := deps.service.EmployeesByDepartment(context.Background())

		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "#ff0000", *rows[0].Fill)
	})

	t.Run("repository failure is not cached", func(t *testing.T) {
		deps := setupServiceTest(t, nil)
		ctx := context.Background()

		deps.redismock.ExpectGet(dashboard.DepartmentsCacheKey).RedisNil()
		deps.repo.EXPECT().EmployeesByDepartment(ctx).Return(nil, errors.New("db down"))

		_, err := deps.service.EmployeesByDepartment(ctx)

		assert.Error(t, err)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})
}

func TestDashboardService_UserStatistics(t *testing.T) {
	deps := setupServiceTest(t, nil)
	ctx := context.Background()

	deps.redismock.ExpectGet(dashboard.StatisticsCacheKey).RedisNil()
	deps.repo.EXPECT().UserCounts(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, monthStart time.Time) (dashboard.UserCounts, error) {
			assert.Equal(t, 1, monthStart.Day())
			assert.Zero(t, monthStart.Hour())
			return dashboard.UserCounts{
				TotalRegistered: 12,
				TotalInterns:    2,
				NewEmployees:    3,
				TotalEmployees:  9,
			}, nil
		})
	deps.repo.EXPECT().EmployeesByMonth(ctx).Return([]dashboard.MonthRow{
		{Month: time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), Value: 5},
		{Month: time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), Value: 4},
	}, nil)
	deps.redismock.Regexp().ExpectSet(dashboard.StatisticsCacheKey, `.*`, 5*time.Minute).SetVal("OK")

	stats, err := deps.service.UserStatistics(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(12), stats.TotalRegistered)
	assert.Equal(t, int64(2), stats.TotalInterns)
	assert.Equal(t, int64(3), stats.NewEmployees)
	assert.Equal(t, int64(9), stats.TotalEmployees)
	assert.Equal(t, []dashboard.MonthCount{{Month: "Enero", Value: 5}, {Month: "Marzo", Value: 4}}, stats.LineChart)
}

func TestDashboardService_SalaryByDepartment(t *testing.T) {
	t.Run("shares of the grand total", func(t *testing.T) {
		deps := setupServiceTest(t, nil)
		ctx := context.Background()

		deps.redismock.ExpectGet(dashboard.SalaryCacheKey).RedisNil()
		deps.repo.EXPECT().SalaryByDepartment(ctx).Return([]dashboard.SalaryRow{
			{Department: "Finanzas", Fill: color("#00ff00"), Total: decimal.RequireFromString("60000"), Headcount: 2},
			{Department: "Ventas", Total: decimal.RequireFromString("30000"), Headcount: 3},
		}, nil)
		deps.redismock.Regexp().ExpectSet(dashboard.SalaryCacheKey, `.*`, 5*time.Minute).SetVal("OK")

		rows, err := deps.service.SalaryByDepartment(ctx)

		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "30000.00", rows[0].Average.StringFixed(2))
		assert.Equal(t, "66.67", rows[0].Percent.StringFixed(2))
		assert.Equal(t, "10000.00", rows[1].Average.StringFixed(2))
		assert.Equal(t, "33.33", rows[1].Percent.StringFixed(2))
	})

	t.Run("no salaries", func(t *testing.T) {
		deps := setupServiceTest(t, nil)
		ctx := context.Background()

		deps.redismock.ExpectGet(dashboard.SalaryCacheKey).RedisNil()
		deps.repo.EXPECT().SalaryByDepartment(ctx).Return(nil, nil)
		deps.redismock.Regexp().ExpectSet(dashboard.SalaryCacheKey, `.*`, 5*time.Minute).SetVal("OK")

		rows, err := deps.service.SalaryByDepartment(ctx)

		require.NoError(t, err)
		assert.Empty(t, rows)
	})
}

func TestDashboardService_TaskPerformance(t *testing.T) {
	t.Run("fills every day and department", func(t *testing.T) {
		deps := setupServiceTest(t, nil)
		ctx := context.Background()
		from := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC)
		key := "dashboard:task-performance:2026-03-01:2026-03-03:2,5"

		deps.redismock.ExpectGet(key).RedisNil()
		deps.repo.EXPECT().ActiveDepartments(ctx, []int{2, 5}).Return([]dashboard.DepartmentRef{
			{Name: "Finanzas", Fill: color("#00ff00")},
			{Name: "Ventas"},
		}, nil)
		deps.repo.EXPECT().TaskCountsByDay(ctx, from, to.AddDate(0, 0, 1), []int{2, 5}).Return([]dashboard.TaskCountRow{
			{Day: from, Department: "Ventas", Total: 3},
			{Day: to, Department: "Finanzas", Total: 1},
		}, nil)
		deps.redismock.Regexp().ExpectSet(key, `.*`, 5*time.Minute).SetVal("OK")

		res, err := deps.service.TaskPerformance(ctx, dashboard.TaskPerformanceCondition{
			DateRange:   []string{"2026-03-01", "2026-03-03"},
			Departments: []int{5, 2, 5},
		})

		require.NoError(t, err)
		require.Len(t, res.Performance, 3)
		assert.Equal(t, dashboard.DayPerformance{
			Date:  "2026-03-01",
			Day:   1,
			Tasks: map[string]int64{"Finanzas": 0, "Ventas": 3},
		}, res.Performance[0])
		assert.Equal(t, map[string]int64{"Finanzas": 0, "Ventas": 0}, res.Performance[1].Tasks)
		assert.Equal(t, map[string]int64{"Finanzas": 1, "Ventas": 0}, res.Performance[2].Tasks)
		assert.Len(t, res.Departments, 2)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("rejects bad ranges before querying", func(t *testing.T) {
		cases := []struct {
			name  string
			dates []string
			want  error
		}{
			{"malformed", []string{"01/03/2026", "2026-03-03"}, dashboard.ErrInvalidDate},
			{"reversed", []string{"2026-03-03", "2026-03-01"}, dashboard.ErrInvalidDateRange},
			{"too long", []string{"2025-01-01", "2026-03-01"}, dashboard.ErrDateRangeTooLong},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				deps := setupServiceTest(t, nil)

				_, err := deps.service.TaskPerformance(context.Background(), dashboard.TaskPerformanceCondition{DateRange: tc.dates})

				assert.ErrorIs(t, err, tc.want)
			})
		}
	})
}

func TestDashboardService_PaymentDetail(t *testing.T) {
	deps := setupServiceTest(t, nil)
	ctx := context.Background()
	jan := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)

	deps.redismock.ExpectGet(dashboard.PaymentsCacheKey).RedisNil()
	deps.repo.EXPECT().PaymentTotalsByMonth(ctx).Return([]dashboard.ConceptMonthRow{
		{Month: jan, Concept: "SALARIO", Total: decimal.RequireFromString("50000")},
		{Month: jan, Concept: "AFP", Total: decimal.RequireFromString("1435")},
		{Month: feb, Concept: "SALARIO", Total: decimal.RequireFromString("52000")},
	}, nil)
	deps.redismock.Regexp().ExpectSet(dashboard.PaymentsCacheKey, `.*`, 5*time.Minute).SetVal("OK")

	res, err := deps.service.PaymentDetail(ctx)

	require.NoError(t, err)
	require.Len(t, res.Data, 2)
	assert.Equal(t, "Enero", res.Data[0].Month)
	assert.Equal(t, "2026-01", res.Data[0].Period)
	assert.Equal(t, "1435", res.Data[0].Concepts["AFP"].String())
	assert.Equal(t, "Febrero", res.Data[1].Month)
	assert.True(t, res.Data[1].Concepts["AFP"].IsZero())
	assert.Equal(t, "52000", res.Data[1].Concepts["SALARIO"].String())
	require.Len(t, res.Concepts, 2)
	assert.Equal(t, "AFP", res.Concepts[0].Concept)
	assert.Equal(t, "SALARIO", res.Concepts[1].Concept)
	assert.NotEqual(t, res.Concepts[0].Fill, res.Concepts[1].Fill)
	assert.NoError(t, deps.redismock.ExpectationsWereMet())
}

func TestDashboardService_RecentActivities(t *testing.T) {
	t.Run("delegates to the activity log", func(t *testing.T) {
		activity := &fakeActivity{
			recent: func(_ context.Context, _ filter.Result, page response.Page) ([]activitylog.ActivityResponse, int64, error) {
				assert.Equal(t, 1, page.Page)
				return []activitylog.ActivityResponse{{ID: 7, Action: "change"}}, 1, nil
			},
		}
		deps := setupServiceTest(t, activity)

		rows, total, err := deps.service.RecentActivities(context.Background(), filter.Result{}, response.Page{Page: 1, PageSize: 10})

		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, int64(7), rows[0].ID)
	})

	t.Run("no activity log configured", func(t *testing.T) {
		deps := setupServiceTest(t, nil)

		rows, total, err := deps.service.RecentActivities(context.Background(), filter.Result{}, response.Page{Page: 1, PageSize: 10})

		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, rows)
	})
}
