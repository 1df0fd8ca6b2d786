package dashboard_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fenixfl1/CompuPay/internal/dashboard"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	dashboard.Service
	salaryFn func(ctx context.Context) ([]dashboard.DepartmentSalary, error)
	taskFn   func(ctx context.Context, cond dashboard.TaskPerformanceCondition) (dashboard.TaskPerformance, error)
}

func (f *fakeService) TaskPerformance(ctx context.Context, cond dashboard.TaskPerformanceCondition) (dashboard.TaskPerformance, error) {
	return f.taskFn(ctx, cond)
}

func (f *fakeService) SalaryByDepartment(ctx context.Context) ([]dashboard.DepartmentSalary, error) {
	return f.salaryFn(ctx)
}

func TestHandler_SalaryByDepartment(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("ok", func(t *testing.T) {
		h := dashboard.NewHandler(&fakeService{salaryFn: func(context.Context) ([]dashboard.DepartmentSalary, error) {
			return []dashboard.DepartmentSalary{{
				Department: "Ventas",
				Total:      decimal.RequireFromString("100.5"),
				Average:    decimal.RequireFromString("50.25"),
				Percent:    decimal.RequireFromString("100"),
			}}, nil
		}})
		r := gin.New()
		r.GET("/dashboard/salary-by-department", h.SalaryByDepartment)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/dashboard/salary-by-department", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"data":[{"department":"Ventas","fill":null,"total_salary":"100.5","average_salary":"50.25","percent":"100"}]}`, w.Body.String())
	})

	t.Run("error", func(t *testing.T) {
		h := dashboard.NewHandler(&fakeService{salaryFn: func(context.Context) ([]dashboard.DepartmentSalary, error) {
			return nil, errors.New("boom")
		}})
		r := gin.New()
		r.GET("/dashboard/salary-by-department", h.SalaryByDepartment)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/dashboard/salary-by-department", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestHandler_TaskPerformance(t *testing.T) {
	gin.SetMode(gin.TestMode)

	serve := func(h *dashboard.Handler, body string) *httptest.ResponseRecorder {
		r := gin.New()
		r.POST("/dashboard/task-performance", h.TaskPerformance)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/dashboard/task-performance", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("ok", func(t *testing.T) {
		var got dashboard.TaskPerformanceCondition
		h := dashboard.NewHandler(&fakeService{taskFn: func(_ context.Context, cond dashboard.TaskPerformanceCondition) (dashboard.TaskPerformance, error) {
			got = cond
			return dashboard.TaskPerformance{
				Performance: []dashboard.DayPerformance{{Date: "2026-03-01", Day: 1, Tasks: map[string]int64{"Ventas": 2}}},
				Departments: []dashboard.DepartmentRef{{Name: "Ventas"}},
			}, nil
		}})

		w := serve(h, `{"condition":{"date_range":["2026-03-01","2026-03-01"],"departments":[3]}}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []int{3}, got.Departments)
		assert.JSONEq(t, `{"data":{"performance":[{"date":"2026-03-01","day":1,"tasks":{"Ventas":2}}],"departments":[{"name":"Ventas","fill":null}]}}`, w.Body.String())
	})

	t.Run("date range required", func(t *testing.T) {
		h := dashboard.NewHandler(&fakeService{})

		w := serve(h, `{"condition":{"departments":[3]}}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
