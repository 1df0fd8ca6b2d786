package payroll_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fenixfl1/CompuPay/internal/payroll"
	payrollerrors "github.com/fenixfl1/CompuPay/internal/payroll/errors"
	"github.com/fenixfl1/CompuPay/internal/shared/filter"
	"github.com/fenixfl1/CompuPay/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	payroll.Service
	CreatePayrollFn         func(ctx context.Context, req payroll.CreatePayrollRequest, actor string) (payroll.PayrollResponse, error)
	ProcessPayrollFn        func(ctx context.Context, payrollID int, actor string) (payroll.ProcessResult, error)
	ProcessPartialPayrollFn func(ctx context.Context, payrollID int, usernames []string, actor string) (payroll.ProcessResult, error)
	ListAdjustmentsFn       func(ctx context.Context, res filter.Result, page response.Page) ([]payroll.AdjustmentResponse, int64, error)
	PayslipFn               func(ctx context.Context, entryID int) ([]byte, string, error)
}

func (f *fakeService) CreatePayroll(ctx context.Context, req payroll.CreatePayrollRequest, actor string) (payroll.PayrollResponse, error) {
	return f.CreatePayrollFn(ctx, req, actor)
}

func (f *fakeService) ProcessPayroll(ctx context.Context, payrollID int, actor string) (payroll.ProcessResult, error) {
	return f.ProcessPayrollFn(ctx, payrollID, actor)
}

func (f *fakeService) ProcessPartialPayroll(ctx context.Context, payrollID int, usernames []string, actor string) (payroll.ProcessResult, error) {
	return f.ProcessPartialPayrollFn(ctx, payrollID, usernames, actor)
}

func (f *fakeService) ListAdjustments(ctx context.Context, res filter.Result, page response.Page) ([]payroll.AdjustmentResponse, int64, error) {
	return f.ListAdjustmentsFn(ctx, res, page)
}

func (f *fakeService) Payslip(ctx context.Context, entryID int) ([]byte, string, error) {
	return f.PayslipFn(ctx, entryID)
}

func newRouter(svc payroll.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := payroll.NewHandler(svc)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("username", "admin")
		c.Next()
	})
	r.POST("/payroll", h.CreatePayroll)
	r.POST("/payroll/:id/process", h.ProcessPayroll)
	r.POST("/payroll/:id/process-partial", h.ProcessPartialPayroll)
	r.POST("/payroll/adjustments/list", h.ListAdjustments)
	r.GET("/payroll/entries/:id/payslip", h.Payslip)
	return r
}

func doJSON(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	switch v := body.(type) {
	case nil:
	case string:
		buf.WriteString(v)
	default:
		_ = json.NewEncoder(&buf).Encode(v)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_CreatePayroll(t *testing.T) {
	t.Run("all employees", func(t *testing.T) {
		svc := &fakeService{
			CreatePayrollFn: func(_ context.Context, req payroll.CreatePayrollRequest, actor string) (payroll.PayrollResponse, error) {
				assert.True(t, req.Employees.All)
				assert.Equal(t, "admin", actor)
				return payroll.PayrollResponse{PayrollID: 3, Label: "Nómina de marzo"}, nil
			},
		}

		w := doJSON(newRouter(svc), http.MethodPost, "/payroll", `{"employees":"__all__"}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		var resp struct {
			Data payroll.PayrollResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 3, resp.Data.PayrollID)
	})

	t.Run("explicit usernames", func(t *testing.T) {
		svc := &fakeService{
			CreatePayrollFn: func(_ context.Context, req payroll.CreatePayrollRequest, _ string) (payroll.PayrollResponse, error) {
				assert.False(t, req.Employees.All)
				assert.Equal(t, []string{"ana", "beto"}, req.Employees.Usernames)
				assert.Equal(t, "2026-03-01", req.PeriodStart)
				return payroll.PayrollResponse{PayrollID: 4}, nil
			},
		}

		w := doJSON(newRouter(svc), http.MethodPost, "/payroll", gin.H{
			"employees": []string{"ana", "beto"}, "period_start": "2026-03-01",
		})

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("rejects an unknown employee selector", func(t *testing.T) {
		w := doJSON(newRouter(&fakeService{}), http.MethodPost, "/payroll", `{"employees":"everyone"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects a malformed date", func(t *testing.T) {
		w := doJSON(newRouter(&fakeService{}), http.MethodPost, "/payroll", `{"employees":"__all__","period_start":"03/01/2026"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_ProcessPayroll(t *testing.T) {
	t.Run("busy", func(t *testing.T) {
		svc := &fakeService{
			ProcessPayrollFn: func(_ context.Context, id int, _ string) (payroll.ProcessResult, error) {
				assert.Equal(t, 7, id)
				return payroll.ProcessResult{}, payrollerrors.ErrPayrollBusy
			},
		}

		w := doJSON(newRouter(svc), http.MethodPost, "/payroll/7/process", nil)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		w := doJSON(newRouter(&fakeService{}), http.MethodPost, "/payroll/abc/process", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("partial reports how many entries were paid", func(t *testing.T) {
		svc := &fakeService{
			ProcessPartialPayrollFn: func(_ context.Context, id int, usernames []string, _ string) (payroll.ProcessResult, error) {
				assert.Equal(t, []string{"ana"}, usernames)
				return payroll.ProcessResult{PayrollID: id, Processed: 1, Status: payroll.StatusPending}, nil
			},
		}

		w := doJSON(newRouter(svc), http.MethodPost, "/payroll/7/process-partial", gin.H{"usernames": []string{"ana"}})

		assert.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Message string `json:"message"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "1 entr(ies) processed", resp.Message)
	})

	t.Run("partial needs usernames", func(t *testing.T) {
		w := doJSON(newRouter(&fakeService{}), http.MethodPost, "/payroll/7/process-partial", gin.H{})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_ListAdjustments(t *testing.T) {
	svc := &fakeService{
		ListAdjustmentsFn: func(_ context.Context, res filter.Result, page response.Page) ([]payroll.AdjustmentResponse, int64, error) {
			assert.False(t, res.Empty())
			assert.Equal(t, 2, page.Page)
			return []payroll.AdjustmentResponse{{AdjustmentID: 1}}, 25, nil
		},
	}

	w := doJSON(newRouter(svc), http.MethodPost, "/payroll/adjustments/list?page=2&page_size=10", gin.H{
		"condition": []gin.H{{"field": "type", "operator": "=", "condition": "B", "dataType": "str"}},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Metadata response.PaginationMeta `json:"metadata"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(25), resp.Metadata.Total)
	require.NotNil(t, resp.Metadata.NextPage)
	assert.Equal(t, 3, *resp.Metadata.NextPage)
}

func TestHandler_Payslip(t *testing.T) {
	t.Run("streams the pdf", func(t *testing.T) {
		svc := &fakeService{
			PayslipFn: func(_ context.Context, id int) ([]byte, string, error) {
				return []byte("%PDF-1.4"), "payslip-5-ana.pdf", nil
			},
		}

		w := doJSON(newRouter(svc), http.MethodGet, "/payroll/entries/5/payslip", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), `filename="payslip-5-ana.pdf"`)
	})

	t.Run("entry not yet paid", func(t *testing.T) {
		svc := &fakeService{
			PayslipFn: func(context.Context, int) ([]byte, string, error) {
				return nil, "", payrollerrors.ErrEntryNotProcessed
			},
		}

		w := doJSON(newRouter(svc), http.MethodGet, "/payroll/entries/5/payslip", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
