package payroll

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	payrollerrors "github.com/fenixfl1/CompuPay/internal/payroll/errors"
	"github.com/fenixfl1/CompuPay/internal/shared/apperror"
	"github.com/fenixfl1/CompuPay/internal/shared/filter"
	"github.com/fenixfl1/CompuPay/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) SaveSettings(c *gin.Context) {
	var req SaveSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperror.MapValidationError(err))
		return
	}

	res, err := h.service.SaveSettings(c.Request.Context(), req, c.GetString("username"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusCreated, res, "Payroll settings saved")
}

func (h *Handler) ActiveSettings(c *gin.Context) {
	res, err := h.service.ActiveSettings(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}

func (h *Handler) CreateConcept(c *gin.Context) {
	var req CreateConceptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperror.MapValidationError(err))
		return
	}

	res, err := h.service.CreateConcept(c.Request.Context(), req, c.GetString("username"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusCreated, res, "Concept created")
}

func (h *Handler) ListConcepts(c *gin.Context) {
	list(c, h.service.ListConcepts)
}

func (h *Handler) CreateDeduction(c *gin.Context) {
	var req CreateDeductionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperror.MapValidationError(err))
		return
	}

	res, err := h.service.CreateDeduction(c.Request.Context(), req, c.GetString("username"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusCreated, res, "Deduction created")
}

func (h *Handler) ListDeductions(c *gin.Context) {
	list(c, h.service.ListDeductions)
}

func (h *Handler) AssignDeductions(c *gin.Context) {
	var req DeductionAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperror.MapValidationError(err))
		return
	}

	if err := h.service.AssignDeductions(c.Request.Context(), req.Username, req.Deductions, c.GetString("username")); err != nil {
		response.Fail(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, nil, "Deductions assigned")
}

func (h *Handler) RemoveDeduction(c *gin.Context) {
	id, ok := pathID(c, "id", payrollerrors.ErrInvalidDeductionID)
	if !ok {
		return
	}

	if err := h.service.RemoveDeduction(c.Request.Context(), c.Param("username"), id, c.GetString("username")); err != nil {
		response.Fail(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, nil, "Deduction removed")
}

func (h *Handler) CreatePayroll(c *gin.Context) {
	var req CreatePayrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperror.MapValidationError(err))
		return
	}

	res, err := h.service.CreatePayroll(c.Request.Context(), req, c.GetString("username"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusCreated, res, "Payroll created")
}

func (h *Handler) AddEntries(c *gin.Context) {
	id, ok := pathID(c, "id", payrollerrors.ErrInvalidPayrollID)
	if !ok {
		return
	}

	var req AddEntriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperror.MapValidationError(err))
		return
	}

	res, err := h.service.AddEntries(c.Request.Context(), id, req.Usernames, c.GetString("username"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusCreated, res, "Employees added to payroll")
}

func (h *Handler) ProcessPayroll(c *gin.Context) {
	id, ok := pathID(c, "id", payrollerrors.ErrInvalidPayrollID)
	if !ok {
		return
	}

	res, err := h.service.ProcessPayroll(c.Request.Context(), id, c.GetString("username"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, res, "Payroll processed")
}

func (h *Handler) ProcessPartialPayroll(c *gin.Context) {
	id, ok := pathID(c, "id", payrollerrors.ErrInvalidPayrollID)
	if !ok {
		return
	}

	var req ProcessPartialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperror.MapValidationError(err))
		return
	}

	res, err := h.service.ProcessPartialPayroll(c.Request.Context(), id, req.Usernames, c.GetString("username"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, res, fmt.Sprintf("%d entr(ies) processed", res.Processed))
}

func (h *Handler) AutostartPayroll(c *gin.Context) {
	res, err := h.service.AutostartPayroll(c.Request.Context(), c.GetString("username"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusCreated, res, "Payroll started")
}

func (h *Handler) UpdateEntry(c *gin.Context) {
	id, ok := pathID(c, "id", payrollerrors.ErrInvalidEntryID)
	if !ok {
		return
	}

	var req UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperror.MapValidationError(err))
		return
	}

	res, err := h.service.UpdateEntry(c.Request.Context(), id, req, c.GetString("username"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, res, "Payroll entry updated")
}

func (h *Handler) CreateAdjustment(c *gin.Context) {
	var req CreateAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperror.MapValidationError(err))
		return
	}

	res, err := h.service.CreateAdjustment(c.Request.Context(), req, c.GetString("username"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusCreated, res, "Adjustment created")
}

func (h *Handler) UpdateAdjustment(c *gin.Context) {
	id, ok := pathID(c, "id", payrollerrors.ErrInvalidAdjustmentID)
	if !ok {
		return
	}

	var req UpdateAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperror.MapValidationError(err))
		return
	}

	res, err := h.service.UpdateAdjustment(c.Request.Context(), id, req, c.GetString("username"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, res, "Adjustment updated")
}

func (h *Handler) ListAdjustments(c *gin.Context) {
	list(c, h.service.ListAdjustments)
}

func (h *Handler) PayrollInfo(c *gin.Context) {
	res, err := h.service.PayrollInfo(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}

func (h *Handler) PayrollHistory(c *gin.Context) {
	list(c, h.service.PayrollHistory)
}

func (h *Handler) PayrollEntries(c *gin.Context) {
	list(c, h.service.PayrollEntries)
}

func (h *Handler) Ledger(c *gin.Context) {
	payrollID, ok := pathID(c, "id", payrollerrors.ErrInvalidPayrollID)
	if !ok {
		return
	}
	entryID, ok := pathID(c, "entryID", payrollerrors.ErrInvalidEntryID)
	if !ok {
		return
	}

	res, err := h.service.Ledger(c.Request.Context(), payrollID, entryID)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}

func (h *Handler) Payslip(c *gin.Context) {
	id, ok := pathID(c, "id", payrollerrors.ErrInvalidEntryID)
	if !ok {
		return
	}

	pdf, filename, err := h.service.Payslip(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

type listFn[T any] func(ctx context.Context, res filter.Result, page response.Page) ([]T, int64, error)

func list[T any](c *gin.Context, fn listFn[T]) {
	cond, err := filter.Bind(c)
	if err != nil {
		response.Fail(c, err)
		return
	}
	page := response.ParsePage(c)

	rows, total, err := fn(c.Request.Context(), cond, page)
	if err != nil {
		response.Fail(c, err)
		return
	}

	meta := response.NewPaginationMeta(total, page)
	response.Success(c, http.StatusOK, rows, &meta)
}

func pathID(c *gin.Context, name string, invalidErr error) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		response.Fail(c, invalidErr)
		return 0, false
	}
	return id, true
}
