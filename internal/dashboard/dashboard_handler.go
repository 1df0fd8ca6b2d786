package dashboard

import (
	"net/http"

	"github.com/fenixfl1/CompuPay/internal/shared/apperror"
	"github.com/fenixfl1/CompuPay/internal/shared/filter"
	"github.com/fenixfl1/CompuPay/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RecentActivities(c *gin.Context) {
	cond, err := filter.Bind(c)
	if err != nil {
		response.Fail(c, err)
		return
	}
	page := response.ParsePage(c)

	rows, total, err := h.service.RecentActivities(c.Request.Context(), cond, page)
	if err != nil {
		response.Fail(c, err)
		return
	}

	meta := response.NewPaginationMeta(total, page)
	response.Success(c, http.StatusOK, rows, &meta)
}

func (h *Handler) EmployeesByDepartment(c *gin.Context) {
	rows, err := h.service.EmployeesByDepartment(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, rows, nil)
}

func (h *Handler) UserStatistics(c *gin.Context) {
	stats, err := h.service.UserStatistics(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats, nil)
}

func (h *Handler) SalaryByDepartment(c *gin.Context) {
	rows, err := h.service.SalaryByDepartment(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, rows, nil)
}

func (h *Handler) TaskPerformance(c *gin.Context) {
	var req TaskPerformanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperror.MapValidationError(err))
		return
	}

	res, err := h.service.TaskPerformance(c.Request.Context(), req.Condition)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}

func (h *Handler) PaymentDetail(c *gin.Context) {
	res, err := h.service.PaymentDetail(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}
