package department

import (
	"net/http"
	"strconv"

	departmenterrors "github.com/fenixfl1/CompuPay/internal/department/errors"
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

func (h *Handler) Create(c *gin.Context) {
	var req CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperror.MapValidationError(err))
		return
	}

	res, err := h.service.Create(c.Request.Context(), req, c.GetString("username"))
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusCreated, res, "Department created")
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, departmenterrors.ErrInvalidDepartmentID)
		return
	}

	var req UpdateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperror.MapValidationError(err))
		return
	}

	res, err := h.service.Update(c.Request.Context(), id, req, c.GetString("username"))
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, res, "Department updated")
}

func (h *Handler) GetByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, departmenterrors.ErrInvalidDepartmentID)
		return
	}

	res, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, res, nil)
}

func (h *Handler) List(c *gin.Context) {
	cond, err := filter.Bind(c)
	if err != nil {
		response.Fail(c, err)
		return
	}
	page := response.ParsePage(c)

	rows, total, err := h.service.List(c.Request.Context(), cond, page)
	if err != nil {
		response.Fail(c, err)
		return
	}

	meta := response.NewPaginationMeta(total, page)
	response.Success(c, http.StatusOK, rows, &meta)
}

func (h *Handler) GetOptions(c *gin.Context) {
	opts, err := h.service.GetOptions(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, opts, nil)
}
