package user

import (
	"net/http"

	"github.com/fenixfl1/CompuPay/internal/shared/apperror"
	"github.com/fenixfl1/CompuPay/internal/shared/filter"
	"github.com/fenixfl1/CompuPay/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	svc    Service
	logger *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("user.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.handler")
	}
	return &Handler{svc: service, logger: l}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperror.MapValidationError(err))
		return
	}

	res, err := h.svc.Create(c.Request.Context(), req, c.GetString("username"))
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusCreated, res, "User created successfully")
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperror.MapValidationError(err))
		return
	}

	res, err := h.svc.Update(c.Request.Context(), c.Param("username"), req, c.GetString("username"))
	if err != nil {
		response.Fail(c, err)
		return
	}

	msg := res.Steps.Message(
		"User updated successfully.",
		"User updated successfully. Some related changes could not be applied.",
	)
	response.SuccessWithMessage(c, http.StatusOK, res, msg)
}

func (h *Handler) ChangeState(c *gin.Context) {
	var req ChangeStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperror.MapValidationError(err))
		return
	}

	if err := h.svc.ChangeState(c.Request.Context(), c.Param("username"), req.State, c.GetString("username")); err != nil {
		response.Fail(c, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, nil, "User state changed successfully.")
}

// ChangePassword and UpdateAvatar only act on the caller's own account.
func (h *Handler) ChangePassword(c *gin.Context) {
	username := c.Param("username")
	if username != c.GetString("username") {
		response.Fail(c, apperror.ErrForbidden)
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperror.MapValidationError(err))
		return
	}

	if err := h.svc.ChangePassword(c.Request.Context(), username, req.OldPassword, req.NewPassword); err != nil {
		response.Fail(c, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, nil, "Password changed successfully")
}

func (h *Handler) UpdateAvatar(c *gin.Context) {
	if c.Param("username") != c.GetString("username") {
		response.Fail(c, apperror.ErrForbidden)
		return
	}

	var req UpdateAvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperror.MapValidationError(err))
		return
	}

	if err := h.svc.UpdateAvatar(c.Request.Context(), c.Param("username"), req.Avatar, c.GetString("username")); err != nil {
		response.Fail(c, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, nil, "Avatar updated successfully")
}

func (h *Handler) CheckUsername(c *gin.Context) {
	var req CheckUsernameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperror.MapValidationError(err))
		return
	}

	if err := h.svc.CheckUsername(c.Request.Context(), req.Username); err != nil {
		response.Fail(c, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, nil, "Username available")
}

func (h *Handler) CheckIdentityDocument(c *gin.Context) {
	var req CheckIdentityDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperror.MapValidationError(err))
		return
	}

	if err := h.svc.CheckIdentityDocument(c.Request.Context(), req.IdentityDocument); err != nil {
		response.Fail(c, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, nil, "Identity document available")
}

func (h *Handler) Get(c *gin.Context) {
	res, err := h.svc.Get(c.Request.Context(), c.Param("username"))
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

	h.logger.Debug("http list users", zap.Int("page", page.Page), zap.Int("page_size", page.PageSize))

	rows, total, err := h.svc.List(c.Request.Context(), cond, page)
	if err != nil {
		response.Fail(c, err)
		return
	}

	meta := response.NewPaginationMeta(total, page)
	response.Success(c, http.StatusOK, rows, &meta)
}
