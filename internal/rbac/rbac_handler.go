package rbac

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/fenixfl1/CompuPay/internal/domain"
	rbacerrors "github.com/fenixfl1/CompuPay/internal/rbac/errors"
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

// Enforce answers whether the caller may run action on resource.
func (h *Handler) Enforce(c *gin.Context) {
	var req EnforceCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperror.MapValidationError(err))
		return
	}

	allowed, err := h.service.Enforce(c.Request.Context(), domain.EnforceRequest{
		Subject:     c.GetString("username"),
		IsSuperuser: c.GetBool("is_superuser"),
		Resource:    strings.TrimSpace(req.Resource),
		Action:      strings.TrimSpace(req.Action),
	})
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, EnforceResponse{Allowed: allowed}, nil)
}

func (h *Handler) MenuOptions(c *gin.Context) {
	opts, err := h.service.MenuOptions(c.Request.Context(), c.GetString("username"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, opts, nil)
}

func (h *Handler) MenuChildren(c *gin.Context) {
	opts, err := h.service.MenuChildren(c.Request.Context(), c.GetString("username"), c.Param("id"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, opts, nil)
}

func (h *Handler) CreateMenuOption(c *gin.Context) {
	var req CreateMenuOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperror.MapValidationError(err))
		return
	}

	res, err := h.service.CreateMenuOption(c.Request.Context(), req, c.GetString("username"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusCreated, res, "Menu option created")
}

func (h *Handler) UpdateMenuOption(c *gin.Context) {
	var req UpdateMenuOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperror.MapValidationError(err))
		return
	}

	res, err := h.service.UpdateMenuOption(c.Request.Context(), c.Param("id"), req, c.GetString("username"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, res, "Menu option updated")
}

func (h *Handler) ListRoles(c *gin.Context) {
	cond, err := filter.Bind(c)
	if err != nil {
		response.Fail(c, err)
		return
	}
	page := response.ParsePage(c)

	roles, total, err := h.service.ListRoles(c.Request.Context(), cond, page)
	if err != nil {
		response.Fail(c, err)
		return
	}

	meta := response.NewPaginationMeta(total, page)
	response.Success(c, http.StatusOK, roles, &meta)
}

func (h *Handler) GetRole(c *gin.Context) {
	id, ok := roleID(c)
	if !ok {
		return
	}

	role, err := h.service.GetRole(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, role, nil)
}

func (h *Handler) CreateRole(c *gin.Context) {
	var req CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperror.MapValidationError(err))
		return
	}

	role, err := h.service.CreateRole(c.Request.Context(), req, c.GetString("username"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusCreated, role, "Role created")
}

func (h *Handler) UpdateRole(c *gin.Context) {
	id, ok := roleID(c)
	if !ok {
		return
	}

	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperror.MapValidationError(err))
		return
	}

	role, err := h.service.UpdateRole(c.Request.Context(), id, req, c.GetString("username"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, role, "Role updated")
}

func (h *Handler) SetRolePermissions(c *gin.Context) {
	id, ok := roleID(c)
	if !ok {
		return
	}

	var req SetRolePermissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperror.MapValidationError(err))
		return
	}

	if err := h.service.SetRolePermissions(c.Request.Context(), id, req, c.GetString("username")); err != nil {
		response.Fail(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, nil, "Role permissions updated")
}

func (h *Handler) AssignRoles(c *gin.Context) {
	h.membership(c, h.service.AssignRoles, "Roles assigned")
}

func (h *Handler) RemoveRoles(c *gin.Context) {
	h.membership(c, h.service.RemoveRoles, "Roles removed")
}

func (h *Handler) ChangeUserRoles(c *gin.Context) {
	h.membership(c, h.service.ChangeUserRoles, "Roles changed")
}

type membershipFn func(ctx context.Context, username string, roleIDs []int, actor string) error

func (h *Handler) membership(c *gin.Context, fn membershipFn, message string) {
	var req RoleMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperror.MapValidationError(err))
		return
	}

	if err := fn(c.Request.Context(), req.Username, req.RoleIDs, c.GetString("username")); err != nil {
		response.Fail(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, nil, message)
}

func (h *Handler) ListOperations(c *gin.Context) {
	ops, err := h.service.ListOperations(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, ops, nil)
}

func (h *Handler) GrantOperation(c *gin.Context) {
	var req GrantOperationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperror.MapValidationError(err))
		return
	}

	if err := h.service.GrantOperation(c.Request.Context(), req, c.GetString("username")); err != nil {
		response.Fail(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, nil, "Operation granted")
}

func (h *Handler) RevokeOperation(c *gin.Context) {
	var req RevokeOperationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperror.MapValidationError(err))
		return
	}

	if err := h.service.RevokeOperation(c.Request.Context(), req, c.GetString("username")); err != nil {
		response.Fail(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, nil, "Operation revoked")
}

func (h *Handler) ListParameters(c *gin.Context) {
	params, err := h.service.ListParameters(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, params, nil)
}

func (h *Handler) CreateParameter(c *gin.Context) {
	var req CreateParameterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperror.MapValidationError(err))
		return
	}

	p, err := h.service.CreateParameter(c.Request.Context(), req, c.GetString("username"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusCreated, p, "Parameter created")
}

func roleID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, rbacerrors.ErrInvalidRoleID)
		return 0, false
	}
	return id, true
}
