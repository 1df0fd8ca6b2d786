package rbacerrors

import (
	"net/http"

	"github.com/fenixfl1/CompuPay/internal/shared/apperror"
)

var (
	ErrRoleNotFound = apperror.New(
		apperror.CodeNotFound,
		"role not found",
		http.StatusNotFound,
	)
	ErrRoleNameExists = apperror.New(
		apperror.CodeConflict,
		"role name already exists",
		http.StatusConflict,
	)
	ErrInvalidRoleID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid role id",
		http.StatusBadRequest,
	)
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"user not found",
		http.StatusNotFound,
	)
	ErrOperationNotFound = apperror.New(
		apperror.CodeNotFound,
		"operation not found",
		http.StatusNotFound,
	)
	ErrMenuOptionNotFound = apperror.New(
		apperror.CodeNotFound,
		"menu option not found",
		http.StatusNotFound,
	)
	ErrParentMenuOptionNotFound = apperror.New(
		apperror.CodeNotFound,
		"parent menu option not found",
		http.StatusNotFound,
	)
	ErrMenuOptionExists = apperror.New(
		apperror.CodeConflict,
		"menu option id already exists",
		http.StatusConflict,
	)
	ErrMenuOrderTaken = apperror.New(
		apperror.CodePayloadValidation,
		"another sibling already uses this order",
		http.StatusBadRequest,
	)
	ErrMenuOrderOutOfRange = apperror.New(
		apperror.CodePayloadValidation,
		"order must be between 0 and the number of siblings",
		http.StatusBadRequest,
	)
	ErrInvalidMenuType = apperror.New(
		apperror.CodePayloadValidation,
		"invalid menu option type",
		http.StatusBadRequest,
	)
	ErrParameterNotFound = apperror.New(
		apperror.CodeNotFound,
		"parameter not found",
		http.StatusNotFound,
	)
	ErrParameterNameExists = apperror.New(
		apperror.CodeConflict,
		"parameter name already exists",
		http.StatusConflict,
	)
	ErrEmptyRoleList = apperror.New(
		apperror.CodePayloadValidation,
		"at least one role is required",
		http.StatusBadRequest,
	)
	ErrEmptyUpdate = apperror.New(
		apperror.CodePayloadValidation,
		"at least one field is required",
		http.StatusBadRequest,
	)
)
