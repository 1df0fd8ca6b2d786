package departmenterrors

import (
	"net/http"

	"github.com/fenixfl1/CompuPay/internal/shared/apperror"
)

var (
	ErrDepartmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"department not found",
		http.StatusNotFound,
	)
	ErrDepartmentNameExists = apperror.New(
		apperror.CodeConflict,
		"department name already exists",
		http.StatusConflict,
	)
	ErrInvalidDepartmentID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid department id",
		http.StatusBadRequest,
	)
	ErrEmptyUpdate = apperror.New(
		apperror.CodePayloadValidation,
		"at least one field is required",
		http.StatusBadRequest,
	)
)
