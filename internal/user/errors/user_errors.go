package usererrors

import (
	"net/http"

	"github.com/fenixfl1/CompuPay/internal/shared/apperror"
)

var (
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found",
		http.StatusNotFound,
	)

	ErrUsernameExists = apperror.New(
		apperror.CodeConflict,
		"Username is already in use",
		http.StatusConflict,
	)

	ErrEmailExists = apperror.New(
		apperror.CodeConflict,
		"Email is already in use",
		http.StatusConflict,
	)

	ErrIdentityDocumentExists = apperror.New(
		apperror.CodeConflict,
		"Identity document already exists",
		http.StatusConflict,
	)

	ErrSupervisorNotFound = apperror.New(
		apperror.CodeNotFound,
		"Supervisor not found",
		http.StatusNotFound,
	)

	ErrDepartmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Department not found",
		http.StatusNotFound,
	)

	ErrFieldNotUpdatable = apperror.New(
		apperror.CodePayloadValidation,
		"username and identity_document can not be updated",
		http.StatusBadRequest,
	)

	ErrInvalidSalary = apperror.New(
		apperror.CodeInvalidInput,
		"Salary can not be negative",
		http.StatusBadRequest,
	)

	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)

	ErrWrongPassword = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid old password",
		http.StatusBadRequest,
	)

	ErrSamePassword = apperror.New(
		apperror.CodeInvalidInput,
		"Use a different password from the old one",
		http.StatusBadRequest,
	)

	ErrEmptyUpdate = apperror.New(
		apperror.CodePayloadValidation,
		"at least one field is required",
		http.StatusBadRequest,
	)
)
