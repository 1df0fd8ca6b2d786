package taskerrors

import (
	"net/http"

	"github.com/fenixfl1/CompuPay/internal/shared/apperror"
)

var (
	ErrTaskNotFound = apperror.New(
		apperror.CodeNotFound,
		"task not found",
		http.StatusNotFound,
	)
	ErrTagNotFound = apperror.New(
		apperror.CodeNotFound,
		"tag not found",
		http.StatusNotFound,
	)
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"one or more users were not found",
		http.StatusNotFound,
	)
	ErrInvalidTaskID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid task id",
		http.StatusBadRequest,
	)
	ErrInvalidTagID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid tag id",
		http.StatusBadRequest,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"invalid status, expected one of PENDING, IN_PROGRESS, DONE, CANCELED",
		http.StatusBadRequest,
	)
	ErrInvalidPriority = apperror.New(
		apperror.CodeInvalidInput,
		"invalid priority, expected one of H, M, L",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodePayloadValidation,
		"end_date can not be before start_date",
		http.StatusBadRequest,
	)
	ErrTaskInactive = apperror.New(
		apperror.CodeInvalidState,
		"task is not active",
		http.StatusBadRequest,
	)
	ErrEmptyUpdate = apperror.New(
		apperror.CodePayloadValidation,
		"at least one field is required",
		http.StatusBadRequest,
	)
)
