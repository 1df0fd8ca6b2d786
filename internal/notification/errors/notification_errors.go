package notificationerrors

import (
	"net/http"

	"github.com/fenixfl1/CompuPay/internal/shared/apperror"
)

var (
	ErrReceiverRequired = apperror.New(
		apperror.CodePayloadValidation,
		"notification receiver is required",
		http.StatusBadRequest,
	)
	ErrMessageRequired = apperror.New(
		apperror.CodePayloadValidation,
		"notification message is required",
		http.StatusBadRequest,
	)
	ErrInvalidTaskID = apperror.New(
		apperror.CodeInvalidInput,
		"task_ids must be a comma separated list of positive integers",
		http.StatusBadRequest,
	)
	ErrStreamUnavailable = apperror.New(
		apperror.CodeInternalError,
		"notification stream is not available",
		http.StatusServiceUnavailable,
	)
)
