package response

import (
	"github.com/fenixfl1/CompuPay/internal/shared/apperror"

	"github.com/gin-gonic/gin"
)

type ApiEnvelope struct {
	Data     any             `json:"data"`
	Message  string          `json:"message,omitempty"`
	Metadata *PaginationMeta `json:"metadata,omitempty"`
}

type ErrorEnvelope struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details any    `json:"details,omitempty"`
}

func Success(c *gin.Context, status int, data any, meta *PaginationMeta) {
	c.JSON(status, ApiEnvelope{
		Data:     data,
		Metadata: meta,
	})
}

// SuccessWithMessage is used by write endpoints that report a human readable
// outcome, including degraded outcomes of best-effort steps.
func SuccessWithMessage(c *gin.Context, status int, data any, message string) {
	c.JSON(status, ApiEnvelope{
		Data:    data,
		Message: message,
	})
}

func Error(c *gin.Context, status int, errorCode string, message string, details any) {
	c.JSON(status, ErrorEnvelope{
		Error:   message,
		Code:    errorCode,
		Details: details,
	})
}

// Fail writes err using the status and code resolved by apperror.ToHTTP.
func Fail(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}
