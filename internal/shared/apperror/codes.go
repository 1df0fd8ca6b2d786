package apperror

const (
	// Client errors (4xx)
	CodeInvalidInput = "INVALID_INPUT"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeInvalidState = "INVALID_STATE"
	CodeTooManyCalls = "TOO_MANY_REQUESTS"

	// Condition payload errors, kept in the casing clients already match on.
	CodePayloadValidation = "PayloadValidationError"
	CodeInvalidOperator   = "InvalidOperator"
	CodeInvalidDataType   = "InvalidDataType"
	CodeInvalidListValue  = "InvalidListValue"
	CodeInvalidDateFormat = "InvalidDateFormat"
	CodeInvalidField      = "InvalidField"

	// Server errors (5xx)
	CodeInternalError      = "INTERNAL_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)
