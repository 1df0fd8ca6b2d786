package filter

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/fenixfl1/CompuPay/internal/shared/apperror"

	"github.com/gin-gonic/gin"
)

// ParseConditions converts an already decoded "condition" member into
// conditions. A single object is accepted as a one-element list.
func ParseConditions(raw any) ([]Condition, error) {
	if raw == nil {
		return nil, apperror.ErrConditionRequired
	}

	if obj, ok := raw.(map[string]any); ok {
		raw = []any{obj}
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return nil, errConditionFormat
	}

	var conditions []Condition
	if err := json.Unmarshal(data, &conditions); err != nil {
		return nil, errConditionFormat
	}
	return conditions, nil
}

// Bind reads {"condition": ...} from the request body and compiles it. An
// empty body compiles to an empty result so list endpoints work unfiltered.
func Bind(c *gin.Context) (Result, error) {
	var body struct {
		Condition any `json:"condition"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		if errors.Is(err, io.EOF) {
			return Result{}, nil
		}
		return Result{}, apperror.PayloadValidation(err.Error())
	}

	conditions, err := ParseConditions(body.Condition)
	if err != nil {
		return Result{}, err
	}
	return Compile(conditions)
}

// BindSimple reads {"condition": {field: value}} from the request body.
func BindSimple(c *gin.Context) (Result, error) {
	var body SimpleRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		if errors.Is(err, io.EOF) {
			return Result{}, nil
		}
		return Result{}, apperror.PayloadValidation(err.Error())
	}
	if body.Condition == nil {
		return Result{}, apperror.ErrConditionRequired
	}
	return CompileSimple(body.Condition), nil
}
