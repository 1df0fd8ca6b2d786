package filter_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fenixfl1/CompuPay/internal/shared/apperror"
	"github.com/fenixfl1/CompuPay/internal/shared/filter"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestParseConditions(t *testing.T) {
	t.Run("missing payload", func(t *testing.T) {
		_, err := filter.ParseConditions(nil)
		assert.ErrorIs(t, err, apperror.ErrConditionRequired)
	})

	t.Run("single object", func(t *testing.T) {
		conds, err := filter.ParseConditions(map[string]any{
			"field": "state", "operator": "=", "condition": "A", "dataType": "str",
		})
		assert.NoError(t, err)
		assert.Len(t, conds, 1)
		assert.Equal(t, filter.Fields{"state"}, conds[0].Field)
	})

	t.Run("list with multi-field", func(t *testing.T) {
		conds, err := filter.ParseConditions([]any{
			map[string]any{"field": []any{"name", "last_name"}, "operator": "LIKE", "condition": "ana", "dataType": "str"},
		})
		assert.NoError(t, err)
		assert.Equal(t, filter.Fields{"name", "last_name"}, conds[0].Field)
	})

	t.Run("malformed field", func(t *testing.T) {
		_, err := filter.ParseConditions([]any{map[string]any{"field": 12}})
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.CodePayloadValidation, appErr.Code)
	})
}

func TestBind(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newContext := func(body string) *gin.Context {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		return c
	}

	t.Run("empty body", func(t *testing.T) {
		res, err := filter.Bind(newContext(""))
		assert.NoError(t, err)
		assert.True(t, res.Empty())
	})

	t.Run("compiles conditions", func(t *testing.T) {
		res, err := filter.Bind(newContext(`{"condition":[{"field":"STATUS","operator":"IN","condition":["A","B"],"dataType":"list"}]}`))
		assert.NoError(t, err)
		assert.Equal(t, filter.And{filter.Compare{Field: "status", Op: filter.OpIn, Value: []any{"A", "B"}}}, res.Predicate)
		assert.Empty(t, res.Exclusions)
	})

	t.Run("missing condition member", func(t *testing.T) {
		_, err := filter.Bind(newContext(`{"other":1}`))
		assert.ErrorIs(t, err, apperror.ErrConditionRequired)
	})

	t.Run("simple form", func(t *testing.T) {
		res, err := filter.BindSimple(newContext(`{"condition":{"State":"A","department_id":2}}`))
		assert.NoError(t, err)
		assert.Len(t, res.Predicate, 2)
		assert.Equal(t, "department_id", res.Predicate[0].(filter.Compare).Field)
	})
}
