package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fenixfl1/CompuPay/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

const (
	idempCacheKey = "idemp:/departments:admin:abc-123"
	idempLockKey  = idempCacheKey + ":lock"
)

func idempotencyRouter(t *testing.T) (*gin.Engine, redismock.ClientMock, *int) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rdb, mock := redismock.NewClientMock()
	calls := 0

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUsername, "admin")
		c.Next()
	})
	r.POST("/departments", middleware.Idempotency(rdb), func(c *gin.Context) {
		calls++
		c.JSON(http.StatusCreated, gin.H{"data": gin.H{"department_id": 3}})
	})
	return r, mock, &calls
}

func postWithKey(r http.Handler) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/departments", strings.NewReader(`{"name":"Legal"}`))
	req.Header.Set("Idempotency-Key", "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIdempotency(t *testing.T) {
	t.Run("first call runs handler and stores response", func(t *testing.T) {
		r, mock, calls := idempotencyRouter(t)

		mock.ExpectGet(idempCacheKey).RedisNil()
		mock.ExpectSetNX(idempLockKey, "locked", 30*time.Second).SetVal(true)
		mock.Regexp().ExpectSet(idempCacheKey, `.*department_id.*`, 24*time.Hour).SetVal("OK")
		mock.ExpectDel(idempLockKey).SetVal(1)

		w := postWithKey(r)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, *calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("replays stored response", func(t *testing.T) {
		r, mock, calls := idempotencyRouter(t)

		mock.ExpectGet(idempCacheKey).SetVal(`{"status":201,"body":{"data":{"department_id":3}}}`)

		w := postWithKey(r)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "true", w.Header().Get("Idempotent-Replayed"))
		assert.JSONEq(t, `{"data":{"department_id":3}}`, w.Body.String())
		assert.Equal(t, 0, *calls)
	})

	t.Run("rejects duplicate in flight", func(t *testing.T) {
		r, mock, calls := idempotencyRouter(t)

		mock.ExpectGet(idempCacheKey).RedisNil()
		mock.ExpectSetNX(idempLockKey, "locked", 30*time.Second).SetVal(false)

		w := postWithKey(r)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, 0, *calls)
	})

	t.Run("requests without key pass through", func(t *testing.T) {
		r, _, calls := idempotencyRouter(t)

		req := httptest.NewRequest(http.MethodPost, "/departments", strings.NewReader(`{}`))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, *calls)
	})
}
