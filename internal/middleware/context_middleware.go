package middleware

import (
	"github.com/fenixfl1/CompuPay/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ContextLogger stores a logger tagged with the request id, method and
// route in the request context, where services read it back through
// contextutil.GetLogger. Mount it after RequestID; without it an id is minted
// here.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		rid := contextutil.GetRequestID(ctx)
		if rid == "" {
			rid = uuid.NewString()
			ctx = contextutil.WithRequestID(ctx, rid)
			c.Header(HeaderRequestID, rid)
		}

		ctx = contextutil.WithLogger(ctx, logger.With(
			zap.String("request_id", rid),
			zap.String("method", c.Request.Method),
			zap.String("route", c.FullPath()),
		))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
