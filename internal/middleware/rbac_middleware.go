package middleware

import (
	"context"

	"github.com/fenixfl1/CompuPay/internal/domain"
	"github.com/fenixfl1/CompuPay/internal/shared/apperror"
	"github.com/fenixfl1/CompuPay/internal/shared/contextutil"
	"github.com/fenixfl1/CompuPay/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RBACService is anything that can answer an enforce request.
type RBACService interface {
	Enforce(ctx context.Context, req domain.EnforceRequest) (bool, error)
}

func RBACAuthorize(service RBACService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.GetString(ContextUsername)
		if username == "" {
			response.Fail(c, apperror.ErrUnauthorized)
			c.Abort()
			return
		}

		allowed, err := service.Enforce(c.Request.Context(), domain.EnforceRequest{
			Subject:     username,
			IsSuperuser: c.GetBool(ContextIsSuperuser),
			Resource:    resource,
			Action:      action,
		})
		if err != nil {
			contextutil.GetLogger(c.Request.Context(), zap.L()).Error("rbac enforce failed",
				zap.String("username", username),
				zap.String("resource", resource),
				zap.String("action", action),
				zap.Error(err),
			)
			response.Fail(c, err)
			c.Abort()
			return
		}

		if !allowed {
			response.Fail(c, apperror.ErrForbidden.WithDetails(gin.H{"required": resource + ":" + action}))
			c.Abort()
			return
		}
		c.Next()
	}
}
