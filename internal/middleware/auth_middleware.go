package middleware

import (
	"errors"
	"strconv"
	"strings"

	autherrors "github.com/fenixfl1/CompuPay/internal/auth/errors"
	"github.com/fenixfl1/CompuPay/internal/auth/token"
	"github.com/fenixfl1/CompuPay/internal/shared/contextutil"
	"github.com/fenixfl1/CompuPay/internal/shared/response"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserID      = "user_id"
	ContextUsername    = "username"
	ContextIsSuperuser = "is_superuser"
)

// AuthMiddleware accepts a bearer token or the access_token cookie.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			raw = ""
		}
		if raw == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				raw = cookie
			}
		}
		if raw == "" {
			response.Fail(c, autherrors.ErrMissingToken)
			c.Abort()
			return
		}

		claims, err := token.Parse(raw, token.TypeAccess)
		if err != nil {
			if !errors.Is(err, autherrors.ErrTokenExpired) {
				err = autherrors.ErrInvalidToken
			}
			response.Fail(c, err)
			c.Abort()
			return
		}

		uid := strconv.Itoa(claims.UserID)
		c.Set(ContextUserID, uid)
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextIsSuperuser, claims.IsSuperuser)

		ctx := contextutil.WithUserID(c.Request.Context(), uid)
		ctx = contextutil.WithUsername(ctx, claims.Username)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
