package user

import (
	"github.com/fenixfl1/CompuPay/internal/middleware"
	"github.com/fenixfl1/CompuPay/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const resource = "users"

func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	rbacService rbac.Service,
	rdb *redis.Client,
) {
	users := r.Group("/users")
	users.Use(middleware.AuthMiddleware())

	{
		users.POST("/list", middleware.RBACAuthorize(rbacService, resource, "view"), h.List)
		users.POST("/check-username", h.CheckUsername)
		users.POST("/check-identity-document", h.CheckIdentityDocument)
		users.GET("/:username", middleware.RBACAuthorize(rbacService, resource, "view"), h.Get)
		users.POST("", middleware.RBACAuthorize(rbacService, resource, "create"), middleware.Idempotency(rdb), h.Create)
		users.PUT("/:username", middleware.RBACAuthorize(rbacService, resource, "update"), h.Update)
		users.PUT("/:username/state", middleware.RBACAuthorize(rbacService, resource, "update"), h.ChangeState)
		users.PUT("/:username/avatar", h.UpdateAvatar)
		users.PUT("/:username/password", h.ChangePassword)
	}
}
