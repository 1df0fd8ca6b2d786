package department

import (
	"github.com/fenixfl1/CompuPay/internal/middleware"
	"github.com/fenixfl1/CompuPay/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const resource = "departments"

func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	rbacService rbac.Service,
	rdb *redis.Client,
) {
	departments := r.Group("/departments")

	departments.Use(middleware.AuthMiddleware())

	{
		departments.POST("/list", middleware.RBACAuthorize(rbacService, resource, "view"), h.List)
		departments.GET("/options", h.GetOptions)
		departments.GET("/:id", middleware.RBACAuthorize(rbacService, resource, "view"), h.GetByID)
		departments.POST("", middleware.RBACAuthorize(rbacService, resource, "create"), middleware.Idempotency(rdb), h.Create)
		departments.PUT("/:id", middleware.RBACAuthorize(rbacService, resource, "update"), h.Update)
	}
}
