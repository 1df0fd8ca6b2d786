package task

import (
	"github.com/fenixfl1/CompuPay/internal/middleware"
	"github.com/fenixfl1/CompuPay/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const resource = "tasks"

func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	rbacService rbac.Service,
	rdb *redis.Client,
) {
	tasks := r.Group("/tasks")

	tasks.Use(middleware.AuthMiddleware())

	{
		tasks.POST("/list", middleware.RBACAuthorize(rbacService, resource, "view"), h.ListTasks)
		tasks.GET("/:id", middleware.RBACAuthorize(rbacService, resource, "view"), h.GetTask)
		tasks.POST("", middleware.RBACAuthorize(rbacService, resource, "create"), middleware.Idempotency(rdb), h.CreateTask)
		tasks.PUT("/:id", middleware.RBACAuthorize(rbacService, resource, "update"), h.UpdateTask)
		tasks.PUT("/:id/state", middleware.RBACAuthorize(rbacService, resource, "update"), h.UpdateTaskState)
		tasks.PUT("/:id/users", middleware.RBACAuthorize(rbacService, resource, "update"), h.SetUsers)
		tasks.POST("/:id/tags", middleware.RBACAuthorize(rbacService, resource, "update"), h.AddTags)
		tasks.DELETE("/:id/tags", middleware.RBACAuthorize(rbacService, resource, "update"), h.RemoveTags)
	}

	tags := r.Group("/tags")

	tags.Use(middleware.AuthMiddleware())

	{
		tags.POST("/list", middleware.RBACAuthorize(rbacService, resource, "view"), h.ListTags)
		tags.POST("", middleware.RBACAuthorize(rbacService, resource, "create"), middleware.Idempotency(rdb), h.CreateTag)
		tags.PUT("/:id", middleware.RBACAuthorize(rbacService, resource, "update"), h.UpdateTag)
	}
}
