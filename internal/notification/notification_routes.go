package notification

import (
	"github.com/fenixfl1/CompuPay/internal/middleware"
	"github.com/fenixfl1/CompuPay/internal/rbac"

	"github.com/gin-gonic/gin"
)

const resource = "notifications"

func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	rbacService rbac.Service,
) {
	notifications := r.Group("/notifications")

	notifications.Use(middleware.AuthMiddleware())

	{
		notifications.GET("/stream", h.Stream)
		notifications.PUT("/read", h.MarkAsRead)
		notifications.POST("/list", middleware.RBACAuthorize(rbacService, resource, "view"), h.List)
		notifications.POST("", middleware.RBACAuthorize(rbacService, resource, "create"), h.Send)
	}
}
