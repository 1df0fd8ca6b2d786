package dashboard

import (
	"github.com/fenixfl1/CompuPay/internal/middleware"
	"github.com/fenixfl1/CompuPay/internal/rbac"

	"github.com/gin-gonic/gin"
)

const resource = "dashboard"

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	dashboard := r.Group("/dashboard")

	dashboard.Use(middleware.AuthMiddleware(), middleware.RBACAuthorize(rbacService, resource, "view"))

	{
		dashboard.POST("/activities", h.RecentActivities)
		dashboard.GET("/employees-by-department", h.EmployeesByDepartment)
		dashboard.GET("/user-statistics", h.UserStatistics)
		dashboard.GET("/salary-by-department", h.SalaryByDepartment)
		dashboard.POST("/task-performance", h.TaskPerformance)
		dashboard.GET("/payment-detail", h.PaymentDetail)
	}
}
