package payroll

import (
	"github.com/fenixfl1/CompuPay/internal/middleware"
	"github.com/fenixfl1/CompuPay/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const resource = "payroll"

func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	rbacService rbac.Service,
	rdb *redis.Client,
) {
	payrolls := r.Group("/payroll")

	payrolls.Use(middleware.AuthMiddleware())

	{
		payrolls.GET("/info", middleware.RBACAuthorize(rbacService, resource, "view"), h.PayrollInfo)
		payrolls.POST("/history", middleware.RBACAuthorize(rbacService, resource, "view"), h.PayrollHistory)
		payrolls.POST("", middleware.RBACAuthorize(rbacService, resource, "create"), middleware.Idempotency(rdb), h.CreatePayroll)
		payrolls.POST("/autostart", middleware.RBACAuthorize(rbacService, resource, "create"), middleware.Idempotency(rdb), h.AutostartPayroll)
		payrolls.POST("/:id/entries", middleware.RBACAuthorize(rbacService, resource, "update"), h.AddEntries)
		payrolls.POST("/:id/process", middleware.RBACAuthorize(rbacService, resource, "process"), h.ProcessPayroll)
		payrolls.POST("/:id/process-partial", middleware.RBACAuthorize(rbacService, resource, "process"), h.ProcessPartialPayroll)
		payrolls.GET("/:id/entries/:entryID/ledger", middleware.RBACAuthorize(rbacService, resource, "view"), h.Ledger)

		payrolls.POST("/entries/list", middleware.RBACAuthorize(rbacService, resource, "view"), h.PayrollEntries)
		payrolls.PUT("/entries/:id", middleware.RBACAuthorize(rbacService, resource, "update"), h.UpdateEntry)
		payrolls.GET("/entries/:id/payslip", middleware.RBACAuthorize(rbacService, resource, "view"), h.Payslip)

		payrolls.GET("/settings", middleware.RBACAuthorize(rbacService, resource, "view"), h.ActiveSettings)
		payrolls.POST("/settings", middleware.RBACAuthorize(rbacService, resource, "configure"), h.SaveSettings)

		payrolls.POST("/concepts/list", middleware.RBACAuthorize(rbacService, resource, "view"), h.ListConcepts)
		payrolls.POST("/concepts", middleware.RBACAuthorize(rbacService, resource, "configure"), middleware.Idempotency(rdb), h.CreateConcept)

		payrolls.POST("/deductions/list", middleware.RBACAuthorize(rbacService, resource, "view"), h.ListDeductions)
		payrolls.POST("/deductions", middleware.RBACAuthorize(rbacService, resource, "configure"), middleware.Idempotency(rdb), h.CreateDeduction)
		payrolls.POST("/deductions/assign", middleware.RBACAuthorize(rbacService, resource, "configure"), h.AssignDeductions)
		payrolls.DELETE("/deductions/:id/users/:username", middleware.RBACAuthorize(rbacService, resource, "configure"), h.RemoveDeduction)

		payrolls.POST("/adjustments/list", middleware.RBACAuthorize(rbacService, resource, "view"), h.ListAdjustments)
		payrolls.POST("/adjustments", middleware.RBACAuthorize(rbacService, resource, "update"), middleware.Idempotency(rdb), h.CreateAdjustment)
		payrolls.PUT("/adjustments/:id", middleware.RBACAuthorize(rbacService, resource, "update"), h.UpdateAdjustment)
	}
}
