package app

import (
	"database/sql"

	"github.com/fenixfl1/CompuPay/internal/activitylog"
	"github.com/fenixfl1/CompuPay/internal/auth"
	"github.com/fenixfl1/CompuPay/internal/dashboard"
	"github.com/fenixfl1/CompuPay/internal/department"
	"github.com/fenixfl1/CompuPay/internal/messaging/kafka"
	"github.com/fenixfl1/CompuPay/internal/notification"
	"github.com/fenixfl1/CompuPay/internal/payroll"
	"github.com/fenixfl1/CompuPay/internal/rbac"
	"github.com/fenixfl1/CompuPay/internal/rbac/infra"
	"github.com/fenixfl1/CompuPay/internal/rbac/rbac_http"
	"github.com/fenixfl1/CompuPay/internal/shared/counter"
	"github.com/fenixfl1/CompuPay/internal/task"
	"github.com/fenixfl1/CompuPay/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) error {
	// --- Repositories ---
	activityRepo := activitylog.NewRepository(gormDB)
	authRepo := auth.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	dashboardRepo := dashboard.NewRepository(gormDB)
	departmentRepo := department.NewRepository(gormDB)
	notificationRepo := notification.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	payrollRepo := payroll.NewRepository(gormDB)
	rbacRepo := rbac.NewRepository(gormDB)
	taskRepo := task.NewRepository(gormDB)
	userRepo := user.NewRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer("")
	if err != nil {
		return err
	}

	// --- Services ---
	registry := activitylog.NewRegistry()
	activityService := activitylog.NewService(activityRepo, registry, logger)

	rbacService := rbac.NewService(db, rbacRepo, enforcer, counterRepo, activityService)
	authService := auth.NewService(authRepo, rbacService)
	notificationService := notification.NewService(notificationRepo, rdb)
	departmentService := department.NewService(db, departmentRepo, rdb, activityService)
	payrollService := payroll.NewService(db, payrollRepo, payroll.Deps{
		Redis:    rdb,
		Outbox:   outboxRepo,
		Activity: activityService,
	})
	userService := user.NewService(db, userRepo, user.Deps{
		Roles:      rbacService,
		Deductions: payrollService,
		Outbox:     outboxRepo,
		Activity:   activityService,
	})
	taskService := task.NewService(db, taskRepo, task.Deps{
		Outbox:      outboxRepo,
		Broadcaster: notificationService,
		Activity:    activityService,
	})
	dashboardService := dashboard.NewService(dashboardRepo, activityService, rdb)

	registry.Register("user", userService)
	registry.Register("role", rbacService)
	registry.Register("department", departmentService)
	registry.Register("task", taskService)
	registry.Register("payroll", payrollService)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	dashboardHandler := dashboard.NewHandler(dashboardService)
	departmentHandler := department.NewHandler(departmentService)
	notificationHandler := notification.NewHandler(notificationService)
	payrollHandler := payroll.NewHandler(payrollService)
	rbacHandler := rbac.NewHandler(rbacService)
	taskHandler := task.NewHandler(taskService)
	userHandler := user.NewHandler(userService, logger)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		rbac_http.RegisterRoutes(api, rbacHandler, rbacService, rdb)
		user.RegisterRoutes(api, userHandler, rbacService, rdb)
		department.RegisterRoutes(api, departmentHandler, rbacService, rdb)
		task.RegisterRoutes(api, taskHandler, rbacService, rdb)
		payroll.RegisterRoutes(api, payrollHandler, rbacService, rdb)
		notification.RegisterRoutes(api, notificationHandler, rbacService)
		dashboard.RegisterRoutes(api, dashboardHandler, rbacService)
	}

	return nil
}
