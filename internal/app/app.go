package app

import (
	"net/http"

	"github.com/fenixfl1/CompuPay/internal/config"
	"github.com/fenixfl1/CompuPay/internal/middleware"
	"github.com/fenixfl1/CompuPay/internal/observability"
	"github.com/fenixfl1/CompuPay/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BuildApp connects the infrastructure, installs the global middleware chain
// and registers every module on router. The returned cleanup closes the
// connections opened here.
func BuildApp(router *gin.Engine, cfg config.Config) (func(), error) {
	logger := zap.L().Named("app")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.DB)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}

	rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, cfg.DB.MaxRetries)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	observability.Init()

	router.Use(
		middleware.RequestID(),
		middleware.ContextLogger(logger),
		middleware.Metrics(),
	)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(observability.Handler()))

	if err := registerModules(router, sqlDB, gormDB, rdb, logger); err != nil {
		_ = rdb.Close()
		_ = sqlDB.Close()
		return nil, err
	}

	return func() {
		_ = rdb.Close()
		_ = sqlDB.Close()
	}, nil
}
