package main

import (
	"flag"

	"github.com/fenixfl1/CompuPay/internal/config"
	"github.com/fenixfl1/CompuPay/internal/database"
	"github.com/fenixfl1/CompuPay/internal/shared/connection"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	status := flag.Bool("status", false, "print migration status instead of applying")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	gormDB, err := connection.ConnectGORMWithRetry(cfg.DB)
	if err != nil {
		logger.Fatal("connect database failed", zap.Error(err))
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("get sql.DB failed", zap.Error(err))
	}
	defer sqlDB.Close()

	if *status {
		if err := database.Status(sqlDB); err != nil {
			logger.Fatal("migration status failed", zap.Error(err))
		}
		return
	}

	if err := database.Migrate(sqlDB); err != nil {
		logger.Fatal("migrate failed", zap.Error(err))
	}
	logger.Info("migrations applied")
}
