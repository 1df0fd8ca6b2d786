package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fenixfl1/CompuPay/internal/activitylog"
	"github.com/fenixfl1/CompuPay/internal/config"
	"github.com/fenixfl1/CompuPay/internal/messaging/kafka"
	"github.com/fenixfl1/CompuPay/internal/messaging/kafka/producer"
	"github.com/fenixfl1/CompuPay/internal/observability"
	"github.com/fenixfl1/CompuPay/internal/payroll"
	"github.com/fenixfl1/CompuPay/internal/shared/connection"

	"go.uber.org/zap"
)

// RunWorker relays the outbox to kafka and, when enabled, runs the payroll
// autopay schedule. It blocks until SIGINT or SIGTERM.
func RunWorker(cfg config.Config) error {
	logger := zap.L().Named("app.worker")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.DB)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if cfg.KafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.KafkaBroker, cfg.DB.MaxRetries)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, cfg.DB.MaxRetries)
	if err != nil {
		return err
	}
	defer rdb.Close()

	observability.Init()

	outboxRepo := kafka.NewOutboxRepository(sqlDB)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	relay := producer.NewRelay(outboxRepo, kafkaWriter, producer.RelayConfig{
		PollInterval: cfg.OutboxPollInterval,
		BatchSize:    cfg.OutboxBatchSize,
	}, logger)
	go relay.Run(ctx)

	if cfg.Scheduler.AutopayEnabled {
		payrollService := payroll.NewService(sqlDB, payroll.NewRepository(gormDB), payroll.Deps{
			Redis:    rdb,
			Outbox:   outboxRepo,
			Activity: activitylog.NewService(activitylog.NewRepository(gormDB), nil, logger),
		})

		scheduler, err := newScheduler(cfg.Scheduler.AutopaySpec, payrollService, cfg.Scheduler.SystemActor, logger.Named("scheduler"))
		if err != nil {
			return fmt.Errorf("invalid autopay schedule %q: %w", cfg.Scheduler.AutopaySpec, err)
		}
		scheduler.Start()
		defer func() { <-scheduler.Stop().Done() }()

		logger.Info("autopay scheduler started", zap.String("schedule", cfg.Scheduler.AutopaySpec))
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("worker shutting down")
	cancel()

	return nil
}
