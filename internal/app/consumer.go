package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/fenixfl1/CompuPay/internal/config"
	"github.com/fenixfl1/CompuPay/internal/events"
	"github.com/fenixfl1/CompuPay/internal/messaging/kafka/consumer"
	"github.com/fenixfl1/CompuPay/internal/notification"
	"github.com/fenixfl1/CompuPay/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const consumerGroup = "compupay-notifications"

// RunConsumer turns task assignment and payroll events into user
// notifications. It blocks until SIGINT or SIGTERM.
func RunConsumer(cfg config.Config) error {
	logger := zap.L().Named("app.consumer")

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

	rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, cfg.DB.MaxRetries)
	if err != nil {
		return err
	}
	defer rdb.Close()

	notificationService := notification.NewService(notification.NewRepository(gormDB), rdb)

	taskReader := newReader(cfg.KafkaBroker, events.TaskAssignedTopic)
	defer taskReader.Close()
	payrollReader := newReader(cfg.KafkaBroker, events.PayrollProcessedTopic)
	defer payrollReader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		consumer.ConsumeTaskAssigned(ctx, taskReader, notificationService, logger)
	}()
	go func() {
		defer wg.Done()
		consumer.ConsumePayrollProcessed(ctx, payrollReader, notificationService, logger)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()
	wg.Wait()

	return nil
}

func newReader(broker, topic string) *kafkago.Reader {
	return kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{broker},
		Topic:          topic,
		GroupID:        consumerGroup,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
}
