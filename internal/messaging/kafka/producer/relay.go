// Package producer relays committed outbox rows to kafka.
package producer

import (
	"context"
	"time"

	"github.com/fenixfl1/CompuPay/internal/messaging/kafka"
	"github.com/fenixfl1/CompuPay/internal/observability"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	defaultPollInterval = 3 * time.Second
	defaultBatchSize    = 50
)

// MessageWriter is the subset of *kafkago.Writer the relay needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
}

type RelayConfig struct {
	PollInterval time.Duration
	BatchSize    int
}

type Relay struct {
	repo   kafka.OutboxRepository
	writer MessageWriter
	cfg    RelayConfig
	logger *zap.Logger
}

func NewRelay(repo kafka.OutboxRepository, writer MessageWriter, cfg RelayConfig, logger *zap.Logger) *Relay {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}
	return &Relay{repo: repo, writer: writer, cfg: cfg, logger: logger.Named("kafka.producer.relay")}
}

// Run drains the outbox every poll interval until ctx is cancelled.
func (r *Relay) Run(ctx context.Context) {
	ticker := time.NewTicker(r.cfg.PollInterval)
	defer ticker.Stop()

	r.logger.Info("outbox relay started",
		zap.Duration("poll_interval", r.cfg.PollInterval),
		zap.Int("batch_size", r.cfg.BatchSize),
	)

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("outbox relay stopped")
			return
		case <-ticker.C:
			if _, err := r.Drain(ctx); err != nil {
				r.logger.Error("drain outbox failed", zap.Error(err))
			}
		}
	}
}

// Drain publishes batches until one comes back short, so a backlog is
// flushed within a single tick. It returns the number of events sent.
func (r *Relay) Drain(ctx context.Context) (int, error) {
	sent := 0
	for ctx.Err() == nil {
		events, err := r.repo.ListPending(ctx, r.cfg.BatchSize)
		if err != nil {
			return sent, err
		}

		ok := r.publishBatch(ctx, events)
		sent += ok

		// a batch where nothing went out would be fetched again as is
		if len(events) < r.cfg.BatchSize || ok == 0 {
			return sent, nil
		}
	}
	return sent, ctx.Err()
}

func (r *Relay) publishBatch(ctx context.Context, events []kafka.OutboxEvent) int {
	sent := 0
	for _, event := range events {
		log := r.logger.With(
			zap.String("outbox_id", event.ID),
			zap.String("event_type", event.EventType),
			zap.String("topic", event.Topic),
			zap.String("request_id", event.RequestID),
		)

		if err := r.writer.WriteMessages(ctx, toMessage(event)); err != nil {
			observability.OutboxPublished.WithLabelValues("failed").Inc()
			log.Warn("publish outbox event failed", zap.Int("attempt", event.RetryCount+1), zap.Error(err))
			if err := r.repo.MarkFailed(ctx, event.ID, err.Error()); err != nil {
				log.Error("mark outbox failed failed", zap.Error(err))
			}
			continue
		}

		if err := r.repo.MarkSent(ctx, event.ID); err != nil {
			// the message is out; a retry will deliver it twice, which
			// consumers tolerate
			log.Error("mark outbox sent failed", zap.Error(err))
			continue
		}

		observability.OutboxPublished.WithLabelValues("sent").Inc()
		sent++
		log.Debug("outbox event sent")
	}
	return sent
}

func toMessage(event kafka.OutboxEvent) kafkago.Message {
	return kafkago.Message{
		Topic: event.Topic,
		Key:   []byte(event.AggregateID),
		Value: event.Payload,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
			{Key: "aggregate_type", Value: []byte(event.AggregateType)},
			{Key: "request_id", Value: []byte(event.RequestID)},
		},
	}
}
