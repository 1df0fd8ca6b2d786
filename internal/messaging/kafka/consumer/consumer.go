package consumer

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/fenixfl1/CompuPay/internal/notification"
	"github.com/fenixfl1/CompuPay/internal/shared/apperror"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Reader is the part of *kafkago.Reader the consumers use.
type Reader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// Notifier persists and pushes one notification.
type Notifier interface {
	Send(ctx context.Context, sender, receiver, message string, payload map[string]any) (notification.NotificationResponse, error)
}

// errSkip marks a message that can never succeed. It is committed so the
// partition keeps moving.
var errSkip = errors.New("skip message")

type handleFunc func(ctx context.Context, msg kafkago.Message) error

// run fetches, handles and commits until ctx ends. A handler failure leaves
// the message uncommitted so it is redelivered after a rebalance or restart.
func run(ctx context.Context, reader Reader, log *zap.Logger, handle handleFunc) {
	log.Info("consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("consumer stopped")
				return
			}
			log.Error("fetch message failed", zap.Error(err))
			continue
		}

		if err := handle(ctx, msg); err != nil {
			if !errors.Is(err, errSkip) {
				log.Error("handle message failed",
					zap.String("topic", msg.Topic),
					zap.Int64("offset", msg.Offset),
					zap.Error(err),
				)
				continue
			}
			log.Warn("message skipped",
				zap.String("topic", msg.Topic),
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit message failed", zap.Error(err))
		}
	}
}

func decode(msg kafkago.Message, v any) error {
	if err := json.Unmarshal(msg.Value, v); err != nil {
		return errors.Join(errSkip, err)
	}
	return nil
}

// deliver sends a notification, treating validation failures as permanent.
func deliver(ctx context.Context, notifier Notifier, sender, receiver, message string, payload map[string]any) error {
	_, err := notifier.Send(ctx, sender, receiver, message, payload)
	var appErr *apperror.AppError
	if errors.As(err, &appErr) && appErr.HTTPStatus < 500 {
		return errors.Join(errSkip, err)
	}
	return err
}
