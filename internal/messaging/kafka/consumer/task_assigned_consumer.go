package consumer

import (
	"context"
	"fmt"

	"github.com/fenixfl1/CompuPay/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

func ConsumeTaskAssigned(
	ctx context.Context,
	reader Reader,
	notifier Notifier,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.task_assigned")
	run(ctx, reader, log, func(ctx context.Context, msg kafkago.Message) error {
		var event events.TaskAssignedEvent
		if err := decode(msg, &event); err != nil {
			return err
		}

		text := fmt.Sprintf("@%s te asignó una nueva tarea '%s'", event.AssignedBy, event.TaskName)
		err := deliver(ctx, notifier, event.AssignedBy, event.Username, text, map[string]any{
			"event_type": event.EventType,
			"request_id": event.RequestID,
			"task_id":    event.TaskID,
		})
		if err != nil {
			return err
		}

		log.Info("task assignment notified",
			zap.Int("task_id", event.TaskID),
			zap.String("username", event.Username),
		)
		return nil
	})
}
