package consumer

import (
	"context"
	"fmt"

	"github.com/fenixfl1/CompuPay/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

func ConsumePayrollProcessed(
	ctx context.Context,
	reader Reader,
	notifier Notifier,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.payroll_processed")
	run(ctx, reader, log, func(ctx context.Context, msg kafkago.Message) error {
		var event events.PayrollProcessedEvent
		if err := decode(msg, &event); err != nil {
			return err
		}

		text := fmt.Sprintf("Tu pago de la nómina #%d fue procesado. Neto: %s", event.PayrollID, event.NetSalary)
		err := deliver(ctx, notifier, event.ProcessedBy, event.Username, text, map[string]any{
			"event_type":       event.EventType,
			"request_id":       event.RequestID,
			"payroll_id":       event.PayrollID,
			"payroll_entry_id": event.EntryID,
			"period":           event.Period,
		})
		if err != nil {
			return err
		}

		log.Info("payroll payment notified",
			zap.Int("payroll_id", event.PayrollID),
			zap.String("username", event.Username),
		)
		return nil
	})
}
