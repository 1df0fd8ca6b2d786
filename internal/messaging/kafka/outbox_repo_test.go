package kafka_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/fenixfl1/CompuPay/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestNewOutboxEvent(t *testing.T) {
	event, err := kafka.NewOutboxEvent("rid-1", "task", "7", "task.assigned", "topic.v1", map[string]any{"task_id": 7})
	assert.NoError(t, err)
	assert.NotEmpty(t, event.ID)
	assert.Equal(t, kafka.OutboxStatusPending, event.Status)

	var payload map[string]any
	assert.NoError(t, json.Unmarshal(event.Payload, &payload))
	assert.Equal(t, float64(7), payload["task_id"])

	_, err = kafka.NewOutboxEvent("rid-1", "task", "7", "task.assigned", "", map[string]any{})
	assert.Error(t, err)
}

func TestOutboxRepository_CreateUsesTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := kafka.NewOutboxRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO outbox_events").
		WithArgs("id-1", "rid", "payroll", "3", "payroll.processed", "topic", []byte(`{}`), kafka.OutboxStatusPending).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.Begin()
	assert.NoError(t, err)

	err = repo.WithTx(tx).Create(context.Background(), kafka.OutboxEvent{
		ID: "id-1", RequestID: "rid", AggregateType: "payroll", AggregateID: "3",
		EventType: "payroll.processed", Topic: "topic", Payload: []byte(`{}`), Status: kafka.OutboxStatusPending,
	})
	assert.NoError(t, err)
	assert.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_ListPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "request_id", "aggregate_type", "aggregate_id", "event_type", "topic", "payload", "status", "retry_count", "next_retry_at"}).
		AddRow("id-1", "rid", "task", "9", "task.assigned", "topic", []byte(`{"task_id":9}`), kafka.OutboxStatusPending, 0, now)
	mock.ExpectQuery("FROM outbox_events").
		WithArgs(kafka.OutboxStatusPending, kafka.OutboxStatusFailed, kafka.MaxOutboxAttempts, 50).
		WillReturnRows(rows)

	events, err := kafka.NewOutboxRepository(db).ListPending(context.Background(), 50)
	assert.NoError(t, err)
	assert.Len(t, events, 1)
	assert.Equal(t, "rid", events[0].RequestID)
	assert.Equal(t, "9", events[0].AggregateID)
}

func TestOutboxRepository_MarkFailedDeadLettersAfterMaxAttempts(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`UPDATE outbox_events SET status = CASE WHEN retry_count \+ 1 >= \$4 THEN \$5 ELSE \$2 END`).
		WithArgs("id-1", kafka.OutboxStatusFailed, "broker unavailable", kafka.MaxOutboxAttempts, kafka.OutboxStatusDead, 15).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = kafka.NewOutboxRepository(db).MarkFailed(context.Background(), "id-1", "broker unavailable")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
