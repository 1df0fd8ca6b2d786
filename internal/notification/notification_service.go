package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	notificationerrors "github.com/fenixfl1/CompuPay/internal/notification/errors"
	"github.com/fenixfl1/CompuPay/internal/observability"
	"github.com/fenixfl1/CompuPay/internal/shared/contextutil"
	"github.com/fenixfl1/CompuPay/internal/shared/entity"
	"github.com/fenixfl1/CompuPay/internal/shared/filter"
	"github.com/fenixfl1/CompuPay/internal/shared/response"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const liveBuffer = 16

func UserChannel(username string) string {
	return "notifications:" + username
}

func TaskChannel(taskID int) string {
	return fmt.Sprintf("task:%d", taskID)
}

//go:generate mockgen -source=notification_service.go -destination=mock/notification_service_mock.go -package=mock
type Service interface {
	// Send persists a notification for receiver and pushes it to any open
	// stream. A failed push is logged, the row is kept for replay.
	Send(ctx context.Context, sender, receiver, message string, payload map[string]any) (NotificationResponse, error)
	BroadcastTask(ctx context.Context, taskID int, message string) error
	Subscribe(ctx context.Context, username string, taskIDs []int) (*Subscription, error)
	MarkAsRead(ctx context.Context, username string) (MarkAsReadResponse, error)
	List(ctx context.Context, res filter.Result, page response.Page) ([]NotificationResponse, int64, error)
}

// Subscription is one open stream: the unread backlog followed by live
// messages until Close.
type Subscription struct {
	Backlog []Message
	Live    <-chan Message
	close   func() error
}

func NewSubscription(backlog []Message, live <-chan Message, closeFn func() error) *Subscription {
	return &Subscription{Backlog: backlog, Live: live, close: closeFn}
}

func (s *Subscription) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	logger *zap.Logger
}

var now = time.Now

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &service{repo: repo, rdb: rdb, logger: l}
}

func (s *service) Send(ctx context.Context, sender, receiver, message string, payload map[string]any) (NotificationResponse, error) {
	receiver = strings.TrimSpace(receiver)
	message = strings.TrimSpace(message)
	if receiver == "" {
		return NotificationResponse{}, notificationerrors.ErrReceiverRequired
	}
	if message == "" {
		return NotificationResponse{}, notificationerrors.ErrMessageRequired
	}

	n := &Notification{
		ID:        uuid.New(),
		Receiver:  receiver,
		Message:   message,
		Type:      TypeOnTime,
		Payload:   payload,
		State:     entity.StateActive,
		CreatedAt: now(),
	}
	if sender != "" {
		n.Sender = &sender
	}
	if err := s.repo.Create(ctx, n); err != nil {
		s.logger.Error("persist notification failed",
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.String("receiver", receiver),
			zap.Error(err),
		)
		return NotificationResponse{}, err
	}
	observability.NotificationsSent.WithLabelValues(TypeOnTime).Inc()

	if err := s.publish(ctx, UserChannel(receiver), Message{Message: message, Type: TypeOnTime}); err != nil {
		s.logger.Warn("push notification failed",
			zap.String("receiver", receiver),
			zap.Error(err),
		)
	}
	return mapToResponse(*n), nil
}

func (s *service) BroadcastTask(ctx context.Context, taskID int, message string) error {
	return s.publish(ctx, TaskChannel(taskID), Message{Message: message, Type: TypeOnTime})
}

func (s *service) publish(ctx context.Context, channel string, msg Message) error {
	if s.rdb == nil {
		return nil
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return s.rdb.Publish(ctx, channel, data).Err()
}

// Subscribe listens on the user's channel and on every followed task before
// loading the backlog, so nothing published in between is lost.
func (s *service) Subscribe(ctx context.Context, username string, taskIDs []int) (*Subscription, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, notificationerrors.ErrReceiverRequired
	}
	if s.rdb == nil {
		return nil, notificationerrors.ErrStreamUnavailable
	}

	channels := []string{UserChannel(username)}
	for _, id := range taskIDs {
		channels = append(channels, TaskChannel(id))
	}
	pubsub := s.rdb.Subscribe(ctx, channels...)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, err
	}

	unread, err := s.repo.FindUnread(ctx, username)
	if err != nil {
		_ = pubsub.Close()
		return nil, err
	}
	backlog := make([]Message, len(unread))
	for i, n := range unread {
		backlog[i] = Message{Message: n.Message, Type: TypeOffTime}
	}
	if len(backlog) > 0 {
		observability.NotificationsSent.WithLabelValues(TypeOffTime).Add(float64(len(backlog)))
	}

	live := make(chan Message, liveBuffer)
	go s.relay(ctx, pubsub.Channel(), live)

	s.logger.Debug("notification stream opened",
		zap.String("username", username),
		zap.Int("channels", len(channels)),
		zap.Int("backlog", len(backlog)),
	)
	return NewSubscription(backlog, live, pubsub.Close), nil
}

func (s *service) relay(ctx context.Context, in <-chan *redis.Message, out chan<- Message) {
	defer close(out)
	for {
		select {
		case <-ctx.Done():
			return
		case raw, ok := <-in:
			if !ok {
				return
			}
			select {
			case out <- decodeMessage(raw.Payload):
			case <-ctx.Done():
				return
			}
		}
	}
}

// decodeMessage accepts both framed messages and plain text published by
// other tools.
func decodeMessage(payload string) Message {
	var msg Message
	if err := json.Unmarshal([]byte(payload), &msg); err != nil || msg.Message == "" {
		return Message{Message: payload, Type: TypeOnTime}
	}
	if msg.Type == "" {
		msg.Type = TypeOnTime
	}
	return msg
}

func (s *service) MarkAsRead(ctx context.Context, username string) (MarkAsReadResponse, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return MarkAsReadResponse{}, notificationerrors.ErrReceiverRequired
	}
	n, err := s.repo.MarkAllRead(ctx, username)
	if err != nil {
		return MarkAsReadResponse{}, err
	}
	return MarkAsReadResponse{Updated: n}, nil
}

func (s *service) List(ctx context.Context, res filter.Result, page response.Page) ([]NotificationResponse, int64, error) {
	rows, total, err := s.repo.FindPage(ctx, res, page)
	if err != nil {
		s.logger.Error("list notifications failed", zap.Error(err))
		return nil, 0, err
	}
	out := make([]NotificationResponse, len(rows))
	for i, n := range rows {
		out[i] = mapToResponse(n)
	}
	return out, total, nil
}
