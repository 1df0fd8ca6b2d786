package events

import "time"

const UserCreatedTopic = "compupay.user.lifecycle.v1"

type UserCreatedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	UserID     int       `json:"user_id"`
	Username   string    `json:"username"`
	CreatedBy  string    `json:"created_by"`
	OccurredAt time.Time `json:"occurred_at"`
}
