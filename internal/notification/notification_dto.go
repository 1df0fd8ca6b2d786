package notification

import (
	"time"

	"github.com/google/uuid"
)

// Message is the frame pushed over redis and the SSE stream.
type Message struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

type SendRequest struct {
	Receiver string         `json:"receiver" binding:"required,max=100"`
	Message  string         `json:"message" binding:"required"`
	Payload  map[string]any `json:"payload"`
}

type NotificationResponse struct {
	ID        uuid.UUID      `json:"id"`
	Sender    *string        `json:"sender"`
	Receiver  string         `json:"receiver"`
	Message   string         `json:"message"`
	Type      string         `json:"type"`
	IsRead    bool           `json:"is_read"`
	Payload   map[string]any `json:"payload,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

type MarkAsReadResponse struct {
	Updated int64 `json:"updated"`
}

func mapToResponse(n Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		Sender:    n.Sender,
		Receiver:  n.Receiver,
		Message:   n.Message,
		Type:      n.Type,
		IsRead:    n.IsRead,
		Payload:   n.Payload,
		CreatedAt: n.CreatedAt,
	}
}
