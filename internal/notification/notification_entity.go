package notification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	// TypeOnTime marks a message delivered while the receiver was connected.
	TypeOnTime = "ontime"
	// TypeOffTime marks an unread message replayed when the receiver connects.
	TypeOffTime = "offtime"
)

type Notification struct {
	ID        uuid.UUID         `gorm:"type:uuid;primaryKey"`
	Sender    *string           `gorm:"type:varchar(100)"`
	Receiver  string            `gorm:"type:varchar(100);not null"`
	Message   string            `gorm:"not null"`
	Type      string            `gorm:"type:varchar(20);not null"`
	IsRead    bool              `gorm:"not null"`
	Payload   datatypes.JSONMap `gorm:"type:jsonb"`
	State     string            `gorm:"type:varchar(1);not null"`
	CreatedAt time.Time         `gorm:"not null"`
}

func (Notification) TableName() string {
	return "notifications"
}
