package activitylog

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
)

type Action int16

const (
	ActionCreate Action = 1
	ActionUpdate Action = 2
	ActionDelete Action = 3
)

func (a Action) Valid() bool {
	return a >= ActionCreate && a <= ActionDelete
}

func (a Action) String() string {
	switch a {
	case ActionCreate:
		return "create"
	case ActionUpdate:
		return "update"
	case ActionDelete:
		return "delete"
	default:
		return fmt.Sprintf("action(%d)", int16(a))
	}
}

// EntityRef points at any row by kind and primary key.
type EntityRef struct {
	Kind string
	ID   string
}

func Ref(kind string, id any) EntityRef {
	return EntityRef{Kind: kind, ID: fmt.Sprint(id)}
}

type ActivityLog struct {
	ID            int64             `gorm:"primaryKey;autoIncrement"`
	ActionTime    time.Time         `gorm:"not null"`
	Username      *string           `gorm:"type:varchar(100)"`
	ContentType   string            `gorm:"type:varchar(50);not null"`
	ObjectID      string            `gorm:"not null"`
	ObjectRepr    string            `gorm:"type:varchar(200);not null"`
	ActionFlag    Action            `gorm:"not null"`
	ChangeMessage string            `gorm:"not null;default:''"`
	Metadata      datatypes.JSONMap `gorm:"type:jsonb"`
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}
