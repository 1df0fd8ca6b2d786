package task

import (
	"time"

	"github.com/fenixfl1/CompuPay/internal/shared/entity"
)

const (
	StatusPending    = "PENDING"
	StatusInProgress = "IN_PROGRESS"
	StatusDone       = "DONE"
	StatusCanceled   = "CANCELED"

	PriorityHigh   = "H"
	PriorityMedium = "M"
	PriorityLow    = "L"
)

var (
	Statuses   = []string{StatusPending, StatusInProgress, StatusDone, StatusCanceled}
	Priorities = []string{PriorityHigh, PriorityMedium, PriorityLow}
)

type Task struct {
	TaskID         int    `gorm:"primaryKey;autoIncrement"`
	Name           string `gorm:"type:varchar(100);not null"`
	Description    string `gorm:"type:text;not null"`
	Completed      bool
	CompletionDate *time.Time
	Priority       string `gorm:"type:varchar(1);not null"`
	Status         string `gorm:"type:varchar(20);not null"`
	StartDate      *time.Time
	EndDate        *time.Time
	entity.Base
}

func (Task) TableName() string {
	return "tasks"
}

type Tag struct {
	TagID       int     `gorm:"primaryKey;autoIncrement"`
	Name        string  `gorm:"type:varchar(50);not null"`
	Description *string `gorm:"type:varchar(100)"`
	Color       *string `gorm:"type:varchar(7)"`
	entity.Base
}

func (Tag) TableName() string {
	return "tags"
}

// TaskAssignment links a user to a task. Rows are never deleted, only
// flipped between Active and Inactive, so (task, user) keeps one id.
type TaskAssignment struct {
	ID     int `gorm:"primaryKey;autoIncrement"`
	TaskID int `gorm:"not null"`
	UserID int `gorm:"not null"`
	entity.Base
}

func (TaskAssignment) TableName() string {
	return "task_assignments"
}

type TaskTag struct {
	ID     int `gorm:"primaryKey;autoIncrement"`
	TaskID int `gorm:"not null"`
	TagID  int `gorm:"not null"`
	entity.Base
}

func (TaskTag) TableName() string {
	return "task_tags"
}

type UserRef struct {
	UserID   int
	Username string
}

// AssigneeRow is an active assignment joined with its user.
type AssigneeRow struct {
	TaskID   int
	UserID   int
	Username string
	Name     string
	LastName string
	Avatar   *string
}

// TagRow is an active task tag joined with the tag.
type TagRow struct {
	TaskID int
	TagID  int
	Name   string
	Color  *string
}
