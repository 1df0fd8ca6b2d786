package events

import "time"

const TaskAssignedTopic = "compupay.task.assigned.v1"

type TaskAssignedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	TaskID     int       `json:"task_id"`
	TaskName   string    `json:"task_name"`
	Username   string    `json:"username"`
	AssignedBy string    `json:"assigned_by"`
	OccurredAt time.Time `json:"occurred_at"`
}
