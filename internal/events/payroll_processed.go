package events

import "time"

const PayrollProcessedTopic = "compupay.payroll.processed.v1"

// PayrollProcessedEvent is queued once per processed entry.
type PayrollProcessedEvent struct {
	EventType   string    `json:"event_type"`
	RequestID   string    `json:"request_id,omitempty"`
	PayrollID   int       `json:"payroll_id"`
	EntryID     int       `json:"payroll_entry_id"`
	Username    string    `json:"username"`
	Period      int       `json:"period"`
	NetSalary   string    `json:"net_salary"`
	ProcessedBy string    `json:"processed_by"`
	OccurredAt  time.Time `json:"occurred_at"`
}
