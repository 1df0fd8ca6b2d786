package activitylog

import "time"

type ActivityResponse struct {
	ID            int64          `json:"id"`
	ActionTime    time.Time      `json:"action_time"`
	Username      string         `json:"username"`
	ContentType   string         `json:"content_type"`
	ObjectID      string         `json:"object_id"`
	ObjectRepr    string         `json:"object_repr"`
	Action        string         `json:"action"`
	ActionFlag    int16          `json:"action_flag"`
	ChangeMessage string         `json:"change_message"`
	Metadata      map[string]any `json:"metadata,omitempty"`
}

func mapToResponse(l ActivityLog) ActivityResponse {
	resp := ActivityResponse{
		ID:            l.ID,
		ActionTime:    l.ActionTime,
		ContentType:   l.ContentType,
		ObjectID:      l.ObjectID,
		ObjectRepr:    l.ObjectRepr,
		Action:        l.ActionFlag.String(),
		ActionFlag:    int16(l.ActionFlag),
		ChangeMessage: l.ChangeMessage,
		Metadata:      l.Metadata,
	}
	if l.Username != nil {
		resp.Username = *l.Username
	}
	return resp
}
