package eventlog

import (
	"context"
	"time"
)

// Event is one persisted audit log entry
type Event struct {
	ID        int64                  `json:"id"`
	EventType string                 `json:"event_type"`
	UserID    *int64                 `json:"user_id,omitempty"`
	Payload   map[string]interface{} `json:"payload"`
	CreatedAt time.Time              `json:"created_at"`
}

// EventFilter narrows event queries
type EventFilter struct {
	UserID    *int64
	EventType *string
	Since     *time.Time
	Limit     int
}

// Repository defines storage for the audit event log
type Repository interface {
	LogEvent(ctx context.Context, eventType string, userID *int64, payload map[string]interface{}) error
	GetEvents(ctx context.Context, filter EventFilter) ([]Event, error)
}
