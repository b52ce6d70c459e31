package domain

import "time"

// EventType defines the category of the event.
type EventType string

const (
	EventResolved EventType = "resolved"
	EventNotFound EventType = "not_found"
	EventInvalid  EventType = "invalid"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	ViewID    string    `json:"view_id"`
}

// ResolveEvent describes the outcome of resolving a single expression.
type ResolveEvent struct {
	EventBase
	Expression string        `json:"expression"`
	SourceID   string        `json:"source_id,omitempty"`
	Matches    int           `json:"matches"`
	Duration   time.Duration `json:"duration"`
	Err        error         `json:"-"`
}

// LifecycleHooks defines callbacks for resolver observability.
type LifecycleHooks struct {
	OnResolve  func(*ResolveEvent)
	OnNotFound func(*ResolveEvent)
	OnInvalid  func(*ResolveEvent)
}
