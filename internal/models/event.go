package models

import "time"

// EventType names an outbound engine event
type EventType string

const (
	EventParlayCreated  EventType = "parlay.created"
	EventParlayUpdated  EventType = "parlay.updated"
	EventParlayReplaced EventType = "parlay.replaced"
	EventParlayExpired  EventType = "parlay.expired"
	EventHealthScored   EventType = "health.scored"
	EventProfileLimited EventType = "profile.limited"
)

// EngineEvent is published for the external notification layer
type EngineEvent struct {
	Type       EventType     `json:"type"`
	Key        string        `json:"key"`
	Parlay     *Parlay       `json:"parlay,omitempty"`
	Health     *HealthReport `json:"health,omitempty"`
	LimitEvent *LimitEvent   `json:"limit_event,omitempty"`
	OccurredAt time.Time     `json:"occurred_at"`
}
