package domain

import "time"

type EventType string

const (
	EventSignedUp     EventType = "activity.signed_up"
	EventUnregistered EventType = "activity.unregistered"
	EventUserCreated  EventType = "user.created"
	EventUserDeleted  EventType = "user.deleted"
)

// Event describes a completed mutation. Activity is empty for user events.
type Event struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	Activity   string    `json:"activity,omitempty"`
	Email      string    `json:"email"`
	Actor      string    `json:"actor"`
	OccurredAt time.Time `json:"occurred_at"`
}
