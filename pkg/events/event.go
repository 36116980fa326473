package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	TypeUserRegistered = "USER_REGISTERED"
	TypeUserSignedIn   = "USER_SIGNED_IN"
	TypeNoteCreated    = "NOTE_CREATED"
	TypeNoteUpdated    = "NOTE_UPDATED"
	TypeNoteDeleted    = "NOTE_DELETED"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "NOTE_CREATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func New(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{Type: eventType, Data: data, OccurredAt: time.Now().UTC()}
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Envelope is the wire form shared by every bus.
type Envelope struct {
	Id         string                 `json:"id"`
	Type       string                 `json:"type"`
	OccurredAt time.Time              `json:"occurred_at"`
	Data       map[string]interface{} `json:"data"`
}

func NewEnvelope(e Event) Envelope {
	return Envelope{
		Id:         uuid.NewString(),
		Type:       e.EventType(),
		OccurredAt: e.Timestamp(),
		Data:       e.Payload(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
