package event

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypePromptCreated     Type = "prompt_created"
	TypePromptUpdated     Type = "prompt_updated"
	TypePromptDeleted     Type = "prompt_deleted"
	TypePromptsBulkDelete Type = "prompts_bulk_deleted"
	TypePromptsImported   Type = "prompts_imported"
)

// Channel groups event types for subscription. All library mutations share
// one channel — subscribers refilter by Type from the payload.
type Channel string

const ChannelLibrary Channel = "library"

// ChannelFor returns the channel for a given event type.
func ChannelFor(Type) Channel { return ChannelLibrary }

// Event carries identifiers only, not full state. Subscribers fetch fresh
// state from the library service. EntityID is uuid.Nil for bulk operations;
// Count carries how many records the operation touched.
type Event struct {
	Type      Type      `json:"type"`
	EntityID  uuid.UUID `json:"entity_id"`
	Count     int       `json:"count,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func New(eventType Type, entityID uuid.UUID) Event {
	return Event{
		Type:      eventType,
		EntityID:  entityID,
		Count:     1,
		Timestamp: time.Now().UTC(),
	}
}

// NewBulk builds an event for an operation spanning count records.
func NewBulk(eventType Type, count int) Event {
	return Event{
		Type:      eventType,
		Count:     count,
		Timestamp: time.Now().UTC(),
	}
}
