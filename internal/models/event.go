package models

import (
	"encoding/json"
	"strings"
	"time"
)

// EventType categorizes events in the system.
type EventType string

const (
	// Gadget events
	EventTypeGadgetCreated EventType = "gadget.created"
	EventTypeGadgetUpdated EventType = "gadget.updated"
	EventTypeGadgetRenamed EventType = "gadget.renamed"
	EventTypeGadgetDeleted EventType = "gadget.deleted"
	EventTypeGadgetRan     EventType = "gadget.ran"

	// System events
	EventTypeError   EventType = "error"
	EventTypeWarning EventType = "warning"
)

// EntityType identifies the type of entity an event relates to.
type EntityType string

const (
	EntityTypeGadget EntityType = "gadget"
	EntityTypeSystem EntityType = "system"
)

// Event represents an append-only log entry.
type Event struct {
	// ID is the unique identifier for the event.
	ID string `json:"id"`

	// Timestamp is when the event occurred.
	Timestamp time.Time `json:"timestamp"`

	// Type categorizes the event.
	Type EventType `json:"type"`

	// EntityType identifies what kind of entity this event relates to.
	EntityType EntityType `json:"entity_type"`

	// EntityID is the ID of the related entity.
	EntityID string `json:"entity_id"`

	// Payload contains event-specific data.
	Payload json.RawMessage `json:"payload,omitempty"`

	// Metadata contains additional context.
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Validate checks if the event is valid.
func (e *Event) Validate() error {
	validation := &ValidationErrors{}
	if strings.TrimSpace(string(e.Type)) == "" {
		validation.AddMessage("type", "event type is required")
	}
	if strings.TrimSpace(string(e.EntityType)) == "" {
		validation.AddMessage("entity_type", "entity_type is required")
	}
	if strings.TrimSpace(e.EntityID) == "" {
		validation.AddMessage("entity_id", "entity_id is required")
	}
	return validation.Err()
}

// GadgetSavedPayload is the payload for gadget.created and gadget.updated events.
type GadgetSavedPayload struct {
	Command   string   `json:"command"`
	Variables []string `json:"variables,omitempty"`
}

// GadgetRenamedPayload is the payload for gadget.renamed events.
type GadgetRenamedPayload struct {
	OldName string `json:"old_name"`
	NewName string `json:"new_name"`
}

// GadgetRanPayload is the payload for gadget.ran events.
type GadgetRanPayload struct {
	Command  string `json:"command"`
	ExitCode int    `json:"exit_code"`
	Duration string `json:"duration"`
	Error    string `json:"error,omitempty"`
}

// ErrorPayload is the payload for error events.
type ErrorPayload struct {
	Error   string `json:"error"`
	Context string `json:"context,omitempty"`
}
