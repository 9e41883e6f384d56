package events

import (
	"time"
)

// EventType identifies a category of occurrence the bus can carry
type EventType string

// Event is a single published occurrence. Payload is carried by reference
// and never copied or validated by the bus; its shape is defined per event
// type by the payload structs below.
type Event struct {
	Type      EventType
	Payload   any
	Timestamp time.Time
}

// Handler processes an event. A non-nil error is isolated by the dispatcher
// and reported on the error channel; it never reaches the publisher.
type Handler func(Event) error

// ErrorPayload is the payload of EventTypeError events
type ErrorPayload struct {
	// Err is the listener's returned error, or its recovered panic wrapped
	// as an error
	Err error

	// Context names the originating event type and listener
	Context string
}

// DocumentCreatedPayload accompanies EventTypeDocumentCreated
type DocumentCreatedPayload struct {
	DocumentID string
	Title      string
}

// DocumentSavedPayload accompanies EventTypeDocumentSaved
type DocumentSavedPayload struct {
	DocumentID string
}

// DocumentLoadedPayload accompanies EventTypeDocumentLoaded
type DocumentLoadedPayload struct {
	DocumentID string
}

// SectionAddedPayload accompanies EventTypeSectionAdded
type SectionAddedPayload struct {
	DocumentID string
	SectionID  string
	Title      string
}

// SectionRenamedPayload accompanies EventTypeSectionRenamed
type SectionRenamedPayload struct {
	DocumentID string
	SectionID  string
	Title      string
}

// SectionRemovedPayload accompanies EventTypeSectionRemoved
type SectionRemovedPayload struct {
	DocumentID string
	SectionID  string
}

// ItemAddedPayload accompanies EventTypeItemAdded
type ItemAddedPayload struct {
	DocumentID string
	SectionID  string
	ItemID     string
	Text       string
}

// ItemToggledPayload accompanies EventTypeItemToggled
type ItemToggledPayload struct {
	DocumentID string
	SectionID  string
	ItemID     string
	Done       bool
}

// ItemRemovedPayload accompanies EventTypeItemRemoved
type ItemRemovedPayload struct {
	DocumentID string
	SectionID  string
	ItemID     string
}

// NotesUpdatedPayload accompanies EventTypeNotesUpdated
type NotesUpdatedPayload struct {
	DocumentID string
	SectionID  string
	Notes      string
}
