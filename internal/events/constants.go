package events

// Event type constants
const (
	// Document lifecycle events
	EventTypeDocumentCreated EventType = "document_created"
	EventTypeDocumentLoaded  EventType = "document_loaded"
	EventTypeDocumentSaved   EventType = "document_saved"

	// Section mutation events
	EventTypeSectionAdded   EventType = "section_added"
	EventTypeSectionRenamed EventType = "section_renamed"
	EventTypeSectionRemoved EventType = "section_removed"

	// Checklist item mutation events
	EventTypeItemAdded   EventType = "item_added"
	EventTypeItemToggled EventType = "item_toggled"
	EventTypeItemRemoved EventType = "item_removed"

	// Free-text note events
	EventTypeNotesUpdated EventType = "notes_updated"

	// EventTypeError is the reserved error channel. Listener failures and
	// other exceptional conditions are funneled here; domain listeners
	// never subscribe to it for anything else.
	EventTypeError EventType = "error"
)

// Priority levels for listener execution order. Higher runs earlier
// within a single publish call.
const (
	PriorityValidation  = 200 // cross-field checks before anything reacts
	PriorityRendering   = 100 // UI refresh
	PriorityDefault     = 0
	PriorityPersistence = -100 // autosave runs after everything else
)

// DefaultHistoryCapacity is the initial bound on the publish history log
const DefaultHistoryCapacity = 100

// DocumentMutationEventTypes lists every event type that changes document
// state. Persistence collaborators subscribe to all of them.
func DocumentMutationEventTypes() []EventType {
	return []EventType{
		EventTypeDocumentCreated,
		EventTypeSectionAdded,
		EventTypeSectionRenamed,
		EventTypeSectionRemoved,
		EventTypeItemAdded,
		EventTypeItemToggled,
		EventTypeItemRemoved,
		EventTypeNotesUpdated,
	}
}
