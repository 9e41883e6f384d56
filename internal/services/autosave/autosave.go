package autosave

import (
	"context"
	"log"

	"github.com/daybook/daybook/internal/domain/planner"
	dayerr "github.com/daybook/daybook/internal/errors"
	"github.com/daybook/daybook/internal/events"
	"github.com/daybook/daybook/internal/repositories/documents"
)

// DocumentSource is the narrow view of the planner service the saver
// needs: access to open documents by ID
type DocumentSource interface {
	Document(documentID string) (*planner.Document, bool)
}

// Saver persists open documents in response to document-mutation events.
// It subscribes itself at persistence priority so rendering and
// validation listeners observe a mutation before it hits storage.
type Saver struct {
	repository documents.Repository
	bus        *events.Bus
	source     DocumentSource

	unsubscribes []func()
}

// Config holds dependencies for the autosave collaborator
type Config struct {
	Repository documents.Repository
	Bus        *events.Bus
	Source     DocumentSource
}

// New creates an autosave collaborator and subscribes it to every
// document-mutation event type
func New(cfg *Config) *Saver {
	if cfg.Repository == nil {
		panic("repository is required")
	}
	if cfg.Bus == nil {
		panic("event bus is required")
	}
	if cfg.Source == nil {
		panic("document source is required")
	}

	s := &Saver{
		repository: cfg.Repository,
		bus:        cfg.Bus,
		source:     cfg.Source,
	}

	for _, t := range events.DocumentMutationEventTypes() {
		unsub := cfg.Bus.Subscribe(t, s.handleMutation, events.WithPriority(events.PriorityPersistence))
		s.unsubscribes = append(s.unsubscribes, unsub)
	}

	return s
}

// Close detaches the saver from the bus
func (s *Saver) Close() {
	for _, unsub := range s.unsubscribes {
		unsub()
	}
	s.unsubscribes = nil
}

// handleMutation persists the mutated document. A failure is returned to
// the dispatcher, which reports it on the error channel.
func (s *Saver) handleMutation(evt events.Event) error {
	documentID := mutationDocumentID(evt.Payload)
	if documentID == "" {
		return dayerr.Internalf("mutation event %q carried no document ID", evt.Type)
	}

	doc, ok := s.source.Document(documentID)
	if !ok {
		return dayerr.NotFoundf("document with ID '%s' is not open", documentID).
			WithMeta("document_id", documentID)
	}

	if err := s.repository.Update(context.Background(), doc); err != nil {
		return dayerr.Wrapf(err, "autosave failed for document '%s'", documentID)
	}

	log.Printf("Autosave: persisted document %s after %s", documentID, evt.Type)
	s.bus.Publish(events.EventTypeDocumentSaved, &events.DocumentSavedPayload{
		DocumentID: documentID,
	})

	return nil
}

// mutationDocumentID extracts the document ID from any mutation payload
func mutationDocumentID(payload any) string {
	switch p := payload.(type) {
	case *events.DocumentCreatedPayload:
		return p.DocumentID
	case *events.SectionAddedPayload:
		return p.DocumentID
	case *events.SectionRenamedPayload:
		return p.DocumentID
	case *events.SectionRemovedPayload:
		return p.DocumentID
	case *events.ItemAddedPayload:
		return p.DocumentID
	case *events.ItemToggledPayload:
		return p.DocumentID
	case *events.ItemRemovedPayload:
		return p.DocumentID
	case *events.NotesUpdatedPayload:
		return p.DocumentID
	default:
		return ""
	}
}
