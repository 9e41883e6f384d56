package planner

//go:generate mockgen -destination=mock/mock_service.go -package=mockplanner -source=service.go

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/daybook/daybook/internal/domain/planner"
	dayerr "github.com/daybook/daybook/internal/errors"
	"github.com/daybook/daybook/internal/events"
	"github.com/daybook/daybook/internal/repositories/documents"
	"github.com/daybook/daybook/internal/uuid"
)

// Repository is an alias for the document repository interface
type Repository = documents.Repository

// Service defines the planner service interface. Mutations operate on
// open in-memory documents and announce themselves on the event bus;
// persistence is a bus collaborator's job, not the service's.
type Service interface {
	// CreateDocument creates and opens a new planner document
	CreateDocument(ctx context.Context, input *CreateDocumentInput) (*planner.Document, error)

	// OpenDocument loads a stored document into the working set
	OpenDocument(ctx context.Context, documentID string) (*planner.Document, error)

	// Document returns an open document from the working set
	Document(documentID string) (*planner.Document, bool)

	// CloseDocument drops a document from the working set without saving
	CloseDocument(documentID string)

	// ListDocuments lists all stored documents
	ListDocuments(ctx context.Context) ([]*planner.Document, error)

	// AddSection appends a section to an open document
	AddSection(ctx context.Context, documentID string, input *AddSectionInput) (*planner.Section, error)

	// RenameSection changes a section's title
	RenameSection(ctx context.Context, documentID, sectionID, title string) error

	// RemoveSection deletes a section and everything in it
	RemoveSection(ctx context.Context, documentID, sectionID string) error

	// AddItem appends a checklist item to a section
	AddItem(ctx context.Context, documentID, sectionID, text string) (*planner.ChecklistItem, error)

	// ToggleItem flips a checklist item's done state and returns the new state
	ToggleItem(ctx context.Context, documentID, sectionID, itemID string) (bool, error)

	// RemoveItem deletes a checklist item
	RemoveItem(ctx context.Context, documentID, sectionID, itemID string) error

	// UpdateNotes replaces a section's free-text notes
	UpdateNotes(ctx context.Context, documentID, sectionID, notes string) error
}

// CreateDocumentInput contains data for creating a document
type CreateDocumentInput struct {
	Title string
}

// AddSectionInput contains data for adding a section
type AddSectionInput struct {
	Title string
}

// ServiceConfig holds dependencies for the planner service
type ServiceConfig struct {
	Repository    Repository
	Bus           *events.Bus
	UUIDGenerator uuid.Generator
}

type service struct {
	repository    Repository
	bus           *events.Bus
	uuidGenerator uuid.Generator

	mu   sync.RWMutex
	open map[string]*planner.Document
}

// NewService creates a new planner service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Repository == nil {
		panic("repository is required")
	}
	if cfg.Bus == nil {
		panic("event bus is required")
	}

	gen := cfg.UUIDGenerator
	if gen == nil {
		gen = uuid.NewGoogleUUIDGenerator()
	}

	return &service{
		repository:    cfg.Repository,
		bus:           cfg.Bus,
		uuidGenerator: gen,
		open:          make(map[string]*planner.Document),
	}
}

func (s *service) CreateDocument(ctx context.Context, input *CreateDocumentInput) (*planner.Document, error) {
	if input == nil {
		return nil, dayerr.InvalidArgument("input cannot be nil")
	}
	if err := planner.ValidateTitle(input.Title); err != nil {
		s.reportValidation(err, "create document")
		return nil, err
	}

	now := time.Now()
	doc := &planner.Document{
		ID:        s.uuidGenerator.New(),
		Title:     strings.TrimSpace(input.Title),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repository.Create(ctx, doc); err != nil {
		return nil, dayerr.Wrap(err, "failed to create document")
	}

	s.mu.Lock()
	s.open[doc.ID] = doc
	s.mu.Unlock()

	s.bus.Publish(events.EventTypeDocumentCreated, &events.DocumentCreatedPayload{
		DocumentID: doc.ID,
		Title:      doc.Title,
	})

	return doc, nil
}

func (s *service) OpenDocument(ctx context.Context, documentID string) (*planner.Document, error) {
	s.mu.RLock()
	if doc, ok := s.open[documentID]; ok {
		s.mu.RUnlock()
		return doc, nil
	}
	s.mu.RUnlock()

	doc, err := s.repository.Get(ctx, documentID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.open[doc.ID] = doc
	s.mu.Unlock()

	s.bus.Publish(events.EventTypeDocumentLoaded, &events.DocumentLoadedPayload{
		DocumentID: doc.ID,
	})

	return doc, nil
}

func (s *service) Document(documentID string) (*planner.Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.open[documentID]
	return doc, ok
}

func (s *service) CloseDocument(documentID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.open, documentID)
}

func (s *service) ListDocuments(ctx context.Context) ([]*planner.Document, error) {
	return s.repository.List(ctx)
}

func (s *service) AddSection(ctx context.Context, documentID string, input *AddSectionInput) (*planner.Section, error) {
	if input == nil {
		return nil, dayerr.InvalidArgument("input cannot be nil")
	}
	if err := planner.ValidateTitle(input.Title); err != nil {
		s.reportValidation(err, "add section")
		return nil, err
	}

	doc, err := s.openDoc(documentID)
	if err != nil {
		return nil, err
	}

	section := &planner.Section{
		ID:    s.uuidGenerator.New(),
		Title: strings.TrimSpace(input.Title),
	}
	doc.Sections = append(doc.Sections, section)
	doc.UpdatedAt = time.Now()

	s.bus.Publish(events.EventTypeSectionAdded, &events.SectionAddedPayload{
		DocumentID: doc.ID,
		SectionID:  section.ID,
		Title:      section.Title,
	})

	return section, nil
}

func (s *service) RenameSection(ctx context.Context, documentID, sectionID, title string) error {
	if err := planner.ValidateTitle(title); err != nil {
		s.reportValidation(err, "rename section")
		return err
	}

	doc, section, err := s.openSection(documentID, sectionID)
	if err != nil {
		return err
	}

	section.Title = strings.TrimSpace(title)
	doc.UpdatedAt = time.Now()

	s.bus.Publish(events.EventTypeSectionRenamed, &events.SectionRenamedPayload{
		DocumentID: doc.ID,
		SectionID:  section.ID,
		Title:      section.Title,
	})

	return nil
}

func (s *service) RemoveSection(ctx context.Context, documentID, sectionID string) error {
	doc, err := s.openDoc(documentID)
	if err != nil {
		return err
	}

	if !doc.RemoveSection(sectionID) {
		return dayerr.NotFoundf("section with ID '%s' not found", sectionID).
			WithMeta("document_id", documentID).
			WithMeta("section_id", sectionID)
	}
	doc.UpdatedAt = time.Now()

	s.bus.Publish(events.EventTypeSectionRemoved, &events.SectionRemovedPayload{
		DocumentID: doc.ID,
		SectionID:  sectionID,
	})

	return nil
}

func (s *service) AddItem(ctx context.Context, documentID, sectionID, text string) (*planner.ChecklistItem, error) {
	if err := planner.ValidateItemText(text); err != nil {
		s.reportValidation(err, "add item")
		return nil, err
	}

	doc, section, err := s.openSection(documentID, sectionID)
	if err != nil {
		return nil, err
	}

	item := &planner.ChecklistItem{
		ID:   s.uuidGenerator.New(),
		Text: strings.TrimSpace(text),
	}
	section.Items = append(section.Items, item)
	doc.UpdatedAt = time.Now()

	s.bus.Publish(events.EventTypeItemAdded, &events.ItemAddedPayload{
		DocumentID: doc.ID,
		SectionID:  section.ID,
		ItemID:     item.ID,
		Text:       item.Text,
	})

	return item, nil
}

func (s *service) ToggleItem(ctx context.Context, documentID, sectionID, itemID string) (bool, error) {
	doc, section, err := s.openSection(documentID, sectionID)
	if err != nil {
		return false, err
	}

	item := section.Item(itemID)
	if item == nil {
		return false, dayerr.NotFoundf("item with ID '%s' not found", itemID).
			WithMeta("document_id", documentID).
			WithMeta("section_id", sectionID).
			WithMeta("item_id", itemID)
	}

	item.Done = !item.Done
	doc.UpdatedAt = time.Now()

	s.bus.Publish(events.EventTypeItemToggled, &events.ItemToggledPayload{
		DocumentID: doc.ID,
		SectionID:  section.ID,
		ItemID:     item.ID,
		Done:       item.Done,
	})

	return item.Done, nil
}

func (s *service) RemoveItem(ctx context.Context, documentID, sectionID, itemID string) error {
	doc, section, err := s.openSection(documentID, sectionID)
	if err != nil {
		return err
	}

	if !section.RemoveItem(itemID) {
		return dayerr.NotFoundf("item with ID '%s' not found", itemID).
			WithMeta("document_id", documentID).
			WithMeta("section_id", sectionID).
			WithMeta("item_id", itemID)
	}
	doc.UpdatedAt = time.Now()

	s.bus.Publish(events.EventTypeItemRemoved, &events.ItemRemovedPayload{
		DocumentID: doc.ID,
		SectionID:  section.ID,
		ItemID:     itemID,
	})

	return nil
}

func (s *service) UpdateNotes(ctx context.Context, documentID, sectionID, notes string) error {
	if err := planner.ValidateNotes(notes); err != nil {
		s.reportValidation(err, "update notes")
		return err
	}

	doc, section, err := s.openSection(documentID, sectionID)
	if err != nil {
		return err
	}

	section.Notes = notes
	doc.UpdatedAt = time.Now()

	s.bus.Publish(events.EventTypeNotesUpdated, &events.NotesUpdatedPayload{
		DocumentID: doc.ID,
		SectionID:  section.ID,
		Notes:      notes,
	})

	return nil
}

// openDoc fetches a document from the working set, requiring it to have
// been created or opened first
func (s *service) openDoc(documentID string) (*planner.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.open[documentID]
	if !ok {
		return nil, dayerr.NotFoundf("document with ID '%s' is not open", documentID).
			WithMeta("document_id", documentID)
	}
	return doc, nil
}

func (s *service) openSection(documentID, sectionID string) (*planner.Document, *planner.Section, error) {
	doc, err := s.openDoc(documentID)
	if err != nil {
		return nil, nil, err
	}

	section := doc.Section(sectionID)
	if section == nil {
		return nil, nil, dayerr.NotFoundf("section with ID '%s' not found", sectionID).
			WithMeta("document_id", documentID).
			WithMeta("section_id", sectionID)
	}
	return doc, section, nil
}

// reportValidation surfaces a validation failure on the error channel so
// the diagnostics collaborator sees it alongside listener failures
func (s *service) reportValidation(err error, operation string) {
	s.bus.Publish(events.EventTypeError, &events.ErrorPayload{
		Err:     err,
		Context: "validation failed during " + operation,
	})
}
