package documents

import (
	"context"
	"sync"

	"github.com/daybook/daybook/internal/domain/planner"
	dayerr "github.com/daybook/daybook/internal/errors"
)

// InMemoryRepository is an in-memory implementation of the document
// repository, used in tests and when no Redis is configured
type InMemoryRepository struct {
	mu   sync.RWMutex
	docs map[string]*planner.Document
}

// NewInMemoryRepository creates a new in-memory document repository
func NewInMemoryRepository() Repository {
	return &InMemoryRepository{
		docs: make(map[string]*planner.Document),
	}
}

// Create stores a new document
func (r *InMemoryRepository) Create(ctx context.Context, doc *planner.Document) error {
	if doc == nil {
		return dayerr.InvalidArgument("document cannot be nil")
	}
	if doc.ID == "" {
		return dayerr.InvalidArgument("document ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.docs[doc.ID]; exists {
		return dayerr.AlreadyExistsf("document with ID '%s' already exists", doc.ID).
			WithMeta("document_id", doc.ID)
	}

	r.docs[doc.ID] = doc

	return nil
}

// Get retrieves a document by ID
func (r *InMemoryRepository) Get(ctx context.Context, id string) (*planner.Document, error) {
	if id == "" {
		return nil, dayerr.InvalidArgument("document ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, exists := r.docs[id]
	if !exists {
		return nil, dayerr.NotFoundf("document with ID '%s' not found", id).
			WithMeta("document_id", id)
	}

	return doc, nil
}

// Update overwrites an existing document
func (r *InMemoryRepository) Update(ctx context.Context, doc *planner.Document) error {
	if doc == nil {
		return dayerr.InvalidArgument("document cannot be nil")
	}
	if doc.ID == "" {
		return dayerr.InvalidArgument("document ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.docs[doc.ID]; !exists {
		return dayerr.NotFoundf("document with ID '%s' not found", doc.ID).
			WithMeta("document_id", doc.ID)
	}

	r.docs[doc.ID] = doc

	return nil
}

// Delete removes a document
func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return dayerr.InvalidArgument("document ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.docs[id]; !exists {
		return dayerr.NotFoundf("document with ID '%s' not found", id).
			WithMeta("document_id", id)
	}

	delete(r.docs, id)

	return nil
}

// List retrieves all stored documents
func (r *InMemoryRepository) List(ctx context.Context) ([]*planner.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	docs := make([]*planner.Document, 0, len(r.docs))
	for _, doc := range r.docs {
		docs = append(docs, doc)
	}

	return docs, nil
}
