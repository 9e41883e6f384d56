package documents

//go:generate mockgen -destination=../../mocks/documents/mock_repository.go -package=mockdocuments -source=repository.go

import (
	"context"

	"github.com/daybook/daybook/internal/domain/planner"
)

// Repository defines the interface for planner document storage
type Repository interface {
	// Create stores a new document
	Create(ctx context.Context, doc *planner.Document) error

	// Get retrieves a document by ID
	Get(ctx context.Context, id string) (*planner.Document, error)

	// Update overwrites an existing document
	Update(ctx context.Context, doc *planner.Document) error

	// Delete removes a document
	Delete(ctx context.Context, id string) error

	// List retrieves all stored documents
	List(ctx context.Context) ([]*planner.Document, error)
}
