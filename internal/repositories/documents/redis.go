package documents

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/daybook/daybook/internal/domain/planner"
	dayerr "github.com/daybook/daybook/internal/errors"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

const (
	// Key patterns
	documentKeyPrefix = "document:"
	documentIndexKey  = "documents:all"

	// listFetchConcurrency bounds the parallel document fetches in List
	listFetchConcurrency = 8
)

// itemData is the serialized form of a checklist item
type itemData struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Done bool   `json:"done"`
}

// sectionData is the serialized form of a section
type sectionData struct {
	ID    string     `json:"id"`
	Title string     `json:"title"`
	Items []itemData `json:"items"`
	Notes string     `json:"notes,omitempty"`
}

// documentData is the serialized form of a document in Redis
type documentData struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Sections  []sectionData `json:"sections"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client redis.UniversalClient
}

// redisRepository implements Repository using Redis
type redisRepository struct {
	client redis.UniversalClient
}

// NewRedisRepository creates a new Redis-backed document repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg.Client == nil {
		panic("redis client is required")
	}

	return &redisRepository{
		client: cfg.Client,
	}
}

// Create stores a new document
func (r *redisRepository) Create(ctx context.Context, doc *planner.Document) error {
	if doc == nil {
		return dayerr.InvalidArgument("document cannot be nil")
	}
	if doc.ID == "" {
		return dayerr.InvalidArgument("document ID is required")
	}

	key := documentKeyPrefix + doc.ID

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return dayerr.Wrapf(err, "failed to check document '%s'", doc.ID)
	}
	if exists > 0 {
		return dayerr.AlreadyExistsf("document with ID '%s' already exists", doc.ID).
			WithMeta("document_id", doc.ID)
	}

	data, err := json.Marshal(toData(doc))
	if err != nil {
		return dayerr.Wrapf(err, "failed to serialize document '%s'", doc.ID)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, key, data, 0)
	pipe.SAdd(ctx, documentIndexKey, doc.ID)

	if _, err := pipe.Exec(ctx); err != nil {
		return dayerr.Wrapf(err, "failed to create document '%s'", doc.ID)
	}

	return nil
}

// Get retrieves a document by ID
func (r *redisRepository) Get(ctx context.Context, id string) (*planner.Document, error) {
	if id == "" {
		return nil, dayerr.InvalidArgument("document ID is required")
	}

	data, err := r.client.Get(ctx, documentKeyPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, dayerr.NotFoundf("document with ID '%s' not found", id).
			WithMeta("document_id", id)
	}
	if err != nil {
		return nil, dayerr.Wrapf(err, "failed to get document '%s'", id)
	}

	var stored documentData
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, dayerr.Wrapf(err, "failed to deserialize document '%s'", id)
	}

	return fromData(&stored), nil
}

// Update overwrites an existing document
func (r *redisRepository) Update(ctx context.Context, doc *planner.Document) error {
	if doc == nil {
		return dayerr.InvalidArgument("document cannot be nil")
	}
	if doc.ID == "" {
		return dayerr.InvalidArgument("document ID is required")
	}

	key := documentKeyPrefix + doc.ID

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return dayerr.Wrapf(err, "failed to check document '%s'", doc.ID)
	}
	if exists == 0 {
		return dayerr.NotFoundf("document with ID '%s' not found", doc.ID).
			WithMeta("document_id", doc.ID)
	}

	data, err := json.Marshal(toData(doc))
	if err != nil {
		return dayerr.Wrapf(err, "failed to serialize document '%s'", doc.ID)
	}

	if err := r.client.Set(ctx, key, data, 0).Err(); err != nil {
		return dayerr.Wrapf(err, "failed to update document '%s'", doc.ID)
	}

	return nil
}

// Delete removes a document and its index entry
func (r *redisRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return dayerr.InvalidArgument("document ID is required")
	}

	pipe := r.client.TxPipeline()
	delCmd := pipe.Del(ctx, documentKeyPrefix+id)
	pipe.SRem(ctx, documentIndexKey, id)

	if _, err := pipe.Exec(ctx); err != nil {
		return dayerr.Wrapf(err, "failed to delete document '%s'", id)
	}

	if delCmd.Val() == 0 {
		return dayerr.NotFoundf("document with ID '%s' not found", id).
			WithMeta("document_id", id)
	}

	return nil
}

// List retrieves all stored documents. Fetches run concurrently; a
// document removed between the index read and its fetch is skipped.
func (r *redisRepository) List(ctx context.Context) ([]*planner.Document, error) {
	ids, err := r.client.SMembers(ctx, documentIndexKey).Result()
	if err != nil {
		return nil, dayerr.Wrap(err, "failed to list documents")
	}

	var (
		mu   sync.Mutex
		docs []*planner.Document
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(listFetchConcurrency)

	for _, id := range ids {
		id := id
		g.Go(func() error {
			doc, err := r.Get(gctx, id)
			if dayerr.IsNotFound(err) {
				return nil
			}
			if err != nil {
				return err
			}

			mu.Lock()
			docs = append(docs, doc)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return docs, nil
}

// toData converts a domain document to its serialized form
func toData(doc *planner.Document) *documentData {
	sections := make([]sectionData, 0, len(doc.Sections))
	for _, s := range doc.Sections {
		items := make([]itemData, 0, len(s.Items))
		for _, it := range s.Items {
			items = append(items, itemData{
				ID:   it.ID,
				Text: it.Text,
				Done: it.Done,
			})
		}
		sections = append(sections, sectionData{
			ID:    s.ID,
			Title: s.Title,
			Items: items,
			Notes: s.Notes,
		})
	}

	return &documentData{
		ID:        doc.ID,
		Title:     doc.Title,
		Sections:  sections,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}

// fromData converts a serialized document back to its domain form
func fromData(data *documentData) *planner.Document {
	sections := make([]*planner.Section, 0, len(data.Sections))
	for _, s := range data.Sections {
		items := make([]*planner.ChecklistItem, 0, len(s.Items))
		for _, it := range s.Items {
			items = append(items, &planner.ChecklistItem{
				ID:   it.ID,
				Text: it.Text,
				Done: it.Done,
			})
		}
		sections = append(sections, &planner.Section{
			ID:    s.ID,
			Title: s.Title,
			Items: items,
			Notes: s.Notes,
		})
	}

	return &planner.Document{
		ID:        data.ID,
		Title:     data.Title,
		Sections:  sections,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
