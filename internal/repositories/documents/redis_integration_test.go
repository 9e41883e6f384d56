package documents_test

import (
	"context"
	"testing"
	"time"

	"github.com/daybook/daybook/internal/domain/planner"
	dayerr "github.com/daybook/daybook/internal/errors"
	"github.com/daybook/daybook/internal/repositories/documents"
	"github.com/daybook/daybook/internal/testutils"
	"github.com/stretchr/testify/require"
)

// TestRedisRepositoryIntegration exercises the Redis repository against a
// real instance, skipping when none is reachable
func TestRedisRepositoryIntegration(t *testing.T) {
	client := testutils.CreateTestRedisClient(t, nil)
	repo := documents.NewRedis(client)
	ctx := context.Background()

	doc := &planner.Document{
		ID:    "integration-doc",
		Title: "Integration",
		Sections: []*planner.Section{
			{
				ID:    "sec-1",
				Title: "Checks",
				Items: []*planner.ChecklistItem{
					{ID: "item-1", Text: "round trip"},
				},
			},
		},
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
		UpdatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}

	require.NoError(t, repo.Create(ctx, doc))

	got, err := repo.Get(ctx, doc.ID)
	require.NoError(t, err)
	require.Equal(t, doc.Title, got.Title)
	require.Len(t, got.Sections, 1)
	require.Equal(t, "round trip", got.Sections[0].Items[0].Text)

	got.Sections[0].Items[0].Done = true
	require.NoError(t, repo.Update(ctx, got))

	updated, err := repo.Get(ctx, doc.ID)
	require.NoError(t, err)
	require.True(t, updated.Sections[0].Items[0].Done)

	docs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 1)

	require.NoError(t, repo.Delete(ctx, doc.ID))

	_, err = repo.Get(ctx, doc.ID)
	require.True(t, dayerr.IsNotFound(err))
}
