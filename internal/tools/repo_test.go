package tools

import (
	"context"
	"database/sql"
	"testing"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"futureagent/pkg/database"
	"futureagent/pkg/models"
)

func newSQLiteRepo(t *testing.T) *Repo {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.MigrateFrom(db, "../../docs/schema.sql"))
	return NewRepo(db, sq.StatementBuilder.PlaceholderFormat(sq.Question))
}

func seedTool(t *testing.T, repo *Repo, tool models.Tool) {
	t.Helper()
	require.NoError(t, repo.Upsert(context.Background(), tool))
}

func TestUpsertRoundTrip(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()
	r := 4.7

	seedTool(t, repo, models.Tool{
		ID: "t1", Name: "Jasper AI", Slug: "jasper-ai", Category: "Writing",
		Rating: &r, Tags: []string{"writing", "marketing"}, Published: true,
	})

	got, err := repo.GetBySlug(ctx, "jasper-ai")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Jasper AI", got.Name)
	require.NotNil(t, got.Rating)
	assert.Equal(t, 4.7, *got.Rating)
	assert.Equal(t, []string{"writing", "marketing"}, got.Tags)

	// same id updates in place
	seedTool(t, repo, models.Tool{
		ID: "t1", Name: "Jasper", Slug: "jasper-ai", Category: "Writing", Published: true,
	})
	got, err = repo.GetBySlug(ctx, "jasper-ai")
	require.NoError(t, err)
	assert.Equal(t, "Jasper", got.Name)
	assert.Nil(t, got.Rating, "update clears the rating")
	assert.Equal(t, []string{}, got.Tags)
}

func TestGetBySlugMissing(t *testing.T) {
	repo := newSQLiteRepo(t)

	got, err := repo.GetBySlug(context.Background(), "ghost")
	require.NoError(t, err, "absence is not an error")
	assert.Nil(t, got)
}

func TestListPublishedVisibility(t *testing.T) {
	repo := newSQLiteRepo(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	soon := now.Add(6 * time.Hour)
	farOut := now.Add(72 * time.Hour)

	seedTool(t, repo, models.Tool{ID: "live", Name: "Live", Slug: "live", Published: true})
	seedTool(t, repo, models.Tool{ID: "soon", Name: "Soon", Slug: "soon", Published: true, ScheduledAt: &soon})
	seedTool(t, repo, models.Tool{ID: "far", Name: "Far", Slug: "far", Published: true, ScheduledAt: &farOut})
	seedTool(t, repo, models.Tool{ID: "draft", Name: "Draft", Slug: "draft", Published: false})

	got, err := repo.ListPublished(context.Background(), now.Add(VisibilityWindow))
	require.NoError(t, err)

	slugs := make([]string, 0, len(got))
	for _, tool := range got {
		slugs = append(slugs, tool.Slug)
	}
	assert.ElementsMatch(t, []string{"live", "soon"}, slugs)
}

func TestListFeaturedLimitAndOrder(t *testing.T) {
	repo := newSQLiteRepo(t)
	ratings := []float64{4.2, 4.9, 4.5, 4.7}
	for i, r := range ratings {
		r := r
		seedTool(t, repo, models.Tool{
			ID:   string(rune('a' + i)),
			Name: "Tool " + string(rune('A'+i)), Slug: "tool-" + string(rune('a'+i)),
			Rating: &r, Published: true, Featured: true,
		})
	}

	got, err := repo.ListFeatured(context.Background(), 3)
	require.NoError(t, err)

	require.Len(t, got, 3)
	assert.Equal(t, 4.9, *got[0].Rating)
	assert.Equal(t, 4.7, *got[1].Rating)
	assert.Equal(t, 4.5, *got[2].Rating)
}

func TestCandidatesMatchSlugOrName(t *testing.T) {
	repo := newSQLiteRepo(t)
	seedTool(t, repo, models.Tool{ID: "t1", Name: "Jasper AI", Slug: "jasper-ai"})
	seedTool(t, repo, models.Tool{ID: "t2", Name: "Copy.ai", Slug: "copy-ai"})
	seedTool(t, repo, models.Tool{ID: "t3", Name: "Unrelated", Slug: "unrelated"})

	got, err := repo.Candidates(context.Background(),
		[]string{"jasper-ai", "copy.ai"}, []string{"jasper ai", "Copy.ai"})
	require.NoError(t, err)

	assert.Len(t, got, 2)
}

func TestReplaceChildren(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()
	seedTool(t, repo, models.Tool{ID: "t1", Name: "Jasper AI", Slug: "jasper-ai"})

	require.NoError(t, repo.ReplaceChildren(ctx, "t1", ChildCollections{
		Pros:         []string{"Fast", "Brand voice"},
		Cons:         []string{"Pricey"},
		PricingPlans: []models.PricingPlan{{Price: "49", Period: "mo"}, {Label: "Business"}},
		Integrations: []string{"Zapier"},
		Features:     []models.ToolFeature{{Title: "Templates", Description: "90+"}},
	}))

	pros, err := repo.Pros(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Fast", "Brand voice"}, pros, "slice order survives as sort order")

	plan, err := repo.TopPricingPlan(ctx, "t1")
	require.NoError(t, err)
	require.NotNil(t, plan)
	assert.Equal(t, "49", plan.Price)

	// a second save fully replaces, never appends
	require.NoError(t, repo.ReplaceChildren(ctx, "t1", ChildCollections{Pros: []string{"Only one"}}))

	pros, err = repo.Pros(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Only one"}, pros)

	plan, err = repo.TopPricingPlan(ctx, "t1")
	require.NoError(t, err)
	assert.Nil(t, plan, "cleared table reads as no plan at all")
}

func TestDelete(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()
	seedTool(t, repo, models.Tool{ID: "t1", Name: "Jasper AI", Slug: "jasper-ai"})

	ok, err := repo.Delete(ctx, "t1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Delete(ctx, "t1")
	require.NoError(t, err)
	assert.False(t, ok, "second delete finds nothing")
}
