package posts

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
)

func newSQLiteRepo(t *testing.T) (*Repo, *sql.DB) {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.MigrateFrom(db, "../../docs/schema.sql"))
	return NewRepo(db, sq.StatementBuilder.PlaceholderFormat(sq.Question)), db
}

func insertPost(t *testing.T, db *sql.DB, id, title, slug string, published bool, scheduledAt any, createdAt time.Time) {
	t.Helper()
	_, err := db.Exec(
		"INSERT INTO posts (id, title, slug, published, scheduled_at, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		id, title, slug, published, scheduledAt, createdAt)
	require.NoError(t, err)
}

func TestListLatest(t *testing.T) {
	repo, db := newSQLiteRepo(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	insertPost(t, db, "p1", "Oldest", "oldest", true, nil, now.Add(-72*time.Hour))
	insertPost(t, db, "p2", "Newer", "newer", true, nil, now.Add(-48*time.Hour))
	insertPost(t, db, "p3", "Newest", "newest", true, nil, now.Add(-time.Hour))
	insertPost(t, db, "p4", "Draft", "draft", false, nil, now)
	insertPost(t, db, "p5", "Way Out", "way-out", true, now.Add(72*time.Hour), now)

	got, err := repo.ListLatest(context.Background(), now.Add(24*time.Hour), 3)
	require.NoError(t, err)

	require.Len(t, got, 3)
	assert.Equal(t, "Newest", got[0].Title)
	assert.Equal(t, "Newer", got[1].Title)
	assert.Equal(t, "Oldest", got[2].Title)
	assert.Equal(t, []string{}, got[0].Tags, "tags decode to an empty list, never null")
}

func TestListLatestLimit(t *testing.T) {
	repo, db := newSQLiteRepo(t)
	now := time.Now().UTC()

	for i := 0; i < 5; i++ {
		id := string(rune('a' + i))
		insertPost(t, db, id, "Post "+id, "post-"+id, true, nil, now.Add(time.Duration(-i)*time.Hour))
	}

	got, err := repo.ListLatest(context.Background(), now, 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestListComparisonsFiltersBySlug(t *testing.T) {
	repo, db := newSQLiteRepo(t)
	now := time.Now().UTC()

	insertPost(t, db, "p1", "Jasper vs Copy.ai", "jasper-ai-vs-copy-ai", true, nil, now)
	insertPost(t, db, "p2", "Top 10 AI Tools", "top-10-ai-tools", true, nil, now)
	insertPost(t, db, "p3", "Draft Matchup", "a-vs-b-draft", false, nil, now)

	got, err := repo.ListComparisons(context.Background())
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "jasper-ai-vs-copy-ai", got[0].Slug)
	assert.Equal(t, "Jasper vs Copy.ai", got[0].Title)
}
