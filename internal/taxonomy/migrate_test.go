package taxonomy

import (
	"context"
	"database/sql"
	"io"
	"log"
	"testing"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `
CREATE TABLE categories (
	slug TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	tagline TEXT,
	description TEXT,
	image_url TEXT
);
CREATE TABLE tools (
	id TEXT PRIMARY KEY,
	category TEXT NOT NULL DEFAULT '',
	tags TEXT NOT NULL DEFAULT '[]'
);
CREATE TABLE posts (
	id TEXT PRIMARY KEY,
	category TEXT NOT NULL DEFAULT '',
	tags TEXT NOT NULL DEFAULT '[]'
);
`

func newTestMigrator(t *testing.T) (*Migrator, *sql.DB) {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(testSchema)
	require.NoError(t, err)

	sb := sq.StatementBuilder.PlaceholderFormat(sq.Question)
	return NewMigrator(db, sb, NewMapping(), log.New(io.Discard, "", 0)), db
}

func insertTool(t *testing.T, db *sql.DB, id, category, tags string) {
	t.Helper()
	_, err := db.Exec("INSERT INTO tools (id, category, tags) VALUES (?, ?, ?)", id, category, tags)
	require.NoError(t, err)
}

func toolRow(t *testing.T, db *sql.DB, id string) (category, tags string) {
	t.Helper()
	err := db.QueryRow("SELECT category, tags FROM tools WHERE id = ?", id).Scan(&category, &tags)
	require.NoError(t, err)
	return category, tags
}

func TestInstallPillars(t *testing.T) {
	m, db := newTestMigrator(t)

	require.NoError(t, m.InstallPillars(context.Background()))

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM categories").Scan(&count))
	assert.Equal(t, len(Pillars), count)

	// replace, not append
	require.NoError(t, m.InstallPillars(context.Background()))
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM categories").Scan(&count))
	assert.Equal(t, len(Pillars), count)
}

func TestMigrateToolsPreservesLegacyAsTag(t *testing.T) {
	m, db := newTestMigrator(t)
	insertTool(t, db, "t1", "Copywriting", `[]`)

	n, err := m.MigrateTools(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	category, tags := toolRow(t, db, "t1")
	assert.Equal(t, "AI Writing", category)
	assert.Equal(t, `["Copywriting"]`, tags)
}

func TestMigrateToolsUnmappedGetsDefaultPillar(t *testing.T) {
	m, db := newTestMigrator(t)
	insertTool(t, db, "t1", "Blockchain", `["web3"]`)

	_, err := m.MigrateTools(context.Background())
	require.NoError(t, err)

	category, tags := toolRow(t, db, "t1")
	assert.Equal(t, "AI Tools", category)
	assert.Equal(t, `["web3","Blockchain"]`, tags, "legacy label appended after existing tags")
}

func TestMigrateToolsIdempotent(t *testing.T) {
	m, db := newTestMigrator(t)
	insertTool(t, db, "t1", "SEO", `[]`)

	_, err := m.MigrateTools(context.Background())
	require.NoError(t, err)
	_, err = m.MigrateTools(context.Background())
	require.NoError(t, err)

	category, tags := toolRow(t, db, "t1")
	assert.Equal(t, "SEO & Content Optimization", category)
	assert.Equal(t, `["SEO"]`, tags, "legacy tag appears exactly once across runs")
}

func TestMigrateToolsSkipsDuplicateTag(t *testing.T) {
	m, db := newTestMigrator(t)
	insertTool(t, db, "t1", "Writing", `["Writing"]`)

	_, err := m.MigrateTools(context.Background())
	require.NoError(t, err)

	_, tags := toolRow(t, db, "t1")
	assert.Equal(t, `["Writing"]`, tags)
}

func TestMigrateToolsEmptyLegacyNotTagged(t *testing.T) {
	m, db := newTestMigrator(t)
	insertTool(t, db, "t1", "", `[]`)

	_, err := m.MigrateTools(context.Background())
	require.NoError(t, err)

	category, tags := toolRow(t, db, "t1")
	assert.Equal(t, "AI Tools", category)
	assert.Equal(t, `[]`, tags)
}

func TestMigrateToolsMalformedTagsRecovered(t *testing.T) {
	m, db := newTestMigrator(t)
	insertTool(t, db, "t1", "Design", `not json`)

	_, err := m.MigrateTools(context.Background())
	require.NoError(t, err)

	category, tags := toolRow(t, db, "t1")
	assert.Equal(t, "Image & Design", category)
	assert.Equal(t, `["Design"]`, tags)
}

func TestMigratePosts(t *testing.T) {
	m, db := newTestMigrator(t)
	_, err := db.Exec("INSERT INTO posts (id, category, tags) VALUES (?, ?, ?)", "p1", "Video Editing", `[]`)
	require.NoError(t, err)

	n, err := m.MigratePosts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	var category, tags string
	require.NoError(t, db.QueryRow("SELECT category, tags FROM posts WHERE id = ?", "p1").Scan(&category, &tags))
	assert.Equal(t, "Video & Audio", category)
	assert.Equal(t, `["Video Editing"]`, tags)
}
