package taxonomy

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	sq "github.com/Masterminds/squirrel"

	"futureagent/internal/categories"
)

// Migrator reclassifies legacy category strings into the pillar taxonomy.
// It runs row by row with no surrounding transaction; a mid-run failure
// leaves a partially migrated table, and re-running is safe because the
// tag-preservation step is idempotent.
type Migrator struct {
	DB      *sql.DB
	SB      sq.StatementBuilderType
	Mapping *Mapping
	Logger  *log.Logger
}

func NewMigrator(db *sql.DB, sb sq.StatementBuilderType, mapping *Mapping, logger *log.Logger) *Migrator {
	if logger == nil {
		logger = log.Default()
	}
	return &Migrator{DB: db, SB: sb, Mapping: mapping, Logger: logger}
}

// InstallPillars replaces the category table contents with the pillar set.
func (m *Migrator) InstallPillars(ctx context.Context) error {
	repo := categories.NewRepo(m.DB, m.SB)
	if err := repo.Replace(ctx, Pillars); err != nil {
		return fmt.Errorf("install pillars: %w", err)
	}
	m.Logger.Printf("installed %d pillars", len(Pillars))
	return nil
}

func (m *Migrator) MigrateTools(ctx context.Context) (int, error) {
	return m.migrateTable(ctx, "tools")
}

func (m *Migrator) MigratePosts(ctx context.Context) (int, error) {
	return m.migrateTable(ctx, "posts")
}

func (m *Migrator) migrateTable(ctx context.Context, table string) (int, error) {
	query, args, err := m.SB.Select("id", "category", "tags").From(table).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build scan %s: %w", table, err)
	}

	rows, err := m.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("scan %s: %w", table, err)
	}

	type pending struct {
		id       string
		category string
		tags     string
	}
	var updates []pending

	for rows.Next() {
		var id, legacy, tagsJSON string
		if err := rows.Scan(&id, &legacy, &tagsJSON); err != nil {
			_ = rows.Close()
			return 0, fmt.Errorf("scan %s row: %w", table, err)
		}

		pillar := m.Mapping.Resolve(legacy)
		tags := decodeTags(tagsJSON)

		changed := legacy != pillar.Name
		if changed && legacy != "" && !contains(tags, legacy) {
			tags = append(tags, legacy)
		}
		b, err := json.Marshal(tags)
		if err != nil {
			_ = rows.Close()
			return 0, fmt.Errorf("encode tags for %s: %w", id, err)
		}
		updates = append(updates, pending{id: id, category: pillar.Name, tags: string(b)})
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return 0, fmt.Errorf("rows err: %w", err)
	}
	_ = rows.Close()

	count := 0
	for _, u := range updates {
		query, args, err := m.SB.
			Update(table).
			Set("category", u.category).
			Set("tags", u.tags).
			Where(sq.Eq{"id": u.id}).
			ToSql()
		if err != nil {
			return count, fmt.Errorf("build update %s: %w", u.id, err)
		}
		if _, err := m.DB.ExecContext(ctx, query, args...); err != nil {
			return count, fmt.Errorf("update %s %s: %w", table, u.id, err)
		}
		count++
	}

	m.Logger.Printf("migrated %d %s rows", count, table)
	return count, nil
}

func decodeTags(raw string) []string {
	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil || tags == nil {
		return []string{}
	}
	return tags
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
