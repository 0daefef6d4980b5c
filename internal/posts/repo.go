package posts

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"futureagent/pkg/models"
)

type Repo struct {
	DB *sql.DB
	SB sq.StatementBuilderType
}

func NewRepo(db *sql.DB, sb sq.StatementBuilderType) *Repo {
	return &Repo{DB: db, SB: sb}
}

func decodeTags(raw string) []string {
	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil || tags == nil {
		return []string{}
	}
	return tags
}

// ListLatest returns published posts visible as of the bound, newest first.
func (r *Repo) ListLatest(ctx context.Context, until time.Time, limit int) ([]models.Post, error) {
	if limit <= 0 {
		limit = 3
	}

	query, args, err := r.SB.
		Select("id", "title", "slug", "category", "excerpt", "tags", "published", "scheduled_at", "created_at").
		From("posts").
		Where(sq.Eq{"published": true}).
		Where(sq.Or{sq.Eq{"scheduled_at": nil}, sq.LtOrEq{"scheduled_at": until}}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build latest posts: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("latest posts: %w", err)
	}
	defer rows.Close()

	out := make([]models.Post, 0, limit)
	for rows.Next() {
		var (
			p           models.Post
			excerpt     sql.NullString
			tagsJSON    string
			scheduledAt sql.NullTime
		)
		if err := rows.Scan(&p.ID, &p.Title, &p.Slug, &p.Category, &excerpt, &tagsJSON, &p.Published, &scheduledAt, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		p.Excerpt = excerpt.String
		p.Tags = decodeTags(tagsJSON)
		if scheduledAt.Valid {
			v := scheduledAt.Time
			p.ScheduledAt = &v
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

// ListComparisons returns title+slug for published "-vs-" articles.
func (r *Repo) ListComparisons(ctx context.Context) ([]models.PostRef, error) {
	query, args, err := r.SB.
		Select("title", "slug").
		From("posts").
		Where(sq.Eq{"published": true}).
		Where(sq.Like{"slug": "%-vs-%"}).
		OrderBy("scheduled_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build comparison posts: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("comparison posts: %w", err)
	}
	defer rows.Close()

	out := []models.PostRef{}
	for rows.Next() {
		var p models.PostRef
		if err := rows.Scan(&p.Title, &p.Slug); err != nil {
			return nil, fmt.Errorf("scan comparison post: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}
