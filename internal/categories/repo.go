package categories

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"futureagent/pkg/models"
	"futureagent/pkg/retry"
)

type Repo struct {
	DB *sql.DB
	SB sq.StatementBuilderType
}

func NewRepo(db *sql.DB, sb sq.StatementBuilderType) *Repo {
	return &Repo{DB: db, SB: sb}
}

func (r *Repo) List(ctx context.Context) ([]models.Category, error) {
	query, args, err := r.SB.
		Select("slug", "name", "tagline", "description", "image_url").
		From("categories").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list categories: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	out := []models.Category{}
	for rows.Next() {
		var (
			c           models.Category
			tagline     sql.NullString
			description sql.NullString
			imageURL    sql.NullString
		)
		if err := rows.Scan(&c.Slug, &c.Name, &tagline, &description, &imageURL); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		c.Tagline = tagline.String
		c.Description = description.String
		c.ImageURL = imageURL.String
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

// Replace swaps the whole category table for the given pillar set. Used by
// the taxonomy migration only.
func (r *Repo) Replace(ctx context.Context, cats []models.Category) error {
	query, args, err := r.SB.Delete("categories").ToSql()
	if err != nil {
		return fmt.Errorf("build clear categories: %w", err)
	}
	if _, err := r.DB.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("clear categories: %w", err)
	}

	for _, c := range cats {
		query, args, err := r.SB.
			Insert("categories").
			Columns("slug", "name", "tagline", "description", "image_url").
			Values(c.Slug, c.Name, c.Tagline, c.Description, c.ImageURL).
			ToSql()
		if err != nil {
			return fmt.Errorf("build insert category: %w", err)
		}
		if _, err := r.DB.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert category %s: %w", c.Slug, err)
		}
	}
	return nil
}

// Fetcher wraps List with retry; fallback is an empty list.
type Fetcher struct {
	Repo *Repo
	Opts retry.Options
}

func NewFetcher(repo *Repo, opts retry.Options) *Fetcher {
	return &Fetcher{Repo: repo, Opts: opts}
}

func (f *Fetcher) Categories(ctx context.Context) []models.Category {
	return retry.Fetch(ctx, "fetch categories", func(ctx context.Context) ([]models.Category, error) {
		return f.Repo.List(ctx)
	}, []models.Category{}, f.Opts)
}
