package tools

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

func toolSelectColumns() []string {
	return []string{
		"id", "name", "slug", "category", "rating", "website_url", "logo_url",
		"tagline", "description", "review_intro", "tags", "published",
		"featured", "scheduled_at", "created_at",
	}
}

func scanTool(row sq.RowScanner) (*models.Tool, error) {
	var (
		t           models.Tool
		rating      sql.NullFloat64
		websiteURL  sql.NullString
		logoURL     sql.NullString
		tagline     sql.NullString
		description sql.NullString
		reviewIntro sql.NullString
		tagsJSON    string
		scheduledAt sql.NullTime
	)

	if err := row.Scan(
		&t.ID, &t.Name, &t.Slug, &t.Category, &rating, &websiteURL, &logoURL,
		&tagline, &description, &reviewIntro, &tagsJSON, &t.Published,
		&t.Featured, &scheduledAt, &t.CreatedAt,
	); err != nil {
		return nil, err
	}

	if rating.Valid {
		v := rating.Float64
		t.Rating = &v
	}
	t.WebsiteURL = websiteURL.String
	t.LogoURL = logoURL.String
	t.Tagline = tagline.String
	t.Description = description.String
	t.ReviewIntro = reviewIntro.String
	if scheduledAt.Valid {
		v := scheduledAt.Time
		t.ScheduledAt = &v
	}
	t.Tags = decodeTags(tagsJSON)

	return &t, nil
}

// decodeTags parses the stored JSON array, defaulting to an empty list on
// malformed data so unparsed JSON never crosses the repo boundary.
func decodeTags(raw string) []string {
	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil || tags == nil {
		return []string{}
	}
	return tags
}

func encodeTags(tags []string) string {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func (r *Repo) GetBySlug(ctx context.Context, slug string) (*models.Tool, error) {
	query, args, err := r.SB.
		Select(toolSelectColumns()...).
		From("tools").
		Where(sq.Eq{"slug": slug}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get tool: %w", err)
	}

	t, err := scanTool(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan tool: %w", err)
	}
	return t, nil
}

// ListPublished returns tools visible as of the given bound. Callers pass
// now+24h so rows scheduled within a day count as live, absorbing timezone
// skew between the authoring client and the serving region.
func (r *Repo) ListPublished(ctx context.Context, until time.Time) ([]models.Tool, error) {
	query, args, err := r.SB.
		Select(toolSelectColumns()...).
		From("tools").
		Where(sq.Eq{"published": true}).
		Where(sq.Or{sq.Eq{"scheduled_at": nil}, sq.LtOrEq{"scheduled_at": until}}).
		OrderBy("scheduled_at DESC", "rating DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list published: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list published: %w", err)
	}
	defer rows.Close()

	out := []models.Tool{}
	for rows.Next() {
		t, err := scanTool(rows)
		if err != nil {
			return nil, fmt.Errorf("scan published row: %w", err)
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

// ListFeatured returns the narrow card projection for the featured grid.
func (r *Repo) ListFeatured(ctx context.Context, limit int) ([]models.ToolCard, error) {
	if limit <= 0 {
		limit = 3
	}

	query, args, err := r.SB.
		Select("name", "slug", "category", "rating", "logo_url", "tagline").
		From("tools").
		Where(sq.Eq{"published": true, "featured": true}).
		OrderBy("rating DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list featured: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list featured: %w", err)
	}
	defer rows.Close()

	out := make([]models.ToolCard, 0, limit)
	for rows.Next() {
		var (
			c       models.ToolCard
			rating  sql.NullFloat64
			logoURL sql.NullString
			tagline sql.NullString
		)
		if err := rows.Scan(&c.Name, &c.Slug, &c.Category, &rating, &logoURL, &tagline); err != nil {
			return nil, fmt.Errorf("scan featured row: %w", err)
		}
		if rating.Valid {
			v := rating.Float64
			c.Rating = &v
		}
		c.LogoURL = logoURL.String
		c.Tagline = tagline.String
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

// Candidates returns tools whose slug or name matches any of the given
// values. The comparison resolver narrows the result per token.
func (r *Repo) Candidates(ctx context.Context, slugs, names []string) ([]models.Tool, error) {
	query, args, err := r.SB.
		Select(toolSelectColumns()...).
		From("tools").
		Where(sq.Or{sq.Eq{"slug": slugs}, sq.Eq{"name": names}}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build candidates: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query candidates: %w", err)
	}
	defer rows.Close()

	out := []models.Tool{}
	for rows.Next() {
		t, err := scanTool(rows)
		if err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

func (r *Repo) listChildText(ctx context.Context, table, column, toolID string) ([]string, error) {
	query, args, err := r.SB.
		Select(column).
		From(table).
		Where(sq.Eq{"tool_id": toolID}).
		OrderBy("sort_order ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", table, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

func (r *Repo) Pros(ctx context.Context, toolID string) ([]string, error) {
	return r.listChildText(ctx, "tool_pros", "body", toolID)
}

func (r *Repo) Cons(ctx context.Context, toolID string) ([]string, error) {
	return r.listChildText(ctx, "tool_cons", "body", toolID)
}

func (r *Repo) Integrations(ctx context.Context, toolID string) ([]string, error) {
	return r.listChildText(ctx, "tool_integrations", "name", toolID)
}

// TopPricingPlan returns the first plan by sort order, or nil when the tool
// has no pricing rows at all.
func (r *Repo) TopPricingPlan(ctx context.Context, toolID string) (*models.PricingPlan, error) {
	query, args, err := r.SB.
		Select("label", "price", "period").
		From("tool_pricing_plans").
		Where(sq.Eq{"tool_id": toolID}).
		OrderBy("sort_order ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build top plan: %w", err)
	}

	var (
		p      models.PricingPlan
		label  sql.NullString
		price  sql.NullString
		period sql.NullString
	)
	err = r.DB.QueryRowContext(ctx, query, args...).Scan(&label, &price, &period)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan top plan: %w", err)
	}

	p.Label = label.String
	p.Price = price.String
	p.Period = period.String
	return &p, nil
}

func (r *Repo) Features(ctx context.Context, toolID string, limit int) ([]models.ToolFeature, error) {
	if limit <= 0 {
		limit = 3
	}

	query, args, err := r.SB.
		Select("title", "description").
		From("tool_features").
		Where(sq.Eq{"tool_id": toolID}).
		OrderBy("sort_order ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build features: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query features: %w", err)
	}
	defer rows.Close()

	out := []models.ToolFeature{}
	for rows.Next() {
		var f models.ToolFeature
		var description sql.NullString
		if err := rows.Scan(&f.Title, &description); err != nil {
			return nil, fmt.Errorf("scan feature: %w", err)
		}
		f.Description = description.String
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}
