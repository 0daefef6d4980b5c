package tools

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"futureagent/pkg/models"
)

// ChildCollections carries the replacement child rows for an admin save.
// Slice order becomes the persisted sort order.
type ChildCollections struct {
	Pros         []string             `json:"pros"`
	Cons         []string             `json:"cons"`
	PricingPlans []models.PricingPlan `json:"pricing_plans"`
	Integrations []string             `json:"integrations"`
	Features     []models.ToolFeature `json:"features"`
}

func (r *Repo) Upsert(ctx context.Context, t models.Tool) error {
	var rating any
	if t.Rating != nil {
		rating = *t.Rating
	}
	var scheduledAt any
	if t.ScheduledAt != nil {
		scheduledAt = *t.ScheduledAt
	}

	query, args, err := r.SB.
		Insert("tools").
		Columns("id", "name", "slug", "category", "rating", "website_url",
			"logo_url", "tagline", "description", "review_intro", "tags",
			"published", "featured", "scheduled_at").
		Values(t.ID, t.Name, t.Slug, t.Category, rating, t.WebsiteURL,
			t.LogoURL, t.Tagline, t.Description, t.ReviewIntro, encodeTags(t.Tags),
			t.Published, t.Featured, scheduledAt).
		Suffix(`ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			slug = excluded.slug,
			category = excluded.category,
			rating = excluded.rating,
			website_url = excluded.website_url,
			logo_url = excluded.logo_url,
			tagline = excluded.tagline,
			description = excluded.description,
			review_intro = excluded.review_intro,
			tags = excluded.tags,
			published = excluded.published,
			featured = excluded.featured,
			scheduled_at = excluded.scheduled_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert tool: %w", err)
	}

	if _, err := r.DB.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert tool: %w", err)
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, id string) (bool, error) {
	query, args, err := r.SB.Delete("tools").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return false, fmt.Errorf("build delete tool: %w", err)
	}

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete tool: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// ReplaceChildren rewrites all child collections for a tool. Each table is
// cleared and refilled; rows are independent statements, matching how the
// admin panel saves a whole edit form at once.
func (r *Repo) ReplaceChildren(ctx context.Context, toolID string, c ChildCollections) error {
	for _, table := range []string{"tool_pros", "tool_cons", "tool_pricing_plans", "tool_integrations", "tool_features"} {
		query, args, err := r.SB.Delete(table).Where(sq.Eq{"tool_id": toolID}).ToSql()
		if err != nil {
			return fmt.Errorf("build clear %s: %w", table, err)
		}
		if _, err := r.DB.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	if err := r.insertText(ctx, "tool_pros", "body", toolID, c.Pros); err != nil {
		return err
	}
	if err := r.insertText(ctx, "tool_cons", "body", toolID, c.Cons); err != nil {
		return err
	}
	if err := r.insertText(ctx, "tool_integrations", "name", toolID, c.Integrations); err != nil {
		return err
	}

	for i, p := range c.PricingPlans {
		query, args, err := r.SB.
			Insert("tool_pricing_plans").
			Columns("tool_id", "label", "price", "period", "sort_order").
			Values(toolID, p.Label, p.Price, p.Period, i).
			ToSql()
		if err != nil {
			return fmt.Errorf("build insert plan: %w", err)
		}
		if _, err := r.DB.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert plan: %w", err)
		}
	}

	for i, f := range c.Features {
		query, args, err := r.SB.
			Insert("tool_features").
			Columns("tool_id", "title", "description", "sort_order").
			Values(toolID, f.Title, f.Description, i).
			ToSql()
		if err != nil {
			return fmt.Errorf("build insert feature: %w", err)
		}
		if _, err := r.DB.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert feature: %w", err)
		}
	}

	return nil
}

func (r *Repo) insertText(ctx context.Context, table, column, toolID string, values []string) error {
	for i, v := range values {
		query, args, err := r.SB.
			Insert(table).
			Columns("tool_id", column, "sort_order").
			Values(toolID, v, i).
			ToSql()
		if err != nil {
			return fmt.Errorf("build insert %s: %w", table, err)
		}
		if _, err := r.DB.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert %s: %w", table, err)
		}
	}
	return nil
}
