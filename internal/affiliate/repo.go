package affiliate

import (
	"context"
	"database/sql"
	"fmt"

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

func (r *Repo) GetLink(ctx context.Context, slug string) (*models.AffiliateLink, error) {
	query, args, err := r.SB.
		Select("slug", "tool_id", "target_url").
		From("affiliate_links").
		Where(sq.Eq{"slug": slug}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get link: %w", err)
	}

	var l models.AffiliateLink
	if err := r.DB.QueryRowContext(ctx, query, args...).Scan(&l.Slug, &l.ToolID, &l.TargetURL); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan link: %w", err)
	}
	return &l, nil
}

// LinkForTool returns the tool's single affiliate link, nil when none exists.
func (r *Repo) LinkForTool(ctx context.Context, toolID string) (*models.AffiliateLink, error) {
	query, args, err := r.SB.
		Select("slug", "tool_id", "target_url").
		From("affiliate_links").
		Where(sq.Eq{"tool_id": toolID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build link for tool: %w", err)
	}

	var l models.AffiliateLink
	if err := r.DB.QueryRowContext(ctx, query, args...).Scan(&l.Slug, &l.ToolID, &l.TargetURL); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan link: %w", err)
	}
	return &l, nil
}

func (r *Repo) UpsertLink(ctx context.Context, l models.AffiliateLink) error {
	query, args, err := r.SB.
		Insert("affiliate_links").
		Columns("slug", "tool_id", "target_url").
		Values(l.Slug, l.ToolID, l.TargetURL).
		Suffix(`ON CONFLICT(slug) DO UPDATE SET
			tool_id = excluded.tool_id,
			target_url = excluded.target_url`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert link: %w", err)
	}

	if _, err := r.DB.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert link: %w", err)
	}
	return nil
}

func (r *Repo) RecordClick(ctx context.Context, e models.ClickEvent) error {
	query, args, err := r.SB.
		Insert("affiliate_clicks").
		Columns("id", "tool_id", "slug", "ip", "user_agent", "referrer", "at").
		Values(e.ID, e.ToolID, e.Slug, e.IP, e.UserAgent, e.Referrer, e.At).
		ToSql()
	if err != nil {
		return fmt.Errorf("build record click: %w", err)
	}

	if _, err := r.DB.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("record click: %w", err)
	}
	return nil
}
