package tools

import (
	"context"
	"time"

	"futureagent/pkg/models"
	"futureagent/pkg/retry"
)

// VisibilityWindow fuzzes the "is this live yet" check: rows scheduled up to
// a day ahead are already treated as published, so timezone skew between
// authoring and serving never hides fresh content.
const VisibilityWindow = 24 * time.Hour

// Fetcher wraps repo reads in retry-with-fallback. Every method documents
// its fallback and always returns a value of the success shape.
type Fetcher struct {
	Repo *Repo
	Opts retry.Options
	// Now lets tests pin the clock. Nil means time.Now.
	Now func() time.Time
}

func NewFetcher(repo *Repo, opts retry.Options) *Fetcher {
	return &Fetcher{Repo: repo, Opts: opts}
}

func (f *Fetcher) now() time.Time {
	if f.Now != nil {
		return f.Now()
	}
	return time.Now()
}

// PublishedTools falls back to an empty list.
func (f *Fetcher) PublishedTools(ctx context.Context) []models.Tool {
	until := f.now().Add(VisibilityWindow)
	return retry.Fetch(ctx, "fetch published tools", func(ctx context.Context) ([]models.Tool, error) {
		return f.Repo.ListPublished(ctx, until)
	}, []models.Tool{}, f.Opts)
}

// ToolBySlug falls back to nil; callers treat nil as not found.
func (f *Fetcher) ToolBySlug(ctx context.Context, slug string) *models.Tool {
	return retry.Fetch(ctx, "fetch tool by slug", func(ctx context.Context) (*models.Tool, error) {
		return f.Repo.GetBySlug(ctx, slug)
	}, nil, f.Opts)
}

// FeaturedTools falls back to an empty list.
func (f *Fetcher) FeaturedTools(ctx context.Context) []models.ToolCard {
	return retry.Fetch(ctx, "fetch featured tools", func(ctx context.Context) ([]models.ToolCard, error) {
		return f.Repo.ListFeatured(ctx, 3)
	}, []models.ToolCard{}, f.Opts)
}
