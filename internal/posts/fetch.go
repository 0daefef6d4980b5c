package posts

import (
	"context"
	"time"

	"futureagent/pkg/models"
	"futureagent/pkg/retry"
)

const visibilityWindow = 24 * time.Hour

type Fetcher struct {
	Repo *Repo
	Opts retry.Options
	Now  func() time.Time
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

// LatestBlogPosts falls back to an empty list.
func (f *Fetcher) LatestBlogPosts(ctx context.Context) []models.Post {
	until := f.now().Add(visibilityWindow)
	return retry.Fetch(ctx, "fetch latest posts", func(ctx context.Context) ([]models.Post, error) {
		return f.Repo.ListLatest(ctx, until, 3)
	}, []models.Post{}, f.Opts)
}

// ComparisonPosts falls back to an empty list.
func (f *Fetcher) ComparisonPosts(ctx context.Context) []models.PostRef {
	return retry.Fetch(ctx, "fetch comparison posts", func(ctx context.Context) ([]models.PostRef, error) {
		return f.Repo.ListComparisons(ctx)
	}, []models.PostRef{}, f.Opts)
}
