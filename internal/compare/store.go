package compare

import (
	"context"

	"futureagent/pkg/models"
)

// Store is the minimal persistence surface the comparer needs. The tools
// and affiliate repos satisfy it together; tests substitute a fake.
type Store interface {
	Candidates(ctx context.Context, slugs, names []string) ([]models.Tool, error)
	Pros(ctx context.Context, toolID string) ([]string, error)
	Cons(ctx context.Context, toolID string) ([]string, error)
	TopPricingPlan(ctx context.Context, toolID string) (*models.PricingPlan, error)
	Integrations(ctx context.Context, toolID string) ([]string, error)
	Features(ctx context.Context, toolID string, limit int) ([]models.ToolFeature, error)
	LinkForTool(ctx context.Context, toolID string) (*models.AffiliateLink, error)
}
