package compare

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"futureagent/pkg/models"
)

// ErrNotFound reports that one or both comparison tokens did not resolve.
var ErrNotFound = errors.New("tool not found")

const defaultRating = 4.0

// Comparer resolves two tool tokens and assembles a full comparison.
type Comparer struct {
	Store  Store
	Logger *log.Logger

	// PhrasePick selects among the cross-category summary phrasings.
	// Nil picks the first, keeping production output deterministic.
	PhrasePick func(n int) int
}

func New(store Store, logger *log.Logger) *Comparer {
	if logger == nil {
		logger = log.Default()
	}
	return &Comparer{Store: store, Logger: logger}
}

// Compare hydrates both tools concurrently and computes the verdict and
// feature table. Resolution failure for either token fails the whole
// comparison; child-collection failures degrade that field to empty.
func (c *Comparer) Compare(ctx context.Context, tokenA, tokenB string) (*models.Comparison, error) {
	toolA, toolB, err := c.resolve(ctx, tokenA, tokenB)
	if err != nil {
		return nil, err
	}

	var hydA, hydB models.HydratedTool
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		hydA = c.hydrate(gctx, toolA)
		return nil
	})
	g.Go(func() error {
		hydB = c.hydrate(gctx, toolB)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	verdict := c.buildVerdict(hydA, hydB, toolA.Category, toolB.Category)

	return &models.Comparison{
		ToolA:   hydA,
		ToolB:   hydB,
		Verdict: verdict,
		Table:   buildFeatureTable(hydA, hydB),
	}, nil
}

// resolve maps both tokens to tool rows with one candidate query: slugs
// match exactly, names match case-insensitively with hyphens read as spaces.
func (c *Comparer) resolve(ctx context.Context, tokenA, tokenB string) (*models.Tool, *models.Tool, error) {
	tokens := []string{tokenA, tokenB}
	names := []string{tokenToName(tokenA), tokenToName(tokenB)}

	candidates, err := c.Store.Candidates(ctx, tokens, names)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve candidates: %w", err)
	}

	toolA := matchToken(candidates, tokenA)
	toolB := matchToken(candidates, tokenB)
	if toolA == nil || toolB == nil {
		return nil, nil, ErrNotFound
	}
	return toolA, toolB, nil
}

func tokenToName(token string) string {
	return strings.ReplaceAll(token, "-", " ")
}

func matchToken(candidates []models.Tool, token string) *models.Tool {
	for i := range candidates {
		if candidates[i].Slug == token {
			return &candidates[i]
		}
	}
	name := tokenToName(token)
	for i := range candidates {
		if strings.EqualFold(candidates[i].Name, name) {
			return &candidates[i]
		}
	}
	return nil
}

// hydrate fans out the child-collection reads for one tool and joins before
// assembly. A failed read logs and leaves its field empty; siblings keep
// going.
func (c *Comparer) hydrate(ctx context.Context, t *models.Tool) models.HydratedTool {
	var (
		pros         []string
		cons         []string
		plan         *models.PricingPlan
		hasPlanRow   bool
		integrations []string
		features     []models.ToolFeature
		link         *models.AffiliateLink
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := c.Store.Pros(gctx, t.ID)
		if err != nil {
			c.Logger.Printf("hydrate %s: pros: %v", t.Slug, err)
			return nil
		}
		pros = v
		return nil
	})
	g.Go(func() error {
		v, err := c.Store.Cons(gctx, t.ID)
		if err != nil {
			c.Logger.Printf("hydrate %s: cons: %v", t.Slug, err)
			return nil
		}
		cons = v
		return nil
	})
	g.Go(func() error {
		v, err := c.Store.TopPricingPlan(gctx, t.ID)
		if err != nil {
			c.Logger.Printf("hydrate %s: pricing: %v", t.Slug, err)
			return nil
		}
		plan = v
		hasPlanRow = v != nil
		return nil
	})
	g.Go(func() error {
		v, err := c.Store.Integrations(gctx, t.ID)
		if err != nil {
			c.Logger.Printf("hydrate %s: integrations: %v", t.Slug, err)
			return nil
		}
		integrations = v
		return nil
	})
	g.Go(func() error {
		v, err := c.Store.Features(gctx, t.ID, 3)
		if err != nil {
			c.Logger.Printf("hydrate %s: features: %v", t.Slug, err)
			return nil
		}
		features = v
		return nil
	})
	g.Go(func() error {
		v, err := c.Store.LinkForTool(gctx, t.ID)
		if err != nil {
			c.Logger.Printf("hydrate %s: affiliate link: %v", t.Slug, err)
			return nil
		}
		link = v
		return nil
	})
	_ = g.Wait()

	if pros == nil {
		pros = []string{}
	}
	if cons == nil {
		cons = []string{}
	}
	if integrations == nil {
		integrations = []string{}
	}
	if features == nil {
		features = []models.ToolFeature{}
	}
	if len(features) > 3 {
		features = features[:3]
	}

	rating := defaultRating
	if t.Rating != nil {
		rating = *t.Rating
	}

	return models.HydratedTool{
		Name:         t.Name,
		Slug:         t.Slug,
		LogoURL:      logoOrPlaceholder(t),
		Rating:       rating,
		CTAURL:       ctaURL(t, link),
		Pros:         pros,
		Cons:         cons,
		Pricing:      pricingString(plan, hasPlanRow),
		Integrations: integrations,
		Description:  description(t),
		Features:     features,
	}
}

func logoOrPlaceholder(t *models.Tool) string {
	if t.LogoURL != "" {
		return t.LogoURL
	}
	letter := "?"
	if t.Name != "" {
		letter = strings.ToUpper(t.Name[:1])
	}
	return fmt.Sprintf("https://placehold.co/96x96?text=%s", letter)
}

// ctaURL prefers the tracked affiliate redirect, then the plain website,
// then a dead anchor so the button still renders.
func ctaURL(t *models.Tool, link *models.AffiliateLink) string {
	if link != nil && link.Slug != "" {
		return "/go/" + link.Slug
	}
	if t.WebsiteURL != "" {
		return t.WebsiteURL
	}
	return "#"
}

// pricingString derives the display price: plan label, then "$price/period"
// when the price is numeric, then "Freemium" for a plan with no usable
// price, and "Contact Sales" when no plan row exists at all.
func pricingString(plan *models.PricingPlan, hasPlanRow bool) string {
	if !hasPlanRow {
		return "Contact Sales"
	}
	if plan.Label != "" {
		return plan.Label
	}
	if _, err := strconv.ParseFloat(plan.Price, 64); err == nil && plan.Price != "" {
		period := plan.Period
		if period == "" {
			period = "mo"
		}
		return fmt.Sprintf("$%s/%s", plan.Price, period)
	}
	return "Freemium"
}

func description(t *models.Tool) string {
	if t.ReviewIntro != "" {
		return t.ReviewIntro
	}
	if t.Description != "" {
		return t.Description
	}
	return fmt.Sprintf("%s is an AI tool we are still writing our full review for.", t.Name)
}
