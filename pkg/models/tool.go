package models

import "time"

type Tool struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Category    string     `json:"category"`
	Rating      *float64   `json:"rating,omitempty"`
	WebsiteURL  string     `json:"website_url,omitempty"`
	LogoURL     string     `json:"logo_url,omitempty"`
	Tagline     string     `json:"tagline,omitempty"`
	Description string     `json:"description,omitempty"`
	ReviewIntro string     `json:"review_intro,omitempty"`
	Tags        []string   `json:"tags"`
	Published   bool       `json:"published"`
	Featured    bool       `json:"featured"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ToolCard is the narrow projection used on listing surfaces
// (featured grid, category pages).
type ToolCard struct {
	Name     string   `json:"name"`
	Slug     string   `json:"slug"`
	Category string   `json:"category"`
	Rating   *float64 `json:"rating,omitempty"`
	LogoURL  string   `json:"logo_url,omitempty"`
	Tagline  string   `json:"tagline,omitempty"`
}

type ToolFeature struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// PricingPlan keeps price as text because stored values mix numerics
// ("29") with labels ("Custom"). Presentation logic decides how to render.
type PricingPlan struct {
	Label  string `json:"label,omitempty"`
	Price  string `json:"price,omitempty"`
	Period string `json:"period,omitempty"`
}
