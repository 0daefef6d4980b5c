package models

import "time"

type Post struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Category    string     `json:"category"`
	Excerpt     string     `json:"excerpt,omitempty"`
	Tags        []string   `json:"tags"`
	Published   bool       `json:"published"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// PostRef is the title+slug projection used for comparison-article lists.
type PostRef struct {
	Title string `json:"title"`
	Slug  string `json:"slug"`
}
