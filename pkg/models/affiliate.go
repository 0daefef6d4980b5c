package models

import "time"

type AffiliateLink struct {
	Slug      string `json:"slug"`
	ToolID    string `json:"tool_id"`
	TargetURL string `json:"target_url"`
}

type ClickEvent struct {
	ID        string    `json:"id"`
	ToolID    string    `json:"tool_id"`
	Slug      string    `json:"slug"`
	IP        string    `json:"ip,omitempty"`
	UserAgent string    `json:"user_agent,omitempty"`
	Referrer  string    `json:"referrer,omitempty"`
	At        time.Time `json:"at"`
}
