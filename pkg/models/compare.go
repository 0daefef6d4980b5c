package models

// HydratedTool is the fully assembled record the comparison page renders
// for one side. Built by internal/compare from the tool row plus its
// child collections; every field is presentation-ready.
type HydratedTool struct {
	Name         string        `json:"name"`
	Slug         string        `json:"slug"`
	LogoURL      string        `json:"logo_url"`
	Rating       float64       `json:"rating"`
	CTAURL       string        `json:"cta_url"`
	Pros         []string      `json:"pros"`
	Cons         []string      `json:"cons"`
	Pricing      string        `json:"pricing"`
	Integrations []string      `json:"integrations"`
	Description  string        `json:"description"`
	Features     []ToolFeature `json:"features"`
}

type Winner string

const (
	WinnerToolA Winner = "toolA"
	WinnerToolB Winner = "toolB"
	WinnerTie   Winner = "tie"
)

type Verdict struct {
	Winner  Winner `json:"winner"`
	Summary string `json:"summary"`
}

// FeatureRow is one line of the side-by-side comparison table.
type FeatureRow struct {
	Label string `json:"label"`
	ToolA string `json:"tool_a"`
	ToolB string `json:"tool_b"`
}

type Comparison struct {
	ToolA   HydratedTool `json:"tool_a"`
	ToolB   HydratedTool `json:"tool_b"`
	Verdict Verdict      `json:"verdict"`
	Table   []FeatureRow `json:"table"`
}
