package taxonomy

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"futureagent/pkg/models"
)

// DefaultPillarSlug is where unmapped legacy categories land.
const DefaultPillarSlug = "ai-tools"

// Pillars is the fixed canonical taxonomy installed by the migration.
var Pillars = []models.Category{
	{Slug: "ai-writing", Name: "AI Writing", Tagline: "Drafting, rewriting and long-form content"},
	{Slug: "seo-content-optimization", Name: "SEO & Content Optimization", Tagline: "Rank tracking, briefs and on-page optimization"},
	{Slug: "image-design", Name: "Image & Design", Tagline: "Image generation and design assistants"},
	{Slug: "video-audio", Name: "Video & Audio", Tagline: "Video generation, editing and voice"},
	{Slug: "chatbots-assistants", Name: "Chatbots & Assistants", Tagline: "Conversational AI and support bots"},
	{Slug: "automation-agents", Name: "Automation & Agents", Tagline: "Workflow automation and autonomous agents"},
	{Slug: "developer-tools", Name: "Developer Tools", Tagline: "Coding assistants and ML infrastructure"},
	{Slug: "ai-tools", Name: "AI Tools", Tagline: "General-purpose AI tools"},
}

// legacyMapping maps normalized legacy category strings to pillar slugs.
// Keys are lowercase with hyphens read as spaces.
var legacyMapping = map[string]string{
	"writing":                     "ai-writing",
	"copywriting":                 "ai-writing",
	"content writing":             "ai-writing",
	"ai writing":                  "ai-writing",
	"seo":                         "seo-content-optimization",
	"content optimization":        "seo-content-optimization",
	"seo & content optimization":  "seo-content-optimization",
	"design":                      "image-design",
	"image generation":            "image-design",
	"art":                         "image-design",
	"video":                       "video-audio",
	"video editing":               "video-audio",
	"audio":                       "video-audio",
	"voice":                       "video-audio",
	"chatbot":                     "chatbots-assistants",
	"chatbots":                    "chatbots-assistants",
	"customer support":            "chatbots-assistants",
	"assistant":                   "chatbots-assistants",
	"automation":                  "automation-agents",
	"agents":                      "automation-agents",
	"workflow":                    "automation-agents",
	"productivity":                "automation-agents",
	"coding":                      "developer-tools",
	"development":                 "developer-tools",
	"code generation":             "developer-tools",
	"marketing":                   "seo-content-optimization",
}

// Mapping resolves legacy category strings to pillars.
type Mapping struct {
	entries map[string]string
	bySlug  map[string]models.Category
}

func NewMapping() *Mapping {
	m := &Mapping{
		entries: make(map[string]string, len(legacyMapping)),
		bySlug:  make(map[string]models.Category, len(Pillars)),
	}
	for k, v := range legacyMapping {
		m.entries[k] = v
	}
	for _, p := range Pillars {
		m.bySlug[p.Slug] = p
	}
	return m
}

// LoadOverrides merges extra legacy→pillar entries from a YAML file of the
// form `legacy string: pillar-slug`.
func (m *Mapping) LoadOverrides(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read mapping %s: %w", path, err)
	}

	var extra map[string]string
	if err := yaml.Unmarshal(raw, &extra); err != nil {
		return fmt.Errorf("parse mapping %s: %w", path, err)
	}

	for k, v := range extra {
		if _, ok := m.bySlug[v]; !ok {
			return fmt.Errorf("mapping %s: unknown pillar slug %q for %q", path, v, k)
		}
		m.entries[normalize(k)] = v
	}
	return nil
}

// Resolve maps a legacy category or slug string to its pillar. Unmapped
// values land on the default pillar; original information is never lost
// because the migration retains the legacy label as a tag.
func (m *Mapping) Resolve(legacy string) models.Category {
	if slug, ok := m.entries[normalize(legacy)]; ok {
		return m.bySlug[slug]
	}
	// already a pillar slug or name
	if p, ok := m.bySlug[slugify(legacy)]; ok {
		return p
	}
	return m.bySlug[DefaultPillarSlug]
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.ReplaceAll(s, "-", " ")
}

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "&", "")
	fields := strings.Fields(s)
	return strings.Join(fields, "-")
}
