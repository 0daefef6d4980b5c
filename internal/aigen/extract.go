package aigen

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Draft is the validated shape extracted from a model reply.
type Draft struct {
	Tagline     string   `json:"tagline"`
	Description string   `json:"description"`
	ReviewIntro string   `json:"review_intro"`
	Pros        []string `json:"pros"`
	Cons        []string `json:"cons"`
}

const maxFieldLen = 2000

// ExtractDraft pulls the first JSON object out of a model reply and
// sanitizes it. Models wrap JSON in code fences or prose often enough that
// a plain unmarshal is not reliable.
func ExtractDraft(text string) (*Draft, error) {
	raw, ok := firstJSONObject(text)
	if !ok {
		return nil, fmt.Errorf("no JSON object in reply")
	}

	var d Draft
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		return nil, fmt.Errorf("parse draft JSON: %w", err)
	}

	d.Tagline = clean(d.Tagline)
	d.Description = clean(d.Description)
	d.ReviewIntro = clean(d.ReviewIntro)
	d.Pros = cleanList(d.Pros)
	d.Cons = cleanList(d.Cons)

	if d.Description == "" && d.ReviewIntro == "" {
		return nil, fmt.Errorf("draft missing description and review_intro")
	}
	return &d, nil
}

// firstJSONObject scans for the first balanced {...} block, skipping
// braces inside JSON strings.
func firstJSONObject(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		ch := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}

func clean(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > maxFieldLen {
		s = s[:maxFieldLen]
	}
	return s
}

func cleanList(list []string) []string {
	out := []string{}
	for _, s := range list {
		if s = clean(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
