package aigen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"futureagent/pkg/utils"
)

// Client calls an OpenAI-compatible chat endpoint to produce a draft review
// for a tool. The provider is a black box; only the JSON extraction and
// sanitization of its reply are owned here.
type Client struct {
	endpoint   string
	model      string
	apiKey     string
	httpClient *http.Client
}

func NewClient(cfg utils.AppConfig) *Client {
	timeout := cfg.AITimeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		endpoint: cfg.AIEndpoint,
		model:    cfg.AIModel,
		apiKey:   cfg.AIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

const systemPrompt = `You write concise, factual reviews of AI tools. Reply with a single JSON object with keys: tagline, description, review_intro, pros (array of strings), cons (array of strings). No markdown, no commentary.`

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// DraftReview asks the model for a draft and returns the sanitized result.
func (c *Client) DraftReview(ctx context.Context, toolName, category string) (*Draft, error) {
	if c.apiKey == "" || c.endpoint == "" || c.model == "" {
		return nil, fmt.Errorf("ai client misconfigured")
	}

	userPrompt := fmt.Sprintf("Write a draft review for %q, an AI tool in the %q category.", toolName, category)

	body, err := json.Marshal(map[string]any{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": userPrompt},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal chat payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("draft request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("ai error %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode chat response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("empty chat response")
	}

	draft, err := ExtractDraft(parsed.Choices[0].Message.Content)
	if err != nil {
		return nil, fmt.Errorf("extract draft: %w", err)
	}
	return draft, nil
}
