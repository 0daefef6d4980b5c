package aigen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractDraftPlainJSON(t *testing.T) {
	d, err := ExtractDraft(`{"tagline":"Write faster","description":"A writing assistant.","pros":["Fast"],"cons":["Pricey"]}`)
	require.NoError(t, err)

	assert.Equal(t, "Write faster", d.Tagline)
	assert.Equal(t, "A writing assistant.", d.Description)
	assert.Equal(t, []string{"Fast"}, d.Pros)
	assert.Equal(t, []string{"Pricey"}, d.Cons)
}

func TestExtractDraftCodeFence(t *testing.T) {
	reply := "Here is the review you asked for:\n```json\n{\"description\": \"Solid tool.\", \"review_intro\": \"We tested it for a week.\"}\n```\nLet me know if you need edits."

	d, err := ExtractDraft(reply)
	require.NoError(t, err)

	assert.Equal(t, "Solid tool.", d.Description)
	assert.Equal(t, "We tested it for a week.", d.ReviewIntro)
}

func TestExtractDraftBracesInsideStrings(t *testing.T) {
	d, err := ExtractDraft(`{"description": "Supports {{mustache}} templates and \"quoted\" text."}`)
	require.NoError(t, err)

	assert.Contains(t, d.Description, "{{mustache}}")
}

func TestExtractDraftNoJSON(t *testing.T) {
	_, err := ExtractDraft("Sorry, I cannot help with that.")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no JSON object")
}

func TestExtractDraftUnbalanced(t *testing.T) {
	_, err := ExtractDraft(`{"description": "truncated`)
	require.Error(t, err)
}

func TestExtractDraftInvalidJSON(t *testing.T) {
	_, err := ExtractDraft(`{description: no quotes}`)
	require.Error(t, err)
}

func TestExtractDraftRequiresBody(t *testing.T) {
	_, err := ExtractDraft(`{"tagline": "Catchy", "pros": ["One"]}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing description")
}

func TestExtractDraftSanitizes(t *testing.T) {
	long := strings.Repeat("x", maxFieldLen+500)
	d, err := ExtractDraft(`{"description": "  padded  ", "pros": ["  ok  ", "", "   "], "review_intro": "` + long + `"}`)
	require.NoError(t, err)

	assert.Equal(t, "padded", d.Description)
	assert.Equal(t, []string{"ok"}, d.Pros)
	assert.Equal(t, []string{}, d.Cons, "absent list normalizes to empty, not null")
	assert.Len(t, d.ReviewIntro, maxFieldLen)
}
