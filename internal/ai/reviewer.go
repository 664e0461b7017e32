package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/prosegate/prosegate/internal/review"
)

// Verdict is the adjudicator's answer for one queued review item.
type Verdict struct {
	Decision  string `json:"decision"`
	Rationale string `json:"rationale"`
}

// Reviewer adjudicates queued review items with an OpenRouter model.
type Reviewer struct {
	client *Client
}

func NewReviewer(cfg Config) (*Reviewer, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	client, err := NewClient(cfg)
	if err != nil {
		return nil, err
	}

	return &Reviewer{client: client}, nil
}

// Adjudicate asks the model whether a queued correction should be applied.
func (r *Reviewer) Adjudicate(ctx context.Context, item review.Item) (*Verdict, error) {
	systemPrompt, userPrompt, err := buildVerdictPrompt(item)
	if err != nil {
		return nil, err
	}

	content, err := r.client.Chat(ctx, systemPrompt, userPrompt)
	if err != nil {
		return nil, err
	}

	return parseVerdict(content)
}

type promptItem struct {
	Category   string  `json:"category"`
	Original   string  `json:"original"`
	Suggested  string  `json:"suggested"`
	Confidence float64 `json:"confidence"`
	SourceLine string  `json:"source_line,omitempty"`
	Ambiguity  string  `json:"ambiguity,omitempty"`
}

func buildVerdictPrompt(item review.Item) (string, string, error) {
	serialized := promptItem{
		Category:   string(item.Category),
		Original:   item.Original,
		Suggested:  item.Suggested,
		Confidence: item.Confidence,
		SourceLine: truncateForPrompt(item.SourceLine, 300),
	}
	if item.Ambiguity != nil {
		serialized.Ambiguity = fmt.Sprintf("%s: %s", item.Ambiguity.ProperForm, item.Ambiguity.Reason)
	}

	payload, err := json.Marshal(serialized)
	if err != nil {
		return "", "", fmt.Errorf("failed to serialize review item: %w", err)
	}

	systemPrompt := "You review proposed markdown style corrections that an automatic fixer was not confident enough to apply. Return only JSON."

	userPrompt := fmt.Sprintf(`Correction under review (JSON):
%s

Rules:
- "original" is the exact text in the document, "suggested" is the replacement.
- Decide "apply" only when the replacement is clearly correct in context.
- Decide "reject" when the original text is ordinary prose that should stay.
- Decide "unsure" when the surrounding context is insufficient.
- Output JSON only: {"decision":"apply|reject|unsure","rationale":"one sentence"}
`, string(payload))

	return systemPrompt, userPrompt, nil
}

func parseVerdict(content string) (*Verdict, error) {
	jsonStr := extractJSON(content)
	if jsonStr == "" {
		return nil, fmt.Errorf("no JSON found in response")
	}

	var verdict Verdict
	if err := json.Unmarshal([]byte(jsonStr), &verdict); err != nil {
		return nil, fmt.Errorf("failed to parse verdict: %w", err)
	}

	verdict.Decision = strings.ToLower(strings.TrimSpace(verdict.Decision))
	switch verdict.Decision {
	case "apply", "reject", "unsure":
	default:
		return nil, fmt.Errorf("invalid verdict decision: %q", verdict.Decision)
	}

	return &verdict, nil
}

func extractJSON(content string) string {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || end <= start {
		return ""
	}
	return strings.TrimSpace(content[start : end+1])
}

func truncateForPrompt(s string, maxLen int) string {
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	return s
}
