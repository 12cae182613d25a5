package source

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/leadintel/leadscan/internal/model"
	"github.com/leadintel/leadscan/internal/resilience"
	"github.com/leadintel/leadscan/pkg/anthropic"
)

const aiSystemPrompt = `You are a lead intelligence assistant. You fabricate realistic local business directory data for sales prospecting demos. You only ever output JSON.`

// AIConfig configures the model-backed source.
type AIConfig struct {
	Model     string `yaml:"model" mapstructure:"model"`
	MaxTokens int64  `yaml:"max_tokens" mapstructure:"max_tokens"`
	Count     int    `yaml:"count" mapstructure:"count"`
}

// DefaultAIConfig returns the shipped AI source settings.
func DefaultAIConfig() AIConfig {
	return AIConfig{
		Model:     "claude-haiku-4-5-20251001",
		MaxTokens: 4096,
		Count:     20,
	}
}

// AISource fabricates candidate businesses with a text-generation model.
// Scoring never happens here: the model only supplies raw records, which
// go through the same normalization and scoring as any other source.
type AISource struct {
	client anthropic.Client
	cfg    AIConfig
	retry  resilience.RetryConfig
}

// NewAISource creates an AISource over the given client.
func NewAISource(client anthropic.Client, cfg AIConfig) *AISource {
	if cfg.Model == "" {
		cfg = DefaultAIConfig()
	}
	return &AISource{
		client: client,
		cfg:    cfg,
		retry:  resilience.DefaultRetryConfig(),
	}
}

func (s *AISource) Kind() Kind { return KindAI }

// FetchCandidates asks the model for a JSON array of plausible businesses
// in the given market. Any terminal failure maps to ErrUnavailable.
func (s *AISource) FetchCandidates(ctx context.Context, industry, location string) ([]model.RawBusinessRecord, error) {
	prompt := s.buildPrompt(industry, location)

	retry := s.retry
	retry.OnRetry = resilience.RetryLogger("anthropic", "fetch_candidates")

	resp, err := resilience.DoVal(ctx, retry, func(ctx context.Context) (*anthropic.MessageResponse, error) {
		return s.client.CreateMessage(ctx, anthropic.MessageRequest{
			Model:     s.cfg.Model,
			MaxTokens: s.cfg.MaxTokens,
			System:    aiSystemPrompt,
			Messages:  []anthropic.Message{{Role: "user", Content: prompt}},
		})
	})
	if err != nil {
		return nil, eris.Wrap(ErrUnavailable, err.Error())
	}
	resp.Usage.Log(s.cfg.Model, "fetch_candidates")

	records, err := parseCandidateJSON(resp.Text())
	if err != nil {
		zap.L().Warn("ai source returned unparseable candidates", zap.Error(err))
		return nil, eris.Wrap(ErrUnavailable, err.Error())
	}
	if len(records) == 0 {
		return nil, ErrEmpty
	}

	zap.L().Info("ai source fetched candidates",
		zap.String("industry", industry),
		zap.String("location", location),
		zap.Int("count", len(records)),
	)
	return records, nil
}

func (s *AISource) buildPrompt(industry, location string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate %d realistic local businesses for this market.\n\n", s.cfg.Count)
	fmt.Fprintf(&b, "Industry: %s\nLocation: %s\n\n", industry, location)
	b.WriteString(`Rules:
- Company names must look real. Never use placeholders like "Company 1", "Demo Corp", "Test LLC", or "Acme".
- Websites, when present, must be absolute https URLs with a real-looking TLD. Give roughly 90% of businesses a website and omit the field for the rest.
- Ratings between 3.0 and 5.0 with one decimal; review counts between 2 and 300. Spread both realistically across the batch.
- Name one senior decision maker per business (Owner, Founder, Director, or similar) with a realistic full name. Leave the name empty when a structured directory would not expose one.
- No duplicate company names.

Output strictly a JSON array, no prose, no markdown fences:
[
  {
    "name": "",
    "address": "",
    "rating": 0.0,
    "review_count": 0,
    "website_url": "",
    "phone": "",
    "location_label": "",
    "decision_maker_name": "",
    "decision_maker_role": "",
    "size": ""
  }
]`)
	return b.String()
}

// parseCandidateJSON extracts the JSON array from model output that may
// be wrapped in markdown fences or surrounding prose.
func parseCandidateJSON(text string) ([]model.RawBusinessRecord, error) {
	cleaned := cleanJSONArray(text)
	if cleaned == "" {
		return nil, eris.New("source: no JSON array in model output")
	}

	var records []model.RawBusinessRecord
	if err := json.Unmarshal([]byte(cleaned), &records); err != nil {
		return nil, eris.Wrap(err, "source: unmarshal candidates")
	}
	return records, nil
}

func cleanJSONArray(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	}

	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start < 0 || end <= start {
		return ""
	}
	return strings.TrimSpace(text[start : end+1])
}
