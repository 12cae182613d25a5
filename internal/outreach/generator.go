package outreach

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/leadintel/leadscan/internal/model"
	"github.com/leadintel/leadscan/internal/resilience"
	"github.com/leadintel/leadscan/pkg/anthropic"
)

const generatorSystemPrompt = `You are a B2B sales copywriter. You write short, personalized cold emails in a problem-agitate-solution structure. You only ever output JSON.`

// GeneratorConfig configures the model-backed draft generator.
type GeneratorConfig struct {
	Model       string  `yaml:"model" mapstructure:"model"`
	MaxTokens   int64   `yaml:"max_tokens" mapstructure:"max_tokens"`
	Temperature float64 `yaml:"temperature" mapstructure:"temperature"`
}

// DefaultGeneratorConfig returns the shipped generator settings.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Model:       "claude-haiku-4-5-20251001",
		MaxTokens:   1024,
		Temperature: 0.7,
	}
}

// AnthropicGenerator produces drafts with a text-generation model.
type AnthropicGenerator struct {
	client anthropic.Client
	cfg    GeneratorConfig
	retry  resilience.RetryConfig
}

// NewAnthropicGenerator creates a generator over the given client.
func NewAnthropicGenerator(client anthropic.Client, cfg GeneratorConfig) *AnthropicGenerator {
	if cfg.Model == "" {
		cfg = DefaultGeneratorConfig()
	}
	return &AnthropicGenerator{
		client: client,
		cfg:    cfg,
		retry:  resilience.DefaultRetryConfig(),
	}
}

// Complete asks the model for a subject/body pair. Any terminal failure
// maps to ErrGenerationFailed so the caller can fall back uniformly.
func (g *AnthropicGenerator) Complete(ctx context.Context, pc PromptContext) (model.OutreachDraft, error) {
	retry := g.retry
	retry.OnRetry = resilience.RetryLogger("anthropic", "draft_outreach")

	temp := g.cfg.Temperature
	resp, err := resilience.DoVal(ctx, retry, func(ctx context.Context) (*anthropic.MessageResponse, error) {
		return g.client.CreateMessage(ctx, anthropic.MessageRequest{
			Model:       g.cfg.Model,
			MaxTokens:   g.cfg.MaxTokens,
			System:      generatorSystemPrompt,
			Temperature: &temp,
			Messages:    []anthropic.Message{{Role: "user", Content: buildDraftPrompt(pc)}},
		})
	})
	if err != nil {
		return model.OutreachDraft{}, eris.Wrap(ErrGenerationFailed, err.Error())
	}
	resp.Usage.Log(g.cfg.Model, "draft_outreach")

	draft, err := parseDraftJSON(resp.Text())
	if err != nil {
		return model.OutreachDraft{}, eris.Wrap(ErrGenerationFailed, err.Error())
	}
	return draft, nil
}

func buildDraftPrompt(pc PromptContext) string {
	recipient := "the business owner"
	if pc.DecisionMakerName != "" {
		recipient = pc.DecisionMakerName
		if pc.DecisionMakerRole != "" {
			recipient = fmt.Sprintf("%s (%s)", pc.DecisionMakerName, pc.DecisionMakerRole)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Write a cold outreach email to %s at %s, a %s business in %s.\n\n",
		recipient, pc.CompanyName, pc.Industry, pc.Location)
	fmt.Fprintf(&b, "We are pitching: %s.\n", pc.Service)
	fmt.Fprintf(&b, "Why they scored %d/100 as a lead: %s\n\n", pc.Score, pc.Reason)
	b.WriteString(`Structure: problem (grounded in the scoring rationale above), agitate briefly, then our solution and a soft call to action for a 15-minute call. Under 150 words. No pricing, no attachments, no pushy language.

Output strictly a JSON object, no prose, no markdown fences:
{"subject": "", "body": ""}`)
	return b.String()
}

// parseDraftJSON extracts the JSON object from model output that may be
// wrapped in markdown fences or surrounding prose.
func parseDraftJSON(text string) (model.OutreachDraft, error) {
	cleaned := cleanJSONObject(text)
	if cleaned == "" {
		return model.OutreachDraft{}, eris.New("outreach: no JSON object in model output")
	}

	var draft model.OutreachDraft
	if err := json.Unmarshal([]byte(cleaned), &draft); err != nil {
		return model.OutreachDraft{}, eris.Wrap(err, "outreach: unmarshal draft")
	}
	if strings.TrimSpace(draft.Subject) == "" || strings.TrimSpace(draft.Body) == "" {
		return model.OutreachDraft{}, eris.New("outreach: draft missing subject or body")
	}
	return draft, nil
}

func cleanJSONObject(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return ""
	}
	return strings.TrimSpace(text[start : end+1])
}
