// Package outreach produces subject/body cold-email drafts for scored
// leads, via a text generator when one is configured and a deterministic
// template otherwise. The template's problem paragraph branches on the
// same review-count and rating cutoffs as the scorer, so the copy never
// contradicts the score rationale shown next to it.
package outreach

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/leadintel/leadscan/internal/model"
	"github.com/leadintel/leadscan/internal/scorer"
)

// ErrGenerationFailed indicates the text generator could not produce a
// usable draft. It is absorbed inside Draft via template fallback and
// exists for logging and tests.
var ErrGenerationFailed = eris.New("outreach: generation failed")

// PromptContext is the structured context handed to a TextGenerator.
type PromptContext struct {
	DecisionMakerName string
	DecisionMakerRole string
	CompanyName       string
	Industry          string
	Location          string
	Reason            string
	Score             int
	Service           string
}

// TextGenerator produces a draft from a prompt context.
type TextGenerator interface {
	Complete(ctx context.Context, pc PromptContext) (model.OutreachDraft, error)
}

// Config controls drafting behavior.
type Config struct {
	// GenerateTimeoutSecs bounds the generator call before the template
	// fallback takes over.
	GenerateTimeoutSecs int `yaml:"generate_timeout_secs" mapstructure:"generate_timeout_secs"`
}

// DefaultConfig returns the shipped drafting settings.
func DefaultConfig() Config {
	return Config{GenerateTimeoutSecs: 30}
}

// Drafter creates outreach drafts. A nil generator means every draft
// comes from the template.
type Drafter struct {
	generator TextGenerator
	scoring   scorer.Config
	cfg       Config
}

// NewDrafter creates a Drafter.
func NewDrafter(generator TextGenerator, scoring scorer.Config, cfg Config) *Drafter {
	if cfg.GenerateTimeoutSecs <= 0 {
		cfg.GenerateTimeoutSecs = DefaultConfig().GenerateTimeoutSecs
	}
	return &Drafter{generator: generator, scoring: scoring, cfg: cfg}
}

// Draft produces an outreach draft for the lead. It never fails: any
// generator problem falls back to the deterministic template, so the
// caller always receives a usable draft.
func (d *Drafter) Draft(ctx context.Context, lead model.Lead, service string) model.OutreachDraft {
	if d.generator != nil {
		genCtx, cancel := context.WithTimeout(ctx, time.Duration(d.cfg.GenerateTimeoutSecs)*time.Second)
		defer cancel()

		draft, err := d.generator.Complete(genCtx, PromptContext{
			DecisionMakerName: lead.DecisionMaker.Name,
			DecisionMakerRole: lead.DecisionMaker.Role,
			CompanyName:       lead.CompanyName,
			Industry:          lead.Industry,
			Location:          lead.Location,
			Reason:            lead.Reason,
			Score:             lead.Score,
			Service:           service,
		})
		if err == nil && draft.Subject != "" && draft.Body != "" {
			return draft
		}
		zap.L().Warn("draft generation failed, using template",
			zap.String("company", lead.CompanyName),
			zap.Error(err),
		)
	}

	return TemplateDraft(lead, service, d.scoring)
}

// TemplateDraft is the deterministic fallback: a short problem-agitate-
// solution email whose hook quotes the lead's scoring reason.
func TemplateDraft(lead model.Lead, service string, scoring scorer.Config) model.OutreachDraft {
	greeting := "Hi there,"
	if first := strings.Fields(lead.DecisionMaker.Name); len(first) > 0 {
		greeting = fmt.Sprintf("Hi %s,", first[0])
	}

	hook := fmt.Sprintf("I was researching %s businesses in %s and %s stood out: %s",
		lead.Industry, lead.Location, lead.CompanyName, lowerFirst(lead.Reason))

	// Mirror the scorer's branch order so the pain point named here is
	// the one behind the score.
	var problem string
	switch {
	case lead.ReviewCount < scoring.LowReviewThreshold:
		problem = fmt.Sprintf("With only %d reviews, most of your prospective customers never find you — they go to whoever shows up first.",
			lead.ReviewCount)
	case lead.GoogleRating < scoring.LowRatingReputation:
		problem = fmt.Sprintf("A %.1f-star average quietly filters out the customers who compare options before calling.",
			lead.GoogleRating)
	default:
		problem = fmt.Sprintf("Even established %s businesses leave growth on the table when their online presence runs on autopilot.",
			strings.ToLower(lead.Industry))
	}

	solution := fmt.Sprintf("We help companies like yours with %s — typically a 20-30%% lift in qualified inquiries within a quarter.",
		service)

	body := strings.Join([]string{
		greeting,
		"",
		hook,
		"",
		problem,
		"",
		solution,
		"",
		"Would you be open to a 15-minute chat next week to walk through what I found?",
		"",
		"Best regards,",
		"[Your Name]",
	}, "\n")

	return model.OutreachDraft{
		Subject: fmt.Sprintf("Idea for %s", lead.CompanyName),
		Body:    body,
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return "their local profile caught my eye."
	}
	r := []rune(s)
	r[0] = []rune(strings.ToLower(string(r[0])))[0]
	return string(r)
}
