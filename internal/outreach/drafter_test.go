package outreach

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadintel/leadscan/internal/model"
	"github.com/leadintel/leadscan/internal/scorer"
)

// stubGenerator returns a canned draft or error.
type stubGenerator struct {
	draft model.OutreachDraft
	err   error
	calls int
}

func (s *stubGenerator) Complete(_ context.Context, _ PromptContext) (model.OutreachDraft, error) {
	s.calls++
	return s.draft, s.err
}

func sampleLead() model.Lead {
	return model.Lead{
		ID:           "lead-1",
		CompanyName:  "Apex Dental",
		WebsiteURL:   "https://apexdental.com",
		Industry:     "Dental",
		Location:     "Austin, TX",
		GoogleRating: 3.9,
		ReviewCount:  8,
		DecisionMaker: model.DecisionMaker{
			Name: "Sarah Chen",
			Role: "Owner",
		},
		Score:  79,
		Reason: "Only 8 Google reviews signals weak search visibility, a clear opening for SEO & Content Marketing.",
	}
}

func TestDraftUsesGenerator(t *testing.T) {
	gen := &stubGenerator{draft: model.OutreachDraft{Subject: "Quick idea", Body: "Hi Sarah..."}}
	d := NewDrafter(gen, scorer.DefaultConfig(), DefaultConfig())

	draft := d.Draft(context.Background(), sampleLead(), "SEO & Content Marketing")

	assert.Equal(t, "Quick idea", draft.Subject)
	assert.Equal(t, "Hi Sarah...", draft.Body)
	assert.Equal(t, 1, gen.calls)
}

func TestDraftFallsBackOnGeneratorError(t *testing.T) {
	gen := &stubGenerator{err: ErrGenerationFailed}
	d := NewDrafter(gen, scorer.DefaultConfig(), DefaultConfig())

	draft := d.Draft(context.Background(), sampleLead(), "SEO & Content Marketing")

	assert.NotEmpty(t, draft.Subject)
	assert.NotEmpty(t, draft.Body)
	assert.Contains(t, draft.Subject, "Apex Dental")
}

func TestDraftFallsBackOnEmptyDraft(t *testing.T) {
	gen := &stubGenerator{draft: model.OutreachDraft{Subject: "Quick idea"}} // no body
	d := NewDrafter(gen, scorer.DefaultConfig(), DefaultConfig())

	draft := d.Draft(context.Background(), sampleLead(), "SEO & Content Marketing")
	assert.Contains(t, draft.Subject, "Apex Dental")
	assert.NotEmpty(t, draft.Body)
}

func TestDraftWithoutGeneratorUsesTemplate(t *testing.T) {
	d := NewDrafter(nil, scorer.DefaultConfig(), DefaultConfig())

	draft := d.Draft(context.Background(), sampleLead(), "SEO & Content Marketing")

	assert.Equal(t, "Idea for Apex Dental", draft.Subject)
	assert.Contains(t, draft.Body, "Hi Sarah,")
	assert.Contains(t, draft.Body, "only 8 Google reviews")
	assert.Contains(t, draft.Body, "SEO & Content Marketing")
}

func TestTemplateDraftProblemBranches(t *testing.T) {
	cfg := scorer.DefaultConfig()

	tests := []struct {
		name    string
		rating  float64
		reviews int
		want    string
	}{
		{"few reviews", 4.8, 5, "only 5 reviews"},
		{"weak rating", 3.8, 120, "3.8-star average"},
		{"established", 4.7, 120, "autopilot"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lead := sampleLead()
			lead.GoogleRating = tt.rating
			lead.ReviewCount = tt.reviews

			draft := TemplateDraft(lead, "SEO services", cfg)
			assert.Contains(t, strings.ToLower(draft.Body), strings.ToLower(tt.want))
		})
	}
}

func TestTemplateDraftQuotesReason(t *testing.T) {
	lead := sampleLead()
	draft := TemplateDraft(lead, "SEO services", scorer.DefaultConfig())
	assert.Contains(t, draft.Body, "weak search visibility")
}

func TestTemplateDraftWithoutDecisionMaker(t *testing.T) {
	lead := sampleLead()
	lead.DecisionMaker = model.DecisionMaker{}

	draft := TemplateDraft(lead, "SEO services", scorer.DefaultConfig())
	assert.Contains(t, draft.Body, "Hi there,")
}

func TestTemplateDraftDeterministic(t *testing.T) {
	lead := sampleLead()
	first := TemplateDraft(lead, "SEO services", scorer.DefaultConfig())
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, TemplateDraft(lead, "SEO services", scorer.DefaultConfig()))
	}
}

func TestParseDraftJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    model.OutreachDraft
		wantErr bool
	}{
		{
			name:  "plain object",
			input: `{"subject": "Hello", "body": "World"}`,
			want:  model.OutreachDraft{Subject: "Hello", Body: "World"},
		},
		{
			name:  "fenced object",
			input: "```json\n{\"subject\": \"Hello\", \"body\": \"World\"}\n```",
			want:  model.OutreachDraft{Subject: "Hello", Body: "World"},
		},
		{
			name:  "surrounding prose",
			input: "Here is your draft:\n{\"subject\": \"Hello\", \"body\": \"World\"}\nLet me know!",
			want:  model.OutreachDraft{Subject: "Hello", Body: "World"},
		},
		{name: "no object", input: "sorry, I cannot help", wantErr: true},
		{name: "missing body", input: `{"subject": "Hello"}`, wantErr: true},
		{name: "invalid json", input: `{"subject": }`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDraftJSON(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
