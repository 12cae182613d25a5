package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadintel/leadscan/internal/model"
)

func snapshot() []model.Lead {
	return []model.Lead{
		{ID: "a", CompanyName: "Zenith Dental", Industry: "Dental", Location: "Austin, TX", Score: 82,
			DecisionMaker: model.DecisionMaker{Name: "Sarah Chen"}},
		{ID: "b", CompanyName: "apex dental", Industry: "Dental", Location: "Austin, TX", Score: 79},
		{ID: "c", CompanyName: "Bright Smiles", Industry: "Dental", Location: "Dallas, TX", Score: 64},
		{ID: "d", CompanyName: "Élan Orthodontics", Industry: "Orthodontics", Location: "Austin, TX", Score: 71},
		{ID: "e", CompanyName: "Lakeside Dental", Industry: "Dental", Location: "Austin, TX", Score: 79},
	}
}

func ids(leads []model.Lead) []string {
	out := make([]string, len(leads))
	for i, l := range leads {
		out[i] = l.ID
	}
	return out
}

func TestApplyDefaultSortScoreDesc(t *testing.T) {
	got := Apply(snapshot(), Filters{}, SortScoreDesc, nil)
	// 79-point tie breaks alphabetically, case-insensitive.
	assert.Equal(t, []string{"a", "b", "e", "d", "c"}, ids(got))
}

func TestApplySortScoreAsc(t *testing.T) {
	got := Apply(snapshot(), Filters{}, SortScoreAsc, nil)
	assert.Equal(t, []string{"c", "d", "b", "e", "a"}, ids(got))
}

func TestApplySortNameAscIgnoresCaseAndAccents(t *testing.T) {
	got := Apply(snapshot(), Filters{}, SortNameAsc, nil)
	// "apex" sorts with the a's despite lowercase; "Élan" sorts with the e's.
	assert.Equal(t, []string{"b", "c", "d", "e", "a"}, ids(got))
}

func TestApplyMinScore(t *testing.T) {
	got := Apply(snapshot(), Filters{MinScore: 75}, SortScoreDesc, nil)
	assert.Equal(t, []string{"a", "b", "e"}, ids(got))
}

func TestApplyTextFilter(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"company name", "zenith", []string{"a"}},
		{"decision maker", "sarah", []string{"a"}},
		{"industry", "orthodontics", []string{"d"}},
		{"location not matched by text", "dallas", []string{}},
		{"no match", "plumbing", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(snapshot(), Filters{Text: tt.text}, SortScoreDesc, nil)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestApplyIndustryAndLocation(t *testing.T) {
	got := Apply(snapshot(), Filters{Industry: "dental", Location: "austin"}, SortScoreDesc, nil)
	assert.Equal(t, []string{"a", "b", "e"}, ids(got))
}

func TestApplySavedOnly(t *testing.T) {
	saved := map[string]bool{"c": true, "e": true}
	got := Apply(snapshot(), Filters{SavedOnly: true}, SortScoreDesc, saved)
	assert.Equal(t, []string{"e", "c"}, ids(got))

	// SavedOnly with an empty set keeps nothing.
	assert.Empty(t, Apply(snapshot(), Filters{SavedOnly: true}, SortScoreDesc, nil))
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	leads := snapshot()
	original := ids(leads)

	_ = Apply(leads, Filters{MinScore: 70}, SortScoreAsc, nil)
	assert.Equal(t, original, ids(leads))
}

func TestApplyIdempotent(t *testing.T) {
	f := Filters{Text: "dental", MinScore: 60}
	first := Apply(snapshot(), f, SortNameAsc, nil)
	second := Apply(first, f, SortNameAsc, nil)
	require.Equal(t, first, second)
}

func TestParseSortKey(t *testing.T) {
	assert.Equal(t, SortScoreDesc, ParseSortKey(""))
	assert.Equal(t, SortScoreDesc, ParseSortKey("score-desc"))
	assert.Equal(t, SortScoreDesc, ParseSortKey("bogus"))
	assert.Equal(t, SortScoreAsc, ParseSortKey("Score-Asc"))
	assert.Equal(t, SortNameAsc, ParseSortKey(" name-asc "))
}
