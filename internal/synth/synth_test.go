package synth

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadintel/leadscan/internal/scorer"
	"github.com/leadintel/leadscan/internal/source"
)

func TestGeneratorBatchShape(t *testing.T) {
	g := NewSeededGenerator(DefaultConfig(), 7)
	records, err := g.FetchCandidates(context.Background(), "Dental", "Austin, TX")
	require.NoError(t, err)

	assert.GreaterOrEqual(t, len(records), 10)
	assert.LessOrEqual(t, len(records), 15)

	seen := make(map[string]bool)
	for _, rec := range records {
		require.NotEmpty(t, rec.Name)
		assert.False(t, seen[strings.ToLower(rec.Name)], "duplicate name %q", rec.Name)
		seen[strings.ToLower(rec.Name)] = true

		require.NotNil(t, rec.Rating)
		assert.GreaterOrEqual(t, *rec.Rating, 3.5)
		assert.LessOrEqual(t, *rec.Rating, 5.0)

		require.NotNil(t, rec.ReviewCount)
		assert.GreaterOrEqual(t, *rec.ReviewCount, 2)
		assert.LessOrEqual(t, *rec.ReviewCount, 150)

		assert.Contains(t, rec.Name, "Dental")
		assert.Equal(t, "Austin, TX", rec.LocationLabel)
	}
}

func TestGeneratorWebsitesParse(t *testing.T) {
	g := NewSeededGenerator(DefaultConfig(), 11)
	records, err := g.FetchCandidates(context.Background(), "Plumbing & Heating", "Boise, ID")
	require.NoError(t, err)

	var withSite int
	for _, rec := range records {
		if rec.WebsiteURL == "" {
			continue
		}
		withSite++
		_, ok := scorer.WebsiteDomain(rec.WebsiteURL)
		assert.True(t, ok, "generated website %q must parse", rec.WebsiteURL)
	}
	assert.Greater(t, withSite, 0)
}

func TestGeneratorSeededReproducibility(t *testing.T) {
	a, err := NewSeededGenerator(DefaultConfig(), 42).FetchCandidates(context.Background(), "Legal", "Denver, CO")
	require.NoError(t, err)
	b, err := NewSeededGenerator(DefaultConfig(), 42).FetchCandidates(context.Background(), "Legal", "Denver, CO")
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestGeneratorKind(t *testing.T) {
	assert.Equal(t, source.KindSynthetic, NewGenerator(DefaultConfig()).Kind())
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "goldenoakdentalsons", slugify("Golden Oak Dental & Sons"))
	assert.Equal(t, "metrolegalco", slugify("Metro Legal Co"))
}
