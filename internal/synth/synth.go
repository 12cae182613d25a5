// Package synth is the fallback data source: a deterministic-distribution
// generator of plausible businesses used when no live provider is
// available. Its output flows through the same normalization and scoring
// as real data, so scoring behavior is identical regardless of
// provenance.
package synth

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"go.uber.org/zap"

	"github.com/leadintel/leadscan/internal/model"
	"github.com/leadintel/leadscan/internal/source"
)

// Config controls the generated batch shape. The sampling distribution is
// where batch-level score diversity comes from; the scorer itself stays
// deterministic.
type Config struct {
	MinCount           int     `yaml:"min_count" mapstructure:"min_count"`
	MaxCount           int     `yaml:"max_count" mapstructure:"max_count"`
	MinRating          float64 `yaml:"min_rating" mapstructure:"min_rating"`
	MaxRating          float64 `yaml:"max_rating" mapstructure:"max_rating"`
	MinReviews         int     `yaml:"min_reviews" mapstructure:"min_reviews"`
	MaxReviews         int     `yaml:"max_reviews" mapstructure:"max_reviews"`
	WebsiteProbability float64 `yaml:"website_probability" mapstructure:"website_probability"`
}

// DefaultConfig returns the shipped generator distribution.
func DefaultConfig() Config {
	return Config{
		MinCount:           10,
		MaxCount:           15,
		MinRating:          3.5,
		MaxRating:          5.0,
		MinReviews:         2,
		MaxReviews:         150,
		WebsiteProbability: 0.9,
	}
}

var namePrefixes = []string{
	"Summit", "Lakeside", "Premier", "Bluebonnet", "Heritage", "Golden Oak",
	"Riverbend", "Cornerstone", "Bright", "Evergreen", "Northside", "Metro",
	"Family First", "Clearview", "Redwood", "Harbor",
}

var nameSuffixes = []string{
	"Group", "Partners", "Associates", "Co", "Studio", "Works",
	"Solutions", "Center", "Collective", "& Sons",
}

var firstNames = []string{
	"Maria", "James", "Priya", "Daniel", "Aisha", "Robert", "Elena",
	"Marcus", "Linh", "Sofia", "Omar", "Rachel", "Victor", "Hannah",
}

var lastNames = []string{
	"Garcia", "Okafor", "Nguyen", "Thompson", "Patel", "Kowalski",
	"Reyes", "Anderson", "Haddad", "Brooks", "Ivanov", "Flores",
}

var roles = []string{"Owner", "Founder", "Co-Founder", "Managing Director", "General Manager"}

// Generator produces synthetic candidate businesses. It implements
// source.BusinessSource and never fails.
type Generator struct {
	cfg Config
	rng *rand.Rand
}

// NewGenerator creates a Generator seeded from the system source.
func NewGenerator(cfg Config) *Generator {
	return &Generator{cfg: normalizeConfig(cfg), rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

// NewSeededGenerator creates a Generator with a fixed seed. Tests use
// this to make batches reproducible.
func NewSeededGenerator(cfg Config, seed uint64) *Generator {
	return &Generator{cfg: normalizeConfig(cfg), rng: rand.New(rand.NewPCG(seed, seed))}
}

func normalizeConfig(cfg Config) Config {
	def := DefaultConfig()
	if cfg.MinCount <= 0 {
		cfg.MinCount = def.MinCount
	}
	if cfg.MaxCount < cfg.MinCount {
		cfg.MaxCount = cfg.MinCount
	}
	if cfg.MaxRating <= cfg.MinRating {
		cfg.MinRating, cfg.MaxRating = def.MinRating, def.MaxRating
	}
	if cfg.MaxReviews <= cfg.MinReviews {
		cfg.MinReviews, cfg.MaxReviews = def.MinReviews, def.MaxReviews
	}
	if cfg.WebsiteProbability <= 0 || cfg.WebsiteProbability > 1 {
		cfg.WebsiteProbability = def.WebsiteProbability
	}
	return cfg
}

func (g *Generator) Kind() source.Kind { return source.KindSynthetic }

// FetchCandidates assembles a batch of plausible businesses for the
// given market. It has no external dependencies and always succeeds.
func (g *Generator) FetchCandidates(_ context.Context, industry, location string) ([]model.RawBusinessRecord, error) {
	count := g.cfg.MinCount
	if g.cfg.MaxCount > g.cfg.MinCount {
		count += g.rng.IntN(g.cfg.MaxCount - g.cfg.MinCount + 1)
	}

	seen := make(map[string]bool, count)
	records := make([]model.RawBusinessRecord, 0, count)
	for len(records) < count {
		rec := g.generateOne(industry, location)
		key := strings.ToLower(rec.Name)
		if seen[key] {
			continue
		}
		seen[key] = true
		records = append(records, rec)
	}

	zap.L().Debug("synthetic batch generated",
		zap.String("industry", industry),
		zap.String("location", location),
		zap.Int("count", len(records)),
	)
	return records, nil
}

func (g *Generator) generateOne(industry, location string) model.RawBusinessRecord {
	prefix := namePrefixes[g.rng.IntN(len(namePrefixes))]
	suffix := nameSuffixes[g.rng.IntN(len(nameSuffixes))]
	name := fmt.Sprintf("%s %s %s", prefix, industry, suffix)

	rating := g.cfg.MinRating + g.rng.Float64()*(g.cfg.MaxRating-g.cfg.MinRating)
	rating = float64(int(rating*10)) / 10 // one decimal, like directory listings
	reviews := g.cfg.MinReviews + g.rng.IntN(g.cfg.MaxReviews-g.cfg.MinReviews+1)

	rec := model.RawBusinessRecord{
		Name:          name,
		Address:       fmt.Sprintf("%d %s St, %s", 100+g.rng.IntN(9800), prefix, location),
		Rating:        &rating,
		ReviewCount:   &reviews,
		Phone:         fmt.Sprintf("(%03d) 555-%04d", 200+g.rng.IntN(700), g.rng.IntN(10000)),
		LocationLabel: location,
		Size:          []string{"1-10", "11-50", "51-200"}[g.rng.IntN(3)],
	}

	if g.rng.Float64() < g.cfg.WebsiteProbability {
		rec.WebsiteURL = "https://www." + slugify(name) + ".com"
	}

	if g.rng.Float64() < 0.8 {
		rec.DecisionMakerName = firstNames[g.rng.IntN(len(firstNames))] + " " + lastNames[g.rng.IntN(len(lastNames))]
		rec.DecisionMakerRole = roles[g.rng.IntN(len(roles))]
	}

	return rec
}

// slugify lowercases a company name and strips everything but letters
// and digits, producing a plausible domain label.
func slugify(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
