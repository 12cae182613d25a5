package scorer

import "github.com/rotisserie/eris"

// Config holds the scoring weights and keyword-dispatch thresholds.
// These are product-tuning constants, not invariants: they are loaded
// from configuration and may be adjusted without code changes.
type Config struct {
	OnlinePresenceWeight float64 `yaml:"online_presence_weight" mapstructure:"online_presence_weight"`
	WebsiteQualityWeight float64 `yaml:"website_quality_weight" mapstructure:"website_quality_weight"`
	SEOOpportunityWeight float64 `yaml:"seo_opportunity_weight" mapstructure:"seo_opportunity_weight"`
	RelevancyWeight      float64 `yaml:"relevancy_weight" mapstructure:"relevancy_weight"`

	// LowReviewThreshold is the review count below which a business is
	// considered to have weak online visibility.
	LowReviewThreshold int `yaml:"low_review_threshold" mapstructure:"low_review_threshold"`

	// LowRatingSEO is the rating cutoff for the SEO/marketing branch.
	LowRatingSEO float64 `yaml:"low_rating_seo" mapstructure:"low_rating_seo"`

	// LowRatingReputation is the rating cutoff for the reputation branch.
	LowRatingReputation float64 `yaml:"low_rating_reputation" mapstructure:"low_rating_reputation"`
}

// DefaultConfig returns the shipped scoring configuration.
func DefaultConfig() Config {
	return Config{
		OnlinePresenceWeight: 0.15,
		WebsiteQualityWeight: 0.15,
		SEOOpportunityWeight: 0.20,
		RelevancyWeight:      0.50,
		LowReviewThreshold:   20,
		LowRatingSEO:         4.0,
		LowRatingReputation:  4.2,
	}
}

// ValidateConfig rejects configurations that cannot produce a 0-100 score.
func ValidateConfig(cfg Config) error {
	weights := []struct {
		name string
		v    float64
	}{
		{"online_presence_weight", cfg.OnlinePresenceWeight},
		{"website_quality_weight", cfg.WebsiteQualityWeight},
		{"seo_opportunity_weight", cfg.SEOOpportunityWeight},
		{"relevancy_weight", cfg.RelevancyWeight},
	}
	var sum float64
	for _, w := range weights {
		if w.v < 0 {
			return eris.Errorf("scorer: %s must not be negative (got %g)", w.name, w.v)
		}
		sum += w.v
	}
	if sum <= 0 {
		return eris.New("scorer: weights must sum to a positive value")
	}
	if sum > 1.0001 {
		return eris.Errorf("scorer: weights must sum to at most 1.0 (got %g)", sum)
	}
	if cfg.LowReviewThreshold < 0 {
		return eris.Errorf("scorer: low_review_threshold must not be negative (got %d)", cfg.LowReviewThreshold)
	}
	return nil
}
