package scorer

import (
	"fmt"
	"math"
	"strings"

	"github.com/leadintel/leadscan/internal/model"
)

// Result is the output of one scoring pass.
type Result struct {
	Score     int                  `json:"score"`
	Breakdown model.ScoreBreakdown `json:"breakdown"`
	Reason    string               `json:"reason"`
}

// Score converts a signal tuple and the pitched service into a 0-100
// lead score, a five-component breakdown, and a one-sentence reason.
//
// The function is deterministic and total: the same inputs always yield
// the same output, and no input can make it fail. Batch-level score
// spread comes from the natural diversity of the input signals, never
// from randomness injected here.
func Score(sig Signals, params model.SearchParams, cfg Config) Result {
	onlinePresence := clampComponent(float64(sig.ReviewCount) / 50 * 100)
	websiteQuality := 10.0
	if sig.HasWebsite {
		websiteQuality = 80.0
	}
	seoOpportunity := 90.0
	if sig.HasWebsite {
		seoOpportunity = 40.0
	}
	growthSignals := clampComponent(float64(sig.ReviewCount) / 10 * 100)

	// Relevancy dominates the final score: a lead's value is driven by
	// how well the pitched service matches their specific gap, not by
	// generic popularity. Keyword dispatch is a rule table, not NLP.
	relevancy := 75.0
	var reason string

	service := strings.ToLower(params.Service)
	switch {
	case strings.Contains(service, "seo") || strings.Contains(service, "marketing"):
		if sig.ReviewCount < cfg.LowReviewThreshold {
			relevancy = 95
			seoOpportunity = 85
			reason = fmt.Sprintf("Only %d Google reviews signals weak search visibility, a clear opening for %s.",
				sig.ReviewCount, params.Service)
		} else {
			seoOpportunity = 40
			if sig.Rating < cfg.LowRatingSEO {
				relevancy = 90
				reason = fmt.Sprintf("A %.1f-star rating despite %d reviews suggests demand is there but marketing isn't converting it.",
					sig.Rating, sig.ReviewCount)
			} else {
				relevancy = 60
				reason = fmt.Sprintf("Established presence with %d reviews at %.1f stars; an upsell rather than a rescue.",
					sig.ReviewCount, sig.Rating)
			}
		}

	case strings.Contains(service, "web") || strings.Contains(service, "design"):
		if sig.HasWebsite {
			relevancy = 50
			reason = fmt.Sprintf("Already operates a website (%s), so the pitch is a redesign rather than a first build.",
				sig.WebsiteDomain)
		} else {
			relevancy = 100
			reason = "No website found at all, which makes them an ideal first-build prospect."
		}

	case strings.Contains(service, "reputation"):
		if sig.Rating < cfg.LowRatingReputation {
			relevancy = 95
			reason = fmt.Sprintf("A %.1f-star average is actively costing them customers; reputation work has immediate payoff.",
				sig.Rating)
		} else {
			relevancy = 40
			reason = fmt.Sprintf("Rating already sits at %.1f stars, so reputation management is a maintenance sell at best.",
				sig.Rating)
		}

	default:
		reason = fmt.Sprintf("Active %s business in %s matching the target profile.",
			params.Industry, params.Location)
	}

	weighted := onlinePresence*cfg.OnlinePresenceWeight +
		websiteQuality*cfg.WebsiteQualityWeight +
		seoOpportunity*cfg.SEOOpportunityWeight +
		relevancy*cfg.RelevancyWeight

	score := int(math.Round(weighted))
	if score < 0 {
		score = 0
	} else if score > 100 {
		score = 100
	}

	return Result{
		Score: score,
		Breakdown: model.ScoreBreakdown{
			OnlinePresence: onlinePresence,
			WebsiteQuality: websiteQuality,
			SEOIssues:      seoOpportunity,
			GrowthSignals:  growthSignals,
			Relevancy:      relevancy,
		},
		Reason: reason,
	}
}

// clampComponent bounds a breakdown component to [0, 100]. Garbage
// upstream data (negative review counts) must not leak out of range.
func clampComponent(v float64) float64 {
	return math.Min(math.Max(v, 0), 100)
}
