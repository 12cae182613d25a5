// Package model holds the shared domain types: raw candidate records as
// sources deliver them, and the scored Lead shape the rest of the system
// works with.
package model

// DecisionMaker identifies the contact a draft would be addressed to.
// Email is always a pattern prediction, never a verified address.
type DecisionMaker struct {
	Name  string `json:"name"`
	Role  string `json:"role"`
	Email string `json:"email"`
}

// ScoreBreakdown exposes the per-component scores behind a lead's final
// score. SEOIssues is an opportunity score: higher means more room for
// the pitched service to help, not a healthier site. GrowthSignals is
// informational only and carries no weight in the final score.
type ScoreBreakdown struct {
	OnlinePresence float64 `json:"online_presence"`
	WebsiteQuality float64 `json:"website_quality"`
	SEOIssues      float64 `json:"seo_issues"`
	GrowthSignals  float64 `json:"growth_signals"`
	Relevancy      float64 `json:"relevancy"`
}

// Lead is one scored prospect.
type Lead struct {
	ID             string         `json:"id"`
	CompanyName    string         `json:"company_name"`
	WebsiteURL     string         `json:"website_url,omitempty"`
	Industry       string         `json:"industry"`
	Location       string         `json:"location"`
	Address        string         `json:"address,omitempty"`
	GoogleRating   float64        `json:"google_rating"`
	ReviewCount    int            `json:"review_count"`
	Size           string         `json:"size,omitempty"`
	DecisionMaker  DecisionMaker  `json:"decision_maker"`
	Phone          string         `json:"phone,omitempty"`
	Score          int            `json:"score"`
	ScoreBreakdown ScoreBreakdown `json:"score_breakdown"`
	Reason         string         `json:"reason"`
}

// RawBusinessRecord is an unvalidated candidate as a source delivered
// it. Numeric fields are pointers so an absent field is distinguishable
// from a zero value; normalization decides what absence means.
type RawBusinessRecord struct {
	Name              string   `json:"name"`
	Address           string   `json:"address,omitempty"`
	Rating            *float64 `json:"rating,omitempty"`
	ReviewCount       *int     `json:"review_count,omitempty"`
	WebsiteURL        string   `json:"website_url,omitempty"`
	Phone             string   `json:"phone,omitempty"`
	LocationLabel     string   `json:"location_label,omitempty"`
	DecisionMakerName string   `json:"decision_maker_name,omitempty"`
	DecisionMakerRole string   `json:"decision_maker_role,omitempty"`
	Size              string   `json:"size,omitempty"`
}

// OutreachDraft is a generated cold-email draft for one lead.
type OutreachDraft struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}
