package scorer

import (
	"net/url"
	"strings"

	"github.com/leadintel/leadscan/internal/model"
)

// Signals is the normalized input tuple for scoring, derived from a raw
// business record of unknown shape.
type Signals struct {
	Rating        float64 `json:"rating"`
	ReviewCount   int     `json:"review_count"`
	HasWebsite    bool    `json:"has_website"`
	WebsiteDomain string  `json:"website_domain,omitempty"`
}

// Normalize extracts canonical signals from a raw record. It never fails:
// absent numeric fields default to zero and a website URL that does not
// parse as an absolute http/https URL is treated as absent. Upstream
// sources are unreliable, so candidates are not dropped here; explicit
// rejection happens later in the synthesizer's acceptance filter.
func Normalize(raw model.RawBusinessRecord) Signals {
	sig := Signals{}
	if raw.Rating != nil {
		sig.Rating = *raw.Rating
	}
	if raw.ReviewCount != nil {
		sig.ReviewCount = *raw.ReviewCount
	}
	if domain, ok := WebsiteDomain(raw.WebsiteURL); ok {
		sig.HasWebsite = true
		sig.WebsiteDomain = domain
	}
	return sig
}

// WebsiteDomain returns the registrable host of an absolute http/https
// URL, with any "www." prefix stripped. ok is false for anything that
// does not parse as such a URL.
func WebsiteDomain(rawURL string) (domain string, ok bool) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", false
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", false
	}
	host := u.Hostname()
	if host == "" || !strings.Contains(host, ".") {
		return "", false
	}
	return strings.TrimPrefix(host, "www."), true
}
