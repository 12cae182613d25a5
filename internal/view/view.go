// Package view is the pure query layer over a lead snapshot: text and
// attribute filters plus a stable sort, with no side effects on the
// input. Callers re-run Apply whenever filters change; the snapshot
// itself never moves.
package view

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/leadintel/leadscan/internal/model"
)

// SortKey selects lead ordering.
type SortKey string

const (
	// SortScoreDesc is the default: hottest leads first.
	SortScoreDesc SortKey = "score-desc"
	SortScoreAsc  SortKey = "score-asc"
	SortNameAsc   SortKey = "name-asc"
)

// ParseSortKey maps a user-supplied string to a SortKey, defaulting to
// score-desc for anything unrecognized.
func ParseSortKey(s string) SortKey {
	switch SortKey(strings.ToLower(strings.TrimSpace(s))) {
	case SortScoreAsc:
		return SortScoreAsc
	case SortNameAsc:
		return SortNameAsc
	default:
		return SortScoreDesc
	}
}

// Filters narrows a lead snapshot. Zero values mean "no constraint".
type Filters struct {
	// Text matches case-insensitively against company name, decision
	// maker name, and industry.
	Text string `json:"text,omitempty"`
	// MinScore keeps leads scoring at or above the threshold.
	MinScore int `json:"min_score,omitempty"`
	// Industry and Location match their fields case-insensitively.
	Industry string `json:"industry,omitempty"`
	Location string `json:"location,omitempty"`
	// SavedOnly keeps only leads whose ID is in the saved set.
	SavedOnly bool `json:"saved_only,omitempty"`
}

// Apply filters and sorts a snapshot, returning a fresh slice. The
// input slice and its order are never modified, and applying the same
// filters twice yields the same result. savedIDs may be nil when
// SavedOnly is false.
func Apply(leads []model.Lead, f Filters, key SortKey, savedIDs map[string]bool) []model.Lead {
	out := make([]model.Lead, 0, len(leads))
	text := strings.ToLower(strings.TrimSpace(f.Text))
	industry := strings.ToLower(strings.TrimSpace(f.Industry))
	location := strings.ToLower(strings.TrimSpace(f.Location))

	for _, lead := range leads {
		if lead.Score < f.MinScore {
			continue
		}
		if industry != "" && strings.ToLower(lead.Industry) != industry {
			continue
		}
		if location != "" && !strings.Contains(strings.ToLower(lead.Location), location) {
			continue
		}
		if f.SavedOnly && !savedIDs[lead.ID] {
			continue
		}
		if text != "" && !matchesText(lead, text) {
			continue
		}
		out = append(out, lead)
	}

	sortLeads(out, key)
	return out
}

func matchesText(lead model.Lead, needle string) bool {
	for _, hay := range []string{
		lead.CompanyName,
		lead.DecisionMaker.Name,
		lead.Industry,
	} {
		if strings.Contains(strings.ToLower(hay), needle) {
			return true
		}
	}
	return false
}

// sortLeads orders in place. Ties break on company name so the order is
// deterministic across runs, then on ID for identically named leads.
func sortLeads(leads []model.Lead, key SortKey) {
	coll := collate.New(language.English, collate.IgnoreCase)

	byName := func(a, b model.Lead) int {
		if c := coll.CompareString(a.CompanyName, b.CompanyName); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	}

	sort.SliceStable(leads, func(i, j int) bool {
		a, b := leads[i], leads[j]
		switch key {
		case SortScoreAsc:
			if a.Score != b.Score {
				return a.Score < b.Score
			}
		case SortNameAsc:
			return byName(a, b) < 0
		default:
			if a.Score != b.Score {
				return a.Score > b.Score
			}
		}
		return byName(a, b) < 0
	})
}
