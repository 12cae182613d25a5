// Package session holds the in-memory state of one working session: the
// current lead snapshot, saved-lead marks, and per-lead outreach drafts.
// Nothing here persists; closing the process discards the session.
package session

import (
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/leadintel/leadscan/internal/model"
)

// ErrNotFound indicates the referenced lead is not in the current
// snapshot.
var ErrNotFound = eris.New("session: lead not found")

// Store is a concurrency-safe session state container. Scans are
// sequenced: each Begin invalidates all earlier in-flight scans, and a
// stale Complete is discarded so a slow old scan can never clobber the
// results of a newer one.
type Store struct {
	mu sync.Mutex

	scanSeq  uint64
	params   model.SearchParams
	leads    []model.Lead
	byID     map[string]int
	saved    map[string]bool
	drafts   map[string]model.OutreachDraft
	scanning bool
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{
		byID:   make(map[string]int),
		saved:  make(map[string]bool),
		drafts: make(map[string]model.OutreachDraft),
	}
}

// BeginScan marks a new scan in flight and returns its sequence token.
// Any scan begun earlier becomes stale immediately.
func (s *Store) BeginScan(params model.SearchParams) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.scanSeq++
	s.params = params
	s.scanning = true
	return s.scanSeq
}

// CompleteScan installs a scan's results. It returns false, changing
// nothing, when the token does not belong to the most recent BeginScan.
// On install, saved marks and drafts for leads absent from the new
// snapshot are pruned.
func (s *Store) CompleteScan(token uint64, leads []model.Lead) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token != s.scanSeq {
		zap.L().Debug("stale scan discarded",
			zap.Uint64("token", token),
			zap.Uint64("current", s.scanSeq),
		)
		return false
	}

	s.leads = make([]model.Lead, len(leads))
	copy(s.leads, leads)
	s.byID = make(map[string]int, len(leads))
	for i, lead := range leads {
		s.byID[lead.ID] = i
	}

	for id := range s.saved {
		if _, ok := s.byID[id]; !ok {
			delete(s.saved, id)
		}
	}
	for id := range s.drafts {
		if _, ok := s.byID[id]; !ok {
			delete(s.drafts, id)
		}
	}

	s.scanning = false
	return true
}

// FailScan clears the in-flight flag for a scan that ended without
// results. A stale token is ignored.
func (s *Store) FailScan(token uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token == s.scanSeq {
		s.scanning = false
	}
}

// Scanning reports whether the most recent scan is still in flight.
func (s *Store) Scanning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scanning
}

// Params returns the parameters of the most recent scan.
func (s *Store) Params() model.SearchParams {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.params
}

// Leads returns a copy of the current snapshot.
func (s *Store) Leads() []model.Lead {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Lead, len(s.leads))
	copy(out, s.leads)
	return out
}

// Lead returns the lead with the given ID.
func (s *Store) Lead(id string) (model.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.byID[id]
	if !ok {
		return model.Lead{}, eris.Wrapf(ErrNotFound, "id %s", id)
	}
	return s.leads[i], nil
}

// Save marks a lead as saved.
func (s *Store) Save(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return eris.Wrapf(ErrNotFound, "id %s", id)
	}
	s.saved[id] = true
	return nil
}

// Unsave clears a lead's saved mark. Unsaving an unsaved lead is a
// no-op.
func (s *Store) Unsave(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return eris.Wrapf(ErrNotFound, "id %s", id)
	}
	delete(s.saved, id)
	return nil
}

// SavedIDs returns a copy of the saved-lead set.
func (s *Store) SavedIDs() map[string]bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]bool, len(s.saved))
	for id := range s.saved {
		out[id] = true
	}
	return out
}

// SetDraft stores the outreach draft for a lead, replacing any earlier
// one.
func (s *Store) SetDraft(id string, draft model.OutreachDraft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return eris.Wrapf(ErrNotFound, "id %s", id)
	}
	s.drafts[id] = draft
	return nil
}

// Draft returns the stored draft for a lead, if any.
func (s *Store) Draft(id string) (model.OutreachDraft, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	draft, ok := s.drafts[id]
	return draft, ok
}
