// Package source defines the pluggable candidate-business capability and
// its implementations. The synthesizer consumes any BusinessSource; a
// deterministic synthetic source guarantees availability when every
// external integration is down or unconfigured.
package source

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/leadintel/leadscan/internal/model"
)

// Kind identifies how a source obtains its records, which determines how
// much the synthesizer trusts them. AI-generated text gets extra
// plausibility filtering that structured API results do not need.
type Kind string

const (
	KindAI        Kind = "ai"
	KindAPI       Kind = "api"
	KindSynthetic Kind = "synthetic"
)

// Sentinel errors for the candidate-fetch contract. Both are absorbed by
// the synthesizer via synthetic fallback and never surface to the user.
var (
	// ErrUnavailable indicates a network, auth, or provider failure.
	ErrUnavailable = eris.New("source: unavailable")

	// ErrEmpty indicates the provider legitimately found nothing.
	ErrEmpty = eris.New("source: empty result")
)

// BusinessSource produces raw candidate businesses for a market query.
type BusinessSource interface {
	// FetchCandidates returns unvalidated business records for the given
	// industry and location. Implementations return ErrUnavailable on
	// network or auth failure and ErrEmpty when the provider has nothing.
	FetchCandidates(ctx context.Context, industry, location string) ([]model.RawBusinessRecord, error)

	// Kind reports what class of source this is.
	Kind() Kind
}
