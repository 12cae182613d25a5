// Package leadgen orchestrates one scan: fetch raw candidates from a
// business source, normalize and score each one, and assemble the
// accepted Lead records. Upstream failures degrade to the synthetic
// generator so a scan always yields a best-effort, non-empty result.
package leadgen

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/leadintel/leadscan/internal/model"
	"github.com/leadintel/leadscan/internal/scorer"
	"github.com/leadintel/leadscan/internal/source"
)

// Config controls synthesizer behavior.
type Config struct {
	// FetchTimeoutSecs bounds the external candidate fetch. On expiry
	// the scan falls back to the synthetic generator instead of hanging.
	FetchTimeoutSecs int `yaml:"fetch_timeout_secs" mapstructure:"fetch_timeout_secs"`
}

// DefaultConfig returns the shipped synthesizer settings.
func DefaultConfig() Config {
	return Config{FetchTimeoutSecs: 45}
}

// placeholderPatterns match obviously fabricated company names. Only
// applied to AI-text sources; structured directories don't invent
// "Company 3".
var placeholderPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^test(\s|$)`),
	regexp.MustCompile(`(?i)^demo(\s|$)`),
	regexp.MustCompile(`(?i)^sample(\s|$)`),
	regexp.MustCompile(`(?i)^(company|business)\s*#?\d+$`),
	regexp.MustCompile(`(?i)\bacme\b`),
	regexp.MustCompile(`(?i)\bplaceholder\b`),
}

// Synthesizer turns a search request into scored leads.
type Synthesizer struct {
	src      source.BusinessSource
	fallback source.BusinessSource
	scoring  scorer.Config
	cfg      Config
}

// New creates a Synthesizer. src may be nil, in which case every scan
// uses the fallback directly. fallback must never be nil; it is the
// availability guarantee behind each scan.
func New(src, fallback source.BusinessSource, scoring scorer.Config, cfg Config) *Synthesizer {
	if cfg.FetchTimeoutSecs <= 0 {
		cfg.FetchTimeoutSecs = DefaultConfig().FetchTimeoutSecs
	}
	return &Synthesizer{src: src, fallback: fallback, scoring: scoring, cfg: cfg}
}

// Synthesize runs one scan. The input params are never mutated, and a
// fresh Lead slice is returned on every call. It fails only when the
// fallback generator itself fails, which has no external dependencies
// and indicates a bug rather than a runtime condition.
func (s *Synthesizer) Synthesize(ctx context.Context, params model.SearchParams) ([]model.Lead, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	log := zap.L().With(
		zap.String("industry", params.Industry),
		zap.String("location", params.Location),
	)

	if s.src != nil {
		leads, ok := s.tryExternal(ctx, params, log)
		if ok {
			return leads, nil
		}
	}

	records, err := s.fallback.FetchCandidates(ctx, params.Industry, params.Location)
	if err != nil {
		return nil, eris.Wrap(err, "leadgen: synthetic fallback")
	}
	leads := s.assemble(params, records, s.fallback.Kind(), log)
	if len(leads) == 0 {
		return nil, eris.New("leadgen: synthetic fallback produced no leads")
	}

	log.Info("scan complete via synthetic fallback", zap.Int("leads", len(leads)))
	return leads, nil
}

// tryExternal fetches and assembles from the configured source. ok is
// false whenever the fallback should take over.
func (s *Synthesizer) tryExternal(ctx context.Context, params model.SearchParams, log *zap.Logger) ([]model.Lead, bool) {
	fetchCtx, cancel := context.WithTimeout(ctx, time.Duration(s.cfg.FetchTimeoutSecs)*time.Second)
	defer cancel()

	records, err := s.src.FetchCandidates(fetchCtx, params.Industry, params.Location)
	if err != nil {
		switch {
		case eris.Is(err, source.ErrEmpty):
			log.Info("source returned no candidates, falling back")
		case eris.Is(err, source.ErrUnavailable):
			log.Warn("source unavailable, falling back", zap.Error(err))
		default:
			log.Warn("source fetch failed, falling back", zap.Error(err))
		}
		return nil, false
	}

	leads := s.assemble(params, records, s.src.Kind(), log)
	if len(leads) == 0 {
		log.Warn("no usable candidates from source, falling back",
			zap.Int("raw_candidates", len(records)),
		)
		return nil, false
	}

	log.Info("scan complete",
		zap.String("source_kind", string(s.src.Kind())),
		zap.Int("raw_candidates", len(records)),
		zap.Int("leads", len(leads)),
	)
	return leads, true
}

// assemble runs the acceptance filter and per-candidate scoring pass.
// Rejections are counted and logged, never surfaced.
func (s *Synthesizer) assemble(params model.SearchParams, records []model.RawBusinessRecord, kind source.Kind, log *zap.Logger) []model.Lead {
	var malformed, placeholders, duplicates int
	seen := make(map[string]bool, len(records))
	leads := make([]model.Lead, 0, len(records))

	for _, raw := range records {
		name := strings.TrimSpace(raw.Name)
		if name == "" {
			malformed++
			continue
		}

		// A present-but-broken website is rejected here; the normalizer
		// alone would silently treat it as absent and overstate the
		// candidate's SEO opportunity.
		website := strings.TrimSpace(raw.WebsiteURL)
		if website != "" {
			if _, ok := scorer.WebsiteDomain(website); !ok {
				malformed++
				continue
			}
		}

		if kind == source.KindAI && isPlaceholderName(name) {
			placeholders++
			continue
		}

		key := strings.ToLower(name)
		if seen[key] {
			duplicates++
			continue
		}
		seen[key] = true

		sig := scorer.Normalize(raw)
		result := scorer.Score(sig, params, s.scoring)
		leads = append(leads, buildLead(params, raw, name, website, sig, result))
	}

	if malformed+placeholders+duplicates > 0 {
		log.Debug("candidates rejected",
			zap.Int("malformed", malformed),
			zap.Int("placeholder", placeholders),
			zap.Int("duplicate", duplicates),
		)
	}
	return leads
}

func buildLead(params model.SearchParams, raw model.RawBusinessRecord, name, website string, sig scorer.Signals, result scorer.Result) model.Lead {
	location := raw.LocationLabel
	if location == "" {
		location = params.Location
	}

	dmName := strings.TrimSpace(raw.DecisionMakerName)
	dmRole := strings.TrimSpace(raw.DecisionMakerRole)
	if dmName != "" && dmRole == "" {
		dmRole = "Owner"
	}

	return model.Lead{
		ID:           uuid.New().String(),
		CompanyName:  name,
		WebsiteURL:   website,
		Industry:     params.Industry,
		Location:     location,
		Address:      raw.Address,
		GoogleRating: sig.Rating,
		ReviewCount:  sig.ReviewCount,
		Size:         raw.Size,
		DecisionMaker: model.DecisionMaker{
			Name:  dmName,
			Role:  dmRole,
			Email: PredictEmail(sig.WebsiteDomain, dmName),
		},
		Phone:          raw.Phone,
		Score:          result.Score,
		ScoreBreakdown: result.Breakdown,
		Reason:         result.Reason,
	}
}

func isPlaceholderName(name string) bool {
	for _, p := range placeholderPatterns {
		if p.MatchString(name) {
			return true
		}
	}
	return false
}
