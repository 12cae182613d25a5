package main

import (
	"go.uber.org/zap"

	"github.com/leadintel/leadscan/internal/config"
	"github.com/leadintel/leadscan/internal/leadgen"
	"github.com/leadintel/leadscan/internal/outreach"
	"github.com/leadintel/leadscan/internal/source"
	"github.com/leadintel/leadscan/internal/synth"
	"github.com/leadintel/leadscan/pkg/anthropic"
	"github.com/leadintel/leadscan/pkg/places"
)

// buildSynthesizer wires the candidate source chain from configuration.
// A places key wins over an Anthropic key; with neither, every scan runs
// on the synthetic generator.
func buildSynthesizer(cfg *config.Config) *leadgen.Synthesizer {
	var src source.BusinessSource
	switch {
	case cfg.Places.Key != "":
		opts := []places.Option{}
		if cfg.Places.BaseURL != "" {
			opts = append(opts, places.WithBaseURL(cfg.Places.BaseURL))
		}
		src = source.NewAPISource(places.NewClient(cfg.Places.Key, opts...))
		zap.L().Info("using places api source")
	case cfg.Anthropic.Key != "":
		src = source.NewAISource(anthropic.NewClient(cfg.Anthropic.Key), cfg.AISource)
		zap.L().Info("using ai source")
	default:
		zap.L().Info("no api keys configured, scans use synthetic data")
	}

	fallback := synth.NewGenerator(cfg.Synth)
	return leadgen.New(src, fallback, cfg.Scoring, cfg.Scan)
}

// buildDrafter wires the outreach drafter. Without an Anthropic key the
// drafter runs on the deterministic template.
func buildDrafter(cfg *config.Config) *outreach.Drafter {
	var gen outreach.TextGenerator
	if cfg.Anthropic.Key != "" {
		gen = outreach.NewAnthropicGenerator(anthropic.NewClient(cfg.Anthropic.Key), cfg.Generator)
	}
	return outreach.NewDrafter(gen, cfg.Scoring, cfg.Outreach)
}
