package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/leadintel/leadscan/internal/export"
	"github.com/leadintel/leadscan/internal/model"
	"github.com/leadintel/leadscan/internal/outreach"
	"github.com/leadintel/leadscan/internal/view"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan a market for scored leads",
	Long: `Scan fetches candidate businesses for an industry and location,
scores each one against the pitched service, and prints the ranked leads.

With no API keys configured the scan runs on synthetic data, which is the
intended demo mode.

Examples:
  # Scan with inline parameters
  scan --industry Dental --location "Austin, TX" --service "SEO & Content Marketing" --email you@agency.io

  # Scan from a params file
  scan --params scan.yaml

  # Export hot leads to CSV
  scan --params scan.yaml --min-score 75 --format csv --output leads.csv

  # Draft outreach for every lead in the result
  scan --params scan.yaml --drafts 4`,
	RunE: runScan,
}

func init() {
	f := scanCmd.Flags()
	f.String("industry", "", "target industry (e.g. Dental)")
	f.String("location", "", "target market (e.g. \"Austin, TX\")")
	f.String("service", "", "service being pitched (drives relevancy scoring)")
	f.String("email", "", "your contact email for outreach")
	f.String("params", "", "YAML file with industry/location/service/contact_email")
	f.Int("min-score", 0, "drop leads scoring below this threshold")
	f.String("sort", "score-desc", "lead order: score-desc, score-asc, or name-asc")
	f.String("filter", "", "free-text filter over company, contact, and industry")
	f.Int("drafts", 0, "also draft outreach for the top N leads (0=none)")
	f.String("format", "table", "output format: table, csv, json, or xlsx")
	f.String("output", "", "output file path (default: stdout)")

	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	params, err := scanParams(cmd)
	if err != nil {
		return err
	}

	synthesizer := buildSynthesizer(cfg)
	leads, err := synthesizer.Synthesize(ctx, params)
	if err != nil {
		return err
	}

	minScore, _ := cmd.Flags().GetInt("min-score")
	sortKey, _ := cmd.Flags().GetString("sort")
	filter, _ := cmd.Flags().GetString("filter")
	leads = view.Apply(leads, view.Filters{Text: filter, MinScore: minScore}, view.ParseSortKey(sortKey), nil)

	drafts, _ := cmd.Flags().GetInt("drafts")
	var draftsByID map[string]model.OutreachDraft
	if drafts > 0 {
		draftsByID = draftLeads(ctx, buildDrafter(cfg), leads, params.Service, drafts)
	}

	format, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")

	out := cmd.OutOrStdout()
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return eris.Wrap(err, "scan: create output file")
		}
		defer f.Close()
		out = f
	}

	if err := writeLeads(out, format, leads, draftsByID); err != nil {
		return err
	}

	if outputPath != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d leads to %s\n", len(leads), outputPath)
	}
	printSummary(cmd.ErrOrStderr(), leads)
	return nil
}

// scanParams resolves search parameters from the params file or inline
// flags; inline flags override file values.
func scanParams(cmd *cobra.Command) (model.SearchParams, error) {
	var params model.SearchParams

	if path, _ := cmd.Flags().GetString("params"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return params, eris.Wrap(err, "scan: read params file")
		}
		if err := yaml.Unmarshal(data, &params); err != nil {
			return params, eris.Wrap(err, "scan: parse params file")
		}
	}

	if v, _ := cmd.Flags().GetString("industry"); v != "" {
		params.Industry = v
	}
	if v, _ := cmd.Flags().GetString("location"); v != "" {
		params.Location = v
	}
	if v, _ := cmd.Flags().GetString("service"); v != "" {
		params.Service = v
	}
	if v, _ := cmd.Flags().GetString("email"); v != "" {
		params.ContactEmail = v
	}

	return params, params.Validate()
}

// draftLeads generates outreach for the top leads concurrently. Drafting
// never fails, so the group only stops on context cancellation.
func draftLeads(ctx context.Context, drafter *outreach.Drafter, leads []model.Lead, service string, limit int) map[string]model.OutreachDraft {
	if limit > len(leads) {
		limit = len(leads)
	}

	results := make([]model.OutreachDraft, limit)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for i := 0; i < limit; i++ {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			results[i] = drafter.Draft(gctx, leads[i], service)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		zap.L().Warn("drafting interrupted", zap.Error(err))
	}

	out := make(map[string]model.OutreachDraft, limit)
	for i := 0; i < limit; i++ {
		if results[i].Subject != "" {
			out[leads[i].ID] = results[i]
		}
	}
	return out
}

func writeLeads(w io.Writer, format string, leads []model.Lead, drafts map[string]model.OutreachDraft) error {
	switch strings.ToLower(format) {
	case "table":
		writeTable(w, leads, drafts)
		return nil
	case "csv":
		return export.WriteCSV(w, leads)
	case "xlsx":
		return export.WriteXLSX(w, leads)
	case "json":
		payload := struct {
			Leads  []model.Lead                   `json:"leads"`
			Drafts map[string]model.OutreachDraft `json:"drafts,omitempty"`
		}{Leads: leads, Drafts: drafts}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(payload), "scan: encode json")
	default:
		return eris.Errorf("scan: unknown format %q (want table, csv, json, or xlsx)", format)
	}
}

func writeTable(w io.Writer, leads []model.Lead, drafts map[string]model.OutreachDraft) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SCORE\tCOMPANY\tRATING\tREVIEWS\tWEBSITE\tCONTACT\tREASON")
	for _, lead := range leads {
		rating := "-"
		if lead.GoogleRating > 0 {
			rating = fmt.Sprintf("%.1f", lead.GoogleRating)
		}
		website := lead.WebsiteURL
		if website == "" {
			website = "-"
		}
		contact := lead.DecisionMaker.Name
		if contact == "" {
			contact = lead.DecisionMaker.Email
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t%s\t%s\n",
			lead.Score, lead.CompanyName, rating, lead.ReviewCount, website, contact, lead.Reason)
	}
	tw.Flush()

	for _, lead := range leads {
		draft, ok := drafts[lead.ID]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "\n--- %s <%s> ---\nSubject: %s\n\n%s\n",
			lead.CompanyName, lead.DecisionMaker.Email, draft.Subject, draft.Body)
	}
}

func printSummary(w io.Writer, leads []model.Lead) {
	if len(leads) == 0 {
		fmt.Fprintln(w, "No leads matched.")
		return
	}

	var sum, hot int
	scores := make([]int, len(leads))
	for i, lead := range leads {
		sum += lead.Score
		scores[i] = lead.Score
		if lead.Score >= 75 {
			hot++
		}
	}
	sort.Ints(scores)

	fmt.Fprintf(w, "%d leads | avg score %d | median %d | %d hot (75+)\n",
		len(leads), sum/len(leads), scores[len(scores)/2], hot)
}
