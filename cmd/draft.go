package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/leadintel/leadscan/internal/model"
)

var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Draft outreach for a lead from a previous scan",
	Long: `Draft reads a JSON lead file produced by "scan --format json" and
generates an outreach email for one lead, selected by ID or company name.

Examples:
  scan --params scan.yaml --format json --output leads.json
  draft --leads leads.json --company "Apex Dental" --service "SEO & Content Marketing"`,
	RunE: runDraft,
}

func init() {
	f := draftCmd.Flags()
	f.String("leads", "", "JSON lead file from a previous scan (required)")
	f.String("id", "", "lead ID to draft for")
	f.String("company", "", "company name to draft for (case-insensitive)")
	f.String("service", "", "service being pitched (required)")
	_ = draftCmd.MarkFlagRequired("leads")
	_ = draftCmd.MarkFlagRequired("service")

	rootCmd.AddCommand(draftCmd)
}

func runDraft(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	path, _ := cmd.Flags().GetString("leads")
	id, _ := cmd.Flags().GetString("id")
	company, _ := cmd.Flags().GetString("company")
	service, _ := cmd.Flags().GetString("service")

	if id == "" && company == "" {
		return eris.New("draft: either --id or --company is required")
	}

	lead, err := loadLead(path, id, company)
	if err != nil {
		return err
	}

	draft := buildDrafter(cfg).Draft(ctx, lead, service)

	fmt.Fprintf(cmd.OutOrStdout(), "To: %s <%s>\nSubject: %s\n\n%s\n",
		lead.DecisionMaker.Name, lead.DecisionMaker.Email, draft.Subject, draft.Body)
	return nil
}

func loadLead(path, id, company string) (model.Lead, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Lead{}, eris.Wrap(err, "draft: read leads file")
	}

	// scan --format json wraps leads in an envelope; accept a bare array
	// as well.
	var envelope struct {
		Leads []model.Lead `json:"leads"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		if arrErr := json.Unmarshal(data, &envelope.Leads); arrErr != nil {
			return model.Lead{}, eris.Wrap(err, "draft: parse leads file")
		}
	}
	if len(envelope.Leads) == 0 {
		return model.Lead{}, eris.New("draft: leads file contains no leads")
	}

	for _, lead := range envelope.Leads {
		if id != "" && lead.ID == id {
			return lead, nil
		}
		if company != "" && strings.EqualFold(lead.CompanyName, company) {
			return lead, nil
		}
	}
	return model.Lead{}, eris.Errorf("draft: no lead matching id=%q company=%q", id, company)
}
