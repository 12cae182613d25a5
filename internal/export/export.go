// Package export renders a lead snapshot to CSV or XLSX for handoff to
// a CRM or a spreadsheet.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/leadintel/leadscan/internal/model"
)

// header is the exported column order, shared by both formats.
var header = []string{
	"Company", "Address", "Rating", "Reviews", "Website",
	"Industry", "Location", "DecisionMaker", "Role", "Email",
	"Score", "Reason",
}

func leadRow(lead model.Lead) []string {
	return []string{
		lead.CompanyName,
		lead.Address,
		formatRating(lead.GoogleRating),
		strconv.Itoa(lead.ReviewCount),
		lead.WebsiteURL,
		lead.Industry,
		lead.Location,
		lead.DecisionMaker.Name,
		lead.DecisionMaker.Role,
		lead.DecisionMaker.Email,
		strconv.Itoa(lead.Score),
		lead.Reason,
	}
}

// formatRating renders a rating the way directories display it. A zero
// rating means the signal was absent, not a zero-star business.
func formatRating(rating float64) string {
	if rating == 0 {
		return ""
	}
	return fmt.Sprintf("%.1f", rating)
}

// WriteCSV writes the snapshot as CSV with a header row. Fields with
// embedded commas, quotes, or newlines are quoted per RFC 4180.
func WriteCSV(w io.Writer, leads []model.Lead) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return eris.Wrap(err, "export: write csv header")
	}
	for _, lead := range leads {
		if err := cw.Write(leadRow(lead)); err != nil {
			return eris.Wrapf(err, "export: write csv row for %s", lead.CompanyName)
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "export: flush csv")
}

// WriteXLSX writes the snapshot as a single-sheet workbook. Numeric
// columns are typed cells so spreadsheet sorting works without casts.
func WriteXLSX(w io.Writer, leads []model.Lead) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Leads")
	if err != nil {
		return eris.Wrap(err, "export: add xlsx sheet")
	}

	headerRow := sheet.AddRow()
	for _, h := range header {
		headerRow.AddCell().Value = h
	}

	for _, lead := range leads {
		row := sheet.AddRow()
		row.AddCell().Value = lead.CompanyName
		row.AddCell().Value = lead.Address
		if lead.GoogleRating > 0 {
			row.AddCell().SetFloatWithFormat(lead.GoogleRating, "0.0")
		} else {
			row.AddCell()
		}
		row.AddCell().SetInt(lead.ReviewCount)
		row.AddCell().Value = lead.WebsiteURL
		row.AddCell().Value = lead.Industry
		row.AddCell().Value = lead.Location
		row.AddCell().Value = lead.DecisionMaker.Name
		row.AddCell().Value = lead.DecisionMaker.Role
		row.AddCell().Value = lead.DecisionMaker.Email
		row.AddCell().SetInt(lead.Score)
		row.AddCell().Value = lead.Reason
	}

	return eris.Wrap(file.Write(w), "export: write xlsx")
}
