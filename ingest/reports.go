package ingest

import (
	"io"

	"github.com/shopspring/decimal"

	"github.com/greenshelf/advisory-engine/engine"
	"github.com/greenshelf/advisory-engine/leaderboard"
)

var reportColumns = []string{
	"store_location", "waste_donated_kg", "waste_reduced_kg", "waste_generated_kg", "date",
}

// ParseReports decodes a sustainability report CSV. Dates use the boundary
// layout (dd-mm-yyyy by default); rows with unparsable dates fall back to
// today, keeping the row rather than dropping the upload.
func ParseReports(r io.Reader, layout string, today engine.Date) ([]leaderboard.Report, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, err
	}
	idx, err := columnIndex("sustainability", rows, reportColumns)
	if err != nil {
		return nil, err
	}

	reports := make([]leaderboard.Report, 0, len(rows)-1)
	for _, row := range rows[1:] {
		date, err := engine.ParseDate(layout, cell(row, idx, "date"))
		if err != nil {
			date = today
		}

		reports = append(reports, leaderboard.Report{
			StoreLocation:    cell(row, idx, "store_location"),
			WasteDonatedKg:   parseDecimal(cell(row, idx, "waste_donated_kg")),
			WasteReducedKg:   parseDecimal(cell(row, idx, "waste_reduced_kg")),
			WasteGeneratedKg: parseDecimal(cell(row, idx, "waste_generated_kg")),
			Date:             date,
		})
	}
	return reports, nil
}

func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
