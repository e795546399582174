package ingest

import (
	"io"

	"github.com/greenshelf/advisory-engine/engine"
	"github.com/greenshelf/advisory-engine/forecast"
)

var wasteColumns = []string{"store_location", "item_name", "date", "quantity_kg"}

// ParseWasteSeries decodes a waste time-series CSV. Rows with unparsable
// dates are dropped; a series that loses too many rows simply falls under
// the two-observation floor and is skipped downstream.
func ParseWasteSeries(r io.Reader, layout string) ([]forecast.Observation, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, err
	}
	idx, err := columnIndex("waste_series", rows, wasteColumns)
	if err != nil {
		return nil, err
	}

	observations := make([]forecast.Observation, 0, len(rows)-1)
	for _, row := range rows[1:] {
		date, err := engine.ParseDate(layout, cell(row, idx, "date"))
		if err != nil {
			continue
		}
		observations = append(observations, forecast.Observation{
			StoreLocation: cell(row, idx, "store_location"),
			ItemName:      cell(row, idx, "item_name"),
			Date:          date,
			QuantityKg:    parseFloat(cell(row, idx, "quantity_kg"), 0),
		})
	}
	return observations, nil
}
