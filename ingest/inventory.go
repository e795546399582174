package ingest

import (
	"io"

	"github.com/greenshelf/advisory-engine/engine"
)

var inventoryColumns = []string{
	"product_id", "name", "category", "stock", "expiry_date", "store_location", "freshness_score",
}

// ParseInventory decodes a product lot CSV. Optional columns:
// previous_sales, temperature_c.
func ParseInventory(r io.Reader) ([]engine.ProductLot, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, err
	}
	idx, err := columnIndex("inventory", rows, inventoryColumns)
	if err != nil {
		return nil, err
	}

	lots := make([]engine.ProductLot, 0, len(rows)-1)
	for _, row := range rows[1:] {
		stock := parseInt(cell(row, idx, "stock"), 0)
		if stock < 0 {
			stock = 0
		}

		lots = append(lots, engine.ProductLot{
			ProductID:      cell(row, idx, "product_id"),
			Name:           cell(row, idx, "name"),
			Category:       cell(row, idx, "category"),
			Stock:          stock,
			RawExpiryDate:  cell(row, idx, "expiry_date"),
			StoreLocation:  cell(row, idx, "store_location"),
			FreshnessScore: parseFloat(cell(row, idx, "freshness_score"), 0),
			PreviousSales:  optionalFloat(cell(row, idx, "previous_sales")),
			TemperatureC:   optionalFloat(cell(row, idx, "temperature_c")),
		})
	}
	return lots, nil
}
