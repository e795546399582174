package ingest

import (
	"io"

	"github.com/greenshelf/advisory-engine/engine"
)

var (
	demandColumns   = []string{"store_location", "product_id", "daily_demand"}
	distanceColumns = []string{"from_store", "to_store", "distance_km"}
)

// ParseDemand decodes the (store, product) demand table.
func ParseDemand(r io.Reader) ([]engine.DemandRecord, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, err
	}
	idx, err := columnIndex("demand", rows, demandColumns)
	if err != nil {
		return nil, err
	}

	records := make([]engine.DemandRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		demand := parseFloat(cell(row, idx, "daily_demand"), -1)
		if demand < 0 {
			continue
		}
		records = append(records, engine.DemandRecord{
			StoreLocation: cell(row, idx, "store_location"),
			ProductID:     cell(row, idx, "product_id"),
			DailyDemand:   demand,
		})
	}
	return records, nil
}

// ParseDistances decodes the directed distance edge list. Row order is
// preserved; it is the planner's tie-break order.
func ParseDistances(r io.Reader) ([]engine.DistanceEdge, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, err
	}
	idx, err := columnIndex("distances", rows, distanceColumns)
	if err != nil {
		return nil, err
	}

	edges := make([]engine.DistanceEdge, 0, len(rows)-1)
	for _, row := range rows[1:] {
		km := parseFloat(cell(row, idx, "distance_km"), 0)
		if km <= 0 {
			continue
		}
		edges = append(edges, engine.DistanceEdge{
			FromStore:  cell(row, idx, "from_store"),
			ToStore:    cell(row, idx, "to_store"),
			DistanceKm: km,
		})
	}
	return edges, nil
}
