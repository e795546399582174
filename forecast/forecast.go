/*
Package forecast groups waste observations into per-(store, item) series
and projects the next periods through the external forecaster.

POLICY:
  - Series are sorted ascending by date before forecasting
  - Series with fewer than two observations are skipped (a single point
    carries no trend); this is this package's decision, not the model's
  - Forecast values are rounded to two decimals
  - A failed forecaster call skips that series; the batch continues
*/
package forecast

import (
	"context"
	"math"
	"sort"

	"github.com/greenshelf/advisory-engine/engine"
)

// DefaultHorizon is the number of periods projected per series.
const DefaultHorizon = 7

// Observation is one (store, item, date, quantity) waste record.
type Observation struct {
	StoreLocation string
	ItemName      string
	Date          engine.Date
	QuantityKg    float64
}

// Result is the projection for one series.
type Result struct {
	StoreLocation string
	ItemName      string
	Observations  int
	Forecast      []float64 // DefaultHorizon values, 2 decimals
}

// Skipped records a series that produced no forecast.
type Skipped struct {
	StoreLocation string
	ItemName      string
	Reason        string
}

// Engine wires the grouping policy to a WasteForecaster.
type Engine struct {
	Forecaster engine.WasteForecaster
	Horizon    int
}

func NewEngine(forecaster engine.WasteForecaster) *Engine {
	return &Engine{Forecaster: forecaster, Horizon: DefaultHorizon}
}

// Run forecasts every series in the batch. Series order follows first
// appearance in the input.
func (e *Engine) Run(ctx context.Context, observations []Observation) ([]Result, []Skipped, error) {
	if len(observations) == 0 {
		return nil, nil, engine.ErrEmptyBatch
	}

	type seriesKey struct{ store, item string }

	index := make(map[seriesKey]int)
	var order []seriesKey
	grouped := make(map[seriesKey][]Observation)

	for _, o := range observations {
		k := seriesKey{o.StoreLocation, o.ItemName}
		if _, ok := index[k]; !ok {
			index[k] = len(order)
			order = append(order, k)
		}
		grouped[k] = append(grouped[k], o)
	}

	horizon := e.Horizon
	if horizon <= 0 {
		horizon = DefaultHorizon
	}

	var (
		results []Result
		skipped []Skipped
	)

	for _, k := range order {
		series := grouped[k]
		if len(series) < 2 {
			skipped = append(skipped, Skipped{
				StoreLocation: k.store,
				ItemName:      k.item,
				Reason:        "fewer than two observations",
			})
			continue
		}

		sort.SliceStable(series, func(i, j int) bool {
			return series[i].Date.Before(series[j].Date)
		})

		history := make([]float64, len(series))
		for i, o := range series {
			history[i] = o.QuantityKg
		}

		projected, err := e.Forecaster.Forecast(ctx, history, horizon)
		if err != nil {
			skipped = append(skipped, Skipped{
				StoreLocation: k.store,
				ItemName:      k.item,
				Reason:        (&engine.ScoringError{Subject: k.store + "/" + k.item, Err: err}).Error(),
			})
			continue
		}

		rounded := make([]float64, len(projected))
		for i, v := range projected {
			rounded[i] = math.Round(v*100) / 100
		}

		results = append(results, Result{
			StoreLocation: k.store,
			ItemName:      k.item,
			Observations:  len(series),
			Forecast:      rounded,
		})
	}

	return results, skipped, nil
}
