/*
models.go - External model collaborator interfaces

PURPOSE:
  The core consumes three black-box scoring functions: a demand estimator,
  a sustainability scorer, and a waste forecaster. Each takes a fixed input
  vector and returns numbers. Training lives elsewhere; the core only calls.

DEFAULTS:
  Each interface ships with a fixed-coefficient implementation standing in
  for the served regression artifacts. They keep the system usable without
  a model service and pin down the feature vectors in code.

FAILURE SEMANTICS:
  Model calls are synchronous, take a context, and may fail. A failed call
  degrades the single lot/row it was scoring (ErrScoringUnavailable), never
  the batch.
*/
package engine

import (
	"context"
	"math"
)

// DemandInputs is the demand model's feature vector.
type DemandInputs struct {
	PreviousSales float64
	Stock         float64
	TemperatureC  float64
}

// DemandEstimator predicts daily demand for a lot.
type DemandEstimator interface {
	EstimateDemand(ctx context.Context, in DemandInputs) (float64, error)
}

// SustainabilityScorer scores a store's waste report.
type SustainabilityScorer interface {
	Score(ctx context.Context, donatedKg, reducedKg, generatedKg float64) (float64, error)
}

// WasteForecaster projects the next periods of a waste quantity series.
// history is ordered oldest first and has at least two observations; the
// caller enforces that policy.
type WasteForecaster interface {
	Forecast(ctx context.Context, history []float64, periods int) ([]float64, error)
}

// =============================================================================
// DEFAULT IMPLEMENTATIONS - Fixed-coefficient linear models
// =============================================================================

// LinearDemandModel is a linear regression over (previous_sales, stock,
// temperature_C) with baked-in coefficients.
type LinearDemandModel struct {
	Intercept float64
	SalesCoef float64
	StockCoef float64
	TempCoef  float64
}

func NewLinearDemandModel() *LinearDemandModel {
	return &LinearDemandModel{
		Intercept: 5.0,
		SalesCoef: 0.85,
		StockCoef: 0.05,
		TempCoef:  0.4,
	}
}

func (m *LinearDemandModel) EstimateDemand(_ context.Context, in DemandInputs) (float64, error) {
	demand := m.Intercept + m.SalesCoef*in.PreviousSales + m.StockCoef*in.Stock + m.TempCoef*in.TemperatureC
	return math.Max(0, demand), nil
}

// WeightedSustainabilityScorer rewards donated and reduced waste and
// penalizes generated waste. Scores are clamped to [0, 10].
type WeightedSustainabilityScorer struct {
	DonatedWeight   float64
	ReducedWeight   float64
	GeneratedWeight float64
}

func NewWeightedSustainabilityScorer() *WeightedSustainabilityScorer {
	return &WeightedSustainabilityScorer{
		DonatedWeight:   0.05,
		ReducedWeight:   0.03,
		GeneratedWeight: 0.04,
	}
}

func (s *WeightedSustainabilityScorer) Score(_ context.Context, donatedKg, reducedKg, generatedKg float64) (float64, error) {
	score := s.DonatedWeight*donatedKg + s.ReducedWeight*reducedKg - s.GeneratedWeight*generatedKg
	return math.Max(0, math.Min(10, score)), nil
}

// TrendForecaster fits a least-squares line through the history and
// extrapolates. Forecasts are clamped at zero; waste never goes negative.
type TrendForecaster struct{}

func NewTrendForecaster() *TrendForecaster { return &TrendForecaster{} }

func (f *TrendForecaster) Forecast(_ context.Context, history []float64, periods int) ([]float64, error) {
	n := float64(len(history))

	var sumX, sumY, sumXY, sumXX float64
	for i, y := range history {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	denom := n*sumXX - sumX*sumX
	var slope, intercept float64
	if denom != 0 {
		slope = (n*sumXY - sumX*sumY) / denom
		intercept = (sumY - slope*sumX) / n
	} else {
		intercept = sumY / n
	}

	out := make([]float64, periods)
	for i := 0; i < periods; i++ {
		x := n + float64(i)
		out[i] = math.Max(0, intercept+slope*x)
	}
	return out, nil
}
