/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication, decoupling the
  internal domain model from the wire contract. Dates cross the boundary
  as dd-mm-yyyy text; the domain only sees calendar dates.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

VALIDATION:
  Validation is done in handlers and the ingest package, not in DTOs.
  DTOs are pure data carriers.
*/
package api

import (
	"github.com/greenshelf/advisory-engine/engine"
	"github.com/greenshelf/advisory-engine/forecast"
	"github.com/greenshelf/advisory-engine/leaderboard"
)

// =============================================================================
// RECOMMENDATION TYPES
// =============================================================================

// ProductLotDTO is one lot in a JSON recommendation request.
type ProductLotDTO struct {
	ProductID      string   `json:"product_id"`
	Name           string   `json:"name"`
	Category       string   `json:"category"`
	Stock          int      `json:"stock"`
	ExpiryDate     string   `json:"expiry_date"`
	StoreLocation  string   `json:"store_location"`
	FreshnessScore float64  `json:"freshness_score"`
	PreviousSales  *float64 `json:"previous_sales,omitempty"`
	TemperatureC   *float64 `json:"temperature_c,omitempty"`
}

type DemandRecordDTO struct {
	StoreLocation string  `json:"store_location"`
	ProductID     string  `json:"product_id"`
	DailyDemand   float64 `json:"daily_demand"`
}

type DistanceEdgeDTO struct {
	FromStore  string  `json:"from_store"`
	ToStore    string  `json:"to_store"`
	DistanceKm float64 `json:"distance_km"`
}

// RecommendationRequest carries a lot batch plus the network tables.
// Today overrides the process clock for reproducible batches (dd-mm-yyyy).
type RecommendationRequest struct {
	Lots      []ProductLotDTO   `json:"lots"`
	Demand    []DemandRecordDTO `json:"demand"`
	Distances []DistanceEdgeDTO `json:"distances"`
	Today     string            `json:"today,omitempty"`
}

type RecommendationDTO struct {
	ProductID      string   `json:"product_id"`
	Name           string   `json:"name"`
	Category       string   `json:"category"`
	StoreLocation  string   `json:"store_location"`
	Stock          int      `json:"stock"`
	DaysToExpiry   *int     `json:"days_to_expiry"`
	ExpiryStatus   string   `json:"expiry_status"`
	ExpiryRisk     bool     `json:"expiry_risk"`
	DailyDemand    *float64 `json:"daily_demand"`
	Recommendation string   `json:"recommendation"`
	TransferTo     string   `json:"transfer_to,omitempty"`
	Degraded       bool     `json:"degraded,omitempty"`
	DegradedReason string   `json:"degraded_reason,omitempty"`
}

type AlertDTO struct {
	ProductID     string `json:"product_id"`
	StoreLocation string `json:"store_location"`
	AlertReason   string `json:"alert_reason"`
}

type RecommendationResponse struct {
	Recommendations []RecommendationDTO `json:"recommendations"`
	Alerts          []AlertDTO          `json:"alerts"`
}

// =============================================================================
// LEADERBOARD TYPES
// =============================================================================

type LeaderboardEntryDTO struct {
	Rank             int    `json:"rank"`
	StoreLocation    string `json:"store_location"`
	WasteDonatedKg   string `json:"waste_donated_kg"`
	WasteReducedKg   string `json:"waste_reduced_kg"`
	WasteGeneratedKg string `json:"waste_generated_kg"`
	Date             string `json:"date,omitempty"`
	AIScore          string `json:"ai_score"`
	Badge            string `json:"badge"`
	Reports          int    `json:"reports,omitempty"`
}

type LeaderboardResponse struct {
	View    string                `json:"view"` // "daily", "monthly", "date"
	Entries []LeaderboardEntryDTO `json:"entries"`
}

type UploadResponse struct {
	Appended int                         `json:"appended"`
	Skipped  []leaderboard.SkippedReport `json:"skipped,omitempty"`
}

// =============================================================================
// FORECAST TYPES
// =============================================================================

type ForecastResultDTO struct {
	StoreLocation string    `json:"store_location"`
	ItemName      string    `json:"item_name"`
	Observations  int       `json:"observations"`
	Forecast      []float64 `json:"forecast"`
}

type ForecastSkippedDTO struct {
	StoreLocation string `json:"store_location"`
	ItemName      string `json:"item_name"`
	Reason        string `json:"reason"`
}

// ForecastResponse is both the upload response and the stored session
// payload re-read via GET /api/forecast/{session}.
type ForecastResponse struct {
	SessionID string               `json:"session_id"`
	Results   []ForecastResultDTO  `json:"results"`
	Skipped   []ForecastSkippedDTO `json:"skipped,omitempty"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERTERS
// =============================================================================

func toProductLot(d ProductLotDTO) engine.ProductLot {
	return engine.ProductLot{
		ProductID:      d.ProductID,
		Name:           d.Name,
		Category:       d.Category,
		Stock:          d.Stock,
		RawExpiryDate:  d.ExpiryDate,
		StoreLocation:  d.StoreLocation,
		FreshnessScore: d.FreshnessScore,
		PreviousSales:  d.PreviousSales,
		TemperatureC:   d.TemperatureC,
	}
}

func toRecommendationDTO(r engine.Recommendation) RecommendationDTO {
	return RecommendationDTO{
		ProductID:      r.ProductID,
		Name:           r.Name,
		Category:       r.Category,
		StoreLocation:  r.StoreLocation,
		Stock:          r.Stock,
		DaysToExpiry:   r.DaysToExpiry,
		ExpiryStatus:   r.ExpiryStatus.String(),
		ExpiryRisk:     r.ExpiryRisk,
		DailyDemand:    r.DailyDemand,
		Recommendation: string(r.Action),
		TransferTo:     r.TransferTo,
		Degraded:       r.Degraded,
		DegradedReason: r.DegradedReason,
	}
}

func toAlertDTO(a engine.Alert) AlertDTO {
	return AlertDTO{
		ProductID:     a.ProductID,
		StoreLocation: a.StoreLocation,
		AlertReason:   string(a.Reason),
	}
}

func toRankedEntryDTO(e leaderboard.RankedEntry, layout string) LeaderboardEntryDTO {
	return LeaderboardEntryDTO{
		Rank:             e.Rank,
		StoreLocation:    e.StoreLocation,
		WasteDonatedKg:   e.WasteDonatedKg.String(),
		WasteReducedKg:   e.WasteReducedKg.String(),
		WasteGeneratedKg: e.WasteGeneratedKg.String(),
		Date:             e.Date.Format(layout),
		AIScore:          e.AIScore.String(),
		Badge:            string(e.Badge),
	}
}

func toStandingDTO(s leaderboard.MonthlyStanding) LeaderboardEntryDTO {
	return LeaderboardEntryDTO{
		Rank:             s.Rank,
		StoreLocation:    s.StoreLocation,
		WasteDonatedKg:   s.WasteDonatedKg.String(),
		WasteReducedKg:   s.WasteReducedKg.String(),
		WasteGeneratedKg: s.WasteGeneratedKg.String(),
		AIScore:          s.MeanScore.String(),
		Badge:            string(s.Badge),
		Reports:          s.Reports,
	}
}

func toForecastResponse(sessionID string, results []forecast.Result, skipped []forecast.Skipped) ForecastResponse {
	resp := ForecastResponse{SessionID: sessionID}
	for _, r := range results {
		resp.Results = append(resp.Results, ForecastResultDTO{
			StoreLocation: r.StoreLocation,
			ItemName:      r.ItemName,
			Observations:  r.Observations,
			Forecast:      r.Forecast,
		})
	}
	for _, s := range skipped {
		resp.Skipped = append(resp.Skipped, ForecastSkippedDTO{
			StoreLocation: s.StoreLocation,
			ItemName:      s.ItemName,
			Reason:        s.Reason,
		})
	}
	return resp
}
