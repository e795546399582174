/*
handlers.go - HTTP API handlers for the advisory engine

PURPOSE:
  Exposes the advisory core via REST. Handles HTTP request/response, JSON
  and multipart CSV parsing, and delegates to domain logic.

ENDPOINTS:
  Recommendations:
    POST /api/recommendations          JSON lot batch + network tables
    POST /api/recommendations/upload   Multipart CSV (inventory, demand, distances)

  Leaderboard:
    POST /api/leaderboard/upload       Sustainability report CSV
    GET  /api/leaderboard/daily        Today's ranking
    GET  /api/leaderboard/monthly      Current month ranking
    GET  /api/leaderboard/date/{date}  Ranking for a given day (dd-mm-yyyy)

  Forecast:
    POST /api/forecast                 Waste series CSV -> forecasts + session id
    GET  /api/forecast/{session}       Re-read a prior forecast result

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Unknown session / resource
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/greenshelf/advisory-engine/engine"
	"github.com/greenshelf/advisory-engine/events"
	"github.com/greenshelf/advisory-engine/forecast"
	"github.com/greenshelf/advisory-engine/ingest"
	"github.com/greenshelf/advisory-engine/leaderboard"
)

const maxUploadBytes = 16 << 20

type Handler struct {
	Aggregator *leaderboard.Aggregator
	Forecast   *forecast.Engine
	Estimator  engine.DemandEstimator
	Publisher  *events.AlertPublisher

	// DateLayout is the boundary date form (dd-mm-yyyy by default).
	DateLayout string
	// DonateDemandCeiling is forwarded to each request's assembler.
	DonateDemandCeiling float64

	// Now is injectable for tests.
	Now func() engine.Date

	sessions *sessionRegistry
}

func NewHandler(aggregator *leaderboard.Aggregator, fc *forecast.Engine, estimator engine.DemandEstimator, publisher *events.AlertPublisher, dateLayout string) *Handler {
	return &Handler{
		Aggregator:          aggregator,
		Forecast:            fc,
		Estimator:           estimator,
		Publisher:           publisher,
		DateLayout:          dateLayout,
		DonateDemandCeiling: engine.DefaultDonateDemandCeiling,
		Now:                 engine.Today,
		sessions:            newSessionRegistry(64),
	}
}

// =============================================================================
// RECOMMENDATION ENDPOINTS
// =============================================================================

func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req RecommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if len(req.Lots) == 0 {
		writeError(w, http.StatusBadRequest, "Empty lot batch", engine.ErrEmptyBatch)
		return
	}

	today := h.Now()
	if req.Today != "" {
		parsed, err := engine.ParseDate(h.DateLayout, req.Today)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid today date", err)
			return
		}
		today = parsed
	}

	lots := make([]engine.ProductLot, 0, len(req.Lots))
	for _, d := range req.Lots {
		lots = append(lots, toProductLot(d))
	}
	demand := make([]engine.DemandRecord, 0, len(req.Demand))
	for _, d := range req.Demand {
		demand = append(demand, engine.DemandRecord(d))
	}
	edges := make([]engine.DistanceEdge, 0, len(req.Distances))
	for _, d := range req.Distances {
		edges = append(edges, engine.DistanceEdge(d))
	}

	h.respondRecommendations(w, r, lots, demand, edges, today)
}

func (h *Handler) RecommendUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form", err)
		return
	}

	inventoryFile, _, err := r.FormFile("inventory")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Missing inventory file", err)
		return
	}
	defer inventoryFile.Close()

	lots, err := ingest.ParseInventory(inventoryFile)
	if err != nil {
		writeError(w, statusFor(err), "Invalid inventory file", err)
		return
	}

	var demand []engine.DemandRecord
	if f, _, err := r.FormFile("demand"); err == nil {
		defer f.Close()
		if demand, err = ingest.ParseDemand(f); err != nil {
			writeError(w, statusFor(err), "Invalid demand file", err)
			return
		}
	}

	var edges []engine.DistanceEdge
	if f, _, err := r.FormFile("distances"); err == nil {
		defer f.Close()
		if edges, err = ingest.ParseDistances(f); err != nil {
			writeError(w, statusFor(err), "Invalid distances file", err)
			return
		}
	}

	h.respondRecommendations(w, r, lots, demand, edges, h.Now())
}

func (h *Handler) respondRecommendations(w http.ResponseWriter, r *http.Request, lots []engine.ProductLot, demand []engine.DemandRecord, edges []engine.DistanceEdge, today engine.Date) {
	network := engine.NewNetwork(demand, edges)
	assembler := engine.NewRecommendationAssembler(
		engine.NewRiskClassifier(h.DateLayout, today),
		h.Estimator,
		engine.NewRedistributionPlanner(network),
		engine.NewAlertDetector(),
	)
	if h.DonateDemandCeiling > 0 {
		assembler.DonateDemandCeiling = h.DonateDemandCeiling
	}

	recs, alerts := assembler.Assemble(r.Context(), lots)

	if err := h.Publisher.Publish(r.Context(), alerts); err != nil {
		// Alert fan-out is best-effort; the advisory response still stands.
		log.Printf("alert publish failed: %v", err)
	}

	resp := RecommendationResponse{
		Recommendations: make([]RecommendationDTO, 0, len(recs)),
		Alerts:          make([]AlertDTO, 0, len(alerts)),
	}
	for _, rec := range recs {
		resp.Recommendations = append(resp.Recommendations, toRecommendationDTO(rec))
	}
	for _, a := range alerts {
		resp.Alerts = append(resp.Alerts, toAlertDTO(a))
	}
	writeJSON(w, http.StatusOK, resp)
}

// =============================================================================
// LEADERBOARD ENDPOINTS
// =============================================================================

func (h *Handler) UploadReports(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form", err)
		return
	}

	f, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Missing report file", err)
		return
	}
	defer f.Close()

	reports, err := ingest.ParseReports(f, h.DateLayout, h.Now())
	if err != nil {
		writeError(w, statusFor(err), "Invalid report file", err)
		return
	}

	result, err := h.Aggregator.Ingest(r.Context(), reports)
	if err != nil {
		writeError(w, statusFor(err), "Failed to ingest reports", err)
		return
	}

	writeJSON(w, http.StatusCreated, UploadResponse{Appended: result.Appended, Skipped: result.Skipped})
}

func (h *Handler) DailyLeaderboard(w http.ResponseWriter, r *http.Request) {
	ranked, err := h.Aggregator.Daily(r.Context(), h.Now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to compute leaderboard", err)
		return
	}
	h.writeRanked(w, "daily", ranked)
}

func (h *Handler) LeaderboardByDate(w http.ResponseWriter, r *http.Request) {
	day, err := engine.ParseDate(h.DateLayout, chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date (use "+h.DateLayout+")", err)
		return
	}

	ranked, err := h.Aggregator.ByDate(r.Context(), day)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to compute leaderboard", err)
		return
	}
	h.writeRanked(w, "date", ranked)
}

func (h *Handler) MonthlyLeaderboard(w http.ResponseWriter, r *http.Request) {
	now := h.Now()
	standings, err := h.Aggregator.Monthly(r.Context(), now.Year, now.Month)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to compute leaderboard", err)
		return
	}

	resp := LeaderboardResponse{View: "monthly", Entries: make([]LeaderboardEntryDTO, 0, len(standings))}
	for _, s := range standings {
		resp.Entries = append(resp.Entries, toStandingDTO(s))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) writeRanked(w http.ResponseWriter, view string, ranked []leaderboard.RankedEntry) {
	resp := LeaderboardResponse{View: view, Entries: make([]LeaderboardEntryDTO, 0, len(ranked))}
	for _, e := range ranked {
		resp.Entries = append(resp.Entries, toRankedEntryDTO(e, h.DateLayout))
	}
	writeJSON(w, http.StatusOK, resp)
}

// =============================================================================
// FORECAST ENDPOINTS
// =============================================================================

func (h *Handler) ForecastUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form", err)
		return
	}

	f, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Missing series file", err)
		return
	}
	defer f.Close()

	observations, err := ingest.ParseWasteSeries(f, h.DateLayout)
	if err != nil {
		writeError(w, statusFor(err), "Invalid series file", err)
		return
	}

	results, skipped, err := h.Forecast.Run(r.Context(), observations)
	if err != nil {
		writeError(w, statusFor(err), "Failed to forecast", err)
		return
	}

	resp := toForecastResponse("", results, skipped)
	resp.SessionID = h.sessions.put(resp)
	writeJSON(w, http.StatusCreated, resp)
}

func (h *Handler) GetForecast(w http.ResponseWriter, r *http.Request) {
	resp, ok := h.sessions.get(chi.URLParam(r, "session"))
	if !ok {
		writeError(w, http.StatusNotFound, "Unknown forecast session", engine.ErrSessionNotFound)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// =============================================================================
// MISC
// =============================================================================

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// =============================================================================
// HELPERS
// =============================================================================

func statusFor(err error) int {
	switch {
	case engine.IsClientError(err):
		return http.StatusBadRequest
	case engine.IsNotFound(err):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
