/*
aggregator.go - Ingest scoring and ranked views

PURPOSE:
  Ingest scores uploaded reports and appends them to the ledger. The view
  methods recompute rankings from the ledger on every call.

INGEST SEMANTICS:
  Column validation happens upstream (ingest package) and rejects the whole
  batch before anything is appended. Past validation, each row is scored
  and appended independently: a scoring failure skips that row and is
  reported in the result, earlier appends are NOT rolled back.

VIEW SEMANTICS:
  Daily/by-date: filter to the day, deduplicate by store keeping the FIRST
  ledger occurrence (earliest upload for that store-day wins), stable sort
  by score descending, badges gold/silver/bronze for ranks 1-3.

  Monthly: group by store in first-appearance order, sum waste metrics,
  average the score, stable sort by mean score descending, single champion
  badge for rank 1.
*/
package leaderboard

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/greenshelf/advisory-engine/engine"
)

// Aggregator scores reports into the ledger and computes rankings.
type Aggregator struct {
	ledger *Ledger
	scorer engine.SustainabilityScorer

	now func() time.Time
}

func NewAggregator(ledger *Ledger, scorer engine.SustainabilityScorer) *Aggregator {
	return &Aggregator{ledger: ledger, scorer: scorer, now: time.Now}
}

// =============================================================================
// INGEST
// =============================================================================

// Ingest scores each report and appends it to the ledger. Rows whose
// scoring call fails are skipped and reported; the batch continues.
func (a *Aggregator) Ingest(ctx context.Context, reports []Report) (IngestResult, error) {
	if len(reports) == 0 {
		return IngestResult{}, engine.ErrEmptyBatch
	}

	var result IngestResult
	for _, r := range reports {
		donated, _ := r.WasteDonatedKg.Float64()
		reduced, _ := r.WasteReducedKg.Float64()
		generated, _ := r.WasteGeneratedKg.Float64()

		score, err := a.scorer.Score(ctx, donated, reduced, generated)
		if err != nil {
			result.Skipped = append(result.Skipped, SkippedReport{
				StoreLocation: r.StoreLocation,
				Reason:        (&engine.ScoringError{Subject: r.StoreLocation, Err: err}).Error(),
			})
			continue
		}

		entry := Entry{
			ID:               uuid.NewString(),
			StoreLocation:    r.StoreLocation,
			WasteDonatedKg:   r.WasteDonatedKg,
			WasteReducedKg:   r.WasteReducedKg,
			WasteGeneratedKg: r.WasteGeneratedKg,
			Date:             r.Date,
			AIScore:          decimal.NewFromFloat(score).Round(2),
			RecordedAt:       a.now().UTC(),
		}

		if err := a.ledger.Append(ctx, entry); err != nil {
			result.Skipped = append(result.Skipped, SkippedReport{
				StoreLocation: r.StoreLocation,
				Reason:        err.Error(),
			})
			continue
		}
		result.Appended++
	}

	return result, nil
}

// =============================================================================
// VIEWS
// =============================================================================

// Daily ranks today's entries.
func (a *Aggregator) Daily(ctx context.Context, today engine.Date) ([]RankedEntry, error) {
	return a.ByDate(ctx, today)
}

// ByDate ranks the entries of one day. Duplicate store uploads keep the
// first ledger occurrence.
func (a *Aggregator) ByDate(ctx context.Context, day engine.Date) ([]RankedEntry, error) {
	entries, err := a.ledger.EntriesOn(ctx, day)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(entries))
	deduped := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if seen[e.StoreLocation] {
			continue
		}
		seen[e.StoreLocation] = true
		deduped = append(deduped, e)
	}

	sort.SliceStable(deduped, func(i, j int) bool {
		return deduped[i].AIScore.GreaterThan(deduped[j].AIScore)
	})

	ranked := make([]RankedEntry, len(deduped))
	for i, e := range deduped {
		badge := BadgeNone
		if i < len(dailyBadges) {
			badge = dailyBadges[i]
		}
		ranked[i] = RankedEntry{Entry: e, Rank: i + 1, Badge: badge}
	}
	return ranked, nil
}

// Monthly ranks store aggregates for one month. Every ledger row counts;
// there is no per-day deduplication here.
func (a *Aggregator) Monthly(ctx context.Context, year int, month time.Month) ([]MonthlyStanding, error) {
	entries, err := a.ledger.EntriesInMonth(ctx, year, month)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int, len(entries))
	standings := make([]MonthlyStanding, 0, len(entries))
	scoreSums := make([]decimal.Decimal, 0, len(entries))

	for _, e := range entries {
		i, ok := index[e.StoreLocation]
		if !ok {
			i = len(standings)
			index[e.StoreLocation] = i
			standings = append(standings, MonthlyStanding{StoreLocation: e.StoreLocation})
			scoreSums = append(scoreSums, decimal.Zero)
		}
		s := &standings[i]
		s.WasteDonatedKg = s.WasteDonatedKg.Add(e.WasteDonatedKg)
		s.WasteReducedKg = s.WasteReducedKg.Add(e.WasteReducedKg)
		s.WasteGeneratedKg = s.WasteGeneratedKg.Add(e.WasteGeneratedKg)
		s.Reports++
		scoreSums[i] = scoreSums[i].Add(e.AIScore)
	}

	for i := range standings {
		n := decimal.NewFromInt(int64(standings[i].Reports))
		standings[i].MeanScore = scoreSums[i].DivRound(n, 2)
	}

	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].MeanScore.GreaterThan(standings[j].MeanScore)
	})

	for i := range standings {
		standings[i].Rank = i + 1
		if i == 0 {
			standings[i].Badge = BadgeChampion
		}
	}
	return standings, nil
}
