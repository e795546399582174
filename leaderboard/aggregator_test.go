package leaderboard_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenshelf/advisory-engine/engine"
	"github.com/greenshelf/advisory-engine/leaderboard"
	"github.com/greenshelf/advisory-engine/store/memory"
)

// =============================================================================
// TEST SETUP
// =============================================================================

// scorerFunc adapts a closure to the SustainabilityScorer interface. Most
// tests echo the donated mass as the score so rankings are easy to pin.
type scorerFunc func(ctx context.Context, donatedKg, reducedKg, generatedKg float64) (float64, error)

func (f scorerFunc) Score(ctx context.Context, d, r, g float64) (float64, error) {
	return f(ctx, d, r, g)
}

func newAggregator() *leaderboard.Aggregator {
	return leaderboard.NewAggregator(
		leaderboard.NewLedger(memory.New()),
		scorerFunc(func(_ context.Context, d, _, _ float64) (float64, error) { return d, nil }),
	)
}

func day() engine.Date { return engine.NewDate(2025, time.June, 15) }

func report(store string, score float64, date engine.Date) leaderboard.Report {
	return leaderboard.Report{
		StoreLocation:    store,
		WasteDonatedKg:   decimal.NewFromFloat(score), // donatedScorer echoes this
		WasteReducedKg:   decimal.NewFromInt(10),
		WasteGeneratedKg: decimal.NewFromInt(5),
		Date:             date,
	}
}

// =============================================================================
// INGEST
// =============================================================================

func TestIngest_ScoresAndAppends(t *testing.T) {
	agg := newAggregator()
	ctx := context.Background()

	result, err := agg.Ingest(ctx, []leaderboard.Report{
		report("a", 9.1, day()),
		report("b", 9.5, day()),
	})

	require.NoError(t, err)
	assert.Equal(t, 2, result.Appended)
	assert.Empty(t, result.Skipped)
}

func TestIngest_EmptyBatch_Rejected(t *testing.T) {
	_, err := newAggregator().Ingest(context.Background(), nil)
	assert.ErrorIs(t, err, engine.ErrEmptyBatch)
}

func TestIngest_ScoreRoundedToTwoDecimals(t *testing.T) {
	agg := leaderboard.NewAggregator(
		leaderboard.NewLedger(memory.New()),
		scorerFunc(func(_ context.Context, _, _, _ float64) (float64, error) { return 7.4567, nil }),
	)
	ctx := context.Background()

	_, err := agg.Ingest(ctx, []leaderboard.Report{report("a", 1, day())})
	require.NoError(t, err)

	ranked, err := agg.ByDate(ctx, day())
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.Equal(t, "7.46", ranked[0].AIScore.String())
}

func TestIngest_ScoringFailure_SkipsRowKeepsBatch(t *testing.T) {
	// GIVEN: the scorer fails on the second of three rows
	// WHEN: ingesting
	// THEN: rows one and three are appended, row two is reported skipped,
	//       earlier appends are not rolled back

	agg := leaderboard.NewAggregator(
		leaderboard.NewLedger(memory.New()),
		scorerFunc(func(_ context.Context, d, _, _ float64) (float64, error) {
			if d == 2 {
				return 0, errors.New("model down")
			}
			return d, nil
		}),
	)
	ctx := context.Background()

	result, err := agg.Ingest(ctx, []leaderboard.Report{
		report("a", 1, day()),
		report("b", 2, day()),
		report("c", 3, day()),
	})

	require.NoError(t, err)
	assert.Equal(t, 2, result.Appended)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, "b", result.Skipped[0].StoreLocation)

	ranked, err := agg.ByDate(ctx, day())
	require.NoError(t, err)
	assert.Len(t, ranked, 2)
}

// =============================================================================
// DAILY / BY-DATE VIEW
// =============================================================================

func TestDaily_RanksAndBadges(t *testing.T) {
	// GIVEN: same-day entries A(9.1), B(9.5), C(8.0)
	// THEN: ranking is B(gold), A(silver), C(bronze)

	agg := newAggregator()
	ctx := context.Background()

	_, err := agg.Ingest(ctx, []leaderboard.Report{
		report("A", 9.1, day()),
		report("B", 9.5, day()),
		report("C", 8.0, day()),
	})
	require.NoError(t, err)

	ranked, err := agg.Daily(ctx, day())
	require.NoError(t, err)
	require.Len(t, ranked, 3)

	assert.Equal(t, "B", ranked[0].StoreLocation)
	assert.Equal(t, leaderboard.BadgeGold, ranked[0].Badge)
	assert.Equal(t, "A", ranked[1].StoreLocation)
	assert.Equal(t, leaderboard.BadgeSilver, ranked[1].Badge)
	assert.Equal(t, "C", ranked[2].StoreLocation)
	assert.Equal(t, leaderboard.BadgeBronze, ranked[2].Badge)
}

func TestDaily_AtMostThreeBadges(t *testing.T) {
	agg := newAggregator()
	ctx := context.Background()

	var reports []leaderboard.Report
	for i, store := range []string{"a", "b", "c", "d", "e"} {
		reports = append(reports, report(store, float64(i+1), day()))
	}
	_, err := agg.Ingest(ctx, reports)
	require.NoError(t, err)

	ranked, err := agg.Daily(ctx, day())
	require.NoError(t, err)
	require.Len(t, ranked, 5)

	badges := 0
	for i, e := range ranked {
		assert.Equal(t, i+1, e.Rank)
		if e.Badge != leaderboard.BadgeNone {
			badges++
		}
	}
	assert.Equal(t, 3, badges)
}

func TestDaily_DuplicateStoreUploads_FirstOccurrenceWins(t *testing.T) {
	// GIVEN: store A uploads twice on the same day (5.0 then 9.9)
	// THEN: the daily view keeps the earliest upload

	agg := newAggregator()
	ctx := context.Background()

	_, err := agg.Ingest(ctx, []leaderboard.Report{
		report("A", 5.0, day()),
		report("B", 7.0, day()),
		report("A", 9.9, day()),
	})
	require.NoError(t, err)

	ranked, err := agg.Daily(ctx, day())
	require.NoError(t, err)
	require.Len(t, ranked, 2)

	assert.Equal(t, "B", ranked[0].StoreLocation)
	assert.Equal(t, "A", ranked[1].StoreLocation)
	assert.Equal(t, "5", ranked[1].AIScore.String())
}

func TestDaily_EqualScores_KeepLedgerOrder(t *testing.T) {
	// Stable sort: equal scores retain append order.

	agg := newAggregator()
	ctx := context.Background()

	_, err := agg.Ingest(ctx, []leaderboard.Report{
		report("first", 7.0, day()),
		report("second", 7.0, day()),
		report("third", 7.0, day()),
	})
	require.NoError(t, err)

	ranked, err := agg.Daily(ctx, day())
	require.NoError(t, err)
	require.Len(t, ranked, 3)
	assert.Equal(t, "first", ranked[0].StoreLocation)
	assert.Equal(t, "second", ranked[1].StoreLocation)
	assert.Equal(t, "third", ranked[2].StoreLocation)
}

func TestByDate_FiltersOtherDays(t *testing.T) {
	agg := newAggregator()
	ctx := context.Background()

	_, err := agg.Ingest(ctx, []leaderboard.Report{
		report("A", 5, day()),
		report("B", 6, day().AddDays(1)),
	})
	require.NoError(t, err)

	ranked, err := agg.ByDate(ctx, day().AddDays(1))
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.Equal(t, "B", ranked[0].StoreLocation)
}

// =============================================================================
// MONTHLY VIEW
// =============================================================================

func TestMonthly_AggregatesAndCrownsSingleChampion(t *testing.T) {
	// GIVEN: store A reports twice in June (scores 8 and 6), store B once (9)
	// THEN: A's mean is 7, B leads with 9 and takes the only badge;
	//       waste metrics are summed per store

	agg := newAggregator()
	ctx := context.Background()

	_, err := agg.Ingest(ctx, []leaderboard.Report{
		report("A", 8, day()),
		report("B", 9, day().AddDays(3)),
		report("A", 6, day().AddDays(10)),
		report("C", 10, engine.NewDate(2025, time.July, 1)), // other month
	})
	require.NoError(t, err)

	standings, err := agg.Monthly(ctx, 2025, time.June)
	require.NoError(t, err)
	require.Len(t, standings, 2)

	assert.Equal(t, "B", standings[0].StoreLocation)
	assert.Equal(t, 1, standings[0].Rank)
	assert.Equal(t, leaderboard.BadgeChampion, standings[0].Badge)

	assert.Equal(t, "A", standings[1].StoreLocation)
	assert.Equal(t, leaderboard.BadgeNone, standings[1].Badge)
	assert.Equal(t, "7", standings[1].MeanScore.String())
	assert.Equal(t, 2, standings[1].Reports)
	assert.Equal(t, "20", standings[1].WasteReducedKg.String(), "reduced kg summed over two reports")
}
