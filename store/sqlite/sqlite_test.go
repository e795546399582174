package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenshelf/advisory-engine/engine"
	"github.com/greenshelf/advisory-engine/leaderboard"
	"github.com/greenshelf/advisory-engine/store/sqlite"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func entry(store string, date engine.Date, score string) leaderboard.Entry {
	return leaderboard.Entry{
		ID:               uuid.NewString(),
		StoreLocation:    store,
		WasteDonatedKg:   decimal.RequireFromString("12.5"),
		WasteReducedKg:   decimal.RequireFromString("3.25"),
		WasteGeneratedKg: decimal.RequireFromString("1.1"),
		Date:             date,
		AIScore:          decimal.RequireFromString(score),
		RecordedAt:       time.Date(2025, time.June, 15, 10, 30, 0, 0, time.UTC),
	}
}

func TestStore_AppendAndList_PreservesOrder(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	day := engine.NewDate(2025, time.June, 15)
	first := entry("a", day, "8.5")
	second := entry("b", day, "9.1")
	third := entry("a", day, "7")

	for _, e := range []leaderboard.Entry{first, second, third} {
		require.NoError(t, s.Append(ctx, e))
	}

	entries, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, first.ID, entries[0].ID)
	assert.Equal(t, second.ID, entries[1].ID)
	assert.Equal(t, third.ID, entries[2].ID)
}

func TestStore_RoundTripsEntryFields(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	in := entry("store-7", engine.NewDate(2025, time.June, 15), "9.46")
	require.NoError(t, s.Append(ctx, in))

	entries, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	out := entries[0]
	assert.Equal(t, in.ID, out.ID)
	assert.Equal(t, "store-7", out.StoreLocation)
	assert.True(t, in.WasteDonatedKg.Equal(out.WasteDonatedKg))
	assert.True(t, in.WasteReducedKg.Equal(out.WasteReducedKg))
	assert.True(t, in.WasteGeneratedKg.Equal(out.WasteGeneratedKg))
	assert.True(t, in.AIScore.Equal(out.AIScore))
	assert.True(t, in.Date.Equal(out.Date))
	assert.True(t, in.RecordedAt.Equal(out.RecordedAt))
}

func TestStore_ListOn_FiltersByDate(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	june15 := engine.NewDate(2025, time.June, 15)
	june16 := engine.NewDate(2025, time.June, 16)

	require.NoError(t, s.Append(ctx, entry("a", june15, "8")))
	require.NoError(t, s.Append(ctx, entry("b", june16, "9")))
	require.NoError(t, s.Append(ctx, entry("c", june15, "7")))

	entries, err := s.ListOn(ctx, june15)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a", entries[0].StoreLocation)
	assert.Equal(t, "c", entries[1].StoreLocation)
}

func TestStore_ListInMonth(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.Append(ctx, entry("a", engine.NewDate(2025, time.June, 1), "8")))
	require.NoError(t, s.Append(ctx, entry("b", engine.NewDate(2025, time.June, 30), "9")))
	require.NoError(t, s.Append(ctx, entry("c", engine.NewDate(2025, time.May, 31), "7")))
	require.NoError(t, s.Append(ctx, entry("d", engine.NewDate(2025, time.July, 1), "6")))

	entries, err := s.ListInMonth(ctx, 2025, time.June)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a", entries[0].StoreLocation)
	assert.Equal(t, "b", entries[1].StoreLocation)
}

func TestStore_ListInMonth_DecemberBoundary(t *testing.T) {
	// The upper bound of December rolls into January of the next year.

	s := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.Append(ctx, entry("a", engine.NewDate(2025, time.December, 31), "8")))
	require.NoError(t, s.Append(ctx, entry("b", engine.NewDate(2026, time.January, 1), "9")))

	entries, err := s.ListInMonth(ctx, 2025, time.December)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a", entries[0].StoreLocation)
}

func TestStore_EmptyListsAreNotErrors(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	entries, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)

	entries, err = s.ListOn(ctx, engine.NewDate(2025, time.June, 15))
	require.NoError(t, err)
	assert.Empty(t, entries)
}
