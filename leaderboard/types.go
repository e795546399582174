/*
Package leaderboard maintains the sustainability ledger and its rankings.

PURPOSE:
  Stores score uploaded waste reports into an append-only ledger. Daily and
  monthly views rank stores by AI score and hand out badges. The ledger is
  the source of truth; every view is recomputed from it on demand.

KEY CONCEPTS:
  - Report: An unscored upload candidate (store, waste metrics, date)
  - Entry:  A scored, immutable ledger row
  - RankedEntry / MonthlyStanding: View rows with rank and badge

INVARIANTS:
  1. APPEND-ONLY: entries are never updated or deleted
  2. Appends are serialized; reads see a consistent snapshot
  3. Ranking is a stable descending sort on AI score - equal scores keep
     ledger order, there is no secondary key

SEE ALSO:
  - ledger.go: Serialized append / snapshot read wrapper
  - aggregator.go: Ingest scoring and the ranked views
*/
package leaderboard

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/greenshelf/advisory-engine/engine"
)

// =============================================================================
// BADGES
// =============================================================================

type Badge string

const (
	BadgeGold     Badge = "gold"
	BadgeSilver   Badge = "silver"
	BadgeBronze   Badge = "bronze"
	BadgeChampion Badge = "champion"
	BadgeNone     Badge = ""
)

// dailyBadges are assigned to ranks 1-3 of a daily view, in order.
var dailyBadges = []Badge{BadgeGold, BadgeSilver, BadgeBronze}

// =============================================================================
// LEDGER ROWS
// =============================================================================

// Report is an upload candidate before scoring.
type Report struct {
	StoreLocation    string
	WasteDonatedKg   decimal.Decimal
	WasteReducedKg   decimal.Decimal
	WasteGeneratedKg decimal.Decimal
	Date             engine.Date
}

// Entry is one immutable ledger row. A store may appear multiple times on
// the same date (repeated uploads); the daily view deduplicates, the
// ledger itself never does.
type Entry struct {
	ID               string
	StoreLocation    string
	WasteDonatedKg   decimal.Decimal
	WasteReducedKg   decimal.Decimal
	WasteGeneratedKg decimal.Decimal
	Date             engine.Date
	AIScore          decimal.Decimal
	RecordedAt       time.Time
}

// =============================================================================
// VIEW ROWS
// =============================================================================

// RankedEntry is a daily/by-date view row.
type RankedEntry struct {
	Entry
	Rank  int
	Badge Badge
}

// MonthlyStanding aggregates a store's month: waste metrics are summed,
// the AI score is averaged over the store's reports.
type MonthlyStanding struct {
	StoreLocation    string
	WasteDonatedKg   decimal.Decimal
	WasteReducedKg   decimal.Decimal
	WasteGeneratedKg decimal.Decimal
	MeanScore        decimal.Decimal
	Reports          int
	Rank             int
	Badge            Badge
}

// =============================================================================
// INGEST RESULT
// =============================================================================

// IngestResult makes partial success explicit: validation is all-or-nothing
// before any append, but after validation each row lands independently.
type IngestResult struct {
	Appended int
	Skipped  []SkippedReport
}

// SkippedReport records a row that failed scoring after validation.
type SkippedReport struct {
	StoreLocation string
	Reason        string
}
