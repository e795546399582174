/*
Package sqlite provides a SQLite-backed implementation of the ledger Store.

PURPOSE:
  Persists sustainability ledger entries using SQLite via sqlx. The same
  patterns apply to PostgreSQL - see store/postgres for that variant.

APPEND-ONLY ENFORCEMENT:
  - No UPDATE statements on the entries table
  - No DELETE statements on the entries table
  - Rowid ordering preserves append order for deterministic ranking

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging):
  - Multiple readers don't block
  - Single writer at a time
  - Readers never see a partially written row

DECIMALS:
  Waste masses and scores are stored as TEXT and parsed back through
  shopspring/decimal, avoiding float drift in storage.

USAGE:
  store, err := sqlite.New("./data/advisor.db")  // ":memory:" for tests
  defer store.Close()
  ledger := leaderboard.NewLedger(store)

SEE ALSO:
  - leaderboard/store.go: Interface definition
  - store/memory: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/greenshelf/advisory-engine/engine"
	"github.com/greenshelf/advisory-engine/leaderboard"
)

type Store struct {
	db *sqlx.DB
}

// New opens (and migrates) a SQLite store at dbPath.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sqlx.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate() error {
	schema := `
	-- Sustainability entries (append-only ledger)
	CREATE TABLE IF NOT EXISTS sustainability_entries (
		id TEXT PRIMARY KEY,
		store_location TEXT NOT NULL,
		waste_donated_kg TEXT NOT NULL,
		waste_reduced_kg TEXT NOT NULL,
		waste_generated_kg TEXT NOT NULL,
		entry_date TEXT NOT NULL,
		ai_score TEXT NOT NULL,
		recorded_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_entries_date
		ON sustainability_entries(entry_date);
	CREATE INDEX IF NOT EXISTS idx_entries_store
		ON sustainability_entries(store_location);
	`
	_, err := s.db.Exec(schema)
	return err
}

// entryRow is the sqlx scan target.
type entryRow struct {
	ID               string `db:"id"`
	StoreLocation    string `db:"store_location"`
	WasteDonatedKg   string `db:"waste_donated_kg"`
	WasteReducedKg   string `db:"waste_reduced_kg"`
	WasteGeneratedKg string `db:"waste_generated_kg"`
	EntryDate        string `db:"entry_date"`
	AIScore          string `db:"ai_score"`
	RecordedAt       string `db:"recorded_at"`
}

const selectColumns = `id, store_location, waste_donated_kg, waste_reduced_kg, waste_generated_kg, entry_date, ai_score, recorded_at`

func (s *Store) Append(ctx context.Context, e leaderboard.Entry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sustainability_entries
			(id, store_location, waste_donated_kg, waste_reduced_kg, waste_generated_kg, entry_date, ai_score, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID,
		e.StoreLocation,
		e.WasteDonatedKg.String(),
		e.WasteReducedKg.String(),
		e.WasteGeneratedKg.String(),
		e.Date.String(),
		e.AIScore.String(),
		e.RecordedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("append entry: %w", err)
	}
	return nil
}

func (s *Store) List(ctx context.Context) ([]leaderboard.Entry, error) {
	return s.list(ctx, `SELECT `+selectColumns+` FROM sustainability_entries ORDER BY rowid`)
}

func (s *Store) ListOn(ctx context.Context, day engine.Date) ([]leaderboard.Entry, error) {
	return s.list(ctx, `SELECT `+selectColumns+` FROM sustainability_entries WHERE entry_date = ? ORDER BY rowid`,
		day.String())
}

func (s *Store) ListInMonth(ctx context.Context, year int, month time.Month) ([]leaderboard.Entry, error) {
	from := engine.StartOfMonth(year, month)
	to := engine.StartOfMonth(year, month+1)
	return s.list(ctx, `SELECT `+selectColumns+` FROM sustainability_entries WHERE entry_date >= ? AND entry_date < ? ORDER BY rowid`,
		from.String(), to.String())
}

func (s *Store) list(ctx context.Context, query string, args ...any) ([]leaderboard.Entry, error) {
	var rows []entryRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	entries := make([]leaderboard.Entry, 0, len(rows))
	for _, r := range rows {
		e, err := r.toEntry()
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (r entryRow) toEntry() (leaderboard.Entry, error) {
	donated, err := decimal.NewFromString(r.WasteDonatedKg)
	if err != nil {
		return leaderboard.Entry{}, fmt.Errorf("parse waste_donated_kg: %w", err)
	}
	reduced, err := decimal.NewFromString(r.WasteReducedKg)
	if err != nil {
		return leaderboard.Entry{}, fmt.Errorf("parse waste_reduced_kg: %w", err)
	}
	generated, err := decimal.NewFromString(r.WasteGeneratedKg)
	if err != nil {
		return leaderboard.Entry{}, fmt.Errorf("parse waste_generated_kg: %w", err)
	}
	score, err := decimal.NewFromString(r.AIScore)
	if err != nil {
		return leaderboard.Entry{}, fmt.Errorf("parse ai_score: %w", err)
	}
	date, err := engine.ParseDate("2006-01-02", r.EntryDate)
	if err != nil {
		return leaderboard.Entry{}, fmt.Errorf("parse entry_date: %w", err)
	}
	recordedAt, err := time.Parse(time.RFC3339, r.RecordedAt)
	if err != nil {
		return leaderboard.Entry{}, fmt.Errorf("parse recorded_at: %w", err)
	}

	return leaderboard.Entry{
		ID:               r.ID,
		StoreLocation:    r.StoreLocation,
		WasteDonatedKg:   donated,
		WasteReducedKg:   reduced,
		WasteGeneratedKg: generated,
		Date:             date,
		AIScore:          score,
		RecordedAt:       recordedAt,
	}, nil
}
