// Package postgres provides a PostgreSQL-backed implementation of the
// ledger Store, for deployments where SQLite is not enough. Selected via
// DATABASE_URL; the schema mirrors store/sqlite with a BIGSERIAL sequence
// preserving append order.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/greenshelf/advisory-engine/engine"
	"github.com/greenshelf/advisory-engine/leaderboard"
)

const schema = `
CREATE TABLE IF NOT EXISTS sustainability_entries (
	seq BIGSERIAL PRIMARY KEY,
	id TEXT NOT NULL UNIQUE,
	store_location TEXT NOT NULL,
	waste_donated_kg TEXT NOT NULL,
	waste_reduced_kg TEXT NOT NULL,
	waste_generated_kg TEXT NOT NULL,
	entry_date TEXT NOT NULL,
	ai_score TEXT NOT NULL,
	recorded_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_entries_date ON sustainability_entries(entry_date);
CREATE INDEX IF NOT EXISTS idx_entries_store ON sustainability_entries(store_location);
`

type Store struct {
	pool *pgxpool.Pool
}

// New connects, pings, and migrates.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	return &Store{pool: pool}, nil
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

func (s *Store) Append(ctx context.Context, e leaderboard.Entry) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO sustainability_entries
			(id, store_location, waste_donated_kg, waste_reduced_kg, waste_generated_kg, entry_date, ai_score, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO NOTHING`,
		e.ID,
		e.StoreLocation,
		e.WasteDonatedKg.String(),
		e.WasteReducedKg.String(),
		e.WasteGeneratedKg.String(),
		e.Date.String(),
		e.AIScore.String(),
		e.RecordedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("append entry: %w", err)
	}
	return nil
}

const selectColumns = `id, store_location, waste_donated_kg, waste_reduced_kg, waste_generated_kg, entry_date, ai_score, recorded_at`

func (s *Store) List(ctx context.Context) ([]leaderboard.Entry, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+selectColumns+` FROM sustainability_entries ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	return scanEntries(rows)
}

func (s *Store) ListOn(ctx context.Context, day engine.Date) ([]leaderboard.Entry, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+selectColumns+` FROM sustainability_entries WHERE entry_date = $1 ORDER BY seq`,
		day.String())
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	return scanEntries(rows)
}

func (s *Store) ListInMonth(ctx context.Context, year int, month time.Month) ([]leaderboard.Entry, error) {
	from := engine.StartOfMonth(year, month)
	to := engine.StartOfMonth(year, month+1)
	rows, err := s.pool.Query(ctx, `SELECT `+selectColumns+` FROM sustainability_entries WHERE entry_date >= $1 AND entry_date < $2 ORDER BY seq`,
		from.String(), to.String())
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	return scanEntries(rows)
}

func scanEntries(rows pgx.Rows) ([]leaderboard.Entry, error) {
	defer rows.Close()

	var entries []leaderboard.Entry
	for rows.Next() {
		var (
			e          leaderboard.Entry
			donated    string
			reduced    string
			generated  string
			entryDate  string
			score      string
			recordedAt time.Time
		)
		if err := rows.Scan(&e.ID, &e.StoreLocation, &donated, &reduced, &generated, &entryDate, &score, &recordedAt); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}

		var err error
		if e.WasteDonatedKg, err = decimal.NewFromString(donated); err != nil {
			return nil, fmt.Errorf("parse waste_donated_kg: %w", err)
		}
		if e.WasteReducedKg, err = decimal.NewFromString(reduced); err != nil {
			return nil, fmt.Errorf("parse waste_reduced_kg: %w", err)
		}
		if e.WasteGeneratedKg, err = decimal.NewFromString(generated); err != nil {
			return nil, fmt.Errorf("parse waste_generated_kg: %w", err)
		}
		if e.AIScore, err = decimal.NewFromString(score); err != nil {
			return nil, fmt.Errorf("parse ai_score: %w", err)
		}
		if e.Date, err = engine.ParseDate("2006-01-02", entryDate); err != nil {
			return nil, fmt.Errorf("parse entry_date: %w", err)
		}
		e.RecordedAt = recordedAt

		entries = append(entries, e)
	}
	return entries, rows.Err()
}
