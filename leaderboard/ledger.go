/*
ledger.go - Serialized writer over the sustainability ledger

PURPOSE:
  Concurrent upload requests must not interleave appends, and a reader must
  never observe a partially written row. The Ledger serializes writes with a
  single mutex while reads go straight to the store, which returns a
  consistent snapshot. Stale-but-consistent reads are acceptable.

WHY A SINGLE WRITER LOCK?
  Ingest volume is tiny (one row per store per upload) and every view is a
  full scan anyway. A lock is simpler than a queue and gives the same
  guarantee: appends are atomic with respect to readers.
*/
package leaderboard

import (
	"context"
	"sync"
	"time"

	"github.com/greenshelf/advisory-engine/engine"
)

// Ledger wraps a Store with serialized appends.
type Ledger struct {
	store Store

	mu sync.Mutex // serializes Append; reads are lock-free
}

func NewLedger(store Store) *Ledger {
	return &Ledger{store: store}
}

// Append writes a single scored entry. Appends are serialized process-wide.
func (l *Ledger) Append(ctx context.Context, e Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.store.Append(ctx, e)
}

// Snapshot returns the full ledger in append order.
func (l *Ledger) Snapshot(ctx context.Context) ([]Entry, error) {
	return l.store.List(ctx)
}

// EntriesOn returns the ledger rows for one day, in append order.
func (l *Ledger) EntriesOn(ctx context.Context, day engine.Date) ([]Entry, error) {
	return l.store.ListOn(ctx, day)
}

// EntriesInMonth returns the ledger rows for one month, in append order.
func (l *Ledger) EntriesInMonth(ctx context.Context, year int, month time.Month) ([]Entry, error) {
	return l.store.ListInMonth(ctx, year, month)
}
