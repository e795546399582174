package leaderboard

import (
	"context"
	"time"

	"github.com/greenshelf/advisory-engine/engine"
)

// =============================================================================
// STORE - Persistence interface for ledger entries (append-only)
// =============================================================================

// Store persists ledger entries.
// IMPORTANT: Store is APPEND-ONLY. No Update, No Delete. Ever.
//
// Implementations must return entries in append order; view ranking relies
// on it for deterministic tie-breaking.
type Store interface {
	// Append persists a single entry. This is the ONLY write operation.
	Append(ctx context.Context, e Entry) error

	// List returns the full ledger in append order.
	List(ctx context.Context) ([]Entry, error)

	// ListOn returns entries dated exactly day, in append order.
	ListOn(ctx context.Context, day engine.Date) ([]Entry, error)

	// ListInMonth returns entries dated within (year, month), in append order.
	ListInMonth(ctx context.Context, year int, month time.Month) ([]Entry, error)
}
