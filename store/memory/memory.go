// Package memory provides an in-memory Store implementation (for testing/dev).
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/greenshelf/advisory-engine/engine"
	"github.com/greenshelf/advisory-engine/leaderboard"
)

type Store struct {
	mu      sync.RWMutex
	entries []leaderboard.Entry
}

func New() *Store {
	return &Store{}
}

// Append adds a single entry. Append-only.
func (s *Store) Append(_ context.Context, e leaderboard.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, e)
	return nil
}

func (s *Store) List(_ context.Context) ([]leaderboard.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]leaderboard.Entry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

func (s *Store) ListOn(_ context.Context, day engine.Date) ([]leaderboard.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []leaderboard.Entry
	for _, e := range s.entries {
		if e.Date.Equal(day) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *Store) ListInMonth(_ context.Context, year int, month time.Month) ([]leaderboard.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []leaderboard.Entry
	for _, e := range s.entries {
		if e.Date.Year == year && e.Date.Month == month {
			out = append(out, e)
		}
	}
	return out, nil
}
