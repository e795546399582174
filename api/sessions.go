package api

import (
	"sync"

	"github.com/google/uuid"
)

// =============================================================================
// UPLOAD SESSIONS - Request-scoped handles for uploaded batch results
// =============================================================================

// sessionRegistry keeps forecast results addressable after an upload, so
// chart reads reference an explicit session id instead of a process-wide
// "last uploaded batch". Bounded: oldest sessions are evicted first.
type sessionRegistry struct {
	mu      sync.Mutex
	results map[string]ForecastResponse
	order   []string
	limit   int
}

func newSessionRegistry(limit int) *sessionRegistry {
	if limit <= 0 {
		limit = 64
	}
	return &sessionRegistry{
		results: make(map[string]ForecastResponse),
		limit:   limit,
	}
}

// put stores a result and returns its session id.
func (r *sessionRegistry) put(resp ForecastResponse) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := uuid.NewString()
	resp.SessionID = id
	r.results[id] = resp
	r.order = append(r.order, id)

	for len(r.order) > r.limit {
		delete(r.results, r.order[0])
		r.order = r.order[1:]
	}
	return id
}

func (r *sessionRegistry) get(id string) (ForecastResponse, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	resp, ok := r.results[id]
	return resp, ok
}
