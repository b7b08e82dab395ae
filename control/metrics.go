// control/metrics.go
// Author: momentics <momentics@gmail.com>
//
// Runtime statistics registry for pool monitoring. Stats sources register
// under a name; snapshots pull live counters without touching hot paths.

package control

import (
	"sync"
	"time"

	"github.com/momentics/hioload-buf/api"
)

// Registry holds named pool statistics sources.
type Registry struct {
	mu      sync.RWMutex
	sources map[string]api.StatsSource
	updated time.Time
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		sources: make(map[string]api.StatsSource),
	}
}

// Register adds or replaces a stats source under a name.
func (r *Registry) Register(name string, src api.StatsSource) {
	r.mu.Lock()
	r.sources[name] = src
	r.updated = time.Now()
	r.mu.Unlock()
}

// Unregister removes a source.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	delete(r.sources, name)
	r.updated = time.Now()
	r.mu.Unlock()
}

// Snapshot pulls current statistics from every registered source.
func (r *Registry) Snapshot() map[string]api.PoolStats {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]api.PoolStats, len(r.sources))
	for name, src := range r.sources {
		out[name] = src.Stats()
	}
	return out
}

// Updated returns the time of the last registration change.
func (r *Registry) Updated() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.updated
}
