// File: pool/manager.go
// Author: momentics <momentics@gmail.com>
//
// Manager hands out one pool per token size, lazily created. Typical usage
// is one pool per output port of a producing block; ports sharing a token
// size share the pool.

package pool

import (
	"sync"

	"github.com/momentics/hioload-buf/api"
)

// Manager is a registry of pools keyed by token size.
type Manager struct {
	mu       sync.RWMutex
	defaults Config
	pools    map[int]*Pool
}

// NewManager creates a manager. defaults supplies TokenCount, wait policy,
// and allocator for lazily created pools; TokenBytes is taken per request.
func NewManager(defaults Config) *Manager {
	return &Manager{
		defaults: defaults,
		pools:    make(map[int]*Pool),
	}
}

// Pool returns the pool for the requested token size, creating it on first
// use with the manager's defaults.
func (m *Manager) Pool(tokenBytes int) (*Pool, error) {
	m.mu.RLock()
	p, ok := m.pools[tokenBytes]
	m.mu.RUnlock()
	if ok {
		return p, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.pools[tokenBytes]; ok {
		return p, nil
	}
	cfg := m.defaults
	cfg.TokenBytes = tokenBytes
	cfg.Name = ""
	p, err := New(cfg)
	if err != nil {
		return nil, err
	}
	m.pools[tokenBytes] = p
	return p, nil
}

// Pools returns all pools created so far.
func (m *Manager) Pools() []*Pool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Pool, 0, len(m.pools))
	for _, p := range m.pools {
		out = append(out, p)
	}
	return out
}

// Stats snapshots every managed pool, keyed by pool name.
func (m *Manager) Stats() map[string]api.PoolStats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]api.PoolStats, len(m.pools))
	for _, p := range m.pools {
		out[p.Name()] = p.Stats()
	}
	return out
}

// Close closes every managed pool and forgets them. Tokens still checked
// out remain valid until their last reference drops.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.pools {
		p.Close()
	}
	m.pools = make(map[int]*Pool)
}
