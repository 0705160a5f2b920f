// Package cache holds the read-through cache of travel views, keyed by
// travel ID. Entries are written by a successful lookup and removed by a
// delete; they never expire on their own.
package cache

import (
	"context"
	"sync"

	"github.com/pkordes/timetravel/internal/domain"
)

// TravelCache stores travel views by travel ID.
type TravelCache interface {
	// Get returns the cached view and true, or false on a miss.
	Get(ctx context.Context, id string) (domain.TravelView, bool, error)
	// Set stores the view for id, replacing any previous entry.
	Set(ctx context.Context, id string, view domain.TravelView) error
	// Delete evicts id. Evicting a missing id is not an error.
	Delete(ctx context.Context, id string) error
}

// Memory is a process-local TravelCache. It is unbounded and has no TTL.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]domain.TravelView
}

// NewMemory returns an empty in-process cache.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]domain.TravelView)}
}

// Get returns the cached view for id. It never fails.
func (m *Memory) Get(_ context.Context, id string) (domain.TravelView, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.entries[id]
	return v, ok, nil
}

// Set stores view under id.
func (m *Memory) Set(_ context.Context, id string, view domain.TravelView) error {
	m.mu.Lock()
	m.entries[id] = view
	m.mu.Unlock()
	return nil
}

// Delete evicts id; a missing id is ignored.
func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	delete(m.entries, id)
	m.mu.Unlock()
	return nil
}

// Len returns the number of cached entries.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
