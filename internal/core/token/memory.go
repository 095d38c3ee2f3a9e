package token

import (
	"context"
	"sync"
	"time"
)

// MemoryDenylist is an in process Denylist used when no redis is configured
// entries are pruned lazily once their expiry has passed
type MemoryDenylist struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

// NewMemoryDenylist returns an empty denylist
func NewMemoryDenylist() *MemoryDenylist {
	return &MemoryDenylist{entries: map[string]time.Time{}, now: time.Now}
}

// Deny revokes id until the given instant
func (m *MemoryDenylist) Deny(_ context.Context, id string, until time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prune()
	if until.After(m.now()) {
		m.entries[id] = until
	}
	return nil
}

// Denied reports whether id is revoked
func (m *MemoryDenylist) Denied(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	until, ok := m.entries[id]
	if !ok {
		return false, nil
	}
	if !until.After(m.now()) {
		delete(m.entries, id)
		return false, nil
	}
	return true, nil
}

// Len returns the number of live entries
func (m *MemoryDenylist) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prune()
	return len(m.entries)
}

func (m *MemoryDenylist) prune() {
	now := m.now()
	for id, until := range m.entries {
		if !until.After(now) {
			delete(m.entries, id)
		}
	}
}
