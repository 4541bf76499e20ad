package activity

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultMemoryCapacity is the number of entries MemoryStore keeps by default.
const DefaultMemoryCapacity = 1000

// MemoryStore keeps the most recent entries in memory.
type MemoryStore struct {
	mu       sync.RWMutex
	entries  []Entry
	capacity int
	now      func() time.Time
}

// NewMemoryStore creates a store holding at most capacity entries.
func NewMemoryStore(capacity int) *MemoryStore {
	if capacity <= 0 {
		capacity = DefaultMemoryCapacity
	}
	return &MemoryStore{capacity: capacity, now: time.Now}
}

func (m *MemoryStore) Record(_ context.Context, e Entry) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = m.now()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = append(m.entries, e)
	if over := len(m.entries) - m.capacity; over > 0 {
		m.entries = append(m.entries[:0:0], m.entries[over:]...)
	}
	return nil
}

func (m *MemoryStore) Recent(_ context.Context, limit int) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if limit <= 0 || limit > len(m.entries) {
		limit = len(m.entries)
	}

	out := make([]Entry, 0, limit)
	for i := len(m.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.entries[i])
	}
	return out, nil
}

func (m *MemoryStore) PurgeOlderThan(_ context.Context, age time.Duration) (int64, error) {
	cutoff := m.now().Add(-age)

	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.entries[:0:0]
	for _, e := range m.entries {
		if !e.CreatedAt.Before(cutoff) {
			kept = append(kept, e)
		}
	}
	purged := int64(len(m.entries) - len(kept))
	m.entries = kept
	return purged, nil
}
