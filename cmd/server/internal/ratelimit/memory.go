package ratelimit

import (
	"sync"
	"time"
)

const sweepInterval = 5 * time.Minute

type windowEntry struct {
	resetAt time.Time
	count   int64
}

// MemoryLimiterStore is a fixed-window counter held in process memory. State
// lives for the process lifetime; a background sweep drops expired windows so
// the map stays bounded. Single-instance deployments only.
type MemoryLimiterStore struct {
	now         func() time.Time
	entries     map[string]*windowEntry
	maxRequests int64
	window      time.Duration
	mu          sync.Mutex
}

type MemoryLimiterConfig struct {
	MaxRequests int64
	Window      time.Duration
}

func NewMemoryLimiterStore(config MemoryLimiterConfig) *MemoryLimiterStore {
	store := &MemoryLimiterStore{
		now:         time.Now,
		entries:     make(map[string]*windowEntry),
		maxRequests: config.MaxRequests,
		window:      config.Window,
	}

	go store.sweep()

	return store
}

func (store *MemoryLimiterStore) Allow(identifier string) (bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	now := store.now()

	entry, ok := store.entries[identifier]
	if !ok || now.After(entry.resetAt) {
		store.entries[identifier] = &windowEntry{
			count:   1,
			resetAt: now.Add(store.window),
		}
		return true, nil
	}

	if entry.count >= store.maxRequests {
		return false, nil
	}

	entry.count++
	return true, nil
}

func (store *MemoryLimiterStore) sweep() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for range ticker.C {
		store.sweepExpired()
	}
}

func (store *MemoryLimiterStore) sweepExpired() {
	now := store.now()

	store.mu.Lock()
	defer store.mu.Unlock()

	for identifier, entry := range store.entries {
		if now.After(entry.resetAt) {
			delete(store.entries, identifier)
		}
	}
}
