// Package cache provides snapshot stores for the catalog gateway.
package cache

import (
	"context"
	"sync"
	"time"

	"corralon_backend/internal/catalog/transport"
)

// SnapshotStore caches upstream snapshots per dataset key with a TTL.
// Clear drops every cached snapshot.
type SnapshotStore interface {
	Get(ctx context.Context, key string) (transport.Snapshot, bool, error)
	Set(ctx context.Context, key string, snapshot transport.Snapshot, ttl time.Duration) error
	Clear(ctx context.Context) error
}

type memoryEntry struct {
	snapshot  transport.Snapshot
	expiresAt time.Time
}

// MemoryStore is an in-process SnapshotStore. The zero value is not usable;
// use NewMemoryStore.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryStore creates an empty in-memory snapshot store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// Get returns the cached snapshot for key if present and not expired.
func (s *MemoryStore) Get(_ context.Context, key string) (transport.Snapshot, bool, error) {
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok || s.now().After(entry.expiresAt) {
		return transport.Snapshot{}, false, nil
	}
	return entry.snapshot, true, nil
}

// Set stores a snapshot under key for the given TTL.
func (s *MemoryStore) Set(_ context.Context, key string, snapshot transport.Snapshot, ttl time.Duration) error {
	s.mu.Lock()
	s.entries[key] = memoryEntry{snapshot: snapshot, expiresAt: s.now().Add(ttl)}
	s.mu.Unlock()
	return nil
}

// Clear drops all cached snapshots.
func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	s.entries = make(map[string]memoryEntry)
	s.mu.Unlock()
	return nil
}

// SetClock overrides the time source. Test hook.
func (s *MemoryStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	s.now = now
	s.mu.Unlock()
}

var _ SnapshotStore = (*MemoryStore)(nil)
