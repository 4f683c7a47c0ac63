package nonce

import (
	"context"
	"sync"
	"time"

	"vouch/pkg/platform/sentinel"
	"vouch/pkg/requestcontext"
)

// InMemoryStore keeps nonce records in memory. Suitable for single-instance
// deployments and tests; multi-instance deployments use the Redis store so
// issue and verify can land on different nodes.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{records: make(map[string]Record)}
}

// Save stores the record. The TTL is carried by the record's ExpiresAt;
// expired entries are dropped lazily on lookup.
func (s *InMemoryStore) Save(_ context.Context, rec Record, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.ID] = rec
	return nil
}

// Find retrieves a record by id, treating expired entries as absent.
func (s *InMemoryStore) Find(ctx context.Context, id string) (Record, error) {
	s.mu.RLock()
	rec, ok := s.records[id]
	s.mu.RUnlock()
	if !ok {
		return Record{}, sentinel.ErrNotFound
	}
	if requestcontext.Now(ctx).After(rec.ExpiresAt) {
		s.mu.Lock()
		delete(s.records, id)
		s.mu.Unlock()
		return Record{}, sentinel.ErrNotFound
	}
	return rec, nil
}
