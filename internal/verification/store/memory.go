// Package store persists verification metadata as per-subject key/value
// pairs. A missing key is not an error; it reads as the empty string.
package store

import (
	"context"
	"sync"
)

// InMemory keeps metadata in a map. Used in tests and when no database is
// configured.
type InMemory struct {
	mu   sync.RWMutex
	meta map[string]map[string]string
}

func NewInMemory() *InMemory {
	return &InMemory{meta: make(map[string]map[string]string)}
}

func (s *InMemory) Get(_ context.Context, subjectID, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.meta[subjectID][key], nil
}

func (s *InMemory) Set(_ context.Context, subjectID, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.meta[subjectID]
	if !ok {
		m = make(map[string]string)
		s.meta[subjectID] = m
	}
	m[key] = value
	return nil
}
