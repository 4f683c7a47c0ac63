package store

import (
	"context"
	"sync"

	"vouch/internal/attachment"
	"vouch/pkg/platform/sentinel"
)

// InMemory is an in-memory attachment catalog. It backs unit tests and
// single-node deployments that mirror the media library locally.
type InMemory struct {
	mu          sync.RWMutex
	attachments map[int64]*attachment.Attachment
}

// NewInMemory creates an in-memory attachment catalog.
func NewInMemory() *InMemory {
	return &InMemory{attachments: make(map[int64]*attachment.Attachment)}
}

// Put registers an attachment in the catalog.
func (s *InMemory) Put(_ context.Context, att *attachment.Attachment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attachments[att.ID] = att
	return nil
}

// Resolve retrieves an attachment by id.
func (s *InMemory) Resolve(_ context.Context, id int64) (*attachment.Attachment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if att, ok := s.attachments[id]; ok {
		copied := *att
		return &copied, nil
	}
	return nil, sentinel.ErrNotFound
}
