package service

import (
	"context"

	"vouch/internal/attachment"
	"vouch/internal/verification/models"
	"vouch/pkg/domain"
)

//go:generate mockgen -source=contracts.go -destination=mocks/mocks.go -package=mocks

// MetaStore is the narrow per-subject key/value surface the service persists
// records through. Get returns the empty string for keys never written.
type MetaStore interface {
	Get(ctx context.Context, subjectID, key string) (string, error)
	Set(ctx context.Context, subjectID, key, value string) error
}

// AttachmentChecker decides whether a submitted file reference may be stored.
type AttachmentChecker interface {
	Validate(ctx context.Context, id int64, actor domain.Principal, requireOwnership bool) (*attachment.AcceptedReference, error)
}

// EventPublisher emits record-change events. Implementations must not block
// the request path on broker availability.
type EventPublisher interface {
	Publish(ctx context.Context, event models.Event)
}

// BadgeInvalidator drops any cached badge state for a subject after the
// verified flag changes.
type BadgeInvalidator interface {
	Invalidate(ctx context.Context, subjectID string) error
}
