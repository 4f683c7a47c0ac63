// Package service implements the verification record lifecycle: reading a
// subject's record and applying writes through the two entry paths, each with
// its own policy for invalid submissions.
package service

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"vouch/internal/verification/metrics"
	"vouch/internal/verification/models"
	dErrors "vouch/pkg/domain-errors"
	"vouch/pkg/domain"
	"vouch/pkg/platform/middleware/metadata"
	"vouch/pkg/requestcontext"
)

// Write paths, used as metric and span labels.
const (
	pathPrivileged  = "privileged"
	pathSelfService = "self_service"
)

type Service struct {
	meta        MetaStore
	checker     AttachmentChecker
	registry    *models.Registry
	publisher   EventPublisher
	invalidator BadgeInvalidator
	metrics     *metrics.Metrics
	logger      *slog.Logger
	tracer      trace.Tracer
}

func New(meta MetaStore, checker AttachmentChecker, registry *models.Registry, opts ...Option) *Service {
	s := &Service{
		meta:      meta,
		checker:   checker,
		registry:  registry,
		publisher: noopPublisher{},
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		tracer:    otel.Tracer("vouch/verification"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetBadgeInvalidator wires the badge cache after construction. The badge
// service reads records through this service, so it cannot exist first.
func (s *Service) SetBadgeInvalidator(b BadgeInvalidator) {
	s.invalidator = b
}

// Get assembles a subject's record from stored metadata. Subjects that were
// never written read as an all-defaults record, not as missing.
func (s *Service) Get(ctx context.Context, subjectID string) (*models.Record, error) {
	rec := &models.Record{SubjectID: subjectID}

	docType, err := s.meta.Get(ctx, subjectID, models.MetaKeyDocumentType)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "read verification record")
	}
	rec.DocumentType = s.registry.Normalize(docType)

	verified, err := s.meta.Get(ctx, subjectID, models.MetaKeyVerified)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "read verification record")
	}
	rec.Verified = verified == models.VerifiedYes

	for key, dst := range map[string]*int64{
		models.MetaKeyDocumentFront: &rec.DocumentFront,
		models.MetaKeyDocumentBack:  &rec.DocumentBack,
	} {
		raw, err := s.meta.Get(ctx, subjectID, key)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "read verification record")
		}
		if id, parseErr := strconv.ParseInt(raw, 10, 64); parseErr == nil && id > 0 {
			*dst = id
		}
	}
	return rec, nil
}

// ApplyPrivileged writes a record on behalf of an editor. Every submitted
// field is persisted: attachment references that fail validation are zeroed
// rather than retained, and the verified flag is honored.
func (s *Service) ApplyPrivileged(ctx context.Context, actor domain.Principal, subjectID string, patch models.Patch) (*models.Record, error) {
	ctx, span := s.tracer.Start(ctx, "verification.apply_privileged",
		trace.WithAttributes(attribute.String("verification.subject_id", subjectID)))
	defer span.End()
	started := time.Now()

	if !actor.CanEditUser(subjectID) {
		s.metrics.ObserveSave(pathPrivileged, "denied", time.Since(started))
		return nil, dErrors.New(dErrors.CodeForbidden, "actor may not edit this record")
	}

	prev, err := s.Get(ctx, subjectID)
	if err != nil {
		s.metrics.ObserveSave(pathPrivileged, "error", time.Since(started))
		return nil, err
	}
	next := *prev

	if patch.DocumentType != nil {
		next.DocumentType = s.registry.Normalize(*patch.DocumentType)
		if err := s.set(ctx, subjectID, models.MetaKeyDocumentType, next.DocumentType); err != nil {
			s.metrics.ObserveSave(pathPrivileged, "error", time.Since(started))
			return nil, err
		}
	}

	if patch.Verified != nil {
		next.Verified = *patch.Verified
		value := models.VerifiedNo
		if next.Verified {
			value = models.VerifiedYes
		}
		if err := s.set(ctx, subjectID, models.MetaKeyVerified, value); err != nil {
			s.metrics.ObserveSave(pathPrivileged, "error", time.Since(started))
			return nil, err
		}
		if next.Verified != prev.Verified {
			s.onVerifiedChange(ctx, actor, &next, value)
		}
	}

	for _, field := range []struct {
		submitted *int64
		key       string
		dst       *int64
	}{
		{patch.DocumentFront, models.MetaKeyDocumentFront, &next.DocumentFront},
		{patch.DocumentBack, models.MetaKeyDocumentBack, &next.DocumentBack},
	} {
		if field.submitted == nil {
			continue
		}
		accepted, err := s.checkAttachment(ctx, actor, *field.submitted, true)
		if err != nil {
			s.metrics.ObserveSave(pathPrivileged, "error", time.Since(started))
			return nil, err
		}
		*field.dst = accepted
		if err := s.set(ctx, subjectID, field.key, strconv.FormatInt(accepted, 10)); err != nil {
			s.metrics.ObserveSave(pathPrivileged, "error", time.Since(started))
			return nil, err
		}
	}

	s.publish(ctx, actor, &next, models.EventDocumentsUpdated)
	s.metrics.ObserveSave(pathPrivileged, "ok", time.Since(started))
	return &next, nil
}

// ApplySelfService writes a record for its own subject. The document type is
// always persisted after registry coercion; file references that fail
// validation are skipped so the prior stored value survives; the verified
// flag is never touched.
func (s *Service) ApplySelfService(ctx context.Context, actor domain.Principal, patch models.Patch) (*models.Record, error) {
	ctx, span := s.tracer.Start(ctx, "verification.apply_self_service",
		trace.WithAttributes(attribute.String("verification.subject_id", actor.ID)))
	defer span.End()
	started := time.Now()

	if actor.IsAnonymous() {
		s.metrics.ObserveSave(pathSelfService, "denied", time.Since(started))
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	subjectID := actor.ID

	if patch.DocumentType != nil {
		normalized := s.registry.Normalize(*patch.DocumentType)
		if err := s.set(ctx, subjectID, models.MetaKeyDocumentType, normalized); err != nil {
			s.metrics.ObserveSave(pathSelfService, "error", time.Since(started))
			return nil, err
		}
	}

	for _, field := range []struct {
		submitted *int64
		key       string
	}{
		{patch.DocumentFront, models.MetaKeyDocumentFront},
		{patch.DocumentBack, models.MetaKeyDocumentBack},
	} {
		if field.submitted == nil || *field.submitted <= 0 {
			continue
		}
		if !actor.Can(domain.CapUploadFiles) {
			s.logger.WarnContext(ctx, "file reference skipped, actor lacks upload capability",
				"subject_id", subjectID)
			s.metrics.AttachmentRejected("no_upload_capability")
			continue
		}
		accepted, err := s.checkAttachment(ctx, actor, *field.submitted, false)
		if err != nil {
			s.metrics.ObserveSave(pathSelfService, "error", time.Since(started))
			return nil, err
		}
		if accepted == 0 {
			continue
		}
		if err := s.set(ctx, subjectID, field.key, strconv.FormatInt(accepted, 10)); err != nil {
			s.metrics.ObserveSave(pathSelfService, "error", time.Since(started))
			return nil, err
		}
	}

	rec, err := s.Get(ctx, subjectID)
	if err != nil {
		s.metrics.ObserveSave(pathSelfService, "error", time.Since(started))
		return nil, err
	}
	s.publish(ctx, actor, rec, models.EventDocumentsUpdated)
	s.metrics.ObserveSave(pathSelfService, "ok", time.Since(started))
	return rec, nil
}

// checkAttachment runs one submitted reference through the validator and
// returns the id to store, or 0 when the reference was absent or rejected.
// A catalog outage is not a rejection and surfaces as an error so callers
// abort instead of overwriting a stored reference.
func (s *Service) checkAttachment(ctx context.Context, actor domain.Principal, id int64, requireOwnership bool) (int64, error) {
	ref, err := s.checker.Validate(ctx, id, actor, requireOwnership)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeStoreUnavailable) {
			return 0, err
		}
		s.logger.WarnContext(ctx, "attachment reference rejected",
			"attachment_id", id, "error", err)
		s.metrics.AttachmentRejected(rejectionReason(err))
		return 0, nil
	}
	if ref == nil {
		return 0, nil
	}
	return ref.ID, nil
}

func (s *Service) set(ctx context.Context, subjectID, key, value string) error {
	if err := s.meta.Set(ctx, subjectID, key, value); err != nil {
		return dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "persist verification record")
	}
	return nil
}

func (s *Service) onVerifiedChange(ctx context.Context, actor domain.Principal, rec *models.Record, value string) {
	s.metrics.VerifiedChanged(value)
	if s.invalidator != nil {
		if err := s.invalidator.Invalidate(ctx, rec.SubjectID); err != nil {
			s.logger.WarnContext(ctx, "badge cache invalidation failed",
				"subject_id", rec.SubjectID, "error", err)
		}
	}
	eventType := models.EventSellerUnverified
	if rec.Verified {
		eventType = models.EventSellerVerified
	}
	s.publish(ctx, actor, rec, eventType)
}

func (s *Service) publish(ctx context.Context, actor domain.Principal, rec *models.Record, eventType string) {
	s.publisher.Publish(ctx, models.Event{
		ID:           uuid.NewString(),
		Type:         eventType,
		SubjectID:    rec.SubjectID,
		ActorID:      actor.ID,
		DocumentType: rec.DocumentType,
		Verified:     rec.Verified,
		OccurredAt:   requestcontext.Now(ctx),
		Client:       metadata.SummarizeUserAgent(requestcontext.UserAgent(ctx)),
	})
}

func rejectionReason(err error) string {
	switch {
	case dErrors.HasCode(err, dErrors.CodeNotFound):
		return "not_found"
	case dErrors.HasCode(err, dErrors.CodeDisallowedType):
		return "disallowed_type"
	case dErrors.HasCode(err, dErrors.CodeForbidden):
		return "forbidden"
	default:
		return "other"
	}
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, models.Event) {}
