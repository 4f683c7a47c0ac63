// Package nonce implements the anti-forgery tokens guarding verification
// writes. Tokens are scoped to one operation and bound to the principal they
// were issued to, with a bounded validity window.
package nonce

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	dErrors "vouch/pkg/domain-errors"
	"vouch/pkg/platform/sentinel"
	"vouch/pkg/requestcontext"
	"vouch/pkg/secrets"
)

// Operation scopes recognized by the service.
const (
	ScopeAdminSave     = "seller_verification_save"
	ScopeDashboardAjax = "directorist_sv_dashboard_ajax"
)

// Record is a stored nonce. Only the bcrypt hash of the secret half of the
// token is kept at rest.
type Record struct {
	ID          string    `json:"id"`
	Scope       string    `json:"scope"`
	PrincipalID string    `json:"principal_id"`
	SecretHash  string    `json:"secret_hash"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Store persists nonce records until they expire.
type Store interface {
	Save(ctx context.Context, rec Record, ttl time.Duration) error
	Find(ctx context.Context, id string) (Record, error)
}

// Service issues and verifies anti-forgery tokens.
type Service struct {
	store Store
	ttl   time.Duration
}

func NewService(store Store, ttl time.Duration) *Service {
	return &Service{store: store, ttl: ttl}
}

// Issue creates a token of the form "<id>.<secret>" scoped to one operation
// and bound to the given principal.
func (s *Service) Issue(ctx context.Context, scope, principalID string) (string, error) {
	secret, err := secrets.Generate()
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "could not generate nonce")
	}
	hash, err := secrets.Hash(secret)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "could not hash nonce")
	}

	rec := Record{
		ID:          uuid.NewString(),
		Scope:       scope,
		PrincipalID: principalID,
		SecretHash:  hash,
		ExpiresAt:   requestcontext.Now(ctx).Add(s.ttl),
	}
	if err := s.store.Save(ctx, rec, s.ttl); err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "could not persist nonce")
	}
	return rec.ID + "." + secret, nil
}

// Verify checks a presented token against scope, principal binding, and
// expiry. Any mismatch yields CodeForbidden; callers treat that as an
// aborted operation, never a partial write.
func (s *Service) Verify(ctx context.Context, token, scope, principalID string) error {
	id, secret, ok := splitToken(token)
	if !ok {
		return dErrors.New(dErrors.CodeForbidden, "malformed nonce")
	}

	rec, err := s.store.Find(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeForbidden, "unknown or expired nonce")
		}
		return dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "nonce lookup failed")
	}

	if rec.Scope != scope || rec.PrincipalID != principalID {
		return dErrors.New(dErrors.CodeForbidden, "nonce scope mismatch")
	}
	if requestcontext.Now(ctx).After(rec.ExpiresAt) {
		return dErrors.New(dErrors.CodeForbidden, "nonce expired")
	}
	if err := secrets.Verify(secret, rec.SecretHash); err != nil {
		return dErrors.New(dErrors.CodeForbidden, "invalid nonce")
	}
	return nil
}

func splitToken(token string) (id, secret string, ok bool) {
	id, secret, found := strings.Cut(token, ".")
	if !found || id == "" || secret == "" {
		return "", "", false
	}
	return id, secret, true
}
