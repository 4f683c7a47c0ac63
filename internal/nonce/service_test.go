package nonce

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "vouch/pkg/domain-errors"
	"vouch/pkg/requestcontext"
)

func newService(ttl time.Duration) *Service {
	return NewService(NewInMemoryStore(), ttl)
}

func TestIssueThenVerify(t *testing.T) {
	ctx := context.Background()
	svc := newService(time.Hour)

	token, err := svc.Issue(ctx, ScopeDashboardAjax, "u1")
	require.NoError(t, err)
	assert.Contains(t, token, ".")

	assert.NoError(t, svc.Verify(ctx, token, ScopeDashboardAjax, "u1"))
}

func TestVerify_ScopeBinding(t *testing.T) {
	ctx := context.Background()
	svc := newService(time.Hour)

	token, err := svc.Issue(ctx, ScopeDashboardAjax, "u1")
	require.NoError(t, err)

	err = svc.Verify(ctx, token, ScopeAdminSave, "u1")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))
}

func TestVerify_PrincipalBinding(t *testing.T) {
	ctx := context.Background()
	svc := newService(time.Hour)

	token, err := svc.Issue(ctx, ScopeAdminSave, "editor-1")
	require.NoError(t, err)

	err = svc.Verify(ctx, token, ScopeAdminSave, "editor-2")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))
}

func TestVerify_MalformedToken(t *testing.T) {
	svc := newService(time.Hour)

	for _, token := range []string{"", "no-separator", ".only-secret", "only-id."} {
		err := svc.Verify(context.Background(), token, ScopeDashboardAjax, "u1")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden), "token %q", token)
	}
}

func TestVerify_TamperedSecret(t *testing.T) {
	ctx := context.Background()
	svc := newService(time.Hour)

	token, err := svc.Issue(ctx, ScopeDashboardAjax, "u1")
	require.NoError(t, err)
	id, _, ok := splitToken(token)
	require.True(t, ok)

	err = svc.Verify(ctx, id+".forged-secret", ScopeDashboardAjax, "u1")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))
}

func TestVerify_Expiry(t *testing.T) {
	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := newService(time.Hour)

	ctx := requestcontext.WithTime(context.Background(), issuedAt)
	token, err := svc.Issue(ctx, ScopeDashboardAjax, "u1")
	require.NoError(t, err)

	// Still valid just inside the window.
	ctx = requestcontext.WithTime(context.Background(), issuedAt.Add(59*time.Minute))
	assert.NoError(t, svc.Verify(ctx, token, ScopeDashboardAjax, "u1"))

	ctx = requestcontext.WithTime(context.Background(), issuedAt.Add(2*time.Hour))
	err = svc.Verify(ctx, token, ScopeDashboardAjax, "u1")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))
}

func TestVerify_NeverIssued(t *testing.T) {
	svc := newService(time.Hour)

	err := svc.Verify(context.Background(), "d2f1b9e0-0000-0000-0000-000000000000.secret", ScopeDashboardAjax, "u1")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))
}
