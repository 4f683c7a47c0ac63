package jwttoken

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "vouch/pkg/domain-errors"
	"vouch/pkg/domain"
)

const testKey = "test-signing-key-0123456789abcdef"

func TestGenerateAndValidate(t *testing.T) {
	svc := NewJWTService(testKey, "vouch", "vouch")

	token, err := svc.GenerateSessionToken("u1", []string{domain.CapUploadFiles}, time.Hour)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, []string{domain.CapUploadFiles}, claims.Capabilities)
}

func TestValidate_ExpiredToken(t *testing.T) {
	svc := NewJWTService(testKey, "vouch", "vouch")

	token, err := svc.GenerateSessionToken("u1", nil, -time.Minute)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestValidate_WrongKey(t *testing.T) {
	minter := NewJWTService(testKey, "vouch", "vouch")
	verifier := NewJWTService("another-signing-key-fedcba98765432", "vouch", "vouch")

	token, err := minter.GenerateSessionToken("u1", nil, time.Hour)
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestValidate_Garbage(t *testing.T) {
	svc := NewJWTService(testKey, "vouch", "vouch")

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := svc.ValidateToken(token)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized), "token %q", token)
	}
}
