package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vouch/internal/verification/models"
)

func TestInMemory_MissingKeyReadsEmpty(t *testing.T) {
	s := NewInMemory()

	v, err := s.Get(context.Background(), "u1", models.MetaKeyDocumentType)
	require.NoError(t, err)
	assert.Equal(t, "", v)
}

func TestInMemory_SetOverwrites(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "u1", models.MetaKeyVerified, models.VerifiedNo))
	require.NoError(t, s.Set(ctx, "u1", models.MetaKeyVerified, models.VerifiedYes))

	v, err := s.Get(ctx, "u1", models.MetaKeyVerified)
	require.NoError(t, err)
	assert.Equal(t, models.VerifiedYes, v)
}

func TestInMemory_SubjectsIsolated(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "u1", models.MetaKeyDocumentFront, "42"))

	v, err := s.Get(ctx, "u2", models.MetaKeyDocumentFront)
	require.NoError(t, err)
	assert.Equal(t, "", v)
}
