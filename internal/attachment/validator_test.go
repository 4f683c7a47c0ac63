package attachment_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vouch/internal/attachment"
	"vouch/internal/attachment/store"
	dErrors "vouch/pkg/domain-errors"
	"vouch/pkg/domain"
)

func TestParseRef(t *testing.T) {
	tests := []struct {
		raw    string
		wantID int64
		wantOK bool
	}{
		{"42", 42, true},
		{" 42 ", 42, true},
		{"", 0, false},
		{"0", 0, false},
		{"-5", 0, false},
		{"banana", 0, false},
		{"42abc", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			id, ok := attachment.ParseRef(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func newValidator(t *testing.T, atts ...*attachment.Attachment) *attachment.Validator {
	t.Helper()
	resolver := store.NewInMemory()
	for _, att := range atts {
		require.NoError(t, resolver.Put(context.Background(), att))
	}
	return attachment.NewValidator(resolver)
}

func owner() domain.Principal {
	return domain.Principal{ID: "u1", Capabilities: []string{domain.CapUploadFiles}}
}

func TestValidate_ZeroIDMeansNoReference(t *testing.T) {
	v := newValidator(t)

	ref, err := v.Validate(context.Background(), 0, owner(), false)
	require.NoError(t, err)
	assert.Nil(t, ref)
}

func TestValidate_UnknownID(t *testing.T) {
	v := newValidator(t)

	_, err := v.Validate(context.Background(), 99, owner(), false)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestValidate_DisallowedExtension(t *testing.T) {
	v := newValidator(t, &attachment.Attachment{ID: 7, OwnerID: "u1", URL: "https://cdn.example/evil.exe"})

	_, err := v.Validate(context.Background(), 7, owner(), false)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeDisallowedType))
}

func TestValidate_AcceptedImage(t *testing.T) {
	v := newValidator(t, &attachment.Attachment{ID: 7, OwnerID: "u1", URL: "https://cdn.example/id-card.JPG"})

	ref, err := v.Validate(context.Background(), 7, owner(), false)
	require.NoError(t, err)
	assert.Equal(t, int64(7), ref.ID)
	assert.Equal(t, attachment.KindImage, ref.Kind)
}

func TestValidate_PDFClassifiedAsDocument(t *testing.T) {
	v := newValidator(t, &attachment.Attachment{ID: 7, OwnerID: "u1", URL: "https://cdn.example/statement.pdf"})

	ref, err := v.Validate(context.Background(), 7, owner(), false)
	require.NoError(t, err)
	assert.Equal(t, attachment.KindDocument, ref.Kind)
}

func TestValidate_OwnershipEnforcedOnPrivilegedPath(t *testing.T) {
	att := &attachment.Attachment{ID: 7, OwnerID: "u1", URL: "https://cdn.example/id.png"}
	v := newValidator(t, att)

	stranger := domain.Principal{ID: "u2"}
	_, err := v.Validate(context.Background(), 7, stranger, true)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))

	// Same principal without ownership check passes.
	ref, err := v.Validate(context.Background(), 7, stranger, false)
	require.NoError(t, err)
	assert.NotNil(t, ref)

	// Editors with the cross-ownership capability pass the privileged check.
	editor := domain.Principal{ID: "u2", Capabilities: []string{domain.CapEditOthersAttachments}}
	ref, err = v.Validate(context.Background(), 7, editor, true)
	require.NoError(t, err)
	assert.NotNil(t, ref)
}
