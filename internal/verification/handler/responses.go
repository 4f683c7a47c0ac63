package handler

import (
	"context"

	"vouch/internal/attachment"
	"vouch/internal/verification/models"
	"vouch/pkg/domain"
)

// ajaxEnvelope is the dashboard AJAX response shape expected by existing
// front-end clients.
type ajaxEnvelope struct {
	Success bool        `json:"success"`
	Data    ajaxPayload `json:"data"`
}

type ajaxPayload struct {
	Message string `json:"message"`
}

func ajaxSuccess(message string) ajaxEnvelope {
	return ajaxEnvelope{Success: true, Data: ajaxPayload{Message: message}}
}

func ajaxError(message string) ajaxEnvelope {
	return ajaxEnvelope{Success: false, Data: ajaxPayload{Message: message}}
}

type previewResponse struct {
	ID   int64           `json:"id"`
	URL  string          `json:"url"`
	Kind attachment.Kind `json:"kind"`
}

type recordResponse struct {
	SubjectID         string           `json:"subject_id"`
	DocumentType      string           `json:"document_type"`
	DocumentTypeLabel string           `json:"document_type_label,omitempty"`
	Status            models.Status    `json:"status"`
	Verified          bool             `json:"verified"`
	DocumentFront     *previewResponse `json:"document_front"`
	DocumentBack      *previewResponse `json:"document_back"`
}

type dashboardResponse struct {
	Record        recordResponse        `json:"record"`
	DocumentTypes []models.DocumentType `json:"document_types"`
	Nonce         string                `json:"nonce"`
}

type adminResponse struct {
	Record        recordResponse        `json:"record"`
	DocumentTypes []models.DocumentType `json:"document_types"`
	Nonce         string                `json:"nonce,omitempty"`
}

type badgeResponse struct {
	SubjectID string `json:"subject_id"`
	Verified  bool   `json:"verified"`
}

// recordView resolves stored file references into previews for display.
// A reference that no longer resolves renders as absent without being
// dropped from the store.
func (h *Handler) recordView(ctx context.Context, actor domain.Principal, rec *models.Record) recordResponse {
	resp := recordResponse{
		SubjectID:    rec.SubjectID,
		DocumentType: rec.DocumentType,
		Status:       rec.Status(),
		Verified:     rec.Verified,
	}
	if label, ok := h.registry.Label(rec.DocumentType); ok && rec.DocumentType != "" {
		resp.DocumentTypeLabel = label
	}
	resp.DocumentFront = h.preview(ctx, actor, rec.DocumentFront)
	resp.DocumentBack = h.preview(ctx, actor, rec.DocumentBack)
	return resp
}

func (h *Handler) preview(ctx context.Context, actor domain.Principal, id int64) *previewResponse {
	if id <= 0 {
		return nil
	}
	ref, err := h.previews.Validate(ctx, id, actor, false)
	if err != nil || ref == nil {
		return nil
	}
	return &previewResponse{ID: ref.ID, URL: ref.URL, Kind: ref.Kind}
}
