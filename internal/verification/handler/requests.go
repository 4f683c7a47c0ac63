package handler

import (
	"net/http"

	"vouch/internal/attachment"
	"vouch/internal/verification/models"
)

// Form fields accepted by the dashboard AJAX endpoint. Names are part of the
// wire contract with existing clients.
const (
	formFieldAction = "action"
	formFieldNonce  = "nonce"
	formFieldType   = "seller_document_type"
	formFieldFront  = "seller_document_front"
	formFieldBack   = "seller_document_back"

	actionSaveDocuments = "directorist_sv_save_documents"
)

// adminSaveRequest is the privileged write body. File references arrive as
// strings so blank and garbage submissions can be told apart from zero.
type adminSaveRequest struct {
	Nonce         string `json:"nonce"`
	DocumentType  string `json:"document_type"`
	DocumentFront string `json:"document_front"`
	DocumentBack  string `json:"document_back"`
	Verified      bool   `json:"verified"`
}

// patch converts the request into a full-record patch: every field is
// submitted, with unparseable file references collapsed to an explicit zero.
func (req adminSaveRequest) patch() models.Patch {
	front := int64(0)
	if id, ok := attachment.ParseRef(req.DocumentFront); ok {
		front = id
	}
	back := int64(0)
	if id, ok := attachment.ParseRef(req.DocumentBack); ok {
		back = id
	}
	verified := req.Verified
	return models.Patch{
		DocumentType:  &req.DocumentType,
		DocumentFront: &front,
		DocumentBack:  &back,
		Verified:      &verified,
	}
}

// dashboardPatch reads the self-service form. The document type is always
// submitted; file fields are included only when they parse to a positive id,
// so blank or malformed values leave the stored reference alone.
func dashboardPatch(r *http.Request) models.Patch {
	docType := r.PostFormValue(formFieldType)
	patch := models.Patch{DocumentType: &docType}
	if id, ok := attachment.ParseRef(r.PostFormValue(formFieldFront)); ok {
		patch.DocumentFront = &id
	}
	if id, ok := attachment.ParseRef(r.PostFormValue(formFieldBack)); ok {
		patch.DocumentBack = &id
	}
	return patch
}
