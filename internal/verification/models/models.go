package models

// Metadata keys backing one verification record. The keys mirror the host
// platform's user-meta naming so existing records survive a migration.
const (
	MetaKeyDocumentType  = "_seller_document_type"
	MetaKeyDocumentFront = "_seller_document_front"
	MetaKeyDocumentBack  = "_seller_document_back"
	MetaKeyVerified      = "verify_seller"
)

// Stored values for the verified flag.
const (
	VerifiedYes = "yes"
	VerifiedNo  = "no"
)

// Status describes where a record sits in its lifecycle. Transitions are
// editor-driven only: a record never leaves Verified on its own.
type Status string

const (
	StatusUnset    Status = "unset"
	StatusPending  Status = "pending"
	StatusVerified Status = "verified"
)

// Record is one subject's verification state. A record exists implicitly for
// every subject; unset fields read as zero values.
type Record struct {
	SubjectID     string `json:"subject_id"`
	DocumentType  string `json:"document_type"`
	DocumentFront int64  `json:"document_front"`
	DocumentBack  int64  `json:"document_back"`
	Verified      bool   `json:"verified"`
}

// Status derives the lifecycle state from the record's fields.
func (r Record) Status() Status {
	if r.Verified {
		return StatusVerified
	}
	if r.DocumentType != "" || r.DocumentFront > 0 || r.DocumentBack > 0 {
		return StatusPending
	}
	return StatusUnset
}

// Patch is a partial update to a record. Nil fields are not touched.
// How a submitted-but-invalid file reference is handled depends on the write
// path: privileged writes zero the field, self-service writes retain the
// prior value.
type Patch struct {
	DocumentType  *string
	DocumentFront *int64
	DocumentBack  *int64
	Verified      *bool
}
