// Package domain holds identity types shared across modules.
package domain

// Capability names recognized by the service. They mirror the capability
// system of the host platform; the session issuer decides which ones a
// principal holds.
const (
	// CapEditUsers allows privileged edits of any subject's verification record.
	CapEditUsers = "edit_users"
	// CapEditOthersAttachments allows referencing attachments owned by other users.
	CapEditOthersAttachments = "edit_others_attachments"
	// CapUploadFiles allows a subject to attach files to their own record.
	CapUploadFiles = "upload_files"
)

// Principal is the acting caller as established by session validation.
// The zero value is the anonymous (unauthenticated) principal.
type Principal struct {
	ID           string
	Capabilities []string
}

// IsAnonymous reports whether no authenticated session backs this principal.
func (p Principal) IsAnonymous() bool {
	return p.ID == ""
}

// Can reports whether the principal holds the named capability.
func (p Principal) Can(capability string) bool {
	for _, c := range p.Capabilities {
		if c == capability {
			return true
		}
	}
	return false
}

// CanEditUser reports whether the principal may edit the given subject's
// record: either it is the subject itself or it holds edit_users.
func (p Principal) CanEditUser(subjectID string) bool {
	if p.IsAnonymous() {
		return false
	}
	return p.ID == subjectID || p.Can(CapEditUsers)
}
