// Package attachment models references to files held by the platform's media
// library. The binary payloads live elsewhere; we only resolve ids to URLs and
// decide whether a reference is acceptable for a verification record.
package attachment

import (
	"path"
	"strings"
)

// Kind classifies an accepted reference for preview rendering.
type Kind string

const (
	KindImage    Kind = "image"
	KindDocument Kind = "document"
)

// AllowedExtensions is the fixed allow-list for verification documents.
var AllowedExtensions = []string{"jpg", "jpeg", "png", "gif", "pdf"}

// Attachment is a resolved media library entry.
type Attachment struct {
	ID      int64
	OwnerID string
	URL     string
}

// Extension returns the lowercased file extension of the resolved URL,
// without the leading dot.
func (a Attachment) Extension() string {
	ext := strings.ToLower(path.Ext(a.URL))
	return strings.TrimPrefix(ext, ".")
}

// ExtensionAllowed reports whether ext is in the document allow-list.
func ExtensionAllowed(ext string) bool {
	for _, allowed := range AllowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// KindForExtension maps an allowed extension to its preview kind.
// PDFs render as links, everything else in the allow-list as inline images.
func KindForExtension(ext string) Kind {
	if ext == "pdf" {
		return KindDocument
	}
	return KindImage
}

// AcceptedReference is the validator's output: a reference that may be
// persisted and previewed.
type AcceptedReference struct {
	ID   int64  `json:"id"`
	URL  string `json:"url"`
	Kind Kind   `json:"kind"`
}
