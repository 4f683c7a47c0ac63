package models

import (
	"fmt"
	"sort"
)

// DocumentType pairs a stored key with its display label.
type DocumentType struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// Registry is the closed set of accepted document types. It is populated once
// at startup and immutable afterwards, so lookups need no locking.
type Registry struct {
	labels  map[string]string
	ordered []DocumentType
}

// NewRegistry builds a registry from the given types. Duplicate keys are a
// configuration error. The empty key is the "not selected" placeholder and is
// always present.
func NewRegistry(types ...DocumentType) (*Registry, error) {
	r := &Registry{labels: map[string]string{"": "Select document type"}}
	for _, t := range types {
		if _, dup := r.labels[t.Key]; dup && t.Key != "" {
			return nil, fmt.Errorf("duplicate document type %q", t.Key)
		}
		r.labels[t.Key] = t.Label
	}
	r.ordered = make([]DocumentType, 0, len(r.labels))
	for k, l := range r.labels {
		r.ordered = append(r.ordered, DocumentType{Key: k, Label: l})
	}
	sort.Slice(r.ordered, func(i, j int) bool { return r.ordered[i].Key < r.ordered[j].Key })
	return r, nil
}

// DefaultDocumentTypes is the built-in catalogue.
func DefaultDocumentTypes() []DocumentType {
	return []DocumentType{
		{Key: "national_id", Label: "National ID"},
		{Key: "passport", Label: "Passport"},
		{Key: "driving_license", Label: "Driving License"},
		{Key: "residence_permit", Label: "Residence Permit"},
		{Key: "utility_bill", Label: "Utility Bill"},
		{Key: "bank_statement", Label: "Bank Statement"},
		{Key: "business_license", Label: "Business License"},
		{Key: "tax_id", Label: "Tax ID"},
		{Key: "other", Label: "Other"},
	}
}

// Contains reports whether key is a registered type. The empty key counts.
func (r *Registry) Contains(key string) bool {
	_, ok := r.labels[key]
	return ok
}

// Label returns the display label for key.
func (r *Registry) Label(key string) (string, bool) {
	l, ok := r.labels[key]
	return l, ok
}

// Normalize coerces an arbitrary submitted value onto the registry: unknown
// keys collapse to the empty placeholder rather than being rejected.
func (r *Registry) Normalize(key string) string {
	if r.Contains(key) {
		return key
	}
	return ""
}

// Types returns the catalogue in key order, placeholder first.
func (r *Registry) Types() []DocumentType {
	out := make([]DocumentType, len(r.ordered))
	copy(out, r.ordered)
	return out
}
