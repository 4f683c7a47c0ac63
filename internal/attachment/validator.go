package attachment

import (
	"context"
	"strconv"
	"strings"

	dErrors "vouch/pkg/domain-errors"
	"vouch/pkg/domain"
	"vouch/pkg/platform/sentinel"

	"errors"
)

// Resolver looks attachments up in the media library.
// Implementations must be read-only; the validator never mutates attachments.
type Resolver interface {
	Resolve(ctx context.Context, id int64) (*Attachment, error)
}

// Validator decides whether a raw attachment reference is acceptable for a
// verification record. All checks are pure reads against the Resolver.
type Validator struct {
	resolver Resolver
}

func NewValidator(resolver Resolver) *Validator {
	return &Validator{resolver: resolver}
}

// ParseRef interprets a submitted form value as an attachment id.
// Empty, non-numeric, and non-positive values all mean "no reference".
func ParseRef(raw string) (int64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// Validate runs the acceptance checks for one attachment reference.
//
// A zero id means "no reference" and yields (nil, nil). Otherwise the id must
// resolve, its extension must be in the allow-list, and - on the privileged
// path - the acting principal must hold edit rights over the attachment.
func (v *Validator) Validate(ctx context.Context, id int64, actor domain.Principal, requireOwnership bool) (*AcceptedReference, error) {
	if id <= 0 {
		return nil, nil
	}

	att, err := v.resolver.Resolve(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "attachment "+strconv.FormatInt(id, 10)+" does not exist")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "attachment lookup failed")
	}

	ext := att.Extension()
	if !ExtensionAllowed(ext) {
		return nil, dErrors.New(dErrors.CodeDisallowedType, "extension ."+ext+" is not allowed")
	}

	if requireOwnership && !canEditAttachment(actor, att) {
		return nil, dErrors.New(dErrors.CodeForbidden, "no edit rights on attachment")
	}

	return &AcceptedReference{
		ID:   att.ID,
		URL:  att.URL,
		Kind: KindForExtension(ext),
	}, nil
}

func canEditAttachment(actor domain.Principal, att *Attachment) bool {
	if actor.IsAnonymous() {
		return false
	}
	return actor.ID == att.OwnerID || actor.Can(domain.CapEditOthersAttachments)
}
