// Package handler exposes the verification HTTP surface: the self-service
// dashboard endpoints, the privileged admin endpoints, and the public badge
// lookup.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"vouch/internal/attachment"
	"vouch/internal/nonce"
	"vouch/internal/platform/middleware"
	"vouch/internal/verification/models"
	dErrors "vouch/pkg/domain-errors"
	"vouch/pkg/domain"
	"vouch/pkg/platform/httputil"
	"vouch/pkg/requestcontext"
)

type VerificationService interface {
	Get(ctx context.Context, subjectID string) (*models.Record, error)
	ApplyPrivileged(ctx context.Context, actor domain.Principal, subjectID string, patch models.Patch) (*models.Record, error)
	ApplySelfService(ctx context.Context, actor domain.Principal, patch models.Patch) (*models.Record, error)
}

type BadgeReader interface {
	IsVerified(ctx context.Context, subjectID string) (bool, error)
}

type NonceService interface {
	Issue(ctx context.Context, scope, principalID string) (string, error)
	Verify(ctx context.Context, token, scope, principalID string) error
}

type AttachmentPreviewer interface {
	Validate(ctx context.Context, id int64, actor domain.Principal, requireOwnership bool) (*attachment.AcceptedReference, error)
}

type Handler struct {
	service  VerificationService
	badges   BadgeReader
	nonces   NonceService
	previews AttachmentPreviewer
	sessions middleware.SessionValidator
	registry *models.Registry
	logger   *slog.Logger
}

func New(
	service VerificationService,
	badges BadgeReader,
	nonces NonceService,
	previews AttachmentPreviewer,
	sessions middleware.SessionValidator,
	registry *models.Registry,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		service:  service,
		badges:   badges,
		nonces:   nonces,
		previews: previews,
		sessions: sessions,
		registry: registry,
		logger:   logger,
	}
}

// Register mounts the verification routes. The dashboard save endpoint uses
// optional authentication because it owns its 401 envelope; everything else
// behind a session uses the standard auth middleware.
func (h *Handler) Register(r chi.Router) {
	r.Route("/dashboard/documents", func(r chi.Router) {
		r.With(middleware.RequireAuth(h.sessions, h.logger)).Get("/", h.getDashboard)
		r.With(middleware.OptionalAuth(h.sessions)).Post("/save", h.saveDashboard)
	})
	r.Route("/admin/users/{id}/verification", func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.sessions, h.logger))
		r.Get("/", h.getAdmin)
		r.Post("/", h.saveAdmin)
	})
	r.Get("/listings/authors/{id}/badge", h.getBadge)
}

func (h *Handler) getDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	principal, err := httputil.RequirePrincipal(ctx, h.logger, requestcontext.RequestID(ctx))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	rec, err := h.service.Get(ctx, principal.ID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	token, err := h.nonces.Issue(ctx, nonce.ScopeDashboardAjax, principal.ID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, dashboardResponse{
		Record:        h.recordView(ctx, principal, rec),
		DocumentTypes: h.registry.Types(),
		Nonce:         token,
	})
}

func (h *Handler) saveDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, ajaxError("Invalid request."))
		return
	}
	if r.PostFormValue(formFieldAction) != actionSaveDocuments {
		httputil.WriteJSON(w, http.StatusBadRequest, ajaxError("Invalid request."))
		return
	}

	principal := requestcontext.Principal(ctx)
	if principal.IsAnonymous() {
		httputil.WriteJSON(w, http.StatusUnauthorized, ajaxError("You must be logged in."))
		return
	}

	if err := h.nonces.Verify(ctx, r.PostFormValue(formFieldNonce), nonce.ScopeDashboardAjax, principal.ID); err != nil {
		h.logger.WarnContext(ctx, "dashboard save rejected",
			"subject_id", principal.ID,
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		message := "Invalid security token."
		if dErrors.HasCode(err, dErrors.CodeStoreUnavailable) {
			message = "Something went wrong. Please try again."
		}
		httputil.WriteJSON(w, errorStatus(err), ajaxError(message))
		return
	}

	if _, err := h.service.ApplySelfService(ctx, principal, dashboardPatch(r)); err != nil {
		h.logger.ErrorContext(ctx, "dashboard save failed",
			"subject_id", principal.ID,
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteJSON(w, errorStatus(err), ajaxError("Something went wrong. Please try again."))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, ajaxSuccess("Saved successfully."))
}

func (h *Handler) getAdmin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	principal, err := httputil.RequirePrincipal(ctx, h.logger, requestcontext.RequestID(ctx))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	subjectID := chi.URLParam(r, "id")
	if !principal.CanEditUser(subjectID) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "insufficient capability"))
		return
	}

	rec, err := h.service.Get(ctx, subjectID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	token, err := h.nonces.Issue(ctx, nonce.ScopeAdminSave, principal.ID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, adminResponse{
		Record:        h.recordView(ctx, principal, rec),
		DocumentTypes: h.registry.Types(),
		Nonce:         token,
	})
}

func (h *Handler) saveAdmin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	principal, err := httputil.RequirePrincipal(ctx, h.logger, requestcontext.RequestID(ctx))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	subjectID := chi.URLParam(r, "id")

	var req adminSaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	// Token failures abort before any field is touched.
	if err := h.nonces.Verify(ctx, req.Nonce, nonce.ScopeAdminSave, principal.ID); err != nil {
		h.logger.WarnContext(ctx, "admin save rejected",
			"subject_id", subjectID,
			"actor_id", principal.ID,
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	rec, err := h.service.ApplyPrivileged(ctx, principal, subjectID, req.patch())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	resp := adminResponse{
		Record:        h.recordView(ctx, principal, rec),
		DocumentTypes: h.registry.Types(),
	}
	if token, nonceErr := h.nonces.Issue(ctx, nonce.ScopeAdminSave, principal.ID); nonceErr == nil {
		resp.Nonce = token
	} else {
		h.logger.WarnContext(ctx, "nonce refresh failed", "error", nonceErr)
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) getBadge(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	subjectID := chi.URLParam(r, "id")

	verified, err := h.badges.IsVerified(ctx, subjectID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, badgeResponse{SubjectID: subjectID, Verified: verified})
}

func errorStatus(err error) int {
	var domainErr *dErrors.Error
	if errors.As(err, &domainErr) {
		return httputil.DomainCodeToHTTPStatus(domainErr.Code)
	}
	return http.StatusInternalServerError
}
