package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"vouch/pkg/domain"
	"vouch/pkg/requestcontext"
)

// SessionValidator validates bearer session tokens issued by the platform's
// identity service and returns the claims we care about.
type SessionValidator interface {
	ValidateToken(tokenString string) (*SessionClaims, error)
}

// SessionClaims represents the claims we expect from the session validator.
type SessionClaims struct {
	UserID       string
	Capabilities []string
}

// RequireAuth rejects requests without a valid bearer token and injects the
// authenticated principal into the request context.
func RequireAuth(validator SessionValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := validateBearer(validator, r)
			if !ok {
				ctx := r.Context()
				logger.WarnContext(ctx, "unauthorized access - missing or invalid token",
					"request_id", requestcontext.RequestID(ctx),
					"path", r.URL.Path,
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"Missing or invalid Authorization header"}`))
				return
			}

			ctx := requestcontext.WithPrincipal(r.Context(), domain.Principal{
				ID:           claims.UserID,
				Capabilities: claims.Capabilities,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth injects the principal when a valid bearer token is present and
// passes the request through anonymously otherwise. Endpoints that must answer
// unauthenticated callers with their own payload shape (the dashboard save
// contract) use this and check the principal themselves.
func OptionalAuth(validator SessionValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if claims, ok := validateBearer(validator, r); ok {
				ctx := requestcontext.WithPrincipal(r.Context(), domain.Principal{
					ID:           claims.UserID,
					Capabilities: claims.Capabilities,
				})
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

func validateBearer(validator SessionValidator, r *http.Request) (*SessionClaims, bool) {
	const bearerPrefix = "Bearer "
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), bearerPrefix)
	if !ok || token == "" {
		return nil, false
	}
	claims, err := validator.ValidateToken(token)
	if err != nil {
		return nil, false
	}
	return claims, true
}
