package authapi

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"specter/cmd/internal/auth/session"
	"specter/cmd/internal/web"
)

type principalKey struct{}

// Principal returns the principal id attached to the request context by
// RequireAuth.
func Principal(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(principalKey{}).(string)
	return id, ok
}

// RequireAuth is the admission-control point for a realm's gated routes.
//
// It extracts a bearer token from the Authorization header, verifies it
// against the realm's session service, and attaches the principal id to
// the request context. Failure kinds are logged server-side only; the
// client always sees the same 401 body, so a caller cannot probe why a
// token was rejected.
func RequireAuth(svc *session.Service, log *slog.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				web.WriteError(w, http.StatusUnauthorized, "No token provided")
				return
			}

			principalID, err := svc.Verify(r.Context(), time.Now().UTC(), token)
			if err != nil {
				log.Warn("auth.denied",
					"realm", svc.Realm(),
					"path", r.URL.Path,
					"reason", err,
				)
				web.WriteError(w, http.StatusUnauthorized, "Please authenticate")
				return
			}

			ctx := context.WithValue(r.Context(), principalKey{}, principalID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	if h == "" {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
}
