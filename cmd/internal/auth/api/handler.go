// Package authapi exposes one realm's session lifecycle over HTTP and the
// bearer-token middleware gating that realm's routes.
package authapi

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"specter/cmd/internal/auth/session"
	"specter/cmd/internal/web"
)

// Handler wires a realm's /login, /token, and /logout endpoints to its
// session service. Instantiate once per realm.
type Handler struct {
	log          *slog.Logger
	sessions     *session.Service
	maxBodyBytes int64
}

// NewHandler constructs a realm auth handler.
func NewHandler(log *slog.Logger, sessions *session.Service, maxBodyBytes int64) *Handler {
	if log == nil {
		log = slog.Default()
	}
	if maxBodyBytes <= 0 {
		maxBodyBytes = 1 << 20
	}
	return &Handler{log: log, sessions: sessions, maxBodyBytes: maxBodyBytes}
}

// Register mounts the auth routes on a realm router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/login", h.handleLogin)
	r.Post("/token", h.handleToken)
	r.With(RequireAuth(h.sessions, h.log)).Post("/logout", h.handleLogout)
}

// RequireAuth returns the middleware gating this realm's routes.
func (h *Handler) RequireAuth() func(http.Handler) http.Handler {
	return RequireAuth(h.sessions, h.log)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	// Login is a stub: whatever credentials arrive are passed to the
	// resolver as-is, and a malformed body is treated as empty.
	var req loginRequest
	_ = web.DecodeJSON(w, r, h.maxBodyBytes, &req)

	issued, err := h.sessions.Login(r.Context(), time.Now().UTC(), session.Credentials{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		h.log.Error("auth.login.fail", "realm", h.sessions.Realm(), "err", err)
		web.WriteError(w, http.StatusInternalServerError, "An error occurred during login")
		return
	}

	web.WriteJSON(w, http.StatusOK, tokenPairResponse{
		AccessToken:  issued.AccessToken,
		RefreshToken: issued.RefreshToken,
	})
}

func (h *Handler) handleToken(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := web.DecodeJSON(w, r, h.maxBodyBytes, &req); err != nil {
		web.WriteError(w, http.StatusBadRequest, "Refresh token required")
		return
	}
	if strings.TrimSpace(req.RefreshToken) == "" {
		web.WriteError(w, http.StatusBadRequest, "Refresh token required")
		return
	}

	issued, err := h.sessions.Refresh(r.Context(), time.Now().UTC(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrSessionExpired):
			web.WriteError(w, http.StatusUnauthorized, "Session expired, please log in again")
		case errors.Is(err, session.ErrInvalidToken), errors.Is(err, session.ErrTokenExpired):
			h.log.Warn("auth.refresh.denied", "realm", h.sessions.Realm(), "reason", err)
			web.WriteError(w, http.StatusUnauthorized, "Invalid refresh token")
		default:
			h.log.Error("auth.refresh.fail", "realm", h.sessions.Realm(), "err", err)
			web.WriteError(w, http.StatusInternalServerError, "An error occurred during token refresh")
		}
		return
	}

	web.WriteJSON(w, http.StatusOK, accessTokenResponse{AccessToken: issued.AccessToken})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	principalID, ok := Principal(r.Context())
	if !ok {
		// RequireAuth always runs first; reaching here without a principal
		// is a wiring bug, not a client error.
		web.WriteError(w, http.StatusUnauthorized, "Please authenticate")
		return
	}

	if err := h.sessions.Logout(r.Context(), principalID); err != nil {
		h.log.Error("auth.logout.fail", "realm", h.sessions.Realm(), "err", err)
		web.WriteError(w, http.StatusInternalServerError, "An error occurred during logout")
		return
	}

	web.WriteMessage(w, http.StatusOK, "Logged out successfully")
}
