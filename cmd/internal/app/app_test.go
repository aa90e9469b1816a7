package app

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestApp(t *testing.T) *App {
	t.Helper()

	t.Setenv("SPECTER_HUMAN_ACCESS_SECRET", "human-access-secret")
	t.Setenv("SPECTER_HUMAN_REFRESH_SECRET", "human-refresh-secret")
	t.Setenv("SPECTER_GHOST_ACCESS_SECRET", "ghost-access-secret")
	t.Setenv("SPECTER_GHOST_REFRESH_SECRET", "ghost-refresh-secret")
	t.Setenv("SPECTER_REDIS_ADDR", "")

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	a, err := New(LoadConfig(), log)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return a
}

func doRequest(t *testing.T, h http.Handler, method, path, bearer, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeJSON(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var m map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &m); err != nil {
		t.Fatalf("decode body %q: %v", rr.Body.String(), err)
	}
	return m
}

func TestApp_HumanSessionLifecycle(t *testing.T) {
	h := newTestApp(t).Handler()

	rr := doRequest(t, h, http.MethodPost, "/humans/login", "", `{"username":"casper","password":"boo"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("login status=%d body=%s", rr.Code, rr.Body.String())
	}
	pair := decodeJSON(t, rr)
	access, _ := pair["accessToken"].(string)
	refresh, _ := pair["refreshToken"].(string)
	if access == "" || refresh == "" {
		t.Fatalf("login did not return both tokens: %v", pair)
	}

	rr = doRequest(t, h, http.MethodGet, "/humans/users", access, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("authenticated route status=%d body=%s", rr.Code, rr.Body.String())
	}

	rr = doRequest(t, h, http.MethodPost, "/humans/logout", access, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("logout status=%d body=%s", rr.Code, rr.Body.String())
	}
	if got := decodeJSON(t, rr)["message"]; got != "Logged out successfully" {
		t.Fatalf("logout message=%v", got)
	}

	rr = doRequest(t, h, http.MethodGet, "/humans/users", access, "")
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("post-logout status=%d body=%s", rr.Code, rr.Body.String())
	}
	if got := decodeJSON(t, rr)["error"]; got != "Please authenticate" {
		t.Fatalf("post-logout error=%v", got)
	}
}

func TestApp_RefreshRequiresToken(t *testing.T) {
	h := newTestApp(t).Handler()

	rr := doRequest(t, h, http.MethodPost, "/ghosts/token", "", `{}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}
	if got := decodeJSON(t, rr)["error"]; got != "Refresh token required" {
		t.Fatalf("error=%v", got)
	}
}

func TestApp_RealmsAreIsolated(t *testing.T) {
	h := newTestApp(t).Handler()

	rr := doRequest(t, h, http.MethodPost, "/humans/login", "", `{}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("human login status=%d", rr.Code)
	}
	humanAccess, _ := decodeJSON(t, rr)["accessToken"].(string)

	// A human access token must not open ghost routes.
	rr = doRequest(t, h, http.MethodGet, "/ghosts/spooky-name", humanAccess, "")
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("cross-realm status=%d body=%s", rr.Code, rr.Body.String())
	}
	if got := decodeJSON(t, rr)["error"]; got != "Please authenticate" {
		t.Fatalf("cross-realm error=%v", got)
	}
}

func TestApp_GhostLoginAndRefresh(t *testing.T) {
	h := newTestApp(t).Handler()

	rr := doRequest(t, h, http.MethodPost, "/ghosts/login", "", `{}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("ghost login status=%d", rr.Code)
	}
	refresh, _ := decodeJSON(t, rr)["refreshToken"].(string)

	rr = doRequest(t, h, http.MethodPost, "/ghosts/token", "", `{"refreshToken":"`+refresh+`"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("refresh status=%d body=%s", rr.Code, rr.Body.String())
	}
	access, _ := decodeJSON(t, rr)["accessToken"].(string)
	if access == "" {
		t.Fatalf("refresh did not mint an access token")
	}

	rr = doRequest(t, h, http.MethodGet, "/ghosts/spooky-name", access, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("refreshed token rejected: status=%d body=%s", rr.Code, rr.Body.String())
	}
}

func TestApp_Healthz(t *testing.T) {
	h := newTestApp(t).Handler()

	rr := doRequest(t, h, http.MethodGet, "/healthz", "", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("healthz status=%d", rr.Code)
	}
}

func TestApp_ReadyzWithoutRedis(t *testing.T) {
	h := newTestApp(t).Handler()

	rr := doRequest(t, h, http.MethodGet, "/readyz", "", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("readyz status=%d body=%s", rr.Code, rr.Body.String())
	}
}

func TestApp_Metrics(t *testing.T) {
	h := newTestApp(t).Handler()

	// Generate one request so the counters have something to report.
	doRequest(t, h, http.MethodGet, "/healthz", "", "")

	rr := doRequest(t, h, http.MethodGet, "/metrics", "", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("metrics status=%d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "specter_http_requests_total") {
		t.Fatalf("metrics output missing request counter")
	}
}

func TestNew_RejectsSharedSecretsAcrossRealms(t *testing.T) {
	t.Setenv("SPECTER_HUMAN_ACCESS_SECRET", "shared-secret")
	t.Setenv("SPECTER_HUMAN_REFRESH_SECRET", "human-refresh-secret")
	t.Setenv("SPECTER_GHOST_ACCESS_SECRET", "shared-secret")
	t.Setenv("SPECTER_GHOST_REFRESH_SECRET", "ghost-refresh-secret")
	t.Setenv("SPECTER_REDIS_ADDR", "")

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	if _, err := New(LoadConfig(), log); err == nil {
		t.Fatalf("expected config error for shared secrets")
	}
}

func TestApp_UnknownRouteUnauthenticated(t *testing.T) {
	h := newTestApp(t).Handler()

	rr := doRequest(t, h, http.MethodGet, "/humans/users", "", "")
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}
	if got := decodeJSON(t, rr)["error"]; got != "No token provided" {
		t.Fatalf("error=%v", got)
	}
}
