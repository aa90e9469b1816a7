// Package session implements Specter's dual-realm session core.
//
// Each realm (human, ghost) gets its own Service instance with isolated
// signing secrets and an isolated keyspace in the session store. Access
// tokens are short-lived JWTs; refresh tokens are long-lived JWTs signed
// with a separate per-realm secret. The store keeps the single currently
// valid access token per principal, so a new login or refresh silently
// supersedes any earlier access token for that principal.
//
// HTTP integration lives in cmd/internal/auth/api.
package session
