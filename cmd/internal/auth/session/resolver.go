package session

import "context"

// Credentials carries whatever the login request presented. The stub
// resolver ignores it; a real implementation would verify it.
type Credentials struct {
	Username string
	Password string
}

// PrincipalResolver maps login credentials to a principal id.
//
// Specter ships with StaticResolver only: login accepts any request and
// mints tokens for a fixed identity. A credential-verifying implementation
// can be substituted here without touching the session core.
type PrincipalResolver interface {
	Resolve(ctx context.Context, creds Credentials) (string, error)
}

// StaticResolver resolves every login to a fixed principal id.
type StaticResolver struct {
	PrincipalID string
}

// Resolve returns the fixed principal id regardless of credentials.
func (r StaticResolver) Resolve(_ context.Context, _ Credentials) (string, error) {
	return r.PrincipalID, nil
}
