package session

import "errors"

var (
	// ErrInvalidToken is returned when a token fails signature or claims
	// verification, including tokens signed for another realm or class.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired is returned when a token's embedded expiry has passed.
	ErrTokenExpired = errors.New("token expired")

	// ErrNoSession is returned by stores when no record exists for a key.
	ErrNoSession = errors.New("no session")

	// ErrSessionExpired is returned by Refresh when the principal has no
	// live session record (expired, logged out, or never created).
	ErrSessionExpired = errors.New("session expired")

	// ErrSessionMismatch is returned by Verify when the presented access
	// token is not the one currently recorded for the principal. It covers
	// logout and supersession by a later login or refresh.
	ErrSessionMismatch = errors.New("session mismatch")

	// ErrStoreUnavailable wraps transport failures talking to the store.
	ErrStoreUnavailable = errors.New("session store unavailable")

	// ErrConfig is returned for invalid configuration.
	ErrConfig = errors.New("invalid config")
)
