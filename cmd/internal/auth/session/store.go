package session

import (
	"context"
	"time"
)

// Store abstracts the key-value service holding session records.
//
// A record maps (realm, principalID) to the access token string currently
// considered live. All operations except Close may fail with an error
// wrapping ErrStoreUnavailable when the backing service cannot be reached.
type Store interface {
	// Put overwrites the session record and re-arms its TTL.
	Put(ctx context.Context, realm Realm, principalID, value string, ttl time.Duration) error

	// Get returns the stored value, or ErrNoSession when absent.
	Get(ctx context.Context, realm Realm, principalID string) (string, error)

	// Exists reports whether any record is present.
	Exists(ctx context.Context, realm Realm, principalID string) (bool, error)

	// Delete removes the record. Deleting an absent key is not an error.
	Delete(ctx context.Context, realm Realm, principalID string) error

	// Close releases store resources.
	Close() error
}
