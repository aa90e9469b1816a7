package session

import (
	"os"
	"strings"
	"time"
)

// Config defines all runtime configuration for one realm's session core.
//
// AccessSecret and RefreshSecret must differ: every (realm, class)
// combination signs with its own secret, so cross-class and cross-realm
// tokens fail verification.
type Config struct {
	// Realm selects the principal namespace this configuration belongs to.
	Realm Realm

	// AccessSecret signs and verifies access-class tokens.
	AccessSecret string

	// RefreshSecret signs and verifies refresh-class tokens.
	RefreshSecret string

	// AccessTokenTTL is the lifetime embedded in access tokens.
	AccessTokenTTL time.Duration

	// RefreshTokenTTL is the lifetime embedded in refresh tokens.
	RefreshTokenTTL time.Duration

	// SessionTTL is the store-side expiry of the session record. It is
	// re-armed on every login and refresh.
	SessionTTL time.Duration
}

// DefaultConfig returns the stock lifetimes for a realm: 15 minute access
// tokens, 7 day refresh tokens, 900 second session records.
func DefaultConfig(realm Realm) Config {
	return Config{
		Realm:           realm,
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
		SessionTTL:      900 * time.Second,
	}
}

// Validate checks the invariants every Config must satisfy.
func (c Config) Validate() error {
	if !c.Realm.Valid() {
		return ErrConfig
	}
	if strings.TrimSpace(c.AccessSecret) == "" || strings.TrimSpace(c.RefreshSecret) == "" {
		return ErrConfig
	}
	if c.AccessSecret == c.RefreshSecret {
		return ErrConfig
	}
	if c.AccessTokenTTL <= 0 || c.RefreshTokenTTL <= 0 || c.SessionTTL <= 0 {
		return ErrConfig
	}
	return nil
}

// LoadConfigFromEnv loads a realm's session configuration from environment
// variables.
//
// Required:
//   - SPECTER_<REALM>_ACCESS_SECRET
//   - SPECTER_<REALM>_REFRESH_SECRET
//
// Optional (durations must be valid Go duration strings):
//   - SPECTER_AUTH_ACCESS_TTL
//   - SPECTER_AUTH_REFRESH_TTL
//   - SPECTER_AUTH_SESSION_TTL
//
// Returns ErrConfig if configuration is missing or invalid.
func LoadConfigFromEnv(realm Realm) (Config, error) {
	cfg := DefaultConfig(realm)

	prefix := "SPECTER_" + strings.ToUpper(string(realm))
	cfg.AccessSecret = strings.TrimSpace(os.Getenv(prefix + "_ACCESS_SECRET"))
	cfg.RefreshSecret = strings.TrimSpace(os.Getenv(prefix + "_REFRESH_SECRET"))

	if v := os.Getenv("SPECTER_AUTH_ACCESS_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, ErrConfig
		}
		cfg.AccessTokenTTL = d
	}

	if v := os.Getenv("SPECTER_AUTH_REFRESH_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, ErrConfig
		}
		cfg.RefreshTokenTTL = d
	}

	if v := os.Getenv("SPECTER_AUTH_SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, ErrConfig
		}
		cfg.SessionTTL = d
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
