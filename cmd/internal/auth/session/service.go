package session

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// Service implements one realm's session lifecycle: login, refresh,
// verification, and logout. It composes a TokenCodec with a Store; all
// session state lives in the store, so Service itself is stateless and
// safe for concurrent use.
//
// Concurrent logins or refreshes for the same principal race on the store
// write; whichever lands last owns the single live access token.
type Service struct {
	cfg      Config
	store    Store
	codec    TokenCodec
	resolver PrincipalResolver
	log      *slog.Logger
}

// Issued is the result of a successful login.
type Issued struct {
	PrincipalID  string
	AccessToken  string
	AccessExp    time.Time
	RefreshToken string
	RefreshExp   time.Time
}

// NewService constructs a realm session manager.
func NewService(cfg Config, store Store, codec TokenCodec, resolver PrincipalResolver, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{cfg: cfg, store: store, codec: codec, resolver: resolver, log: log}
}

// Realm returns the principal namespace this service manages.
func (s *Service) Realm() Realm {
	return s.cfg.Realm
}

// Login resolves the principal, issues an access and a refresh token, and
// records the access token as the live session value. Any prior session
// for the principal is overwritten, which makes earlier access tokens
// unverifiable even before they expire.
func (s *Service) Login(ctx context.Context, now time.Time, creds Credentials) (Issued, error) {
	principalID, err := s.resolver.Resolve(ctx, creds)
	if err != nil {
		return Issued{}, err
	}

	access, accessExp, err := s.codec.Issue(ClassAccess, principalID, now)
	if err != nil {
		return Issued{}, err
	}
	refresh, refreshExp, err := s.codec.Issue(ClassRefresh, principalID, now)
	if err != nil {
		return Issued{}, err
	}

	if err := s.store.Put(ctx, s.cfg.Realm, principalID, access, s.cfg.SessionTTL); err != nil {
		return Issued{}, err
	}

	s.log.Debug("session.login", "realm", s.cfg.Realm, "principal", principalID)

	return Issued{
		PrincipalID:  principalID,
		AccessToken:  access,
		AccessExp:    accessExp,
		RefreshToken: refresh,
		RefreshExp:   refreshExp,
	}, nil
}

// Refresh verifies a refresh-class token and mints a replacement access
// token, re-arming the session TTL. The previous access token stops
// verifying immediately because the stored value no longer matches it.
//
// Unlike Verify, Refresh only checks that a session record exists for the
// decoded principal; it does not tie the record to this refresh token's
// generation.
func (s *Service) Refresh(ctx context.Context, now time.Time, refreshToken string) (Issued, error) {
	principalID, err := s.codec.Verify(ClassRefresh, refreshToken, now)
	if err != nil {
		return Issued{}, err
	}

	ok, err := s.store.Exists(ctx, s.cfg.Realm, principalID)
	if err != nil {
		return Issued{}, err
	}
	if !ok {
		return Issued{}, ErrSessionExpired
	}

	access, accessExp, err := s.codec.Issue(ClassAccess, principalID, now)
	if err != nil {
		return Issued{}, err
	}

	if err := s.store.Put(ctx, s.cfg.Realm, principalID, access, s.cfg.SessionTTL); err != nil {
		return Issued{}, err
	}

	s.log.Debug("session.refresh", "realm", s.cfg.Realm, "principal", principalID)

	return Issued{
		PrincipalID: principalID,
		AccessToken: access,
		AccessExp:   accessExp,
	}, nil
}

// Verify checks an access-class token and confirms it is the live session
// value for its principal. Exact string equality is required; a token
// superseded by a later login or refresh fails with ErrSessionMismatch.
func (s *Service) Verify(ctx context.Context, now time.Time, accessToken string) (string, error) {
	principalID, err := s.codec.Verify(ClassAccess, accessToken, now)
	if err != nil {
		return "", err
	}

	stored, err := s.store.Get(ctx, s.cfg.Realm, principalID)
	if err != nil {
		if errors.Is(err, ErrNoSession) {
			return "", ErrSessionMismatch
		}
		return "", err
	}
	if stored != accessToken {
		return "", ErrSessionMismatch
	}

	return principalID, nil
}

// Logout deletes the principal's session record. Deleting an absent
// record succeeds, so Logout is idempotent.
func (s *Service) Logout(ctx context.Context, principalID string) error {
	if err := s.store.Delete(ctx, s.cfg.Realm, principalID); err != nil {
		return err
	}

	s.log.Debug("session.logout", "realm", s.cfg.Realm, "principal", principalID)
	return nil
}
