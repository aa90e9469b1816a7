package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClass distinguishes the two credentials a realm issues.
type TokenClass int

const (
	// ClassAccess is the short-lived credential presented on every
	// gated request.
	ClassAccess TokenClass = iota
	// ClassRefresh is the long-lived credential used only to mint new
	// access tokens.
	ClassRefresh
)

func (c TokenClass) String() string {
	switch c {
	case ClassAccess:
		return "access"
	case ClassRefresh:
		return "refresh"
	default:
		return "unknown"
	}
}

// Claims is the signed payload carried by Specter tokens.
type Claims struct {
	PrincipalID string `json:"id"`

	jwt.RegisteredClaims
}

// TokenCodec issues and verifies signed tokens for one realm.
type TokenCodec interface {
	Issue(class TokenClass, principalID string, now time.Time) (token string, exp time.Time, err error)
	Verify(class TokenClass, token string, now time.Time) (principalID string, err error)
}

type hmacCodec struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewHMACCodec builds a TokenCodec that signs HS256 JWTs with a distinct
// secret per token class. The realm boundary is enforced the same way:
// codecs for different realms hold different secrets, so a token minted in
// one realm never verifies in the other.
//
// Expiry is compared against the caller-supplied wall clock with no skew
// tolerance.
func NewHMACCodec(cfg Config) (TokenCodec, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &hmacCodec{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     cfg.AccessTokenTTL,
		refreshTTL:    cfg.RefreshTokenTTL,
	}, nil
}

func (c *hmacCodec) material(class TokenClass) (secret []byte, ttl time.Duration) {
	if class == ClassRefresh {
		return c.refreshSecret, c.refreshTTL
	}
	return c.accessSecret, c.accessTTL
}

func (c *hmacCodec) Issue(class TokenClass, principalID string, now time.Time) (string, time.Time, error) {
	if principalID == "" {
		return "", time.Time{}, ErrInvalidToken
	}

	secret, ttl := c.material(class)
	exp := now.Add(ttl)

	claims := Claims{
		PrincipalID: principalID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, exp, nil
}

func (c *hmacCodec) Verify(class TokenClass, token string, now time.Time) (string, error) {
	secret, _ := c.material(class)

	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims,
		func(_ *jwt.Token) (any, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrInvalidToken
	}

	if claims.PrincipalID == "" {
		return "", ErrInvalidToken
	}

	return claims.PrincipalID, nil
}
