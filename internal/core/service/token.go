package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mindtrack/stress-api/internal/core/domain"
)

const defaultTokenTTL = 7 * 24 * time.Hour

// TokenIssuer creates and verifies HS256 session tokens.
//
// Verification failures (bad signature, malformed token, wrong algorithm,
// expiry) all surface as domain.ErrInvalidToken so callers cannot probe for
// the failure cause.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer builds an issuer for the given symmetric secret.
// A non-positive ttl falls back to 7 days.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token binding userID to an expiry ttl from now.
func (i *TokenIssuer) Issue(userID string) (string, error) {
	now := i.now().UTC()
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": now.Add(i.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(i.secret)
}

// Verify parses and validates token and returns its subject.
func (i *TokenIssuer) Verify(token string) (string, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now))
	if err != nil || !tkn.Valid {
		return "", domain.ErrInvalidToken
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", domain.ErrInvalidToken
	}
	return sub, nil
}
