package token

// Package token implements the session token codec with HMAC-signed JWTs.

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	domainauth "github.com/prefeitura-sp/coresso-portal/internal/domain/auth"
)

// ErrInvalidToken is returned by Verify for any token that cannot be
// accepted: bad signature, wrong algorithm, malformed, or expired.
var ErrInvalidToken = errors.New("invalid session token")

// Codec signs and verifies session token payloads with HS256.
type Codec struct {
	secret []byte
}

// NewCodec builds a Codec. An empty signing secret is a fatal configuration
// error.
func NewCodec(secret string) (*Codec, error) {
	if secret == "" {
		return nil, errors.New("token: SESSION_SECRET is not configured")
	}
	return &Codec{secret: []byte(secret)}, nil
}

// Issue signs the payload and returns the compact token string.
func (c *Codec) Issue(payload domainauth.TokenPayload) (string, error) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, payload)
	signed, err := tok.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token and recovers its payload. Expiry is
// enforced here; callers treat any error as "unauthenticated".
func (c *Codec) Verify(raw string) (domainauth.TokenPayload, error) {
	var payload domainauth.TokenPayload

	tok, err := jwt.ParseWithClaims(raw, &payload, func(t *jwt.Token) (any, error) {
		// Pin the algorithm; a token signed with anything else is rejected
		// before signature verification.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return domainauth.TokenPayload{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !tok.Valid {
		return domainauth.TokenPayload{}, ErrInvalidToken
	}

	return payload, nil
}
