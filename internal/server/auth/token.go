// Package auth signs and verifies bearer tokens and hashes passwords.
package auth

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/yogastudio/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// TokenCodec issues and verifies HS256-signed JWTs whose subject is the
// user's email.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenCodec returns a codec that signs with secret and issues tokens
// valid for ttl.
func NewTokenCodec(secret []byte, ttl time.Duration) *TokenCodec {
	return &TokenCodec{secret: secret, ttl: ttl}
}

// TTL reports the validity window of issued tokens.
func (c *TokenCodec) TTL() time.Duration {
	return c.ttl
}

// Issue signs a token for subject with iat=now and exp=now+TTL.
func (c *TokenCodec) Issue(subject string, now time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
	})

	return token.SignedString(c.secret)
}

// Verify checks the signature and expiry of tokenString as of now and
// returns its subject. A token is expired once now >= exp, with no leeway.
//
// Errors are common.ErrTokenMalformed, common.ErrTokenSignatureInvalid or
// common.ErrTokenExpired.
func (c *TokenCodec) Verify(tokenString string, now time.Time) (string, error) {
	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 {
		return "", common.ErrTokenMalformed
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, c.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
	)

	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return "", common.ErrTokenSignatureInvalid
	case errors.Is(err, jwt.ErrTokenExpired):
		return "", common.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenMalformed) && headerAndPayloadIntact(parts):
		// only the signature segment failed to decode
		return "", common.ErrTokenSignatureInvalid
	default:
		return "", common.ErrTokenMalformed
	}

	if claims.Subject == "" {
		return "", common.ErrTokenMalformed
	}

	return claims.Subject, nil
}

func (c *TokenCodec) keyFunc(*jwt.Token) (any, error) {
	return c.secret, nil
}

func headerAndPayloadIntact(parts []string) bool {
	for _, p := range parts[:2] {
		b, err := base64.RawURLEncoding.Strict().DecodeString(p)
		if err != nil || !json.Valid(b) {
			return false
		}
	}
	return true
}
