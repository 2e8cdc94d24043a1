// Package token inspects bearer tokens on the client side.
//
// Inspection is UNVERIFIED: the client has no signing key and never needs
// one. Claims read here drive UI affordances (expiry countdowns, optional
// discard of stale persisted tokens), never authorization decisions. The
// backend remains the only verifier.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNotJWT is returned by Inspect when the token is not parseable as a JWT.
// Opaque tokens are valid session material; callers treat this as "no claims
// available", not as an invalid session.
var ErrNotJWT = errors.New("token is not a JWT")

// Claims is the subset of registered JWT claims the client surfaces.
type Claims struct {
	Subject   string
	Email     string
	ExpiresAt time.Time
	IssuedAt  time.Time
}

// Inspect decodes the claims of tok without verifying its signature.
func Inspect(tok string) (*Claims, error) {
	parser := jwt.NewParser()

	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(tok, claims); err != nil {
		return nil, ErrNotJWT
	}

	out := &Claims{}
	if sub, err := claims.GetSubject(); err == nil {
		out.Subject = sub
	}
	if email, ok := claims["email"].(string); ok {
		out.Email = email
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		out.IssuedAt = iat.Time
	}
	return out, nil
}

// Expired reports whether tok carries an expiry claim in the past relative
// to now, widened by skew. Non-JWT tokens and JWTs without an expiry claim
// are never considered expired: only the backend can judge them.
func Expired(tok string, now time.Time, skew time.Duration) bool {
	claims, err := Inspect(tok)
	if err != nil {
		return false
	}
	if claims.ExpiresAt.IsZero() {
		return false
	}
	return !claims.ExpiresAt.After(now.Add(skew))
}
