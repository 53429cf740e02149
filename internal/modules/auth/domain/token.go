package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const KeyToken = "token"

// Claims is what the client can learn from the credential without the
// server's key. Opaque tokens carry no claims.
type Claims struct {
	Opaque    bool
	Subject   string
	ExpiresAt time.Time
}

// Inspect reads JWT claims without verifying the signature; the remote API
// stays responsible for verification.
func Inspect(raw string) Claims {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &claims); err != nil {
		return Claims{Opaque: true}
	}
	out := Claims{Subject: claims.Subject}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time.UTC()
	}
	return out
}

func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}
