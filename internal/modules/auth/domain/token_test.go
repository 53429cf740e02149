package domain_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"planr/internal/modules/auth/domain"
)

func signed(t *testing.T, claims jwt.RegisteredClaims) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return raw
}

func TestInspectJWT(t *testing.T) {
	t.Parallel()
	exp := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	claims := domain.Inspect(signed(t, jwt.RegisteredClaims{Subject: "user-7", ExpiresAt: jwt.NewNumericDate(exp)}))
	if claims.Opaque || claims.Subject != "user-7" || !claims.ExpiresAt.Equal(exp) {
		t.Fatalf("unexpected claims %+v", claims)
	}
	if claims.Expired(exp.Add(-time.Second)) {
		t.Fatalf("token should be valid before exp")
	}
	if !claims.Expired(exp) {
		t.Fatalf("token should be expired at exp")
	}
}

func TestInspectOpaque(t *testing.T) {
	t.Parallel()
	claims := domain.Inspect("abc123")
	if !claims.Opaque || claims.Expired(time.Now()) {
		t.Fatalf("opaque tokens never expire client side: %+v", claims)
	}
}

func TestInspectJWTWithoutExpiry(t *testing.T) {
	t.Parallel()
	claims := domain.Inspect(signed(t, jwt.RegisteredClaims{Subject: "s"}))
	if claims.Opaque || claims.Expired(time.Now()) {
		t.Fatalf("jwt without exp should not expire: %+v", claims)
	}
}
