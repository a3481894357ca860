package authinfo

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, claims Claims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte("local-test-only"))
	if err != nil {
		t.Fatalf("signing test token: %v", err)
	}
	return s
}

func TestInspect(t *testing.T) {
	token := signedToken(t, Claims{
		Email: "asha@example.com",
		Name:  "Asha",
		Plan:  "studio",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(2 * time.Hour)),
		},
	})

	claims, err := Inspect(token)
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if claims.Email != "asha@example.com" || claims.Plan != "studio" {
		t.Errorf("claims = %q/%q", claims.Email, claims.Plan)
	}
	if claims.Subject != "user-1" {
		t.Errorf("subject = %q, want user-1", claims.Subject)
	}
	if claims.Expired() {
		t.Error("future token reported expired")
	}
	if claims.ExpiresIn() <= 0 {
		t.Errorf("ExpiresIn = %v, want positive", claims.ExpiresIn())
	}
}

func TestInspectExpired(t *testing.T) {
	token := signedToken(t, Claims{
		Email: "old@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})

	claims, err := Inspect(token)
	if err != nil {
		t.Fatalf("Inspect of an expired token should still decode: %v", err)
	}
	if !claims.Expired() {
		t.Error("expired token not reported expired")
	}
	if claims.ExpiresIn() != 0 {
		t.Errorf("ExpiresIn = %v, want 0", claims.ExpiresIn())
	}
}

func TestInspectNoExpiry(t *testing.T) {
	claims, err := Inspect(signedToken(t, Claims{Email: "x@example.com"}))
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if claims.Expired() {
		t.Error("token without exp reported expired")
	}
}

func TestInspectRejectsGarbage(t *testing.T) {
	if _, err := Inspect(""); err == nil {
		t.Error("empty token accepted")
	}
	if _, err := Inspect("not.a.jwt"); err == nil {
		t.Error("malformed token accepted")
	}
}
