package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(42)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	uid, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if uid != 42 {
		t.Errorf("ParseToken uid = %d, want 42", uid)
	}
}

func TestParseTokenRejectsExpired(t *testing.T) {
	claims := jwt.MapClaims{
		"uid": float64(7),
		"exp": time.Now().Add(-time.Minute).Unix(),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret())
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ParseToken(expired); err == nil {
		t.Error("expected expired token to be rejected")
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	claims := jwt.MapClaims{
		"uid": float64(7),
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("not-the-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ParseToken(forged); err == nil {
		t.Error("expected token with wrong signature to be rejected")
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	if _, err := ParseToken("not.a.token"); err == nil {
		t.Error("expected garbage token to be rejected")
	}
}

func TestParseDate(t *testing.T) {
	if _, err := ParseDate("2024-03-15"); err != nil {
		t.Errorf("ParseDate(2024-03-15): %v", err)
	}
	if _, err := ParseDate("2024-03-15T10:30:00Z"); err != nil {
		t.Errorf("ParseDate(RFC3339): %v", err)
	}
	if _, err := ParseDate("15/03/2024"); err == nil {
		t.Error("expected unsupported format to fail")
	}
}
