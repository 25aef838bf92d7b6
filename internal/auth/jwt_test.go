package auth

import (
	"testing"
	"time"

	"blogapi/internal/models"
)

func TestGenerateAndParseToken(t *testing.T) {
	user := models.User{ID: 42, Username: "tester"}

	tokenStr, err := GenerateToken(user)
	if err != nil {
		t.Fatalf("error generating token: %v", err)
	}

	claims, err := TokenClaims(tokenStr)
	if err != nil {
		t.Fatalf("error parsing token: %v", err)
	}

	if sub, ok := claims["sub"].(float64); !ok || int(sub) != 42 {
		t.Errorf("expected sub claim 42, got %v", claims["sub"])
	}
	if claims["username"] != "tester" {
		t.Errorf("expected username claim 'tester', got %v", claims["username"])
	}
}

func TestTokenClaims_Expired(t *testing.T) {
	user := models.User{ID: 1, Username: "tester"}

	tokenStr, err := GenerateTokenWithTTL(user, -time.Minute)
	if err != nil {
		t.Fatalf("error generating token: %v", err)
	}

	if _, err := TokenClaims(tokenStr); err == nil {
		t.Error("expected an expired token to be rejected")
	}
}

func TestTokenClaims_Tampered(t *testing.T) {
	user := models.User{ID: 1, Username: "tester"}

	tokenStr, err := GenerateToken(user)
	if err != nil {
		t.Fatalf("error generating token: %v", err)
	}

	tampered := tokenStr[:len(tokenStr)-2] + "xx"
	if _, err := TokenClaims(tampered); err == nil {
		t.Error("expected a tampered token to be rejected")
	}
}
