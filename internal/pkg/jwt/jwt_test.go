package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := NewService("secret", 15*time.Minute, time.Hour)
	userID := uuid.New()

	token, err := svc.GenerateAccessToken(userID, "owner", true)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	claims, err := svc.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("ValidateAccessToken: %v", err)
	}
	if claims.UserID != userID || claims.Role != "owner" || !claims.IsActive {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestRefreshTokenNotValidAsAccess(t *testing.T) {
	svc := NewService("secret", 15*time.Minute, time.Hour)

	refresh, _, _, err := svc.GenerateRefreshToken(uuid.New())
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}
	if _, err := svc.ValidateAccessToken(refresh); err != ErrInvalidToken {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}

func TestExpiredToken(t *testing.T) {
	svc := NewService("secret", -time.Minute, time.Hour)

	token, err := svc.GenerateAccessToken(uuid.New(), "customer", true)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if _, err := svc.ValidateAccessToken(token); err != ErrExpiredToken {
		t.Fatalf("err = %v, want ErrExpiredToken", err)
	}
}

func TestWrongSecretRejected(t *testing.T) {
	issuer := NewService("secret-a", 15*time.Minute, time.Hour)
	verifier := NewService("secret-b", 15*time.Minute, time.Hour)

	token, err := issuer.GenerateAccessToken(uuid.New(), "customer", true)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if _, err := verifier.ValidateAccessToken(token); err != ErrInvalidToken {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}

func TestHashRefreshTokenStable(t *testing.T) {
	if HashRefreshToken("abc") != HashRefreshToken("abc") {
		t.Fatal("hash is not deterministic")
	}
	if HashRefreshToken("abc") == HashRefreshToken("abd") {
		t.Fatal("different tokens hash equal")
	}
}
