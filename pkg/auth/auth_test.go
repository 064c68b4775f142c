package auth

import (
	"errors"
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour, 24*time.Hour)

	token, err := m.GenerateToken(7, "user1@example.com")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.UserID != 7 || claims.Email != "user1@example.com" {
		t.Errorf("claims = %+v", claims)
	}
	if claims.ID == "" {
		t.Error("expected a token id")
	}
}

func TestRefreshTokenIsNotAnAccessToken(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour, 24*time.Hour)

	refresh, err := m.GenerateRefreshToken(7)
	if err != nil {
		t.Fatalf("GenerateRefreshToken() error = %v", err)
	}
	if _, err := m.ValidateToken(refresh); !errors.Is(err, ErrWrongTokenType) {
		t.Errorf("ValidateToken(refresh) error = %v, want ErrWrongTokenType", err)
	}
	claims, err := m.ValidateRefreshToken(refresh)
	if err != nil {
		t.Fatalf("ValidateRefreshToken() error = %v", err)
	}
	if claims.UserID != 7 {
		t.Errorf("user id = %d, want 7", claims.UserID)
	}
}

func TestValidateRejectsForeignAndExpiredTokens(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour, time.Hour)
	other := NewJWTManager("other-secret", time.Hour, time.Hour)
	expired := NewJWTManager("test-secret", -time.Minute, time.Hour)

	foreign, _ := other.GenerateToken(1, "a@b.co")
	if _, err := m.ValidateToken(foreign); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("foreign token error = %v, want ErrInvalidToken", err)
	}

	old, _ := expired.GenerateToken(1, "a@b.co")
	if _, err := m.ValidateToken(old); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expired token error = %v, want ErrInvalidToken", err)
	}

	if _, err := m.ValidateToken("garbage"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("garbage token error = %v, want ErrInvalidToken", err)
	}
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if !CheckPasswordHash("s3cret-pass", hash) {
		t.Error("expected password to match")
	}
	if CheckPasswordHash("wrong", hash) {
		t.Error("expected mismatch")
	}
}
