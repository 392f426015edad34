package jwtutil

import (
	"testing"
	"time"

	"laby-stock-backend/pkg/config"
)

func TestGenerateAndValidateToken(t *testing.T) {
	Initialize(&config.JWTConfig{
		SigningKey:     "test-signing-key",
		ExpirationTime: time.Hour,
	})

	token, err := GenerateToken("lab@example.com", 42, "Lab Tech")
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("Failed to validate token: %v", err)
	}

	if claims.Email != "lab@example.com" {
		t.Errorf("Expected email lab@example.com, got %s", claims.Email)
	}
	if claims.UserID != 42 {
		t.Errorf("Expected user id 42, got %d", claims.UserID)
	}
	if claims.Name != "Lab Tech" {
		t.Errorf("Expected name Lab Tech, got %s", claims.Name)
	}
}

func TestValidateToken_Tampered(t *testing.T) {
	Initialize(&config.JWTConfig{
		SigningKey:     "test-signing-key",
		ExpirationTime: time.Hour,
	})

	token, err := GenerateToken("lab@example.com", 42, "")
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	if _, err := ValidateToken(token + "x"); err == nil {
		t.Error("Expected tampered token to be rejected")
	}
}

func TestValidateToken_Expired(t *testing.T) {
	Initialize(&config.JWTConfig{
		SigningKey:     "test-signing-key",
		ExpirationTime: -time.Minute,
	})

	token, err := GenerateToken("lab@example.com", 42, "")
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	if _, err := ValidateToken(token); err == nil {
		t.Error("Expected expired token to be rejected")
	}
}
