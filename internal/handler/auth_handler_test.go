package handler

import (
	"net/http"
	"testing"
	"time"

	"laby-stock-backend/pkg/config"
	"laby-stock-backend/pkg/jwtutil"
)

func TestRegisterAndLogin(t *testing.T) {
	e := setupTest(t)
	jwtutil.Initialize(&config.JWTConfig{
		SigningKey:     "handler-test-key",
		ExpirationTime: time.Hour,
	})

	c, rec := newJSONContext(e, http.MethodPost, "/api/auth/register",
		`{"email": "tech@lab.example", "password": "s3cret", "name": "Lab Tech"}`)
	callHandler(t, Register, c)
	expectStatus(t, rec, http.StatusCreated)

	// Duplicate registration is refused
	c, rec = newJSONContext(e, http.MethodPost, "/api/auth/register",
		`{"email": "tech@lab.example", "password": "other"}`)
	callHandler(t, Register, c)
	expectStatus(t, rec, http.StatusConflict)

	// Wrong password
	c, rec = newJSONContext(e, http.MethodPost, "/api/auth/login",
		`{"email": "tech@lab.example", "password": "wrong"}`)
	callHandler(t, Login, c)
	expectStatus(t, rec, http.StatusUnauthorized)

	// Correct credentials yield a valid token
	c, rec = newJSONContext(e, http.MethodPost, "/api/auth/login",
		`{"email": "tech@lab.example", "password": "s3cret"}`)
	callHandler(t, Login, c)
	expectStatus(t, rec, http.StatusOK)

	resp := decodeBody(t, rec)
	token, ok := resp["token"].(string)
	if !ok || token == "" {
		t.Fatalf("Expected a token in the login response, got %v", resp)
	}

	claims, err := jwtutil.ValidateToken(token)
	if err != nil {
		t.Fatalf("Issued token failed validation: %v", err)
	}
	if claims.Email != "tech@lab.example" {
		t.Errorf("Expected claims email tech@lab.example, got %s", claims.Email)
	}
}

func TestRegister_RequiresCredentials(t *testing.T) {
	e := setupTest(t)

	c, rec := newJSONContext(e, http.MethodPost, "/api/auth/register", `{"name": "No Creds"}`)
	callHandler(t, Register, c)
	expectStatus(t, rec, http.StatusBadRequest)
}
