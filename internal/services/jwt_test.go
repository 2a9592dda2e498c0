package services

import (
	"testing"
	"time"

	"voltage_lab/internal/models"

	"github.com/google/uuid"
)

func TestJWTRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret")
	user := &models.User{
		ID:        uuid.New(),
		Email:     "user@example.com",
		CreatedAt: time.Now().UTC(),
	}

	token, err := svc.GenerateAccessToken(user)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != user.ID.String() {
		t.Errorf("expected user id %s, got %s", user.ID, claims.UserID)
	}
	if claims.Email != user.Email {
		t.Errorf("expected email %s, got %s", user.Email, claims.Email)
	}
}

func TestJWTWrongSecret(t *testing.T) {
	issuer := NewJWTService("secret-a")
	verifier := NewJWTService("secret-b")

	token, err := issuer.GenerateAccessToken(&models.User{ID: uuid.New(), Email: "u@e.com"})
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, err := verifier.ValidateToken(token); err == nil {
		t.Error("token signed with another secret must be rejected")
	}
}

func TestJWTGarbageToken(t *testing.T) {
	svc := NewJWTService("test-secret")
	if _, err := svc.ValidateToken("not.a.token"); err == nil {
		t.Error("garbage token must be rejected")
	}
}
