package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const testSecret = "test-secret-at-least-32-chars-long-for-security"

// signToken mimics what the upstream identity provider issues.
func signToken(t *testing.T, secret, issuer string, userID uuid.UUID, ttl time.Duration) string {
	t.Helper()

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		Issuer:    issuer,
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestVerifier_ValidateToken_Success(t *testing.T) {
	v := NewVerifier(testSecret, "mindflow-test")
	userID := uuid.New()

	token := signToken(t, testSecret, "mindflow-test", userID, 15*time.Minute)

	validatedID, err := v.ValidateToken(context.Background(), token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if validatedID != userID {
		t.Errorf("expected userID %s, got %s", userID, validatedID)
	}
}

func TestVerifier_ValidateToken_Expired(t *testing.T) {
	v := NewVerifier(testSecret, "mindflow-test")

	token := signToken(t, testSecret, "mindflow-test", uuid.New(), -1*time.Hour)

	_, err := v.ValidateToken(context.Background(), token)
	if err == nil {
		t.Fatal("expected error for expired token, got nil")
	}
}

func TestVerifier_ValidateToken_InvalidSignature(t *testing.T) {
	v := NewVerifier(testSecret, "mindflow-test")

	otherSecret := "different-secret-32-chars-long-for-security!!"
	token := signToken(t, otherSecret, "mindflow-test", uuid.New(), 15*time.Minute)

	_, err := v.ValidateToken(context.Background(), token)
	if err == nil {
		t.Fatal("expected error for invalid signature, got nil")
	}
}

func TestVerifier_ValidateToken_WrongIssuer(t *testing.T) {
	v := NewVerifier(testSecret, "mindflow-test")

	token := signToken(t, testSecret, "someone-else", uuid.New(), 15*time.Minute)

	_, err := v.ValidateToken(context.Background(), token)
	if err == nil {
		t.Fatal("expected error for wrong issuer, got nil")
	}
	if !strings.Contains(err.Error(), "invalid issuer") {
		t.Errorf("expected 'invalid issuer' error, got: %v", err)
	}
}

func TestVerifier_ValidateToken_EmptyIssuerSkipsCheck(t *testing.T) {
	v := NewVerifier(testSecret, "")
	userID := uuid.New()

	token := signToken(t, testSecret, "whatever", userID, 15*time.Minute)

	validatedID, err := v.ValidateToken(context.Background(), token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if validatedID != userID {
		t.Errorf("expected userID %s, got %s", userID, validatedID)
	}
}

func TestVerifier_ValidateToken_Malformed(t *testing.T) {
	v := NewVerifier(testSecret, "mindflow-test")

	malformedTokens := []string{
		"",
		"not.a.jwt",
		"invalid-token",
		"header.payload", // Missing signature
	}

	for _, token := range malformedTokens {
		_, err := v.ValidateToken(context.Background(), token)
		if err == nil {
			t.Errorf("expected error for malformed token %q, got nil", token)
		}
	}
}

func TestVerifier_ValidateToken_NonUUIDSubject(t *testing.T) {
	v := NewVerifier(testSecret, "mindflow-test")

	claims := jwt.RegisteredClaims{
		Subject:   "not-a-uuid",
		Issuer:    "mindflow-test",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	_, err = v.ValidateToken(context.Background(), token)
	if err == nil {
		t.Fatal("expected error for non-UUID subject, got nil")
	}
	if !strings.Contains(err.Error(), "invalid subject") {
		t.Errorf("expected 'invalid subject' error, got: %v", err)
	}
}
