package services

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	apperr "github.com/skillpath/roadmap-backend/internal/pkg/errors"
	"github.com/skillpath/roadmap-backend/internal/pkg/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

func TestTokenRoundTrip(t *testing.T) {
	ts := NewTokenService(testLogger(t), "test-secret", time.Minute)

	userID := uuid.New()
	token, err := ts.Issue(userID, "alice")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, gotID, err := ts.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if gotID != userID {
		t.Fatalf("subject: got=%s want=%s", gotID, userID)
	}
	if claims.Username != "alice" {
		t.Fatalf("username claim: got=%q", claims.Username)
	}
}

func TestTokenExpired(t *testing.T) {
	ts := NewTokenService(testLogger(t), "test-secret", -time.Minute)

	token, err := ts.Issue(uuid.New(), "alice")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, _, err := ts.Verify(token); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("expected unauthorized for expired token, got %v", err)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	issuer := NewTokenService(testLogger(t), "secret-a", time.Minute)
	verifier := NewTokenService(testLogger(t), "secret-b", time.Minute)

	token, err := issuer.Issue(uuid.New(), "alice")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, _, err := verifier.Verify(token); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("expected unauthorized for wrong secret, got %v", err)
	}
}

func TestTokenMalformedSubject(t *testing.T) {
	secret := "test-secret"
	ts := NewTokenService(testLogger(t), secret, time.Minute)

	now := time.Now()
	raw := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Username: "alice",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "not-a-uuid",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
		},
	})
	token, err := raw.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, _, err := ts.Verify(token); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("expected unauthorized for malformed subject, got %v", err)
	}
}

func TestTokenGarbage(t *testing.T) {
	ts := NewTokenService(testLogger(t), "test-secret", time.Minute)
	if _, _, err := ts.Verify("not.a.token"); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("expected unauthorized for garbage token, got %v", err)
	}
}
