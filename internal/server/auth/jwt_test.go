package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/toolly/toolly/internal/common"
)

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")
	var userID int64 = 123

	tok, err := GenerateToken(userID, PurposeAccess, secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	gotUserID, err := GetUserIDFromToken(tok, PurposeAccess, secret)
	if err != nil {
		t.Fatalf("GetUserIDFromToken error: %v", err)
	}
	if gotUserID != userID {
		t.Fatalf("userID mismatch: got %d want %d", gotUserID, userID)
	}
}

func TestGetUserIDFromToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")

	tok, err := GenerateToken(1, PurposeAccess, secret, -1*time.Second)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = GetUserIDFromToken(tok, PurposeAccess, secret)
	if !errors.Is(err, common.ErrTokenExpired) {
		t.Fatalf("expected common.ErrTokenExpired, got %v", err)
	}
}

func TestGetUserIDFromToken_ExpiryBoundary(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")

	// 59 minutes into a one-hour token: still valid.
	tok, err := GenerateToken(7, PurposeAccess, secret, time.Hour-59*time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}
	if _, err := GetUserIDFromToken(tok, PurposeAccess, secret); err != nil {
		t.Fatalf("token should still verify inside its lifetime: %v", err)
	}

	// 61 minutes into a one-hour token: expired.
	tok, err = GenerateToken(7, PurposeAccess, secret, time.Hour-61*time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}
	if _, err := GetUserIDFromToken(tok, PurposeAccess, secret); !errors.Is(err, common.ErrTokenExpired) {
		t.Fatalf("expected common.ErrTokenExpired past the lifetime, got %v", err)
	}
}

func TestGetUserIDFromToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken(2, PurposeAccess, []byte("right-secret"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = GetUserIDFromToken(tok, PurposeAccess, []byte("wrong-secret"))
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}

func TestGetUserIDFromToken_PurposeMismatch(t *testing.T) {
	t.Parallel()

	secret := []byte("k")

	pending, err := GenerateToken(3, Purpose2FAPending, secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	// A pending 2FA token must never pass as a session token.
	if _, err := GetUserIDFromToken(pending, PurposeAccess, secret); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected purpose mismatch to be rejected, got %v", err)
	}

	access, err := GenerateToken(3, PurposeAccess, secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}
	if _, err := GetUserIDFromToken(access, Purpose2FAPending, secret); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected purpose mismatch to be rejected, got %v", err)
	}
}

func TestGetUserIDFromToken_MalformedString(t *testing.T) {
	t.Parallel()

	_, err := GetUserIDFromToken("not.a.jwt", PurposeAccess, []byte("k"))
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken for malformed token, got %v", err)
	}
}

func TestGetUserIDFromToken_RejectsNoneAlgorithm(t *testing.T) {
	t.Parallel()

	tok := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID:  9,
		Purpose: PurposeAccess,
	})
	signed, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("signing with none: %v", err)
	}

	if _, err := GetUserIDFromToken(signed, PurposeAccess, []byte("k")); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("token signed with alg=none must be rejected, got %v", err)
	}
}
