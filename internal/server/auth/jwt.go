package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/toolly/toolly/internal/common"
)

// Token purposes. A pending token is only good for finishing a 2FA challenge
// and is never accepted where an access token is required, or vice versa.
const (
	PurposeAccess        = "access"
	Purpose2FAPending    = "twofa_pending"
	PurposePasswordReset = "password_reset"
)

// Claims carries the registered claim set plus the authenticated user and
// the purpose the token was minted for.
type Claims struct {
	jwt.RegisteredClaims
	UserID  int64  `json:"user_id"`
	Purpose string `json:"purpose"`
}

// GenerateToken signs {userID, purpose, iat, exp=now+validity} with the
// server secret (HS256).
func GenerateToken(userID int64, purpose string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		UserID:  userID,
		Purpose: purpose,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetUserIDFromToken verifies signature, expiry, and purpose, and returns the
// embedded user id. Expired tokens yield common.ErrTokenExpired; any other
// defect (bad signature, malformed token, purpose mismatch, wrong signing
// method) yields common.ErrInvalidToken.
func GetUserIDFromToken(tokenString, purpose string, secretKey []byte) (int64, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrInvalidToken
		}
		return secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, common.ErrTokenExpired
		}
		return 0, common.ErrInvalidToken
	}

	if !token.Valid || claims.Purpose != purpose {
		return 0, common.ErrInvalidToken
	}

	return claims.UserID, nil
}
