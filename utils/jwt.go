package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
)

// TokenTTL is the validity window of a session token. Tokens cannot be
// revoked early; logout is purely client-side.
const TokenTTL = 24 * time.Hour

// ErrMissingSecret is returned when no signing key is configured. This is a
// fatal startup condition, not a per-request retry case.
var ErrMissingSecret = errors.New("JWT_SECRET is not configured")

// ErrInvalidToken covers missing, malformed, tampered and expired tokens.
// Callers get the same error shape for all of them.
var ErrInvalidToken = errors.New("invalid or expired token")

// TokenClaims is the payload of a session token.
type TokenClaims struct {
	AdminID int64  `json:"admin_id"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken issues a signed session token for the given administrator.
func GenerateToken(adminID int64, role string) (string, error) {
	return generateTokenAt(adminID, role, time.Now())
}

func generateTokenAt(adminID int64, role string, now time.Time) (string, error) {
	jwtSecret := viper.GetString("JWT_SECRET")
	if jwtSecret == "" {
		return "", ErrMissingSecret
	}

	claims := TokenClaims{
		AdminID: adminID,
		Role:    role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(jwtSecret))
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return tokenString, nil
}

// ParseToken verifies signature and expiry and returns the embedded claims.
// Verification is stateless: the same unexpired token always verifies the
// same way, there is no revocation list.
func ParseToken(tokenString string) (*TokenClaims, error) {
	jwtSecret := viper.GetString("JWT_SECRET")
	if jwtSecret == "" {
		return nil, ErrMissingSecret
	}
	if tokenString == "" {
		return nil, ErrInvalidToken
	}

	claims := new(TokenClaims)
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// DecodeTokenUnverified extracts claims without checking the signature. The
// session client uses it to read the role out of a freshly issued token
// without a second round trip; it must never be used for authorization.
func DecodeTokenUnverified(tokenString string) (*TokenClaims, error) {
	claims := new(TokenClaims)
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
