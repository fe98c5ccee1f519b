package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setTestSecret(t *testing.T) {
	t.Helper()
	viper.Set("JWT_SECRET", "test-secret")
	t.Cleanup(func() { viper.Set("JWT_SECRET", "") })
}

func TestGenerateAndParseToken(t *testing.T) {
	setTestSecret(t)

	token, err := GenerateToken(42, "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.AdminID)
	assert.Equal(t, "admin", claims.Role)
}

func TestGenerateTokenMissingSecret(t *testing.T) {
	viper.Set("JWT_SECRET", "")

	_, err := GenerateToken(1, "admin")
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestParseTokenTampered(t *testing.T) {
	setTestSecret(t)

	token, err := GenerateToken(42, "admin")
	require.NoError(t, err)

	// Flip a byte in the signature segment.
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = ParseToken(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenWrongSecret(t *testing.T) {
	setTestSecret(t)

	token, err := GenerateToken(42, "admin")
	require.NoError(t, err)

	viper.Set("JWT_SECRET", "another-secret")
	_, err = ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenExpiry(t *testing.T) {
	setTestSecret(t)

	// Issued just inside the window still verifies.
	fresh, err := generateTokenAt(42, "admin", time.Now().Add(-TokenTTL+time.Minute))
	require.NoError(t, err)
	_, err = ParseToken(fresh)
	assert.NoError(t, err)

	// Issued just outside the window is rejected.
	stale, err := generateTokenAt(42, "admin", time.Now().Add(-TokenTTL-time.Minute))
	require.NoError(t, err)
	_, err = ParseToken(stale)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenEmpty(t *testing.T) {
	setTestSecret(t)

	_, err := ParseToken("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestDecodeTokenUnverified(t *testing.T) {
	setTestSecret(t)

	token, err := GenerateToken(7, "super-admin")
	require.NoError(t, err)

	// Decoding does not need the secret.
	viper.Set("JWT_SECRET", "")
	claims, err := DecodeTokenUnverified(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.AdminID)
	assert.Equal(t, "super-admin", claims.Role)

	_, err = DecodeTokenUnverified("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
