package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTokenConfig() TokenConfig {
	return TokenConfig{
		Secret:   []byte("unit-test-secret"),
		Issuer:   "medwatch",
		Audience: "medwatch-clients",
		Expiry:   time.Hour,
	}
}

func TestGenerateAndVerifyToken(t *testing.T) {
	cfg := testTokenConfig()

	token, err := GenerateToken(cfg, "doctor", "Admin")
	require.NoError(t, err)

	claims, err := VerifyToken(cfg, token)
	require.NoError(t, err)
	assert.Equal(t, "doctor", claims.Name)
	assert.Equal(t, "Admin", claims.Role)
	assert.Equal(t, "medwatch", claims.Issuer)
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	cfg := testTokenConfig()

	token, err := GenerateToken(cfg, "doctor", "Admin")
	require.NoError(t, err)

	other := cfg
	other.Secret = []byte("a-different-secret")
	_, err = VerifyToken(other, token)
	assert.Error(t, err)
}

func TestVerifyToken_WrongIssuer(t *testing.T) {
	cfg := testTokenConfig()

	token, err := GenerateToken(cfg, "doctor", "Admin")
	require.NoError(t, err)

	other := cfg
	other.Issuer = "someone-else"
	_, err = VerifyToken(other, token)
	assert.Error(t, err)
}

func TestVerifyToken_WrongAudience(t *testing.T) {
	cfg := testTokenConfig()

	token, err := GenerateToken(cfg, "user", "User")
	require.NoError(t, err)

	other := cfg
	other.Audience = "another-api"
	_, err = VerifyToken(other, token)
	assert.Error(t, err)
}

func TestVerifyToken_Expired(t *testing.T) {
	cfg := testTokenConfig()
	cfg.Expiry = -time.Minute

	token, err := GenerateToken(cfg, "doctor", "Admin")
	require.NoError(t, err)

	_, err = VerifyToken(cfg, token)
	assert.Error(t, err)
}

func TestVerifyToken_Garbage(t *testing.T) {
	_, err := VerifyToken(testTokenConfig(), "not.a.token")
	assert.Error(t, err)
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("med123")
	require.NoError(t, err)

	assert.NoError(t, VerifyPassword(hash, "med123"))
	assert.Error(t, VerifyPassword(hash, "wrong"))
	assert.Error(t, VerifyPassword("garbage", "med123"))
}
