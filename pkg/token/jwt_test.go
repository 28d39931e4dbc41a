package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerifyToken(t *testing.T) {
	manager := NewJWTManager("test-secret", 1, 7)

	tokenString, err := manager.GenerateToken("admin-1", "admin@example.com", "ADMIN")
	require.NoError(t, err)

	claims, err := manager.VerifyToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", claims.AdminID)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, "ADMIN", claims.Role)
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	manager := NewJWTManager("test-secret", 1, 7)
	other := NewJWTManager("other-secret", 1, 7)

	tokenString, err := manager.GenerateToken("admin-1", "admin@example.com", "ADMIN")
	require.NoError(t, err)

	_, err = other.VerifyToken(tokenString)
	assert.Error(t, err)
}

func TestVerifyTokenGarbage(t *testing.T) {
	manager := NewJWTManager("test-secret", 1, 7)

	_, err := manager.VerifyToken("not-a-jwt")
	assert.Error(t, err)
}

func TestRefreshTokenOutlivesAccessToken(t *testing.T) {
	manager := NewJWTManager("test-secret", 1, 7)

	refresh, err := manager.GenerateRefreshToken("admin-1", "admin@example.com", "ADMIN")
	require.NoError(t, err)

	accessClaims, err := manager.VerifyToken(mustToken(t, manager))
	require.NoError(t, err)
	refreshClaims, err := manager.VerifyToken(refresh)
	require.NoError(t, err)

	assert.True(t, refreshClaims.ExpiresAt.After(accessClaims.ExpiresAt.Time))
}

func mustToken(t *testing.T, m *JWTManager) string {
	t.Helper()
	tok, err := m.GenerateToken("admin-1", "admin@example.com", "ADMIN")
	require.NoError(t, err)
	return tok
}
