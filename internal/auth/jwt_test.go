package auth_test

import (
	"testing"
	"time"

	"simple-kanban/internal/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret-key"

func newManager() *auth.TokenManager {
	return auth.NewTokenManager(testSecret, 15*time.Minute, 7*24*time.Hour)
}

func TestGenerateAndParseToken(t *testing.T) {
	manager := newManager()

	// Генерируем токен
	userID := "test-user-id"
	token, err := manager.GenerateAccessToken(userID)

	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	// Парсим токен
	parsedUserID, err := manager.ParseToken(token, auth.TokenTypeAccess)

	assert.NoError(t, err)
	assert.Equal(t, userID, parsedUserID)
}

func TestParseToken_WrongType(t *testing.T) {
	manager := newManager()

	refresh, err := manager.GenerateRefreshToken("test-user-id")
	assert.NoError(t, err)

	_, err = manager.ParseToken(refresh, auth.TokenTypeAccess)

	assert.ErrorIs(t, err, auth.ErrInvalidClaims)

	userID, err := manager.ParseToken(refresh, auth.TokenTypeRefresh)
	assert.NoError(t, err)
	assert.Equal(t, "test-user-id", userID)
}

func TestParseToken_InvalidToken(t *testing.T) {
	_, err := newManager().ParseToken("invalid-token", auth.TokenTypeAccess)

	assert.ErrorIs(t, err, auth.ErrInvalidToken)
	assert.Equal(t, "invalid token", err.Error())
}

func TestParseToken_WrongSecret(t *testing.T) {
	other := auth.NewTokenManager("another-secret", time.Minute, time.Hour)
	token, err := other.GenerateAccessToken("test-user-id")
	assert.NoError(t, err)

	_, err = newManager().ParseToken(token, auth.TokenTypeAccess)

	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestParseToken_ExpiredToken(t *testing.T) {
	// Токен истек 1 час назад
	claims := auth.Claims{
		Type: auth.TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "test-user-id",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-1 * time.Hour)),
		},
	}
	expiredToken, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))

	_, err := newManager().ParseToken(expiredToken, auth.TokenTypeAccess)

	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestParseToken_MissingSubject(t *testing.T) {
	claims := auth.Claims{
		Type: auth.TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}
	token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))

	_, err := newManager().ParseToken(token, auth.TokenTypeAccess)

	assert.ErrorIs(t, err, auth.ErrInvalidClaims)
	assert.Equal(t, "invalid claims", err.Error())
}
