package auth_test

import (
	"testing"

	"simple-kanban/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)

	assert.NotEqual(t, "password123", hash)
	assert.True(t, auth.CheckPassword(hash, "password123"))
	assert.False(t, auth.CheckPassword(hash, "wrong_password"))
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	assert.False(t, auth.CheckPassword("not-a-bcrypt-hash", "password123"))
}
