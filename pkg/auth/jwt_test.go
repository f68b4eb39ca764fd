package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	m := NewManager("secret", time.Hour)

	token, err := m.GenerateToken(55, "alice", RoleUser)
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, 55, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, RoleUser, claims.Role)
}

func TestValidateRejectsForeignSecret(t *testing.T) {
	token, err := NewManager("one", time.Hour).GenerateToken(1, "bob", RoleAdmin)
	require.NoError(t, err)

	_, err = NewManager("two", time.Hour).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsExpired(t *testing.T) {
	m := NewManager("secret", time.Hour)
	m.ttl = -time.Minute

	token, err := m.GenerateToken(1, "bob", RoleUser)
	require.NoError(t, err)

	_, err = m.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHashing(t *testing.T) {
	hashed, err := HashPassword("s3cret")
	require.NoError(t, err)

	assert.True(t, CheckPassword(hashed, "s3cret"))
	assert.False(t, CheckPassword(hashed, "wrong"))
}
