package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	userID := uuid.New()

	token, sessionID, err := issuer.CreateToken(userID, "student")
	require.NoError(t, err)
	require.NotEmpty(t, sessionID)

	claims, err := issuer.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "student", claims.Role)
	assert.Equal(t, sessionID, claims.ID)

	_, second, err := issuer.CreateToken(userID, "student")
	require.NoError(t, err)
	assert.NotEqual(t, sessionID, second)
}

func TestTokenIssuer_Rejects(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	token, _, err := issuer.CreateToken(uuid.New(), "parent")
	require.NoError(t, err)

	_, err = NewTokenIssuer("other", time.Hour).ValidateToken(token)
	assert.Error(t, err)

	expired := NewTokenIssuer("secret", time.Hour)
	expired.ttl = -time.Minute
	old, _, err := expired.CreateToken(uuid.New(), "parent")
	require.NoError(t, err)
	_, err = issuer.ValidateToken(old)
	assert.Error(t, err)

	_, err = issuer.ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.NoError(t, ComparePasswords(hash, "hunter22"))
	assert.Error(t, ComparePasswords(hash, "hunter23"))
}
