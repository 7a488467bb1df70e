package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndParseJWT(t *testing.T) {
	token, err := SignJWT("s3cret", "user-123", "student", 60)
	require.NoError(t, err)

	claims, err := ParseJWT("s3cret", token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "student", claims.Role)
	assert.Equal(t, "gignest", claims.Issuer)
}

func TestParseJWTWrongSecret(t *testing.T) {
	token, err := SignJWT("s3cret", "user-123", "client", 60)
	require.NoError(t, err)

	_, err = ParseJWT("other", token)
	assert.Error(t, err)
}

func TestParseJWTExpired(t *testing.T) {
	token, err := SignJWT("s3cret", "user-123", "client", -1)
	require.NoError(t, err)

	_, err = ParseJWT("s3cret", token)
	assert.Error(t, err)
}

func TestParseJWTGarbage(t *testing.T) {
	_, err := ParseJWT("s3cret", "not.a.token")
	assert.Error(t, err)
}
