package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	InitJWT("unit-test-secret", time.Hour)

	token, err := GenerateToken(7, "admin")
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}

func TestParseTokenRejectsForeignSecret(t *testing.T) {
	InitJWT("first-secret", time.Hour)
	token, err := GenerateToken(1, "staff")
	require.NoError(t, err)

	InitJWT("second-secret", time.Hour)
	_, err = ParseToken(token)
	assert.Error(t, err)

	_, err = ParseToken("not-a-token")
	assert.Error(t, err)
}
