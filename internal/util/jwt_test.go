package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenRoundTrip(t *testing.T) {
	InitJWT("test-secret")

	token, err := GenerateToken("ELENA-M1M1-M1M1", true)
	assert.NoError(t, err)

	claims, err := ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "ELENA-M1M1-M1M1", claims.MachineID)
	assert.True(t, claims.Master)
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	InitJWT("test-secret")
	token, err := GenerateToken("ELENA-M1M1-M1M1", false)
	assert.NoError(t, err)

	_, err = ValidateToken(token + "x")
	assert.Error(t, err)

	InitJWT("another-secret")
	_, err = ValidateToken(token)
	assert.Error(t, err)
}
