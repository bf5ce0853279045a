package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateVerificationToken(t *testing.T) {
	token, err := GenerateVerificationToken()
	require.NoError(t, err)
	assert.Len(t, token, 64) // 32 bytes hex-encoded

	other, err := GenerateVerificationToken()
	require.NoError(t, err)
	assert.NotEqual(t, token, other)
}

func TestHashTokenIsStable(t *testing.T) {
	assert.Equal(t, HashToken("abc"), HashToken("abc"))
	assert.NotEqual(t, HashToken("abc"), HashToken("abd"))
	assert.NotEqual(t, "abc", HashToken("abc"))
}

func TestRandomOTPRange(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := RandomOTP()
		require.NoError(t, err)
		assert.GreaterOrEqual(t, code, 1000)
		assert.LessOrEqual(t, code, 9999)
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "a@x.com", NormalizeEmail("  A@X.com "))
	assert.Equal(t, "abc", NormalizeUserName(" ABC "))
}
