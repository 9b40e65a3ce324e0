package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashAndVerify(t *testing.T) {
	hash, err := HashPassword("hunter2!", 4) // low cost keeps the test fast
	require.NoError(t, err)
	require.NotEqual(t, "hunter2!", hash)

	assert.True(t, VerifyPassword(hash, "hunter2!"))
	assert.False(t, VerifyPassword(hash, "hunter3!"))
	assert.False(t, VerifyPassword("not-a-hash", "hunter2!"))
}

func TestHashPasswordProducesUniqueSalts(t *testing.T) {
	h1, err := HashPassword("same-password", 4)
	require.NoError(t, err)
	h2, err := HashPassword("same-password", 4)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}

func TestNewResetToken(t *testing.T) {
	tok1, err := NewResetToken()
	require.NoError(t, err)
	tok2, err := NewResetToken()
	require.NoError(t, err)

	assert.Len(t, tok1, 64) // 32 random bytes, hex encoded
	assert.NotEqual(t, tok1, tok2)
}
