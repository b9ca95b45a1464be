package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("password123", 4)
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "password123", hash)

	assert.True(t, VerifyPassword(hash, "password123"))
	assert.False(t, VerifyPassword(hash, "password124"))
	assert.False(t, VerifyPassword("not-a-hash", "password123"))
}

func TestHashPasswordDistinctSalts(t *testing.T) {
	h1, err := HashPassword("password123", 4)
	require.NoError(t, err)
	h2, err := HashPassword("password123", 4)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}
