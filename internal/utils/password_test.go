package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("abc123", 4)
	require.NoError(t, err)
	require.NotEqual(t, "abc123", hash)

	assert.True(t, VerifyPassword(hash, "abc123"))
	assert.False(t, VerifyPassword(hash, "abc124"))
	assert.False(t, VerifyPassword(hash, ""))
	assert.False(t, VerifyPassword("", "abc123"))
}

func TestHashPasswordDistinctSalts(t *testing.T) {
	h1, err := HashPassword("abc123", 4)
	require.NoError(t, err)
	h2, err := HashPassword("abc123", 4)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}
