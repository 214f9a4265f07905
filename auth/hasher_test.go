package auth

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSalt(t *testing.T) {
	s1, err := GenerateSalt()
	require.NoError(t, err)
	s2, err := GenerateSalt()
	require.NoError(t, err)

	assert.Len(t, s1, 32, "salt must be 32 hex characters")
	_, err = hex.DecodeString(s1)
	assert.NoError(t, err, "salt must be valid hex")
	assert.NotEqual(t, s1, s2, "salts must be unique per call")
}

func TestHashPasswordDeterministic(t *testing.T) {
	salt, err := GenerateSalt()
	require.NoError(t, err)

	h1, err := HashPassword("secret", salt)
	require.NoError(t, err)
	h2, err := HashPassword("secret", salt)
	require.NoError(t, err)

	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 128, "hash must be 64 bytes hex-encoded")
	_, err = hex.DecodeString(h1)
	assert.NoError(t, err)
}

func TestHashPasswordDiffersByPassword(t *testing.T) {
	salt, err := GenerateSalt()
	require.NoError(t, err)

	h1, err := HashPassword("secret", salt)
	require.NoError(t, err)
	h2, err := HashPassword("Secret", salt)
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
}

func TestHashPasswordDiffersBySalt(t *testing.T) {
	s1, err := GenerateSalt()
	require.NoError(t, err)
	s2, err := GenerateSalt()
	require.NoError(t, err)

	h1, err := HashPassword("secret", s1)
	require.NoError(t, err)
	h2, err := HashPassword("secret", s2)
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2, "same password under different salts must differ")
}

func TestHashPasswordRejectsEmptyInput(t *testing.T) {
	_, err := HashPassword("", "aabbccdd")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = HashPassword("secret", "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
