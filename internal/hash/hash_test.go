package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	t.Parallel()

	h, err := HashPassword("user123456")
	require.NoError(t, err)
	assert.NotEqual(t, "user123456", h)

	assert.True(t, CheckPassword(h, "user123456"))
	assert.False(t, CheckPassword(h, "wrong-password"))
}

func TestHashPassword_Salted(t *testing.T) {
	t.Parallel()

	h1, err := HashPassword("user123456")
	require.NoError(t, err)
	h2, err := HashPassword("user123456")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
}
