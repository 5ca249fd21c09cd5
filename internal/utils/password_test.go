package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPasswordHashAndVerify(t *testing.T) {
	hash, err := HashPassword("s3cret-pass", 4)
	require.NoError(t, err)
	require.NotEqual(t, "s3cret-pass", hash)

	require.True(t, VerifyPassword(hash, "s3cret-pass"))
	require.False(t, VerifyPassword(hash, "wrong-pass"))
}

func TestPasswordCostOutOfRangeFallsBack(t *testing.T) {
	// An invalid configured cost must not break registration.
	hash, err := HashPassword("s3cret-pass", 99)
	require.NoError(t, err)
	require.True(t, VerifyPassword(hash, "s3cret-pass"))
}
