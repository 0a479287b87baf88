// File: internal/platform/crypto/generator_test.go
package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateNumericOTP(t *testing.T) {
	code, err := GenerateNumericOTP(6)
	require.NoError(t, err)
	assert.Len(t, code, 6)
	for _, c := range code {
		assert.True(t, c >= '0' && c <= '9', "OTP must contain only decimal digits, got %q", code)
	}
}

func TestGenerateNumericOTP_Varies(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 20; i++ {
		code, err := GenerateNumericOTP(6)
		require.NoError(t, err)
		seen[code] = struct{}{}
	}
	// 20 draws from a million possibilities colliding down to one value
	// would mean the generator is broken.
	assert.Greater(t, len(seen), 1)
}

func TestGenerateSecureRandomString(t *testing.T) {
	s1, err := GenerateSecureRandomString(32)
	require.NoError(t, err)
	s2, err := GenerateSecureRandomString(32)
	require.NoError(t, err)
	assert.NotEmpty(t, s1)
	assert.NotEqual(t, s1, s2)
}
