/* pkg/crypto/secrets_test.go */

package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateHexSecret(t *testing.T) {
	s, err := GenerateHexSecret(32)
	require.NoError(t, err)
	assert.Len(t, s, 64)
	assert.Equal(t, strings.ToLower(s), s)

	s2, err := GenerateHexSecret(32)
	require.NoError(t, err)
	assert.NotEqual(t, s, s2)

	_, err = GenerateHexSecret(8)
	assert.Error(t, err)
}

func TestGeneratePassword(t *testing.T) {
	pw, err := GeneratePassword(20)
	require.NoError(t, err)
	assert.Len(t, pw, 20)

	assert.True(t, strings.ContainsAny(pw, "abcdefghijklmnopqrstuvwxyz"))
	assert.True(t, strings.ContainsAny(pw, "ABCDEFGHIJKLMNOPQRSTUVWXYZ"))
	assert.True(t, strings.ContainsAny(pw, "0123456789"))
	assert.True(t, strings.ContainsAny(pw, "!@#$%&*?"))

	_, err = GeneratePassword(3)
	assert.Error(t, err)
}

func TestRedact(t *testing.T) {
	assert.Equal(t, "(empty)", Redact(""))
	assert.Equal(t, "********", Redact("super-secret"))
	assert.NotContains(t, Redact("super-secret"), "super")
}
