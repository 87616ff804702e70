package security

import (
	"bytes"
	"crypto/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptIssuer_Issue(t *testing.T) {
	issuer := &BcryptIssuer{length: DefaultPasswordLength, cost: bcrypt.MinCost, random: rand.Reader}

	plain, hash, err := issuer.Issue()
	require.NoError(t, err)
	assert.Len(t, plain, DefaultPasswordLength)
	for _, r := range plain {
		assert.True(t, strings.ContainsRune(passwordAlphabet, r), "unexpected rune %q", r)
	}
	assert.NotEqual(t, plain, hash)
	assert.NoError(t, ComparePassword(hash, plain))
	assert.ErrorIs(t, ComparePassword(hash, plain+"x"), bcrypt.ErrMismatchedHashAndPassword)

	other, _, err := issuer.Issue()
	require.NoError(t, err)
	assert.NotEqual(t, plain, other)
}

func TestRandomString(t *testing.T) {
	t.Run("rejects biased bytes", func(t *testing.T) {
		// 255 is above the rejection limit for a 56-char alphabet; 0 maps to 'A'.
		src := bytes.NewReader(append(bytes.Repeat([]byte{255}, 4), make([]byte, 16)...))
		got, err := randomString(src, 4)
		require.NoError(t, err)
		assert.Equal(t, "AAAA", got)
	})

	t.Run("short reader", func(t *testing.T) {
		_, err := randomString(bytes.NewReader([]byte{1}), 4)
		assert.Error(t, err)
	})

	t.Run("invalid length", func(t *testing.T) {
		_, err := randomString(rand.Reader, 0)
		assert.Error(t, err)
	})
}
