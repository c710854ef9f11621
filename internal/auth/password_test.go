package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/MrJamesThe3rd/mda/internal/apperr"
)

func TestBcrypt(t *testing.T) {
	b := NewBcrypt(bcrypt.MinCost)

	hash, err := b.Hash("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)

	assert.True(t, b.Verify(hash, "secret1"))
	assert.False(t, b.Verify(hash, "secret2"))
	assert.False(t, b.Verify("", "secret1"))
	assert.False(t, b.Verify("", "decoy-password"))
}

func TestBcrypt_PasswordTooLong(t *testing.T) {
	b := NewBcrypt(bcrypt.MinCost)

	_, err := b.Hash(strings.Repeat("a", 73))
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))
}
