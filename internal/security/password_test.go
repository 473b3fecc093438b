package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndVerify(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	t.Run("success - password verifies against its own hash", func(t *testing.T) {
		for _, password := range []string{"pw123!", "", "correct horse battery staple", "ünïcødé"} {
			// act
			hash, err := hasher.Hash(password)

			// assert
			assert.NoError(t, err)
			assert.NotEqual(t, password, hash)
			assert.True(t, hasher.Verify(password, hash))
		}
	})
	t.Run("failure - different password does not verify", func(t *testing.T) {
		// arrange
		hash, err := hasher.Hash("pw123!")
		assert.NoError(t, err)

		// act & assert
		assert.False(t, hasher.Verify("pw123", hash))
		assert.False(t, hasher.Verify("newpw!", hash))
	})
	t.Run("success - hashes are salted", func(t *testing.T) {
		// act
		first, _ := hasher.Hash("same password")
		second, _ := hasher.Hash("same password")

		// assert
		assert.NotEqual(t, first, second)
	})
	t.Run("success - password of exactly 72 bytes", func(t *testing.T) {
		password := strings.Repeat("a", 72)
		hash, err := hasher.Hash(password)
		assert.NoError(t, err)
		assert.True(t, hasher.Verify(password, hash))
	})
	t.Run("failure - password too long", func(t *testing.T) {
		// act
		hash, err := hasher.Hash(strings.Repeat("a", 73))

		// assert
		assert.ErrorIs(t, err, ErrPasswordTooLong)
		assert.Empty(t, hash)
	})
	t.Run("failure - empty or malformed hash does not verify", func(t *testing.T) {
		assert.False(t, hasher.Verify("pw123!", ""))
		assert.False(t, hasher.Verify("pw123!", "not-a-bcrypt-hash"))
		assert.False(t, hasher.Verify("", "$2a$"))
	})
}

func TestNewBcryptHasher(t *testing.T) {
	t.Run("success - cost is clamped", func(t *testing.T) {
		assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(0).cost)
		assert.Equal(t, bcrypt.MaxCost, NewBcryptHasher(99).cost)
		assert.Equal(t, 12, NewBcryptHasher(12).cost)
	})
}
