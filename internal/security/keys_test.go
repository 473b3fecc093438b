package security

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSecurity_GenerateRandomKey(t *testing.T) {
	t.Run("success - key has requested length and charset", func(t *testing.T) {
		// act
		key := GenerateRandomKey(32)

		// assert
		assert.Len(t, key, 32)
		for _, r := range key {
			assert.True(t, strings.ContainsRune(charset, r))
		}
		assert.NotEqual(t, key, GenerateRandomKey(32))
	})
}

func TestSecurity_NewKeys(t *testing.T) {
	t.Run("success - keys from environment are used", func(t *testing.T) {
		// arrange
		t.Setenv("LMS_HASH_KEY", strings.Repeat("h", 32))
		t.Setenv("LMS_BLOCK_KEY", strings.Repeat("b", 24))
		path := filepath.Join(t.TempDir(), ".env")

		// act
		hashKey, blockKey := NewKeys(path)

		// assert
		assert.Equal(t, []byte(strings.Repeat("h", 32)), hashKey)
		assert.Equal(t, []byte(strings.Repeat("b", 24)), blockKey)
		assert.NoFileExists(t, path)
	})
	t.Run("success - missing keys are generated and written", func(t *testing.T) {
		// arrange
		t.Setenv("LMS_HASH_KEY", "")
		t.Setenv("LMS_BLOCK_KEY", "")
		os.Unsetenv("LMS_HASH_KEY")
		os.Unsetenv("LMS_BLOCK_KEY")
		path := filepath.Join(t.TempDir(), ".env")

		// act
		hashKey, blockKey := NewKeys(path)

		// assert
		assert.Len(t, hashKey, 32)
		assert.Len(t, blockKey, 24)
		b, err := os.ReadFile(path)
		assert.NoError(t, err)
		assert.Contains(t, string(b), "LMS_HASH_KEY=")
		assert.Contains(t, string(b), "LMS_BLOCK_KEY=")
	})
}
