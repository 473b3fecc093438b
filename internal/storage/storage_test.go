package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFileName(t *testing.T) {
	t.Run("success - allowed extension keeps folder and lowercases extension", func(t *testing.T) {
		name, err := NewFileName("users", "Avatar.PNG")
		assert.NoError(t, err)
		assert.True(t, strings.HasPrefix(name, "users/"))
		assert.True(t, strings.HasSuffix(name, ".png"))
	})
	t.Run("failure - unsupported extension", func(t *testing.T) {
		for _, name := range []string{"script.sh", "image.svg", "noext", "photo.png.exe"} {
			_, err := NewFileName("users", name)
			assert.ErrorIs(t, err, ErrUnsupportedFileType, name)
		}
	})
	t.Run("failure - folder escapes root", func(t *testing.T) {
		_, err := NewFileName("../outside", "a.png")
		assert.ErrorIs(t, err, ErrInvalidName)
	})
}

func TestLocalStorage(t *testing.T) {
	t.Run("success - file is saved, opened and deleted", func(t *testing.T) {
		// arrange
		dir := t.TempDir()
		ls, err := NewLocalStorage(dir)
		require.NoError(t, err)
		defer ls.Close()
		ctx := context.Background()

		// act
		name, saveErr := ls.Save(ctx, "courses", "cover.jpg", strings.NewReader("image bytes"))
		rc, openErr := ls.Open(ctx, name)
		require.NoError(t, openErr)
		content, _ := io.ReadAll(rc)
		rc.Close()
		deleteErr := ls.Delete(ctx, name)

		// assert
		assert.NoError(t, saveErr)
		assert.Equal(t, "image bytes", string(content))
		assert.NoError(t, deleteErr)
		_, statErr := os.Stat(filepath.Join(dir, filepath.FromSlash(name)))
		assert.True(t, errors.Is(statErr, os.ErrNotExist))
	})
	t.Run("failure - traversal names are rejected", func(t *testing.T) {
		// arrange
		parent := t.TempDir()
		dir := filepath.Join(parent, "uploads")
		ls, err := NewLocalStorage(dir)
		require.NoError(t, err)
		defer ls.Close()
		require.NoError(t, os.WriteFile(filepath.Join(parent, "secret.txt"), []byte("secret"), 0o644))

		// act & assert
		for _, name := range []string{"../secret.txt", "/etc/passwd", "users/../../secret.txt", `..\secret.txt`, ""} {
			rc, err := ls.Open(context.Background(), name)
			assert.Error(t, err, name)
			assert.Nil(t, rc, name)
		}
	})
	t.Run("failure - directory is not served", func(t *testing.T) {
		// arrange
		ls, err := NewLocalStorage(t.TempDir())
		require.NoError(t, err)
		defer ls.Close()
		_, err = ls.Save(context.Background(), "users", "a.gif", strings.NewReader("gif"))
		require.NoError(t, err)

		// act
		rc, err := ls.Open(context.Background(), "users")

		// assert
		assert.ErrorIs(t, err, os.ErrNotExist)
		assert.Nil(t, rc)
	})
	t.Run("failure - unsupported file type is not stored", func(t *testing.T) {
		// arrange
		dir := t.TempDir()
		ls, err := NewLocalStorage(dir)
		require.NoError(t, err)
		defer ls.Close()

		// act
		name, err := ls.Save(context.Background(), "users", "evil.html", strings.NewReader("<script>"))

		// assert
		assert.ErrorIs(t, err, ErrUnsupportedFileType)
		assert.Empty(t, name)
		entries, _ := os.ReadDir(dir)
		assert.Empty(t, entries)
	})
}
