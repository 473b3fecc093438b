package settings

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSettings_NewSettings(t *testing.T) {
	t.Run("success - defaults are used", func(t *testing.T) {
		// arrange
		t.Setenv("LMS_PORT", "5000")
		t.Setenv("LMS_DOMAIN", "localhost")

		// act
		s := NewSettings()

		// assert
		assert.Equal(t, ":5000", s.Port)
		assert.Equal(t, DriverSQLite, s.DBDriver)
		assert.Equal(t, SessionBackendSQL, s.SessionBackend)
		assert.Equal(t, StorageLocal, s.StorageBackend)
		assert.Equal(t, 30*24*time.Hour, s.SessionExpires)
		assert.Equal(t, "http://localhost:5000", s.BaseURL())
	})
	t.Run("success - environment overrides defaults", func(t *testing.T) {
		// arrange
		t.Setenv("LMS_DOMAIN", "lms.example.com")
		t.Setenv("LMS_DB_DRIVER", DriverPostgres)
		t.Setenv("LMS_SMTP_PORT", "2525")

		// act
		s := NewSettings()

		// assert
		assert.Equal(t, DriverPostgres, s.DBDriver)
		assert.Equal(t, 2525, s.SMTPPort)
		assert.Equal(t, "https://lms.example.com", s.BaseURL())
	})
	t.Run("success - invalid integer falls back to default", func(t *testing.T) {
		// arrange
		t.Setenv("LMS_SMTP_PORT", "not-a-port")

		// act
		s := NewSettings()

		// assert
		assert.Equal(t, 587, s.SMTPPort)
	})
}

func TestSettings_UploadURL(t *testing.T) {
	t.Run("success - url is built from base url", func(t *testing.T) {
		s := &AppSettings{Domain: "localhost", Port: ":5000"}
		assert.Equal(t, "http://localhost:5000/uploads/users/a.png", s.UploadURL("users/a.png"))
	})
	t.Run("success - empty name gives empty url", func(t *testing.T) {
		s := &AppSettings{Domain: "localhost", Port: ":5000"}
		assert.Equal(t, "", s.UploadURL(""))
	})
}

func TestSettings_SQLiteDbString(t *testing.T) {
	t.Run("success - readonly connection string", func(t *testing.T) {
		s := &AppSettings{SQLiteDatabase: "file:test.sqlite"}
		dsn := s.SQLiteDbString(true)
		assert.True(t, strings.HasPrefix(dsn, "file:test.sqlite?"))
		assert.Contains(t, dsn, "mode=ro")
		assert.NotContains(t, dsn, "_txlock")
	})
	t.Run("success - read-write connection string", func(t *testing.T) {
		s := &AppSettings{SQLiteDatabase: "file:test.sqlite"}
		dsn := s.SQLiteDbString(false)
		assert.Contains(t, dsn, "mode=rwc")
		assert.Contains(t, dsn, "_txlock=IMMEDIATE")
	})
}

func TestSettings_ReadDotenv(t *testing.T) {
	t.Run("success - variables are loaded", func(t *testing.T) {
		// arrange
		path := filepath.Join(t.TempDir(), ".env")
		err := os.WriteFile(path, []byte("LMS_TEST_DOTENV_VALUE=\"hello\"\n"), 0o644)
		assert.NoError(t, err)
		t.Cleanup(func() { os.Unsetenv("LMS_TEST_DOTENV_VALUE") })

		// act
		ReadDotenv(path)

		// assert
		assert.Equal(t, "hello", os.Getenv("LMS_TEST_DOTENV_VALUE"))
	})
	t.Run("success - missing file is ignored", func(t *testing.T) {
		ReadDotenv(filepath.Join(t.TempDir(), "missing.env"))
	})
}
