package views

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResetCodeEmail(t *testing.T) {
	t.Run("success - code and expiry are rendered", func(t *testing.T) {
		// act
		html, err := RenderString(
			context.Background(),
			ResetCodeEmail("alice", "123456", 10*time.Minute),
		)

		// assert
		assert.NoError(t, err)
		assert.Contains(t, html, "Hello alice,")
		assert.Contains(t, html, "123456")
		assert.Contains(t, html, "10 minutes")
	})
	t.Run("success - username is escaped", func(t *testing.T) {
		html, err := RenderString(
			context.Background(),
			ResetCodeEmail("<script>", "123456", 10*time.Minute),
		)
		assert.NoError(t, err)
		assert.NotContains(t, html, "<script>")
		assert.Contains(t, html, "&lt;script&gt;")
	})
}

func TestResetCodeText(t *testing.T) {
	text := ResetCodeText("alice", "654321", 5*time.Minute)
	assert.Contains(t, text, "654321")
	assert.Contains(t, text, "5 minutes")
}
