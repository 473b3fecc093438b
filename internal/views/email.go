package views

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/a-h/templ"
)

// ResetCodeEmail is the HTML body of the password reset mail.
func ResetCodeEmail(username, code string, ttl time.Duration) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(
			w,
			`<!doctype html><html><body style="font-family:sans-serif">`+
				`<p>Hello %s,</p>`+
				`<p>Your password reset code is:</p>`+
				`<p style="font-size:24px;font-weight:bold;letter-spacing:4px">%s</p>`+
				`<p>The code expires in %d minutes. If you did not request a reset, ignore this email.</p>`+
				`</body></html>`,
			templ.EscapeString(username),
			templ.EscapeString(code),
			int(ttl.Minutes()),
		)
		return err
	})
}

// ResetCodeText is the plain text alternative of ResetCodeEmail.
func ResetCodeText(username, code string, ttl time.Duration) string {
	return fmt.Sprintf(
		"Hello %s,\n\nYour password reset code is: %s\n\nThe code expires in %d minutes.\n",
		username, code, int(ttl.Minutes()),
	)
}

func RenderString(ctx context.Context, component templ.Component) (string, error) {
	buf := templ.GetBuffer()
	defer templ.ReleaseBuffer(buf)

	if err := component.Render(ctx, buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
