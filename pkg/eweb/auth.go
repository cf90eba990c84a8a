// File: pkg/eweb/auth.go
package eweb

import (
	"context"
	"net/http"
	"strings"

	"github.com/buger/jsonparser"
	"github.com/pkg/errors"
)

const loginOK = "OK"

// Authenticate checks the credentials against the login endpoint. The login succeeds only
// when the body's value is "OK"; anything else comes back as an *AuthError carrying the
// server's text. Transport failures are returned unchanged.
func (c *Client) Authenticate(ctx context.Context) error {
	c.log.WithField("user", c.creds.Username).Debug("authenticating")

	body, err := c.get(ctx, loginPath, nil)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return &AuthError{StatusCode: apiErr.StatusCode, Text: apiErr.Error()}
		}
		return err
	}

	if value, _ := jsonparser.GetString(body, "value"); value == loginOK {
		return nil
	}
	text := errorText(body)
	if text == "" {
		text = strings.TrimSpace(string(body))
	}
	return &AuthError{StatusCode: http.StatusOK, Text: text}
}
