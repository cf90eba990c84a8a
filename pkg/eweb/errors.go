// File: pkg/eweb/errors.go
package eweb

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/buger/jsonparser"
)

// TransportError is returned when a request got no response at all.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("no response received from %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// APIError is an error-shaped response from the server. Text holds the server's errorText.
type APIError struct {
	StatusCode int
	Text       string
	Body       string
}

func (e *APIError) Error() string {
	if e.Text != "" {
		return e.Text
	}
	return fmt.Sprintf("server returned %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

func newAPIError(status int, body []byte) *APIError {
	return &APIError{
		StatusCode: status,
		Text:       errorText(body),
		Body:       string(body),
	}
}

// AuthError reports a login the server did not accept. Text is what the server said, verbatim.
type AuthError struct {
	StatusCode int
	Text       string
}

func (e *AuthError) Error() string {
	if e.Text != "" {
		return e.Text
	}
	return "login rejected by server"
}

// errorText extracts the errorText field enteliWEB puts in failure bodies.
func errorText(body []byte) string {
	text, err := jsonparser.GetString(body, "errorText")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}
