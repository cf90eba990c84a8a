// File: pkg/eweb/client.go
package eweb

import (
	"context"
	"crypto/tls"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultAddress is used when the operator leaves the server address empty.
	DefaultAddress = "localhost"
	DefaultScheme  = "http"

	loginPath      = "/enteliweb/api/auth/basiclogin"
	bacnetPath     = "/enteliweb/api/.bacnet"
	sitePath       = bacnetPath + "/{site}"
	controllerPath = sitePath + "/{controller}"
)

// Credentials identify the operator to the enteliWEB server. Every request carries them
// as HTTP Basic authentication; no session token is kept.
type Credentials struct {
	Address  string
	Username string
	Password string
}

// Host returns the server address, or DefaultAddress when none was given.
func (c Credentials) Host() string {
	if addr := strings.TrimSpace(c.Address); addr != "" {
		return addr
	}
	return DefaultAddress
}

// Options tune the transport. The zero value talks plain HTTP with no client timeout.
type Options struct {
	Scheme             string
	Timeout            time.Duration
	InsecureSkipVerify bool
	Log                *logrus.Entry
}

// Client talks to the enteliWEB JSON API of one server.
type Client struct {
	creds   Credentials
	baseURL string
	http    *resty.Client
	log     *logrus.Entry
}

// NewClient creates a client for the server named in creds.
func NewClient(creds Credentials, opts Options) *Client {
	scheme := opts.Scheme
	if scheme == "" {
		scheme = DefaultScheme
	}
	log := opts.Log
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	baseURL := fmt.Sprintf("%s://%s", scheme, creds.Host())

	rc := resty.New().
		SetBaseURL(baseURL).
		SetBasicAuth(creds.Username, creds.Password).
		SetHeader("Accept", "application/json").
		SetQueryParam("alt", "json").
		SetLogger(log)
	if opts.Timeout > 0 {
		rc.SetTimeout(opts.Timeout)
	}
	if opts.InsecureSkipVerify {
		rc.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	rc.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		log.WithFields(logrus.Fields{
			"method":  resp.Request.Method,
			"url":     resp.Request.URL,
			"status":  resp.StatusCode(),
			"elapsed": resp.Time(),
		}).Debug("gateway response")
		return nil
	})

	return &Client{
		creds:   creds,
		baseURL: baseURL,
		http:    rc,
		log:     log,
	}
}

// Credentials returns the credentials the client authenticates with.
func (c *Client) Credentials() Credentials {
	return c.creds
}

// BaseURL returns the scheme and host every request is sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) get(ctx context.Context, path string, params map[string]string) ([]byte, error) {
	return c.do(ctx, resty.MethodGet, path, params, nil)
}

func (c *Client) post(ctx context.Context, path string, params map[string]string, body interface{}) ([]byte, error) {
	return c.do(ctx, resty.MethodPost, path, params, body)
}

// do performs a single request. There are no retries: a failure is returned to the caller as
// a *TransportError when no response arrived, or an *APIError for an HTTP error status.
func (c *Client) do(ctx context.Context, method, path string, params map[string]string, body interface{}) ([]byte, error) {
	req := c.http.R().SetContext(ctx)
	if len(params) > 0 {
		req.SetPathParams(params)
	}
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, &TransportError{Method: method, URL: c.requestURL(resp, path, params), Err: err}
	}
	if resp.IsError() {
		return nil, newAPIError(resp.StatusCode(), resp.Body())
	}
	return resp.Body(), nil
}

// requestURL names the URL a failed request was aimed at.
func (c *Client) requestURL(resp *resty.Response, path string, params map[string]string) string {
	if resp != nil && resp.Request != nil && strings.Contains(resp.Request.URL, "://") {
		return resp.Request.URL
	}
	for k, v := range params {
		path = strings.ReplaceAll(path, "{"+k+"}", v)
	}
	return c.baseURL + path + "?alt=json"
}
