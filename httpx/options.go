package httpx

import (
	"net/http"
	"time"

	"github.com/clinia/apix/loggerx"
)

// Option is a named func that will help set custom options to the HTTP Client
type Option func(*Client)

// WithTimeout sets a customizable timeout to the http client
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

func WithSkipTLSVerification() Option {
	return func(c *Client) {
		c.transport.TLSClientConfig.InsecureSkipVerify = true
	}
}

// WithRoundTripper replaces the transport of the underlying http client, i.e. httptest.Server.Client().Transport.
func WithRoundTripper(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.httpClient.Transport = rt
	}
}

// WithStatusValidator decides which status codes are successful. Any other status code is returned as a *StatusError.
// A nil validator accepts every status code.
func WithStatusValidator(fn func(statusCode int) bool) Option {
	return func(c *Client) {
		c.validateStatus = fn
	}
}

// WithLogger enables debug logging of outgoing requests and received responses.
func WithLogger(l *loggerx.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}
