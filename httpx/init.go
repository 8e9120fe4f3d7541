package httpx

import (
	"crypto/tls"
	"net/http"

	"github.com/clinia/apix/loggerx"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type Client struct {
	httpClient     *http.Client
	transport      *http.Transport
	validateStatus func(statusCode int) bool
	logger         *loggerx.Logger
}

// GetDefaultHTTPClient returns an HTTP client with basic settings
func GetDefaultHTTPClient() *http.Client {
	return &http.Client{
		Timeout: httpClientDefaultTimeout,
	}
}

// NewHTTPClient returns a default HTTP client with default options.
// Its transport is a clone of http.DefaultTransport, so proxy settings and idle timeouts apply.
func NewHTTPClient() *Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	httpClient := GetDefaultHTTPClient()
	httpClient.Transport = transport

	return &Client{
		httpClient:     httpClient,
		transport:      transport,
		validateStatus: DefaultValidateStatus,
	}
}

// CloseIdleConnections closes the keep-alive connections of the underlying transport.
func (c *Client) CloseIdleConnections() {
	c.httpClient.CloseIdleConnections()
}

// NewClientWithOptions creates a configurable HTTP Client
func NewClientWithOptions(options ...Option) *Client {
	client := &Client{
		transport: &http.Transport{
			TLSClientConfig: &tls.Config{},
		},
		validateStatus: DefaultValidateStatus,
	}

	client.httpClient = &http.Client{}

	for _, opt := range options {
		opt(client)
	}

	if client.httpClient.Transport == nil {
		client.httpClient.Transport = client.transport
	}

	return client
}

// DefaultValidateStatus accepts every 2xx status code.
func DefaultValidateStatus(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}
