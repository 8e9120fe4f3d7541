package requestx

import (
	"context"
	"strings"
	"sync"

	"github.com/clinia/apix/httpx"
)

// Transport performs the network call described by opts and returns the response body.
// Errors it returns are handed back to the caller untouched.
type Transport interface {
	Do(ctx context.Context, opts Options) (any, error)
}

// TransportFunc adapts a function to a Transport.
type TransportFunc func(ctx context.Context, opts Options) (any, error)

func (f TransportFunc) Do(ctx context.Context, opts Options) (any, error) {
	return f(ctx, opts)
}

// HTTPTransport sends requests through an httpx.Client and returns the decoded body.
type HTTPTransport struct {
	client *httpx.Client
}

var _ Transport = (*HTTPTransport)(nil)

var defaultHTTPTransport = sync.OnceValue(func() *HTTPTransport {
	return NewHTTPTransport(nil)
})

// DefaultHTTPTransport returns the transport shared by every Builder made with Create,
// so request templates share one connection pool.
func DefaultHTTPTransport() *HTTPTransport {
	return defaultHTTPTransport()
}

func NewHTTPTransport(client *httpx.Client) *HTTPTransport {
	if client == nil {
		client = httpx.NewHTTPClient()
	}
	return &HTTPTransport{client: client}
}

// CloseIdleConnections releases the keep-alive connections held by the client.
func (t *HTTPTransport) CloseIdleConnections() {
	t.client.CloseIdleConnections()
}

func (t *HTTPTransport) Do(ctx context.Context, opts Options) (any, error) {
	query, err := httpx.EncodeQuery(opts.Params)
	if err != nil {
		return nil, err
	}

	res, err := t.client.MakeHTTPRequest(ctx, &httpx.Request{
		Method:          strings.ToUpper(opts.methodOrDefault()),
		URL:             opts.URL,
		Body:            opts.Data,
		Headers:         opts.Headers,
		QueryParameters: query,
		Timeout:         opts.Timeout,
	})
	if err != nil {
		return nil, err
	}

	return res.Data(), nil
}
