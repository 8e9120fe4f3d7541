package requestx

import (
	"net/http"
	"time"
)

// Options is the request description accumulated by a Builder and handed to the Transport.
type Options struct {
	URL    string
	Method string
	// Params is the query payload, see httpx.EncodeQuery for the shapes the default transport accepts.
	Params any
	// Data is the body payload, JSON-encoded by the default transport.
	Data    any
	Headers http.Header
	Timeout time.Duration
}

// Merge returns a copy of o where every non-zero top-level field of partial wins.
//
// Zero fields of partial never override o: a partial cannot clear a value, so an empty URL,
// method, nil Params, Data or Headers, or a zero Timeout keeps what o already holds. An
// AsyncOptionsSetter that needs no headers must return an empty non-nil http.Header.
//
// The merge is shallow: Headers, Params and Data are replaced as a whole, never merged
// key by key. Passing Headers{"X-A": ...} drops every header set before. Use Builder.Header
// to add a single header.
func (o Options) Merge(partial Options) Options {
	out := o
	if partial.URL != "" {
		out.URL = partial.URL
	}
	if partial.Method != "" {
		out.Method = partial.Method
	}
	if partial.Params != nil {
		out.Params = partial.Params
	}
	if partial.Data != nil {
		out.Data = partial.Data
	}
	if partial.Headers != nil {
		out.Headers = partial.Headers
	}
	if partial.Timeout != 0 {
		out.Timeout = partial.Timeout
	}
	return out
}

func (o Options) methodOrDefault() string {
	if o.Method == "" {
		return http.MethodGet
	}
	return o.Method
}
