package httpx

import (
	"bytes"
	"net/http"
	"net/url"
	"time"

	"github.com/tidwall/gjson"
)

const httpClientDefaultTimeout = 60 * time.Second

// Request is the input parameters that will need to be sent with an HTTP request
type Request struct {
	Method          string `validate:"required"`
	URL             string `validate:"required,url"`
	Body            any
	Headers         http.Header
	QueryParameters url.Values
	// Timeout bounds this request only, on top of the client timeout. Zero means no extra bound.
	Timeout time.Duration `validate:"gte=0"`
}

// Validate validates if the struct contains the required entities or not
func (r *Request) Validate() error {
	return validate.Struct(r)
}

// Response struct will contain the entities returned with the HTTP response
type Response struct {
	StatusCode int `validate:"required"`
	Body       []byte
	Headers    http.Header
	Duration   time.Duration
}

// Validate validates if the struct contains the required entities or not
func (r *Response) Validate() error {
	return validate.Struct(r)
}

// Data decodes the body: nil when empty, the decoded document when it is valid JSON,
// the raw text otherwise.
func (r *Response) Data() any {
	if len(bytes.TrimSpace(r.Body)) == 0 {
		return nil
	}

	if gjson.ValidBytes(r.Body) {
		return gjson.ParseBytes(r.Body).Value()
	}

	return string(r.Body)
}
