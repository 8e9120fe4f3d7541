package httpx

import (
	"fmt"
	"net/http"

	"github.com/clinia/apix/errorx"
	"github.com/pkg/errors"
)

// StatusError is returned by MakeHTTPRequest when the status validator rejects the response.
type StatusError struct {
	StatusCode int
	Body       []byte
	Headers    http.Header
	Method     string
	URL        string
}

var _ error = (*StatusError)(nil)

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// Unwrap maps the status code to its CliniaError counterpart so errorx predicates apply.
func (e *StatusError) Unwrap() error {
	return errorx.Errorf(errorx.ErrorTypeFromHTTPStatus(e.StatusCode), "upstream responded with status %d", e.StatusCode)
}

// IsStatusError returns the StatusError found in the error chain.
func IsStatusError(err error) (*StatusError, bool) {
	var se *StatusError
	if !errors.As(err, &se) {
		return nil, false
	}
	return se, true
}
