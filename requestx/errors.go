package requestx

import (
	"fmt"

	"github.com/clinia/apix/errorx"
	"github.com/clinia/apix/schemax"
	"github.com/pkg/errors"
)

// ValidationKind discriminates the two validation failures.
type ValidationKind string

const (
	// KindRequestValidation means the query or the body was rejected. Nothing was sent.
	KindRequestValidation = ValidationKind("REQUEST_VALIDATION")
	// KindResponseValidation means the response was rejected. The request already happened.
	KindResponseValidation = ValidationKind("RESPONSE_VALIDATION")
)

func (k ValidationKind) String() string {
	return string(k)
}

// Name returns the error name associated with the kind.
func (k ValidationKind) Name() string {
	switch k {
	case KindRequestValidation:
		return "RequestValidationError"
	case KindResponseValidation:
		return "ResponseValidationError"
	default:
		return "ValidationError"
	}
}

// Item identifies the payload that failed validation.
type Item string

const (
	ItemQuery    = Item("query")
	ItemBody     = Item("body")
	ItemResponse = Item("response")
)

type ValidationMetadata struct {
	// RequestOptions are the finalized options at the time of the failure.
	RequestOptions Options
	// Request is the rejected query or body. Only set on request validation errors.
	Request any
	// Response is the raw rejected response. Only set on response validation errors.
	Response any
}

type ValidationError struct {
	Kind     ValidationKind
	Item     Item
	Message  string
	Issues   schemax.Issues
	Metadata ValidationMetadata

	cause *errorx.CliniaError
}

var _ error = (*ValidationError)(nil)

func newValidationError(kind ValidationKind, opts Options, issues schemax.Issues) *ValidationError {
	msg := issues.Error()
	if len(issues) == 0 {
		msg = "value rejected by schema"
	}

	errType := errorx.ErrorTypeInvalidArgument
	if kind == KindResponseValidation {
		errType = errorx.ErrorTypeInternal
	}

	return &ValidationError{
		Kind:     kind,
		Message:  msg,
		Issues:   issues,
		Metadata: ValidationMetadata{RequestOptions: opts},
		cause:    errorx.Errorf(errType, "%s: %s", kind.Name(), msg),
	}
}

func (e *ValidationError) Name() string {
	return e.Kind.Name()
}

func (e *ValidationError) Error() string {
	if e.Item == "" {
		return fmt.Sprintf("%s: %s", e.Name(), e.Message)
	}
	return fmt.Sprintf("%s: invalid %s: %s", e.Name(), e.Item, e.Message)
}

// Unwrap exposes the CliniaError counterpart: INVALID_ARGUMENT for requests, INTERNAL for responses.
func (e *ValidationError) Unwrap() error {
	return e.cause
}

// AsValidationError returns the ValidationError found in the error chain.
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if !errors.As(err, &verr) || verr == nil {
		return nil, false
	}
	return verr, true
}

func IsRequestValidationError(err error) bool {
	verr, ok := AsValidationError(err)
	return ok && verr.Kind == KindRequestValidation
}

func IsResponseValidationError(err error) bool {
	verr, ok := AsValidationError(err)
	return ok && verr.Kind == KindResponseValidation
}
