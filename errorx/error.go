package errorx

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

type CliniaError struct {
	Type    ErrorType     `json:"type"`
	Message string        `json:"message"`
	Details []CliniaError `json:"details,omitempty"`

	OriginalError error   `json:"-"` // Not returned to clients
	stack         Callers `json:"-"`
}

var _ error = (*CliniaError)(nil)

func newWithStack(t ErrorType, msg string) *CliniaError {
	return &CliniaError{
		Type:    t,
		Message: msg,
		stack:   callers(2),
	}
}

func (e *CliniaError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Type.String(), e.Message)
}

// Unwrap exposes the original error, when one was attached with WithOriginalError.
func (e *CliniaError) Unwrap() error {
	return e.OriginalError
}

// StackTrace returns the call stack captured when the error was created.
func (e *CliniaError) StackTrace() Callers {
	return e.stack
}

// WithDetails returns a copy of the error with the given errors appended to its details.
func (e *CliniaError) WithDetails(details ...*CliniaError) *CliniaError {
	ce := *e
	ce.Details = make([]CliniaError, 0, len(e.Details)+len(details))
	ce.Details = append(ce.Details, e.Details...)
	for _, d := range details {
		if d == nil {
			continue
		}
		ce.Details = append(ce.Details, *d)
	}
	return &ce
}

// WithOriginalError returns a copy of the error carrying err as its cause.
func (e *CliniaError) WithOriginalError(err error) *CliniaError {
	ce := *e
	ce.OriginalError = err
	return &ce
}

// Format prints the error with its stack trace when used with %+v.
func (e *CliniaError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			fmt.Fprintf(s, "%s\n%s", e.Error(), e.stack.String())
			return
		}
		fmt.Fprint(s, e.Error())
	case 'q':
		fmt.Fprintf(s, "%q", e.Error())
	default:
		fmt.Fprint(s, e.Error())
	}
}

// IsCliniaError returns the first CliniaError found in the error chain.
func IsCliniaError(e error) (*CliniaError, bool) {
	var mE *CliniaError
	if !errors.As(e, &mE) || mE == nil {
		return nil, false
	}

	if mE.Type == ErrorTypeUnspecified {
		return nil, false
	}

	return mE, true
}

func NewEnumOutOfRangeError(actual string, expectedOneOf []string, enumName string) *CliniaError {
	return newWithStack(
		ErrorTypeOutOfRange,
		fmt.Sprintf("%q is not a valid %s. Possible values: [%s]", actual, enumName, strings.Join(expectedOneOf, ", ")),
	)
}
