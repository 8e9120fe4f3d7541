package errorx

import "net/http"

type ErrorType string

// Errors status code are defined here:
// https://chromium.googlesource.com/external/github.com/grpc/grpc/+/refs/tags/v1.21.4-pre1/doc/statuscodes.md

const (
	// The Invalid type should not be used, only useful to assert whether or not an error is a CliniaError during cast
	ErrorTypeUnspecified        = ErrorType("")
	ErrorTypeAlreadyExists      = ErrorType("ALREADY_EXISTS")
	ErrorTypeFailedPrecondition = ErrorType("FAILED_PRECONDITION")
	ErrorTypeInternal           = ErrorType("INTERNAL")
	ErrorTypeInvalidArgument    = ErrorType("INVALID_ARGUMENT")
	ErrorTypeNotFound           = ErrorType("NOT_FOUND")
	ErrorTypeOutOfRange         = ErrorType("OUT_OF_RANGE")
	ErrorTypeUnimplemented      = ErrorType("UNIMPLEMENTED")
	ErrorTypeUnauthenticated    = ErrorType("UNAUTHENTICATED")
	ErrorTypePermissionDenied   = ErrorType("PERMISSION_DENIED")
	ErrorTypeContentTooLarge    = ErrorType("CONTENT_TOO_LARGE")
	ErrorTypeUnavailable        = ErrorType("UNAVAILABLE")
)

var allErrorTypes = []string{
	string(ErrorTypeAlreadyExists),
	string(ErrorTypeFailedPrecondition),
	string(ErrorTypeInternal),
	string(ErrorTypeInvalidArgument),
	string(ErrorTypeNotFound),
	string(ErrorTypeOutOfRange),
	string(ErrorTypeUnimplemented),
	string(ErrorTypeUnauthenticated),
	string(ErrorTypePermissionDenied),
	string(ErrorTypeContentTooLarge),
	string(ErrorTypeUnavailable),
}

func ParseErrorType(s string) (ErrorType, error) {
	e := ErrorType(s)
	if err := e.Validate(); err != nil {
		return ErrorTypeUnspecified, err
	}

	return e, nil
}

func (e ErrorType) String() string {
	return string(e)
}

func (e ErrorType) Validate() error {
	switch e {
	case ErrorTypeAlreadyExists,
		ErrorTypeFailedPrecondition,
		ErrorTypeInternal,
		ErrorTypeInvalidArgument,
		ErrorTypeNotFound,
		ErrorTypeOutOfRange,
		ErrorTypeUnimplemented,
		ErrorTypeUnauthenticated,
		ErrorTypePermissionDenied,
		ErrorTypeContentTooLarge,
		ErrorTypeUnavailable:
		return nil
	default:
		return NewEnumOutOfRangeError(string(e), allErrorTypes, "error type")
	}
}

// ErrorTypeFromHTTPStatus maps an HTTP status code to the closest error type.
// Codes without a dedicated mapping fall back to ErrorTypeInternal.
func ErrorTypeFromHTTPStatus(code int) ErrorType {
	switch code {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return ErrorTypeInvalidArgument
	case http.StatusUnauthorized:
		return ErrorTypeUnauthenticated
	case http.StatusForbidden:
		return ErrorTypePermissionDenied
	case http.StatusNotFound:
		return ErrorTypeNotFound
	case http.StatusConflict:
		return ErrorTypeAlreadyExists
	case http.StatusPreconditionFailed:
		return ErrorTypeFailedPrecondition
	case http.StatusRequestEntityTooLarge:
		return ErrorTypeContentTooLarge
	case http.StatusRequestedRangeNotSatisfiable:
		return ErrorTypeOutOfRange
	case http.StatusNotImplemented:
		return ErrorTypeUnimplemented
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return ErrorTypeUnavailable
	default:
		return ErrorTypeInternal
	}
}
