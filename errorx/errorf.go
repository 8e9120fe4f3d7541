package errorx

import "fmt"

// Errorf creates a CliniaError of the given type with a formatted message.
func Errorf(t ErrorType, format string, args ...any) *CliniaError {
	return newWithStack(t, fmt.Sprintf(format, args...))
}

// InternalErrorf creates a CliniaError with type ErrorTypeInternal and a formatted message
func InternalErrorf(format string, args ...any) *CliniaError {
	return newWithStack(ErrorTypeInternal, fmt.Sprintf(format, args...))
}

// InvalidArgumentErrorf creates a CliniaError with type ErrorTypeInvalidArgument and a formatted message
func InvalidArgumentErrorf(format string, args ...any) *CliniaError {
	return newWithStack(ErrorTypeInvalidArgument, fmt.Sprintf(format, args...))
}

// NotFoundErrorf creates a CliniaError with type ErrorTypeNotFound and a formatted message
func NotFoundErrorf(format string, args ...any) *CliniaError {
	return newWithStack(ErrorTypeNotFound, fmt.Sprintf(format, args...))
}

// FailedPreconditionErrorf creates a CliniaError with type ErrorTypeFailedPrecondition and a formatted message
func FailedPreconditionErrorf(format string, args ...any) *CliniaError {
	return newWithStack(ErrorTypeFailedPrecondition, fmt.Sprintf(format, args...))
}

// IsType reports whether the error chain holds a CliniaError of type t.
func IsType(e error, t ErrorType) bool {
	mE, ok := IsCliniaError(e)
	if !ok {
		return false
	}

	return mE.Type == t
}

func IsInternalError(e error) bool {
	return IsType(e, ErrorTypeInternal)
}

func IsInvalidArgumentError(e error) bool {
	return IsType(e, ErrorTypeInvalidArgument)
}

func IsNotFoundError(e error) bool {
	return IsType(e, ErrorTypeNotFound)
}

func IsFailedPreconditionError(e error) bool {
	return IsType(e, ErrorTypeFailedPrecondition)
}

func IsUnauthenticatedError(e error) bool {
	return IsType(e, ErrorTypeUnauthenticated)
}

func IsUnavailableError(e error) bool {
	return IsType(e, ErrorTypeUnavailable)
}
