package errorx

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError(t *testing.T) {
	t.Run("should return clinia error from stack", func(t *testing.T) {
		serr := errors.WithStack(FailedPreconditionErrorf("test"))

		cerr, ok := IsCliniaError(serr)
		require.True(t, ok)
		assert.Equal(t, ErrorTypeFailedPrecondition, cerr.Type)
	})

	t.Run("should return a clinia error without stack", func(t *testing.T) {
		_, ok := IsCliniaError(InternalErrorf("test"))
		assert.True(t, ok)
	})

	t.Run("should not match a plain error", func(t *testing.T) {
		_, ok := IsCliniaError(fmt.Errorf("plain"))
		assert.False(t, ok)
		assert.False(t, IsInternalError(fmt.Errorf("plain")))
	})

	t.Run("should return is not found from a wrapped chain", func(t *testing.T) {
		err := fmt.Errorf("lookup: %w", NotFoundErrorf("test"))
		assert.True(t, IsNotFoundError(err))
		assert.False(t, IsInvalidArgumentError(err))
	})

	t.Run("should format the message with its type", func(t *testing.T) {
		assert.Equal(t, "[INVALID_ARGUMENT] bad value 3", InvalidArgumentErrorf("bad value %d", 3).Error())
	})

	t.Run("should capture the caller in the stack trace", func(t *testing.T) {
		err := InternalErrorf("boom")
		frames := err.StackTrace().Frames()
		require.NotEmpty(t, frames)
		assert.Contains(t, frames[0].Function, "TestError")
		assert.Contains(t, fmt.Sprintf("%+v", err), "error_test.go")
	})

	t.Run("should append details to existing error", func(t *testing.T) {
		cerr := FailedPreconditionErrorf("test")
		cerr = cerr.WithDetails(NotFoundErrorf("testnotfound"))
		require.Len(t, cerr.Details, 1)
		assert.Equal(t, ErrorTypeNotFound, cerr.Details[0].Type)

		cerr = cerr.WithDetails(InvalidArgumentErrorf("testinvalid"), nil)
		require.Len(t, cerr.Details, 2)
		assert.Equal(t, "testinvalid", cerr.Details[1].Message)
	})

	t.Run("should unwrap to the original error", func(t *testing.T) {
		original := fmt.Errorf("root cause")
		err := InternalErrorf("wrapped").WithOriginalError(original)
		assert.ErrorIs(t, err, original)
	})
}

func TestErrorType(t *testing.T) {
	t.Run("should parse known error types", func(t *testing.T) {
		et, err := ParseErrorType("NOT_FOUND")
		require.NoError(t, err)
		assert.Equal(t, ErrorTypeNotFound, et)
	})

	t.Run("should reject unknown error types", func(t *testing.T) {
		_, err := ParseErrorType("NOPE")
		require.Error(t, err)
		assert.True(t, IsType(err, ErrorTypeOutOfRange))
	})

	t.Run("should map http status codes", func(t *testing.T) {
		for code, expected := range map[int]ErrorType{
			http.StatusBadRequest:          ErrorTypeInvalidArgument,
			http.StatusUnauthorized:        ErrorTypeUnauthenticated,
			http.StatusForbidden:           ErrorTypePermissionDenied,
			http.StatusNotFound:            ErrorTypeNotFound,
			http.StatusConflict:            ErrorTypeAlreadyExists,
			http.StatusServiceUnavailable:  ErrorTypeUnavailable,
			http.StatusInternalServerError: ErrorTypeInternal,
			http.StatusTeapot:              ErrorTypeInternal,
		} {
			assert.Equal(t, expected, ErrorTypeFromHTTPStatus(code), "status %d", code)
		}
	})
}
