package tracex

import (
	"context"
	"errors"
	"testing"

	loggerxtest "github.com/clinia/apix/loggerx/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecoverWithStackTrace(t *testing.T) {
	ctx := context.Background()

	t.Run("should recover from panic and log stack trace", func(t *testing.T) {
		l, buf := loggerxtest.NewTestLoggerWithConcurrentBuffer(t)
		assertCount := 0
		t.Cleanup(func() {
			require.GreaterOrEqual(t, assertCount, 3)
		})
		defer func() {
			assert.Contains(t, buf.String(), "panic at the disco")
			assertCount++
			assert.Contains(t, buf.String(), "test panic")
			assertCount++
			assert.Contains(t, buf.String(), "tracex/recover.go")
			assertCount++
		}()

		defer RecoverWithStackTrace(ctx, l, "panic at the disco")

		panic("test panic")
	})

	t.Run("should recover from panic with error panic", func(t *testing.T) {
		l, buf := loggerxtest.NewTestLoggerWithConcurrentBuffer(t)
		assertCount := 0
		t.Cleanup(func() {
			require.GreaterOrEqual(t, assertCount, 1)
		})
		defer func() {
			assert.Contains(t, buf.String(), "test panic")
			assertCount++
		}()

		defer RecoverWithStackTrace(ctx, l, "")

		panic(errors.New("test panic"))
	})

	t.Run("should recover without logger", func(t *testing.T) {
		assert.NotPanics(t, func() {
			defer RecoverWithStackTrace(ctx, nil, "")
			panic("test panic")
		})
	})

	t.Run("should not log without panic", func(t *testing.T) {
		l, buf := loggerxtest.NewTestLoggerWithConcurrentBuffer(t)
		func() {
			defer RecoverWithStackTrace(ctx, l, "nothing")
		}()
		assert.Empty(t, buf.String())
	})
}

func TestRecoverToError(t *testing.T) {
	ctx := context.Background()

	t.Run("should hand the recovered value to the callback", func(t *testing.T) {
		l, buf := loggerxtest.NewTestLoggerWithConcurrentBuffer(t)

		run := func() (err error) {
			defer RecoverToError(ctx, l, "callback panicked", func(r any) {
				err = errors.New(PanicMessage(r))
			})
			panic("boom")
		}

		err := run()
		require.EqualError(t, err, "boom")
		assert.Contains(t, buf.String(), "callback panicked")
		assert.Contains(t, buf.String(), "exception.stacktrace")
	})

	t.Run("should leave the return values alone without panic", func(t *testing.T) {
		run := func() (err error) {
			defer RecoverToError(ctx, nil, "", func(any) {
				err = errors.New("unexpected")
			})
			return nil
		}

		assert.NoError(t, run())
	})
}

func TestPanicMessage(t *testing.T) {
	for _, tc := range []struct {
		name      string
		recovered any
		expected  string
	}{
		{name: "string", recovered: "a", expected: "a"},
		{name: "error", recovered: errors.New("b"), expected: "b"},
		{name: "other", recovered: 42, expected: "unknown panic"},
	} {
		t.Run("should render "+tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, PanicMessage(tc.recovered))
		})
	}

	t.Run("should return no attributes for nil", func(t *testing.T) {
		assert.Empty(t, StackTraceAttrs(nil))
	})
}
