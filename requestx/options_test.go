package requestx

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOptions_Merge(t *testing.T) {
	base := Options{
		URL:     "https://api.clinia.dev/v1",
		Method:  http.MethodPost,
		Params:  map[string]any{"page": 1},
		Data:    map[string]any{"name": "clinia"},
		Headers: http.Header{"Authorization": {"Bearer a"}, "X-Trace": {"1"}},
		Timeout: time.Second,
	}

	t.Run("should keep the base when the partial is empty", func(t *testing.T) {
		assert.Equal(t, base, base.Merge(Options{}))
	})

	t.Run("should replace headers as a whole", func(t *testing.T) {
		out := base.Merge(Options{Headers: http.Header{"Authorization": {"Bearer b"}}})

		assert.Equal(t, http.Header{"Authorization": {"Bearer b"}}, out.Headers)
		assert.Equal(t, base.URL, out.URL)
		assert.Equal(t, base.Method, out.Method)
	})

	t.Run("should replace params and data without merging keys", func(t *testing.T) {
		out := base.Merge(Options{Params: map[string]any{"size": 10}, Data: "raw"})

		assert.Equal(t, map[string]any{"size": 10}, out.Params)
		assert.Equal(t, "raw", out.Data)
	})

	t.Run("should override scalar fields", func(t *testing.T) {
		out := base.Merge(Options{URL: "https://other", Method: http.MethodGet, Timeout: time.Minute})

		assert.Equal(t, "https://other", out.URL)
		assert.Equal(t, http.MethodGet, out.Method)
		assert.Equal(t, time.Minute, out.Timeout)
	})

	t.Run("should not clear fields with zero values", func(t *testing.T) {
		out := base.Merge(Options{Headers: nil, Timeout: 0, Params: nil})

		assert.Equal(t, base.Headers, out.Headers)
		assert.Equal(t, time.Second, out.Timeout)
		assert.Equal(t, base.Params, out.Params)
	})

	t.Run("should clear headers with an empty non-nil header", func(t *testing.T) {
		out := base.Merge(Options{Headers: http.Header{}})

		assert.Empty(t, out.Headers)
	})

	t.Run("should not mutate the receiver", func(t *testing.T) {
		_ = base.Merge(Options{URL: "https://other"})
		assert.Equal(t, "https://api.clinia.dev/v1", base.URL)
	})
}
