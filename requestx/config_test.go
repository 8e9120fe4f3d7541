package requestx

import (
	"bytes"
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/clinia/apix/configx"
	"github.com/clinia/apix/errorx"
	loggerxtest "github.com/clinia/apix/loggerx/test"
	"github.com/clinia/apix/otelx"
	"github.com/clinia/apix/slogx"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	ctx := context.Background()

	t.Run("should load a config file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "requestx.json")
		require.NoError(t, os.WriteFile(path, []byte(`{
			"host": "https://api.clinia.dev",
			"method": "POST",
			"timeout": "1500ms",
			"headers": {"X-Client": "apix"},
			"log": {"include_query": true, "sensitive_headers": ["X-Api-Key"]}
		}`), 0o600))

		cfg, err := LoadConfig(ctx, configx.DisableEnvLoading(), configx.WithConfigFiles(path))
		require.NoError(t, err)

		assert.Equal(t, &Config{
			Host:    "https://api.clinia.dev",
			Method:  "POST",
			Timeout: 1500 * time.Millisecond,
			Headers: map[string]string{"X-Client": "apix"},
			Log: LogConfig{
				IncludeQuery:     true,
				SensitiveHeaders: []string{"X-Api-Key"},
			},
		}, cfg)
	})

	t.Run("should let flags override the environment", func(t *testing.T) {
		t.Setenv("REQUESTX_HOST", "https://env.clinia.dev")
		t.Setenv("REQUESTX_TIMEOUT", "2s")

		fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
		RegisterFlags(fs)
		require.NoError(t, fs.Parse([]string{"--host", "https://flag.clinia.dev"}))

		cfg, err := LoadConfig(ctx, configx.WithFlags(fs))
		require.NoError(t, err)

		assert.Equal(t, "https://flag.clinia.dev", cfg.Host)
		assert.Equal(t, 2*time.Second, cfg.Timeout)
		assert.Equal(t, slogx.DefaultRedactionText, cfg.Log.RedactionText)
	})

	t.Run("should reject a config without host", func(t *testing.T) {
		var buf bytes.Buffer
		_, err := LoadConfig(ctx,
			configx.DisableEnvLoading(),
			configx.WithValue("method", "GET"),
			configx.WithStandardValidationReporter(&buf),
		)
		require.Error(t, err)
		assert.True(t, errorx.IsInvalidArgumentError(err))
		assert.Contains(t, buf.String(), "host")
	})

	t.Run("should reject unknown keys", func(t *testing.T) {
		_, err := LoadConfig(ctx, configx.DisableEnvLoading(), configx.WithValues(map[string]interface{}{
			"host":  "https://api.clinia.dev",
			"hosts": "typo",
		}))
		assert.True(t, errorx.IsInvalidArgumentError(err))
	})
}

func TestConfig_NewTelemetry(t *testing.T) {
	t.Run("should export the exec span through the configured provider", func(t *testing.T) {
		ctx := context.Background()
		cfg, err := LoadConfig(ctx, configx.DisableEnvLoading(), configx.WithConfigData([]byte(`{
			"host": "https://api.clinia.dev",
			"telemetry": {"tracing": {"provider": "stdout"}}
		}`)))
		require.NoError(t, err)

		var buf bytes.Buffer
		providers, err := cfg.NewTelemetry(ctx, otelx.WithWriter(&buf), otelx.WithLogger(loggerxtest.NewTestLogger(t)))
		require.NoError(t, err)

		_, err = NewFromConfig(cfg).
			Telemetry(providers).
			Logger(loggerxtest.NewTestLogger(t)).
			Transport(&recordingTransport{}).
			Exec(ctx)
		require.NoError(t, err)

		require.NoError(t, providers.Shutdown(ctx))
		assert.Contains(t, buf.String(), "requestx.Builder.Exec")
		assert.Contains(t, buf.String(), `"requestx"`)
	})
}

func TestNewFromConfig(t *testing.T) {
	t.Run("should create a builder from the config", func(t *testing.T) {
		b := NewFromConfig(&Config{
			Host:    "https://api.clinia.dev",
			Method:  http.MethodPatch,
			Timeout: time.Second,
			Headers: map[string]string{"x-client": "apix"},
		})

		opts := b.RequestOptions()
		assert.Equal(t, "https://api.clinia.dev", opts.URL)
		assert.Equal(t, http.MethodPatch, opts.Method)
		assert.Equal(t, time.Second, opts.Timeout)
		assert.Equal(t, "apix", opts.Headers.Get("X-Client"))
	})

	t.Run("should apply the log settings", func(t *testing.T) {
		t.Cleanup(func() {
			slogx.ConfigureIncludeQuery(false)
			slogx.ConfigureRedactionText("")
		})

		NewFromConfig(&Config{Host: "h", Log: LogConfig{IncludeQuery: true, RedactionText: "***"}})

		assert.True(t, slogx.IncludeQuery())
		assert.Equal(t, "***", slogx.RedactionText())
	})
}
