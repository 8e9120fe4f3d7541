package requestx

import (
	"context"
	_ "embed"
	"net/http"
	"time"

	"github.com/clinia/apix/configx"
	"github.com/clinia/apix/otelx"
	"github.com/clinia/apix/slogx"
	"github.com/knadh/koanf"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

//go:embed config.schema.json
var ConfigSchema []byte

const EnvPrefix = "REQUESTX_"

type Config struct {
	Host    string            `json:"host"`
	Method  string            `json:"method"`
	Timeout time.Duration     `json:"timeout"`
	Headers map[string]string `json:"headers"`
	Log     LogConfig         `json:"log"`

	Telemetry otelx.Config `json:"telemetry"`
}

type LogConfig struct {
	LeakSensitiveValues bool     `json:"leak_sensitive_values"`
	RedactionText       string   `json:"redaction_text"`
	SensitiveHeaders    []string `json:"sensitive_headers"`
	IncludeQuery        bool     `json:"include_query"`
}

// Apply configures the process wide redaction settings of slogx.
func (c LogConfig) Apply() {
	slogx.ConfigureDefaultSensitiveHeaders()
	slogx.ConfigureSensitiveHeaders(c.SensitiveHeaders...)
	slogx.ConfigureRedactionText(c.RedactionText)
	slogx.ConfigureIncludeQuery(c.IncludeQuery)
	slogx.ConfigureLeakSensitiveValues(c.LeakSensitiveValues)
}

// RegisterFlags adds the flags LoadConfig reads when given configx.WithFlags(fs).
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("host", "", "Base url of the requests.")
	fs.String("method", "", "Default HTTP method.")
	fs.Duration("timeout", 0, "Per request timeout.")
	fs.Bool("log.leak_sensitive_values", false, "Log headers and query strings without redaction.")
	fs.String("log.redaction_text", slogx.DefaultRedactionText, "Text replacing redacted values.")
	fs.StringSlice("log.sensitive_headers", nil, "Additional headers to redact.")
	fs.Bool("log.include_query", false, "Log query strings.")
}

// LoadConfig reads the configuration from the sources given by mods, environment variables
// prefixed with REQUESTX_ included, and validates it.
func LoadConfig(ctx context.Context, mods ...configx.OptionModifier) (*Config, error) {
	p, err := configx.New(ctx, ConfigSchema, append([]configx.OptionModifier{configx.WithEnvPrefix(EnvPrefix)}, mods...)...)
	if err != nil {
		return nil, err
	}

	var c Config
	if err := p.UnmarshalWithConf("", &c, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, errors.WithStack(err)
	}
	return &c, nil
}

// NewTelemetry creates the providers described by the telemetry section. The caller shuts them down.
func (c *Config) NewTelemetry(ctx context.Context, opts ...otelx.Option) (*otelx.Providers, error) {
	if c.Telemetry.ServiceName == "" {
		c.Telemetry.ServiceName = "requestx"
	}
	return otelx.New(ctx, &c.Telemetry, opts...)
}

// NewFromConfig creates a Builder from cfg and applies its log settings.
func NewFromConfig(cfg *Config) *Builder {
	cfg.Log.Apply()

	b := Create(cfg.Host).Method(cfg.Method)
	if cfg.Timeout > 0 {
		b.Timeout(cfg.Timeout)
	}
	if len(cfg.Headers) > 0 {
		h := make(http.Header, len(cfg.Headers))
		for k, v := range cfg.Headers {
			h.Set(k, v)
		}
		b.Options(Options{Headers: h})
	}
	return b
}
