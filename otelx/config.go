package otelx

const (
	ProviderNone       = ""
	ProviderStdout     = "stdout"
	ProviderOTLP       = "otlp"
	ProviderPrometheus = "prometheus"

	ProtocolHTTP = "http"
	ProtocolGRPC = "grpc"
)

type Config struct {
	ServiceName string        `json:"service_name"`
	Tracing     TracingConfig `json:"tracing"`
	Metrics     MetricsConfig `json:"metrics"`
}

type TracingConfig struct {
	// Provider is one of "", "stdout" or "otlp". Tracing is disabled when empty.
	Provider string `json:"provider"`
	// SamplingRatio samples every trace when nil.
	SamplingRatio *float64     `json:"sampling_ratio"`
	Stdout        StdoutConfig `json:"stdout"`
	OTLP          OTLPConfig   `json:"otlp"`
}

type MetricsConfig struct {
	// Provider is one of "", "stdout", "otlp" or "prometheus". Metrics are disabled when empty.
	Provider string       `json:"provider"`
	Stdout   StdoutConfig `json:"stdout"`
	OTLP     OTLPConfig   `json:"otlp"`
}

type StdoutConfig struct {
	Pretty bool `json:"pretty"`
}

type OTLPConfig struct {
	// Protocol is "http" (default) or "grpc".
	Protocol  string `json:"protocol"`
	ServerURL string `json:"server_url"`
	Insecure  bool   `json:"insecure"`
}
