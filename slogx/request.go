package slogx

import (
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
)

const DefaultRedactionText = "**[REDACTED]**"

var (
	mu                  sync.RWMutex
	sensitiveHeadersMap = map[string]bool{"authorization": true, "cookie": true, "set-cookie": true}
	redactionText       = DefaultRedactionText
	includeQuery        = false
	leakSensitive       = false
)

// ConfigureSensitiveHeaders sets the headers that should be redacted in the logs.
// Note that this will be applied globally to all loggers using slogx.
func ConfigureSensitiveHeaders(sensitiveHeaders ...string) {
	mu.Lock()
	defer mu.Unlock()
	for _, header := range sensitiveHeaders {
		sensitiveHeadersMap[strings.ToLower(header)] = true
	}
}

// ResetSensitiveHeaders clears every sensitive header, defaults included.
func ResetSensitiveHeaders() {
	mu.Lock()
	defer mu.Unlock()
	sensitiveHeadersMap = map[string]bool{}
}

// ConfigureRedactionText sets the text that will be used to redact sensitive headers in the logs.
// Default is "**[REDACTED]**"
// Note that this will be applied globally to all loggers using slogx.
func ConfigureRedactionText(text string) {
	mu.Lock()
	defer mu.Unlock()
	if text == "" {
		text = DefaultRedactionText
	}
	redactionText = text
}

// ConfigureIncludeQuery sets whether to include query parameters in the logs. Defaults to false
func ConfigureIncludeQuery(include bool) {
	mu.Lock()
	defer mu.Unlock()
	includeQuery = include
}

// ConfigureLeakSensitiveValues disables redaction entirely. Only meant for local debugging.
func ConfigureLeakSensitiveValues(leak bool) {
	mu.Lock()
	defer mu.Unlock()
	leakSensitive = leak
}

// ConfigureDefaultSensitiveHeaders configures a default set of sensitive headers to be redacted in the logs.
// They are redacted out of the box, this restores them after ResetSensitiveHeaders.
func ConfigureDefaultSensitiveHeaders() {
	ConfigureSensitiveHeaders("Authorization", "Cookie", "Set-Cookie")
}

// RedactionText returns the text currently used in place of redacted values.
func RedactionText() string {
	mu.RLock()
	defer mu.RUnlock()
	return redactionText
}

// IncludeQuery reports whether query strings may be logged verbatim.
func IncludeQuery() bool {
	mu.RLock()
	defer mu.RUnlock()
	return includeQuery || leakSensitive
}

func RedactHeaders(headers http.Header) slog.Attr {
	mu.RLock()
	defer mu.RUnlock()

	headerMap := make(map[string][]string, len(headers))
	for key, values := range headers {
		if sensitiveHeadersMap[strings.ToLower(key)] && !leakSensitive {
			headerMap[key] = []string{redactionText}
		} else {
			headerMap[key] = values
		}
	}

	return slog.Any("headers", headerMap)
}

func WithRequest(sl *slog.Logger, r *http.Request) *slog.Logger {
	attrs := []slog.Attr{
		RedactHeaders(r.Header),
		slog.String("proto", r.Proto),
		slog.String("method", r.Method),
		slog.String("path", r.URL.EscapedPath()),
		slog.String("host", r.URL.Host),
	}

	if len(r.URL.RawQuery) > 0 {
		if IncludeQuery() {
			attrs = append(attrs, slog.String("query", r.URL.RawQuery))
		} else {
			attrs = append(attrs, slog.String("query", RedactionText()))
		}
	}

	if ua := r.UserAgent(); len(ua) > 0 {
		attrs = append(attrs, slog.String("user-agent", ua))
	}

	if r.RemoteAddr != "" {
		remoteIP, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			remoteIP = r.RemoteAddr
		}
		attrs = append(attrs, slog.String("remote", remoteIP))
	}

	scheme := r.URL.Scheme
	if scheme == "" {
		scheme = "https"
		if r.TLS == nil {
			scheme = "http"
		}
	}
	attrs = append(attrs, slog.String("scheme", scheme))

	return sl.With(slog.GroupAttrs("http_request", attrs...))
}
