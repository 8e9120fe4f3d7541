package slogx

import (
	"context"
	"log/slog"
	"time"

	slogctx "github.com/veqryn/slog-context"
)

// NewRequestIDExtractor returns an extractor that appends the request id found in the
// record context under requestIDFieldKey.
func NewRequestIDExtractor(requestIDContextKey interface{}, requestIDFieldKey string) slogctx.AttrExtractor {
	return func(ctx context.Context, recordT time.Time, recordLvl slog.Level, recordMsg string) []slog.Attr {
		defer func() {
			// Nullify panic to prevent having this hook break a request
			_ = recover()
		}()

		if ctx == nil {
			return nil
		}
		requestID := ctx.Value(requestIDContextKey)
		if requestID == nil {
			return nil
		}
		return []slog.Attr{slog.Any(requestIDFieldKey, requestID)}
	}
}
