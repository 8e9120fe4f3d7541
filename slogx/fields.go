package slogx

import (
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
)

// NewLogFields converts otel attributes to slog attributes, keeping scalar kinds native.
func NewLogFields(kvs ...attribute.KeyValue) []slog.Attr {
	attrs := make([]slog.Attr, 0, len(kvs))
	for _, kv := range kvs {
		if !kv.Valid() {
			continue
		}
		attrs = append(attrs, slog.Attr{Key: string(kv.Key), Value: logValue(kv.Value)})
	}
	return attrs
}

func logValue(v attribute.Value) slog.Value {
	switch v.Type() {
	case attribute.BOOL:
		return slog.BoolValue(v.AsBool())
	case attribute.INT64:
		return slog.Int64Value(v.AsInt64())
	case attribute.FLOAT64:
		return slog.Float64Value(v.AsFloat64())
	case attribute.STRING:
		return slog.StringValue(v.AsString())
	default:
		return slog.AnyValue(v.AsInterface())
	}
}

// ErrorAttr keys err under "error". A nil error yields an empty attr, which handlers drop.
func ErrorAttr(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}
