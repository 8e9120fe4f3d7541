package requestx

import (
	"context"
	"encoding/json"

	"github.com/clinia/apix/errorx"
)

// ExecAs runs Exec and converts the result to T. Results already of type T are returned as is,
// anything else goes through a JSON round-trip.
func ExecAs[T any](ctx context.Context, b *Builder) (T, error) {
	var zero T
	res, err := b.Exec(ctx)
	if err != nil {
		return zero, err
	}
	return convert[T](res)
}

func convert[T any](v any) (T, error) {
	if t, ok := v.(T); ok {
		return t, nil
	}

	var out T
	if v == nil {
		return out, nil
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return out, errorx.InternalErrorf("unable to convert %T to %T: %s", v, out, err).WithOriginalError(err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, errorx.InternalErrorf("unable to convert %T to %T: %s", v, out, err).WithOriginalError(err)
	}
	return out, nil
}
