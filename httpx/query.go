package httpx

import (
	"bytes"
	"encoding/json"
	"net/url"
	"reflect"

	"github.com/clinia/apix/errorx"
	"github.com/google/go-querystring/query"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
)

// EncodeQuery turns query parameters into url.Values.
// Supported inputs are url.Values, maps keyed by strings (scalar or slice values) and structs,
// or pointers to those. Nil values yield nil. Structs carrying `url` tags are encoded by
// go-querystring, any other struct is keyed by its json names.
func EncodeQuery(params any) (url.Values, error) {
	switch p := params.(type) {
	case nil:
		return nil, nil
	case url.Values:
		return p, nil
	case map[string][]string:
		return url.Values(p), nil
	case map[string]string:
		out := make(url.Values, len(p))
		for k, v := range p {
			out.Set(k, v)
		}
		return out, nil
	}

	rv := reflect.Indirect(reflect.ValueOf(params))
	switch rv.Kind() {
	case reflect.Invalid:
		return nil, nil
	case reflect.Map:
		return encodeMap(rv)
	case reflect.Struct:
		if !hasURLTags(rv.Type()) {
			return encodeJSONStruct(rv.Interface())
		}
		out, err := query.Values(rv.Interface())
		if err != nil {
			return nil, errors.WithStack(err)
		}
		return out, nil
	default:
		return nil, errorx.InvalidArgumentErrorf("unsupported query parameters type %T", params)
	}
}

func encodeMap(rv reflect.Value) (url.Values, error) {
	if rv.Type().Key().Kind() != reflect.String {
		return nil, errorx.InvalidArgumentErrorf("query parameters map must be keyed by strings, got %s", rv.Type())
	}
	out := make(url.Values, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		values, err := toStrings(iter.Value().Interface())
		if err != nil {
			return nil, errorx.InvalidArgumentErrorf("query parameter %q: %s", iter.Key().String(), err)
		}
		for _, v := range values {
			out.Add(iter.Key().String(), v)
		}
	}
	return out, nil
}

// encodeJSONStruct keeps the keys a json based schema validated the struct with.
func encodeJSONStruct(v any) (url.Values, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	var m map[string]any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&m); err != nil {
		return nil, errorx.InvalidArgumentErrorf("unsupported query parameters type %T", v)
	}
	return encodeMap(reflect.ValueOf(m))
}

func hasURLTags(t reflect.Type) bool {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if _, ok := f.Tag.Lookup("url"); ok {
			return true
		}
		if f.Anonymous && f.Type.Kind() == reflect.Struct && hasURLTags(f.Type) {
			return true
		}
	}
	return false
}

func toStrings(v any) ([]string, error) {
	if v == nil {
		return nil, nil
	}

	rv := reflect.ValueOf(v)
	if (rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() != reflect.Uint8) || rv.Kind() == reflect.Array {
		out := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			s, err := toString(rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			out = append(out, s)
		}
		return out, nil
	}

	s, err := toString(v)
	if err != nil {
		return nil, err
	}
	return []string{s}, nil
}

func toString(v any) (string, error) {
	if n, ok := v.(json.Number); ok {
		return n.String(), nil
	}
	return cast.ToStringE(v)
}
