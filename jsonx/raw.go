package jsonx

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

// RawMessage compacts and key-sorts a json document so two payloads that differ only in
// formatting compare equal. It panics on invalid json and is meant for test fixtures.
func RawMessage[T ~string | ~[]byte](in T) json.RawMessage {
	raw := []byte(in)
	if !gjson.ValidBytes(raw) {
		panic("jsonx: invalid json: " + string(raw))
	}

	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		panic(err)
	}
	out, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return out
}
