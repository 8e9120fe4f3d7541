package jsonx

import (
	"strings"

	"github.com/tidwall/gjson"
)

// Flatten turns a json document into a map of leaf values keyed by their sjson path.
// Arrays are kept as leaves.
//
//	Flatten([]byte(`{"a":{"b":1},"c":[1,2]}`)) // map[a.b:1 c:[1 2]]
func Flatten(raw []byte) map[string]interface{} {
	out := map[string]interface{}{}
	flatten(gjson.ParseBytes(raw), "", out)
	return out
}

func flatten(res gjson.Result, prefix string, out map[string]interface{}) {
	if !res.IsObject() {
		if prefix != "" {
			out[prefix] = res.Value()
		}
		return
	}

	res.ForEach(func(key, value gjson.Result) bool {
		k := escapeKey(key.String())
		if prefix != "" {
			k = prefix + "." + k
		}
		if value.IsObject() && len(value.Map()) > 0 {
			flatten(value, k, out)
		} else {
			out[k] = value.Value()
		}
		return true
	})
}

var keyEscaper = strings.NewReplacer(".", `\.`, "*", `\*`, "?", `\?`)

func escapeKey(key string) string {
	return keyEscaper.Replace(key)
}
