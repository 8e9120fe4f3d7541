package schemax

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/clinia/apix/errorx"
	"github.com/google/uuid"
	"github.com/ory/jsonschema/v3"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// JSONSchema validates values against a compiled JSON Schema document.
// Values are converted to their JSON representation first, so Go structs are
// validated through their json tags and come back out as plain maps.
type JSONSchema struct {
	id     string
	schema *jsonschema.Schema
}

var _ Schema = (*JSONSchema)(nil)

// NewJSONSchema compiles raw. The schema $id is used as resource name when present.
func NewJSONSchema(ctx context.Context, raw []byte) (*JSONSchema, error) {
	id := gjson.GetBytes(raw, "$id").String()
	if id == "" {
		id = fmt.Sprintf("%s.json", uuid.Must(uuid.NewRandom()).String())
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(id, bytes.NewReader(raw)); err != nil {
		return nil, errorx.InvalidArgumentErrorf("unable to load json schema %q: %s", id, err).WithOriginalError(err)
	}

	schema, err := compiler.Compile(ctx, id)
	if err != nil {
		return nil, errorx.InvalidArgumentErrorf("unable to compile json schema %q: %s", id, err).WithOriginalError(err)
	}

	return &JSONSchema{id: id, schema: schema}, nil
}

func (s *JSONSchema) ID() string {
	return s.id
}

func (s *JSONSchema) SafeParse(value any) Result {
	doc, err := toJSON(value)
	if err != nil {
		return Fail(Issue{Code: CodeInvalidInput, Message: err.Error()})
	}

	if err := s.schema.Validate(bytes.NewReader(doc)); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			return Fail(flattenValidationError(verr)...)
		}
		return Fail(Issue{Code: CodeInvalidInput, Message: err.Error()})
	}

	return OK(gjson.ParseBytes(doc).Value())
}

func toJSON(value any) ([]byte, error) {
	switch v := value.(type) {
	case json.RawMessage:
		if !gjson.ValidBytes(v) {
			return nil, errors.New("value is not valid json")
		}
		return v, nil
	default:
		doc, err := json.Marshal(v)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		return doc, nil
	}
}

// flattenValidationError keeps the leaves of the cause tree, they carry the precise location.
func flattenValidationError(verr *jsonschema.ValidationError) Issues {
	if len(verr.Causes) == 0 {
		return Issues{{
			Path:    strings.TrimPrefix(verr.InstancePtr, "#"),
			Code:    strings.TrimPrefix(verr.SchemaPtr, "#"),
			Message: verr.Message,
		}}
	}

	out := Issues{}
	for _, cause := range verr.Causes {
		out = append(out, flattenValidationError(cause)...)
	}
	return out
}
