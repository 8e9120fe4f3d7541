package schemax

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// StructSchema decodes values into T with JSON semantics and checks the `validate` struct tags.
// Unknown keys are dropped and the decoded T is returned as normalized value.
type StructSchema[T any] struct{}

var _ Schema = StructSchema[struct{}]{}

func Struct[T any]() StructSchema[T] {
	return StructSchema[T]{}
}

func (StructSchema[T]) SafeParse(value any) Result {
	out, issue := decode[T](value)
	if issue != nil {
		return Fail(*issue)
	}

	if reflect.Indirect(reflect.ValueOf(out)).Kind() != reflect.Struct {
		return OK(out)
	}

	if err := validate.Struct(out); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return Fail(fieldIssues(verrs)...)
		}
		return Fail(Issue{Code: CodeInvalidInput, Message: err.Error()})
	}

	return OK(out)
}

func decode[T any](value any) (T, *Issue) {
	switch v := value.(type) {
	case T:
		return v, nil
	case *T:
		if v != nil {
			return *v, nil
		}
	}

	var out T
	raw, err := json.Marshal(value)
	if err != nil {
		return out, &Issue{Code: CodeInvalidInput, Message: err.Error()}
	}

	if err := json.Unmarshal(raw, &out); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return out, &Issue{
				Path:    dottedToPointer(typeErr.Field),
				Code:    CodeInvalidType,
				Message: fmt.Sprintf("expected %s, received %s", typeErr.Type, typeErr.Value),
			}
		}
		return out, &Issue{Code: CodeInvalidInput, Message: err.Error()}
	}

	return out, nil
}

func fieldIssues(verrs validator.ValidationErrors) Issues {
	out := make(Issues, 0, len(verrs))
	for _, fe := range verrs {
		ns := fe.Namespace()
		// Drop the root struct name.
		if i := strings.Index(ns, "."); i >= 0 {
			ns = ns[i+1:]
		}
		msg := fmt.Sprintf("failed on the '%s' rule", fe.Tag())
		if fe.Param() != "" {
			msg = fmt.Sprintf("failed on the '%s=%s' rule", fe.Tag(), fe.Param())
		}
		out = append(out, Issue{
			Path:    dottedToPointer(ns),
			Code:    fe.Tag(),
			Message: msg,
		})
	}
	return out
}

func dottedToPointer(path string) string {
	if path == "" {
		return ""
	}
	return "/" + strings.ReplaceAll(path, ".", "/")
}
