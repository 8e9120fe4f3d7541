// Package schemax defines the validation capability consumed by requestx and ships
// implementations backed by JSON Schema and by struct tags.
//
// A Schema never fails loudly: SafeParse either returns the normalized value or the
// list of issues that made the value invalid.
package schemax

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Schema attempts to parse a value, returning its normalized form or the issues found.
// Implementations must not panic.
type Schema interface {
	SafeParse(value any) Result
}

type Result struct {
	Success bool
	Data    any
	Issues  Issues
}

func OK(data any) Result {
	return Result{Success: true, Data: data}
}

func Fail(issues ...Issue) Result {
	return Result{Success: false, Issues: issues}
}

const (
	CodeInvalidType  = "invalid_type"
	CodeInvalidInput = "invalid_input"
	CodePanic        = "panic"
)

// Issue is a single validation failure. Path is a JSON pointer into the validated value,
// empty for the value itself.
type Issue struct {
	Path    string `json:"path"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	path := i.Path
	if path == "" {
		path = "/"
	}
	if i.Code == "" {
		return fmt.Sprintf("%s: %s", path, i.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", path, i.Message, i.Code)
}

type Issues []Issue

var _ error = Issues(nil)

func (is Issues) Error() string {
	return strings.Join(is.Messages(), "; ")
}

func (is Issues) Messages() []string {
	return lo.Map(is, func(i Issue, _ int) string {
		return i.String()
	})
}

// Func adapts a plain function to a Schema. A panic inside fn is reported as an issue.
type Func func(value any) (any, Issues)

var _ Schema = Func(nil)

func (f Func) SafeParse(value any) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Fail(Issue{Code: CodePanic, Message: fmt.Sprintf("%v", r)})
		}
	}()

	data, issues := f(value)
	if len(issues) > 0 {
		return Fail(issues...)
	}
	return OK(data)
}
