// Package assertx complements testify with go-cmp based comparisons and JSON equality helpers.
package assertx

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/sjson"
)

type tHelper interface {
	Helper()
}

// Equal is assert.Equal backed by cmp, so that options like cmpopts.IgnoreFields apply.
func Equal(t assert.TestingT, expected, actual interface{}, opts ...cmp.Option) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	if !cmp.Equal(expected, actual, opts...) {
		return assert.Fail(t, fmt.Sprintf("Not equal (-expected +actual):\n%s", cmp.Diff(expected, actual, opts...)))
	}
	return true
}

// ElementsMatch asserts both slices hold the same elements, in any order, comparing with cmp.
func ElementsMatch(t assert.TestingT, listA, listB interface{}, opts ...cmp.Option) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}

	a, b := reflect.ValueOf(listA), reflect.ValueOf(listB)
	if a.Kind() != reflect.Slice || b.Kind() != reflect.Slice {
		return assert.Fail(t, fmt.Sprintf("expected two slices, got %T and %T", listA, listB))
	}

	visited := make([]bool, b.Len())
	var extraA []interface{}
	for i := 0; i < a.Len(); i++ {
		found := false
		for j := 0; j < b.Len(); j++ {
			if !visited[j] && cmp.Equal(a.Index(i).Interface(), b.Index(j).Interface(), opts...) {
				visited[j] = true
				found = true
				break
			}
		}
		if !found {
			extraA = append(extraA, a.Index(i).Interface())
		}
	}

	var extraB []interface{}
	for j, v := range visited {
		if !v {
			extraB = append(extraB, b.Index(j).Interface())
		}
	}

	if len(extraA) == 0 && len(extraB) == 0 {
		return true
	}
	return assert.Fail(t, fmt.Sprintf("elements differ\nonly in A: %+v\nonly in B: %+v", extraA, extraB))
}

func PrettifyJSONPayload(t require.TestingT, payload interface{}) string {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	o, err := json.MarshalIndent(payload, "", "  ")
	require.NoError(t, err)
	return string(o)
}

// EqualAsJSON compares the JSON encodings of expected and actual.
func EqualAsJSON(t require.TestingT, expected, actual interface{}, args ...interface{}) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	return EqualAsJSONExcept(t, expected, actual, nil, args...)
}

// EqualAsJSONExcept is EqualAsJSON ignoring the given sjson paths.
func EqualAsJSONExcept(t require.TestingT, expected, actual interface{}, except []string, args ...interface{}) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	if len(args) == 0 {
		args = []interface{}{PrettifyJSONPayload(t, actual)}
	}

	var eb, ab bytes.Buffer
	require.NoError(t, json.NewEncoder(&eb).Encode(expected), args...)
	require.NoError(t, json.NewEncoder(&ab).Encode(actual), args...)

	var err error
	ebs, abs := eb.String(), ab.String()
	for _, k := range except {
		ebs, err = sjson.Delete(ebs, k)
		require.NoError(t, err)

		abs, err = sjson.Delete(abs, k)
		require.NoError(t, err)
	}

	return assert.JSONEq(t, strings.TrimSpace(ebs), strings.TrimSpace(abs), args...)
}
