package schemax

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFunc(t *testing.T) {
	t.Run("should return the produced value", func(t *testing.T) {
		res := Func(func(value any) (any, Issues) { return value.(int) * 2, nil }).SafeParse(2)

		assert.True(t, res.Success)
		assert.Equal(t, 4, res.Data)
		assert.Empty(t, res.Issues)
	})

	t.Run("should fail with the returned issues", func(t *testing.T) {
		res := Func(func(any) (any, Issues) {
			return "ignored", Issues{{Path: "/a", Code: CodeInvalidType, Message: "expected string"}}
		}).SafeParse(nil)

		assert.False(t, res.Success)
		assert.Nil(t, res.Data)
		assert.Equal(t, Issues{{Path: "/a", Code: CodeInvalidType, Message: "expected string"}}, res.Issues)
	})

	t.Run("should turn a panic into an issue", func(t *testing.T) {
		res := Func(func(value any) (any, Issues) { return value.(string), nil }).SafeParse(1)

		assert.False(t, res.Success)
		assert.Len(t, res.Issues, 1)
		assert.Equal(t, CodePanic, res.Issues[0].Code)
	})
}

func TestIssues(t *testing.T) {
	issues := Issues{
		{Path: "/name", Code: "required", Message: "is required"},
		{Message: "document rejected"},
	}

	t.Run("should render every issue", func(t *testing.T) {
		assert.Equal(t, []string{"/name: is required (required)", "/: document rejected"}, issues.Messages())
		assert.Equal(t, "/name: is required (required); /: document rejected", issues.Error())
	})
}
