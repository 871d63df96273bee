package python

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSimpleFunction(t *testing.T) {
	t.Parallel()

	src := "def add(x, y):\n    \"\"\"Add.\"\"\"\n    return x + y\n"
	file, err := Parse("test.py", []byte(src))
	require.NoError(t, err)

	require.Len(t, file.Defs, 1)
	def := file.Defs[0]
	assert.Equal(t, KindFunction, def.Kind)
	assert.Equal(t, "add", def.Name)
	assert.Equal(t, 1, def.Start.Line)
	assert.Equal(t, []string{"x", "y"}, def.Params)
	assert.True(t, def.HasBody)
	assert.True(t, def.FirstStmtString)

	require.Len(t, file.Strings, 1)
	tok := file.Strings[0]
	assert.Equal(t, `"""Add."""`, tok.Text)
	assert.Equal(t, 2, tok.Start.Line)
	assert.Equal(t, 2, tok.End.Line)
}

func TestParseModuleDocstring(t *testing.T) {
	t.Parallel()

	src := "#!/usr/bin/env python\n# -*- coding: utf-8 -*-\n\"\"\"Module documentation.\"\"\"\n\nx = 1\n"
	file, err := Parse("test.py", []byte(src))
	require.NoError(t, err)

	assert.Equal(t, KindModule, file.Module.Kind)
	assert.Equal(t, ModuleName, file.Module.Name)
	assert.True(t, file.Module.HasBody)
	assert.True(t, file.Module.FirstStmtString, "comments before the docstring are trivia")

	require.Len(t, file.Strings, 1)
	assert.Equal(t, 3, file.Strings[0].Start.Line)
}

func TestParseModuleWithoutDocstring(t *testing.T) {
	t.Parallel()

	src := "x = 1\ny = \"just a string\"\n"
	file, err := Parse("test.py", []byte(src))
	require.NoError(t, err)

	assert.True(t, file.Module.HasBody)
	assert.False(t, file.Module.FirstStmtString)
	require.Len(t, file.Strings, 1)
}

func TestParseClassAndMethods(t *testing.T) {
	t.Parallel()

	src := `class Greeter:
    """A greeter."""

    def __init__(self, name):
        """Set up."""
        self.name = name

    async def greet(self):
        return self.name
`
	file, err := Parse("test.py", []byte(src))
	require.NoError(t, err)

	require.Len(t, file.Defs, 3)
	class := file.Defs[0]
	assert.Equal(t, KindClass, class.Kind)
	assert.Equal(t, "Greeter", class.Name)
	assert.True(t, class.FirstStmtString)
	require.Len(t, class.Children, 2)

	init := class.Children[0]
	assert.Equal(t, KindMethod, init.Kind)
	assert.Equal(t, "__init__", init.Name)
	assert.Equal(t, []string{"self", "name"}, init.Params)

	greet := class.Children[1]
	assert.Equal(t, KindAsyncMethod, greet.Kind)
	assert.True(t, greet.Async)
	assert.False(t, greet.FirstStmtString)
}

func TestParseAsyncFunction(t *testing.T) {
	t.Parallel()

	src := "async def fetch(url):\n    \"\"\"Fetch.\"\"\"\n    return url\n"
	file, err := Parse("test.py", []byte(src))
	require.NoError(t, err)

	require.Len(t, file.Defs, 1)
	assert.Equal(t, KindAsyncFunction, file.Defs[0].Kind)
	assert.True(t, file.Defs[0].Async)
}

func TestParseDecoratedFunction(t *testing.T) {
	t.Parallel()

	src := "@decorator\ndef f(x):\n    \"\"\"Doc.\"\"\"\n    return x\n"
	file, err := Parse("test.py", []byte(src))
	require.NoError(t, err)

	require.Len(t, file.Defs, 1)
	def := file.Defs[0]
	assert.Equal(t, "f", def.Name)
	assert.Equal(t, 2, def.Start.Line, "definition starts at the def line, not the decorator")
}

func TestParseParameterVariants(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		src    string
		params []string
	}{
		{
			name:   "typed and defaulted",
			src:    "def f(a, b: int, c=1, d: int = 2):\n    pass\n",
			params: []string{"a", "b", "c", "d"},
		},
		{
			name:   "splat stops collection",
			src:    "def f(a, *args, b, **kwargs):\n    pass\n",
			params: []string{"a"},
		},
		{
			name:   "no parameters",
			src:    "def f():\n    pass\n",
			params: nil,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			file, err := Parse("test.py", []byte(tc.src))
			require.NoError(t, err)
			require.Len(t, file.Defs, 1)
			assert.Equal(t, tc.params, file.Defs[0].Params)
		})
	}
}

func TestParseFStringIsNotConstant(t *testing.T) {
	t.Parallel()

	src := "def f(name):\n    f\"\"\"hello {name}\"\"\"\n    return name\n"
	file, err := Parse("test.py", []byte(src))
	require.NoError(t, err)

	require.Len(t, file.Defs, 1)
	assert.False(t, file.Defs[0].FirstStmtString)
}

func TestParseInvalidEncoding(t *testing.T) {
	t.Parallel()

	_, err := Parse("test.py", []byte{0xff, 0xfe, 0x00, 0x41})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidEncoding))
}

func TestParseSyntaxError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
	}{
		{name: "broken def header", src: "def f(:\n    pass\n"},
		{name: "unterminated string", src: "x = \"\"\"never closed\n"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse("test.py", []byte(tc.src))
			require.Error(t, err)

			var parseErr *ParseError
			require.True(t, errors.As(err, &parseErr))
			assert.Equal(t, "test.py", parseErr.Filename)
			assert.Greater(t, parseErr.Line, 0)
		})
	}
}

func TestParseNestedFunctions(t *testing.T) {
	t.Parallel()

	src := `def outer():
    def inner(x):
        """Inner doc."""
        return x
    return inner
`
	file, err := Parse("test.py", []byte(src))
	require.NoError(t, err)

	require.Len(t, file.Defs, 2)
	outer, inner := file.Defs[0], file.Defs[1]
	assert.Equal(t, "outer", outer.Name)
	assert.False(t, outer.FirstStmtString)
	assert.Equal(t, "inner", inner.Name)
	assert.Equal(t, KindFunction, inner.Kind, "nested function is not a method")
	assert.True(t, inner.FirstStmtString)
	require.Len(t, outer.Children, 1)
}
