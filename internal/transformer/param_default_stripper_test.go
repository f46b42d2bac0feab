package transformer

import (
	"testing"

	"github.com/dop251/goja/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParamDefaultStripper(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		want     string
		rewrites int
	}{
		{
			name:     "declaration",
			src:      "function f(a, b = 1, c = g()) { return a; }",
			want:     "function f(a, b, c) {\n  return a;\n}",
			rewrites: 2,
		},
		{
			name:     "function expression",
			src:      "var f = function (x = 0) {};",
			want:     "var f = function (x) {};",
			rewrites: 1,
		},
		{
			name:     "arrow function",
			src:      "var f = (x = 1, y) => x;",
			want:     "var f = (x, y) => x;",
			rewrites: 1,
		},
		{
			name:     "method",
			src:      "class C { m(v = 2) { return v; } }",
			want:     "class C {\n  m(v) {\n    return v;\n  }\n}",
			rewrites: 1,
		},
		{
			name:     "destructured parameter keeps its pattern",
			src:      "function f({ a } = {}, [b] = []) {}",
			want:     "function f({ a }, [b]) {}",
			rewrites: 2,
		},
		{
			name: "variable initializers are not parameters",
			src:  "function f(a) { var b = 1; }",
			want: "function f(a) {\n  var b = 1;\n}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, n, _ := applyRule(t, NewParamDefaultStripper(), tt.src)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.rewrites, n)
		})
	}
}

func TestParamDefaultStripperKeepsParameterCount(t *testing.T) {
	src := "function f(a, b = 1, ...rest) {}"
	program := parseJS(t, src)
	NewParamDefaultStripper().Apply(program, NewDiagnostics(nil, src))

	decl, ok := program.Body[0].(*ast.FunctionDeclaration)
	require.True(t, ok)
	params := decl.Function.ParameterList
	require.Len(t, params.List, 2)
	assert.NotNil(t, params.Rest)
	for _, p := range params.List {
		assert.Nil(t, p.Initializer)
	}
}
