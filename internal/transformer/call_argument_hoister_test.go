package transformer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallArgumentHoister(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		want     string
		rewrites int
	}{
		{
			name:     "assignment before identifier",
			src:      "function f(x){ console.log((y = x+1), y); }",
			want:     "function f(x) {\n  y = x + 1;\n  console.log(y, y);\n}",
			rewrites: 1,
		},
		{
			name:     "several assignments keep their order",
			src:      "g(a = 1, 2, b = a + 1, c);",
			want:     "a = 1;\nb = a + 1;\ng(a, 2, b, c);",
			rewrites: 2,
		},
		{
			name:     "compound assignment is hoisted as written",
			src:      "g(a += 2);",
			want:     "a += 2;\ng(a);",
			rewrites: 1,
		},
		{
			name: "no assignment arguments",
			src:  "g(a, 1, h(b));",
			want: "g(a, 1, h(b));",
		},
		{
			name: "call in expression position is left alone",
			src:  "var r = g(a = 1);",
			want: "var r = g(a = 1);",
		},
		{
			name:     "single statement body becomes a block",
			src:      "if (ok) g(a = 1);",
			want:     "if (ok) {\n  a = 1;\n  g(a);\n}",
			rewrites: 1,
		},
		{
			name:     "nested function bodies",
			src:      "var f = function () { return () => { h(z = 3); }; };",
			want:     "var f = function () {\n  return () => {\n    z = 3;\n    h(z);\n  };\n};",
			rewrites: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, n, diag := applyRule(t, NewCallArgumentHoister(), tt.src)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.rewrites, n)
			assert.Empty(t, diag.Violations())
		})
	}
}

func TestCallArgumentHoisterMemberTargets(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"dot target", "g(a = 1, o.p = 2);", "a = 1;\no.p = 2;\ng(a, o.p);"},
		{"literal index", "g(o[0] = 1, o['k'] = 2);", "o[0] = 1;\no['k'] = 2;\ng(o[0], o['k']);"},
		{"identifier index", "g(o[i] = 1);", "o[i] = 1;\ng(o[i]);"},
		{"this member chain", "g(this.a.b = c = 1);", "this.a.b = c = 1;\ng(this.a.b);"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, n, diag := applyRule(t, NewCallArgumentHoister(), tt.src)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, strings.Count(tt.want, ";")-1, n)
			assert.Empty(t, diag.Violations())
		})
	}
}

func TestCallArgumentHoisterSkipsImpureTargets(t *testing.T) {
	tests := []string{
		"g(a = 1, h().p = 2);",
		"g(a = 1, o[k()] = 2);",
		"g(a = 1, [x, y] = pair);",
	}
	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			program := parseJS(t, src)
			want := generateJS(t, program)

			got, n, diag := applyRule(t, NewCallArgumentHoister(), src)
			assert.Equal(t, want, got)
			assert.Zero(t, n)
			require.Len(t, diag.Violations(), 1)
			v := diag.Violations()[0]
			assert.Equal(t, RuleHoistCallAssignments, v.Rule)
			assert.Equal(t, KindExpressionStatement, v.Kind)
			assert.Equal(t, 1, v.Position.Line)
			assert.Equal(t, 1, v.Position.Column)
		})
	}
}

func TestCallArgumentHoisterRefusesLabelledStatement(t *testing.T) {
	src := "outer: g(a = 1);"
	got, n, diag := applyRule(t, NewCallArgumentHoister(), src)

	assert.Equal(t, "outer: g(a = 1);", got)
	assert.Zero(t, n)
	assert.Len(t, diag.Violations(), 1)
}

func TestHoistCountInvariant(t *testing.T) {
	src := "f(a = 1, x, b = 2, 'lit', c = d = 3);"
	program := parseJS(t, src)
	n := NewCallArgumentHoister().Apply(program, NewDiagnostics(nil, src))
	require.Equal(t, 3, n)

	// three hoisted statements followed by the residual call
	require.Len(t, program.Body, 4)
	got := generateJS(t, program)
	assert.Equal(t, "a = 1;\nb = 2;\nc = d = 3;\nf(a, x, b, 'lit', c);", got)
}
