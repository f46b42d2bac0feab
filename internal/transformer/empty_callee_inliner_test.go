package transformer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyCalleeInliner(t *testing.T) {
	tests := []struct {
		name           string
		src            string
		requireBinding bool
		want           string
		rewrites       int
	}{
		{
			name:           "bound empty function",
			src:            "function g(){ } var h = g(); g(a=1,b=2);",
			requireBinding: true,
			want:           "function g() {}\nvar h = g();\nparam1 = a = 1;\nparam2 = b = 2;",
			rewrites:       1,
		},
		{
			name:           "unbound function is kept when a binding is required",
			src:            "function g() {} g(a = 1);",
			requireBinding: true,
			want:           "function g() {}\ng(a = 1);",
		},
		{
			name:     "unbound function is inlined without the binding check",
			src:      "function g() {} g(a = 1, 2);",
			want:     "function g() {}\nparam1 = a = 1;\nparam2 = 2;",
			rewrites: 1,
		},
		{
			name:     "call without arguments is removed",
			src:      "function g() {} g(); x();",
			want:     "function g() {}\nx();",
			rewrites: 1,
		},
		{
			name: "non-empty function is kept",
			src:  "function g() { return 1; } g(a);",
			want: "function g() {\n  return 1;\n}\ng(a);",
		},
		{
			name: "call in expression position is kept",
			src:  "function g() {} var v = g(a);",
			want: "function g() {}\nvar v = g(a);",
		},
		{
			name:           "calls inside functions",
			src:            "function g() {} var k = g(); function f() { g(x); }",
			requireBinding: true,
			want:           "function g() {}\nvar k = g();\nfunction f() {\n  param1 = x;\n}",
			rewrites:       1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := NewEmptyCalleeInliner("param", tt.requireBinding)
			got, n, diag := applyRule(t, rule, tt.src)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.rewrites, n)
			assert.Empty(t, diag.Violations())
		})
	}
}

func TestEmptyCalleeInlinerPrefix(t *testing.T) {
	got, _, _ := applyRule(t, NewEmptyCalleeInliner("arg", false), "function g() {} g(1, 2);")
	assert.Equal(t, "function g() {}\narg1 = 1;\narg2 = 2;", got)
}

func TestEmptyCalleeInlinerSkipsSpread(t *testing.T) {
	got, n, diag := applyRule(t, NewEmptyCalleeInliner("param", false), "function g() {} g(a, ...rest);")

	assert.Equal(t, "function g() {}\ng(a, ...rest);", got)
	assert.Zero(t, n)
	require.Len(t, diag.Violations(), 1)
	assert.Equal(t, RuleInlineEmptyCallees, diag.Violations()[0].Rule)
}

func TestFunctionRegistryAnalyze(t *testing.T) {
	src := `
function empty() {}
function full() { return 1; }
var a = empty(), b = full(), c = obj.m(), d = 1;
function outer() { let e = empty(); }
`
	program := parseJS(t, src)
	registry := NewEmptyCalleeInliner("param", true).Analyze(program)

	assert.Equal(t, map[string]bool{"empty": true, "full": false, "outer": false}, registry.Empty)
	assert.Equal(t, map[string]string{"a": "empty", "b": "full", "e": "empty"}, registry.Bindings)
	assert.True(t, registry.IsEmpty("empty"))
	assert.False(t, registry.IsEmpty("missing"))
	assert.True(t, registry.IsBound("full"))
	assert.False(t, registry.IsBound("outer"))
}

func TestFunctionRegistryIsFreshPerApply(t *testing.T) {
	rule := NewEmptyCalleeInliner("param", false)

	first := "function g() {} g(1);"
	got, n, _ := applyRule(t, rule, first)
	require.Equal(t, 1, n)
	assert.Equal(t, "function g() {}\nparam1 = 1;", got)

	// g is not declared here, so nothing learned from the first program applies
	second := "g(1);"
	got, n, _ = applyRule(t, rule, second)
	assert.Zero(t, n)
	assert.Equal(t, "g(1);", got)
}
