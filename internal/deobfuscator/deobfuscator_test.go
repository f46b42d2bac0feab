package deobfuscator

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dop251/goja/ast"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whit3rabbit/jsunmixer/internal/config"
	"github.com/whit3rabbit/jsunmixer/internal/printer"
	"github.com/whit3rabbit/jsunmixer/internal/syntax"
	"github.com/whit3rabbit/jsunmixer/internal/transformer"
)

func init() {
	config.Testing = true
}

func newTestContext(t *testing.T, mutate func(cfg *config.Config)) *Context {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Silent = true
	if mutate != nil {
		mutate(cfg)
	}
	octx, err := NewContext(cfg, nil)
	require.NoError(t, err)
	return octx
}

func TestTransformExamples(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "assignment hoisted out of a call",
			src:  "function f(x){ console.log((y = x+1), y); }",
			want: "function f(x) {\n  y = x + 1;\n  console.log(y, y);\n}",
		},
		{
			name: "call to an empty function becomes parameter assignments",
			src:  "function g(){ } var h = g(); g(a=1,b=2);",
			want: "function g() {}\nvar h = g();\nparam1 = a = 1;\nparam2 = b = 2;",
		},
		{
			name: "parameter defaults and marker calls",
			src:  "function f(a = 1, b = {}) { r = FunctionEmpty(0, a = 2, b.c = 3); }",
			want: "function f(a, b) {\n  a = 2;\n  b.c = 3;\n}",
		},
	}

	octx := newTestContext(t, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := octx.Transform(tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Code free of the targeted patterns must come out as the printer would
// format it anyway.
func TestTransformIsIdempotentOnCleanInput(t *testing.T) {
	corpus := []string{
		"console.log('hello');",
		"function add(a, b) { return a + b; }\nvar total = add(1, 2);\nconsole.log(total);",
		"class Counter { constructor() { this.n = 0; } inc() { this.n++; return this; } }",
		"for (let i = 0; i < 3; i++) { if (i % 2) continue; out.push(i); }",
		"const f = async (url) => { const res = await fetch(url); return res.json(); };",
		"try { risky(); } catch (e) { report(e); } finally { done(); }",
		"var o = { a: 1, b: [1, 2, 3], c: { d: 'x' } };\nexport_(o);",
	}

	octx := newTestContext(t, nil)
	for _, src := range corpus {
		t.Run(src, func(t *testing.T) {
			program, err := syntax.Parse("clean.js", src)
			require.NoError(t, err)
			want, err := printer.Generate(program)
			require.NoError(t, err)

			res, err := octx.Run("clean.js", src)
			require.NoError(t, err)
			if diff := cmp.Diff(want, res.Code); diff != "" {
				t.Errorf("clean input was rewritten (-want +got):\n%s", diff)
			}
			assert.Zero(t, res.Total())
			assert.Equal(t, 1, res.Passes)

			// a second run over our own output is a no-op too
			again, err := octx.Transform(res.Code)
			require.NoError(t, err)
			assert.Equal(t, res.Code, again)
		})
	}
}

func TestRunFixpoint(t *testing.T) {
	src := "g(x = FunctionEmpty(a = 1, b = 2));"

	tests := []struct {
		name       string
		fixpoint   bool
		maxPasses  int
		wantCode   string
		wantPasses int
	}{
		{
			name:       "single pass",
			fixpoint:   false,
			maxPasses:  10,
			wantCode:   "x = FunctionEmpty(a = 1, b = 2);\ng(x);",
			wantPasses: 1,
		},
		{
			name:       "until nothing changes",
			fixpoint:   true,
			maxPasses:  10,
			wantCode:   "a = 1;\nb = 2;\ng(x);",
			wantPasses: 3,
		},
		{
			name:       "pass limit",
			fixpoint:   true,
			maxPasses:  2,
			wantCode:   "a = 1;\nb = 2;\ng(x);",
			wantPasses: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			octx := newTestContext(t, func(cfg *config.Config) {
				cfg.Pipeline.Fixpoint = tt.fixpoint
				cfg.Pipeline.MaxPasses = tt.maxPasses
			})
			res, err := octx.Run("fix.js", src)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCode, res.Code)
			assert.Equal(t, tt.wantPasses, res.Passes)
		})
	}
}

func TestRunCountsRewritesPerRule(t *testing.T) {
	octx := newTestContext(t, func(cfg *config.Config) {
		cfg.Rules.EliminatePureAssignmentCalls.Enabled = true
	})
	res, err := octx.Run("count.js", "function f(p = 1) { log(a = 1, b = 2); }")
	require.NoError(t, err)

	assert.Equal(t, "function f(p) {\n  a = 1;\n  b = 2;\n}", res.Code)
	assert.Equal(t, 1, res.Rewrites[transformer.RuleStripParamDefaults])
	assert.Equal(t, 2, res.Rewrites[transformer.RuleHoistCallAssignments])
	assert.Equal(t, 1, res.Rewrites[transformer.RuleEliminatePureAssignmentCalls])
	assert.Equal(t, 4, res.Total())
}

func TestRunCollectsDiagnostics(t *testing.T) {
	octx := newTestContext(t, nil)
	res, err := octx.Run("diag.js", "g(o.k = 1);")
	require.NoError(t, err)

	assert.Equal(t, "g(o.k = 1);", res.Code)
	require.NotEmpty(t, res.Diagnostics)
	assert.Equal(t, transformer.RuleHoistCallAssignments, res.Diagnostics[0].Rule)
}

func TestRunSyntaxError(t *testing.T) {
	octx := newTestContext(t, nil)
	_, err := octx.Run("broken.js", "function (")
	require.Error(t, err)

	var synErr *syntax.SyntaxError
	require.True(t, errors.As(err, &synErr))
	assert.Equal(t, "broken.js", synErr.Filename)
	assert.Equal(t, 1, synErr.Line)
}

// renameRule produces a tree whose printed form is not valid JavaScript.
type renameRule struct{}

func (renameRule) Name() string        { return "rename" }
func (renameRule) Description() string { return "renames every identifier to an invalid name" }
func (renameRule) Apply(program *ast.Program, diag *transformer.Diagnostics) int {
	transformer.Visit(program, transformer.Handlers{
		transformer.KindIdentifier: func(c *transformer.Cursor) {
			c.Node().(*ast.Identifier).Name = "1bad"
		},
	})
	return 0
}

func TestRunRoundTripFailure(t *testing.T) {
	octx := newTestContext(t, nil)
	octx.Rules = []transformer.Rule{renameRule{}}

	_, err := octx.Run("rt.js", "a = b;")
	var rtErr *RoundTripError
	require.True(t, errors.As(err, &rtErr), "got %v", err)
	assert.Equal(t, "1bad = 1bad;", rtErr.Output)

	var synErr *syntax.SyntaxError
	assert.True(t, errors.As(err, &synErr))

	// with verification off the output is returned as is
	octx.Config.Pipeline.VerifyRoundTrip = false
	code, err := octx.Transform("a = b;")
	require.NoError(t, err)
	assert.Equal(t, "1bad = 1bad;", code)
}

func TestNewContext(t *testing.T) {
	octx, err := NewContext(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{
		transformer.RuleStripParamDefaults,
		transformer.RuleUnwrapMarkerCalls,
		transformer.RuleInlineEmptyCallees,
		transformer.RuleHoistCallAssignments,
	}, octx.RuleNames())
	assert.NotNil(t, octx.Logger())

	cfg := config.DefaultConfig()
	cfg.Pipeline.Order = []string{"hoist-call-assignments", "no-such-rule"}
	_, err = NewContext(cfg, nil)
	assert.ErrorContains(t, err, "no-such-rule")

	cfg = config.DefaultConfig()
	cfg.Pipeline.MaxPasses = 0
	_, err = NewContext(cfg, nil)
	assert.ErrorContains(t, err, "invalid configuration")
}

func TestNewContextUsesRuleOptions(t *testing.T) {
	octx := newTestContext(t, func(cfg *config.Config) {
		cfg.Rules.UnwrapMarkerCalls.MarkerName = "Dispatch"
		cfg.Rules.InlineEmptyCallees.ParamPrefix = "arg"
		cfg.Rules.InlineEmptyCallees.RequireBinding = false
	})

	got, err := octx.Transform("function e() {} Dispatch(a = 1); e(2);")
	require.NoError(t, err)
	assert.Equal(t, "function e() {}\na = 1;\narg1 = 2;", got)
}

func TestProcessFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.js")
	require.NoError(t, os.WriteFile(path, []byte("f(a = 1);"), 0644))

	octx := newTestContext(t, nil)
	code, err := ProcessFile(path, octx)
	require.NoError(t, err)
	assert.Equal(t, "a = 1;\nf(a);", code)

	octx.Config.Output.Header = true
	code, err = ProcessFile(path, octx)
	require.NoError(t, err)
	assert.Equal(t, "// Generated from file: input.js\na = 1;\nf(a);", code)

	_, err = ProcessFile(filepath.Join(dir, "missing.js"), octx)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
