package transformer

import (
	"testing"

	"github.com/dop251/goja/ast"
	"github.com/stretchr/testify/require"

	"github.com/whit3rabbit/jsunmixer/internal/printer"
	"github.com/whit3rabbit/jsunmixer/internal/syntax"
)

// parseJS parses src or fails the test.
func parseJS(t *testing.T, src string) *ast.Program {
	t.Helper()
	program, err := syntax.Parse("test.js", src)
	require.NoError(t, err, "failed to parse:\n%s", src)
	return program
}

// generateJS prints program and checks that the result parses again.
func generateJS(t *testing.T, program *ast.Program) string {
	t.Helper()
	out, err := printer.Generate(program)
	require.NoError(t, err)
	validateJSSyntax(t, out)
	return out
}

// validateJSSyntax checks that code is syntactically valid JavaScript.
func validateJSSyntax(t *testing.T, code string) {
	t.Helper()
	_, err := syntax.Parse("generated.js", code)
	require.NoError(t, err, "generated code does not parse:\n%s", code)
}

// applyRule runs a single rule over src and returns the generated code,
// the rewrite count and the collected diagnostics.
func applyRule(t *testing.T, rule Rule, src string) (string, int, *Diagnostics) {
	t.Helper()
	program := parseJS(t, src)
	diag := NewDiagnostics(nil, src)
	n := rule.Apply(program, diag)
	return generateJS(t, program), n, diag
}

// normalize parses and prints src so expectations can be written loosely.
func normalize(t *testing.T, src string) string {
	t.Helper()
	return generateJS(t, parseJS(t, src))
}
