package transformer

import (
	"strconv"

	"github.com/dop251/goja/ast"

	"github.com/whit3rabbit/jsunmixer/internal/astutil"
)

// FunctionRegistry holds what the analysis pass of the empty-callee inliner
// learned about a program. It lives for a single Apply call.
type FunctionRegistry struct {
	// Empty maps a declared function name to whether its body is empty.
	Empty map[string]bool
	// Bindings maps a variable name to the function whose call initializes it.
	Bindings map[string]string
}

func NewFunctionRegistry() *FunctionRegistry {
	return &FunctionRegistry{
		Empty:    make(map[string]bool),
		Bindings: make(map[string]string),
	}
}

// IsEmpty reports whether name was declared as a function with an empty body.
func (fr *FunctionRegistry) IsEmpty(name string) bool {
	return fr.Empty[name]
}

// IsBound reports whether some variable is initialized by a call to name.
func (fr *FunctionRegistry) IsBound(name string) bool {
	for _, callee := range fr.Bindings {
		if callee == name {
			return true
		}
	}
	return false
}

// EmptyCalleeInliner replaces statement calls to empty functions with one
// positional assignment per argument:
//
//	function g() {}
//	var h = g();
//	g(a = 1, b = 2);
//
// becomes
//
//	function g() {}
//	var h = g();
//	param1 = a = 1;
//	param2 = b = 2;
type EmptyCalleeInliner struct {
	prefix         string
	requireBinding bool
}

// NewEmptyCalleeInliner creates the rule. prefix names the synthesized
// parameters. When requireBinding is set only functions whose call result
// initializes some variable are inlined.
func NewEmptyCalleeInliner(prefix string, requireBinding bool) *EmptyCalleeInliner {
	if prefix == "" {
		prefix = "param"
	}
	return &EmptyCalleeInliner{prefix: prefix, requireBinding: requireBinding}
}

func (r *EmptyCalleeInliner) Name() string { return RuleInlineEmptyCallees }

func (r *EmptyCalleeInliner) Description() string {
	return "Replace calls to empty functions with positional parameter assignments"
}

func (r *EmptyCalleeInliner) Apply(program *ast.Program, diag *Diagnostics) int {
	registry := r.Analyze(program)
	return r.Rewrite(program, registry, diag)
}

// Analyze records function emptiness and call-initialized variables.
func (r *EmptyCalleeInliner) Analyze(program *ast.Program) *FunctionRegistry {
	registry := NewFunctionRegistry()
	Visit(program, Handlers{
		KindFunctionDeclaration: func(c *Cursor) {
			name := astutil.FunctionName(c.Node())
			if name == "" {
				return
			}
			_, body := astutil.FunctionParts(c.Node())
			registry.Empty[name] = astutil.IsEmptyBody(body)
		},
		KindVariableDeclarator: func(c *Cursor) {
			decl, ok := c.Node().(*ast.Binding)
			if !ok {
				return
			}
			variable, ok := decl.Target.(*ast.Identifier)
			if !ok {
				return
			}
			call, ok := decl.Initializer.(*ast.CallExpression)
			if !ok {
				return
			}
			if callee, ok := astutil.CalleeName(call); ok {
				registry.Bindings[astutil.Name(variable.Name)] = callee
			}
		},
	})
	return registry
}

// Rewrite performs the replacement using a registry built by Analyze.
func (r *EmptyCalleeInliner) Rewrite(program *ast.Program, registry *FunctionRegistry, diag *Diagnostics) int {
	count := 0
	Visit(program, Handlers{
		KindExpressionStatement: func(c *Cursor) {
			call, ok := astutil.CallStatement(c.Node().(ast.Statement))
			if !ok {
				return
			}
			callee, ok := astutil.CalleeName(call)
			if !ok || !registry.IsEmpty(callee) {
				return
			}
			if r.requireBinding && !registry.IsBound(callee) {
				return
			}
			if astutil.HasSpread(call.ArgumentList) {
				diag.Report(r.Name(), c.Node(), "spread argument cannot be bound to a positional parameter")
				return
			}

			stmts := make([]ast.Statement, len(call.ArgumentList))
			for i, arg := range call.ArgumentList {
				param := astutil.NewIdentifier(r.prefix + strconv.Itoa(i+1))
				stmts[i] = astutil.NewExpressionStatement(astutil.NewAssignment(param, arg))
			}
			if !c.ReplaceStatements(stmts...) {
				diag.Report(r.Name(), c.Node(), "statement cannot be replaced in this position")
				return
			}
			count++
			diag.Rewrote(r.Name(), c.Node(), "inlined call to empty function "+callee)
		},
	})
	return count
}
