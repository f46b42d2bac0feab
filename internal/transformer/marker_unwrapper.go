package transformer

import (
	"github.com/dop251/goja/ast"
	"github.com/dop251/goja/token"

	"github.com/whit3rabbit/jsunmixer/internal/astutil"
)

// MarkerUnwrapper splices the arguments of a dispatcher call into the
// enclosing statement list:
//
//	x = FunctionEmpty(a = 1, b = g(a));
//
// becomes
//
//	a = 1;
//	b = g(a);
//
// A bare `FunctionEmpty(...)` statement is unwrapped the same way. When the
// first argument is a plain identifier or literal it is the dispatcher's
// selector and is dropped.
type MarkerUnwrapper struct {
	marker string
}

func NewMarkerUnwrapper(marker string) *MarkerUnwrapper {
	if marker == "" {
		marker = "FunctionEmpty"
	}
	return &MarkerUnwrapper{marker: marker}
}

func (r *MarkerUnwrapper) Name() string { return RuleUnwrapMarkerCalls }

func (r *MarkerUnwrapper) Description() string {
	return "Splice the arguments of marker dispatcher calls into statements"
}

// Marker returns the function name this rule matches.
func (r *MarkerUnwrapper) Marker() string { return r.marker }

func (r *MarkerUnwrapper) Apply(program *ast.Program, diag *Diagnostics) int {
	count := 0
	Visit(program, Handlers{
		KindExpressionStatement: func(c *Cursor) {
			stmt := c.Node().(*ast.ExpressionStatement)
			call := r.markerCall(stmt.Expression)
			if call == nil {
				return
			}
			if astutil.HasSpread(call.ArgumentList) {
				diag.Report(r.Name(), stmt, "spread argument in marker call")
				return
			}

			args := call.ArgumentList
			if len(args) > 1 && astutil.IsPure(args[0]) {
				args = args[1:]
			}
			stmts := make([]ast.Statement, len(args))
			for i, arg := range args {
				stmts[i] = astutil.NewExpressionStatement(arg)
			}
			if !c.ReplaceStatements(stmts...) {
				diag.Report(r.Name(), stmt, "statement cannot be replaced in this position")
				return
			}
			count++
			diag.Rewrote(r.Name(), stmt, "unwrapped marker call")
		},
	})
	return count
}

// markerCall returns the marker call carried by expr, either directly or as
// the right-hand side of a plain assignment, when it has at least one
// argument.
func (r *MarkerUnwrapper) markerCall(expr ast.Expression) *ast.CallExpression {
	if assign, ok := expr.(*ast.AssignExpression); ok {
		if assign.Operator != token.ASSIGN {
			return nil
		}
		expr = assign.Right
	}
	call, ok := expr.(*ast.CallExpression)
	if !ok || len(call.ArgumentList) == 0 {
		return nil
	}
	if name, ok := astutil.CalleeName(call); !ok || name != r.marker {
		return nil
	}
	return call
}
