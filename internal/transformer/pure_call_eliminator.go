package transformer

import (
	"github.com/dop251/goja/ast"

	"github.com/whit3rabbit/jsunmixer/internal/astutil"
)

// PureCallEliminator removes call statements in function bodies whose
// arguments are all identifiers or literals. Such a call is assumed to have
// existed only to carry assignments that have since been hoisted out. A call
// without arguments is always kept.
type PureCallEliminator struct{}

func NewPureCallEliminator() *PureCallEliminator {
	return &PureCallEliminator{}
}

func (r *PureCallEliminator) Name() string { return RuleEliminatePureAssignmentCalls }

func (r *PureCallEliminator) Description() string {
	return "Remove call statements left with only identifier or literal arguments"
}

func (r *PureCallEliminator) Apply(program *ast.Program, diag *Diagnostics) int {
	count := 0
	handler := func(c *Cursor) {
		_, body := astutil.FunctionParts(c.Node())
		if body == nil {
			return
		}
		kept := make([]ast.Statement, 0, len(body.List))
		for _, stmt := range body.List {
			if call, ok := astutil.CallStatement(stmt); ok && IsPureAssignmentCall(call) {
				count++
				diag.Rewrote(r.Name(), stmt, "removed pure call statement")
				continue
			}
			kept = append(kept, stmt)
		}
		body.List = kept
	}
	Visit(program, Handlers{
		KindFunctionDeclaration: handler,
		KindFunctionExpression:  handler,
		KindArrowFunction:       handler,
	})
	return count
}

// IsPureAssignmentCall reports whether call has at least one argument and
// every argument is an identifier or a literal.
func IsPureAssignmentCall(call *ast.CallExpression) bool {
	if call == nil || len(call.ArgumentList) == 0 {
		return false
	}
	for _, arg := range call.ArgumentList {
		if !astutil.IsPure(arg) {
			return false
		}
	}
	return true
}
