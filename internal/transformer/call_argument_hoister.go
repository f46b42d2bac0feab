package transformer

import (
	"github.com/dop251/goja/ast"

	"github.com/whit3rabbit/jsunmixer/internal/astutil"
)

// CallArgumentHoister moves assignments out of the argument list of a call
// statement:
//
//	console.log(y = x + 1, y);
//
// becomes
//
//	y = x + 1;
//	console.log(y, y);
//
// Member targets such as `o.p` or `o[i]` are hoisted too when they can be
// read again without side effects. Any other target leaves the whole
// statement untouched.
type CallArgumentHoister struct{}

func NewCallArgumentHoister() *CallArgumentHoister {
	return &CallArgumentHoister{}
}

func (r *CallArgumentHoister) Name() string { return RuleHoistCallAssignments }

func (r *CallArgumentHoister) Description() string {
	return "Hoist assignments out of call arguments into preceding statements"
}

func (r *CallArgumentHoister) Apply(program *ast.Program, diag *Diagnostics) int {
	count := 0
	Visit(program, Handlers{
		KindExpressionStatement: func(c *Cursor) {
			count += r.hoist(c, diag)
		},
	})
	return count
}

func (r *CallArgumentHoister) hoist(c *Cursor, diag *Diagnostics) int {
	stmt := c.Node().(*ast.ExpressionStatement)
	call, ok := stmt.Expression.(*ast.CallExpression)
	if !ok {
		return 0
	}

	var hoisted []ast.Statement
	refs := make(map[int]ast.Expression)
	for i, arg := range call.ArgumentList {
		assign, ok := arg.(*ast.AssignExpression)
		if !ok {
			continue
		}
		ref, ok := astutil.CloneReference(assign.Left)
		if !ok {
			diag.Report(r.Name(), stmt, "assignment argument target cannot be read again safely")
			return 0
		}
		refs[i] = ref
		hoisted = append(hoisted, astutil.NewExpressionStatement(assign))
	}
	if len(hoisted) == 0 {
		return 0
	}
	if !c.InsertBefore(hoisted...) {
		diag.Report(r.Name(), stmt, "no statement list to hoist into")
		return 0
	}

	for i, ref := range refs {
		call.ArgumentList[i] = ref
	}
	diag.Rewrote(r.Name(), stmt, "hoisted call argument assignments")
	return len(hoisted)
}
