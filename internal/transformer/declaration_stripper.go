package transformer

import (
	"github.com/dop251/goja/ast"

	"github.com/whit3rabbit/jsunmixer/internal/astutil"
)

// DeclarationStripper removes variable declarations and bare assignment
// statements from function bodies.
//
// It does not check whether the removed values are still read later in the
// body, so it can break working code. It is never part of the default
// pipeline and logs a warning whenever it removes something.
type DeclarationStripper struct{}

func NewDeclarationStripper() *DeclarationStripper {
	return &DeclarationStripper{}
}

func (r *DeclarationStripper) Name() string { return RuleStripDeclarations }

func (r *DeclarationStripper) Description() string {
	return "Remove declarations and bare assignments from function bodies (unsafe)"
}

func (r *DeclarationStripper) Apply(program *ast.Program, diag *Diagnostics) int {
	count := 0
	handler := func(c *Cursor) {
		_, body := astutil.FunctionParts(c.Node())
		if body == nil {
			return
		}
		kept := make([]ast.Statement, 0, len(body.List))
		for _, stmt := range body.List {
			if isStrippable(stmt) {
				count++
				diag.Rewrote(r.Name(), stmt, "removed declaration or assignment")
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
	if count > 0 {
		diag.WarnOnce(r.Name(), "declaration stripping may remove values that are still read")
	}
	return count
}

func isStrippable(stmt ast.Statement) bool {
	switch s := stmt.(type) {
	case *ast.VariableStatement, *ast.LexicalDeclaration:
		return true
	case *ast.ExpressionStatement:
		_, ok := s.Expression.(*ast.AssignExpression)
		return ok
	}
	return false
}
