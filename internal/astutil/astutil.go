// Package astutil provides small helpers for inspecting and building goja
// JavaScript syntax tree nodes.
package astutil

import (
	"github.com/dop251/goja/ast"
	"github.com/dop251/goja/token"
	"github.com/dop251/goja/unistring"
)

// Name returns the string form of a goja identifier name.
func Name(s unistring.String) string {
	return s.String()
}

// IdentifierName returns the name of expr if it is a plain identifier.
func IdentifierName(expr ast.Expression) (string, bool) {
	if ident, ok := expr.(*ast.Identifier); ok && ident != nil {
		return Name(ident.Name), true
	}
	return "", false
}

// NewIdentifier creates an identifier node without a source position.
func NewIdentifier(name string) *ast.Identifier {
	return &ast.Identifier{Name: unistring.NewFromString(name)}
}

// CloneIdentifier returns a fresh identifier with the same name, so the
// copy can be attached to a second parent without sharing the node.
func CloneIdentifier(ident *ast.Identifier) *ast.Identifier {
	return &ast.Identifier{Name: ident.Name, Idx: ident.Idx}
}

// CloneReference copies an assignment target that can be evaluated again
// without side effects: an identifier, or a member chain rooted at an
// identifier or `this` whose computed keys are identifiers or string and
// number literals. It reports false for any other target.
func CloneReference(expr ast.Expression) (ast.Expression, bool) {
	switch e := expr.(type) {
	case *ast.Identifier:
		return CloneIdentifier(e), true
	case *ast.ThisExpression:
		return &ast.ThisExpression{Idx: e.Idx}, true
	case *ast.DotExpression:
		left, ok := CloneReference(e.Left)
		if !ok {
			return nil, false
		}
		return &ast.DotExpression{Left: left, Identifier: e.Identifier}, true
	case *ast.BracketExpression:
		left, ok := CloneReference(e.Left)
		if !ok {
			return nil, false
		}
		var member ast.Expression
		switch m := e.Member.(type) {
		case *ast.Identifier:
			member = CloneIdentifier(m)
		case *ast.StringLiteral:
			c := *m
			member = &c
		case *ast.NumberLiteral:
			c := *m
			member = &c
		default:
			return nil, false
		}
		return &ast.BracketExpression{
			Left:         left,
			Member:       member,
			LeftBracket:  e.LeftBracket,
			RightBracket: e.RightBracket,
		}, true
	}
	return nil, false
}

// NewAssignment builds a plain `left = right` expression.
func NewAssignment(left, right ast.Expression) *ast.AssignExpression {
	return &ast.AssignExpression{Operator: token.ASSIGN, Left: left, Right: right}
}

// NewExpressionStatement wraps expr in a statement.
func NewExpressionStatement(expr ast.Expression) *ast.ExpressionStatement {
	return &ast.ExpressionStatement{Expression: expr}
}

// IsLiteral reports whether expr is a literal value: string, number, boolean,
// null, regexp or a template literal without substitutions or tag.
func IsLiteral(expr ast.Expression) bool {
	switch e := expr.(type) {
	case *ast.StringLiteral, *ast.NumberLiteral, *ast.BooleanLiteral,
		*ast.NullLiteral, *ast.RegExpLiteral:
		return true
	case *ast.TemplateLiteral:
		return e.Tag == nil && len(e.Expressions) == 0
	}
	return false
}

// IsIdentifier reports whether expr is a plain identifier reference.
func IsIdentifier(expr ast.Expression) bool {
	_, ok := expr.(*ast.Identifier)
	return ok
}

// IsPure reports whether evaluating expr can have no side effect.
func IsPure(expr ast.Expression) bool {
	return IsLiteral(expr) || IsIdentifier(expr)
}

// IsAssignment reports whether expr is an assignment of any operator.
func IsAssignment(expr ast.Expression) bool {
	_, ok := expr.(*ast.AssignExpression)
	return ok
}

// CallStatement returns the call when stmt is an expression statement whose
// whole expression is a call.
func CallStatement(stmt ast.Statement) (*ast.CallExpression, bool) {
	es, ok := stmt.(*ast.ExpressionStatement)
	if !ok {
		return nil, false
	}
	call, ok := es.Expression.(*ast.CallExpression)
	return call, ok
}

// CalleeName returns the identifier name of a call's callee.
func CalleeName(call *ast.CallExpression) (string, bool) {
	if call == nil {
		return "", false
	}
	return IdentifierName(call.Callee)
}

// HasSpread reports whether any argument is a spread element.
func HasSpread(args []ast.Expression) bool {
	for _, arg := range args {
		if _, ok := arg.(*ast.SpreadElement); ok {
			return true
		}
	}
	return false
}

// FunctionParts returns the parameter list and block body of any function
// node. Arrow functions with an expression body return a nil body.
func FunctionParts(node ast.Node) (*ast.ParameterList, *ast.BlockStatement) {
	switch n := node.(type) {
	case *ast.FunctionDeclaration:
		if n.Function == nil {
			return nil, nil
		}
		return n.Function.ParameterList, n.Function.Body
	case *ast.FunctionLiteral:
		return n.ParameterList, n.Body
	case *ast.ArrowFunctionLiteral:
		body, _ := n.Body.(*ast.BlockStatement)
		return n.ParameterList, body
	}
	return nil, nil
}

// FunctionName returns the declared name of a function node, or "" when the
// function is anonymous.
func FunctionName(node ast.Node) string {
	switch n := node.(type) {
	case *ast.FunctionDeclaration:
		if n.Function != nil && n.Function.Name != nil {
			return Name(n.Function.Name.Name)
		}
	case *ast.FunctionLiteral:
		if n.Name != nil {
			return Name(n.Name.Name)
		}
	}
	return ""
}

// IsEmptyBody reports whether a function body contains no statements.
func IsEmptyBody(body *ast.BlockStatement) bool {
	return body != nil && len(body.List) == 0
}
