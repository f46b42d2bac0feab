package transformer

import (
	"github.com/dop251/goja/ast"

	"github.com/whit3rabbit/jsunmixer/internal/astutil"
)

// Kind classifies syntax tree nodes for handler dispatch.
type Kind int

const (
	KindOther Kind = iota
	KindProgram
	KindFunctionDeclaration
	KindFunctionExpression
	KindArrowFunction
	KindBlockStatement
	KindExpressionStatement
	KindCallExpression
	KindAssignmentExpression
	KindVariableDeclaration
	KindVariableDeclarator
	KindParameter
	KindIdentifier
	KindLiteral
	KindStatement
	KindExpression
)

var kindNames = map[Kind]string{
	KindOther:                "Other",
	KindProgram:              "Program",
	KindFunctionDeclaration:  "FunctionDeclaration",
	KindFunctionExpression:   "FunctionExpression",
	KindArrowFunction:        "ArrowFunctionExpression",
	KindBlockStatement:       "BlockStatement",
	KindExpressionStatement:  "ExpressionStatement",
	KindCallExpression:       "CallExpression",
	KindAssignmentExpression: "AssignmentExpression",
	KindVariableDeclaration:  "VariableDeclaration",
	KindVariableDeclarator:   "VariableDeclarator",
	KindParameter:            "Parameter",
	KindIdentifier:           "Identifier",
	KindLiteral:              "Literal",
	KindStatement:            "Statement",
	KindExpression:           "Expression",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// KindOf maps a goja node onto its Kind. Bindings are reported as
// declarators; the walker refines parameter bindings by position.
func KindOf(n ast.Node) Kind {
	switch n := n.(type) {
	case *ast.Program:
		return KindProgram
	case *ast.FunctionDeclaration:
		return KindFunctionDeclaration
	case *ast.FunctionLiteral:
		return KindFunctionExpression
	case *ast.ArrowFunctionLiteral:
		return KindArrowFunction
	case *ast.BlockStatement:
		return KindBlockStatement
	case *ast.ExpressionStatement:
		return KindExpressionStatement
	case *ast.CallExpression:
		return KindCallExpression
	case *ast.AssignExpression:
		return KindAssignmentExpression
	case *ast.VariableStatement, *ast.LexicalDeclaration:
		return KindVariableDeclaration
	case *ast.Binding:
		return KindVariableDeclarator
	case *ast.Identifier:
		return KindIdentifier
	case *ast.StringLiteral, *ast.NumberLiteral, *ast.BooleanLiteral, *ast.NullLiteral, *ast.RegExpLiteral:
		return KindLiteral
	case *ast.TemplateLiteral:
		if astutil.IsLiteral(n) {
			return KindLiteral
		}
		return KindExpression
	case ast.Statement:
		return KindStatement
	case ast.Expression:
		return KindExpression
	}
	return KindOther
}

// IsFunction reports whether k is one of the function kinds.
func (k Kind) IsFunction() bool {
	return k == KindFunctionDeclaration || k == KindFunctionExpression || k == KindArrowFunction
}
