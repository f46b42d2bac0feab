package printer

import (
	"github.com/dop251/goja/ast"
	"github.com/dop251/goja/token"

	"github.com/whit3rabbit/jsunmixer/internal/astutil"
)

// Binding power of expression forms, lowest first.
const (
	precLowest = iota
	precComma
	precAssign
	precConditional
	precCoalesce
	precLogicalOr
	precLogicalAnd
	precBitOr
	precBitXor
	precBitAnd
	precEquality
	precRelational
	precShift
	precAdditive
	precMultiplicative
	precExponent
	precUnary
	precPostfix
	precMember
	precPrimary
)

var binaryPrecedence = map[token.Token]int{
	token.COALESCE:             precCoalesce,
	token.LOGICAL_OR:           precLogicalOr,
	token.LOGICAL_AND:          precLogicalAnd,
	token.OR:                   precBitOr,
	token.EXCLUSIVE_OR:         precBitXor,
	token.AND:                  precBitAnd,
	token.EQUAL:                precEquality,
	token.NOT_EQUAL:            precEquality,
	token.STRICT_EQUAL:         precEquality,
	token.STRICT_NOT_EQUAL:     precEquality,
	token.LESS:                 precRelational,
	token.GREATER:              precRelational,
	token.LESS_OR_EQUAL:        precRelational,
	token.GREATER_OR_EQUAL:     precRelational,
	token.INSTANCEOF:           precRelational,
	token.IN:                   precRelational,
	token.SHIFT_LEFT:           precShift,
	token.SHIFT_RIGHT:          precShift,
	token.UNSIGNED_SHIFT_RIGHT: precShift,
	token.PLUS:                 precAdditive,
	token.MINUS:                precAdditive,
	token.MULTIPLY:             precMultiplicative,
	token.SLASH:                precMultiplicative,
	token.REMAINDER:            precMultiplicative,
	token.EXPONENT:             precExponent,
}

func binaryPrec(op token.Token) int {
	if p, ok := binaryPrecedence[op]; ok {
		return p
	}
	return precRelational
}

// precedence returns how tightly expr binds when printed without parentheses.
func precedence(expr ast.Expression) int {
	switch e := expr.(type) {
	case *ast.SequenceExpression:
		return precComma
	case *ast.AssignExpression, *ast.ArrowFunctionLiteral, *ast.YieldExpression, *ast.SpreadElement:
		return precAssign
	case *ast.ConditionalExpression:
		return precConditional
	case *ast.BinaryExpression:
		return binaryPrec(e.Operator)
	case *ast.UnaryExpression:
		if e.Postfix {
			return precPostfix
		}
		return precUnary
	case *ast.AwaitExpression:
		return precUnary
	case *ast.CallExpression, *ast.NewExpression, *ast.DotExpression, *ast.PrivateDotExpression,
		*ast.BracketExpression, *ast.OptionalChain, *ast.Optional, *ast.MetaProperty:
		return precMember
	case *ast.TemplateLiteral:
		if e.Tag != nil {
			return precMember
		}
	}
	return precPrimary
}

func isLogical(expr ast.Expression) bool {
	b, ok := expr.(*ast.BinaryExpression)
	return ok && (b.Operator == token.LOGICAL_AND || b.Operator == token.LOGICAL_OR)
}

// leftmost follows the left edge of expr down to the sub-expression whose
// text starts the printed form.
func leftmost(expr ast.Expression) ast.Expression {
	for {
		next := leftStep(expr)
		if next == nil {
			return expr
		}
		expr = next
	}
}

// leftStep returns the sub-expression one step down the left edge of expr,
// or nil when the printed form of expr starts with expr itself.
func leftStep(expr ast.Expression) ast.Expression {
	switch e := expr.(type) {
	case *ast.BinaryExpression:
		return e.Left
	case *ast.AssignExpression:
		return e.Left
	case *ast.ConditionalExpression:
		return e.Test
	case *ast.SequenceExpression:
		if len(e.Sequence) > 0 {
			return e.Sequence[0]
		}
	case *ast.CallExpression:
		return e.Callee
	case *ast.DotExpression:
		return e.Left
	case *ast.PrivateDotExpression:
		return e.Left
	case *ast.BracketExpression:
		return e.Left
	case *ast.OptionalChain:
		return e.Expression
	case *ast.Optional:
		return e.Expression
	case *ast.UnaryExpression:
		if e.Postfix {
			return e.Operand
		}
	case *ast.TemplateLiteral:
		if e.Tag != nil {
			return e.Tag
		}
	}
	return nil
}

// startsStatementAmbiguously reports whether a statement beginning with expr
// would be read as a block, a function or class declaration, or a `let [`
// destructuring declaration.
func startsStatementAmbiguously(expr ast.Expression) bool {
	switch leftmost(expr).(type) {
	case *ast.ObjectLiteral, *ast.ObjectPattern, *ast.FunctionLiteral, *ast.ClassLiteral:
		return true
	}
	return indexesLet(expr)
}

// indexesLet reports whether the left edge of expr is `let[...]`.
func indexesLet(expr ast.Expression) bool {
	for ; expr != nil; expr = leftStep(expr) {
		if b, ok := expr.(*ast.BracketExpression); ok {
			if name, ok := astutil.IdentifierName(b.Left); ok && name == "let" {
				return true
			}
		}
	}
	return false
}

func startsWithBrace(expr ast.Expression) bool {
	switch leftmost(expr).(type) {
	case *ast.ObjectLiteral, *ast.ObjectPattern:
		return true
	}
	return false
}

// hasCallInChain reports whether a `new` callee contains a call that would
// otherwise be taken as the constructor's argument list.
func hasCallInChain(expr ast.Expression) bool {
	for {
		switch e := expr.(type) {
		case *ast.CallExpression, *ast.OptionalChain, *ast.Optional:
			return true
		case *ast.DotExpression:
			expr = e.Left
		case *ast.PrivateDotExpression:
			expr = e.Left
		case *ast.BracketExpression:
			expr = e.Left
		case *ast.TemplateLiteral:
			if e.Tag == nil {
				return false
			}
			expr = e.Tag
		default:
			return false
		}
	}
}
