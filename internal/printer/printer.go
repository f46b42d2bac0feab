// Package printer turns goja syntax trees back into readable JavaScript.
//
// Output is deterministic: two-space indentation, one statement per line,
// object literals spread over several lines and parentheses inserted only
// where operator precedence or statement-start ambiguity requires them.
package printer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dop251/goja/ast"
	"github.com/dop251/goja/token"

	"github.com/whit3rabbit/jsunmixer/internal/astutil"
)

const indentUnit = "  "

type printer struct {
	buf    strings.Builder
	indent int
	noIn   bool // inside a for-loop initializer
	err    error
}

// Generate prints node, which may be a program, a statement or an expression.
func Generate(node ast.Node) (string, error) {
	p := &printer{}
	switch n := node.(type) {
	case *ast.Program:
		p.statements(n.Body)
	case ast.Statement:
		p.stmt(n)
	case ast.Expression:
		p.expr(n, precComma)
	case nil:
		return "", fmt.Errorf("printer: nil node")
	default:
		return "", fmt.Errorf("printer: unsupported node %T", node)
	}
	if p.err != nil {
		return "", p.err
	}
	return p.buf.String(), nil
}

func (p *printer) write(s string) {
	p.buf.WriteString(s)
}

func (p *printer) line() {
	p.buf.WriteByte('\n')
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString(indentUnit)
	}
}

func (p *printer) fail(format string, args ...interface{}) {
	if p.err == nil {
		p.err = fmt.Errorf("printer: "+format, args...)
	}
}

// nested prints f in a delimited context where the `in` operator is
// unambiguous again.
func (p *printer) nested(f func()) {
	saved := p.noIn
	p.noIn = false
	f()
	p.noIn = saved
}

// --- Statements ---

func (p *printer) statements(list []ast.Statement) {
	for i, s := range list {
		if i > 0 {
			p.line()
		}
		p.stmt(s)
	}
}

func (p *printer) block(b *ast.BlockStatement) {
	if b == nil || len(b.List) == 0 {
		p.write("{}")
		return
	}
	p.write("{")
	p.indent++
	for _, s := range b.List {
		p.line()
		p.stmt(s)
	}
	p.indent--
	p.line()
	p.write("}")
}

// body prints the statement controlled by if/for/while/with.
func (p *printer) body(s ast.Statement) {
	p.write(" ")
	if b, ok := s.(*ast.BlockStatement); ok {
		p.block(b)
		return
	}
	p.stmt(s)
}

func (p *printer) stmt(s ast.Statement) {
	switch s := s.(type) {
	case *ast.BlockStatement:
		p.block(s)
	case *ast.ExpressionStatement:
		if startsStatementAmbiguously(s.Expression) {
			p.write("(")
			p.nested(func() { p.expr(s.Expression, precComma) })
			p.write(")")
		} else {
			p.expr(s.Expression, precComma)
		}
		p.write(";")
	case *ast.VariableStatement:
		p.write("var ")
		p.bindings(s.List)
		p.write(";")
	case *ast.LexicalDeclaration:
		p.write(s.Token.String() + " ")
		p.bindings(s.List)
		p.write(";")
	case *ast.FunctionDeclaration:
		p.function(s.Function)
	case *ast.ClassDeclaration:
		p.class(s.Class)
	case *ast.EmptyStatement:
		p.write(";")
	case *ast.ReturnStatement:
		p.write("return")
		if s.Argument != nil {
			p.write(" ")
			p.expr(s.Argument, precComma)
		}
		p.write(";")
	case *ast.ThrowStatement:
		p.write("throw ")
		p.expr(s.Argument, precComma)
		p.write(";")
	case *ast.IfStatement:
		p.ifStatement(s)
	case *ast.ForStatement:
		p.forStatement(s)
	case *ast.ForInStatement:
		p.write("for (")
		p.forInto(s.Into)
		p.write(" in ")
		p.expr(s.Source, precComma)
		p.write(")")
		p.body(s.Body)
	case *ast.ForOfStatement:
		p.write("for (")
		p.forInto(s.Into)
		p.write(" of ")
		p.expr(s.Source, precAssign)
		p.write(")")
		p.body(s.Body)
	case *ast.WhileStatement:
		p.write("while (")
		p.expr(s.Test, precComma)
		p.write(")")
		p.body(s.Body)
	case *ast.DoWhileStatement:
		p.write("do")
		p.body(s.Body)
		p.write(" while (")
		p.expr(s.Test, precComma)
		p.write(");")
	case *ast.LabelledStatement:
		p.write(astutil.Name(s.Label.Name) + ": ")
		p.stmt(s.Statement)
	case *ast.BranchStatement:
		p.write(s.Token.String())
		if s.Label != nil {
			p.write(" " + astutil.Name(s.Label.Name))
		}
		p.write(";")
	case *ast.SwitchStatement:
		p.switchStatement(s)
	case *ast.TryStatement:
		p.write("try ")
		p.block(s.Body)
		if s.Catch != nil {
			p.write(" catch")
			if s.Catch.Parameter != nil {
				p.write(" (")
				p.expr(s.Catch.Parameter, precAssign)
				p.write(")")
			}
			p.write(" ")
			p.block(s.Catch.Body)
		}
		if s.Finally != nil {
			p.write(" finally ")
			p.block(s.Finally)
		}
	case *ast.WithStatement:
		p.write("with (")
		p.expr(s.Object, precComma)
		p.write(")")
		p.body(s.Body)
	case *ast.DebuggerStatement:
		p.write("debugger;")
	case nil:
		p.fail("nil statement")
	default:
		p.fail("unsupported statement %T", s)
	}
}

func (p *printer) ifStatement(s *ast.IfStatement) {
	p.write("if (")
	p.expr(s.Test, precComma)
	p.write(")")
	cons := s.Consequent
	if s.Alternate != nil && endsWithOpenIf(cons) {
		cons = &ast.BlockStatement{List: []ast.Statement{cons}}
	}
	p.body(cons)
	if s.Alternate == nil {
		return
	}
	p.write(" else")
	if alt, ok := s.Alternate.(*ast.IfStatement); ok {
		p.write(" ")
		p.ifStatement(alt)
		return
	}
	p.body(s.Alternate)
}

// endsWithOpenIf reports whether an else printed after s would bind to an
// if statement nested inside s.
func endsWithOpenIf(s ast.Statement) bool {
	switch s := s.(type) {
	case *ast.IfStatement:
		if s.Alternate == nil {
			return true
		}
		return endsWithOpenIf(s.Alternate)
	case *ast.ForStatement:
		return endsWithOpenIf(s.Body)
	case *ast.ForInStatement:
		return endsWithOpenIf(s.Body)
	case *ast.ForOfStatement:
		return endsWithOpenIf(s.Body)
	case *ast.WhileStatement:
		return endsWithOpenIf(s.Body)
	case *ast.WithStatement:
		return endsWithOpenIf(s.Body)
	case *ast.LabelledStatement:
		return endsWithOpenIf(s.Statement)
	}
	return false
}

func (p *printer) forStatement(s *ast.ForStatement) {
	p.write("for (")
	p.noIn = true
	switch init := s.Initializer.(type) {
	case nil:
	case *ast.ForLoopInitializerExpression:
		if startsWithLet(init.Expression) {
			p.write("(")
			p.nested(func() { p.expr(init.Expression, precComma) })
			p.write(")")
		} else {
			p.expr(init.Expression, precComma)
		}
	case *ast.ForLoopInitializerVarDeclList:
		p.write("var ")
		p.bindings(init.List)
	case *ast.ForLoopInitializerLexicalDecl:
		p.write(init.LexicalDeclaration.Token.String() + " ")
		p.bindings(init.LexicalDeclaration.List)
	default:
		p.fail("unsupported for initializer %T", init)
	}
	p.noIn = false
	p.write(";")
	if s.Test != nil {
		p.write(" ")
		p.expr(s.Test, precComma)
	}
	p.write(";")
	if s.Update != nil {
		p.write(" ")
		p.expr(s.Update, precComma)
	}
	p.write(")")
	p.body(s.Body)
}

func startsWithLet(expr ast.Expression) bool {
	name, ok := astutil.IdentifierName(leftmost(expr))
	return ok && name == "let"
}

func (p *printer) forInto(into ast.ForInto) {
	switch into := into.(type) {
	case *ast.ForIntoVar:
		p.write("var ")
		p.binding(into.Binding)
	case *ast.ForDeclaration:
		if into.IsConst {
			p.write("const ")
		} else {
			p.write("let ")
		}
		p.expr(into.Target, precAssign)
	case *ast.ForIntoExpression:
		p.expr(into.Expression, precMember)
	default:
		p.fail("unsupported for-in target %T", into)
	}
}

func (p *printer) switchStatement(s *ast.SwitchStatement) {
	p.write("switch (")
	p.expr(s.Discriminant, precComma)
	p.write(") {")
	p.indent++
	for _, c := range s.Body {
		p.line()
		if c.Test == nil {
			p.write("default:")
		} else {
			p.write("case ")
			p.expr(c.Test, precComma)
			p.write(":")
		}
		p.indent++
		for _, st := range c.Consequent {
			p.line()
			p.stmt(st)
		}
		p.indent--
	}
	p.indent--
	p.line()
	p.write("}")
}

func (p *printer) bindings(list []*ast.Binding) {
	for i, b := range list {
		if i > 0 {
			p.write(", ")
		}
		p.binding(b)
	}
}

func (p *printer) binding(b *ast.Binding) {
	if b == nil {
		p.fail("nil binding")
		return
	}
	p.expr(b.Target, precAssign)
	if b.Initializer != nil {
		p.write(" = ")
		p.expr(b.Initializer, precAssign)
	}
}

// --- Functions and classes ---

func (p *printer) function(fn *ast.FunctionLiteral) {
	if fn == nil {
		p.fail("nil function")
		return
	}
	if fn.Async {
		p.write("async ")
	}
	p.write("function")
	if fn.Generator {
		p.write("*")
	}
	p.write(" ")
	if fn.Name != nil {
		p.write(astutil.Name(fn.Name.Name))
	}
	p.nested(func() {
		p.params(fn.ParameterList)
		p.write(" ")
		p.block(fn.Body)
	})
}

func (p *printer) params(list *ast.ParameterList) {
	p.write("(")
	if list != nil {
		p.bindings(list.List)
		if list.Rest != nil {
			if len(list.List) > 0 {
				p.write(", ")
			}
			p.write("...")
			p.expr(list.Rest, precAssign)
		}
	}
	p.write(")")
}

func (p *printer) arrow(fn *ast.ArrowFunctionLiteral) {
	if fn.Async {
		p.write("async ")
	}
	p.nested(func() { p.params(fn.ParameterList) })
	p.write(" => ")
	switch body := fn.Body.(type) {
	case *ast.BlockStatement:
		p.nested(func() { p.block(body) })
	case *ast.ExpressionBody:
		if startsWithBrace(body.Expression) {
			p.write("(")
			p.nested(func() { p.expr(body.Expression, precComma) })
			p.write(")")
			return
		}
		p.expr(body.Expression, precAssign)
	default:
		p.fail("unsupported arrow body %T", body)
	}
}

// method prints an object or class method whose key and modifiers are
// already known.
func (p *printer) method(prefix string, key ast.Expression, computed bool, fn *ast.FunctionLiteral) {
	p.write(prefix)
	if fn.Async {
		p.write("async ")
	}
	if fn.Generator {
		p.write("*")
	}
	p.propertyKey(key, computed)
	p.nested(func() {
		p.params(fn.ParameterList)
		p.write(" ")
		p.block(fn.Body)
	})
}

func (p *printer) propertyKey(key ast.Expression, computed bool) {
	if computed {
		p.write("[")
		p.nested(func() { p.expr(key, precAssign) })
		p.write("]")
		return
	}
	switch k := key.(type) {
	case *ast.StringLiteral:
		if k.Literal != "" {
			p.write(k.Literal)
			return
		}
		name := k.Value.String()
		if isIdentifierName(name) {
			p.write(name)
			return
		}
		p.write(quote(name))
	case *ast.PrivateIdentifier:
		p.write("#" + astutil.Name(k.Identifier.Name))
	default:
		p.expr(key, precAssign)
	}
}

func (p *printer) class(c *ast.ClassLiteral) {
	if c == nil {
		p.fail("nil class")
		return
	}
	p.write("class")
	if c.Name != nil {
		p.write(" " + astutil.Name(c.Name.Name))
	}
	if c.SuperClass != nil {
		p.write(" extends ")
		p.expr(c.SuperClass, precMember)
	}
	p.write(" {")
	if len(c.Body) == 0 {
		p.write("}")
		return
	}
	p.indent++
	p.nested(func() {
		for _, el := range c.Body {
			p.line()
			p.classElement(el)
		}
	})
	p.indent--
	p.line()
	p.write("}")
}

func (p *printer) classElement(el ast.ClassElement) {
	switch el := el.(type) {
	case *ast.FieldDefinition:
		if el.Static {
			p.write("static ")
		}
		p.propertyKey(el.Key, el.Computed)
		if el.Initializer != nil {
			p.write(" = ")
			p.expr(el.Initializer, precAssign)
		}
		p.write(";")
	case *ast.MethodDefinition:
		prefix := ""
		if el.Static {
			prefix = "static "
		}
		switch el.Kind {
		case ast.PropertyKindGet:
			prefix += "get "
		case ast.PropertyKindSet:
			prefix += "set "
		}
		p.method(prefix, el.Key, el.Computed, el.Body)
	case *ast.ClassStaticBlock:
		p.write("static ")
		p.block(el.Block)
	default:
		p.fail("unsupported class element %T", el)
	}
}

// --- Expressions ---

func (p *printer) expr(e ast.Expression, level int) {
	if e == nil {
		p.fail("nil expression")
		return
	}
	if precedence(e) < level {
		p.write("(")
		p.nested(func() { p.exprInner(e) })
		p.write(")")
		return
	}
	p.exprInner(e)
}

func (p *printer) exprInner(e ast.Expression) {
	switch e := e.(type) {
	case *ast.Identifier:
		p.write(astutil.Name(e.Name))
	case *ast.PrivateIdentifier:
		p.write("#" + astutil.Name(e.Identifier.Name))
	case *ast.StringLiteral:
		if e.Literal != "" {
			p.write(e.Literal)
		} else {
			p.write(quote(e.Value.String()))
		}
	case *ast.NumberLiteral:
		if e.Literal != "" {
			p.write(e.Literal)
		} else {
			p.write(formatNumber(e.Value))
		}
	case *ast.BooleanLiteral:
		if e.Literal != "" {
			p.write(e.Literal)
		} else {
			p.write(strconv.FormatBool(e.Value))
		}
	case *ast.NullLiteral:
		p.write("null")
	case *ast.RegExpLiteral:
		if e.Literal != "" {
			p.write(e.Literal)
		} else {
			p.write("/" + e.Pattern + "/" + e.Flags)
		}
	case *ast.TemplateLiteral:
		p.template(e)
	case *ast.ThisExpression:
		p.write("this")
	case *ast.SuperExpression:
		p.write("super")
	case *ast.MetaProperty:
		p.write(astutil.Name(e.Meta.Name) + "." + astutil.Name(e.Property.Name))
	case *ast.ArrayLiteral:
		p.array(e.Value, nil)
	case *ast.ArrayPattern:
		p.array(e.Elements, e.Rest)
	case *ast.ObjectLiteral:
		p.object(e.Value)
	case *ast.ObjectPattern:
		p.pattern(e.Properties, e.Rest)
	case *ast.FunctionLiteral:
		p.function(e)
	case *ast.ArrowFunctionLiteral:
		p.arrow(e)
	case *ast.ClassLiteral:
		p.class(e)
	case *ast.AssignExpression:
		p.expr(e.Left, precMember)
		if e.Operator == token.ASSIGN {
			p.write(" = ")
		} else {
			p.write(" " + e.Operator.String() + "= ")
		}
		p.expr(e.Right, precAssign)
	case *ast.ConditionalExpression:
		p.expr(e.Test, precCoalesce)
		p.write(" ? ")
		p.expr(e.Consequent, precAssign)
		p.write(" : ")
		p.expr(e.Alternate, precAssign)
	case *ast.SequenceExpression:
		for i, el := range e.Sequence {
			if i > 0 {
				p.write(", ")
			}
			p.expr(el, precAssign)
		}
	case *ast.BinaryExpression:
		if e.Operator == token.IN && p.noIn {
			p.write("(")
			p.nested(func() { p.binary(e) })
			p.write(")")
			return
		}
		p.binary(e)
	case *ast.UnaryExpression:
		p.unary(e)
	case *ast.AwaitExpression:
		p.write("await ")
		p.expr(e.Argument, precUnary)
	case *ast.YieldExpression:
		p.write("yield")
		if e.Delegate {
			p.write("*")
		}
		if e.Argument != nil {
			p.write(" ")
			p.expr(e.Argument, precAssign)
		}
	case *ast.SpreadElement:
		p.write("...")
		p.expr(e.Expression, precAssign)
	case *ast.CallExpression:
		callee, optional := unwrapOptional(e.Callee)
		p.memberObject(callee)
		if optional {
			p.write("?.")
		}
		p.arguments(e.ArgumentList)
	case *ast.NewExpression:
		p.write("new ")
		if hasCallInChain(e.Callee) {
			p.write("(")
			p.nested(func() { p.exprInner(e.Callee) })
			p.write(")")
		} else {
			p.memberObject(e.Callee)
		}
		p.arguments(e.ArgumentList)
	case *ast.DotExpression:
		left, optional := unwrapOptional(e.Left)
		p.memberObject(left)
		if optional {
			p.write("?.")
		} else {
			p.write(".")
		}
		p.write(astutil.Name(e.Identifier.Name))
	case *ast.PrivateDotExpression:
		left, optional := unwrapOptional(e.Left)
		p.memberObject(left)
		if optional {
			p.write("?.")
		} else {
			p.write(".")
		}
		p.write("#" + astutil.Name(e.Identifier.Identifier.Name))
	case *ast.BracketExpression:
		left, optional := unwrapOptional(e.Left)
		p.memberObject(left)
		if optional {
			p.write("?.")
		}
		p.write("[")
		p.nested(func() { p.expr(e.Member, precComma) })
		p.write("]")
	case *ast.OptionalChain:
		p.exprInner(e.Expression)
	case *ast.Optional:
		p.exprInner(e.Expression)
	default:
		p.fail("unsupported expression %T", e)
	}
}

func unwrapOptional(e ast.Expression) (ast.Expression, bool) {
	if opt, ok := e.(*ast.Optional); ok {
		return opt.Expression, true
	}
	return e, false
}

// memberObject prints the object of a member access or the callee of a call.
func (p *printer) memberObject(e ast.Expression) {
	switch n := e.(type) {
	case *ast.OptionalChain:
		p.write("(")
		p.nested(func() { p.exprInner(n) })
		p.write(")")
		return
	case *ast.NumberLiteral:
		if isBareInteger(n.Literal) {
			p.write("(")
			p.exprInner(n)
			p.write(")")
			return
		}
	}
	p.expr(e, precMember)
}

func (p *printer) arguments(args []ast.Expression) {
	p.write("(")
	p.nested(func() {
		for i, arg := range args {
			if i > 0 {
				p.write(", ")
			}
			p.expr(arg, precAssign)
		}
	})
	p.write(")")
}

func (p *printer) binary(e *ast.BinaryExpression) {
	prec := binaryPrec(e.Operator)
	leftLevel, rightLevel := prec, prec+1
	if e.Operator == token.EXPONENT {
		leftLevel, rightLevel = precPostfix, prec
	}
	if e.Operator == token.COALESCE && isLogical(e.Left) {
		leftLevel = precPrimary
	}
	if e.Operator == token.COALESCE && isLogical(e.Right) {
		rightLevel = precPrimary
	}
	p.expr(e.Left, leftLevel)
	p.write(" " + e.Operator.String() + " ")
	p.expr(e.Right, rightLevel)
}

func (p *printer) unary(e *ast.UnaryExpression) {
	if e.Postfix {
		p.expr(e.Operand, precMember)
		p.write(e.Operator.String())
		return
	}
	op := e.Operator.String()
	p.write(op)
	switch e.Operator {
	case token.TYPEOF, token.VOID, token.DELETE:
		p.write(" ")
	case token.PLUS, token.MINUS, token.INCREMENT, token.DECREMENT:
		if startsWithSign(e.Operand) {
			p.write(" ")
		}
	}
	p.expr(e.Operand, precUnary)
}

func startsWithSign(e ast.Expression) bool {
	u, ok := e.(*ast.UnaryExpression)
	if !ok || u.Postfix {
		return false
	}
	switch u.Operator {
	case token.PLUS, token.MINUS, token.INCREMENT, token.DECREMENT:
		return true
	}
	return false
}

func (p *printer) template(e *ast.TemplateLiteral) {
	if e.Tag != nil {
		p.memberObject(e.Tag)
	}
	p.write("`")
	for i, el := range e.Elements {
		p.write(el.Literal)
		if i < len(e.Expressions) {
			p.write("${")
			p.nested(func() { p.expr(e.Expressions[i], precComma) })
			p.write("}")
		}
	}
	p.write("`")
}

func (p *printer) array(elements []ast.Expression, rest ast.Expression) {
	p.write("[")
	p.nested(func() {
		for i, el := range elements {
			if i > 0 {
				p.write(", ")
			}
			if el != nil {
				p.expr(el, precAssign)
			}
		}
		if n := len(elements); n > 0 && elements[n-1] == nil && rest == nil {
			p.write(",")
		}
		if rest != nil {
			if len(elements) > 0 {
				p.write(", ")
			}
			p.write("...")
			p.expr(rest, precAssign)
		}
	})
	p.write("]")
}

func (p *printer) object(props []ast.Property) {
	if len(props) == 0 {
		p.write("{}")
		return
	}
	p.write("{")
	p.indent++
	p.nested(func() {
		for i, prop := range props {
			p.line()
			p.property(prop)
			if i < len(props)-1 {
				p.write(",")
			}
		}
	})
	p.indent--
	p.line()
	p.write("}")
}

func (p *printer) pattern(props []ast.Property, rest ast.Expression) {
	if len(props) == 0 && rest == nil {
		p.write("{}")
		return
	}
	p.write("{ ")
	p.nested(func() {
		for i, prop := range props {
			if i > 0 {
				p.write(", ")
			}
			p.property(prop)
		}
		if rest != nil {
			if len(props) > 0 {
				p.write(", ")
			}
			p.write("...")
			p.expr(rest, precAssign)
		}
	})
	p.write(" }")
}

func (p *printer) property(prop ast.Property) {
	switch prop := prop.(type) {
	case *ast.PropertyShort:
		p.write(astutil.Name(prop.Name.Name))
		if prop.Initializer != nil {
			p.write(" = ")
			p.expr(prop.Initializer, precAssign)
		}
	case *ast.PropertyKeyed:
		fn, isFunc := prop.Value.(*ast.FunctionLiteral)
		switch {
		case prop.Kind == ast.PropertyKindGet && isFunc:
			p.method("get ", prop.Key, prop.Computed, fn)
		case prop.Kind == ast.PropertyKindSet && isFunc:
			p.method("set ", prop.Key, prop.Computed, fn)
		case prop.Kind == ast.PropertyKindMethod && isFunc:
			p.method("", prop.Key, prop.Computed, fn)
		default:
			p.propertyKey(prop.Key, prop.Computed)
			p.write(": ")
			p.expr(prop.Value, precAssign)
		}
	case *ast.SpreadElement:
		p.write("...")
		p.expr(prop.Expression, precAssign)
	default:
		p.fail("unsupported property %T", prop)
	}
}

// --- Literals ---

func isBareInteger(lit string) bool {
	if lit == "" {
		return false
	}
	for _, r := range lit {
		if (r < '0' || r > '9') && r != '_' {
			return false
		}
	}
	return true
}

func isIdentifierName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '$' || r == '_':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

func formatNumber(v interface{}) string {
	switch n := v.(type) {
	case int64:
		return strconv.FormatInt(n, 10)
	case int:
		return strconv.Itoa(n)
	case float64:
		return strconv.FormatFloat(n, 'g', -1, 64)
	}
	return fmt.Sprint(v)
}

// quote renders s as a double-quoted JavaScript string literal.
func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\u2028':
			b.WriteString(`\u2028`)
		case '\u2029':
			b.WriteString(`\u2029`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&b, `\x%02x`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
