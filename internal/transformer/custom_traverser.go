package transformer

import (
	"github.com/dop251/goja/ast"
)

// Handler is invoked on entry to every node of the kind it is registered for.
type Handler func(c *Cursor)

// Handlers maps node kinds to the handler run for them.
type Handlers map[Kind]Handler

// Visit walks program in pre-order, left to right, calling the handler
// registered for each node's kind before descending into its children.
//
// Statement and expression lists are rebuilt from a snapshot after their
// elements have been visited, so edits never skip or repeat a sibling.
// Nodes removed or replaced by a handler are not descended into, and
// inserted or replacement nodes are left for the next pass.
func Visit(program *ast.Program, handlers Handlers) {
	if program == nil {
		return
	}
	w := &walker{handlers: handlers}
	c := w.visit(program, KindProgram, slot{kind: slotFixed})
	if c.skip {
		return
	}
	w.parents.push(program)
	w.statementList(&program.Body)
	w.parents.pop()
}

type walker struct {
	handlers Handlers
	parents  ParentTracker
}

func (w *walker) visit(n ast.Node, kind Kind, s slot) *Cursor {
	c := &Cursor{
		node:   n,
		kind:   kind,
		parent: w.parents.Parent(),
		fn:     w.parents.Function(),
		slot:   s,
	}
	if h := w.handlers[kind]; h != nil {
		h(c)
	}
	return c
}

// --- Statements ---

func (w *walker) statementList(list *[]ast.Statement) {
	src := *list
	out := make([]ast.Statement, 0, len(src))
	changed := false
	for _, s := range src {
		if s == nil {
			continue
		}
		c := w.visit(s, KindOf(s), slot{kind: slotStatementList})
		if !c.replaced && !c.skip {
			w.statementChildren(s)
		}
		if c.edited() {
			changed = true
			out = append(out, c.statements(s)...)
			continue
		}
		out = append(out, s)
	}
	if changed {
		*list = out
	}
}

func (w *walker) statementSlot(s ast.Statement, set func(ast.Statement), labelled bool) {
	if s == nil {
		return
	}
	c := w.visit(s, KindOf(s), slot{kind: slotStatement, labelled: labelled})
	if !c.replaced && !c.skip {
		w.statementChildren(s)
	}
	if c.edited() {
		set(collapse(c.statements(s)))
	}
}

// block visits a block that its parent requires to stay a block, such as a
// function or try body.
func (w *walker) block(b *ast.BlockStatement) {
	if b == nil {
		return
	}
	c := w.visit(b, KindBlockStatement, slot{kind: slotFixed})
	if c.skip {
		return
	}
	w.parents.push(b)
	w.statementList(&b.List)
	w.parents.pop()
}

func (w *walker) statementChildren(s ast.Statement) {
	w.parents.push(s)
	defer w.parents.pop()

	switch s := s.(type) {
	case *ast.BlockStatement:
		w.statementList(&s.List)
	case *ast.ExpressionStatement:
		w.expression(s.Expression, func(e ast.Expression) bool { s.Expression = e; return true })
	case *ast.VariableStatement:
		w.bindings(s.List, KindVariableDeclarator)
	case *ast.LexicalDeclaration:
		w.bindings(s.List, KindVariableDeclarator)
	case *ast.FunctionDeclaration:
		w.functionParts(s.Function)
	case *ast.ClassDeclaration:
		w.classParts(s.Class)
	case *ast.ReturnStatement:
		w.optionalExpression(s.Argument, func(e ast.Expression) bool { s.Argument = e; return true })
	case *ast.ThrowStatement:
		w.expression(s.Argument, func(e ast.Expression) bool { s.Argument = e; return true })
	case *ast.IfStatement:
		w.expression(s.Test, func(e ast.Expression) bool { s.Test = e; return true })
		w.statementSlot(s.Consequent, func(n ast.Statement) { s.Consequent = n }, false)
		w.statementSlot(s.Alternate, func(n ast.Statement) { s.Alternate = n }, false)
	case *ast.ForStatement:
		w.forInitializer(s.Initializer)
		w.optionalExpression(s.Test, func(e ast.Expression) bool { s.Test = e; return true })
		w.optionalExpression(s.Update, func(e ast.Expression) bool { s.Update = e; return true })
		w.statementSlot(s.Body, func(n ast.Statement) { s.Body = n }, false)
	case *ast.ForInStatement:
		w.forInto(s.Into)
		w.expression(s.Source, func(e ast.Expression) bool { s.Source = e; return true })
		w.statementSlot(s.Body, func(n ast.Statement) { s.Body = n }, false)
	case *ast.ForOfStatement:
		w.forInto(s.Into)
		w.expression(s.Source, func(e ast.Expression) bool { s.Source = e; return true })
		w.statementSlot(s.Body, func(n ast.Statement) { s.Body = n }, false)
	case *ast.WhileStatement:
		w.expression(s.Test, func(e ast.Expression) bool { s.Test = e; return true })
		w.statementSlot(s.Body, func(n ast.Statement) { s.Body = n }, false)
	case *ast.DoWhileStatement:
		w.statementSlot(s.Body, func(n ast.Statement) { s.Body = n }, false)
		w.expression(s.Test, func(e ast.Expression) bool { s.Test = e; return true })
	case *ast.LabelledStatement:
		w.statementSlot(s.Statement, func(n ast.Statement) { s.Statement = n }, true)
	case *ast.SwitchStatement:
		w.expression(s.Discriminant, func(e ast.Expression) bool { s.Discriminant = e; return true })
		for _, cs := range s.Body {
			w.caseClause(cs)
		}
	case *ast.TryStatement:
		w.block(s.Body)
		if s.Catch != nil {
			w.parents.push(s.Catch)
			catch := s.Catch
			w.optionalExpression(catch.Parameter, func(e ast.Expression) bool {
				t, ok := e.(ast.BindingTarget)
				if ok {
					catch.Parameter = t
				}
				return ok
			})
			w.block(catch.Body)
			w.parents.pop()
		}
		w.block(s.Finally)
	case *ast.WithStatement:
		w.expression(s.Object, func(e ast.Expression) bool { s.Object = e; return true })
		w.statementSlot(s.Body, func(n ast.Statement) { s.Body = n }, false)
	}
}

func (w *walker) caseClause(cs *ast.CaseStatement) {
	if cs == nil {
		return
	}
	w.parents.push(cs)
	w.optionalExpression(cs.Test, func(e ast.Expression) bool { cs.Test = e; return true })
	w.statementList(&cs.Consequent)
	w.parents.pop()
}

func (w *walker) forInitializer(init ast.ForLoopInitializer) {
	switch init := init.(type) {
	case *ast.ForLoopInitializerExpression:
		w.expression(init.Expression, func(e ast.Expression) bool { init.Expression = e; return true })
	case *ast.ForLoopInitializerVarDeclList:
		w.bindings(init.List, KindVariableDeclarator)
	case *ast.ForLoopInitializerLexicalDecl:
		w.bindings(init.LexicalDeclaration.List, KindVariableDeclarator)
	}
}

func (w *walker) forInto(into ast.ForInto) {
	switch into := into.(type) {
	case *ast.ForIntoVar:
		w.binding(into.Binding, KindVariableDeclarator)
	case *ast.ForDeclaration:
		w.expression(into.Target, func(e ast.Expression) bool {
			t, ok := e.(ast.BindingTarget)
			if ok {
				into.Target = t
			}
			return ok
		})
	case *ast.ForIntoExpression:
		w.expression(into.Expression, func(e ast.Expression) bool { into.Expression = e; return true })
	}
}

func (w *walker) bindings(list []*ast.Binding, kind Kind) {
	for _, b := range list {
		w.binding(b, kind)
	}
}

func (w *walker) binding(b *ast.Binding, kind Kind) {
	if b == nil {
		return
	}
	c := w.visit(b, kind, slot{kind: slotFixed})
	if c.skip {
		return
	}
	w.parents.push(b)
	w.expression(b.Target, func(e ast.Expression) bool {
		t, ok := e.(ast.BindingTarget)
		if ok {
			b.Target = t
		}
		return ok
	})
	w.optionalExpression(b.Initializer, func(e ast.Expression) bool { b.Initializer = e; return true })
	w.parents.pop()
}

// --- Functions and classes ---

// functionParts walks the name, parameters and body of fn without
// dispatching fn itself, which the caller has already done.
func (w *walker) functionParts(fn *ast.FunctionLiteral) {
	if fn == nil {
		return
	}
	if fn.Name != nil {
		w.visit(fn.Name, KindIdentifier, slot{kind: slotFixed})
	}
	w.parameters(fn.ParameterList)
	w.block(fn.Body)
}

func (w *walker) parameters(list *ast.ParameterList) {
	if list == nil {
		return
	}
	w.bindings(list.List, KindParameter)
	w.optionalExpression(list.Rest, func(e ast.Expression) bool { list.Rest = e; return true })
}

func (w *walker) classParts(cls *ast.ClassLiteral) {
	if cls == nil {
		return
	}
	if cls.Name != nil {
		w.visit(cls.Name, KindIdentifier, slot{kind: slotFixed})
	}
	w.optionalExpression(cls.SuperClass, func(e ast.Expression) bool { cls.SuperClass = e; return true })
	for _, el := range cls.Body {
		switch el := el.(type) {
		case *ast.FieldDefinition:
			w.parents.push(el)
			if el.Computed {
				w.expression(el.Key, func(e ast.Expression) bool { el.Key = e; return true })
			}
			w.optionalExpression(el.Initializer, func(e ast.Expression) bool { el.Initializer = e; return true })
			w.parents.pop()
		case *ast.MethodDefinition:
			w.parents.push(el)
			if el.Computed {
				w.expression(el.Key, func(e ast.Expression) bool { el.Key = e; return true })
			}
			w.expression(el.Body, func(e ast.Expression) bool {
				fn, ok := e.(*ast.FunctionLiteral)
				if ok {
					el.Body = fn
				}
				return ok
			})
			w.parents.pop()
		case *ast.ClassStaticBlock:
			w.parents.push(el)
			w.block(el.Block)
			w.parents.pop()
		}
	}
}

// --- Expressions ---

func (w *walker) optionalExpression(e ast.Expression, set func(ast.Expression) bool) {
	if e == nil {
		return
	}
	w.expression(e, set)
}

func (w *walker) expression(e ast.Expression, set func(ast.Expression) bool) {
	if e == nil {
		return
	}
	c := w.visit(e, KindOf(e), slot{kind: slotExpression, setExpr: set})
	if c.replaced || c.skip {
		return
	}
	w.expressionChildren(e)
}

func (w *walker) expressionList(list *[]ast.Expression) {
	src := *list
	out := make([]ast.Expression, 0, len(src))
	changed := false
	for _, e := range src {
		if e == nil {
			// array elision
			out = append(out, nil)
			continue
		}
		c := w.visit(e, KindOf(e), slot{kind: slotExpressionList})
		if c.replaced {
			exprs, _ := toExpressions(c.replacement)
			out = append(out, exprs...)
			changed = true
			continue
		}
		if !c.skip {
			w.expressionChildren(e)
		}
		out = append(out, e)
	}
	if changed {
		*list = out
	}
}

// elements walks a list whose length is significant, such as template
// substitutions or pattern elements; each entry is a single slot.
func (w *walker) elements(list []ast.Expression) {
	for i := range list {
		i := i
		w.optionalExpression(list[i], func(e ast.Expression) bool { list[i] = e; return true })
	}
}

func (w *walker) expressionChildren(e ast.Expression) {
	w.parents.push(e)
	defer w.parents.pop()

	switch e := e.(type) {
	case *ast.TemplateLiteral:
		w.optionalExpression(e.Tag, func(x ast.Expression) bool { e.Tag = x; return true })
		w.elements(e.Expressions)
	case *ast.ArrayLiteral:
		w.expressionList(&e.Value)
	case *ast.ArrayPattern:
		w.elements(e.Elements)
		w.optionalExpression(e.Rest, func(x ast.Expression) bool { e.Rest = x; return true })
	case *ast.ObjectLiteral:
		w.properties(e.Value)
	case *ast.ObjectPattern:
		w.properties(e.Properties)
		w.optionalExpression(e.Rest, func(x ast.Expression) bool { e.Rest = x; return true })
	case *ast.FunctionLiteral:
		w.functionParts(e)
	case *ast.ArrowFunctionLiteral:
		w.parameters(e.ParameterList)
		switch body := e.Body.(type) {
		case *ast.BlockStatement:
			w.block(body)
		case *ast.ExpressionBody:
			w.expression(body.Expression, func(x ast.Expression) bool { body.Expression = x; return true })
		}
	case *ast.ClassLiteral:
		w.classParts(e)
	case *ast.AssignExpression:
		w.expression(e.Left, func(x ast.Expression) bool { e.Left = x; return true })
		w.expression(e.Right, func(x ast.Expression) bool { e.Right = x; return true })
	case *ast.ConditionalExpression:
		w.expression(e.Test, func(x ast.Expression) bool { e.Test = x; return true })
		w.expression(e.Consequent, func(x ast.Expression) bool { e.Consequent = x; return true })
		w.expression(e.Alternate, func(x ast.Expression) bool { e.Alternate = x; return true })
	case *ast.SequenceExpression:
		w.elements(e.Sequence)
	case *ast.BinaryExpression:
		w.expression(e.Left, func(x ast.Expression) bool { e.Left = x; return true })
		w.expression(e.Right, func(x ast.Expression) bool { e.Right = x; return true })
	case *ast.UnaryExpression:
		w.expression(e.Operand, func(x ast.Expression) bool { e.Operand = x; return true })
	case *ast.AwaitExpression:
		w.expression(e.Argument, func(x ast.Expression) bool { e.Argument = x; return true })
	case *ast.YieldExpression:
		w.optionalExpression(e.Argument, func(x ast.Expression) bool { e.Argument = x; return true })
	case *ast.SpreadElement:
		w.expression(e.Expression, func(x ast.Expression) bool { e.Expression = x; return true })
	case *ast.CallExpression:
		w.expression(e.Callee, func(x ast.Expression) bool { e.Callee = x; return true })
		w.expressionList(&e.ArgumentList)
	case *ast.NewExpression:
		w.expression(e.Callee, func(x ast.Expression) bool { e.Callee = x; return true })
		w.expressionList(&e.ArgumentList)
	case *ast.DotExpression:
		w.expression(e.Left, func(x ast.Expression) bool { e.Left = x; return true })
	case *ast.PrivateDotExpression:
		w.expression(e.Left, func(x ast.Expression) bool { e.Left = x; return true })
	case *ast.BracketExpression:
		w.expression(e.Left, func(x ast.Expression) bool { e.Left = x; return true })
		w.expression(e.Member, func(x ast.Expression) bool { e.Member = x; return true })
	case *ast.OptionalChain:
		w.expression(e.Expression, func(x ast.Expression) bool { e.Expression = x; return true })
	case *ast.Optional:
		w.expression(e.Expression, func(x ast.Expression) bool { e.Expression = x; return true })
	}
}

func (w *walker) properties(props []ast.Property) {
	for _, prop := range props {
		switch prop := prop.(type) {
		case *ast.PropertyShort:
			w.optionalExpression(prop.Initializer, func(x ast.Expression) bool { prop.Initializer = x; return true })
		case *ast.PropertyKeyed:
			if prop.Computed {
				w.expression(prop.Key, func(x ast.Expression) bool { prop.Key = x; return true })
			}
			w.expression(prop.Value, func(x ast.Expression) bool { prop.Value = x; return true })
		case *ast.SpreadElement:
			w.expression(prop.Expression, func(x ast.Expression) bool { prop.Expression = x; return true })
		}
	}
}
