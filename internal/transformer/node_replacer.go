package transformer

import (
	"github.com/dop251/goja/ast"
)

type slotKind int

const (
	slotFixed          slotKind = iota // in-place mutation only
	slotStatementList                  // element of a statement list
	slotStatement                      // single statement slot (if/loop body)
	slotExpressionList                 // element of an argument or array list
	slotExpression                     // single expression field
)

// slot describes where the visited node lives in its parent and therefore
// which edits the cursor may perform.
type slot struct {
	kind     slotKind
	labelled bool                      // statement slot of a labelled statement
	setExpr  func(ast.Expression) bool // for slotExpression
}

// Cursor is handed to a Handler for every visited node. Edits requested
// through it are applied by the walker once the handler returns; replacement
// and inserted nodes are not visited in the same pass.
type Cursor struct {
	node   ast.Node
	kind   Kind
	parent ast.Node
	fn     ast.Node
	slot   slot

	replaced    bool
	replacement []ast.Node
	before      []ast.Statement
	after       []ast.Statement
	skip        bool
}

// Node returns the node being visited. Its fields may be mutated in place.
func (c *Cursor) Node() ast.Node { return c.node }

// Kind returns the kind the node was dispatched under.
func (c *Cursor) Kind() Kind { return c.kind }

// Parent returns the node that owns the current node.
func (c *Cursor) Parent() ast.Node { return c.parent }

// Function returns the innermost function enclosing the current node, or nil
// at the top level.
func (c *Cursor) Function() ast.Node { return c.fn }

// InStatementList reports whether the node is an element of a statement list.
func (c *Cursor) InStatementList() bool { return c.slot.kind == slotStatementList }

// SkipChildren stops the walker from descending into the current node.
func (c *Cursor) SkipChildren() { c.skip = true }

// Replace substitutes the current node with zero or more nodes.
//
// Statement and expression list elements accept any number of nodes of the
// matching type. A single statement slot wraps several statements in a block
// and turns zero statements into an empty statement; labelled statements
// only accept zero or one replacement. A single expression slot accepts
// exactly one expression. Replace reports whether the edit was accepted.
func (c *Cursor) Replace(nodes ...ast.Node) bool {
	if c.replaced {
		return false
	}
	switch c.slot.kind {
	case slotStatementList, slotStatement:
		if _, ok := toStatements(nodes); !ok {
			return false
		}
		if c.slot.labelled && len(nodes) > 1 {
			return false
		}
	case slotExpressionList:
		if _, ok := toExpressions(nodes); !ok {
			return false
		}
	case slotExpression:
		if len(nodes) != 1 {
			return false
		}
		expr, ok := nodes[0].(ast.Expression)
		if !ok || !c.slot.setExpr(expr) {
			return false
		}
	default:
		return false
	}
	c.replaced = true
	c.replacement = nodes
	return true
}

// ReplaceStatements is Replace for statement cursors.
func (c *Cursor) ReplaceStatements(stmts ...ast.Statement) bool {
	nodes := make([]ast.Node, len(stmts))
	for i, s := range stmts {
		nodes[i] = s
	}
	return c.Replace(nodes...)
}

// Remove deletes the current node from its parent.
func (c *Cursor) Remove() bool {
	return c.Replace()
}

// InsertBefore places statements immediately before the current statement.
// Only statement cursors accept insertions; a single statement slot is
// turned into a block to make room.
func (c *Cursor) InsertBefore(stmts ...ast.Statement) bool {
	if !c.canInsert() {
		return false
	}
	c.before = append(c.before, stmts...)
	return true
}

// InsertAfter places statements immediately after the current statement.
func (c *Cursor) InsertAfter(stmts ...ast.Statement) bool {
	if !c.canInsert() {
		return false
	}
	c.after = append(c.after, stmts...)
	return true
}

func (c *Cursor) canInsert() bool {
	switch c.slot.kind {
	case slotStatementList:
		return true
	case slotStatement:
		return !c.slot.labelled
	}
	return false
}

func (c *Cursor) edited() bool {
	return c.replaced || len(c.before) > 0 || len(c.after) > 0
}

// statements returns the statement sequence that takes the place of the
// visited statement: inserted statements around either the replacement or
// the original.
func (c *Cursor) statements(original ast.Statement) []ast.Statement {
	out := make([]ast.Statement, 0, len(c.before)+len(c.replacement)+len(c.after)+1)
	out = append(out, c.before...)
	if c.replaced {
		stmts, _ := toStatements(c.replacement)
		out = append(out, stmts...)
	} else {
		out = append(out, original)
	}
	return append(out, c.after...)
}

func toStatements(nodes []ast.Node) ([]ast.Statement, bool) {
	out := make([]ast.Statement, 0, len(nodes))
	for _, n := range nodes {
		s, ok := n.(ast.Statement)
		if !ok || s == nil {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

func toExpressions(nodes []ast.Node) ([]ast.Expression, bool) {
	out := make([]ast.Expression, 0, len(nodes))
	for _, n := range nodes {
		e, ok := n.(ast.Expression)
		if !ok || e == nil {
			return nil, false
		}
		out = append(out, e)
	}
	return out, true
}

// collapse turns a statement sequence back into a single statement for a
// slot that holds exactly one.
func collapse(stmts []ast.Statement) ast.Statement {
	switch len(stmts) {
	case 0:
		return &ast.EmptyStatement{}
	case 1:
		return stmts[0]
	}
	return &ast.BlockStatement{List: stmts}
}
