package transformer

import (
	"github.com/dop251/goja/ast"
)

// ParentTracker keeps the chain of ancestors of the node being visited.
// The walker pushes a node before descending into its children and pops it
// afterwards, so the top of the stack is always the current parent.
type ParentTracker struct {
	stack []ast.Node
}

func (pt *ParentTracker) push(n ast.Node) {
	pt.stack = append(pt.stack, n)
}

func (pt *ParentTracker) pop() {
	pt.stack = pt.stack[:len(pt.stack)-1]
}

// Parent returns the innermost ancestor, or nil at the top level.
func (pt *ParentTracker) Parent() ast.Node {
	if len(pt.stack) == 0 {
		return nil
	}
	return pt.stack[len(pt.stack)-1]
}

// Function returns the innermost enclosing function node.
func (pt *ParentTracker) Function() ast.Node {
	for i := len(pt.stack) - 1; i >= 0; i-- {
		switch pt.stack[i].(type) {
		case *ast.FunctionDeclaration, *ast.FunctionLiteral, *ast.ArrowFunctionLiteral:
			return pt.stack[i]
		}
	}
	return nil
}

// Depth returns the number of ancestors currently tracked.
func (pt *ParentTracker) Depth() int {
	return len(pt.stack)
}
