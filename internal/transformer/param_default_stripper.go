package transformer

import (
	"github.com/dop251/goja/ast"
)

// ParamDefaultStripper drops default values from function parameters,
// leaving the bare binding target in place.
type ParamDefaultStripper struct{}

func NewParamDefaultStripper() *ParamDefaultStripper {
	return &ParamDefaultStripper{}
}

func (r *ParamDefaultStripper) Name() string { return RuleStripParamDefaults }

func (r *ParamDefaultStripper) Description() string {
	return "Remove default values from function parameters"
}

func (r *ParamDefaultStripper) Apply(program *ast.Program, diag *Diagnostics) int {
	count := 0
	Visit(program, Handlers{
		KindParameter: func(c *Cursor) {
			param, ok := c.Node().(*ast.Binding)
			if !ok || param.Initializer == nil {
				return
			}
			param.Initializer = nil
			count++
			diag.Rewrote(r.Name(), param, "stripped parameter default")
		},
	})
	return count
}
