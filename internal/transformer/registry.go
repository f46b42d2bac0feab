package transformer

import (
	"fmt"
	"strings"

	"github.com/dop251/goja/ast"
)

// Rule names, in their canonical pipeline order.
const (
	RuleStripParamDefaults           = "strip-param-defaults"
	RuleUnwrapMarkerCalls            = "unwrap-marker-calls"
	RuleInlineEmptyCallees           = "inline-empty-callees"
	RuleHoistCallAssignments         = "hoist-call-assignments"
	RuleEliminatePureAssignmentCalls = "eliminate-pure-assignment-calls"
	RuleStripDeclarations            = "strip-declarations"
)

// Rule is one obfuscation-undoing rewrite over a whole program.
type Rule interface {
	Name() string
	Description() string
	// Apply rewrites program in place and returns the number of rewrites.
	Apply(program *ast.Program, diag *Diagnostics) int
}

// RuleOptions carries the tunables of the built-in rules.
type RuleOptions struct {
	MarkerName     string
	ParamPrefix    string
	RequireBinding bool
}

// DefaultRuleOptions returns the options matching the default configuration.
func DefaultRuleOptions() RuleOptions {
	return RuleOptions{
		MarkerName:     "FunctionEmpty",
		ParamPrefix:    "param",
		RequireBinding: true,
	}
}

// DefaultRules returns every built-in rule in canonical order.
func DefaultRules(opts RuleOptions) []Rule {
	return []Rule{
		NewParamDefaultStripper(),
		NewMarkerUnwrapper(opts.MarkerName),
		NewEmptyCalleeInliner(opts.ParamPrefix, opts.RequireBinding),
		NewCallArgumentHoister(),
		NewPureCallEliminator(),
		NewDeclarationStripper(),
	}
}

// Registry is an ordered set of uniquely named rules.
type Registry struct {
	rules  []Rule
	byName map[string]Rule
}

// NewRegistry builds a registry, rejecting duplicate or empty names.
func NewRegistry(rules ...Rule) (*Registry, error) {
	r := &Registry{byName: make(map[string]Rule, len(rules))}
	for _, rule := range rules {
		name := rule.Name()
		if name == "" {
			return nil, fmt.Errorf("rule %T has an empty name", rule)
		}
		if _, dup := r.byName[name]; dup {
			return nil, fmt.Errorf("duplicate rule name %q", name)
		}
		r.byName[name] = rule
		r.rules = append(r.rules, rule)
	}
	return r, nil
}

// Rules returns the registered rules in registration order.
func (r *Registry) Rules() []Rule {
	return append([]Rule(nil), r.rules...)
}

// Names returns the registered rule names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.rules))
	for i, rule := range r.rules {
		names[i] = rule.Name()
	}
	return names
}

// Lookup finds a rule by name.
func (r *Registry) Lookup(name string) (Rule, bool) {
	rule, ok := r.byName[name]
	return rule, ok
}

// Select returns the named rules in the order given.
func (r *Registry) Select(names []string) ([]Rule, error) {
	selected := make([]Rule, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		rule, ok := r.byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown rule %q (available: %s)", name, strings.Join(r.Names(), ", "))
		}
		if seen[name] {
			return nil, fmt.Errorf("rule %q selected twice", name)
		}
		seen[name] = true
		selected = append(selected, rule)
	}
	return selected, nil
}
