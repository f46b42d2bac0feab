package transformer

import (
	"fmt"

	"github.com/dop251/goja/ast"
	"go.uber.org/zap"

	"github.com/whit3rabbit/jsunmixer/internal/syntax"
)

// Violation records a node a rule recognised but could not rewrite. The
// node is left untouched and the run continues.
type Violation struct {
	Rule     string
	Kind     Kind
	Position syntax.Position
	Reason   string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s at %s: %s", v.Rule, v.Kind, v.Position, v.Reason)
}

// Diagnostics collects violations for one run and mirrors them to the logger.
type Diagnostics struct {
	logger     *zap.Logger
	source     string
	violations []Violation
	warned     map[string]bool
}

// NewDiagnostics creates a collector for the given source text. A nil logger
// discards log output.
func NewDiagnostics(logger *zap.Logger, source string) *Diagnostics {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Diagnostics{
		logger: logger.Named("rules"),
		source: source,
		warned: make(map[string]bool),
	}
}

// Report records that rule skipped node for the given reason.
func (d *Diagnostics) Report(rule string, node ast.Node, reason string) {
	v := Violation{
		Rule:     rule,
		Kind:     KindOf(node),
		Position: syntax.PositionOf(d.source, node),
		Reason:   reason,
	}
	d.violations = append(d.violations, v)
	d.logger.Warn("rule skipped node",
		zap.String("rule", rule),
		zap.String("kind", v.Kind.String()),
		zap.Int("line", v.Position.Line),
		zap.Int("column", v.Position.Column),
		zap.String("reason", reason),
	)
}

// WarnOnce logs msg for rule the first time it is called in this run.
func (d *Diagnostics) WarnOnce(rule, msg string) {
	if d.warned[rule] {
		return
	}
	d.warned[rule] = true
	d.logger.Warn(msg, zap.String("rule", rule))
}

// Rewrote logs a single rewrite at debug level.
func (d *Diagnostics) Rewrote(rule string, node ast.Node, what string) {
	if ce := d.logger.Check(zap.DebugLevel, what); ce != nil {
		pos := syntax.PositionOf(d.source, node)
		ce.Write(zap.String("rule", rule), zap.String("at", pos.String()))
	}
}

// Violations returns the violations recorded so far.
func (d *Diagnostics) Violations() []Violation {
	return d.violations
}
