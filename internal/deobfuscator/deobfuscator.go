// Package deobfuscator drives the rewrite pipeline: it parses a script, runs
// the configured rules over the tree and prints the result.
package deobfuscator

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dop251/goja/ast"
	"go.uber.org/zap"

	"github.com/whit3rabbit/jsunmixer/internal/config"
	"github.com/whit3rabbit/jsunmixer/internal/printer"
	"github.com/whit3rabbit/jsunmixer/internal/syntax"
	"github.com/whit3rabbit/jsunmixer/internal/transformer"
)

// Context holds what is shared by every file processed in one invocation:
// the configuration and the ordered rules it selects. A Context may be
// reused for many files, one after the other.
type Context struct {
	Config   *config.Config
	Registry *transformer.Registry
	Rules    []transformer.Rule
	Silent   bool // Inherited from config for convenience

	logger *zap.Logger
}

// Result describes one pipeline run.
type Result struct {
	Code        string
	Passes      int
	Rewrites    map[string]int // rule name -> total rewrites over all passes
	Diagnostics []transformer.Violation
}

// Total returns the number of rewrites made by all rules.
func (r *Result) Total() int {
	n := 0
	for _, c := range r.Rewrites {
		n += c
	}
	return n
}

// RoundTripError reports generated code that does not parse again. It is
// always an internal defect and the code is never emitted.
type RoundTripError struct {
	Output string
	Err    error
}

func (e *RoundTripError) Error() string {
	return fmt.Sprintf("generated code does not re-parse: %v", e.Err)
}

func (e *RoundTripError) Unwrap() error { return e.Err }

// NewContext builds the rule registry from cfg and selects the enabled rules
// in the configured order. A nil logger discards log output.
func NewContext(cfg *config.Config, logger *zap.Logger) (*Context, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	registry, err := transformer.NewRegistry(transformer.DefaultRules(transformer.RuleOptions{
		MarkerName:     cfg.Rules.UnwrapMarkerCalls.MarkerName,
		ParamPrefix:    cfg.Rules.InlineEmptyCallees.ParamPrefix,
		RequireBinding: cfg.Rules.InlineEmptyCallees.RequireBinding,
	})...)
	if err != nil {
		return nil, fmt.Errorf("failed to build rule registry: %w", err)
	}
	rules, err := registry.Select(cfg.EnabledRules())
	if err != nil {
		return nil, fmt.Errorf("invalid pipeline order: %w", err)
	}

	return &Context{
		Config:   cfg,
		Registry: registry,
		Rules:    rules,
		Silent:   cfg.Silent,
		logger:   logger,
	}, nil
}

// Logger returns the logger the context was built with.
func (octx *Context) Logger() *zap.Logger {
	return octx.logger
}

// RuleNames returns the names of the selected rules in pipeline order.
func (octx *Context) RuleNames() []string {
	names := make([]string, len(octx.Rules))
	for i, r := range octx.Rules {
		names[i] = r.Name()
	}
	return names
}

// Transform rewrites src and returns the generated code. Syntax errors in
// the input are returned as *syntax.SyntaxError.
func (octx *Context) Transform(src string) (string, error) {
	res, err := octx.Run("", src)
	if err != nil {
		return "", err
	}
	return res.Code, nil
}

// Run parses src, applies the selected rules and generates code. With
// fixpoint iteration enabled the whole rule sequence is repeated until a
// pass makes no rewrite or the pass limit is reached.
func (octx *Context) Run(filename, src string) (*Result, error) {
	log := octx.logger.Named("pipeline")

	program, err := syntax.Parse(filename, src)
	if err != nil {
		return nil, err
	}

	diag := transformer.NewDiagnostics(octx.logger, src)
	res := &Result{Rewrites: make(map[string]int, len(octx.Rules))}

	maxPasses := 1
	if octx.Config.Pipeline.Fixpoint {
		maxPasses = octx.Config.Pipeline.MaxPasses
	}
	for res.Passes < maxPasses {
		res.Passes++
		changed := octx.runPass(program, diag, res)
		log.Debug("pass finished", zap.Int("pass", res.Passes), zap.Int("rewrites", changed))
		if changed == 0 {
			break
		}
		if res.Passes == maxPasses && octx.Config.Pipeline.Fixpoint {
			log.Warn("pass limit reached before a fixpoint", zap.Int("max_passes", maxPasses))
		}
	}

	code, err := printer.Generate(program)
	if err != nil {
		return nil, fmt.Errorf("failed to generate code: %w", err)
	}
	if octx.Config.Pipeline.VerifyRoundTrip {
		if _, err := syntax.Parse(filename, code); err != nil {
			return nil, &RoundTripError{Output: code, Err: err}
		}
	}

	res.Code = code
	res.Diagnostics = diag.Violations()
	return res, nil
}

func (octx *Context) runPass(program *ast.Program, diag *transformer.Diagnostics, res *Result) int {
	total := 0
	for _, rule := range octx.Rules {
		n := rule.Apply(program, diag)
		if n > 0 {
			octx.logger.Named("pipeline").Debug("rule applied",
				zap.String("rule", rule.Name()),
				zap.Int("rewrites", n),
			)
		}
		res.Rewrites[rule.Name()] += n
		total += n
	}
	return total
}

// ProcessFile reads a JavaScript file and returns its deobfuscated source.
func ProcessFile(filePath string, octx *Context) (string, error) {
	src, err := os.ReadFile(filePath)
	if err != nil {
		// Return error without printing to stderr here, let caller handle reporting.
		return "", fmt.Errorf("error reading file %s: %w", filePath, err)
	}

	res, err := octx.Run(filePath, string(src))
	if err != nil {
		return "", err
	}

	if !octx.Silent {
		fmt.Printf("Info: %s: %d rewrite(s) in %d pass(es)\n", filePath, res.Total(), res.Passes)
	}

	code := res.Code
	if octx.Config.Output.Header {
		code = fmt.Sprintf("// Generated from file: %s\n%s", filepath.Base(filePath), code)
	}
	return code, nil
}
