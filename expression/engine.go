// Package expression compiles and evaluates the arithmetic/boolean
// sub-language embedded in stylesheet rule values. Compiled expressions are
// bound to a fixed constant table and a small set of symbols resolved from
// the current runtime environment on every evaluation.
package expression

import (
	"fmt"
	"maps"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"go.uber.org/zap"
)

// Expression is a compiled, reusable expression. It holds no environment
// state and is safe for concurrent evaluation.
type Expression struct {
	Source string

	program *vm.Program
}

// Compile parses and compiles expression text. Symbols are not checked here:
// an unknown name surfaces as an evaluation failure, not a compile error,
// since environment symbols only exist at evaluation time.
func Compile(source string) (*Expression, error) {
	program, err := expr.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("compiling %q: %w", source, err)
	}
	return &Expression{Source: source, program: program}, nil
}

// Evaluator evaluates compiled expressions against an Environment.
type Evaluator struct {
	env Environment
	log *zap.Logger
}

func NewEvaluator(env Environment, log *zap.Logger) *Evaluator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Evaluator{env: env, log: log.Named("expression")}
}

// Evaluate runs the expression and reduces the result to a number, booleans
// becoming 0 or 1. It always returns a usable value: on any internal failure
// the value is 0 and the error describes the failure for the caller's
// diagnostics. It never panics.
func (e *Evaluator) Evaluate(x *Expression) (float64, error) {
	if x == nil {
		return 0, fmt.Errorf("no expression")
	}
	out, err := expr.Run(x.program, e.symbols())
	if err != nil {
		e.log.Debug("expression evaluation failed", zap.String("expr", x.Source), zap.Error(err))
		return 0, fmt.Errorf("evaluating %q: %w", x.Source, err)
	}
	v, ok := toNumber(out)
	if !ok {
		err := fmt.Errorf("evaluating %q: non-numeric result %T", x.Source, out)
		e.log.Debug("expression evaluation failed", zap.String("expr", x.Source), zap.Error(err))
		return 0, err
	}
	return v, nil
}

// Truthy evaluates the expression as a condition: any non-zero result is
// true, failures are false.
func (e *Evaluator) Truthy(x *Expression) (bool, error) {
	v, err := e.Evaluate(x)
	return v != 0, err
}

// symbols assembles the evaluation environment: the shared constant table
// plus the environment symbols, re-queried on every call so that idiom or
// orientation changes between evaluations are observed.
func (e *Evaluator) symbols() map[string]any {
	env := make(map[string]any, len(constants)+8)
	maps.Copy(env, constants)
	if e.env != nil {
		env["idiom"] = float64(e.env.Idiom())
		env["orientation"] = float64(e.env.Orientation())
		env["horizontalSizeClass"] = float64(e.env.HorizontalSizeClass())
		env["verticalSizeClass"] = float64(e.env.VerticalSizeClass())
		if vp, ok := e.env.(VariableProvider); ok {
			maps.Copy(env, vp.Variables())
		}
	}
	return env
}

func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
