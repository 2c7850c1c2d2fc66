package stylesheet

import (
	"fmt"
	"math"
	"slices"
	"sync"

	"go.uber.org/zap"

	"stylist/expression"
)

// Diagnostic codes. Lookups never fail: they degrade to the caller's default
// and leave one of these behind.
const (
	DiagTypeMismatch = "type-mismatch"
	DiagNoMatch      = "no-match"
	DiagEvaluation   = "evaluation"
)

// Diagnostic records one degraded lookup.
type Diagnostic struct {
	Code   string
	Rule   string
	Detail string
}

// Resolver reads rules as concrete typed values. A lookup whose rule kind
// does not fit the requested type, whose conditional matches no branch, or
// whose expression fails to evaluate returns the supplied default and records
// a Diagnostic; it never fails outward. Safe for concurrent use.
type Resolver struct {
	ev  *expression.Evaluator
	log *zap.Logger

	mu    sync.Mutex
	diags []Diagnostic
}

func NewResolver(ev *expression.Evaluator, log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{ev: ev, log: log.Named("resolver")}
}

// Diagnostics returns a copy of everything recorded so far.
func (r *Resolver) Diagnostics() []Diagnostic {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.diags)
}

func (r *Resolver) report(code, rule, detail string) {
	r.log.Warn("Rule lookup degraded", zap.String("code", code), zap.String("rule", rule), zap.String("detail", detail))
	r.mu.Lock()
	r.diags = append(r.diags, Diagnostic{Code: code, Rule: rule, Detail: detail})
	r.mu.Unlock()
}

func (r *Resolver) mismatch(rule *Rule, want string) {
	r.report(DiagTypeMismatch, rule.Key, fmt.Sprintf("requested %s, rule kind is %s", want, rule.Kind))
}

// Float resolves the rule as a number.
func (r *Resolver) Float(rule *Rule, def float64) float64 {
	if rule == nil {
		return def
	}
	if rule.Kind != KindNumber && rule.Kind != KindExpression {
		r.mismatch(rule, "number")
		return def
	}
	if rule.Conditional {
		m, ok := r.matchBranch(rule)
		if !ok {
			r.report(DiagNoMatch, rule.Key, "no conditional branch matched")
			return def
		}
		return r.Float(m, def)
	}
	if rule.Kind == KindExpression {
		v, err := r.ev.Evaluate(rule.Expr)
		if err != nil {
			r.report(DiagEvaluation, rule.Key, err.Error())
		}
		return v
	}
	return rule.Number
}

// Int resolves the rule as an integer, rounding half away from zero.
func (r *Resolver) Int(rule *Rule, def int) int {
	return int(math.Round(r.Float(rule, float64(def))))
}

// Bool resolves the rule as a boolean; expression results are true when
// non-zero.
func (r *Resolver) Bool(rule *Rule, def bool) bool {
	if rule == nil {
		return def
	}
	if rule.Kind != KindBool && rule.Kind != KindExpression {
		r.mismatch(rule, "bool")
		return def
	}
	if rule.Conditional {
		m, ok := r.matchBranch(rule)
		if !ok {
			r.report(DiagNoMatch, rule.Key, "no conditional branch matched")
			return def
		}
		return r.Bool(m, def)
	}
	if rule.Kind == KindExpression {
		v, err := r.ev.Evaluate(rule.Expr)
		if err != nil {
			r.report(DiagEvaluation, rule.Key, err.Error())
		}
		return v != 0
	}
	return rule.Bool
}

// String resolves the rule as a string.
func (r *Resolver) String(rule *Rule, def string) string {
	if rule == nil {
		return def
	}
	if rule.Kind != KindString {
		r.mismatch(rule, "string")
		return def
	}
	if rule.Conditional {
		m, ok := r.matchBranch(rule)
		if !ok {
			r.report(DiagNoMatch, rule.Key, "no conditional branch matched")
			return def
		}
		return r.String(m, def)
	}
	return rule.Str
}

// Font resolves the rule as a font descriptor.
func (r *Resolver) Font(rule *Rule, def FontDescriptor) FontDescriptor {
	if rule == nil {
		return def
	}
	if rule.Kind != KindFont {
		r.mismatch(rule, "font")
		return def
	}
	if rule.Conditional {
		m, ok := r.matchBranch(rule)
		if !ok {
			r.report(DiagNoMatch, rule.Key, "no conditional branch matched")
			return def
		}
		return r.Font(m, def)
	}
	return rule.Font
}

// Color resolves the rule as a color descriptor.
func (r *Resolver) Color(rule *Rule, def ColorDescriptor) ColorDescriptor {
	if rule == nil {
		return def
	}
	if rule.Kind != KindColor {
		r.mismatch(rule, "color")
		return def
	}
	if rule.Conditional {
		m, ok := r.matchBranch(rule)
		if !ok {
			r.report(DiagNoMatch, rule.Key, "no conditional branch matched")
			return def
		}
		return r.Color(m, def)
	}
	return rule.Color
}
