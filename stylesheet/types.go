package stylesheet

import (
	"strings"

	"stylist/expression"
)

// ValueKind discriminates what a rule's value slot holds.
type ValueKind int

const (
	KindUndefined ValueKind = iota
	KindExpression
	KindBool
	KindNumber
	KindString
	KindFont
	KindColor
)

func (k ValueKind) String() string {
	switch k {
	case KindExpression:
		return "expression"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindFont:
		return "font"
	case KindColor:
		return "color"
	default:
		return "undefined"
	}
}

// FontDescriptor names a font without resolving it: either the platform
// system font or a family by name, at a point size.
type FontDescriptor struct {
	Family string // empty when System is set
	System bool
	Size   float64
}

// ColorDescriptor carries a color as normalized hex digits, no leading '#'.
type ColorDescriptor struct {
	Hex string
}

func NewColorDescriptor(hex string) ColorDescriptor {
	return ColorDescriptor{Hex: strings.ToUpper(strings.TrimPrefix(hex, "#"))}
}

// ConditionalBranch is one (guard, value) pair of a conditional rule.
// Branches are stored in evaluation order: every non-fallback branch is
// prepended as encountered, the fallback is appended, so the fallback is
// always last and only reached when nothing else matched.
type ConditionalBranch struct {
	Source   string // guard text, without the ${...} delimiters
	Cond     *expression.Expression
	Fallback bool // guard text contains "default"; matches unconditionally
	Value    *Rule
}

// Rule is one named value definition inside a style. Kind discriminates
// which store field is meaningful. Rules are built once during Load and are
// immutable afterwards.
type Rule struct {
	Key         string
	Kind        ValueKind
	Conditional bool

	Bool     bool
	Number   float64
	Str      string
	Expr     *expression.Expression
	Font     FontDescriptor
	Color    ColorDescriptor
	Branches []ConditionalBranch
}

// Style is one named collection of rules, keyed by rule name.
type Style map[string]*Rule

// Stylesheet is the loaded rule table: style name to rule name to rule.
// Warnings collects tolerated oddities found during load.
type Stylesheet struct {
	Styles   map[string]Style
	Warnings []string
}

// Rule returns the named rule or nil when either the style or the rule does
// not exist.
func (s *Stylesheet) Rule(style, name string) *Rule {
	if s == nil {
		return nil
	}
	return s.Styles[style][name]
}
