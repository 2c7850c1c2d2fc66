package stylesheet

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	yaml "gopkg.in/yaml.v3"

	"stylist/expression"
)

// parseConditional turns a mapping value into an ordered branch list. Every
// key must be an expression literal. The branch whose guard text contains
// "default" is appended so it stays last; every other branch is prepended,
// which makes storage order the evaluation order. The rule reports the kind
// of the first branch in document order; branches of other kinds are
// tolerated with a warning.
func (l *Loader) parseConditional(r *Rule, node *yaml.Node, sheet *Stylesheet) error {
	r.Conditional = true
	r.Kind = KindUndefined

	branches := make([]ConditionalBranch, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode := deref(node.Content[i])
		source, ok := expressionBody(keyNode.Value)
		if !ok {
			return &MalformedDocumentError{Msg: fmt.Sprintf("rule %q: condition %q is not an expression literal", r.Key, keyNode.Value)}
		}

		br := ConditionalBranch{Source: source}
		if strings.Contains(source, "default") {
			br.Fallback = true
		} else {
			x, err := expression.Compile(source)
			if err != nil {
				return &MalformedDocumentError{Msg: fmt.Sprintf("rule %q: %v", r.Key, err)}
			}
			br.Cond = x
		}

		value := &Rule{Key: r.Key}
		if err := l.parseValue(value, deref(node.Content[i+1]), sheet); err != nil {
			return err
		}
		br.Value = value

		if i == 0 {
			r.Kind = value.Kind
		} else if value.Kind != r.Kind {
			w := fmt.Sprintf("rule %q: conditional branch %q has kind %s, first branch declared %s", r.Key, source, value.Kind, r.Kind)
			sheet.Warnings = append(sheet.Warnings, w)
			l.log.Warn("Heterogeneous conditional value", zap.String("rule", r.Key), zap.String("branch", source),
				zap.Stringer("kind", value.Kind), zap.Stringer("declared", r.Kind))
		}

		if br.Fallback {
			branches = append(branches, br)
		} else {
			branches = append([]ConditionalBranch{br}, branches...)
		}
	}
	r.Branches = branches
	return nil
}

// matchBranch evaluates branches in stored order and returns the value of
// the first one whose guard is non-zero. Fallback branches match without
// evaluation. Guard failures count as no match and are reported through the
// resolver's diagnostics.
func (r *Resolver) matchBranch(rule *Rule) (*Rule, bool) {
	for i := range rule.Branches {
		br := &rule.Branches[i]
		if br.Fallback {
			return br.Value, true
		}
		v, err := r.ev.Evaluate(br.Cond)
		if err != nil {
			r.report(DiagEvaluation, rule.Key, err.Error())
			continue
		}
		if v != 0 {
			return br.Value, true
		}
	}
	return nil, false
}
