// Package stylesheet loads hierarchical style documents into an immutable
// rule table and resolves rules to concrete typed values on demand.
//
// A document maps style names to rule mappings. Rule values are plain
// scalars, ${...} expression literals, !!font(...) / !!color(...) typed
// literals, or conditional mappings from guard expressions to any of the
// above. A style inherits another style's rules through the "<<" merge key.
package stylesheet

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
	yaml "gopkg.in/yaml.v3"

	"stylist/expression"
)

const (
	mergeKey   = "<<"
	exprOpen   = "${"
	exprClose  = "}"
	fontToken  = "!!font"
	colorToken = "!!color"
)

// Loader parses stylesheet documents. The evaluator is required because a
// font literal's size argument may be an expression resolved during load.
type Loader struct {
	ev  *expression.Evaluator
	log *zap.Logger
}

func NewLoader(ev *expression.Evaluator, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{ev: ev, log: log.Named("stylesheet")}
}

// Load parses document text into a fresh rule table. There is no caching and
// no incremental update: every call rebuilds the table from scratch, so
// holders of a previously returned Stylesheet are never invalidated.
func (l *Loader) Load(data []byte) (*Stylesheet, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &MalformedDocumentError{Msg: err.Error()}
	}
	doc := &root
	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			return nil, &MalformedDocumentError{Msg: "document is empty"}
		}
		doc = deref(doc.Content[0])
	}
	if doc == nil || doc.Kind != yaml.MappingNode {
		return nil, &MalformedDocumentError{Msg: "document root is not a mapping"}
	}

	sheet := &Stylesheet{Styles: make(map[string]Style, len(doc.Content)/2)}
	for i := 0; i+1 < len(doc.Content); i += 2 {
		name := doc.Content[i].Value
		def := deref(doc.Content[i+1])
		if def == nil || def.Kind != yaml.MappingNode {
			return nil, &MalformedDocumentError{Msg: fmt.Sprintf("style %q is not a mapping", name)}
		}
		style, err := l.loadStyle(name, def, sheet)
		if err != nil {
			return nil, err
		}
		sheet.Styles[name] = style
		l.log.Debug("Loaded style", zap.String("style", name), zap.Int("rules", len(style)))
	}
	return sheet, nil
}

// loadStyle builds one style's rule table: inherited rules first, then local
// entries in document order, so a local rule overrides an inherited one of
// the same name.
func (l *Loader) loadStyle(name string, def *yaml.Node, sheet *Stylesheet) (Style, error) {
	style := make(Style, len(def.Content)/2)
	for i := 0; i+1 < len(def.Content); i += 2 {
		if def.Content[i].Value != mergeKey {
			continue
		}
		base := deref(def.Content[i+1])
		if base == nil || base.Kind != yaml.MappingNode {
			return nil, &MalformedDocumentError{Msg: fmt.Sprintf("style %q: inherited value is not a mapping", name)}
		}
		for j := 0; j+1 < len(base.Content); j += 2 {
			key := base.Content[j].Value
			rule, err := l.parseRule(key, deref(base.Content[j+1]), sheet)
			if err != nil {
				return nil, err
			}
			style[key] = rule
		}
	}
	for i := 0; i+1 < len(def.Content); i += 2 {
		key := def.Content[i].Value
		if key == mergeKey {
			continue
		}
		rule, err := l.parseRule(key, deref(def.Content[i+1]), sheet)
		if err != nil {
			return nil, err
		}
		style[key] = rule
	}
	return style, nil
}

func (l *Loader) parseRule(key string, node *yaml.Node, sheet *Stylesheet) (*Rule, error) {
	rule := &Rule{Key: key}
	if err := l.parseValue(rule, node, sheet); err != nil {
		return nil, err
	}
	return rule, nil
}

// parseValue dispatches on the node shape: mappings are conditional values,
// scalars are typed by their tag, anything else stays undefined.
func (l *Loader) parseValue(r *Rule, node *yaml.Node, sheet *Stylesheet) error {
	if node == nil {
		r.Kind = KindUndefined
		return nil
	}
	switch node.Kind {
	case yaml.MappingNode:
		return l.parseConditional(r, node, sheet)
	case yaml.ScalarNode:
		return l.parseScalar(r, node, sheet)
	default:
		l.log.Debug("Unsupported value shape", zap.String("rule", r.Key))
		r.Kind = KindUndefined
		return nil
	}
}

func (l *Loader) parseScalar(r *Rule, node *yaml.Node, sheet *Stylesheet) error {
	switch node.Tag {
	case "!!bool":
		b, err := strconv.ParseBool(strings.ToLower(node.Value))
		if err != nil {
			w := fmt.Sprintf("rule %q: unsupported boolean spelling %q", r.Key, node.Value)
			sheet.Warnings = append(sheet.Warnings, w)
			l.log.Warn("Unsupported boolean spelling", zap.String("rule", r.Key), zap.String("value", node.Value))
			r.Kind = KindUndefined
			return nil
		}
		r.Kind = KindBool
		r.Bool = b
	case "!!int":
		n, err := strconv.ParseInt(node.Value, 0, 64)
		if err != nil {
			return &MalformedDocumentError{Msg: fmt.Sprintf("rule %q: bad integer %q", r.Key, node.Value)}
		}
		r.Kind = KindNumber
		r.Number = float64(n)
	case "!!float":
		n, err := strconv.ParseFloat(node.Value, 64)
		if err != nil {
			return &MalformedDocumentError{Msg: fmt.Sprintf("rule %q: bad number %q", r.Key, node.Value)}
		}
		r.Kind = KindNumber
		r.Number = n
	case "!!str":
		return l.parseString(r, node.Value)
	default:
		// An unquoted typed literal reaches us tokenized as a custom tag:
		// "!!font(Helvetica, 12)" arrives as tag "!!font(Helvetica," with
		// value "12)". Reassemble the literal text and parse it like the
		// quoted form. This only gets a chance when the argument text is
		// made of YAML tag characters: '#' and '$'/'{' are not, so color
		// literals with a '#' hex and expression arguments must be quoted
		// (the YAML scanner rejects them before we see a node).
		if strings.HasPrefix(node.Tag, fontToken+"(") || strings.HasPrefix(node.Tag, colorToken+"(") {
			s := node.Tag
			if node.Value != "" {
				s += " " + node.Value
			}
			return l.parseString(r, s)
		}
		r.Kind = KindUndefined
	}
	return nil
}

// parseString recognizes, in order: an expression literal, a font literal, a
// color literal, and finally a plain string.
func (l *Loader) parseString(r *Rule, s string) error {
	if body, ok := expressionBody(s); ok {
		x, err := expression.Compile(body)
		if err != nil {
			return &MalformedDocumentError{Msg: fmt.Sprintf("rule %q: %v", r.Key, err)}
		}
		r.Kind = KindExpression
		r.Expr = x
		return nil
	}
	if strings.HasPrefix(s, fontToken+"(") {
		args, err := callArguments(s, fontToken, 2)
		if err != nil {
			return err
		}
		return l.parseFont(r, args)
	}
	if strings.HasPrefix(s, colorToken+"(") {
		args, err := callArguments(s, colorToken, 1)
		if err != nil {
			return err
		}
		r.Kind = KindColor
		r.Color = NewColorDescriptor(strings.Trim(args[0], `"'`))
		return nil
	}
	r.Kind = KindString
	r.Str = s
	return nil
}

func (l *Loader) parseFont(r *Rule, args []string) error {
	size, err := l.number(r.Key, args[1])
	if err != nil {
		return err
	}
	family := strings.Trim(args[0], `"'`)
	r.Kind = KindFont
	if strings.EqualFold(family, "system") {
		r.Font = FontDescriptor{System: true, Size: size}
	} else {
		r.Font = FontDescriptor{Family: family, Size: size}
	}
	return nil
}

// number resolves a literal argument that is either a plain numeral or a
// nested expression literal.
func (l *Loader) number(key, s string) (float64, error) {
	if body, ok := expressionBody(s); ok {
		x, err := expression.Compile(body)
		if err != nil {
			return 0, &MalformedDocumentError{Msg: fmt.Sprintf("rule %q: %v", key, err)}
		}
		v, err := l.ev.Evaluate(x)
		if err != nil {
			l.log.Warn("Literal argument evaluation failed", zap.String("rule", key), zap.Error(err))
		}
		return v, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &MalformedDocumentError{Msg: fmt.Sprintf("rule %q: bad numeric argument %q", key, s)}
	}
	return v, nil
}

// expressionBody strips the ${...} delimiters, reporting whether s is an
// expression literal at all.
func expressionBody(s string) (string, bool) {
	if len(s) > len(exprOpen) && strings.HasPrefix(s, exprOpen) && strings.HasSuffix(s, exprClose) {
		return s[len(exprOpen) : len(s)-len(exprClose)], true
	}
	return "", false
}

// callArguments extracts the comma-separated arguments of a typed literal
// call and enforces the argument count. Commas nested in braces or parens
// (an expression argument) do not split.
func callArguments(s, fn string, want int) ([]string, error) {
	open := strings.IndexByte(s, '(')
	end := strings.LastIndexByte(s, ')')
	if open < 0 || end < open {
		return nil, &MalformedDocumentError{Msg: fmt.Sprintf("%s: missing argument list", fn)}
	}
	args := splitArguments(s[open+1 : end])
	if len(args) != want {
		return nil, &IllegalArgumentCountError{Fn: strings.TrimPrefix(fn, "!!"), Got: len(args), Want: want}
	}
	return args, nil
}

func splitArguments(body string) []string {
	if strings.TrimSpace(body) == "" {
		return nil
	}
	var (
		args  []string
		depth int
		start int
	)
	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '(', '{':
			depth++
		case ')', '}':
			depth--
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(body[start:i]))
				start = i + 1
			}
		}
	}
	return append(args, strings.TrimSpace(body[start:]))
}

// deref follows YAML alias nodes, so anchors work both for inherited styles
// and for repeated values.
func deref(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}
