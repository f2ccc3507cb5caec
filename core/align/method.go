package align

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/FocuswithJustin/JuniperAlign/core/errors"
)

// Selector is a parsed method selector such as "gale-church(variance=7.2)".
type Selector struct {
	Method Method
	Params []Param
}

// Param is one key=value override in a selector.
type Param struct {
	Key   string
	Value float64
}

type selectorAST struct {
	Name   string      `parser:"@Ident"`
	Params []*paramAST `parser:"( \"(\" ( @@ ( \",\" @@ )* )? \")\" )?"`
}

type paramAST struct {
	Key   string  `parser:"@Ident \"=\""`
	Value float64 `parser:"@Number"`
}

var methodLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Ident", Pattern: `[A-Za-z][A-Za-z0-9_-]*`},
	{Name: "Number", Pattern: `[-+]?(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?`},
	{Name: "Punct", Pattern: `[(),=]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var methodParser = participle.MustBuild[selectorAST](
	participle.Lexer(methodLexer),
	participle.Elide("Whitespace"),
)

// ParseMethod parses a method selector. Supported forms:
//   - "" (DefaultMethod)
//   - "gale-church" or "gale_church"
//   - "gale-church(ratio=1.1, variance=7.2, indel=450, expand=230, meld=440, max_cost=2500)"
func ParseMethod(s string) (Selector, error) {
	if strings.TrimSpace(s) == "" {
		return Selector{Method: DefaultMethod}, nil
	}

	ast, err := methodParser.ParseString("", s)
	if err != nil {
		return Selector{}, &errors.ParseError{Format: "method", Message: err.Error(), Err: err}
	}

	m, err := Lookup(ast.Name)
	if err != nil {
		return Selector{}, err
	}

	sel := Selector{Method: m}
	for _, p := range ast.Params {
		key := strings.ToLower(p.Key)
		if _, ok := modelSetters[key]; !ok {
			return Selector{}, errors.NewInvalidMethod(s, fmt.Sprintf("unknown parameter %q", p.Key))
		}
		sel.Params = append(sel.Params, Param{Key: key, Value: p.Value})
	}
	return sel, nil
}

// Apply returns model with the selector's parameters applied in order.
func (s Selector) Apply(model Model) (Model, error) {
	for _, p := range s.Params {
		set, ok := modelSetters[p.Key]
		if !ok {
			return model, errors.NewInvalidMethod(s.String(), fmt.Sprintf("unknown parameter %q", p.Key))
		}
		if !set(&model, p.Value) {
			return model, errors.NewValidation(p.Key, fmt.Sprintf("%g is out of range", p.Value))
		}
	}
	return model, model.Validate()
}

// String returns the canonical selector text.
func (s Selector) String() string {
	if len(s.Params) == 0 {
		return string(s.Method)
	}
	parts := make([]string, len(s.Params))
	for i, p := range s.Params {
		parts[i] = p.Key + "=" + strconv.FormatFloat(p.Value, 'g', -1, 64)
	}
	return string(s.Method) + "(" + strings.Join(parts, ", ") + ")"
}

var modelSetters = map[string]func(*Model, float64) bool{
	"ratio":    func(m *Model, v float64) bool { m.Ratio = v; return true },
	"variance": func(m *Model, v float64) bool { m.Variance = v; return true },
	"indel":    func(m *Model, v float64) bool { return setInt(&m.PenaltyIndel, v) },
	"expand":   func(m *Model, v float64) bool { return setInt(&m.PenaltyExpand, v) },
	"meld":     func(m *Model, v float64) bool { return setInt(&m.PenaltyMeld, v) },
	"max_cost": func(m *Model, v float64) bool { return setInt(&m.MaxCost, v) },
}

// setInt rounds v into dst. Values outside [-MaxPenalty, MaxPenalty] are
// rejected before conversion; Validate reports the sign.
func setInt(dst *int, v float64) bool {
	r := math.Round(v)
	if !(r >= -MaxPenalty && r <= MaxPenalty) {
		return false
	}
	*dst = int(r)
	return true
}
