// Package cel evaluates CEL expressions over search results. The document
// being evaluated is bound to the variable "_".
package cel

import (
	"fmt"
	"sort"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	celext "github.com/google/cel-go/ext"
)

// Evaluator compiles and evaluates CEL expressions.
type Evaluator struct {
	env *cel.Env
}

// NewEvaluator creates an evaluator with the strings, encoders, lists and
// math extensions enabled.
func NewEvaluator() (*Evaluator, error) {
	env, err := cel.NewEnv(
		cel.Variable("_", cel.DynType),
		celext.Strings(),
		celext.Encoders(),
		celext.Lists(),
		celext.Math(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	return &Evaluator{env: env}, nil
}

// Program is a compiled expression, reusable across documents.
type Program struct {
	prg cel.Program
}

// Compile parses and type-checks expr.
func (e *Evaluator) Compile(expr string) (*Program, error) {
	ast, issues := e.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compilation error: %w", issues.Err())
	}
	prg, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %w", err)
	}
	return &Program{prg: prg}, nil
}

// Eval runs the program with data bound to "_" and converts the result back
// to plain Go values.
func (p *Program) Eval(data any) (any, error) {
	result, _, err := p.prg.Eval(map[string]any{"_": data})
	if err != nil {
		return nil, fmt.Errorf("eval error: %w", err)
	}
	return ToGo(result), nil
}

// Evaluate compiles and runs expr against data in one step.
func (e *Evaluator) Evaluate(expr string, data any) (any, error) {
	p, err := e.Compile(expr)
	if err != nil {
		return nil, err
	}
	return p.Eval(data)
}

// ToGo converts CEL values to Go values recursively. Maps come back as
// map[string]any with stringified keys.
func ToGo(val ref.Val) any {
	if val == nil {
		return nil
	}

	switch v := val.(type) {
	case types.Bool:
		return bool(v)
	case types.Int:
		return int64(v)
	case types.Uint:
		return uint64(v)
	case types.Double:
		return float64(v)
	case types.String:
		return string(v)
	case types.Bytes:
		return []byte(v)
	case types.Null:
		return nil
	}

	valuer, ok := val.(interface{ Value() any })
	if !ok {
		return val
	}
	return convert(valuer.Value())
}

func convert(v any) any {
	switch inner := v.(type) {
	case ref.Val:
		return ToGo(inner)
	case []ref.Val:
		out := make([]any, len(inner))
		for i, elem := range inner {
			out[i] = ToGo(elem)
		}
		return out
	case []any:
		out := make([]any, len(inner))
		for i, elem := range inner {
			out[i] = convert(elem)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(inner))
		for k, elem := range inner {
			out[k] = convert(elem)
		}
		return out
	case map[ref.Val]ref.Val:
		out := make(map[string]any, len(inner))
		for k, elem := range inner {
			out[fmt.Sprint(convert(k))] = ToGo(elem)
		}
		return out
	default:
		return v
	}
}

// Functions lists the non-operator functions and macros available to
// expressions, sorted.
func (e *Evaluator) Functions() []string {
	seen := make(map[string]bool)
	for _, fn := range e.env.Functions() {
		if !isOperator(fn.Name()) {
			seen[fn.Name()] = true
		}
	}
	for _, m := range e.env.Macros() {
		if !isOperator(m.Function()) {
			seen[m.Function()] = true
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func isOperator(name string) bool {
	if name == "" || name[0] == '@' {
		return true
	}
	if name[0] == '_' && name[len(name)-1] == '_' {
		return true
	}
	return name == "!_" || name == "-_"
}
