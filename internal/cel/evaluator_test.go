package cel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() map[string]any {
	return map[string]any{
		"total_records": 3,
		"page":          1,
		"rows": []any{
			map[string]any{"name": "Jordan Lee", "account_state_code": "TX", "distance_from_case": 0.0},
			map[string]any{"name": "Jordan Patel", "account_state_code": "TX", "distance_from_case": 17.1},
			map[string]any{"name": "Michael Jordan", "account_state_code": "IL"},
		},
	}
}

func TestEvaluate(t *testing.T) {
	e, err := NewEvaluator()
	require.NoError(t, err)

	tests := []struct {
		name string
		expr string
		want any
	}{
		{name: "field", expr: "_.total_records", want: int64(3)},
		{name: "filter map", expr: `_.rows.filter(r, r.account_state_code == "TX").map(r, r.name)`, want: []any{"Jordan Lee", "Jordan Patel"}},
		{name: "size", expr: "size(_.rows)", want: int64(3)},
		{name: "strings ext", expr: `_.rows[2].name.lowerAscii()`, want: "michael jordan"},
		{name: "map literal", expr: `{"n": _.page}`, want: map[string]any{"n": int64(1)}},
		{name: "bool", expr: `_.rows.exists(r, has(r.distance_from_case) && r.distance_from_case > 10.0)`, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Evaluate(tt.expr, sampleResult())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompileErrors(t *testing.T) {
	e, err := NewEvaluator()
	require.NoError(t, err)

	_, err = e.Compile("_.rows.filter(")
	require.ErrorContains(t, err, "compilation error")

	p, err := e.Compile("_.missing.field")
	require.NoError(t, err)
	_, err = p.Eval(map[string]any{})
	require.ErrorContains(t, err, "eval error")
}

func TestFunctions(t *testing.T) {
	e, err := NewEvaluator()
	require.NoError(t, err)

	fns := e.Functions()
	assert.Contains(t, fns, "filter")
	assert.Contains(t, fns, "lowerAscii")
	for _, fn := range fns {
		assert.False(t, isOperator(fn), fn)
	}
}
