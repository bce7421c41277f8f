package lang

import (
	"errors"
	"testing"

	"github.com/sergev/psharp/diag"
	"github.com/sergev/psharp/parser"
	"github.com/sergev/psharp/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evalString(t *testing.T, ev *Evaluator, src string) (*Number, error) {
	t.Helper()
	node, err := parser.ParseString("<test>", src)
	if err != nil {
		t.Fatalf("ParseString(%q) returned error: %v", src, err)
	}
	return ev.Eval(node, nil)
}

func runtimeError(t *testing.T, err error) *diag.Error {
	t.Helper()
	var de *diag.Error
	if !errors.As(err, &de) {
		t.Fatalf("expected *diag.Error, got %v", err)
	}
	if de.Kind != diag.Runtime {
		t.Fatalf("expected runtime error, got %v", de.Kind)
	}
	return de
}

func TestEvalExpressions(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"2 + 3 * 4", "14"},
		{"(2 + 3) * 4", "20"},
		{"2 ^ 3 ^ 2", "512"},
		{"-2 ^ 2", "-4"},
		{"+3", "3"},
		{"7 / 2", "3.5"},
		{"8 / 2", "4"},
		{"1.5 + 1", "2.5"},
		{"1 < 2", "1"},
		{"2 <= 1", "0"},
		{"1 == 1.0", "1"},
		{"not 0", "1"},
		{"not 3 == 3", "0"},
		{"1 and 0 or 1", "1"},
		{"if 0 then 1 elif 0 then 2 elif 1 then 3 else 4", "3"},
		{"if 0 then 1 else 2", "2"},
		{"1 + if 1 then 2 else 3", "3"},
		{"let y = 3 * 3", "9"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			ev := NewEvaluator(nil)
			got, err := evalString(t, ev, tt.src)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestEvalLetBindsInGlobal(t *testing.T) {
	ev := NewEvaluator(nil)
	_, err := evalString(t, ev, "let x = 5")
	require.NoError(t, err)

	got, err := evalString(t, ev, "x * 2")
	require.NoError(t, err)
	assert.Equal(t, "10", got.String())

	val, ok := ev.Global.Get("x")
	require.True(t, ok)
	assert.Equal(t, int64(5), val.Int())
}

func TestEvalIfWithoutMatchHasNoValue(t *testing.T) {
	ev := NewEvaluator(nil)
	got, err := evalString(t, ev, "if 0 then 1 elif 0 then 2")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestEvalNoValueIsNotAnOperand(t *testing.T) {
	tests := []string{
		"1 + (if 0 then 1)",
		"let x = if 0 then 1",
		"if (if 0 then 1) then 2",
		"-(if 0 then 1)",
	}
	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			_, err := evalString(t, NewEvaluator(nil), src)
			de := runtimeError(t, err)
			assert.Equal(t, "expected a value", de.Message)
		})
	}
}

func TestEvalUndefinedVariable(t *testing.T) {
	_, err := evalString(t, NewEvaluator(nil), "1 + foo")
	de := runtimeError(t, err)
	assert.Equal(t, "'foo' is not defined", de.Message)
	assert.Equal(t, 4, de.Start.Column)
	assert.Equal(t, 7, de.End.Column)
	require.NotNil(t, de.Frame)
	assert.Equal(t, ProgramName, de.Frame.FrameName())
}

func TestEvalDivisionByZeroPointsAtDivisor(t *testing.T) {
	tests := []struct {
		src        string
		start, end int
	}{
		{"1 / 0", 4, 5},
		{"1.0 / (2 - 2)", 7, 12},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, err := evalString(t, NewEvaluator(nil), tt.src)
			de := runtimeError(t, err)
			assert.Equal(t, "Division by zero", de.Message)
			assert.Equal(t, tt.start, de.Start.Column)
			assert.Equal(t, tt.end, de.End.Column)
		})
	}
}

func TestEvalErrorStopsAssignment(t *testing.T) {
	ev := NewEvaluator(nil)
	_, err := evalString(t, ev, "let z = 1 / 0")
	runtimeError(t, err)
	_, ok := ev.Global.Get("z")
	assert.False(t, ok)
}

func TestEvalUsesGivenContext(t *testing.T) {
	global := NewEnv(nil)
	ev := NewEvaluator(global)
	root := NewContext(ProgramName, global)
	inner := root.Enter("block", source.Start("<test>", "block"))

	node, err := parser.ParseString("<test>", "let w = 1")
	require.NoError(t, err)
	_, err = ev.Eval(node, inner)
	require.NoError(t, err)

	_, ok := global.Get("w")
	assert.False(t, ok, "binding in an entered context must stay local")
	_, ok = inner.Env.Get("w")
	assert.True(t, ok)

	node, err = parser.ParseString("<test>", "missing")
	require.NoError(t, err)
	_, err = ev.Eval(node, inner)
	de := runtimeError(t, err)
	assert.Contains(t, de.Traceback(), "in block")
	assert.Contains(t, de.Traceback(), "in <program>")
}
