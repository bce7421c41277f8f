package parser

import (
	"errors"
	"testing"

	"github.com/sergev/psharp/diag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) Node {
	t.Helper()
	node, err := ParseString("<test>", src)
	if err != nil {
		t.Fatalf("ParseString(%q) returned error: %v", src, err)
	}
	return node
}

func TestParseShapes(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"42", "INT:42"},
		{"1 + 2 * 3", "(INT:1, +, (INT:2, *, INT:3))"},
		{"(1 + 2) * 3", "((INT:1, +, INT:2), *, INT:3)"},
		{"1 - 2 - 3", "((INT:1, -, INT:2), -, INT:3)"},
		{"2 ^ 3 ^ 2", "(INT:2, ^, (INT:3, ^, INT:2))"},
		{"-2 ^ 2", "(-, (INT:2, ^, INT:2))"},
		{"2 ^ -1", "(INT:2, ^, (-, INT:1))"},
		{"--x", "(-, (-, x))"},
		{"1 < 2 == 1", "((INT:1, <, INT:2), ==, INT:1)"},
		{"not 1 == 2", "(KEYWORD:not, (INT:1, ==, INT:2))"},
		{"1 and 2 or 3", "((INT:1, KEYWORD:and, INT:2), KEYWORD:or, INT:3)"},
		{"let x = let y = 2.5", "(let x = (let y = FLOAT:2.5))"},
		{"if a then 1", "(if a then INT:1)"},
		{"if a then 1 elif b then 2 elif c then 3 else 4", "(if a then INT:1 elif b then INT:2 elif c then INT:3 else INT:4)"},
		{"1 + if a then 2 else 3", "(INT:1, +, (if a then INT:2 else INT:3))"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			assert.Equal(t, tt.want, mustParse(t, tt.src).String())
		})
	}
}

func TestParseNodeTypes(t *testing.T) {
	node := mustParse(t, "let x = if y then 1 elif z then 2")
	assign, ok := node.(*VarAssignNode)
	require.True(t, ok, "expected VarAssignNode, got %T", node)
	assert.Equal(t, "x", assign.Name.Word())

	ifNode, ok := assign.Value.(*IfNode)
	require.True(t, ok, "expected IfNode, got %T", assign.Value)
	require.Len(t, ifNode.Cases, 2)
	assert.Nil(t, ifNode.Else)
	_, ok = ifNode.Cases[1].Cond.(*VarAccessNode)
	assert.True(t, ok)
}

func TestParseSpans(t *testing.T) {
	node := mustParse(t, "12 + abc")
	assert.Equal(t, 0, node.Start().Column)
	assert.Equal(t, 8, node.End().Column)

	node = mustParse(t, "if 1 then 2 else 345")
	assert.Equal(t, 3, node.Start().Column)
	assert.Equal(t, 20, node.End().Column)

	node = mustParse(t, "-7")
	assert.Equal(t, 0, node.Start().Column)
	assert.Equal(t, 2, node.End().Column)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		message string
		column  int
	}{
		{"unclosed paren", "(1 + 2", "expected ')'", 6},
		{"dangling operator", "1 +", "expected int, float, identifier, 'if', '+', '-' or '('", 3},
		{"empty", "", "expected 'let', 'if', 'not', int, float, identifier, '+', '-' or '('", 0},
		{"leading close paren", ")", "expected 'let', 'if', 'not', int, float, identifier, '+', '-' or '('", 0},
		{"let without name", "let 5 = 1", "expected identifier", 4},
		{"let without equals", "let x 5", "expected '='", 6},
		{"let without value", "let x =", "expected 'let', 'if', 'not', int, float, identifier, '+', '-' or '('", 7},
		{"if without then", "if 1 2", "expected 'then'", 5},
		{"elif without then", "if 1 then 2 elif 3 4", "expected 'then'", 19},
		{"not without operand", "not", "expected 'if', 'not', int, float, identifier, '+', '-' or '('", 3},
		{"trailing tokens", "1 2", "expected '+', '-', '*', '/', '^', '==', '!=', '<', '>', '<=', '>=', 'and' or 'or'", 2},
		{"assignment outside let", "x = 1", "expected '+', '-', '*', '/', '^', '==', '!=', '<', '>', '<=', '>=', 'and' or 'or'", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString("<test>", tt.src)
			var de *diag.Error
			require.True(t, errors.As(err, &de), "expected *diag.Error, got %v", err)
			assert.Equal(t, diag.Syntax, de.Kind)
			assert.Equal(t, tt.message, de.Message)
			assert.Equal(t, tt.column, de.Start.Column)
		})
	}
}

func TestParseRequiresEOF(t *testing.T) {
	_, err := Parse(nil)
	require.Error(t, err)

	tokens := lexAllTokens(t, "1")
	_, err = Parse(tokens[:1])
	require.Error(t, err)
}

func TestParsePropagatesLexErrors(t *testing.T) {
	_, err := ParseString("<test>", "1 + $")
	var de *diag.Error
	require.True(t, errors.As(err, &de))
	assert.Equal(t, diag.Lexical, de.Kind)
}
