package parser

import (
	"fmt"

	"github.com/sergev/psharp/diag"
)

// Parse builds the syntax tree of a single expression from a token stream
// ending in EOF. Tokens left over after a complete expression are an error.
//
// When a grammar alternative fails, the error reported is the one from the
// attempt that got furthest into the input: a decision point only replaces
// a sub-parse error with its own broader message when the sub-parse failed
// without consuming a token.
func Parse(tokens []Token) (Node, error) {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != tokenEOF {
		return nil, fmt.Errorf("parser: token stream must end with EOF")
	}
	p := &parser{tokens: tokens}
	node, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if p.curr().Type != tokenEOF {
		return nil, p.errorf(p.curr(), "expected '+', '-', '*', '/', '^', '==', '!=', '<', '>', '<=', '>=', 'and' or 'or'")
	}
	return node, nil
}

// ParseString tokenizes and parses text in one step.
func ParseString(filename, text string) (Node, error) {
	tokens, err := Tokenize(filename, text)
	if err != nil {
		return nil, err
	}
	return Parse(tokens)
}

type parser struct {
	tokens []Token
	index  int
}

func (p *parser) curr() Token {
	return p.tokens[p.index]
}

func (p *parser) advance() {
	if p.index < len(p.tokens)-1 {
		p.index++
	}
}

func (p *parser) isKeyword(word string) bool {
	return p.curr().Matches(tokenKeyword, word)
}

func (p *parser) errorf(tok Token, format string, args ...interface{}) error {
	return diag.Errorf(diag.Syntax, tok.Start, tok.End, format, args...)
}

func (p *parser) parseExpression() (Node, error) {
	if p.isKeyword("let") {
		return p.parseLet()
	}
	start := p.index
	node, err := p.parseBinary(p.parseComparison, p.parseComparison, isLogicalOp)
	if err != nil {
		if p.index == start {
			return nil, p.errorf(p.curr(), "expected 'let', 'if', 'not', int, float, identifier, '+', '-' or '('")
		}
		return nil, err
	}
	return node, nil
}

func (p *parser) parseLet() (Node, error) {
	p.advance() // let
	if p.curr().Type != tokenIdentifier {
		return nil, p.errorf(p.curr(), "expected identifier")
	}
	name := p.curr()
	p.advance()
	if p.curr().Type != tokenAssign {
		return nil, p.errorf(p.curr(), "expected '='")
	}
	p.advance()
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &VarAssignNode{
		Name:  name,
		Value: value,
	}, nil
}

func (p *parser) parseComparison() (Node, error) {
	if p.isKeyword("not") {
		op := p.curr()
		p.advance()
		operand, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		return &UnaryOpNode{
			Op:      op,
			Operand: operand,
		}, nil
	}
	start := p.index
	node, err := p.parseBinary(p.parseArith, p.parseArith, isComparisonOp)
	if err != nil {
		if p.index == start {
			return nil, p.errorf(p.curr(), "expected 'if', 'not', int, float, identifier, '+', '-' or '('")
		}
		return nil, err
	}
	return node, nil
}

func (p *parser) parseArith() (Node, error) {
	return p.parseBinary(p.parseTerm, p.parseTerm, isType(tokenPlus, tokenMinus))
}

func (p *parser) parseTerm() (Node, error) {
	return p.parseBinary(p.parseFactor, p.parseFactor, isType(tokenStar, tokenSlash))
}

func (p *parser) parseFactor() (Node, error) {
	if tok := p.curr(); tok.Type == tokenPlus || tok.Type == tokenMinus {
		p.advance()
		operand, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		return &UnaryOpNode{
			Op:      tok,
			Operand: operand,
		}, nil
	}
	return p.parsePower()
}

// parsePower parses the right operand one level down, at factor, so that
// 2 ^ 3 ^ 2 is 2 ^ (3 ^ 2) and 2 ^ -1 is accepted.
func (p *parser) parsePower() (Node, error) {
	return p.parseBinary(p.parseAtom, p.parseFactor, isType(tokenCaret))
}

func (p *parser) parseAtom() (Node, error) {
	tok := p.curr()
	switch {
	case tok.Type == tokenInt || tok.Type == tokenFloat:
		p.advance()
		return &NumberNode{Token: tok}, nil
	case tok.Type == tokenIdentifier:
		p.advance()
		return &VarAccessNode{Name: tok}, nil
	case tok.Type == tokenLParen:
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if p.curr().Type != tokenRParen {
			return nil, p.errorf(p.curr(), "expected ')'")
		}
		p.advance()
		return expr, nil
	case tok.Matches(tokenKeyword, "if"):
		return p.parseIf()
	default:
		return nil, p.errorf(tok, "expected int, float, identifier, 'if', '+', '-' or '('")
	}
}

func (p *parser) parseIf() (Node, error) {
	p.advance() // if
	first, err := p.parseIfCase()
	if err != nil {
		return nil, err
	}
	cases := []IfCase{first}
	for p.isKeyword("elif") {
		p.advance()
		c, err := p.parseIfCase()
		if err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}

	var elseNode Node
	if p.isKeyword("else") {
		p.advance()
		elseNode, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}
	return &IfNode{
		Cases: cases,
		Else:  elseNode,
	}, nil
}

func (p *parser) parseIfCase() (IfCase, error) {
	cond, err := p.parseExpression()
	if err != nil {
		return IfCase{}, err
	}
	if !p.isKeyword("then") {
		return IfCase{}, p.errorf(p.curr(), "expected 'then'")
	}
	p.advance()
	body, err := p.parseExpression()
	if err != nil {
		return IfCase{}, err
	}
	return IfCase{
		Cond: cond,
		Body: body,
	}, nil
}

// parseBinary folds a left-associative chain of operators accepted by isOp.
func (p *parser) parseBinary(left, right func() (Node, error), isOp func(Token) bool) (Node, error) {
	node, err := left()
	if err != nil {
		return nil, err
	}
	for isOp(p.curr()) {
		op := p.curr()
		p.advance()
		rhs, err := right()
		if err != nil {
			return nil, err
		}
		node = &BinaryOpNode{
			Left:  node,
			Op:    op,
			Right: rhs,
		}
	}
	return node, nil
}

func isType(types ...TokenType) func(Token) bool {
	return func(tok Token) bool {
		for _, tt := range types {
			if tok.Type == tt {
				return true
			}
		}
		return false
	}
}

var isComparisonOp = isType(tokenEqualEqual, tokenBangEqual, tokenLess, tokenLessEqual, tokenGreater, tokenGreaterEqual)

func isLogicalOp(tok Token) bool {
	return tok.Matches(tokenKeyword, "and") || tok.Matches(tokenKeyword, "or")
}
