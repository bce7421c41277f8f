package parser

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/sergev/psharp/diag"
	"github.com/sergev/psharp/source"
)

const eof rune = -1

type lexer struct {
	pos source.Position
	end int // byte offset where scanning stops
}

// Tokenize splits text into tokens terminated by an EOF token.
// Lexing is all-or-nothing: the first illegal character aborts it.
func Tokenize(filename, text string) ([]Token, error) {
	return TokenizeFrom(source.Start(filename, text), len(text))
}

// TokenizeFrom lexes start.Text[start.Index:end]. Positions stay relative to
// the whole text, so diagnostics point at the right line of a larger file.
func TokenizeFrom(start source.Position, end int) ([]Token, error) {
	if end > len(start.Text) {
		end = len(start.Text)
	}
	lx := &lexer{
		pos: start,
		end: end,
	}
	return lx.tokenize()
}

func (lx *lexer) peek() rune {
	if lx.pos.Index >= lx.end {
		return eof
	}
	r, _ := lx.pos.Rune()
	return r
}

func (lx *lexer) advance() {
	lx.pos = lx.pos.Next()
}

func (lx *lexer) match(expected rune) bool {
	if lx.peek() != expected {
		return false
	}
	lx.advance()
	return true
}

func (lx *lexer) tokenize() ([]Token, error) {
	var tokens []Token
	for {
		r := lx.peek()
		switch {
		case r == eof:
			return append(tokens, lx.eofToken()), nil
		case isSpace(r):
			lx.advance()
		case isDigit(r):
			tok, err := lx.scanNumber()
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
		case isIdentifierStart(r):
			tokens = append(tokens, lx.scanWord())
		default:
			tok, err := lx.scanOperator()
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
		}
	}
}

// eofToken sits just past the last character. Its end is one column further
// on the same line, even when the text continues after a newline.
func (lx *lexer) eofToken() Token {
	end := lx.pos
	end.Index++
	end.Column++
	return spanToken(tokenEOF, nil, lx.pos, end)
}

func (lx *lexer) scanNumber() (Token, error) {
	start := lx.pos
	var builder strings.Builder
	seenDot := false
	for r := lx.peek(); isDigit(r) || r == '.'; r = lx.peek() {
		if r == '.' {
			if seenDot {
				break
			}
			seenDot = true
		}
		builder.WriteRune(r)
		lx.advance()
	}

	lexeme := builder.String()
	if !seenDot {
		v, err := strconv.ParseInt(lexeme, 10, 64)
		if err != nil {
			return Token{}, diag.Errorf(diag.Lexical, start, lx.pos, "integer literal %s out of range", lexeme)
		}
		return spanToken(tokenInt, v, start, lx.pos), nil
	}
	v, err := strconv.ParseFloat(lexeme, 64)
	if err != nil {
		return Token{}, diag.Errorf(diag.Lexical, start, lx.pos, "float literal %s out of range", lexeme)
	}
	return spanToken(tokenFloat, v, start, lx.pos), nil
}

func (lx *lexer) scanWord() Token {
	start := lx.pos
	var builder strings.Builder
	for r := lx.peek(); isIdentifierPart(r); r = lx.peek() {
		builder.WriteRune(r)
		lx.advance()
	}
	word := builder.String()
	if IsKeyword(word) {
		return spanToken(tokenKeyword, word, start, lx.pos)
	}
	return spanToken(tokenIdentifier, word, start, lx.pos)
}

func (lx *lexer) scanOperator() (Token, error) {
	start := lx.pos
	r := lx.peek()
	lx.advance()

	switch r {
	case '+':
		return newToken(tokenPlus, nil, start), nil
	case '-':
		return newToken(tokenMinus, nil, start), nil
	case '*':
		return newToken(tokenStar, nil, start), nil
	case '/':
		return newToken(tokenSlash, nil, start), nil
	case '^':
		return newToken(tokenCaret, nil, start), nil
	case '(':
		return newToken(tokenLParen, nil, start), nil
	case ')':
		return newToken(tokenRParen, nil, start), nil
	case '=':
		if lx.match('=') {
			return spanToken(tokenEqualEqual, nil, start, lx.pos), nil
		}
		return newToken(tokenAssign, nil, start), nil
	case '!':
		if lx.match('=') {
			return spanToken(tokenBangEqual, nil, start, lx.pos), nil
		}
		return Token{}, diag.Errorf(diag.Lexical, start, lx.pos, "expected '=' after '!'")
	case '<':
		if lx.match('=') {
			return spanToken(tokenLessEqual, nil, start, lx.pos), nil
		}
		return newToken(tokenLess, nil, start), nil
	case '>':
		if lx.match('=') {
			return spanToken(tokenGreaterEqual, nil, start, lx.pos), nil
		}
		return newToken(tokenGreater, nil, start), nil
	default:
		return Token{}, diag.Errorf(diag.Lexical, start, lx.pos, "'%c'", r)
	}
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isIdentifierStart(r rune) bool {
	return unicode.IsLetter(r)
}

func isIdentifierPart(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
