package parser

import (
	"fmt"

	"github.com/sergev/psharp/source"
)

// TokenType enumerates lexical categories recognised by the lexer.
type TokenType int

const (
	tokenEOF TokenType = iota

	tokenInt
	tokenFloat
	tokenIdentifier
	tokenKeyword

	// Operators and punctuation
	tokenPlus         // +
	tokenMinus        // -
	tokenStar         // *
	tokenSlash        // /
	tokenCaret        // ^
	tokenAssign       // =
	tokenEqualEqual   // ==
	tokenBangEqual    // !=
	tokenLess         // <
	tokenLessEqual    // <=
	tokenGreater      // >
	tokenGreaterEqual // >=
	tokenLParen       // (
	tokenRParen       // )
)

func (tt TokenType) String() string {
	switch tt {
	case tokenEOF:
		return "EOF"
	case tokenInt:
		return "INT"
	case tokenFloat:
		return "FLOAT"
	case tokenIdentifier:
		return "IDENTIFIER"
	case tokenKeyword:
		return "KEYWORD"
	case tokenPlus:
		return "+"
	case tokenMinus:
		return "-"
	case tokenStar:
		return "*"
	case tokenSlash:
		return "/"
	case tokenCaret:
		return "^"
	case tokenAssign:
		return "="
	case tokenEqualEqual:
		return "=="
	case tokenBangEqual:
		return "!="
	case tokenLess:
		return "<"
	case tokenLessEqual:
		return "<="
	case tokenGreater:
		return ">"
	case tokenGreaterEqual:
		return ">="
	case tokenLParen:
		return "("
	case tokenRParen:
		return ")"
	default:
		return "unknown"
	}
}

var keywords = map[string]bool{
	"let":  true,
	"if":   true,
	"then": true,
	"elif": true,
	"else": true,
	"and":  true,
	"or":   true,
	"not":  true,
}

// IsKeyword reports whether word is reserved.
func IsKeyword(word string) bool {
	return keywords[word]
}

// Token is a single lexical unit covering [Start, End).
type Token struct {
	Type  TokenType
	Value interface{} // int64, float64, or the word for identifiers and keywords
	Start source.Position
	End   source.Position
}

// newToken builds a token one character wide.
func newToken(tt TokenType, value interface{}, start source.Position) Token {
	return Token{
		Type:  tt,
		Value: value,
		Start: start,
		End:   start.Next(),
	}
}

// spanToken builds a token with an explicit end position.
func spanToken(tt TokenType, value interface{}, start, end source.Position) Token {
	return Token{
		Type:  tt,
		Value: value,
		Start: start,
		End:   end,
	}
}

// Matches reports whether the token has the given type and value.
func (t Token) Matches(tt TokenType, value interface{}) bool {
	return t.Type == tt && t.Value == value
}

// Word returns the text of an identifier or keyword token.
func (t Token) Word() string {
	s, _ := t.Value.(string)
	return s
}

func (t Token) String() string {
	if t.Value != nil {
		return fmt.Sprintf("%s:%v", t.Type, t.Value)
	}
	return t.Type.String()
}

// Symbol returns the operator text of the token, or the word for keywords.
func (t Token) Symbol() string {
	if t.Type == tokenKeyword || t.Type == tokenIdentifier {
		return t.Word()
	}
	return t.Type.String()
}
