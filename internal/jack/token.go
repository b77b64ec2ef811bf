package jack

import (
	"strconv"

	"github.com/n2t/toolchain/internal/n2terr"
)

// TokenType identifies one of the five lexical categories of the Jack
// grammar.
type TokenType string

const (
	Keyword         TokenType = "keyword"
	SymbolToken     TokenType = "symbol"
	IntegerConstant TokenType = "integerConstant"
	StringConstant  TokenType = "stringConstant"
	Identifier      TokenType = "identifier"
)

// Keywords is the fixed set of 21 Jack keywords.
var Keywords = map[string]bool{
	"class": true, "constructor": true, "function": true, "method": true,
	"field": true, "static": true, "var": true, "int": true, "char": true,
	"boolean": true, "void": true, "true": true, "false": true, "null": true,
	"this": true, "let": true, "do": true, "if": true, "else": true,
	"while": true, "return": true,
}

// Symbols is the fixed set of 19 single-character Jack symbols.
const Symbols = "{}()[].,;+-*/&|<>=~"

// Token is a single validated lexical element.
type Token struct {
	Type  TokenType
	Value string
}

// NewToken constructs and validates a Token of the given type. Construction
// fails if value is not a legal member of that type's alphabet.
func NewToken(t TokenType, value string) (Token, error) {
	switch t {
	case Keyword:
		if !Keywords[value] {
			return Token{}, &n2terr.LexError{Msg: "not a keyword: " + strconv.Quote(value)}
		}
	case SymbolToken:
		if len(value) != 1 || !containsByte(Symbols, value[0]) {
			return Token{}, &n2terr.LexError{Msg: "not a symbol: " + strconv.Quote(value)}
		}
	case IntegerConstant:
		if !isAllDigits(value) {
			return Token{}, &n2terr.LexError{Msg: "not an integer constant: " + strconv.Quote(value)}
		}
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 || n > 32767 {
			return Token{}, &n2terr.LexError{Msg: "integer constant out of range [0, 32767]: " + value}
		}
	case StringConstant:
		for _, r := range value {
			if r == '"' || r == '\n' {
				return Token{}, &n2terr.LexError{Msg: "invalid string constant: " + strconv.Quote(value)}
			}
		}
	case Identifier:
		if !isValidIdentifier(value) {
			return Token{}, &n2terr.LexError{Msg: "not an identifier: " + strconv.Quote(value)}
		}
	default:
		return Token{}, &n2terr.LexError{Msg: "unknown token type"}
	}
	return Token{Type: t, Value: value}, nil
}

// IntValue parses an IntegerConstant token's value. The caller is
// responsible for checking Type first.
func (t Token) IntValue() int {
	n, _ := strconv.Atoi(t.Value)
	return n
}

// Is reports whether t is a SymbolToken or Keyword with the given literal
// value; it is the primary way the parser checks for a specific terminal.
func (t Token) Is(value string) bool {
	return t.Value == value && (t.Type == Keyword || t.Type == SymbolToken)
}

func containsByte(s string, b byte) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return true
		}
	}
	return false
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isValidIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
		isDigit := r >= '0' && r <= '9'
		if i == 0 {
			if !isLetter {
				return false
			}
			continue
		}
		if !isLetter && !isDigit {
			return false
		}
	}
	return true
}
