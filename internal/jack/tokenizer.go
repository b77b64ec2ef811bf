package jack

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/n2t/toolchain/internal/n2terr"
)

// keywordPattern is anchored both at the start of the remaining input and
// on a trailing word boundary, so that "classroom" is never mistaken for
// the keyword "class" followed by "room" -- the \b is what makes keyword
// precedence over identifiers safe.
var (
	keywordPattern = regexp.MustCompile(`^(?:class|constructor|function|method|field|static|var|int|char|boolean|void|true|false|null|this|let|do|if|else|while|return)\b`)
	stringPattern  = regexp.MustCompile(`^"[^"\n]*"`)
	identPattern   = regexp.MustCompile(`^[A-Za-z_]\w*`)
	intPattern     = regexp.MustCompile(`^\d+`)
)

// Tokenize strips comments from source and splits what remains into an
// ordered list of tokens, by leftmost-longest match over the alternatives
// in keyword/symbol/string/identifier/integer precedence order. stem is
// used only to annotate error messages with a file context.
func Tokenize(stem string, source string) ([]Token, error) {
	clean, err := stripComments(stem, source)
	if err != nil {
		return nil, err
	}

	var tokens []Token
	line := 1
	rest := clean
	for {
		// Skip whitespace, tracking line numbers for error context.
		for len(rest) > 0 && isSpace(rest[0]) {
			if rest[0] == '\n' {
				line++
			}
			rest = rest[1:]
		}
		if len(rest) == 0 {
			break
		}

		tok, n, err := matchOne(rest)
		if err != nil {
			return nil, &n2terr.LexError{Stem: stem, Line: line, Msg: err.Error()}
		}
		tokens = append(tokens, tok)
		rest = rest[n:]
	}
	return tokens, nil
}

func matchOne(s string) (Token, int, error) {
	if m := keywordPattern.FindString(s); m != "" {
		tok, err := NewToken(Keyword, m)
		return tok, len(m), err
	}
	if len(s) > 0 && containsByte(Symbols, s[0]) {
		tok, err := NewToken(SymbolToken, s[:1])
		return tok, 1, err
	}
	if m := stringPattern.FindString(s); m != "" {
		tok, err := NewToken(StringConstant, m[1:len(m)-1])
		return tok, len(m), err
	}
	if m := identPattern.FindString(s); m != "" {
		tok, err := NewToken(Identifier, m)
		return tok, len(m), err
	}
	if m := intPattern.FindString(s); m != "" {
		tok, err := NewToken(IntegerConstant, m)
		return tok, len(m), err
	}
	end := s
	if idx := strings.IndexAny(s, " \t\r\n"); idx > 0 {
		end = s[:idx]
	}
	if len(end) > 20 {
		end = end[:20]
	}
	return Token{}, 0, fmt.Errorf("unrecognized input starting at %q", end)
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

// stripComments removes "// ..." line comments and "/* ... */" block
// comments (which also covers "/** ... */" doc comments, since both start
// with "/*"), replacing each with a single space so that token positions
// and line counts stay meaningful. Block comments may span lines and are
// matched non-greedily -- the first "*/" closes them.
func stripComments(stem string, source string) (string, error) {
	var out strings.Builder
	i := 0
	line := 1
	for i < len(source) {
		c := source[i]
		if c == '\n' {
			line++
		}
		if c == '/' && i+1 < len(source) && source[i+1] == '/' {
			for i < len(source) && source[i] != '\n' {
				i++
			}
			out.WriteByte(' ')
			continue
		}
		if c == '/' && i+1 < len(source) && source[i+1] == '*' {
			startLine := line
			end := strings.Index(source[i+2:], "*/")
			if end < 0 {
				return "", &n2terr.LexError{Stem: stem, Line: startLine, Msg: "unterminated comment"}
			}
			body := source[i : i+2+end+2]
			newlines := strings.Count(body, "\n")
			line += newlines
			i += 2 + end + 2
			out.WriteByte(' ')
			out.WriteString(strings.Repeat("\n", newlines))
			continue
		}
		if c == '"' {
			j := i + 1
			for j < len(source) && source[j] != '"' && source[j] != '\n' {
				j++
			}
			if j >= len(source) || source[j] != '"' {
				return "", &n2terr.LexError{Stem: stem, Line: line, Msg: "unterminated string constant"}
			}
			out.WriteString(source[i : j+1])
			i = j + 1
			continue
		}
		out.WriteByte(c)
		i++
	}
	return out.String(), nil
}
