package jack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeStripsComments(t *testing.T) {
	source := `
// a line comment
class Main {
    /** a doc comment
     * spanning lines */
    field int x; // trailing
}
`
	tokens, err := Tokenize("Main", source)
	require.NoError(t, err)

	var values []string
	for _, tok := range tokens {
		values = append(values, tok.Value)
	}
	assert.Equal(t, []string{"class", "Main", "{", "field", "int", "x", ";", "}"}, values)
}

func TestTokenizeKeywordVsIdentifierBoundary(t *testing.T) {
	tokens, err := Tokenize("T", "classroom")
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, Identifier, tokens[0].Type)
	assert.Equal(t, "classroom", tokens[0].Value)
}

func TestTokenizeStringConstant(t *testing.T) {
	tokens, err := Tokenize("T", `let s = "hello, world";`)
	require.NoError(t, err)

	var found bool
	for _, tok := range tokens {
		if tok.Type == StringConstant {
			assert.Equal(t, "hello, world", tok.Value)
			found = true
		}
	}
	assert.True(t, found, "expected a stringConstant token")
}

func TestTokenizeUnterminatedCommentIsLexError(t *testing.T) {
	_, err := Tokenize("T", "/* never closed")
	require.Error(t, err)
}

func TestTokenizeUnterminatedStringIsLexError(t *testing.T) {
	_, err := Tokenize("T", `"never closed`)
	require.Error(t, err)
}

func TestTokenizeUnrecognizedInputIsLexError(t *testing.T) {
	_, err := Tokenize("T", "let x = 1 @ 2;")
	require.Error(t, err)
}
