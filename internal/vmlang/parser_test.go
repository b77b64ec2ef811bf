package vmlang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSkipsBlankLinesAndComments(t *testing.T) {
	source := `
// initialize
push constant 7 // the answer, almost

pop local 0
`
	commands, err := Parse("Main", source)
	require.NoError(t, err)
	require.Len(t, commands, 2)
	assert.Equal(t, "push", commands[0].Op)
	assert.Equal(t, 7, commands[0].Arg2)
	assert.Equal(t, "pop", commands[1].Op)
}

func TestParsePropagatesLineNumbers(t *testing.T) {
	source := "push constant 1\nbogus\n"
	_, err := Parse("Main", source)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Main:2:")
}
