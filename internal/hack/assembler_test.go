package hack

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A program with no variables and a single (END) label assembles to the
// expected fixed binary instructions.
func TestAssembleAddTwoConstants(t *testing.T) {
	source := `
// Computes 2 + 3 and halts.
@2
D=A
@3
D=D+A
@0
M=D
(END)
@END
0;JMP
`
	out, err := Assemble("Add", source)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 8)
	assert.Equal(t, "0000000000000010", lines[0])
	assert.Equal(t, "1110110000010000", lines[1])
	assert.Equal(t, "0000000000000011", lines[2])
	assert.Equal(t, "1110000010010000", lines[3])
	assert.Equal(t, "0000000000000000", lines[4])
	assert.Equal(t, "1110001100001000", lines[5])
	// (END) resolves to the instruction it immediately precedes: @END itself,
	// which is how "(END) @END 0;JMP" forms an infinite loop.
	assert.Equal(t, "0000000000000110", lines[6])
	assert.Equal(t, "1110101010000111", lines[7])
}

// S5: variables are assigned consecutive RAM addresses starting at 16, in
// first-occurrence order, skipping anything already predefined or a label.
func TestAssembleVariableAllocation(t *testing.T) {
	source := `
@foo
M=1
@bar
M=1
@foo
M=0
@SCREEN
M=0
`
	out, err := Assemble("Vars", source)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 8)

	assert.Equal(t, "0000000000010000", lines[0]) // foo -> 16
	assert.Equal(t, "0000000000010001", lines[2]) // bar -> 17
	assert.Equal(t, "0000000000010000", lines[4]) // foo again -> 16
	assert.Equal(t, "0100000000000000", lines[6]) // SCREEN -> 0x4000, predefined
}

func TestAssemblePredefinedSymbols(t *testing.T) {
	out, err := Assemble("T", "@SP\n@LCL\n@ARG\n@THIS\n@THAT\n@R15\n@KBD\n")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "0000000000000000", lines[0]) // SP
	assert.Equal(t, "0000000000000001", lines[1]) // LCL
	assert.Equal(t, "0000000000001111", lines[5]) // R15
	assert.Equal(t, "0110000000000000", lines[6]) // KBD
}

func TestAssembleInvalidCompIsEncodingError(t *testing.T) {
	_, err := Assemble("T", "@0\nD=Q\n")
	require.Error(t, err)
}
