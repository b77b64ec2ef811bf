package hack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAInstructionEncode(t *testing.T) {
	assert.Equal(t, "0000000000010000", AInstruction{Address: 16}.Encode())
	assert.Equal(t, "0000000000000000", AInstruction{Address: 0}.Encode())
}

func TestParseCInstructionDestCompJump(t *testing.T) {
	inst, err := ParseCInstruction("T", 1, "D=D+A")
	require.NoError(t, err)
	assert.Equal(t, uint16(0), inst.A)
	assert.Equal(t, uint16(0b000010), inst.Comp)
	assert.Equal(t, uint16(0b010), inst.Dest)
	assert.Equal(t, "1110000010010000", inst.Encode())
}

func TestParseCInstructionAFlagSetForM(t *testing.T) {
	inst, err := ParseCInstruction("T", 1, "M=D+M")
	require.NoError(t, err)
	assert.Equal(t, uint16(1), inst.A)
}

func TestParseCInstructionJumpOnly(t *testing.T) {
	inst, err := ParseCInstruction("T", 1, "0;JMP")
	require.NoError(t, err)
	assert.Equal(t, uint16(0), inst.Dest)
	assert.Equal(t, uint16(0b111), inst.Jump)
}

func TestParseCInstructionDestBits(t *testing.T) {
	inst, err := ParseCInstruction("T", 1, "AMD=D+1")
	require.NoError(t, err)
	assert.Equal(t, uint16(0b111), inst.Dest)
}

func TestParseCInstructionUnknownCompIsEncodingError(t *testing.T) {
	_, err := ParseCInstruction("T", 1, "D=Q")
	require.Error(t, err)
}

func TestParseCInstructionUnknownJumpIsEncodingError(t *testing.T) {
	_, err := ParseCInstruction("T", 1, "0;JBOGUS")
	require.Error(t, err)
}

func TestCInstructionEncodeLength(t *testing.T) {
	inst, err := ParseCInstruction("T", 1, "D;JGT")
	require.NoError(t, err)
	assert.Len(t, inst.Encode(), 16)
	assert.Equal(t, byte('1'), inst.Encode()[0])
	assert.Equal(t, byte('1'), inst.Encode()[1])
	assert.Equal(t, byte('1'), inst.Encode()[2])
}
