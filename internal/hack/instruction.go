package hack

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/n2t/toolchain/internal/n2terr"
)

// AInstruction is a resolved "@value" line: value is always a non-negative
// 15-bit address by the time Encode runs (symbol resolution has already
// happened).
type AInstruction struct {
	Address uint16
}

// Encode renders the instruction as 16 ASCII '0'/'1' characters, opcode bit
// fixed at 0.
func (a AInstruction) Encode() string {
	return fmt.Sprintf("0%015b", a.Address)
}

// CInstruction is a "dest=comp;jump" line with any of the three parts
// possibly absent.
type CInstruction struct {
	A    uint16 // 1 iff comp mentions the M register
	Comp uint16 // 6-bit code
	Dest uint16 // 3-bit code, bits for A/D/M
	Jump uint16 // 3-bit code
}

// Encode renders the instruction as 16 ASCII '0'/'1' characters: opcode and
// stuffing bits fixed at 111, then a, comp[6], dest[3], jump[3].
func (c CInstruction) Encode() string {
	return fmt.Sprintf("111%d%06b%03b%03b", c.A, c.Comp, c.Dest, c.Jump)
}

var cInstructionPattern = regexp.MustCompile(`^(?:([^=;]+)=)?([^=;]+?)(?:;(.+))?$`)

// ParseCInstruction decodes a "dest=comp;jump" line (with dest and/or jump
// possibly absent) into its three fixed-width fields.
func ParseCInstruction(stem string, line int, text string) (CInstruction, error) {
	m := cInstructionPattern.FindStringSubmatch(text)
	if m == nil {
		return CInstruction{}, &n2terr.EncodingError{Stem: stem, Line: line, Msg: "invalid instruction " + text}
	}
	dest, comp, jump := m[1], m[2], m[3]

	compCode, ok := compTable[comp]
	if !ok {
		return CInstruction{}, &n2terr.EncodingError{Stem: stem, Line: line, Msg: "invalid comp mnemonic " + comp}
	}

	var destCode uint16
	if dest != "" {
		if strings.Contains(dest, "A") {
			destCode |= 0b100
		}
		if strings.Contains(dest, "D") {
			destCode |= 0b010
		}
		if strings.Contains(dest, "M") {
			destCode |= 0b001
		}
	}

	var jumpCode uint16
	if jump != "" {
		code, ok := jumpTable[jump]
		if !ok {
			return CInstruction{}, &n2terr.EncodingError{Stem: stem, Line: line, Msg: "invalid jump mnemonic " + jump}
		}
		jumpCode = code
	}

	a := uint16(0)
	if mentionsM(comp) {
		a = 1
	}

	return CInstruction{A: a, Comp: compCode, Dest: destCode, Jump: jumpCode}, nil
}
