package hack

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/n2t/toolchain/internal/n2terr"
)

// Assemble converts Hack assembly source into 16-bit machine code text, one
// binary instruction per line, via the standard two-pass algorithm: pass 1
// assigns every "(LABEL)" declaration the instruction index it precedes,
// pass 2 assigns RAM addresses (starting at 16) to every undeclared
// non-numeric "@symbol" reference in the order it is first seen.
func Assemble(stem string, source string) (string, error) {
	pseudoLines, lineNumbers := extractPseudoCode(source)

	symbols := predefinedSymbols()
	pureLines, pureLineNumbers := resolveLabels(pseudoLines, lineNumbers, symbols)
	resolveVariables(pureLines, symbols)

	var out strings.Builder
	for i, text := range pureLines {
		encoded, err := encodeLine(stem, pureLineNumbers[i], text, symbols)
		if err != nil {
			return "", err
		}
		out.WriteString(encoded)
		out.WriteByte('\n')
	}
	return out.String(), nil
}

var leadingTokenPattern = regexp.MustCompile(`^\s*([^\s/]+)`)

// extractPseudoCode strips blank lines and "//" comments, returning the
// remaining non-whitespace token from each significant line together with
// its 1-based source line number (for error messages).
func extractPseudoCode(source string) (lines []string, lineNumbers []int) {
	for i, raw := range strings.Split(source, "\n") {
		m := leadingTokenPattern.FindStringSubmatch(raw)
		if m == nil {
			continue
		}
		lines = append(lines, m[1])
		lineNumbers = append(lineNumbers, i+1)
	}
	return lines, lineNumbers
}

// resolveLabels removes "(LABEL)" pseudo-instructions from the stream,
// recording each one's instruction index (the index it immediately
// precedes) in symbols, and returns the remaining true instructions.
func resolveLabels(lines []string, lineNumbers []int, symbols map[string]int) ([]string, []int) {
	var pure []string
	var pureLineNumbers []int
	index := 0
	for i, line := range lines {
		if strings.HasPrefix(line, "(") {
			label := strings.TrimSuffix(strings.TrimPrefix(line, "("), ")")
			symbols[label] = index
			continue
		}
		pure = append(pure, line)
		pureLineNumbers = append(pureLineNumbers, lineNumbers[i])
		index++
	}
	return pure, pureLineNumbers
}

// resolveVariables assigns consecutive RAM addresses starting at 16 to
// every "@name" reference whose name is neither numeric nor already in
// symbols (from predefined symbols or a label), in first-occurrence order.
func resolveVariables(lines []string, symbols map[string]int) {
	next := 16
	for _, line := range lines {
		if !strings.HasPrefix(line, "@") {
			continue
		}
		name := line[1:]
		if isNumeric(name) {
			continue
		}
		if _, ok := symbols[name]; ok {
			continue
		}
		symbols[name] = next
		next++
	}
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func encodeLine(stem string, line int, text string, symbols map[string]int) (string, error) {
	if strings.HasPrefix(text, "@") {
		name := text[1:]
		if isNumeric(name) {
			n, err := strconv.Atoi(name)
			if err != nil || n > 32767 {
				return "", &n2terr.EncodingError{Stem: stem, Line: line, Msg: "invalid address " + name}
			}
			return AInstruction{Address: uint16(n)}.Encode(), nil
		}
		addr, ok := symbols[name]
		if !ok {
			return "", &n2terr.SymbolError{Stem: stem, Line: line, Name: name}
		}
		return AInstruction{Address: uint16(addr)}.Encode(), nil
	}

	inst, err := ParseCInstruction(stem, line, text)
	if err != nil {
		return "", err
	}
	return inst.Encode(), nil
}
