package vmlang

import (
	"fmt"

	"github.com/n2t/toolchain/internal/n2terr"
)

var pointerSegment = map[string]string{
	"local": "LCL", "argument": "ARG", "this": "THIS", "that": "THAT",
}

// CodeGenerator translates parsed Commands into Hack assembly text. It
// holds the two running counters (comparison labels, return-address
// labels) that must stay monotonic across an entire translation unit, so a
// generator is stateful and is never shared between unrelated programs.
type CodeGenerator struct {
	lines      []string
	cmpCount   int
	retCount   int
}

// NewCodeGenerator returns a CodeGenerator with its label counters at zero.
func NewCodeGenerator() *CodeGenerator {
	return &CodeGenerator{}
}

func (g *CodeGenerator) emit(lines ...string) {
	g.lines = append(g.lines, lines...)
}

// Bootstrap emits the fixed prologue that sets SP to 256 and calls
// Sys.init, run once at the head of a multi-file translation.
func (g *CodeGenerator) Bootstrap() error {
	g.emit("@256", "D=A", "@SP", "M=D")
	return g.Write(Command{Op: "call", Type: Function, Arg1: "Sys.init", Arg2: 0})
}

// Write appends the assembly for one command, prefixed with a comment
// echoing the command's source text.
func (g *CodeGenerator) Write(cmd Command) error {
	g.emit("// " + cmd.String())

	switch cmd.Type {
	case Push:
		return g.writePush(cmd)
	case Pop:
		return g.writePop(cmd)
	case Arithmetic:
		return g.writeArithmetic(cmd)
	case Branching:
		return g.writeBranching(cmd)
	case Function:
		return g.writeFunction(cmd)
	default:
		return &n2terr.EncodingError{Stem: cmd.Origin, Line: cmd.Line, Msg: "unknown command type"}
	}
}

func (g *CodeGenerator) writePush(cmd Command) error {
	switch cmd.Arg1 {
	case "constant":
		g.emit(at(cmd.Arg2), "D=A")
	case "argument", "local", "this", "that":
		g.emit(at(pointerSegment[cmd.Arg1]), "D=M", at(cmd.Arg2), "A=D+A", "D=M")
	case "pointer":
		g.emit(at(thisOrThat(cmd.Arg2)), "D=M")
	case "temp":
		g.emit(at(5+cmd.Arg2), "D=M")
	case "static":
		g.emit(at(fmt.Sprintf("%s.%d", cmd.Origin, cmd.Arg2)), "D=M")
	default:
		return g.badSegment(cmd)
	}
	g.emit("@SP", "A=M", "M=D", "@SP", "M=M+1")
	return nil
}

func (g *CodeGenerator) writePop(cmd Command) error {
	switch cmd.Arg1 {
	case "argument", "local", "this", "that":
		g.emit(at(pointerSegment[cmd.Arg1]), "D=M", at(cmd.Arg2), "D=D+A")
	case "pointer":
		g.emit(at(thisOrThat(cmd.Arg2)), "D=A")
	case "temp":
		g.emit(at(5+cmd.Arg2), "D=A")
	case "static":
		g.emit(at(fmt.Sprintf("%s.%d", cmd.Origin, cmd.Arg2)), "D=A")
	default:
		return g.badSegment(cmd)
	}
	g.emit("@R13", "M=D", "@SP", "M=M-1", "A=M", "D=M", "@R13", "A=M", "M=D")
	return nil
}

func (g *CodeGenerator) badSegment(cmd Command) error {
	return &n2terr.EncodingError{Stem: cmd.Origin, Line: cmd.Line, Msg: "unknown segment " + cmd.Arg1}
}

func thisOrThat(index int) string {
	if index == 0 {
		return "THIS"
	}
	return "THAT"
}

func (g *CodeGenerator) writeArithmetic(cmd Command) error {
	switch cmd.Op {
	case "neg":
		g.emit("@SP", "A=M-1", "M=-M")
	case "not":
		g.emit("@SP", "A=M-1", "M=!M")
	case "add":
		g.emit("@SP", "AM=M-1", "D=M", "A=A-1", "M=D+M")
	case "sub":
		g.emit("@SP", "AM=M-1", "D=M", "A=A-1", "M=M-D")
	case "and":
		g.emit("@SP", "AM=M-1", "D=M", "A=A-1", "M=D&M")
	case "or":
		g.emit("@SP", "AM=M-1", "D=M", "A=A-1", "M=D|M")
	case "eq", "gt", "lt":
		g.writeCompare(cmd.Op)
	default:
		return &n2terr.EncodingError{Stem: cmd.Origin, Line: cmd.Line, Msg: "unknown arithmetic op " + cmd.Op}
	}
	return nil
}

// writeCompare expands eq/gt/lt into a conditional jump against a fresh
// pair of CMP<n>_TRUE / CMP<n>_END labels. The counter is per-generator, so
// labels stay unique across an entire translation unit regardless of how
// many source files contributed commands.
func (g *CodeGenerator) writeCompare(op string) {
	g.cmpCount++
	n := g.cmpCount
	jump := map[string]string{"eq": "JEQ", "gt": "JGT", "lt": "JLT"}[op]
	g.emit(
		"@SP", "AM=M-1", "D=M", "A=A-1", "D=M-D",
		fmt.Sprintf("@CMP%d_TRUE", n),
		"D;"+jump,
		"@SP", "A=M-1", "M=0",
		fmt.Sprintf("@CMP%d_END", n),
		"0;JMP",
		fmt.Sprintf("(CMP%d_TRUE)", n),
		"@SP", "A=M-1", "M=-1",
		fmt.Sprintf("(CMP%d_END)", n),
	)
}

func (g *CodeGenerator) writeBranching(cmd Command) error {
	switch cmd.Op {
	case "label":
		g.emit("(" + cmd.Arg1 + ")")
	case "goto":
		g.emit("@"+cmd.Arg1, "0;JMP")
	case "if-goto":
		g.emit("@SP", "AM=M-1", "D=M", "@"+cmd.Arg1, "D;JNE")
	default:
		return &n2terr.EncodingError{Stem: cmd.Origin, Line: cmd.Line, Msg: "unknown branching op " + cmd.Op}
	}
	return nil
}

func (g *CodeGenerator) pushD() {
	g.emit("@SP", "A=M", "M=D", "@SP", "M=M+1")
}

func (g *CodeGenerator) writeFunction(cmd Command) error {
	switch cmd.Op {
	case "function":
		g.emit("(" + cmd.Arg1 + ")")
		for i := 0; i < cmd.Arg2; i++ {
			g.emit("@0", "D=A")
			g.pushD()
		}
	case "call":
		g.writeCall(cmd)
	case "return":
		g.writeReturn()
	default:
		return &n2terr.EncodingError{Stem: cmd.Origin, Line: cmd.Line, Msg: "unknown function op " + cmd.Op}
	}
	return nil
}

// writeCall pushes the 5-word frame (return address, LCL, ARG, THIS, THAT)
// and repositions ARG/LCL for the callee, using a fresh RETADDR_<n> label
// per call site so recursive/repeated calls to the same function never
// collide.
func (g *CodeGenerator) writeCall(cmd Command) {
	g.retCount++
	retLabel := fmt.Sprintf("RETADDR_%d", g.retCount)

	g.emit("@" + retLabel)
	g.emit("D=A")
	g.pushD()
	for _, seg := range []string{"LCL", "ARG", "THIS", "THAT"} {
		g.emit("@"+seg, "D=M")
		g.pushD()
	}
	g.emit(
		"@SP", "D=M", "@5", "D=D-A", at(cmd.Arg2), "D=D-A", "@ARG", "M=D",
		"@SP", "D=M", "@LCL", "M=D",
		"@"+cmd.Arg1, "0;JMP",
		"("+retLabel+")",
	)
}

// writeReturn tears down the current frame into a fixed scratch cell
// (endFrame/returnAddress), matching the original algorithm's use of
// ordinary RAM labels rather than a dedicated temp register.
func (g *CodeGenerator) writeReturn() {
	g.emit(
		"@LCL", "D=M", "@endFrame", "M=D",
		"@5", "A=D-A", "D=M", "@returnAddress", "M=D",
		"@SP", "A=M-1", "D=M", "@ARG", "A=M", "M=D",
		"@ARG", "D=M+1", "@SP", "M=D",
		"@endFrame", "AM=M-1", "D=M", "@THAT", "M=D",
		"@endFrame", "AM=M-1", "D=M", "@THIS", "M=D",
		"@endFrame", "AM=M-1", "D=M", "@ARG", "M=D",
		"@endFrame", "AM=M-1", "D=M", "@LCL", "M=D",
		"@returnAddress", "A=M", "0;JMP",
	)
}

func at(v interface{}) string {
	return fmt.Sprintf("@%v", v)
}

// String returns the accumulated assembly program, one instruction per
// line.
func (g *CodeGenerator) String() string {
	if len(g.lines) == 0 {
		return ""
	}
	out := ""
	for _, l := range g.lines {
		out += l + "\n"
	}
	return out
}
