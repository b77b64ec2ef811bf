package jack

import (
	"fmt"
	"strings"
)

// VMWriter formats VM commands as text, one per line. It is the codegen
// half of the compilation engine's contract with the VM translator: its
// textual output is exactly what internal/vmlang parses back in.
type VMWriter struct {
	lines []string
}

func (w *VMWriter) emit(line string) {
	w.lines = append(w.lines, line)
}

// WritePush emits "push <segment> <index>".
func (w *VMWriter) WritePush(segment string, index int) {
	w.emit(fmt.Sprintf("push %s %d", segment, index))
}

// WritePop emits "pop <segment> <index>".
func (w *VMWriter) WritePop(segment string, index int) {
	w.emit(fmt.Sprintf("pop %s %d", segment, index))
}

// WriteArithmetic emits a unary or binary arithmetic command, expanding the
// two operations that aren't VM primitives (mul, div) into calls against
// the assumed-present Math library.
func (w *VMWriter) WriteArithmetic(op string) {
	switch op {
	case "mul":
		w.WriteCall("Math.multiply", 2)
	case "div":
		w.WriteCall("Math.divide", 2)
	default:
		w.emit(op)
	}
}

// WriteLabel emits "label <name>".
func (w *VMWriter) WriteLabel(name string) { w.emit("label " + name) }

// WriteGoto emits "goto <name>".
func (w *VMWriter) WriteGoto(name string) { w.emit("goto " + name) }

// WriteIf emits "if-goto <name>".
func (w *VMWriter) WriteIf(name string) { w.emit("if-goto " + name) }

// WriteCall emits "call <name> <nArgs>".
func (w *VMWriter) WriteCall(name string, nArgs int) {
	w.emit(fmt.Sprintf("call %s %d", name, nArgs))
}

// WriteFunction emits "function <name> <nLocals>".
func (w *VMWriter) WriteFunction(name string, nLocals int) {
	w.emit(fmt.Sprintf("function %s %d", name, nLocals))
}

// WriteReturn emits "return".
func (w *VMWriter) WriteReturn() { w.emit("return") }

// WriteStringConstant emits the sequence that builds a String object for a
// literal: allocate by length, then append each character by code point.
func (w *VMWriter) WriteStringConstant(s string) {
	w.WritePush("constant", len(s))
	w.WriteCall("String.new", 1)
	for _, r := range s {
		w.WritePush("constant", int(r))
		w.WriteCall("String.appendChar", 2)
	}
}

// String returns the accumulated VM program, one command per line.
func (w *VMWriter) String() string {
	if len(w.lines) == 0 {
		return ""
	}
	return strings.Join(w.lines, "\n") + "\n"
}
