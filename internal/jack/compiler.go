package jack

import (
	"fmt"

	"github.com/n2t/toolchain/internal/n2terr"
	"github.com/n2t/toolchain/internal/panicerr"
)

// Compile tokenizes and compiles a single Jack class, returning the VM
// program as text. It is the pure (stem, source) -> (text, error) entry
// point the driver layer calls; no file I/O happens here.
func Compile(stem string, source string) (string, error) {
	tokens, err := Tokenize(stem, source)
	if err != nil {
		return "", err
	}

	c := &compiler{
		stem:   stem,
		stream: NewTokenStream(tokens),
		table:  NewSymbolTable(),
		out:    &VMWriter{},
	}

	err = panicerr.Try("compiling "+stem, func() {
		c.compileClass()
	})
	if err != nil {
		return "", err
	}
	return c.out.String(), nil
}

// compiler is the recursive-descent engine: a single forward pass over the
// token stream that emits VM code directly, with no intermediate AST. Parse
// failures abort the whole compilation by panicking with a *n2terr.ParseError
// or *n2terr.SymbolError; Compile recovers exactly one such panic at the top.
type compiler struct {
	stem      string
	stream    *TokenStream
	table     *SymbolTable
	out       *VMWriter
	className string
	labelSeq  int
}

func (c *compiler) fail(expected string, got Token) {
	panic(&n2terr.ParseError{Stem: c.stem, Expected: expected, Got: got.Value})
}

func (c *compiler) undeclared(name string) {
	panic(&n2terr.SymbolError{Stem: c.stem, Name: name})
}

// current returns the token at the head of the stream, or a zero Token at
// end of input (callers compare against specific values, so a zero Token
// simply never matches and naturally produces a ParseError downstream).
func (c *compiler) current() Token {
	tok, _ := c.stream.Current()
	return tok
}

// advance moves the head forward and returns the new current token.
func (c *compiler) advance() Token {
	c.stream.PopCurrent()
	return c.current()
}

// expect asserts the current token equals each of terminals in turn,
// advancing past each; called with no arguments it just advances once.
func (c *compiler) expect(terminals ...string) {
	if len(terminals) == 0 {
		c.advance()
		return
	}
	for _, want := range terminals {
		if !c.current().Is(want) {
			c.fail(want, c.current())
		}
		c.advance()
	}
}

func (c *compiler) nextLabel(prefix string) string {
	c.labelSeq++
	return fmt.Sprintf("%s_%d", prefix, c.labelSeq)
}

func (c *compiler) qualify(name string) string {
	return c.className + "." + name
}

// compileClass := 'class' ID '{' classVarDec* subroutineDec* '}'
func (c *compiler) compileClass() {
	c.expect("class")
	c.table.StartClass()

	name := c.requireIdentifier()
	c.className = name
	c.advance()

	c.expect("{")
	for c.atClassVarDec() {
		c.compileClassVarDec()
	}
	for c.atSubroutineDec() {
		c.compileSubroutineDec()
	}
	if !c.current().Is("}") {
		c.fail("}", c.current())
	}
}

func (c *compiler) atClassVarDec() bool {
	return c.current().Is("static") || c.current().Is("field")
}

// classVarDec := ('static'|'field') type ID (',' ID)* ';'
func (c *compiler) compileClassVarDec() {
	var kind Kind
	switch {
	case c.current().Is("static"):
		kind = KindStatic
	case c.current().Is("field"):
		kind = KindField
	default:
		c.fail(`"static" or "field"`, c.current())
	}
	c.advance()
	c.compileVarSequence(kind)
}

// compileVarSequence parses "type ID (',' ID)* ';'" and declares each name
// under kind, returning how many were declared.
func (c *compiler) compileVarSequence(kind Kind) int {
	declaredType := c.requireType()
	c.advance()

	n := 0
	for {
		name := c.requireIdentifier()
		c.advance()
		c.table.Define(name, declaredType, kind)
		n++
		if c.current().Is(",") {
			c.advance()
			continue
		}
		break
	}
	c.expect(";")
	return n
}

func (c *compiler) atSubroutineDec() bool {
	return c.current().Is("constructor") || c.current().Is("function") || c.current().Is("method")
}

// subroutineDec := ('constructor'|'function'|'method') (type|'void') ID
//                   '(' paramList ')' subroutineBody
func (c *compiler) compileSubroutineDec() {
	c.table.StartSubroutine()

	kind := c.current().Value
	if kind != "constructor" && kind != "function" && kind != "method" {
		c.fail(`"constructor", "function" or "method"`, c.current())
	}

	if kind == "method" {
		c.table.Define("this", c.className, KindArg)
	}

	c.advance() // consume kind
	c.advance() // consume return type
	name := c.requireIdentifier()
	c.advance()

	c.expect("(")
	if !c.current().Is(")") {
		c.compileParameterList()
	}
	c.expect(")")

	c.compileSubroutineBody(name, kind)
}

// paramList := (type ID (',' type ID)*)?
func (c *compiler) compileParameterList() {
	for {
		declaredType := c.requireType()
		c.advance()
		name := c.requireIdentifier()
		c.advance()
		c.table.Define(name, declaredType, KindArg)

		if c.current().Is(",") {
			c.advance()
			continue
		}
		break
	}
}

// subroutineBody := '{' varDec* statements '}'
func (c *compiler) compileSubroutineBody(name string, kind string) {
	c.expect("{")

	nLocals := 0
	for c.current().Is("var") {
		c.advance()
		nLocals += c.compileVarSequence(KindVar)
	}

	c.out.WriteFunction(c.qualify(name), nLocals)

	switch kind {
	case "constructor":
		nFields := c.table.Count(KindField)
		c.out.WritePush("constant", nFields)
		c.out.WriteCall("Memory.alloc", 1)
		c.out.WritePop("pointer", 0)
	case "method":
		c.out.WritePush("argument", 0)
		c.out.WritePop("pointer", 0)
	}

	c.compileStatements()
	c.expect("}")
}

// statements := (let|if|while|do|return)*
func (c *compiler) compileStatements() {
	for !c.current().Is("}") {
		switch {
		case c.current().Is("let"):
			c.compileLet()
		case c.current().Is("if"):
			c.compileIf()
		case c.current().Is("while"):
			c.compileWhile()
		case c.current().Is("do"):
			c.compileDo()
		case c.current().Is("return"):
			c.compileReturn()
		default:
			c.fail(`"let", "if", "while", "do" or "return"`, c.current())
		}
	}
}

// let := 'let' ID ('[' expr ']')? '=' expr ';'
func (c *compiler) compileLet() {
	c.expect("let")
	name := c.requireIdentifier()
	c.advance()

	if c.current().Is("[") {
		c.advance()
		c.compileArrayAddress(name)
		c.expect("]")

		c.expect("=")
		c.compileExpression()
		c.expect(";")

		c.out.WritePop("temp", 0)
		c.out.WritePop("pointer", 1)
		c.out.WritePush("temp", 0)
		c.out.WritePop("that", 0)
		return
	}

	c.expect("=")
	c.compileExpression()
	c.expect(";")

	segment, index := c.variableAccess(name)
	c.out.WritePop(segment, index)
}

// compileArrayAddress pushes base(name) + index expression, leaving the
// target address on top of the stack.
func (c *compiler) compileArrayAddress(name string) {
	c.compileExpression()
	segment, index := c.variableAccess(name)
	c.out.WritePush(segment, index)
	c.out.WriteArithmetic("add")
}

// if := 'if' '(' expr ')' '{' stmts '}' ('else' '{' stmts '}')?
func (c *compiler) compileIf() {
	c.expect("if", "(")
	elseLabel := c.nextLabel("IF_FALSE")
	endLabel := c.nextLabel("IF_END")

	c.compileExpression()
	c.out.WriteArithmetic("not")
	c.out.WriteIf(elseLabel)

	c.expect(")", "{")
	c.compileStatements()
	c.expect("}")

	c.out.WriteGoto(endLabel)
	c.out.WriteLabel(elseLabel)

	if c.current().Is("else") {
		c.expect("else", "{")
		c.compileStatements()
		c.expect("}")
	}

	c.out.WriteLabel(endLabel)
}

// while := 'while' '(' expr ')' '{' stmts '}'
func (c *compiler) compileWhile() {
	c.expect("while", "(")
	beginLabel := c.nextLabel("WHILE_EXP")
	endLabel := c.nextLabel("WHILE_END")

	c.out.WriteLabel(beginLabel)
	c.compileExpression()
	c.out.WriteArithmetic("not")
	c.out.WriteIf(endLabel)

	c.expect(")", "{")
	c.compileStatements()
	c.expect("}")

	c.out.WriteGoto(beginLabel)
	c.out.WriteLabel(endLabel)
}

// do := 'do' subroutineCall ';'
func (c *compiler) compileDo() {
	c.expect("do")
	c.compileSubroutineCall("")
	c.out.WritePop("temp", 0)
	c.expect(";")
}

// return := 'return' expr? ';'
func (c *compiler) compileReturn() {
	c.expect("return")
	if !c.current().Is(";") {
		c.compileExpression()
	} else {
		c.out.WritePush("constant", 0)
	}
	c.out.WriteReturn()
	c.expect(";")
}

var binaryOps = map[string]string{
	"+": "add", "-": "sub", "*": "mul", "/": "div",
	"&": "and", "|": "or", "<": "lt", ">": "gt", "=": "eq",
}

var unaryOps = map[string]string{
	"-": "neg", "~": "not",
}

// expr := term (op term)*, evaluated strictly left to right with no
// operator precedence.
func (c *compiler) compileExpression() {
	c.compileTerm()
	for {
		op, ok := binaryOps[c.current().Value]
		if !ok || c.current().Type != SymbolToken {
			return
		}
		c.advance()
		c.compileTerm()
		c.out.WriteArithmetic(op)
	}
}

// compileExpressionList := (expr (',' expr)*)?, returns the argument count.
func (c *compiler) compileExpressionList() int {
	if c.current().Is(")") {
		return 0
	}
	n := 1
	c.compileExpression()
	for c.current().Is(",") {
		c.advance()
		c.compileExpression()
		n++
	}
	return n
}

// term := int | str | kwConst | varName | varName '[' expr ']'
//       | subroutineCall | '(' expr ')' | unaryOp term
func (c *compiler) compileTerm() {
	tok := c.current()
	switch {
	case tok.Type == IntegerConstant:
		c.out.WritePush("constant", tok.IntValue())
		c.advance()
	case tok.Type == StringConstant:
		c.out.WriteStringConstant(tok.Value)
		c.advance()
	case tok.Type == Keyword:
		c.compileKeywordConstant(tok)
		c.advance()
	case tok.Is("("):
		c.advance()
		c.compileExpression()
		c.expect(")")
	case tok.Type == SymbolToken && unaryOps[tok.Value] != "":
		op := unaryOps[tok.Value]
		c.advance()
		c.compileTerm()
		c.out.WriteArithmetic(op)
	case tok.Type == Identifier:
		c.compileVarOrCallTerm()
	default:
		c.fail("a term", tok)
	}
}

func (c *compiler) compileKeywordConstant(tok Token) {
	switch tok.Value {
	case "true":
		c.out.WritePush("constant", 1)
		c.out.WriteArithmetic("neg")
	case "false", "null":
		c.out.WritePush("constant", 0)
	case "this":
		c.out.WritePush("pointer", 0)
	default:
		c.fail(`"true", "false", "null" or "this"`, tok)
	}
}

// compileVarOrCallTerm handles the three productions that start with an
// identifier: plain variable access, array indexing, and subroutine calls.
func (c *compiler) compileVarOrCallTerm() {
	name := c.current().Value
	c.advance()

	switch {
	case c.current().Is("["):
		c.advance()
		c.compileArrayAddress(name)
		c.expect("]")
		c.out.WritePop("pointer", 1)
		c.out.WritePush("that", 0)
	case c.current().Is("(") || c.current().Is("."):
		c.compileSubroutineCall(name)
	default:
		segment, index := c.variableAccess(name)
		c.out.WritePush(segment, index)
	}
}

// subroutineCall := ID ( '(' exprList ')' | '.' ID '(' exprList ')' )
//
// name is the identifier already consumed by the caller (empty for a bare
// "do f(...)" where compileDo hasn't looked ahead).
func (c *compiler) compileSubroutineCall(name string) {
	if name == "" {
		name = c.requireIdentifier()
		c.advance()
	}

	if c.current().Is(".") {
		c.advance()
		methodName := c.requireIdentifier()
		c.advance()

		nArgs := 0
		fullName := name + "." + methodName
		if entry, ok := c.table.Lookup(name); ok {
			segment, index := entry.Kind.Segment(), entry.Index
			c.out.WritePush(segment, index)
			nArgs = 1
			fullName = entry.Type + "." + methodName
		}

		c.expect("(")
		nArgs += c.compileExpressionList()
		c.expect(")")

		c.out.WriteCall(fullName, nArgs)
		return
	}

	if c.current().Is("(") {
		c.out.WritePush("pointer", 0)
		c.advance()
		nArgs := 1 + c.compileExpressionList()
		c.expect(")")
		c.out.WriteCall(c.qualify(name), nArgs)
		return
	}

	c.fail(`"(" or "."`, c.current())
}

// variableAccess resolves name to its VM segment and index, panicking with
// a SymbolError if it was never declared.
func (c *compiler) variableAccess(name string) (string, int) {
	entry, ok := c.table.Lookup(name)
	if !ok {
		c.undeclared(name)
	}
	return entry.Kind.Segment(), entry.Index
}

func (c *compiler) requireIdentifier() string {
	tok := c.current()
	if tok.Type != Identifier {
		c.fail("an identifier", tok)
	}
	return tok.Value
}

func (c *compiler) requireType() string {
	tok := c.current()
	if tok.Is("int") || tok.Is("char") || tok.Is("boolean") {
		return tok.Value
	}
	if tok.Type == Identifier {
		return tok.Value
	}
	c.fail("a type", tok)
	return ""
}
