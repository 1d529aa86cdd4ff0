// Copyright 2015 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package tinyc

// This file implements the recursive-descent parser.  Expressions are
// parsed with an explicit precedence ladder, one method per level, from
// assignment (lowest, right associative) down to primary.
//
// The parser never fails hard.  The first error puts it into panic mode,
// which suppresses further reports until it resynchronizes on a statement
// or declaration boundary; missing tokens leave a nil child behind and
// parsing continues.

import (
	"strconv"
)

// maxParseErrors caps the number of errors reported before the parser
// gives up on the input entirely.
const maxParseErrors = 50

type parser struct {
	lex    *lexer
	tokens []*Token // stack of pushed tokens (for backing up)
	errs   *Diagnostics

	prev      *Token // last consumed token, consulted on resynchronization
	panicMode bool   // suppress error reports until the next boundary
	tooMany   bool   // the error cap was hit; stop parsing
}

// Parse parses input as a TinyC program and returns the tree along with
// every error encountered.  The path parameter should be the source name
// the input was read from (e.g., the file name).  Lexical errors surface
// here too: the lexer hands them over as error tokens.  A tree is always
// returned; it is only trustworthy if the diagnostics are empty.
func Parse(input, path string) (*Program, *Diagnostics) {
	p := &parser{
		lex:  newLexer(input, path),
		errs: newDiagnostics(StageParse),
	}
	return p.parseProgram(), p.errs
}

// push pushes tokens t back on the input stream so they will be the next
// tokens returned by next.  The tokens list is a LIFO.
func (p *parser) push(t ...*Token) {
	p.tokens = append(p.tokens, t...)
}

// pop returns the last token pushed, or nil if the token stack is empty.
func (p *parser) pop() *Token {
	if n := len(p.tokens); n > 0 {
		t := p.tokens[n-1]
		p.tokens = p.tokens[:n-1]
		return t
	}
	return nil
}

// next returns the next token from the lexer.  Error tokens are reported
// as lexical diagnostics and skipped; the parser never sees them.
func (p *parser) next() *Token {
	if t := p.pop(); t != nil {
		return t
	}
	for {
		t := p.lex.NextToken()
		if t.Code() != tError {
			return t
		}
		p.errs.add(&Error{Stage: StageLex, Line: t.Line, Col: t.Col, Msg: t.Text})
	}
}

// advance consumes and returns the next token.
func (p *parser) advance() *Token {
	t := p.next()
	p.prev = t
	return t
}

// peek returns the next token without consuming it.
func (p *parser) peek() *Token {
	t := p.next()
	p.push(t)
	return t
}

// match consumes and returns the next token if it has code c.
func (p *parser) match(c code) *Token {
	if p.peek().Code() == c {
		return p.advance()
	}
	return nil
}

// expect consumes the next token if it has code c, and otherwise reports
// msg at the current token and consumes nothing.
func (p *parser) expect(c code, msg string) *Token {
	if t := p.match(c); t != nil {
		return t
	}
	p.errorAt(p.peek(), msg)
	return nil
}

// errorAt reports a positioned error unless the parser is already in
// panic mode.  Hitting the error cap terminates parsing.
func (p *parser) errorAt(t *Token, format string, v ...interface{}) {
	if p.tooMany || p.panicMode {
		return
	}
	p.panicMode = true
	p.errs.errorf(t.Line, t.Col, format, v...)
	if p.errs.Len() >= maxParseErrors {
		p.tooMany = true
		p.errs.errorf(t.Line, t.Col, "Too many parse errors")
	}
}

// synchronize leaves panic mode by skipping ahead to a statement or
// declaration boundary: just past a ';', or in front of a token that can
// begin a statement or declaration.  A '}' also stops the skip so a
// statement error cannot eat its block's closing brace.
func (p *parser) synchronize() {
	p.panicMode = false
	for !p.tooMany {
		if p.prev != nil && p.prev.Code() == code(';') {
			return
		}
		switch p.peek().Code() {
		case tEOF, code('}'), tIf, tFor, tWhile, tReturn, tInt, tChar, tVoid:
			return
		}
		p.advance()
	}
}

// pos returns t's source location.
func pos(t *Token) Pos {
	if t == nil {
		return Pos{}
	}
	return Pos{Line: t.Line, Col: t.Col}
}

// nodePos returns n's location, falling back to t's when n is missing.
func nodePos(n Node, t *Token) Pos {
	if n != nil {
		return n.Pos()
	}
	return pos(t)
}

// parseProgram parses declarations until end of input.
func (p *parser) parseProgram() *Program {
	prog := &Program{node: node{pos: Pos{Line: 1, Col: 1}}}
	for !p.tooMany && p.peek().Code() != tEOF {
		before := p.peek()
		if d := p.parseDeclaration(); d != nil {
			prog.Decls = append(prog.Decls, d)
		}
		if p.panicMode {
			p.synchronize()
		}
		if p.peek() == before {
			// Whatever it was, it didn't parse; don't loop on it.
			p.advance()
		}
	}
	return prog
}

// parseType parses a type specifier: int, void, or char with an optional
// '*'.  It reports ok=false, consuming nothing, if the next token does not
// begin a type.
func (p *parser) parseType() (DataType, *Token, bool) {
	switch t := p.peek(); t.Code() {
	case tInt:
		return Int, p.advance(), true
	case tVoid:
		return Void, p.advance(), true
	case tChar:
		t = p.advance()
		if p.match(code('*')) != nil {
			return CharPtr, t, true
		}
		return Char, t, true
	default:
		return Void, t, false
	}
}

// parseDeclaration parses one top-level declaration: a function prototype,
// a function definition, or a global variable.
func (p *parser) parseDeclaration() Node {
	typ, ttok, ok := p.parseType()
	if !ok {
		p.errorAt(ttok, "Expected type specifier")
		return nil
	}
	name := p.expect(tIdentifier, "Expected identifier after type")
	if name == nil {
		return nil
	}
	if p.peek().Code() == code('(') {
		return p.parseFunctionTail(typ, ttok, name)
	}
	return p.parseVarTail(typ, ttok, name)
}

// parseFunctionTail parses the remainder of a function declaration after
// its return type and name: the parameter list and either ';' or a body.
func (p *parser) parseFunctionTail(ret DataType, ttok, name *Token) Node {
	fn := &FuncDecl{
		node: node{pos: pos(ttok)},
		Name: name.Text,
		Ret:  ret,
	}
	p.advance() // the '('
	if p.peek().Code() != code(')') {
		for {
			ptyp, pttok, ok := p.parseType()
			if !ok {
				p.errorAt(pttok, "Expected parameter type")
				break
			}
			pname := p.expect(tIdentifier, "Expected parameter name")
			if pname == nil {
				break
			}
			fn.Params = append(fn.Params, &Param{
				node: node{pos: pos(pttok), typ: ptyp},
				Name: pname.Text,
			})
			if p.match(code(',')) == nil {
				break
			}
		}
	}
	p.expect(code(')'), "Expected ')' after parameters")
	if p.match(code(';')) != nil {
		return fn // prototype
	}
	if p.peek().Code() != code('{') {
		p.errorAt(p.peek(), "Expected function body")
		return fn
	}
	fn.Body = p.parseBlock()
	return fn
}

// parseVarTail parses the remainder of a variable declaration after its
// type and name: an optional initializer and the terminating ';'.
func (p *parser) parseVarTail(typ DataType, ttok, name *Token) Node {
	v := &VarDecl{
		node: node{pos: pos(ttok), typ: typ},
		Name: name.Text,
	}
	if p.match(code('=')) != nil {
		v.Init = p.parseExpression()
	}
	p.expect(code(';'), "Expected ';' after variable declaration")
	return v
}

// parseStatement parses a single statement.
func (p *parser) parseStatement() Node {
	switch p.peek().Code() {
	case code('{'):
		return p.parseBlock()
	case tIf:
		return p.parseIf()
	case tWhile:
		return p.parseWhile()
	case tFor:
		return p.parseFor()
	case tReturn:
		return p.parseReturn()
	case tInt, tChar, tVoid:
		typ, ttok, _ := p.parseType()
		name := p.expect(tIdentifier, "Expected identifier after type")
		if name == nil {
			return nil
		}
		return p.parseVarTail(typ, ttok, name)
	default:
		return p.parseExprStmt()
	}
}

// parseBlock parses a brace-enclosed statement list.
func (p *parser) parseBlock() *Block {
	open := p.expect(code('{'), "Expected '{'")
	b := &Block{node: node{pos: pos(open)}}
	for !p.tooMany {
		switch p.peek().Code() {
		case code('}'), tEOF:
			p.expect(code('}'), "Expected '}' after block")
			return b
		}
		before := p.peek()
		if s := p.parseStatement(); s != nil {
			b.Stmts = append(b.Stmts, s)
		}
		if p.panicMode {
			p.synchronize()
		}
		if p.peek() == before {
			p.advance()
		}
	}
	return b
}

func (p *parser) parseIf() Node {
	kw := p.advance() // 'if'
	s := &IfStmt{node: node{pos: pos(kw)}}
	p.expect(code('('), "Expected '(' after 'if'")
	s.Cond = p.parseExpression()
	p.expect(code(')'), "Expected ')' after condition")
	s.Then = p.parseStatement()
	if p.match(tElse) != nil {
		s.Else = p.parseStatement()
	}
	return s
}

func (p *parser) parseWhile() Node {
	kw := p.advance() // 'while'
	s := &WhileStmt{node: node{pos: pos(kw)}}
	p.expect(code('('), "Expected '(' after 'while'")
	s.Cond = p.parseExpression()
	p.expect(code(')'), "Expected ')' after condition")
	s.Body = p.parseStatement()
	return s
}

func (p *parser) parseFor() Node {
	kw := p.advance() // 'for'
	s := &ForStmt{node: node{pos: pos(kw)}}
	p.expect(code('('), "Expected '(' after 'for'")

	// Initializer: empty, a variable declaration, or an expression.
	switch p.peek().Code() {
	case code(';'):
		p.advance()
	case tInt, tChar, tVoid:
		typ, ttok, _ := p.parseType()
		name := p.expect(tIdentifier, "Expected identifier after type")
		if name != nil {
			s.Init = p.parseVarTail(typ, ttok, name)
		}
	default:
		e := p.parseExpression()
		p.expect(code(';'), "Expected ';' after loop initializer")
		s.Init = &ExprStmt{node: node{pos: nodePos(e, kw)}, Expr: e}
	}

	if p.peek().Code() != code(';') {
		s.Cond = p.parseExpression()
	}
	p.expect(code(';'), "Expected ';' after loop condition")

	if p.peek().Code() != code(')') {
		s.Update = p.parseExpression()
	}
	p.expect(code(')'), "Expected ')' after for clauses")

	s.Body = p.parseStatement()
	return s
}

func (p *parser) parseReturn() Node {
	kw := p.advance() // 'return'
	s := &ReturnStmt{node: node{pos: pos(kw)}}
	if p.peek().Code() != code(';') {
		s.Value = p.parseExpression()
	}
	p.expect(code(';'), "Expected ';' after return statement")
	return s
}

func (p *parser) parseExprStmt() Node {
	if t := p.match(code(';')); t != nil {
		return &ExprStmt{node: node{pos: pos(t)}}
	}
	e := p.parseExpression()
	p.expect(code(';'), "Expected ';' after expression")
	return &ExprStmt{node: node{pos: nodePos(e, p.prev)}, Expr: e}
}

// parseExpression parses an expression at the lowest precedence level.
func (p *parser) parseExpression() Node {
	return p.parseAssignment()
}

// parseAssignment parses "lhs = rhs" right associatively.
func (p *parser) parseAssignment() Node {
	lhs := p.parseLogicalOr()
	if t := p.match(code('=')); t != nil {
		rhs := p.parseAssignment()
		return &BinaryExpr{
			node: node{pos: nodePos(lhs, t)},
			Op:   OpAssign,
			LHS:  lhs,
			RHS:  rhs,
		}
	}
	return lhs
}

// binaryLevel parses a run of left-associative operators from a single
// precedence level.  ops maps the token codes of the level to their
// operators; higher parses the next level up.
func (p *parser) binaryLevel(ops map[code]BinaryOp, higher func() Node) Node {
	lhs := higher()
	for {
		op, ok := ops[p.peek().Code()]
		if !ok {
			return lhs
		}
		t := p.advance()
		rhs := higher()
		lhs = &BinaryExpr{
			node: node{pos: nodePos(lhs, t)},
			Op:   op,
			LHS:  lhs,
			RHS:  rhs,
		}
	}
}

var (
	logicalOrOps  = map[code]BinaryOp{tOr: OpOr}
	logicalAndOps = map[code]BinaryOp{tAnd: OpAnd}
	equalityOps   = map[code]BinaryOp{tEq: OpEq, tNe: OpNe}
	relationalOps = map[code]BinaryOp{
		code('<'): OpLt,
		tLe:       OpLe,
		code('>'): OpGt,
		tGe:       OpGe,
	}
	additiveOps       = map[code]BinaryOp{code('+'): OpAdd, code('-'): OpSub}
	multiplicativeOps = map[code]BinaryOp{
		code('*'): OpMul,
		code('/'): OpDiv,
		code('%'): OpRem,
	}
)

func (p *parser) parseLogicalOr() Node {
	return p.binaryLevel(logicalOrOps, p.parseLogicalAnd)
}

func (p *parser) parseLogicalAnd() Node {
	return p.binaryLevel(logicalAndOps, p.parseEquality)
}

func (p *parser) parseEquality() Node {
	return p.binaryLevel(equalityOps, p.parseRelational)
}

func (p *parser) parseRelational() Node {
	return p.binaryLevel(relationalOps, p.parseAdditive)
}

func (p *parser) parseAdditive() Node {
	return p.binaryLevel(additiveOps, p.parseMultiplicative)
}

func (p *parser) parseMultiplicative() Node {
	return p.binaryLevel(multiplicativeOps, p.parseUnary)
}

// parseUnary parses chained prefix operators.
func (p *parser) parseUnary() Node {
	var op UnaryOp
	switch p.peek().Code() {
	case code('!'):
		op = OpNot
	case code('-'):
		op = OpNeg
	case code('+'):
		op = OpPlus
	default:
		return p.parsePostfix()
	}
	t := p.advance()
	return &UnaryExpr{
		node:    node{pos: pos(t)},
		Op:      op,
		Operand: p.parseUnary(),
	}
}

// parsePostfix parses a primary expression followed by zero or more call
// suffixes.  Only identifiers may be called; a call suffix on anything
// else is reported and discarded.
func (p *parser) parsePostfix() Node {
	e := p.parsePrimary()
	for p.peek().Code() == code('(') {
		open := p.peek()
		args := p.parseArgs()
		id, ok := e.(*Ident)
		if !ok {
			p.errorAt(open, "Can only call identifiers")
			continue
		}
		e = &CallExpr{
			node: node{pos: id.Pos()},
			Name: id.Name,
			Args: args,
		}
	}
	return e
}

// parseArgs parses a parenthesized, comma-separated argument list.
func (p *parser) parseArgs() []Node {
	p.advance() // the '('
	var args []Node
	if p.peek().Code() != code(')') {
		for {
			args = append(args, p.parseExpression())
			if p.match(code(',')) == nil {
				break
			}
		}
	}
	p.expect(code(')'), "Expected ')' after arguments")
	return args
}

// parsePrimary parses a primary expression: a literal, an identifier,
// or a parenthesized expression.
func (p *parser) parsePrimary() Node {
	switch t := p.peek(); t.Code() {
	case tNumber:
		p.advance()
		// The lexer only hands over digit runs; decode as a 32-bit
		// value with C truncation semantics on overflow.
		v, _ := strconv.ParseUint(t.Text, 10, 64)
		return &NumberLit{node: node{pos: pos(t)}, Value: int32(v)}
	case tString:
		p.advance()
		return &StringLit{node: node{pos: pos(t)}, Value: t.Text}
	case tIdentifier:
		p.advance()
		return &Ident{node: node{pos: pos(t)}, Name: t.Text}
	case code('('):
		p.advance()
		e := p.parseExpression()
		p.expect(code(')'), "Expected ')' after expression")
		return e
	default:
		p.errorAt(t, "Expected expression")
		return nil
	}
}
