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

// This file implements semantic analysis.  Analysis runs in two passes:
// the first declares every top-level function so bodies can call forward,
// the second walks globals and function bodies in order, typing every
// expression against the scope stack.
//
// Type equality is strict and nominal.  int and char are both numeric and
// mix freely in arithmetic and boolean positions, but they are never
// assignment compatible, and neither is char*.

// An analysis error never aborts the walk; the offending node is typed
// void and analysis continues with its siblings.

type analyzer struct {
	errs   *Diagnostics
	global *Scope
	scope  *Scope

	fn *FuncDecl // function whose body is being analyzed, nil outside

	// builtins names the runtime functions predeclared in the global
	// scope.  A user declaration of one of these replaces it silently.
	builtins map[string]bool
}

// Analyze type checks prog, annotating every expression node, and returns
// the global scope along with all errors found.  The tree is not
// restructured, only annotated.
func Analyze(prog *Program) (*Scope, *Diagnostics) {
	a := &analyzer{
		errs:     newDiagnostics(StageAnalyze),
		builtins: make(map[string]bool),
	}
	a.global = newScope(nil)
	a.scope = a.global
	a.declareRuntime()

	// Pass A: declare all top-level functions.
	for _, d := range prog.Decls {
		if fn, ok := d.(*FuncDecl); ok {
			a.declareFunction(fn)
		}
	}

	// Pass B: globals and bodies, in declaration order.
	for _, d := range prog.Decls {
		switch d := d.(type) {
		case *FuncDecl:
			if d.Body != nil {
				a.analyzeFunction(d)
			}
		case *VarDecl:
			a.analyzeGlobalVar(d)
		}
	}
	return a.global, a.errs
}

// errorf reports an error at n's position, attributed to the function
// being analyzed if there is one.
func (a *analyzer) errorf(n Node, format string, v ...interface{}) {
	context := ""
	if a.fn != nil {
		context = a.fn.Name
	}
	p := Pos{}
	if n != nil {
		p = n.Pos()
	}
	a.errs.errorfIn(context, p.Line, p.Col, format, v...)
}

// declareRuntime predeclares the functions exported by the runtime so
// programs can call them without writing prototypes.
func (a *analyzer) declareRuntime() {
	for _, sym := range []*Symbol{
		{Name: "print", Kind: SymbolFunction, Type: Void, Func: &FuncInfo{Params: []DataType{CharPtr}}},
		{Name: "print_int", Kind: SymbolFunction, Type: Void, Func: &FuncInfo{Params: []DataType{Int}}},
		{Name: "print_char", Kind: SymbolFunction, Type: Void, Func: &FuncInfo{Params: []DataType{Char}}},
		{Name: "read_int", Kind: SymbolFunction, Type: Int, Func: &FuncInfo{}},
	} {
		a.global.declare(sym)
		a.builtins[sym.Name] = true
	}
}

// declareFunction enters fn into the global scope (pass A).
func (a *analyzer) declareFunction(fn *FuncDecl) {
	info := &FuncInfo{Defined: fn.Body != nil}
	for _, p := range fn.Params {
		info.Params = append(info.Params, p.Type())
	}
	sym := &Symbol{
		Name: fn.Name,
		Kind: SymbolFunction,
		Type: fn.Ret,
		Func: info,
	}
	if existing := a.global.lookupLocal(fn.Name); existing != nil {
		if !a.builtins[fn.Name] {
			a.errorf(fn, "Function '%s' already declared", fn.Name)
			return
		}
		// A user declaration takes the place of the predeclared
		// runtime function.
		delete(a.builtins, fn.Name)
		a.global.symbols[fn.Name] = sym
		return
	}
	a.global.declare(sym)
}

// analyzeGlobalVar checks a program-level variable declaration.
func (a *analyzer) analyzeGlobalVar(v *VarDecl) {
	if v.Type() == Void {
		a.errorf(v, "Cannot declare variable '%s' of type 'void'", v.Name)
		return
	}
	if v.Init != nil {
		t := a.expr(v.Init)
		switch v.Init.(type) {
		case *NumberLit, *StringLit:
		default:
			a.errorf(v.Init, "Global initializer must be constant")
		}
		if t != v.Type() {
			a.errorf(v, "Cannot initialize variable '%s' of type '%s' with expression of type '%s'",
				v.Name, v.Type(), t)
		}
	}
	if a.global.lookupLocal(v.Name) != nil {
		a.errorf(v, "Variable '%s' already declared", v.Name)
		return
	}
	a.global.declare(&Symbol{Name: v.Name, Kind: SymbolVariable, Type: v.Type()})
}

// analyzeFunction checks the body of fn.  Parameters live in their own
// scope; the body block pushes a second one, so a local may shadow a
// parameter.
func (a *analyzer) analyzeFunction(fn *FuncDecl) {
	a.scope = newScope(a.scope)
	a.fn = fn
	for _, p := range fn.Params {
		ok := a.scope.declare(&Symbol{
			Name: p.Name,
			Kind: SymbolParameter,
			Type: p.Type(),
		})
		if !ok {
			a.errorf(p, "Parameter '%s' already declared", p.Name)
		}
	}
	a.stmt(fn.Body)
	a.fn = nil
	a.scope = a.scope.parent
}

// stmt checks a single statement.
func (a *analyzer) stmt(n Node) {
	switch n := n.(type) {
	case nil:
	case *Block:
		a.scope = newScope(a.scope)
		for _, s := range n.Stmts {
			a.stmt(s)
		}
		a.scope = a.scope.parent
	case *VarDecl:
		a.localVar(n)
	case *IfStmt:
		a.condition(n.Cond)
		a.stmt(n.Then)
		a.stmt(n.Else)
	case *WhileStmt:
		a.condition(n.Cond)
		a.stmt(n.Body)
	case *ForStmt:
		a.scope = newScope(a.scope)
		a.stmt(n.Init)
		if n.Cond != nil {
			a.condition(n.Cond)
		}
		if n.Update != nil {
			a.expr(n.Update)
		}
		a.stmt(n.Body)
		a.scope = a.scope.parent
	case *ReturnStmt:
		a.ret(n)
	case *ExprStmt:
		if n.Expr != nil {
			a.expr(n.Expr)
		}
	default:
		// Expressions in statement position come from parser
		// recovery; type them and move on.
		a.expr(n)
	}
}

// localVar checks a variable declaration inside a function.
func (a *analyzer) localVar(v *VarDecl) {
	if v.Type() == Void {
		a.errorf(v, "Cannot declare variable '%s' of type 'void'", v.Name)
		return
	}
	if v.Init != nil {
		// The initializer is checked in the enclosing scope, so
		// "int x = x;" refers to the outer x.
		if t := a.expr(v.Init); t != v.Type() {
			a.errorf(v, "Cannot initialize variable '%s' of type '%s' with expression of type '%s'",
				v.Name, v.Type(), t)
		}
	}
	ok := a.scope.declare(&Symbol{Name: v.Name, Kind: SymbolVariable, Type: v.Type()})
	if !ok {
		a.errorf(v, "Variable '%s' already declared", v.Name)
	}
}

// condition checks the controlling expression of if, while, and for.
func (a *analyzer) condition(n Node) {
	if n == nil {
		return
	}
	if t := a.expr(n); !t.Numeric() {
		a.errorf(n, "Condition must be numeric, got '%s'", t)
	}
}

// ret checks a return statement against the enclosing function.
func (a *analyzer) ret(n *ReturnStmt) {
	if a.fn == nil {
		a.errorf(n, "Return statement outside of a function")
		return
	}
	if n.Value == nil {
		if a.fn.Ret != Void {
			a.errorf(n, "Missing return value in function returning '%s'", a.fn.Ret)
		}
		return
	}
	before := a.errs.Len()
	t := a.expr(n.Value)
	if a.fn.Ret == Void {
		a.errorf(n, "Cannot return a value from void function")
		return
	}
	// A value that failed to type has already been reported.
	if t != a.fn.Ret && a.errs.Len() == before {
		a.errorf(n, "Return type mismatch: expected '%s', got '%s'", a.fn.Ret, t)
	}
}

// expr types the expression rooted at n, annotates n, and returns the
// type.  Nodes that fail to type are void.
func (a *analyzer) expr(n Node) DataType {
	switch n := n.(type) {
	case nil:
		return Void
	case *NumberLit:
		n.typ = Int
	case *StringLit:
		n.typ = CharPtr
	case *Ident:
		if sym := a.scope.lookup(n.Name); sym != nil {
			n.typ = sym.Type
		} else {
			a.errorf(n, "Undefined identifier '%s'", n.Name)
			n.typ = Void
		}
	case *UnaryExpr:
		if t := a.expr(n.Operand); t.Numeric() {
			n.typ = Int
		} else {
			a.errorf(n, "Cannot apply unary operator '%s' to type '%s'", n.Op, t)
			n.typ = Void
		}
	case *BinaryExpr:
		a.binary(n)
	case *CallExpr:
		a.call(n)
	default:
		return Void
	}
	return n.Type()
}

// binary types a binary expression per the operator's rules: assignment
// needs equal types and an identifier target, arithmetic and logical
// operators need numeric operands, comparisons need equal operand types.
func (a *analyzer) binary(n *BinaryExpr) {
	if n.Op == OpAssign {
		rt := a.expr(n.RHS)
		id, ok := n.LHS.(*Ident)
		if !ok {
			a.expr(n.LHS)
			a.errorf(n, "Invalid assignment target")
			n.typ = Void
			return
		}
		lt := a.expr(id)
		if lt != rt {
			a.errorf(n, "Cannot assign value of type '%s' to variable '%s' of type '%s'",
				rt, id.Name, lt)
			n.typ = Void
			return
		}
		n.typ = lt
		return
	}

	lt := a.expr(n.LHS)
	rt := a.expr(n.RHS)
	switch n.Op {
	case OpAdd, OpSub, OpMul, OpDiv, OpRem, OpAnd, OpOr:
		if !lt.Numeric() || !rt.Numeric() {
			a.errorf(n, "Cannot apply operator '%s' to types '%s' and '%s'", n.Op, lt, rt)
			n.typ = Void
			return
		}
	case OpEq, OpNe, OpLt, OpLe, OpGt, OpGe:
		if lt != rt {
			a.errorf(n, "Cannot apply operator '%s' to types '%s' and '%s'", n.Op, lt, rt)
			n.typ = Void
			return
		}
	}
	n.typ = Int
}

// call types a function call: the callee must resolve to a function
// symbol, the argument count must match the declared arity, and every
// argument type must equal its parameter type.
func (a *analyzer) call(n *CallExpr) {
	var argTypes []DataType
	for _, arg := range n.Args {
		argTypes = append(argTypes, a.expr(arg))
	}

	sym := a.scope.lookup(n.Name)
	if sym == nil {
		a.errorf(n, "Undefined function '%s'", n.Name)
		n.typ = Void
		return
	}
	if sym.Kind != SymbolFunction {
		a.errorf(n, "'%s' is not a function", n.Name)
		n.typ = Void
		return
	}
	if len(argTypes) != len(sym.Func.Params) {
		a.errorf(n, "Function '%s' expects %d arguments, got %d",
			n.Name, len(sym.Func.Params), len(argTypes))
		n.typ = Void
		return
	}
	for i, want := range sym.Func.Params {
		if argTypes[i] != want {
			a.errorf(n.Args[i], "Argument %d to '%s' has type '%s', expected '%s'",
				i+1, n.Name, argTypes[i], want)
			n.typ = Void
			return
		}
	}
	n.typ = sym.Type
}
