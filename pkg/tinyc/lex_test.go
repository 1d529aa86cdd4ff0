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

import (
	"runtime"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// line returns the line number from which it was called.
// Used to mark where test entries are in the source.
func line() int {
	_, _, line, _ := runtime.Caller(1)
	return line
}

// Equal returns true if t and tt are equal (have the same code and text),
// false if not.
func (t *Token) Equal(tt *Token) bool {
	return t.code == tt.code && t.Text == tt.Text
}

// T creates a new token from the provided code and string.
func T(c code, text string) *Token { return &Token{code: c, Text: text} }

// tokens lexes in and returns everything before the final EOF token.
func tokens(in string) []*Token {
	ts := Tokenize(in, "test")
	return ts[:len(ts)-1]
}

func TestLex(t *testing.T) {
	for _, tt := range []struct {
		line   int
		in     string
		tokens []*Token
	}{
		{line(), "", nil},
		{line(), "   \t\n\r  ", nil},
		{line(), "x", []*Token{
			T(tIdentifier, "x"),
		}},
		{line(), "int x;", []*Token{
			T(tInt, "int"),
			T(tIdentifier, "x"),
			T(code(';'), ";"),
		}},
		{line(), "ints integer_1 _if", []*Token{
			T(tIdentifier, "ints"),
			T(tIdentifier, "integer_1"),
			T(tIdentifier, "_if"),
		}},
		{line(), "int char void if else while for return", []*Token{
			T(tInt, "int"),
			T(tChar, "char"),
			T(tVoid, "void"),
			T(tIf, "if"),
			T(tElse, "else"),
			T(tWhile, "while"),
			T(tFor, "for"),
			T(tReturn, "return"),
		}},
		{line(), "0 7 123 007", []*Token{
			T(tNumber, "0"),
			T(tNumber, "7"),
			T(tNumber, "123"),
			T(tNumber, "007"),
		}},
		{line(), "123abc", []*Token{
			T(tNumber, "123"),
			T(tIdentifier, "abc"),
		}},
		{line(), "== != <= >= && ||", []*Token{
			T(tEq, "=="),
			T(tNe, "!="),
			T(tLe, "<="),
			T(tGe, ">="),
			T(tAnd, "&&"),
			T(tOr, "||"),
		}},
		{line(), "= ! < > + - * / %", []*Token{
			T(code('='), "="),
			T(code('!'), "!"),
			T(code('<'), "<"),
			T(code('>'), ">"),
			T(code('+'), "+"),
			T(code('-'), "-"),
			T(code('*'), "*"),
			T(code('/'), "/"),
			T(code('%'), "%"),
		}},
		// Maximal munch: the two-character form wins without spaces.
		{line(), "a<=b", []*Token{
			T(tIdentifier, "a"),
			T(tLe, "<="),
			T(tIdentifier, "b"),
		}},
		{line(), "a< =b", []*Token{
			T(tIdentifier, "a"),
			T(code('<'), "<"),
			T(code('='), "="),
			T(tIdentifier, "b"),
		}},
		{line(), "(){};,", []*Token{
			T(code('('), "("),
			T(code(')'), ")"),
			T(code('{'), "{"),
			T(code('}'), "}"),
			T(code(';'), ";"),
			T(code(','), ","),
		}},
		{line(), "char* s", []*Token{
			T(tChar, "char"),
			T(code('*'), "*"),
			T(tIdentifier, "s"),
		}},
		{line(), `"hello"`, []*Token{
			T(tString, "hello"),
		}},
		{line(), `""`, []*Token{
			T(tString, ""),
		}},
		// Escape pairs are preserved verbatim, not decoded.
		{line(), `"a\"b"`, []*Token{
			T(tString, `a\"b`),
		}},
		{line(), `"tab\there"`, []*Token{
			T(tString, `tab\there`),
		}},
		{line(), `"back\\slash"`, []*Token{
			T(tString, `back\\slash`),
		}},
		{line(), "// just a comment", nil},
		{line(), "a // trailing\nb", []*Token{
			T(tIdentifier, "a"),
			T(tIdentifier, "b"),
		}},
		{line(), "a /* inline */ b", []*Token{
			T(tIdentifier, "a"),
			T(tIdentifier, "b"),
		}},
		{line(), "a /* multi\nline\ncomment */ b", []*Token{
			T(tIdentifier, "a"),
			T(tIdentifier, "b"),
		}},
		{line(), "1/2", []*Token{
			T(tNumber, "1"),
			T(code('/'), "/"),
			T(tNumber, "2"),
		}},

		// Errors.
		{line(), `"no close`, []*Token{
			T(tError, "Unterminated string"),
		}},
		{line(), `"ends in escape\`, []*Token{
			T(tError, "Unterminated string"),
		}},
		{line(), "/* never closed", []*Token{
			T(tError, "Unterminated block comment"),
		}},
		{line(), "a & b", []*Token{
			T(tIdentifier, "a"),
			T(tError, "Unexpected character"),
			T(tIdentifier, "b"),
		}},
		{line(), "a | b", []*Token{
			T(tIdentifier, "a"),
			T(tError, "Unexpected character"),
			T(tIdentifier, "b"),
		}},
		{line(), "@", []*Token{
			T(tError, "Unexpected character: '@'"),
		}},
		{line(), "#1", []*Token{
			T(tError, "Unexpected character: '#'"),
			T(tNumber, "1"),
		}},
	} {
		got := tokens(tt.in)
		if len(got) != len(tt.tokens) {
			t.Errorf("%d: got %d tokens, want %d: %v", tt.line, len(got), len(tt.tokens), got)
			continue
		}
		for i, want := range tt.tokens {
			if !got[i].Equal(want) {
				t.Errorf("%d: token %d: got %v, want %v %q", tt.line, i, got[i], want.code, want.Text)
			}
		}
	}
}

func TestLexPositions(t *testing.T) {
	in := "int main() {\n  return 42; // answer\n}\n"
	want := []*Token{
		{code: tInt, Text: "int", Line: 1, Col: 1},
		{code: tIdentifier, Text: "main", Line: 1, Col: 5},
		{code: code('('), Text: "(", Line: 1, Col: 9},
		{code: code(')'), Text: ")", Line: 1, Col: 10},
		{code: code('{'), Text: "{", Line: 1, Col: 12},
		{code: tReturn, Text: "return", Line: 2, Col: 3},
		{code: tNumber, Text: "42", Line: 2, Col: 10},
		{code: code(';'), Text: ";", Line: 2, Col: 12},
		{code: code('}'), Text: "}", Line: 3, Col: 1},
		{code: tEOF, Text: "", Line: 4, Col: 1},
	}
	got := Tokenize(in, "test")
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(Token{})); diff != "" {
		t.Errorf("token positions differ (-want +got):\n%s", diff)
	}
}

func TestLexErrorPosition(t *testing.T) {
	// The error is positioned at the opening quote.
	in := "int x;\nchar* s = \"oops"
	var errTok *Token
	for _, tok := range Tokenize(in, "test") {
		if tok.Code() == tError {
			errTok = tok
		}
	}
	if errTok == nil {
		t.Fatal("no error token produced")
	}
	if errTok.Line != 2 || errTok.Col != 11 {
		t.Errorf("got error at %d:%d, want 2:11", errTok.Line, errTok.Col)
	}
}

// TestPeekToken checks that peeking never disturbs the stream: a
// PeekToken followed by NextToken yields exactly the tokens two plain
// NextToken calls yield, positions included.
func TestPeekToken(t *testing.T) {
	in := "int main() { return 1 + 2; } // trailer\n"
	plain := newLexer(in, "test")
	peeky := newLexer(in, "test")
	for i := 0; ; i++ {
		pt := peeky.PeekToken()
		nt := peeky.NextToken()
		want := plain.NextToken()
		if diff := cmp.Diff(want, pt, cmp.AllowUnexported(Token{})); diff != "" {
			t.Fatalf("token %d: peek differs from plain next (-want +got):\n%s", i, diff)
		}
		if diff := cmp.Diff(want, nt, cmp.AllowUnexported(Token{})); diff != "" {
			t.Fatalf("token %d: next after peek differs (-want +got):\n%s", i, diff)
		}
		if want.Code() == tEOF {
			return
		}
	}
}

func TestLexEOFSticky(t *testing.T) {
	l := newLexer("x", "test")
	if c := l.NextToken().Code(); c != tIdentifier {
		t.Fatalf("got %v, want identifier", c)
	}
	for i := 0; i < 3; i++ {
		if c := l.NextToken().Code(); c != tEOF {
			t.Errorf("call %d after end: got %v, want EOF", i, c)
		}
	}
}

func TestLexReset(t *testing.T) {
	in := "int a;\nchar b;\n"
	l := newLexer(in, "test")
	var first []*Token
	for {
		tok := l.NextToken()
		first = append(first, tok)
		if tok.Code() == tEOF {
			break
		}
	}
	l.NextToken() // run past the end before resetting
	l.Reset()
	var second []*Token
	for {
		tok := l.NextToken()
		second = append(second, tok)
		if tok.Code() == tEOF {
			break
		}
	}
	if diff := cmp.Diff(first, second, cmp.AllowUnexported(Token{})); diff != "" {
		t.Errorf("stream after Reset differs (-first +second):\n%s", diff)
	}
}
