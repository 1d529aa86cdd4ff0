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
	"testing"

	"github.com/kylelemons/godebug/pretty"
)

func TestScopeLookup(t *testing.T) {
	global := newScope(nil)
	if global.Level() != 0 {
		t.Fatalf("global level %d, want 0", global.Level())
	}
	if !global.declare(&Symbol{Name: "x", Kind: SymbolVariable, Type: Int}) {
		t.Fatal("first declaration of x rejected")
	}
	if global.declare(&Symbol{Name: "x", Kind: SymbolVariable, Type: Char}) {
		t.Error("redeclaration of x in the same scope accepted")
	}
	if sym := global.lookup("x"); sym == nil || sym.Type != Int {
		t.Errorf("lookup(x) = %v, want the original int binding", sym)
	}
	if sym := global.lookup("y"); sym != nil {
		t.Errorf("lookup(y) = %v, want nil", sym)
	}
}

func TestScopeShadowing(t *testing.T) {
	global := newScope(nil)
	global.declare(&Symbol{Name: "x", Kind: SymbolVariable, Type: Int})
	global.declare(&Symbol{Name: "g", Kind: SymbolVariable, Type: CharPtr})

	inner := newScope(global)
	if inner.Level() != 1 {
		t.Fatalf("inner level %d, want 1", inner.Level())
	}
	// Shadowing is declaration, not redeclaration.
	if !inner.declare(&Symbol{Name: "x", Kind: SymbolVariable, Type: Char}) {
		t.Fatal("shadowing declaration rejected")
	}
	if sym := inner.lookup("x"); sym == nil || sym.Type != Char || sym.Level != 1 {
		t.Errorf("inner lookup(x) = %v, want the char shadow at level 1", sym)
	}
	// Names not shadowed resolve outward.
	if sym := inner.lookup("g"); sym == nil || sym.Type != CharPtr {
		t.Errorf("inner lookup(g) = %v, want the global binding", sym)
	}
	// lookupLocal never walks outward.
	if sym := inner.lookupLocal("g"); sym != nil {
		t.Errorf("inner lookupLocal(g) = %v, want nil", sym)
	}
	// Dropping the inner scope restores the outer binding.
	if sym := global.lookup("x"); sym == nil || sym.Type != Int || sym.Level != 0 {
		t.Errorf("outer lookup(x) = %v, want the int binding at level 0", sym)
	}
}

func TestScopeSymbolsSorted(t *testing.T) {
	s := newScope(nil)
	for _, name := range []string{"zeta", "alpha", "mid"} {
		s.declare(&Symbol{Name: name, Kind: SymbolVariable, Type: Int})
	}
	want := []*Symbol{
		{Name: "alpha", Kind: SymbolVariable, Type: Int},
		{Name: "mid", Kind: SymbolVariable, Type: Int},
		{Name: "zeta", Kind: SymbolVariable, Type: Int},
	}
	if diff := pretty.Compare(s.Symbols(), want); diff != "" {
		t.Errorf("Symbols() diff: (-got +want)\n%s", diff)
	}
}
