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

// Package tinyc compiles TinyC, a small C-like imperative language, into
// x86-64 System V assembly text (GAS/AT&T syntax).
//
// Compilation is a strictly sequential pipeline of four stages, each of
// which collects as many errors as it can before the driver decides
// whether to continue:
//
//	Tokenize   source text -> token stream
//	Parse      token stream -> abstract syntax tree
//	Analyze    type checks the tree against a lexically scoped symbol table
//	Generate   walks the tree and emits assembly for each function
//
// The stages are also exposed individually so a driver can dump the
// intermediate forms.  Compile runs them all:
//
//	prog, errs := tinyc.Parse(source, "prog.tc")
//	if !errs.HasErrors() {
//		_, errs = tinyc.Analyze(prog)
//	}
//	if !errs.HasErrors() {
//		errs = tinyc.Generate(w, prog)
//	}
//
// The emitted assembly expects to be linked against a tiny runtime that
// provides print, print_int, print_char and read_int with the standard
// System V calling convention.
package tinyc
