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

// Program tinycc compiles TinyC source files to x86-64 System V assembly
// and, unless told otherwise, assembles and links the result with gcc.
//
// Usage: tinycc [-o FILE] [--debug-...] [--compile-only] SOURCE
//
// SOURCE is a TinyC file, or "-" for standard input.  The generated
// assembly is written to the -o path (out.s by default).  Without
// --compile-only the assembly is handed to gcc together with the runtime
// C file to produce an executable.
//
// The --debug-* flags print an intermediate form of the program on
// standard output after the stage that produces it: the token stream,
// the syntax tree, or the global symbol table.
package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/juju/errors"
	"github.com/pborman/getopt"
	"github.com/tinyclang/tinycc/pkg/tinyc"
)

// A compilation carries the intermediate forms the debug dumps render.
type compilation struct {
	tokens  []*tinyc.Token
	prog    *tinyc.Program
	globals *tinyc.Scope
}

// The pipeline points a dump can hang off of.
const (
	afterLex = iota
	afterParse
	afterAnalyze
)

// Each debug dump registers itself with register.  The driver gives every
// dump a --debug-NAME flag and runs the enabled ones, in registration
// order, as soon as their stage has produced its output.
type dump struct {
	name    string
	stage   int
	help    string
	f       func(io.Writer, *compilation)
	enabled bool
}

var dumps []*dump

func register(d *dump) {
	dumps = append(dumps, d)
}

func runDumps(stage int, c *compilation) {
	for _, d := range dumps {
		if d.enabled && d.stage == stage {
			d.f(os.Stdout, c)
		}
	}
}

func dumpEnabled(stage int) bool {
	for _, d := range dumps {
		if d.enabled && d.stage == stage {
			return true
		}
	}
	return false
}

// exitIfErrors writes errs to standard error and exits with an exit
// status of 1.  If errs is empty it simply returns.
func exitIfErrors(errs *tinyc.Diagnostics) {
	if errs.HasErrors() {
		errs.Write(os.Stderr)
		stop(1)
	}
}

var stop = os.Exit

func main() {
	asmOut := "out.s"
	program := "a.out"
	runtimeFile := "runtime.c"
	var compileOnly, showVersion, help bool

	getopt.StringVarLong(&asmOut, "output", 'o', "assembly output path", "FILE")
	getopt.StringVarLong(&program, "program", 0, "executable to write when linking", "FILE")
	getopt.StringVarLong(&runtimeFile, "runtime", 0, "runtime C file handed to gcc when linking", "FILE")
	getopt.BoolVarLong(&compileOnly, "compile-only", 0, "stop after writing assembly; do not assemble and link")
	getopt.BoolVarLong(&showVersion, "version", 0, "display version and exit")
	getopt.BoolVarLong(&help, "help", 'h', "display help")
	for _, d := range dumps {
		getopt.BoolVarLong(&d.enabled, "debug-"+d.name, 0, d.help)
	}
	getopt.SetParameters("SOURCE")
	getopt.Parse()

	if help {
		getopt.PrintUsage(os.Stdout)
		stop(0)
	}
	if showVersion {
		fmt.Println(versionString())
		stop(0)
	}
	args := getopt.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "tinycc: exactly one source file required")
		getopt.PrintUsage(os.Stderr)
		stop(1)
	}

	name, source, err := tinyc.ReadSource(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "tinycc: %v\n", err)
		stop(1)
	}

	comp := &compilation{}
	if dumpEnabled(afterLex) {
		comp.tokens = tinyc.Tokenize(source, name)
		runDumps(afterLex, comp)
	}

	prog, errs := tinyc.Parse(source, name)
	comp.prog = prog
	runDumps(afterParse, comp)
	exitIfErrors(errs)

	comp.globals, errs = tinyc.Analyze(prog)
	runDumps(afterAnalyze, comp)
	exitIfErrors(errs)

	f, err := os.Create(asmOut)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tinycc: %v\n", errors.Annotatef(err, "creating %s", asmOut))
		stop(1)
	}
	errs = tinyc.Generate(f, prog)
	if cerr := f.Close(); cerr != nil {
		fmt.Fprintf(os.Stderr, "tinycc: %v\n", errors.Annotatef(cerr, "writing %s", asmOut))
		stop(1)
	}
	exitIfErrors(errs)

	if compileOnly {
		return
	}

	gcc := exec.Command("gcc", "-static", "-o", program, asmOut, runtimeFile)
	gcc.Stdout = os.Stdout
	gcc.Stderr = os.Stderr
	if err := gcc.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "tinycc: gcc: %v\n", err)
		stop(1)
	}
}
