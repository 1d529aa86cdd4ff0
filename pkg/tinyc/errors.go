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
	"fmt"
	"io"
)

// A Stage names the pipeline stage that produced an error.
type Stage string

// The pipeline stages, in execution order.
const (
	StageLex     Stage = "Lexical"
	StageParse   Stage = "Syntax"
	StageAnalyze Stage = "Semantic"
	StageCodegen Stage = "Codegen"
)

// An Error is a single positioned diagnostic.  Line and Col are 1-based
// and point at the first character of the offending token.
type Error struct {
	Stage   Stage
	Line    int
	Col     int
	Context string // enclosing function, if known
	Msg     string
}

// Error implements the error interface.  The format is
// "<Stage> error at line L, column C in <context>: <message>"; the
// position is left out when Line is 0 and the context when it is empty.
func (e *Error) Error() string {
	s := string(e.Stage) + " error"
	if e.Line > 0 {
		s += fmt.Sprintf(" at line %d, column %d", e.Line, e.Col)
	}
	if e.Context != "" {
		s += " in " + e.Context
	}
	return s + ": " + e.Msg
}

// Diagnostics accumulates the errors reported by one stage.  Stages never
// stop at the first error; they recover and keep going, so a Diagnostics
// usually holds everything wrong with the input at that stage.
type Diagnostics struct {
	stage Stage
	errs  []*Error
}

func newDiagnostics(stage Stage) *Diagnostics {
	return &Diagnostics{stage: stage}
}

// add appends e verbatim.  Used when an error originates from an earlier
// stage (lexer error tokens are reported by the parser).
func (d *Diagnostics) add(e *Error) {
	d.errs = append(d.errs, e)
}

// errorf appends a formatted error at the given position.
func (d *Diagnostics) errorf(line, col int, format string, v ...interface{}) {
	d.errs = append(d.errs, &Error{
		Stage: d.stage,
		Line:  line,
		Col:   col,
		Msg:   fmt.Sprintf(format, v...),
	})
}

// errorfIn is errorf with the name of the enclosing function attached.
func (d *Diagnostics) errorfIn(context string, line, col int, format string, v ...interface{}) {
	d.errs = append(d.errs, &Error{
		Stage:   d.stage,
		Line:    line,
		Col:     col,
		Context: context,
		Msg:     fmt.Sprintf(format, v...),
	})
}

// HasErrors reports whether any error has been recorded.
func (d *Diagnostics) HasErrors() bool {
	return d != nil && len(d.errs) > 0
}

// Len returns the number of recorded errors.
func (d *Diagnostics) Len() int {
	if d == nil {
		return 0
	}
	return len(d.errs)
}

// Errors returns the recorded errors in the order they were reported.
func (d *Diagnostics) Errors() []*Error {
	if d == nil {
		return nil
	}
	return d.errs
}

// Write writes each error to w, one per line.
func (d *Diagnostics) Write(w io.Writer) {
	for _, e := range d.Errors() {
		fmt.Fprintln(w, e.Error())
	}
}
