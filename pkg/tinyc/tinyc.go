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

import "io"

// Compile runs the whole pipeline over source, writing assembly to w.
// The pipeline stops at the first stage that reports errors and returns
// that stage's diagnostics; w is only written once parsing and analysis
// both succeeded.  The path parameter names the source for debug output.
func Compile(w io.Writer, source, path string) *Diagnostics {
	prog, errs := Parse(source, path)
	if errs.HasErrors() {
		return errs
	}
	if _, errs = Analyze(prog); errs.HasErrors() {
		return errs
	}
	return Generate(w, prog)
}
