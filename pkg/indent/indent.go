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

// Package indent indents lines of text with a prefix.  It is used to
// render trees, indenting each level of children by a fixed prefix.
package indent

import (
	"bytes"
	"io"
)

// String returns s with each line prefixed by indent.
func String(indent, s string) string {
	if indent == "" || s == "" {
		return s
	}
	return string(Bytes([]byte(indent), []byte(s)))
}

// Bytes returns b with each line prefixed by indent.
func Bytes(indent, b []byte) []byte {
	if len(indent) == 0 || len(b) == 0 {
		return b
	}
	var buf bytes.Buffer
	w := NewWriter(&buf, string(indent))
	w.Write(b)
	return buf.Bytes()
}

// NewWriter returns an io.Writer that writes to w, prefixing each line
// written with indent.  The prefix is written lazily, at the time the first
// byte of a line is written, so a final incomplete line is still prefixed
// while nothing is emitted after a trailing newline.
func NewWriter(w io.Writer, indent string) io.Writer {
	if indent == "" {
		return w
	}
	return &indenter{
		w:      w,
		prefix: []byte(indent),
	}
}

type indenter struct {
	w       io.Writer
	prefix  []byte
	midline bool // set when the current line's prefix has been written
}

// Write writes buf to the underlying writer, inserting the prefix at the
// start of each line.  The indented content goes out in a single call,
// and on a short write the returned count covers only bytes of buf, never
// prefix bytes, so Write still satisfies the io.Writer contract as seen
// by the caller.
func (in *indenter) Write(buf []byte) (int, error) {
	if len(buf) == 0 {
		return 0, nil
	}
	var out bytes.Buffer
	// isInput marks, per emitted byte, whether it came from buf or
	// from the prefix, so a short write can be accounted back to buf.
	isInput := make([]bool, 0, len(buf)+len(in.prefix))
	for _, b := range buf {
		if !in.midline {
			out.Write(in.prefix)
			for range in.prefix {
				isInput = append(isInput, false)
			}
			in.midline = true
		}
		out.WriteByte(b)
		isInput = append(isInput, true)
		if b == '\n' {
			in.midline = false
		}
	}
	w, err := in.w.Write(out.Bytes())
	if w > out.Len() {
		w = out.Len()
	}
	n := 0
	for i := 0; i < w; i++ {
		if isInput[i] {
			n++
		}
	}
	return n, err
}
