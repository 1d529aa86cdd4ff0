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

// A DataType is one of the four TinyC types.  Equality is nominal: int and
// char mix freely in arithmetic but are never assignment compatible.
type DataType int

const (
	// Void is the zero value so an unannotated node reads as void.
	Void DataType = iota
	Int           // 32-bit signed integer
	Char          // 8-bit signed integer
	CharPtr       // pointer to char, the type of string literals
)

// String returns the TinyC spelling of t.
func (t DataType) String() string {
	switch t {
	case Int:
		return "int"
	case Char:
		return "char"
	case CharPtr:
		return "char*"
	case Void:
		return "void"
	}
	return "unknown"
}

// Size returns the size of t in bytes.  Void has no size.
func (t DataType) Size() int {
	switch t {
	case Int:
		return 4
	case Char:
		return 1
	case CharPtr:
		return 8
	}
	return 0
}

// Numeric reports whether t may appear in arithmetic and boolean contexts.
func (t DataType) Numeric() bool {
	return t == Int || t == Char
}
