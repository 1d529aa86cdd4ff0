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

package main

import (
	"fmt"
	"io"
)

func init() {
	register(&dump{
		name:  "tokens",
		stage: afterLex,
		help:  "print the token stream before parsing",
		f:     doTokens,
	})
}

func doTokens(w io.Writer, c *compilation) {
	for _, t := range c.tokens {
		fmt.Fprintln(w, t)
	}
}
