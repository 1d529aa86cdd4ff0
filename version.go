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

import "fmt"

// The version is bumped by hand at release time.
const (
	versionMajor = 1
	versionMinor = 0
	versionPatch = 0
)

func versionString() string {
	return fmt.Sprintf("tinycc %d.%d.%d", versionMajor, versionMinor, versionPatch)
}
