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
	"io/ioutil"
	"os"
	"strings"

	"github.com/juju/errors"
)

// readFile makes testing of ReadSource easier.
var readFile = ioutil.ReadFile

// ReadSource returns the name and contents of the TinyC source associated
// with name, or an error.  If name is "-" the source is read from standard
// input and named "<stdin>".  If name is a bare program name (no ".tc"
// extension and no path separator), name with ".tc" appended is tried
// first, and name as given is read if that fails.
func ReadSource(name string) (string, string, error) {
	if name == "-" {
		data, err := ioutil.ReadAll(os.Stdin)
		if err != nil {
			return "", "", errors.Annotate(err, "reading standard input")
		}
		return "<stdin>", string(data), nil
	}

	if !strings.ContainsRune(name, os.PathSeparator) && !strings.HasSuffix(name, ".tc") {
		if data, err := readFile(name + ".tc"); err == nil {
			return name + ".tc", string(data), nil
		}
	}
	data, err := readFile(name)
	if err != nil {
		return "", "", errors.Annotatef(err, "reading %s", name)
	}
	return name, string(data), nil
}
