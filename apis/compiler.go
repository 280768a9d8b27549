/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package apis

import "reflect"

// Exports are additional symbols made visible to compiled source, keyed
// "package/path" -> symbol name -> value. Package compiler always exposes
// package synth's runtime helpers and the rpcurl URL and Invocation types
// to generated source; these are extra symbols on top of those. The
// loader lookup function reaches a dispatcher through synth.Runtime.
type Exports map[string]map[string]reflect.Value

// Compiler is the "Compiler" collaborator: it realizes generated
// dispatcher source into a callable constructor. This module ships a
// default Compiler (see package compiler) backed by an embedded Go
// interpreter, so dispatcher synthesis works without invoking the host
// toolchain.
type Compiler interface {
	// Compile evaluates sourceCode (a complete Go source file) with the
	// given additional exports in scope, and returns the value bound to
	// entrypoint (a package-qualified identifier, e.g. "dispatcher.New").
	Compile(sourceCode string, exports Exports, entrypoint string) (reflect.Value, error)
}
