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

// Package synth implements the Dispatcher Synthesizer: for an
// extension-point interface with one or more adaptive methods, emit
// Go source text for a struct satisfying that interface, where each
// adaptive method resolves an extension name from a request URL (and
// optional Invocation) and forwards the call; non-adaptive methods raise
// apis.UnsupportedOperationError.
//
// The generated source never imports the extension-point interface's own
// package — Go interface satisfaction is structural, so a dispatcher only
// needs matching method signatures, not a declared relationship. This
// keeps the synthesized source's import set to this package and rpcurl
// regardless of which interface is being synthesized, at the cost of
// restricting adaptive-method signatures to a known universe of
// parameter/result types (see typeName); anything outside that universe
// fails synthesis with a *apis.SynthesisError rather than guessing at an
// import path.
package synth

import (
	"fmt"
	"reflect"

	"dirpx.dev/spi/apis"
	"dirpx.dev/spi/rpcurl"
)

// Runtime bundles the collaborators a synthesized dispatcher's New needs:
// a way to materialize an extension by name, and a way to resolve an
// adaptive method's extension name from its declared keys and a request
// URL. Both are supplied by package adaptive when it compiles and
// constructs the dispatcher for a given extension point.
type Runtime struct {
	ByName  func(name string) (any, error)
	Resolve func(method string, keys []string, url *rpcurl.URL, inv *rpcurl.Invocation) (name string, ok bool)
}

// Call invokes method on ext by name via reflection and adapts its result
// to the (value, error) shape every synthesized adaptive method assumes:
// zero return values yield (nil, nil); a trailing error-typed return is
// split off; at most one non-error return value is supported, matching
// the adaptive-method universe synth.Generate restricts itself to.
func Call(ext any, method string, args ...any) (any, error) {
	rv := reflect.ValueOf(ext)
	m := rv.MethodByName(method)
	if !m.IsValid() {
		return nil, fmt.Errorf("synth: %T has no method %s", ext, method)
	}
	mt := m.Type()
	in := make([]reflect.Value, len(args))
	for i, a := range args {
		if i >= mt.NumIn() {
			break
		}
		if a == nil {
			in[i] = reflect.Zero(mt.In(i))
			continue
		}
		in[i] = reflect.ValueOf(a)
	}
	out := m.Call(in)
	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		if err, ok := out[0].Interface().(error); ok {
			return nil, err
		}
		return out[0].Interface(), nil
	case 2:
		var err error
		if e, ok := out[1].Interface().(error); ok {
			err = e
		}
		return out[0].Interface(), err
	default:
		return nil, fmt.Errorf("synth: %s has unsupported result arity %d", method, len(out))
	}
}

// NilArgument builds the error a synthesized method returns when its
// URL or Invocation argument is nil.
func NilArgument(point, method, what string) error {
	return &apis.ConstructionError{Point: point, Name: method, Err: fmt.Errorf("synth: nil %s argument", what)}
}

// Unsupported builds the error a synthesized method returns when called
// on a non-adaptive interface method ("body raises an unsupported
// operation error").
func Unsupported(point, method string) error {
	return &apis.UnsupportedOperationError{Point: point, Method: method}
}

// NoNameResolved builds the error a synthesized method returns when no
// key resolves an extension name.
func NoNameResolved(point, method string, keys []string) error {
	return &apis.SynthesisError{Point: point, Msg: fmt.Sprintf("%s: no extension name resolved from keys %v", method, keys)}
}
