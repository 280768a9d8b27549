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

// Package compiler implements the default apis.Compiler: an embedded Go
// interpreter (github.com/traefik/yaegi), the same technique Traefik
// itself uses to load user-supplied Go plugins at runtime without cgo or
// a host `go build`. Dispatcher source synthesized by package synth is
// evaluated against the Go standard library plus this module's own
// rpcurl/synth exports (registered once via Use), and the requested
// entrypoint symbol is fetched and returned as a reflect.Value.
package compiler

import (
	"fmt"
	"reflect"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"

	"dirpx.dev/spi/apis"
	"dirpx.dev/spi/rpcurl"
	"dirpx.dev/spi/synth"
)

// Exports registers this module's own packages with the embedded
// interpreter, the same shape `yaegi extract` generates for third-party
// packages: a reflect.Value per exported identifier, keyed by package
// path then name.
func Exports() apis.Exports {
	return apis.Exports{
		"dirpx.dev/spi/rpcurl/rpcurl": {
			"URL":        reflect.ValueOf((*rpcurl.URL)(nil)),
			"Invocation": reflect.ValueOf((*rpcurl.Invocation)(nil)),
			"Parse":      reflect.ValueOf(rpcurl.Parse),
			"New":        reflect.ValueOf(rpcurl.New),
			"NewInvocation": reflect.ValueOf(rpcurl.NewInvocation),
		},
		"dirpx.dev/spi/synth/synth": {
			"Runtime":        reflect.ValueOf((*synth.Runtime)(nil)),
			"Call":           reflect.ValueOf(synth.Call),
			"Unsupported":    reflect.ValueOf(synth.Unsupported),
			"NilArgument":    reflect.ValueOf(synth.NilArgument),
			"NoNameResolved": reflect.ValueOf(synth.NoNameResolved),
		},
	}
}

// Yaegi is the default apis.Compiler, backed by a fresh embedded
// interpreter per Compile call: each synthesized dispatcher is a small,
// one-shot program, and a point's adaptive dispatcher only ever compiles
// once (the result is cached by its Loader in package loader), so reuse across calls
// buys nothing and a fresh interpreter avoids any accumulated state
// between unrelated extension points.
type Yaegi struct{}

// New returns the default yaegi-backed Compiler.
func New() *Yaegi { return &Yaegi{} }

// Compile evaluates sourceCode with the standard library plus this
// module's own exports, merged with any additional exports the caller
// supplies, then fetches and returns the value bound to entrypoint.
func (Yaegi) Compile(sourceCode string, exports apis.Exports, entrypoint string) (reflect.Value, error) {
	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		return reflect.Value{}, fmt.Errorf("compiler: registering stdlib symbols: %w", err)
	}
	if err := i.Use(interp.Exports(Exports())); err != nil {
		return reflect.Value{}, fmt.Errorf("compiler: registering runtime exports: %w", err)
	}
	if len(exports) > 0 {
		if err := i.Use(interp.Exports(exports)); err != nil {
			return reflect.Value{}, fmt.Errorf("compiler: registering caller exports: %w", err)
		}
	}
	if _, err := i.Eval(sourceCode); err != nil {
		return reflect.Value{}, fmt.Errorf("compiler: evaluating generated source: %w", err)
	}
	v, err := i.Eval(entrypoint)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("compiler: resolving entrypoint %q: %w", entrypoint, err)
	}
	return v, nil
}

var _ apis.Compiler = Yaegi{}
