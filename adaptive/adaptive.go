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

// Package adaptive implements the Adaptive Resolver: return the
// per-extension-point adaptive singleton, either the uniquely
// manual-adaptive-annotated implementation or, when none is registered,
// one synthesized by package synth and realized through the Compiler
// collaborator. The result is cached by the caller's cache.Holder[T] (the
// double-checked-publication layer lives in package loader, which already
// owns one such holder per point); this package only knows how to build
// the value once.
package adaptive

import (
	"fmt"
	"reflect"

	"dirpx.dev/spi/apis"
	"dirpx.dev/spi/builder"
	"dirpx.dev/spi/inject"
	"dirpx.dev/spi/rpcurl"
	"dirpx.dev/spi/symtab"
	"dirpx.dev/spi/synth"
)

// Build constructs the adaptive instance for point. reg supplies the
// registry's adaptive symbol, if any (the manual path); byName
// materializes a named extension of the same point during dispatch;
// comp realizes synthesized source when no manual adaptive class is
// registered; maxChainDepth bounds the key chain length synth.Generate
// will accept for a synthesized adaptive method.
func Build[T any](point *apis.Point, reg apis.ClassRegistry, byName func(string) (T, error), factory apis.ObjectFactory, logger apis.Logger, comp apis.Compiler, maxChainDepth int) (T, error) {
	var zero T

	if symbol, ok := reg.AdaptiveSymbol(); ok {
		inst, err := symtab.Lookup[T](symbol)
		if err != nil {
			return zero, &apis.ConstructionError{Point: point.Iface.String(), Name: symbol, Err: err}
		}
		inject.Into(inst, factory, logger)
		return inst, nil
	}

	if len(point.Methods) == 0 {
		return zero, &apis.SynthesisError{Point: point.Iface.String(), Msg: "no adaptive method declared and no adaptive class registered"}
	}

	source, err := synth.Generate(point, maxChainDepth)
	if err != nil {
		return zero, err
	}

	ctorVal, err := comp.Compile(source, nil, synth.Entrypoint)
	if err != nil {
		return zero, &apis.SynthesisError{Point: point.Iface.String(), Msg: err.Error()}
	}

	rt := runtimeFor(point, byName)
	out, callErr := invokeConstructor(ctorVal, point.Iface.String(), rt)
	if callErr != nil {
		return zero, callErr
	}
	inst, ok := out.(T)
	if !ok {
		return zero, &apis.SynthesisError{Point: point.Iface.String(), Msg: fmt.Sprintf("synthesized dispatcher %T does not implement the extension point", out)}
	}
	inject.Into(inst, factory, logger)
	return inst, nil
}

// invokeConstructor calls the compiled New(point string, rt synth.Runtime) any
// function via reflection, since its static Go type is unknown at the
// call site (it crossed the embedded-interpreter boundary).
func invokeConstructor(ctor reflect.Value, pointName string, rt synth.Runtime) (any, error) {
	if ctor.Kind() != reflect.Func {
		return nil, &apis.SynthesisError{Point: pointName, Msg: "compiled entrypoint is not a function"}
	}
	args := []reflect.Value{reflect.ValueOf(pointName), reflect.ValueOf(rt)}
	out := ctor.Call(args)
	if len(out) != 1 {
		return nil, &apis.SynthesisError{Point: pointName, Msg: "compiled entrypoint does not return a single value"}
	}
	return out[0].Interface(), nil
}

// runtimeFor adapts the point's default key resolver and byName
// materializer into the synth.Runtime shape the synthesized dispatcher's
// New expects.
func runtimeFor[T any](point *apis.Point, byName func(string) (T, error)) synth.Runtime {
	resolver := builder.DefaultKeyResolver(point.DefaultName)
	return synth.Runtime{
		ByName: func(name string) (any, error) {
			return byName(name)
		},
		Resolve: func(_ string, keys []string, url *rpcurl.URL, inv *rpcurl.Invocation) (string, bool) {
			return resolver.Resolve(keys, url, inv)
		},
	}
}
