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

// Package inject implements setter-style dependency injection: for every
// exported, single-argument method whose name starts with "Set", derive
// a property name by lower-casing the character after "Set" and asking
// the Object Factory to resolve (parameterType, propertyName). A nil
// factory (the bootstrap short-circuit described in DESIGN.md) or a
// factory that declines the lookup simply skips that setter; nothing
// here is fatal.
package inject

import (
	"reflect"
	"strings"

	"dirpx.dev/spi/apis"
)

// Into reflects over value's method set and invokes every matching setter
// it can resolve via factory. Logging of skipped setters is left to the
// caller-supplied logger (never nil — callers should pass apis.NopLogger{}
// when none is configured).
func Into(value any, factory apis.ObjectFactory, logger apis.Logger) {
	if value == nil {
		return
	}
	rv := reflect.ValueOf(value)
	rt := rv.Type()
	for i := 0; i < rt.NumMethod(); i++ {
		m := rt.Method(i)
		property, ok := propertyName(m.Name)
		if !ok {
			continue
		}
		// Type.Method's Func takes the receiver as its first argument, so
		// sig.In(0) is the receiver; a setter takes exactly one more arg.
		fn := rt.Method(i).Func
		sig := fn.Type()
		if sig.NumIn() != 2 || sig.NumOut() != 0 {
			continue
		}
		paramType := sig.In(1)
		if factory == nil {
			logger.Warnf("inject: skipping %s.%s: no object factory available", rt, m.Name)
			continue
		}
		arg, ok := factory.Get(paramType, property)
		if !ok || arg == nil {
			continue
		}
		argVal := reflect.ValueOf(arg)
		if !argVal.Type().AssignableTo(paramType) {
			logger.Warnf("inject: skipping %s.%s: factory value %T not assignable to %s", rt, m.Name, arg, paramType)
			continue
		}
		func() {
			defer func() {
				if r := recover(); r != nil {
					logger.Warnf("inject: %s.%s panicked: %v", rt, m.Name, r)
				}
			}()
			rv.Method(i).Call([]reflect.Value{argVal})
		}()
	}
}

// propertyName derives the injected property name from a setter method
// name: "SetFoo" -> "foo". Methods not starting with "Set" followed by an
// upper-case letter are not setters.
func propertyName(method string) (string, bool) {
	const prefix = "Set"
	if !strings.HasPrefix(method, prefix) || len(method) <= len(prefix) {
		return "", false
	}
	rest := method[len(prefix):]
	r := []rune(rest)
	if r[0] < 'A' || r[0] > 'Z' {
		return "", false
	}
	r[0] = r[0] - 'A' + 'a'
	return string(r), true
}
