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

// Package factory implements the default apis.ObjectFactory: the
// collaborator package inject asks to resolve a setter's
// (parameterType, propertyName) pair during construction of every other
// extension.
//
// Dubbo's own default ExtensionFactory resolves a setter's declared
// extension-point type by asking that type's own ExtensionLoader for its
// adaptive extension — a call that, in Java, can conjure a loader for any
// Class<T> it has never seen purely from reflection. Go generics cannot
// do that: building a Loader[T] needs T as a compile-time type parameter,
// not a runtime reflect.Type. So Default can only resolve an interface
// for which something has already called loader.For for it on the same
// Environment — in practice, every extension point an application
// registers with loader.Extension before the first construction that
// needs it. See DESIGN.md for the tradeoff.
package factory

import (
	"reflect"

	"dirpx.dev/spi/loader"
)

// Default is the Environment-backed apis.ObjectFactory. Install it with
// Environment.SetObjectFactory so every Loader[T].factory() call picks
// it up ahead of the recursive adaptive-ObjectFactory bootstrap:
//
//	env.SetObjectFactory(factory.New(env))
type Default struct {
	env *loader.Environment
}

// New constructs a Default Object Factory resolving against env.
func New(env *loader.Environment) *Default {
	return &Default{env: env}
}

// Get implements apis.ObjectFactory. It tries a named lookup first (the
// setter's derived property name doubling as an extension name), falling
// back to the type's adaptive singleton, and finally declining
// altogether — the Go-shaped analogue of Dubbo's AdaptiveExtensionFactory/
// SpiExtensionFactory pairing, minus the ability to construct a Loader it
// has never seen.
func (f *Default) Get(paramType reflect.Type, name string) (any, bool) {
	if paramType == nil || paramType.Kind() != reflect.Interface {
		return nil, false
	}
	if name != "" {
		if inst, ok := loader.ResolveByType(f.env, paramType, name); ok {
			return inst, true
		}
	}
	return loader.ResolveByType(f.env, paramType, "")
}
