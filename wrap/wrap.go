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

// Package wrap implements the Wrapper Composer: for each wrapper entry
// in a Class Registry, construct W(current), inject it, and replace
// current with W. Application order is the order wrapper symbols were
// bound in the symbol table (see DESIGN.md's decision on this open
// question).
package wrap

import (
	"dirpx.dev/spi/apis"
	"dirpx.dev/spi/inject"
	"dirpx.dev/spi/symtab"
)

// Compose applies every wrapper entry in entries to current, in order,
// re-injecting each layer via factory. It returns the fully wrapped
// value, or a *apis.ConstructionError if a wrapper's constructor is
// unbound or panics.
func Compose[T any](point *apis.Point, current T, entries []apis.Entry, name string, factory apis.ObjectFactory, logger apis.Logger) (T, error) {
	for _, e := range entries {
		if e.Category != apis.Wrapper {
			continue
		}
		wrapped, err := symtab.LookupWrapper[T](e.Symbol, current)
		if err != nil {
			var zero T
			return zero, &apis.ConstructionError{Point: point.Iface.String(), Name: name, Err: err}
		}
		inject.Into(wrapped, factory, logger)
		current = wrapped
	}
	return current, nil
}
