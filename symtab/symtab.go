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

// Package symtab is the Go-native substitute for reflective
// Class.forName(symbol).newInstance(): extension authors bind a
// constructor to a symbol string from an init() in their implementing
// package, the same way database/sql drivers call sql.Register and image
// codecs call image.RegisterFormat. The Class Registry (package registry)
// resolves config-declared "name = symbol" lines against these bindings
// instead of reflecting a class literal.
package symtab

import (
	"fmt"
	"reflect"
	"sync"
)

// binding is the untyped record stored per (point, symbol); constructT
// is stored as a reflect.Value of a func() (T, error) or func(T) T so the
// table can be indexed by reflect.Type without repeating the generic
// parameter in the stored type.
type binding struct {
	category   Category
	constructT reflect.Value
	activation *Activation
}

// Activation mirrors apis.Activation; duplicated here for the same leaf-
// package reason as Category. An ordinary binding may carry one,
// recorded via BindActivated, to be picked up by the Class Registry and
// consulted by the Activation Filter (package activate).
type Activation struct {
	Groups      []string
	TriggerKeys []string
	Order       int
}

// Category mirrors apis.Category; duplicated here (rather than imported)
// because symtab is a registration-time leaf package authors' init()
// functions depend on, and should not pull in the rest of apis's
// diagnostic error types just to bind a constructor.
type Category int

const (
	Ordinary Category = iota
	Adaptive
	Wrapper
)

// pointTable holds one extension point's bindings plus the order symbols
// were first bound in, since Go map iteration order is randomized per
// process and the Wrapper Composer needs a deterministic order (see
// Symbols).
type pointTable struct {
	bindings map[string]binding
	order    []string
}

var (
	mu    sync.Mutex
	table = map[reflect.Type]*pointTable{}
)

// ErrAlreadyBound is returned when a symbol is bound twice for the same
// extension-point type with a different category or constructor, mirroring
// database/sql.Register's "called twice" panic but as a recoverable error
// instead, since config reloads in tests legitimately re-import packages.
type ErrAlreadyBound struct {
	Point  reflect.Type
	Symbol string
}

func (e *ErrAlreadyBound) Error() string {
	return fmt.Sprintf("symtab: symbol %q already bound for %s", e.Symbol, e.Point)
}

func bind(point reflect.Type, symbol string, cat Category, ctor reflect.Value, act *Activation) error {
	if symbol == "" {
		return fmt.Errorf("symtab: empty symbol for %s", point)
	}
	mu.Lock()
	defer mu.Unlock()
	pt, ok := table[point]
	if !ok {
		pt = &pointTable{bindings: map[string]binding{}}
		table[point] = pt
	}
	if existing, ok := pt.bindings[symbol]; ok {
		if existing.category == cat && existing.constructT == ctor {
			return nil
		}
		return &ErrAlreadyBound{Point: point, Symbol: symbol}
	}
	pt.bindings[symbol] = binding{category: cat, constructT: ctor, activation: act}
	pt.order = append(pt.order, symbol)
	return nil
}

// Bind registers an ordinary constructor under symbol for extension point
// T. ctor is called with no arguments and may return an error: the
// no-arg-construction classification of an ordinary binding.
func Bind[T any](symbol string, ctor func() (T, error)) error {
	var zero T
	point := reflect.TypeOf(&zero).Elem()
	return bind(point, symbol, Ordinary, reflect.ValueOf(ctor), nil)
}

// BindActivated registers an ordinary constructor the same way Bind does,
// additionally recording the Activate annotation's groups, trigger keys,
// and order so the Class Registry can surface them on the resulting
// apis.Entry for the Activation Filter (package activate) to consult.
func BindActivated[T any](symbol string, ctor func() (T, error), act Activation) error {
	var zero T
	point := reflect.TypeOf(&zero).Elem()
	return bind(point, symbol, Ordinary, reflect.ValueOf(ctor), &act)
}

// BindWrapper registers a decorator constructor under symbol for
// extension point T: a single-argument func(T) T, the wrapper
// classification.
func BindWrapper[T any](symbol string, ctor func(T) T) error {
	var zero T
	point := reflect.TypeOf(&zero).Elem()
	return bind(point, symbol, Wrapper, reflect.ValueOf(ctor), nil)
}

// BindAdaptive registers a manually authored adaptive dispatcher under
// symbol for extension point T: the "implementation itself carries the
// adaptive marker" path. At most one may be bound per point; the Class
// Registry enforces that invariant when it reads this table.
func BindAdaptive[T any](symbol string, ctor func() (T, error)) error {
	var zero T
	point := reflect.TypeOf(&zero).Elem()
	return bind(point, symbol, Adaptive, reflect.ValueOf(ctor), nil)
}

// Binding is a symbol table entry returned to callers that need to invoke
// or classify it without knowing T statically (the Class Registry builds
// its view this way, since it is not itself generic).
type Binding struct {
	Symbol     string
	Category   Category
	Value      reflect.Value
	Activation *Activation
}

// Symbols returns every binding registered for the interface type point,
// in the order each symbol was first bound, for consumption by the
// (non-generic) Class Registry and the Wrapper Composer (package wrap),
// which applies wrappers in this same order (see DESIGN.md's Open
// Question decision on wrapper application order).
func Symbols(point reflect.Type) []Binding {
	mu.Lock()
	defer mu.Unlock()
	pt, ok := table[point]
	if !ok {
		return nil
	}
	out := make([]Binding, 0, len(pt.order))
	for _, sym := range pt.order {
		b := pt.bindings[sym]
		out = append(out, Binding{Symbol: sym, Category: b.category, Value: b.constructT, Activation: b.activation})
	}
	return out
}

// Lookup returns the ordinary or adaptive constructor bound to symbol for
// extension point T and invokes it, returning ErrUnbound if no such
// symbol was ever registered for T.
func Lookup[T any](symbol string) (T, error) {
	var zero T
	point := reflect.TypeOf(&zero).Elem()
	mu.Lock()
	b, ok := lookupBinding(point, symbol)
	mu.Unlock()
	if !ok {
		return zero, &ErrUnbound{Point: point, Symbol: symbol}
	}
	out := b.constructT.Call(nil)
	if len(out) == 2 && !out[1].IsNil() {
		return zero, out[1].Interface().(error)
	}
	return out[0].Interface().(T), nil
}

// LookupWrapper returns the wrapper constructor bound to symbol for T and
// applies it to inner.
func LookupWrapper[T any](symbol string, inner T) (T, error) {
	var zero T
	point := reflect.TypeOf(&zero).Elem()
	mu.Lock()
	b, ok := lookupBinding(point, symbol)
	mu.Unlock()
	if !ok || b.category != Wrapper {
		return zero, &ErrUnbound{Point: point, Symbol: symbol}
	}
	out := b.constructT.Call([]reflect.Value{reflect.ValueOf(inner)})
	return out[0].Interface().(T), nil
}

// lookupBinding fetches a single binding; callers hold mu.
func lookupBinding(point reflect.Type, symbol string) (binding, bool) {
	pt, ok := table[point]
	if !ok {
		return binding{}, false
	}
	b, ok := pt.bindings[symbol]
	return b, ok
}

// ErrUnbound is returned when a config line names a symbol that was never
// bound, the Go-native equivalent of a ClassNotFoundException.
type ErrUnbound struct {
	Point  reflect.Type
	Symbol string
}

func (e *ErrUnbound) Error() string {
	return fmt.Sprintf("symtab: no constructor bound to symbol %q for %s", e.Symbol, e.Point)
}

// reset clears the table; used only by this package's own tests to avoid
// cross-test symbol leakage (it is unexported, so no other package can
// call it), since Bind is normally called once from a package-level
// init() and never undone in production.
func reset() {
	mu.Lock()
	defer mu.Unlock()
	table = map[reflect.Type]*pointTable{}
}
