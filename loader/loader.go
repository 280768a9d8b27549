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

package loader

import (
	"reflect"
	"sort"
	"strings"
	"sync"

	"dirpx.dev/spi/activate"
	"dirpx.dev/spi/adaptive"
	"dirpx.dev/spi/apis"
	"dirpx.dev/spi/cache"
	"dirpx.dev/spi/inject"
	"dirpx.dev/spi/registry"
	"dirpx.dev/spi/rpcurl"
	"dirpx.dev/spi/scanner"
	"dirpx.dev/spi/symtab"
	"dirpx.dev/spi/wrap"
)

// Extension registers interface T as an extension point on env, the
// Go-native stand-in for a "type-level declaration visible at
// registration time". Call it once, typically from a package-level var
// initializer next to the interface declaration. Re-registering the same
// interface replaces its Point, which is convenient for tests but is not
// meant to happen in steady-state production use.
func Extension[T any](env *Environment, defaultName string, opts ...apis.PointOption) error {
	var zero T
	t := reflect.TypeOf(&zero).Elem()
	point, err := apis.NewPoint(t, defaultName, opts...)
	if err != nil {
		return err
	}
	env.points.Store(t, point)
	return nil
}

// For returns the Loader for extension point T on env, building it (and
// the underlying Class Registry) on first use. Building does not resolve
// the Object Factory: each construction resolves it through factory()
// below, which may recursively request the adaptive instance of
// apis.ObjectFactory unless T is itself apis.ObjectFactory (the bootstrap
// hole).
func For[T any](env *Environment) (*Loader[T], error) {
	var zero T
	t := reflect.TypeOf(&zero).Elem()
	if t == nil || t.Kind() != reflect.Interface {
		return nil, apis.ErrNotInterface
	}

	if v, ok := env.loaders.Load(t); ok {
		return v.(*Loader[T]), nil
	}

	env.mu.Lock()
	defer env.mu.Unlock()
	if v, ok := env.loaders.Load(t); ok {
		return v.(*Loader[T]), nil
	}

	point, ok := env.pointFor(t)
	if !ok {
		return nil, apis.ErrNotExtensionPoint
	}

	sc := scanner.New(env.fs, env.cfg, env.logger)
	scan := sc.Scan(resourceName(t))
	reg, err := registry.Build(point, scan)
	if err != nil {
		return nil, err
	}

	l := &Loader[T]{
		env:       env,
		point:     point,
		reg:       reg,
		names:     map[any]string{},
		overrides: map[string]func() (T, error){},
	}
	env.loaders.Store(t, l)
	return l, nil
}

// resourceName renders the Java-FQCN-equivalent resource name the
// Resource Scanner reads: the interface's import path plus its simple
// name, e.g. "dirpx.dev/spi/internal/demo.Protocol".
func resourceName(t reflect.Type) string {
	if t.PkgPath() == "" {
		return t.Name()
	}
	return t.PkgPath() + "." + t.Name()
}

// Loader is the programmatic surface for one extension point: byName,
// adaptive, activate, the test-only register/replace operations, and
// the read-only diagnostics.
type Loader[T any] struct {
	env   *Environment
	point *apis.Point
	reg   apis.ClassRegistry

	holders        sync.Map // name string -> *cache.Holder[T]
	adaptiveHolder cache.Holder[T]

	namesMu sync.Mutex
	names   map[any]string // constructed instance -> canonical name

	overridesMu sync.Mutex
	overrides   map[string]func() (T, error) // test-only Register/Replace
}

// ByName resolves name to a fully constructed, wrapped, cached instance.
// The literal "true" resolves to the point's declared default name.
func (l *Loader[T]) ByName(name string) (T, error) {
	var zero T
	if name == "" {
		return zero, apis.ErrEmptyName
	}
	if l.env.cfg.NormalizeNames {
		name = strings.ToLower(strings.TrimSpace(name))
	}
	if name == "true" {
		def := l.reg.DefaultName()
		if l.env.cfg.NormalizeNames {
			def = strings.ToLower(strings.TrimSpace(def))
		}
		if def == "" || def == "true" {
			return zero, apis.ErrNoDefault
		}
		name = def
	}
	h := l.holderFor(name)
	return h.Get(func() (T, error) { return l.construct(name) })
}

// HasName reports whether name is a known ordinary name or a test-only
// override, without constructing anything.
func (l *Loader[T]) HasName(name string) bool {
	if l.env.cfg.NormalizeNames {
		name = strings.ToLower(strings.TrimSpace(name))
	}
	if _, ok := l.reg.ByName(name); ok {
		return true
	}
	l.overridesMu.Lock()
	_, ok := l.overrides[name]
	l.overridesMu.Unlock()
	return ok
}

// AlreadyLoaded returns the published instance for name without
// triggering construction; the non-constructing alreadyLoaded sibling
// of ByName.
func (l *Loader[T]) AlreadyLoaded(name string) (T, bool) {
	v, ok := l.holders.Load(name)
	if !ok {
		var zero T
		return zero, false
	}
	return v.(*cache.Holder[T]).Peek()
}

// DefaultName returns the point's declared default name, or "".
func (l *Loader[T]) DefaultName() string {
	return l.reg.DefaultName()
}

// DefaultInstance is ByName("true"); it returns apis.ErrNoDefault if the
// point declares no usable default.
func (l *Loader[T]) DefaultInstance() (T, error) {
	return l.ByName("true")
}

// SupportedNames returns every ordinary name known to this loader's
// Class Registry, sorted.
func (l *Loader[T]) SupportedNames() []string {
	return l.reg.SupportedNames()
}

// LoadedNames returns every name whose holder has already published an
// instance, sorted.
func (l *Loader[T]) LoadedNames() []string {
	var out []string
	l.holders.Range(func(key, value any) bool {
		if _, ok := value.(*cache.Holder[T]).Peek(); ok {
			out = append(out, key.(string))
		}
		return true
	})
	sort.Strings(out)
	return out
}

// Adaptive returns the per-point adaptive singleton, building it on
// first use.
func (l *Loader[T]) Adaptive() (T, error) {
	return l.adaptiveHolder.Get(func() (T, error) {
		return adaptive.Build[T](l.point, l.reg, l.ByName, l.factory(), l.env.logger, l.env.compiler, l.env.cfg.MaxChainDepth)
	})
}

// Activate resolves the ordered, materialized subset of activatable
// extensions.
func (l *Loader[T]) Activate(url *rpcurl.URL, requested []string, group string) ([]T, error) {
	return activate.Activate[T](l.reg.Entries(), url, requested, group, l.ByName)
}

// Register installs a test-only constructor for name, bypassing the
// Resource Scanner and Class Registry entirely. It does not go through
// the raw instance table or wrapper composition: register/replace are
// test-only escape hatches.
func (l *Loader[T]) Register(name string, ctor func() (T, error)) error {
	if name == "" {
		return apis.ErrEmptyName
	}
	l.overridesMu.Lock()
	l.overrides[name] = ctor
	l.overridesMu.Unlock()
	l.holders.Delete(name)
	return nil
}

// Replace forces name's holder to instance, overwriting any previously
// published or cached value. Test-only.
func (l *Loader[T]) Replace(name string, instance T) error {
	if name == "" {
		return apis.ErrEmptyName
	}
	h := l.holderFor(name)
	h.Reset()
	_, _ = h.Get(func() (T, error) { return instance, nil })
	l.recordName(instance, name)
	return nil
}

// NameOf returns the canonical name instance was published under, if it
// was constructed by this loader.
func (l *Loader[T]) NameOf(instance T) (string, bool) {
	l.namesMu.Lock()
	defer l.namesMu.Unlock()
	name, ok := l.names[any(instance)]
	return name, ok
}

// Diagnostics is a read-only snapshot useful for the CLI demo and
// tests: supported/loaded names, recorded load failures, the default
// name, and whether an adaptive instance has already been built.
type Diagnostics struct {
	SupportedNames []string
	LoadedNames    []string
	Failures       []apis.LoadFailure
	DefaultName    string
	AdaptiveBuilt  bool
}

// Diagnostics snapshots the loader's current state.
func (l *Loader[T]) Diagnostics() Diagnostics {
	_, adaptiveBuilt := l.adaptiveHolder.Peek()
	return Diagnostics{
		SupportedNames: l.SupportedNames(),
		LoadedNames:    l.LoadedNames(),
		Failures:       l.reg.Failures(),
		DefaultName:    l.DefaultName(),
		AdaptiveBuilt:  adaptiveBuilt,
	}
}

func (l *Loader[T]) holderFor(name string) *cache.Holder[T] {
	if v, ok := l.holders.Load(name); ok {
		return v.(*cache.Holder[T])
	}
	actual, _ := l.holders.LoadOrStore(name, &cache.Holder[T]{})
	return actual.(*cache.Holder[T])
}

func (l *Loader[T]) recordName(instance T, name string) {
	l.namesMu.Lock()
	l.names[any(instance)] = name
	l.namesMu.Unlock()
}

// construct builds, injects, and wraps the instance for name.
func (l *Loader[T]) construct(name string) (T, error) {
	var zero T

	l.overridesMu.Lock()
	ctor, overridden := l.overrides[name]
	l.overridesMu.Unlock()
	if overridden {
		inst, err := ctor()
		if err != nil {
			return zero, &apis.ConstructionError{Point: l.point.Iface.String(), Name: name, Err: err}
		}
		l.recordName(inst, name)
		return inst, nil
	}

	entry, ok := l.reg.ByName(name)
	if !ok {
		return zero, &apis.NotFoundError{Point: l.point.Iface.String(), Name: name, Failures: l.reg.Failures()}
	}

	raw, ok := cache.RawGet(l.point.Iface, entry.Symbol)
	if !ok {
		inst, err := symtab.Lookup[T](entry.Symbol)
		if err != nil {
			return zero, &apis.ConstructionError{Point: l.point.Iface.String(), Name: name, Err: err}
		}
		cache.RawStore(l.point.Iface, entry.Symbol, inst)
		raw = inst
	}
	current := raw.(T)
	inject.Into(current, l.factory(), l.env.logger)

	wrapped, err := wrap.Compose[T](l.point, current, l.reg.Wrappers(), name, l.factory(), l.env.logger)
	if err != nil {
		return zero, err
	}
	l.recordName(wrapped, entry.Name)
	return wrapped, nil
}

// factory resolves the Object Factory collaborator: env.SetObjectFactory
// wins if set (the way package factory's Default is meant to be
// installed), otherwise it falls back to recursively requesting
// apis.ObjectFactory's adaptive instance on the same Environment, unless
// T is itself apis.ObjectFactory (the bootstrap hole) or no Point was
// ever registered for it, in which case extensions are injected with a
// nil factory and must tolerate it.
func (l *Loader[T]) factory() apis.ObjectFactory {
	if f := l.env.getObjectFactory(); f != nil {
		return f
	}
	var zero T
	if reflect.TypeOf(&zero).Elem() == objectFactoryType {
		return nil
	}
	fl, err := For[apis.ObjectFactory](l.env)
	if err != nil {
		return nil
	}
	inst, err := fl.Adaptive()
	if err != nil {
		return nil
	}
	return inst
}

var objectFactoryType = reflect.TypeOf((*apis.ObjectFactory)(nil)).Elem()

// anyLoader is the type-erased surface every Loader[T] satisfies. It
// exists so a caller holding only a reflect.Type (not a Go type
// parameter) can still resolve an extension through the Loader Registry
// — the situation package factory's default apis.ObjectFactory is in,
// since apis.ObjectFactory.Get's signature is dictated by the reflect
// setter it services, not by a generic caller.
type anyLoader interface {
	byNameAny(name string) (any, error)
	adaptiveAny() (any, error)
}

func (l *Loader[T]) byNameAny(name string) (any, error) { return l.ByName(name) }
func (l *Loader[T]) adaptiveAny() (any, error)          { return l.Adaptive() }

// ResolveByType looks up the already-built Loader for interface type t on
// env and resolves name through it, or its adaptive singleton if name is
// "". It reports false if no Loader for t has been built yet on env —
// it cannot build one, because that requires t's Go type as a compile-
// time parameter to For[T], not a runtime reflect.Type.
func ResolveByType(env *Environment, t reflect.Type, name string) (any, bool) {
	v, ok := env.loaders.Load(t)
	if !ok {
		return nil, false
	}
	al := v.(anyLoader)
	var (
		inst any
		err  error
	)
	if name == "" {
		inst, err = al.adaptiveAny()
	} else {
		inst, err = al.byNameAny(name)
	}
	if err != nil {
		return nil, false
	}
	return inst, true
}
