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

// Package loader implements the Loader Registry and the per-interface
// Loader[T]: the process-wide mapping from an extension-point interface
// to its loader singleton is redesigned (see DESIGN.md's Open Question
// decision) as an explicit Environment value the host constructs and
// passes around, rather than true process-wide global state — the one
// exception is the raw instance table (package cache), which is
// deliberately kept "shared across loaders" process-wide (see
// DESIGN.md).
package loader

import (
	"io/fs"
	"reflect"
	"sync"

	"dirpx.dev/spi/apis"
	"dirpx.dev/spi/compiler"
	"dirpx.dev/spi/config"
)

// Environment owns everything a Loader Registry needs to build loaders
// lazily: the filesystem the Resource Scanner reads from, the resolution
// Config, and the default Logger/Compiler collaborators. A zero
// Environment is not usable; construct one with NewEnvironment.
type Environment struct {
	fs       fs.FS
	cfg      config.Config
	logger   apis.Logger
	compiler apis.Compiler

	// mu serializes the slow path of building a Loader; fast-path reads go
	// through the sync.Maps below lock-free, a double-checked-locking
	// pattern. Registering a Point (Extension) stores into points directly
	// without taking mu.
	mu      sync.Mutex
	points  sync.Map // reflect.Type -> *apis.Point
	loaders sync.Map // reflect.Type -> any (concrete *Loader[T])

	objMu         sync.RWMutex
	objectFactory apis.ObjectFactory
}

// EnvOption mutates an Environment during construction.
type EnvOption func(*Environment)

// NewEnvironment constructs an Environment reading extension-point
// configuration from filesystem.
func NewEnvironment(filesystem fs.FS, opts ...EnvOption) *Environment {
	env := &Environment{
		fs:       filesystem,
		cfg:      config.DefaultConfig(),
		logger:   apis.NopLogger{},
		compiler: compiler.New(),
	}
	for _, opt := range opts {
		opt(env)
	}
	return env
}

// WithConfig overrides the default resolution Config.
func WithConfig(cfg config.Config) EnvOption {
	return func(e *Environment) { e.cfg = cfg }
}

// WithLogger overrides the default apis.NopLogger.
func WithLogger(logger apis.Logger) EnvOption {
	return func(e *Environment) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithCompiler overrides the default yaegi-backed Compiler.
func WithCompiler(c apis.Compiler) EnvOption {
	return func(e *Environment) {
		if c != nil {
			e.compiler = c
		}
	}
}

// SetObjectFactory installs the apis.ObjectFactory every Loader built on
// env injects new instances with, bypassing the recursive
// loaderFor(ObjectFactory).Adaptive() bootstrap in package loader's
// factory() helper. Package factory's Default is meant to be installed
// this way:
//
//	env.SetObjectFactory(factory.New(env))
//
// Safe to call at any time; a Loader already holding a reference to the
// previous factory keeps using it for in-flight constructions, but every
// subsequent construction observes the new one.
func (e *Environment) SetObjectFactory(f apis.ObjectFactory) {
	e.objMu.Lock()
	e.objectFactory = f
	e.objMu.Unlock()
}

func (e *Environment) getObjectFactory() apis.ObjectFactory {
	e.objMu.RLock()
	defer e.objMu.RUnlock()
	return e.objectFactory
}

// pointFor returns the registered Point for t, or (nil, false).
func (e *Environment) pointFor(t reflect.Type) (*apis.Point, bool) {
	v, ok := e.points.Load(t)
	if !ok {
		return nil, false
	}
	return v.(*apis.Point), true
}
