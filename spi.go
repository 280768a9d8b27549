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

package spi

import (
	"io/fs"
	"os"
	"sync/atomic"

	"dirpx.dev/spi/apis"
	"dirpx.dev/spi/factory"
	"dirpx.dev/spi/loader"
	"dirpx.dev/spi/rpcurl"
)

var defaultEnv atomic.Pointer[loader.Environment]

func init() {
	defaultEnv.Store(NewDefaultEnvironment(os.DirFS(".")))
}

// NewDefaultEnvironment constructs an Environment reading from
// filesystem and wires package factory's Default apis.ObjectFactory into
// it, the combination most host programs want. Use loader.NewEnvironment
// directly for full control over the Object Factory (or none at all).
func NewDefaultEnvironment(filesystem fs.FS, opts ...loader.EnvOption) *loader.Environment {
	env := loader.NewEnvironment(filesystem, opts...)
	env.SetObjectFactory(factory.New(env))
	return env
}

// Env returns the package-level default Environment. Most programs never
// need it directly; it is exported so callers can pass it to loader.For
// directly, or read it back after a SetEnvironment swap.
func Env() *loader.Environment {
	return defaultEnv.Load()
}

// SetEnvironment replaces the package-level default Environment, e.g. in
// a test's TestMain to point at an in-memory fstest.MapFS, or in a host
// program to point at a non-default config root. Safe for concurrent use
// with readers; a reader racing a swap observes either the old or the
// new Environment, never a partially constructed one.
func SetEnvironment(env *loader.Environment) {
	defaultEnv.Store(env)
}

// Extension registers interface T as an extension point on the default
// Environment. See loader.Extension.
func Extension[T any](defaultName string, opts ...apis.PointOption) error {
	return loader.Extension[T](Env(), defaultName, opts...)
}

// For returns the Loader for extension point T on the default
// Environment, building it on first use. See loader.For.
func For[T any]() (*loader.Loader[T], error) {
	return loader.For[T](Env())
}

// ByName is sugar for For[T]().ByName(name).
func ByName[T any](name string) (T, error) {
	var zero T
	l, err := For[T]()
	if err != nil {
		return zero, err
	}
	return l.ByName(name)
}

// Adaptive is sugar for For[T]().Adaptive().
func Adaptive[T any]() (T, error) {
	var zero T
	l, err := For[T]()
	if err != nil {
		return zero, err
	}
	return l.Adaptive()
}

// Activate is sugar for For[T]().Activate(url, requested, group).
func Activate[T any](url *rpcurl.URL, requested []string, group string) ([]T, error) {
	l, err := For[T]()
	if err != nil {
		return nil, err
	}
	return l.Activate(url, requested, group)
}
