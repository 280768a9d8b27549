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

// Package cache implements two caching layers: a per-name Instance
// Holder with fail-fast error caching, and the process-wide raw instance
// table the Loader Registry shares across all Loader[T] values for the
// same extension point. Both are guarded by a plain mutex that every
// access takes, reads after publication included; there is no lock-free
// fast path. Holder does not use sync.Once because sync.Once cannot carry
// a typed construction error back out to every caller racing the first
// build.
package cache

import (
	"reflect"
	"sync"
)

// Holder lazily constructs and caches a single value of type T. The first
// Get runs the build function and caches its result, or its error: a
// construction failure is fail-fast and remembered too, so a broken
// binding is not rebuilt on every lookup (only Reset clears it).
type Holder[T any] struct {
	mu      sync.Mutex
	built   bool
	value   T
	err     error
	errSeen bool
}

// Get returns the cached value, building it via build on first use (or
// after a prior build attempt returned a nil error but built was never
// marked true, which cannot happen through normal use).
func (h *Holder[T]) Get(build func() (T, error)) (T, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.built {
		return h.value, nil
	}
	if h.errSeen {
		return h.value, h.err
	}
	v, err := build()
	if err != nil {
		h.err = err
		h.errSeen = true
		return h.value, err
	}
	h.value = v
	h.built = true
	return v, nil
}

// Peek returns the already-built value without triggering construction:
// it reports whether a name has been materialized without causing a
// materialization as a side effect.
func (h *Holder[T]) Peek() (T, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.value, h.built
}

// Reset clears a Holder's cached value and error, letting the next Get
// attempt construction again. Extension removal is out of scope for the
// loader itself; Reset exists so tests can reuse a Holder across cases.
func (h *Holder[T]) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	var zero T
	h.value = zero
	h.built = false
	h.err = nil
	h.errSeen = false
}

// rawKey identifies a slot in the process-wide raw instance table: the
// extension-point interface type plus the bound symbol. The table is
// shared across every Loader built against the same point, keyed by the
// symbol string standing in for the underlying implementing type.
type rawKey struct {
	point  reflect.Type
	symbol string
}

var (
	rawMu    sync.Mutex
	rawTable = map[rawKey]any{}
)

// RawGet returns the previously stored raw (pre-wrapper, pre-injection)
// instance for (point, symbol), if any.
func RawGet(point reflect.Type, symbol string) (any, bool) {
	rawMu.Lock()
	defer rawMu.Unlock()
	v, ok := rawTable[rawKey{point: point, symbol: symbol}]
	return v, ok
}

// RawStore records the raw instance for (point, symbol).
func RawStore(point reflect.Type, symbol string, value any) {
	rawMu.Lock()
	defer rawMu.Unlock()
	rawTable[rawKey{point: point, symbol: symbol}] = value
}
