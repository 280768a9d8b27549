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

// Package resolver implements the adaptive key-resolution chain: an
// apis.KeyResolver built from an ordered set of apis.KeyStrategy steps,
// plus the point's declared default name as the innermost fallback. The
// nested right-to-left default-chain expression this models evaluates,
// at runtime, to "first key whose strategy produces a non-empty value
// wins, else the extension point's default name" — so this chain
// implements that behavior directly rather than literally building
// nested closures per key.
package resolver

import "dirpx.dev/spi/rpcurl"

// New constructs a KeyResolver trying strategies in order for each key in
// Resolve's keys list, falling back to defaultName (the extension
// point's declared default) when every key and every strategy declines.
// Nil strategies are ignored.
func New(defaultName string, strategies ...keyStrategy) *Chain {
	out := make([]keyStrategy, 0, len(strategies))
	for _, s := range strategies {
		if s != nil {
			out = append(out, s)
		}
	}
	return &Chain{defaultName: defaultName, strategies: out}
}

// keyStrategy mirrors apis.KeyStrategy; declared locally so this package
// does not need to import apis just to spell the interface its
// constructor accepts (avoids a dependency purely for a type name).
type keyStrategy interface {
	TryResolve(key string, url *rpcurl.URL, inv *rpcurl.Invocation) (name string, handled bool)
}

// Chain is the concrete apis.KeyResolver.
type Chain struct {
	defaultName string
	strategies  []keyStrategy
}

// Resolve walks keys in order; for each it tries every strategy in turn
// and returns the first non-empty result. If no key resolves, Resolve
// returns (defaultName, defaultName != "").
func (c *Chain) Resolve(keys []string, url *rpcurl.URL, inv *rpcurl.Invocation) (string, bool) {
	for _, key := range keys {
		for _, s := range c.strategies {
			if name, handled := s.TryResolve(key, url, inv); handled && name != "" {
				return name, true
			}
		}
	}
	return c.defaultName, c.defaultName != ""
}
