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

package apis

import "dirpx.dev/spi/rpcurl"

// KeyResolver is synthesized-dispatcher support: given the adaptive
// method's ordered key list, it walks a right-to-left default chain of
// KeyStrategy steps and returns the extension name to load.
type KeyResolver interface {
	// Resolve returns the extension name to load for the given ordered
	// key list, URL, and invocation (invocation may be nil when the
	// adaptive method has no Invocation-shaped argument).
	Resolve(keys []string, url *rpcurl.URL, inv *rpcurl.Invocation) (name string, ok bool)
}

// KeyStrategy is a single step in a KeyResolver's chain: it looks at one
// key and decides a name, or declines so the chain can fall through to
// the next key/strategy. Two stock strategies are shipped (package
// strategy): a parameterized-key strategy (the url.GetMethodParameter/
// GetParameter pair) and the special-cased "protocol" strategy
// (url.Protocol()).
type KeyStrategy interface {
	TryResolve(key string, url *rpcurl.URL, inv *rpcurl.Invocation) (name string, handled bool)
}
