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

// Package builder composes the adaptive key-resolution chain from an
// extension point's declared default name: a single place
// that wires the stock apis.KeyStrategy collaborators together so
// package adaptive and the synthesized dispatcher runtime do not each
// need to know the strategy set.
package builder

import (
	"dirpx.dev/spi/apis"
	"dirpx.dev/spi/resolver"
	"dirpx.dev/spi/strategy"
)

// DefaultKeyResolver returns the stock apis.KeyResolver: the "protocol"
// special case tried before the ordinary parameter lookup, falling back
// to defaultName.
func DefaultKeyResolver(defaultName string) apis.KeyResolver {
	return resolver.New(defaultName, strategy.NewProtocolStrategy(), strategy.NewParamStrategy())
}
