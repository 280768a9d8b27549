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

// Package strategy holds the two KeyStrategy implementations the
// Dispatcher Synthesizer's generated code (package synth) and its
// embedded-interpreter runtime use to resolve an adaptive method's
// lookup keys against a request URL.
package strategy

import (
	"dirpx.dev/spi/apis"
	"dirpx.dev/spi/rpcurl"
)

// NewParamStrategy returns the ordinary key-lookup strategy: when an
// Invocation is in scope, it reads url.getMethodParameter(methodName,
// key); otherwise url.getParameter(key). Either form is handled by
// rpcurl.URL directly; this strategy only supplies the branching.
func NewParamStrategy() apis.KeyStrategy {
	return paramStrategy{}
}

type paramStrategy struct{}

func (paramStrategy) TryResolve(key string, url *rpcurl.URL, inv *rpcurl.Invocation) (string, bool) {
	if key == "protocol" {
		return "", false // the protocol key is handled by protocolStrategy
	}
	var v string
	if inv != nil {
		v = url.GetMethodParameter(inv.GetMethodName(), key)
	} else {
		v = url.GetParameter(key)
	}
	return v, v != ""
}
