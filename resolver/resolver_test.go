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

package resolver_test

import (
	"testing"

	"dirpx.dev/spi/resolver"
	"dirpx.dev/spi/rpcurl"
	"dirpx.dev/spi/strategy"
)

func TestResolve_FirstKeyWins(t *testing.T) {
	r := resolver.New("dubbo", strategy.NewProtocolStrategy(), strategy.NewParamStrategy())
	url := rpcurl.New("rmi", "", map[string]string{"loadbalance": "random"})

	name, ok := r.Resolve([]string{"loadbalance", "protocol"}, url, nil)
	if !ok || name != "random" {
		t.Fatalf("Resolve() = (%q, %v), want (random, true)", name, ok)
	}
}

func TestResolve_FallsThroughToProtocol(t *testing.T) {
	r := resolver.New("dubbo", strategy.NewProtocolStrategy(), strategy.NewParamStrategy())
	url := rpcurl.New("rmi", "", nil)

	name, ok := r.Resolve([]string{"loadbalance", "protocol"}, url, nil)
	if !ok || name != "rmi" {
		t.Fatalf("Resolve() = (%q, %v), want (rmi, true)", name, ok)
	}
}

func TestResolve_FallsThroughToDefault(t *testing.T) {
	r := resolver.New("dubbo", strategy.NewProtocolStrategy(), strategy.NewParamStrategy())
	url := rpcurl.New("", "", nil)

	name, ok := r.Resolve([]string{"loadbalance", "protocol"}, url, nil)
	if !ok || name != "dubbo" {
		t.Fatalf("Resolve() = (%q, %v), want (dubbo, true)", name, ok)
	}
}

func TestResolve_NoDefault_NotOK(t *testing.T) {
	r := resolver.New("", strategy.NewProtocolStrategy(), strategy.NewParamStrategy())
	url := rpcurl.New("", "", nil)

	_, ok := r.Resolve([]string{"loadbalance"}, url, nil)
	if ok {
		t.Fatalf("Resolve() ok = true, want false when nothing resolves and no default")
	}
}

func TestResolve_MethodScopedParameter(t *testing.T) {
	r := resolver.New("", strategy.NewParamStrategy())
	url := rpcurl.New("dubbo", "", map[string]string{"refer.timeout": "500", "timeout": "100"})
	inv := rpcurl.NewInvocation("refer")

	name, ok := r.Resolve([]string{"timeout"}, url, inv)
	if !ok || name != "500" {
		t.Fatalf("Resolve() = (%q, %v), want (500, true) [method-scoped override]", name, ok)
	}
}
