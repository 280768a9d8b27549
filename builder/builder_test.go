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

package builder_test

import (
	"runtime"
	"sync"
	"testing"

	"dirpx.dev/spi/builder"
	"dirpx.dev/spi/rpcurl"
)

func TestDefaultKeyResolver_FirstDeclaredKeyWins(t *testing.T) {
	r := builder.DefaultKeyResolver("dubbo")
	url := rpcurl.New("rmi", "", map[string]string{"loadbalance": "random"})

	name, ok := r.Resolve([]string{"loadbalance", "protocol"}, url, nil)
	if !ok || name != "random" {
		t.Fatalf("Resolve() = (%q, %v), want (random, true)", name, ok)
	}
}

func TestDefaultKeyResolver_FallsBackToProtocol(t *testing.T) {
	r := builder.DefaultKeyResolver("dubbo")
	url := rpcurl.New("rmi", "", nil)

	name, ok := r.Resolve([]string{"loadbalance", "protocol"}, url, nil)
	if !ok || name != "rmi" {
		t.Fatalf("Resolve() = (%q, %v), want (rmi, true)", name, ok)
	}
}

func TestDefaultKeyResolver_FallsBackToDefaultName(t *testing.T) {
	r := builder.DefaultKeyResolver("dubbo")
	url := rpcurl.New("", "", nil)

	name, ok := r.Resolve([]string{"loadbalance"}, url, nil)
	if !ok || name != "dubbo" {
		t.Fatalf("Resolve() = (%q, %v), want (dubbo, true)", name, ok)
	}
}

func TestDefaultKeyResolver_ConcurrencySmoke(t *testing.T) {
	r := builder.DefaultKeyResolver("dubbo")
	url := rpcurl.New("rmi", "", map[string]string{"loadbalance": "random"})

	workers := runtime.GOMAXPROCS(0) * 4
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < 2000; i++ {
				_, _ = r.Resolve([]string{"loadbalance", "protocol"}, url, nil)
			}
		}()
	}
	wg.Wait()
}
