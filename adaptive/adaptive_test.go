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

package adaptive_test

import (
	"reflect"
	"testing"

	"dirpx.dev/spi/adaptive"
	"dirpx.dev/spi/apis"
	"dirpx.dev/spi/compiler"
	"dirpx.dev/spi/rpcurl"
	"dirpx.dev/spi/symtab"
)

type protocol interface {
	Refer(url *rpcurl.URL) (string, error)
}

type manualAdaptive struct{}

func (manualAdaptive) Refer(url *rpcurl.URL) (string, error) { return "manual:" + url.Protocol(), nil }

type fakeRegistry struct {
	adaptiveSymbol string
	hasAdaptive    bool
}

func (r fakeRegistry) Entries() []apis.Entry                 { return nil }
func (r fakeRegistry) ByName(string) (apis.Entry, bool)      { return apis.Entry{}, false }
func (r fakeRegistry) DefaultName() string                  { return "" }
func (r fakeRegistry) Wrappers() []apis.Entry                { return nil }
func (r fakeRegistry) AdaptiveSymbol() (string, bool)        { return r.adaptiveSymbol, r.hasAdaptive }
func (r fakeRegistry) SupportedNames() []string              { return nil }
func (r fakeRegistry) Failures() []apis.LoadFailure          { return nil }

func protocolPoint(t *testing.T) *apis.Point {
	t.Helper()
	var zero protocol
	pt, err := apis.NewPoint(reflect.TypeOf(&zero).Elem(), "dubbo", apis.AdaptiveMethod("Refer", "protocol"))
	if err != nil {
		t.Fatalf("NewPoint: %v", err)
	}
	return pt
}

func TestBuild_ManualAdaptivePath(t *testing.T) {
	must(t, symtab.BindAdaptive[protocol]("adaptivetest.Manual", func() (protocol, error) { return manualAdaptive{}, nil }))

	reg := fakeRegistry{adaptiveSymbol: "adaptivetest.Manual", hasAdaptive: true}
	byName := func(string) (protocol, error) { return nil, nil }

	inst, err := adaptive.Build[protocol](protocolPoint(t), reg, byName, nil, apis.NopLogger{}, compiler.New(), 8)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	got, err := inst.Refer(rpcurl.New("rmi", "", nil))
	if err != nil || got != "manual:rmi" {
		t.Fatalf("Refer() = (%q, %v), want (manual:rmi, nil)", got, err)
	}
}

func TestBuild_SynthesizedPath_DispatchesByProtocol(t *testing.T) {
	reg := fakeRegistry{}
	byName := func(name string) (protocol, error) {
		return stubProtocol{name: name}, nil
	}

	inst, err := adaptive.Build[protocol](protocolPoint(t), reg, byName, nil, apis.NopLogger{}, compiler.New(), 8)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	got, err := inst.Refer(rpcurl.New("rmi", "", nil))
	if err != nil {
		t.Fatalf("Refer: %v", err)
	}
	if got != "rmi" {
		t.Fatalf("Refer() = %q, want rmi (dispatched by protocol)", got)
	}
}

type stubProtocol struct{ name string }

func (s stubProtocol) Refer(url *rpcurl.URL) (string, error) { return s.name, nil }

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
}
