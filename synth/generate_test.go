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

package synth_test

import (
	"reflect"
	"strings"
	"testing"

	"dirpx.dev/spi/apis"
	"dirpx.dev/spi/rpcurl"
	"dirpx.dev/spi/synth"
)

type protocol interface {
	Refer(url *rpcurl.URL) (string, error)
	Close() error
}

func protocolPoint(t *testing.T) *apis.Point {
	t.Helper()
	var zero protocol
	pt, err := apis.NewPoint(reflect.TypeOf(&zero).Elem(), "dubbo", apis.AdaptiveMethod("Refer", "protocol"))
	if err != nil {
		t.Fatalf("NewPoint: %v", err)
	}
	return pt
}

func TestGenerate_AdaptiveMethodBody(t *testing.T) {
	src, err := synth.Generate(protocolPoint(t), 8)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for _, want := range []string{
		"package dispatcher",
		`func (d *impl) Refer(p0 *rpcurl.URL) (string, error) {`,
		`d.rt.Resolve("Refer", []string{"protocol"}, url, inv)`,
		`synth.Call(ext, "Refer", p0)`,
	} {
		if !strings.Contains(src, want) {
			t.Fatalf("generated source missing %q\n--- source ---\n%s", want, src)
		}
	}
}

func TestGenerate_NonAdaptiveMethodReturnsUnsupported(t *testing.T) {
	src, err := synth.Generate(protocolPoint(t), 8)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(src, `synth.Unsupported(d.point, "Close")`) {
		t.Fatalf("generated source missing Unsupported call for Close:\n%s", src)
	}
}

type badReturn interface {
	DoThing() (int, bool)
}

func TestGenerate_RejectsMethodNotEndingInError(t *testing.T) {
	var zero badReturn
	pt, err := apis.NewPoint(reflect.TypeOf(&zero).Elem(), "")
	if err != nil {
		t.Fatalf("NewPoint: %v", err)
	}
	_, genErr := synth.Generate(pt, 8)
	var synthErr *apis.SynthesisError
	if genErr == nil {
		t.Fatalf("expected SynthesisError, got nil")
	}
	if !asSynthesisError(genErr, &synthErr) {
		t.Fatalf("err = %v, want *apis.SynthesisError", genErr)
	}
}

func asSynthesisError(err error, target **apis.SynthesisError) bool {
	se, ok := err.(*apis.SynthesisError)
	if ok {
		*target = se
	}
	return ok
}

type noURLAdaptive interface {
	Pick(name string) (string, error)
}

func TestGenerate_AdaptiveMethodWithoutURL_Fails(t *testing.T) {
	var zero noURLAdaptive
	pt, err := apis.NewPoint(reflect.TypeOf(&zero).Elem(), "", apis.AdaptiveMethod("Pick"))
	if err != nil {
		t.Fatalf("NewPoint: %v", err)
	}
	_, genErr := synth.Generate(pt, 8)
	if genErr == nil {
		t.Fatalf("expected synthesis failure when no URL parameter is present")
	}
}

type longChainAdaptive interface {
	Pick(url *rpcurl.URL) (string, error)
}

func TestGenerate_KeyChainLongerThanMaxDepth_Fails(t *testing.T) {
	var zero longChainAdaptive
	pt, err := apis.NewPoint(reflect.TypeOf(&zero).Elem(), "",
		apis.AdaptiveMethod("Pick", "a", "b", "c"))
	if err != nil {
		t.Fatalf("NewPoint: %v", err)
	}
	_, genErr := synth.Generate(pt, 2)
	var synthErr *apis.SynthesisError
	if genErr == nil {
		t.Fatalf("expected SynthesisError when key chain exceeds maxChainDepth")
	}
	if !asSynthesisError(genErr, &synthErr) {
		t.Fatalf("err = %v, want *apis.SynthesisError", genErr)
	}
}
