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

package compiler_test

import (
	"reflect"
	"testing"

	"dirpx.dev/spi/apis"
	"dirpx.dev/spi/compiler"
	"dirpx.dev/spi/rpcurl"
	"dirpx.dev/spi/synth"
)

type protocol interface {
	Refer(url *rpcurl.URL) (string, error)
}

func TestCompile_SynthesizedDispatcherResolvesToFunc(t *testing.T) {
	var zero protocol
	point, err := apis.NewPoint(reflect.TypeOf(&zero).Elem(), "dubbo", apis.AdaptiveMethod("Refer", "protocol"))
	if err != nil {
		t.Fatalf("NewPoint: %v", err)
	}
	src, err := synth.Generate(point, 8)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	v, err := compiler.New().Compile(src, nil, synth.Entrypoint)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if v.Kind() != reflect.Func {
		t.Fatalf("Compile() returned kind %s, want Func", v.Kind())
	}
}

func TestCompile_InvalidSource_ReturnsError(t *testing.T) {
	_, err := compiler.New().Compile("package dispatcher\n\nfunc broken(", nil, "dispatcher.New")
	if err == nil {
		t.Fatalf("expected error compiling malformed source")
	}
}

var _ apis.Compiler = compiler.Yaegi{}
