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

package inject_test

import (
	"reflect"
	"testing"

	"dirpx.dev/spi/apis"
	"dirpx.dev/spi/inject"
)

type widget struct {
	name    string
	timeout int
}

func (w *widget) SetName(n string)    { w.name = n }
func (w *widget) SetTimeout(t int)    { w.timeout = t }
func (w *widget) Unrelated(int, int)  {}
func (w *widget) GetName() string     { return w.name }

type fakeFactory map[string]any

func (f fakeFactory) Get(paramType reflect.Type, name string) (any, bool) {
	v, ok := f[name]
	if !ok {
		return nil, false
	}
	if !reflect.TypeOf(v).AssignableTo(paramType) {
		return nil, false
	}
	return v, true
}

func TestInto_InvokesMatchingSetters(t *testing.T) {
	w := &widget{}
	factory := fakeFactory{"name": "optimus", "timeout": 30}
	inject.Into(w, factory, apis.NopLogger{})

	if w.name != "optimus" {
		t.Fatalf("name = %q, want optimus", w.name)
	}
	if w.timeout != 30 {
		t.Fatalf("timeout = %d, want 30", w.timeout)
	}
}

func TestInto_NilFactory_SkipsWithoutPanic(t *testing.T) {
	w := &widget{}
	inject.Into(w, nil, apis.NopLogger{})
	if w.name != "" || w.timeout != 0 {
		t.Fatalf("expected no injection with nil factory, got %+v", w)
	}
}

func TestInto_FactoryDeclines_SkipsSilently(t *testing.T) {
	w := &widget{}
	inject.Into(w, fakeFactory{}, apis.NopLogger{})
	if w.name != "" || w.timeout != 0 {
		t.Fatalf("expected no injection, got %+v", w)
	}
}

func TestInto_IgnoresNonSetterAndMultiArgMethods(t *testing.T) {
	w := &widget{}
	factory := fakeFactory{"unrelated": 7}
	inject.Into(w, factory, apis.NopLogger{})
	if w.name != "" || w.timeout != 0 {
		t.Fatalf("expected no injection from non-setter methods, got %+v", w)
	}
}

func TestInto_NilValue_NoPanic(t *testing.T) {
	inject.Into(nil, fakeFactory{}, apis.NopLogger{})
}
