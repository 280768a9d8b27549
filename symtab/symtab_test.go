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

package symtab

import (
	"errors"
	"reflect"
	"sync"
	"testing"
)

type greeter interface {
	Greet() string
}

type englishGreeter struct{}

func (englishGreeter) Greet() string { return "hello" }

type loudWrapper struct{ inner greeter }

func (w loudWrapper) Greet() string { return w.inner.Greet() + "!" }

func TestBindAndLookup(t *testing.T) {
	defer reset()

	if err := Bind[greeter]("test.english", func() (greeter, error) { return englishGreeter{}, nil }); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	got, err := Lookup[greeter]("test.english")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if got.Greet() != "hello" {
		t.Fatalf("Greet() = %q, want hello", got.Greet())
	}
}

func TestBind_Idempotent(t *testing.T) {
	defer reset()
	ctor := func() (greeter, error) { return englishGreeter{}, nil }
	if err := Bind[greeter]("test.english", ctor); err != nil {
		t.Fatalf("first Bind: %v", err)
	}
	if err := Bind[greeter]("test.english", ctor); err != nil {
		t.Fatalf("idempotent re-bind should succeed, got %v", err)
	}
}

func TestBind_ConflictingRebind(t *testing.T) {
	defer reset()
	if err := Bind[greeter]("test.english", func() (greeter, error) { return englishGreeter{}, nil }); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	err := Bind[greeter]("test.english", func() (greeter, error) { return englishGreeter{}, nil })
	var already *ErrAlreadyBound
	if !errors.As(err, &already) {
		t.Fatalf("err = %v, want *ErrAlreadyBound", err)
	}
}

func TestLookup_Unbound(t *testing.T) {
	defer reset()
	_, err := Lookup[greeter]("nope")
	var unbound *ErrUnbound
	if !errors.As(err, &unbound) {
		t.Fatalf("err = %v, want *ErrUnbound", err)
	}
}

func TestBindWrapper_LookupWrapper(t *testing.T) {
	defer reset()
	if err := BindWrapper[greeter]("test.loud", func(g greeter) greeter { return loudWrapper{inner: g} }); err != nil {
		t.Fatalf("BindWrapper: %v", err)
	}
	wrapped, err := LookupWrapper[greeter]("test.loud", englishGreeter{})
	if err != nil {
		t.Fatalf("LookupWrapper: %v", err)
	}
	if wrapped.Greet() != "hello!" {
		t.Fatalf("Greet() = %q, want hello!", wrapped.Greet())
	}
}

func TestBindAdaptive_Symbols(t *testing.T) {
	defer reset()
	if err := BindAdaptive[greeter]("test.adaptive", func() (greeter, error) { return englishGreeter{}, nil }); err != nil {
		t.Fatalf("BindAdaptive: %v", err)
	}
	var zero greeter
	point := reflect.TypeOf(&zero).Elem()
	syms := Symbols(point)
	if len(syms) != 1 || syms[0].Category != Adaptive {
		t.Fatalf("Symbols() = %+v, want one Adaptive binding", syms)
	}
}

func TestBindActivated_CarriesActivationThroughSymbols(t *testing.T) {
	defer reset()
	act := Activation{Groups: []string{"consumer"}, TriggerKeys: []string{"cache"}, Order: 3}
	if err := BindActivated[greeter]("test.activated", func() (greeter, error) { return englishGreeter{}, nil }, act); err != nil {
		t.Fatalf("BindActivated: %v", err)
	}
	var zero greeter
	syms := Symbols(reflect.TypeOf(&zero).Elem())
	if len(syms) != 1 || syms[0].Activation == nil {
		t.Fatalf("Symbols() = %+v, want one binding carrying Activation", syms)
	}
	if syms[0].Activation.Order != 3 || syms[0].Activation.Groups[0] != "consumer" {
		t.Fatalf("Activation = %+v, want Order=3 Groups=[consumer]", syms[0].Activation)
	}
}

func TestBind_PlainOrdinary_NoActivation(t *testing.T) {
	defer reset()
	if err := Bind[greeter]("test.plain", func() (greeter, error) { return englishGreeter{}, nil }); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	var zero greeter
	syms := Symbols(reflect.TypeOf(&zero).Elem())
	if len(syms) != 1 || syms[0].Activation != nil {
		t.Fatalf("Symbols() = %+v, want a binding with no Activation", syms)
	}
}

func TestBind_ConcurrentDistinctSymbols(t *testing.T) {
	defer reset()
	var wg sync.WaitGroup
	errs := make([]error, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = Bind[greeter](symbolFor(i), func() (greeter, error) { return englishGreeter{}, nil })
		}(i)
	}
	wg.Wait()
	for i, err := range errs {
		if err != nil {
			t.Fatalf("Bind(%d): %v", i, err)
		}
	}
}

func symbolFor(i int) string {
	const letters = "abcdefghijklmnopqrstuvwxyz0123456789"
	return "concurrent." + string(letters[i%len(letters)]) + string(rune('A'+i%26))
}
