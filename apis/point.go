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

import (
	"fmt"
	"reflect"
	"strings"
)

// MethodSpec describes one interface method that participates in adaptive
// dispatch: the ordered lookup keys used to resolve an extension name from
// a request URL. An empty Keys slice means the key must be derived from
// the interface's own name at synthesis time (see Point.DerivedKey).
type MethodSpec struct {
	// Keys are tried in order; the first one present in the request wins.
	Keys []string
}

// Point is the runtime stand-in for an extension-point marker: a
// type-level declaration that a Go interface is an extension point, plus
// whatever per-method adaptive metadata its author attached. It has no Go
// generic parameter itself; the interface type it describes is carried
// alongside it in the point registry, keyed by reflect.Type.
type Point struct {
	// Iface is the reflect.Type of the interface this point describes.
	Iface reflect.Type
	// DefaultName is returned by byName("true") and used as the innermost
	// fallback of the adaptive key-resolution chain. May be empty.
	DefaultName string
	// Methods maps method name to its adaptive MethodSpec. A method absent
	// from this map is not adaptive: a synthesized dispatcher raises
	// "unsupported operation" for it.
	Methods map[string]MethodSpec
}

// PointOption mutates a Point during registration.
type PointOption func(*Point)

// AdaptiveMethod declares that method m is adaptive, dispatched by the
// given ordered lookup keys. An empty keys list means "derive one key
// from the interface name at synthesis time".
func AdaptiveMethod(m string, keys ...string) PointOption {
	return func(p *Point) {
		if p.Methods == nil {
			p.Methods = make(map[string]MethodSpec)
		}
		p.Methods[m] = MethodSpec{Keys: keys}
	}
}

// ErrInvalidDefaultName is returned when a Point's default name carries
// more than one token: the marker's declared value must be a single
// token.
var ErrInvalidDefaultName = fmt.Errorf("spi: extension-point default name must be a single token")

// NewPoint validates and constructs a Point for the interface type t.
// defaultName may be empty; if non-empty it must not contain commas or
// whitespace, the marker's "single token" requirement on its declared
// default.
func NewPoint(t reflect.Type, defaultName string, opts ...PointOption) (*Point, error) {
	if t == nil || t.Kind() != reflect.Interface {
		return nil, ErrNotInterface
	}
	if strings.ContainsAny(defaultName, ", \t\n") {
		return nil, ErrInvalidDefaultName
	}
	p := &Point{Iface: t, DefaultName: defaultName, Methods: make(map[string]MethodSpec)}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// DerivedKey lower-cases the interface's simple name and dot-separates it
// on each upper-case boundary, e.g. "LoadBalance" -> "load.balance". It is
// used as the lookup key for an adaptive method whose MethodSpec.Keys is
// empty.
func (p *Point) DerivedKey() string {
	name := p.Iface.Name()
	var b strings.Builder
	for i, r := range name {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	return strings.ToLower(b.String())
}
