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

// Package registry implements the Class Registry: the component that
// turns a Resource Scanner's parsed lines plus the symtab's bound
// constructors into the classified, queryable view a Loader[T] builds on.
// Construction happens once, up front, from an already-collected
// scanner.Result; the resulting apis.ClassRegistry is read concurrently
// by many Loader[T] instances afterward, so its reads take a
// sync.RWMutex read lock. There is no sync.Map or double-checked fast
// path.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"dirpx.dev/spi/apis"
	"dirpx.dev/spi/scanner"
	"dirpx.dev/spi/symtab"
)

// classRegistry is the concrete apis.ClassRegistry built once per
// extension point and shared by every Loader[T] for that point.
type classRegistry struct {
	mu          sync.RWMutex
	defaultName string
	ordinary    map[string]apis.Entry
	wrappers    []apis.Entry
	adaptive    *apis.Entry
	failures    []apis.LoadFailure
}

// Build classifies scan's lines against the constructors bound in symtab
// for point.Iface, and returns the resulting apis.ClassRegistry. point
// supplies the configured default name. A conflicting duplicate binding
// within a single source directory, or more than one adaptive symbol,
// is reported as a *apis.ConfigurationError.
func Build(point *apis.Point, scan scanner.Result) (apis.ClassRegistry, error) {
	r := &classRegistry{
		defaultName: point.DefaultName,
		ordinary:    map[string]apis.Entry{},
		failures:    append([]apis.LoadFailure(nil), scan.Failures...),
	}

	type seenKey struct{ name, dir string }
	seen := map[seenKey]string{} // name@dir -> symbol, to catch same-dir duplicates
	bindings := symtab.Symbols(point.Iface)

	for _, line := range scan.Lines {
		bound, ok := findBinding(bindings, line.Symbol)
		if !ok {
			r.failures = append(r.failures, apis.LoadFailure{
				Symbol: line.Symbol,
				Err:    &symtab.ErrUnbound{Point: point.Iface, Symbol: line.Symbol},
			})
			continue
		}

		switch bound.Category {
		case symtab.Wrapper:
			r.wrappers = append(r.wrappers, apis.Entry{
				Name: line.Symbol, Symbol: line.Symbol, Category: apis.Wrapper,
			})

		case symtab.Adaptive:
			if r.adaptive != nil && r.adaptive.Symbol != line.Symbol {
				return nil, &apis.ConfigurationError{
					Point: point.Iface.String(),
					Msg:   fmt.Sprintf("multiple adaptive classes: %q and %q", r.adaptive.Symbol, line.Symbol),
				}
			}
			name := line.Symbol
			if len(line.Names) > 0 {
				name = line.Names[0] // canonical name: first alias (GLOSSARY)
			}
			entry := apis.Entry{Name: name, Symbol: line.Symbol, Category: apis.Adaptive}
			r.adaptive = &entry

		default: // Ordinary
			if len(line.Names) == 0 {
				r.failures = append(r.failures, apis.LoadFailure{
					Symbol: line.Symbol,
					Err:    fmt.Errorf("registry: ordinary binding %q requires a name", line.Symbol),
				})
				continue
			}
			canonical := line.Names[0]
			skip := false
			for _, name := range line.Names {
				key := seenKey{name: name, dir: line.Dir}
				if prior, dup := seen[key]; dup && prior != line.Symbol {
					return nil, &apis.ConfigurationError{
						Point: point.Iface.String(),
						Msg:   fmt.Sprintf("name %q bound to both %q and %q in %s", name, prior, line.Symbol, line.Dir),
					}
				}
				seen[key] = line.Symbol
				if existing, already := r.ordinary[name]; already && existing.Symbol != line.Symbol {
					skip = true // earlier (higher-precedence) directory already won this alias
				}
			}
			if skip {
				continue
			}
			var act *apis.Activation
			if bound.Activation != nil {
				act = &apis.Activation{
					Groups:      bound.Activation.Groups,
					TriggerKeys: bound.Activation.TriggerKeys,
					Order:       bound.Activation.Order,
				}
			}
			for _, name := range line.Names {
				r.ordinary[name] = apis.Entry{Name: canonical, Symbol: line.Symbol, Category: apis.Ordinary, Activation: act}
			}
		}
	}

	bindOrder := make(map[string]int, len(bindings))
	for i, b := range bindings {
		bindOrder[b.Symbol] = i
	}
	sort.SliceStable(r.wrappers, func(i, j int) bool {
		return bindOrder[r.wrappers[i].Symbol] < bindOrder[r.wrappers[j].Symbol]
	})

	return r, nil
}

func findBinding(bindings []symtab.Binding, symbol string) (symtab.Binding, bool) {
	for _, b := range bindings {
		if b.Symbol == symbol {
			return b, true
		}
	}
	return symtab.Binding{}, false
}

func (r *classRegistry) Entries() []apis.Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]apis.Entry, 0, len(r.ordinary)+len(r.wrappers)+1)
	seenSymbols := map[string]bool{}
	for _, e := range r.ordinary {
		if seenSymbols[e.Symbol] {
			continue // an aliased binding appears once per alias in r.ordinary
		}
		seenSymbols[e.Symbol] = true
		out = append(out, e)
	}
	out = append(out, r.wrappers...)
	if r.adaptive != nil {
		out = append(out, *r.adaptive)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (r *classRegistry) ByName(name string) (apis.Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.ordinary[name]
	return e, ok
}

func (r *classRegistry) DefaultName() string {
	return r.defaultName
}

func (r *classRegistry) Wrappers() []apis.Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]apis.Entry(nil), r.wrappers...)
}

func (r *classRegistry) AdaptiveSymbol() (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.adaptive == nil {
		return "", false
	}
	return r.adaptive.Symbol, true
}

func (r *classRegistry) SupportedNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.ordinary))
	for name := range r.ordinary {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (r *classRegistry) Failures() []apis.LoadFailure {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]apis.LoadFailure(nil), r.failures...)
}

var _ apis.ClassRegistry = (*classRegistry)(nil)
