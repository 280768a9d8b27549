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

// ClassRegistry is the "Class Registry": the per-extension-point view
// over the three-directory resource scan, resolved against bound
// constructor symbols. One ClassRegistry exists per registered Point.
type ClassRegistry interface {
	// Entries returns every ordinary, wrapper and adaptive entry
	// discovered for this point, sorted by name (wrappers use their symbol
	// as name; an aliased ordinary binding appears once).
	Entries() []Entry

	// ByName returns the bound Entry for name, or (Entry{}, false).
	ByName(name string) (Entry, bool)

	// DefaultName returns the point's configured default name, or "" if
	// the point declares none.
	DefaultName() string

	// Wrappers returns every bound wrapper Entry, in the order their
	// symbols were bound (see DESIGN.md's Open Question decision on
	// wrapper application order).
	Wrappers() []Entry

	// AdaptiveSymbol returns the symbol of a manually bound adaptive
	// class for this point, and true if one exists. At most one may
	// exist; the Class Registry rejects a second at bind time with a
	// ConfigurationError.
	AdaptiveSymbol() (symbol string, ok bool)

	// SupportedNames returns every ordinary (non-wrapper) name known to
	// this registry, for diagnostics.
	SupportedNames() []string

	// Failures returns every class load failure recorded while scanning
	// and resolving this point's configuration.
	Failures() []LoadFailure
}
