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
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the "invalid argument" class of failures.
var (
	// ErrEmptyName is returned when a null/empty name is passed to byName.
	ErrEmptyName = errors.New("spi: empty extension name")
	// ErrNotInterface is returned when loaderFor is given a non-interface type.
	ErrNotInterface = errors.New("spi: type is not an interface")
	// ErrNotExtensionPoint is returned when an interface has no registered Point.
	ErrNotExtensionPoint = errors.New("spi: interface is not a registered extension point")
	// ErrNoDefault is returned by byName("true") when the point declares
	// no usable default name (empty, or itself the literal "true").
	ErrNoDefault = errors.New("spi: extension point has no usable default name")
)

// ConfigurationError reports a name bound to two different symbols within
// one search directory, or multiple adaptive classes. Malformed resource
// lines are recorded as LoadFailures instead, and a multi-token default
// name is rejected with ErrInvalidDefaultName.
type ConfigurationError struct {
	Point string
	Msg   string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("spi(%s): configuration error: %s", e.Point, e.Msg)
}

// LoadFailure records a single config line's failed symbol resolution,
// kept per-loader and joined into the diagnostic a byName call raises
// when the requested name cannot be found at all.
type LoadFailure struct {
	Symbol string
	Err    error
}

func (f LoadFailure) Error() string {
	return fmt.Sprintf("%s: %v", f.Symbol, f.Err)
}

// NotFoundError is raised by byName when no class registry entry matches
// the requested name. It joins in every captured LoadFailure whose Symbol
// case-insensitively contains the requested name.
type NotFoundError struct {
	Point    string
	Name     string
	Failures []LoadFailure
}

func (e *NotFoundError) Error() string {
	msg := fmt.Sprintf("spi(%s): no extension named %q", e.Point, e.Name)
	needle := strings.ToLower(e.Name)
	var joined []error
	for _, f := range e.Failures {
		if strings.Contains(strings.ToLower(f.Symbol), needle) {
			joined = append(joined, f)
		}
	}
	if len(joined) == 0 {
		return msg
	}
	return msg + "; related load failures: " + errors.Join(joined...).Error()
}

// ConstructionError wraps a reflective instantiation or setter-invocation
// failure with the extension point and name for diagnosis.
type ConstructionError struct {
	Point string
	Name  string
	Err   error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("spi(%s): construct %q: %v", e.Point, e.Name, e.Err)
}

func (e *ConstructionError) Unwrap() error { return e.Err }

// SynthesisError reports that no adaptive method exists on the
// interface, or that a URL-bearing argument could not be discovered. It
// is cached and re-raised on subsequent adaptive() calls for the same
// point.
type SynthesisError struct {
	Point string
	Msg   string
}

func (e *SynthesisError) Error() string {
	return fmt.Sprintf("spi(%s): adaptive synthesis failed: %s", e.Point, e.Msg)
}

// UnsupportedOperationError reports a call to a non-adaptive method on
// a synthesized dispatcher.
type UnsupportedOperationError struct {
	Point  string
	Method string
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("spi(%s): %s is not an adaptive method", e.Point, e.Method)
}
