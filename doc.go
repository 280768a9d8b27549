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

// Package spi is a service-provider / extension loader: given an
// interface (the extension point) and a textual name, it returns a
// fully wired, cached singleton implementation — optionally wrapped by
// decorator chains, with dependencies injected from other extension
// points, and optionally specialized per request by an adaptive
// dispatcher that chooses the concrete implementation at call time from
// attributes of a request URL.
//
// # Design
//
// The interesting engineering lives in the component packages, each
// addressing one layer of the problem:
//
//   - package scanner walks a three-directory search path, highest
//     precedence first, and parses "name = pkg.Impl" / bare "pkg.Impl"
//     resource lines.
//   - package symtab is the constructor symbol table extension authors
//     bind into from an init(), the Go-native substitute for reflecting
//     a class literal by name (the same pattern database/sql drivers and
//     image codecs use).
//   - package registry classifies scanned lines against symtab bindings
//     into ordinary/wrapper/adaptive entries, per extension point.
//   - package cache holds the per-name Instance Holder (double-checked
//     publication, fail-fast error caching) and the process-wide raw
//     instance table shared across loaders.
//   - package inject performs setter-style dependency injection via
//     reflect, resolving each setter through an apis.ObjectFactory.
//   - package wrap composes registered decorator chains onto a freshly
//     built instance.
//   - package activate resolves the group/trigger-key activation filter
//     into an ordered, materialized extension list.
//   - package synth and package compiler synthesize and realize an
//     adaptive dispatcher (via an embedded Go interpreter) when no
//     manually authored adaptive implementation is registered.
//   - package loader ties all of the above into Environment and
//     Loader[T]: the Loader Registry (one per Environment) and its per-interface
//     programmatic surface (ByName, Adaptive, Activate, ...).
//
// This root package is a thin convenience layer over a single
// package-level default Environment, so most programs never need to
// construct one explicitly:
//
//	func init() {
//	    _ = spi.Extension[demo.Robot]("")
//	}
//
//	r, err := spi.ByName[demo.Robot]("optimusPrime")
//
// Swap the default Environment (for tests, or to point at a different
// config filesystem) with SetEnvironment. Environment values are
// themselves safe for concurrent use, so readers racing a swap observe
// either the old or the new Environment consistently, never a partial
// one.
package spi
