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

package demo

import "dirpx.dev/spi/symtab"

// Robot is the simple-lookup extension point: no adaptive method, two
// named implementations, and a decorator that every lookup passes
// through.
type Robot interface {
	SayHello() string
}

type OptimusPrime struct{}

func (OptimusPrime) SayHello() string { return "One shall stand, one shall fall." }

type Bumblebee struct{}

func (Bumblebee) SayHello() string { return "*radio static* Hello!" }

// LoggingWrapper prefixes every Robot's greeting, demonstrating the
// Wrapper Composer: every Robot built by the loader passes through it.
type LoggingWrapper struct{ inner Robot }

func (w LoggingWrapper) SayHello() string { return "[robot] " + w.inner.SayHello() }

func init() {
	must(symtab.Bind[Robot]("demo.OptimusPrime", func() (Robot, error) { return OptimusPrime{}, nil }))
	must(symtab.Bind[Robot]("demo.Bumblebee", func() (Robot, error) { return Bumblebee{}, nil }))
	must(symtab.BindWrapper[Robot]("demo.LoggingWrapper", func(r Robot) Robot { return LoggingWrapper{inner: r} }))
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
