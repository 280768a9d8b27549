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

// Filter is the Activation Filter's extension point: every
// implementation declares which consumer groups it applies to and which
// request trigger keys must be present for it to auto-activate.
type Filter interface {
	Name() string
}

type CacheFilter struct{}

func (CacheFilter) Name() string { return "cache" }

type TraceFilter struct{}

func (TraceFilter) Name() string { return "trace" }

type LogFilter struct{}

func (LogFilter) Name() string { return "log" }

func init() {
	must(symtab.BindActivated[Filter]("demo.CacheFilter", func() (Filter, error) { return CacheFilter{}, nil },
		symtab.Activation{Groups: []string{"consumer"}, TriggerKeys: []string{"cache"}, Order: 2}))
	must(symtab.BindActivated[Filter]("demo.TraceFilter", func() (Filter, error) { return TraceFilter{}, nil },
		symtab.Activation{Groups: []string{"consumer", "provider"}, Order: 0}))
	must(symtab.BindActivated[Filter]("demo.LogFilter", func() (Filter, error) { return LogFilter{}, nil },
		symtab.Activation{Groups: []string{"provider"}, Order: 1}))
}
