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

import (
	"dirpx.dev/spi/rpcurl"
	"dirpx.dev/spi/symtab"
)

// Protocol is the adaptive extension point: neither implementation
// carries a manual adaptive marker, so the loader synthesizes a
// dispatcher that reads the "protocol" key off the request URL at call
// time, falling back to the point's declared default name.
type Protocol interface {
	Refer(url *rpcurl.URL) (string, error)
}

type DubboProtocol struct{}

func (DubboProtocol) Refer(url *rpcurl.URL) (string, error) {
	return "dubbo://" + url.Host(), nil
}

type RmiProtocol struct{}

func (RmiProtocol) Refer(url *rpcurl.URL) (string, error) {
	return "rmi://" + url.Host(), nil
}

func init() {
	must(symtab.Bind[Protocol]("demo.DubboProtocol", func() (Protocol, error) { return DubboProtocol{}, nil }))
	must(symtab.Bind[Protocol]("demo.RmiProtocol", func() (Protocol, error) { return RmiProtocol{}, nil }))
}
