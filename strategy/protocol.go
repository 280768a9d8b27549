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

package strategy

import (
	"dirpx.dev/spi/apis"
	"dirpx.dev/spi/rpcurl"
)

// NewProtocolStrategy returns the special-cased "protocol" key strategy:
// url.Protocol() rather than a parameter lookup. It only handles the
// literal key "protocol"; any other key is declined so the chain falls
// through.
func NewProtocolStrategy() apis.KeyStrategy {
	return protocolStrategy{}
}

type protocolStrategy struct{}

func (protocolStrategy) TryResolve(key string, url *rpcurl.URL, _ *rpcurl.Invocation) (string, bool) {
	if key != "protocol" {
		return "", false
	}
	v := url.Protocol()
	return v, v != ""
}
