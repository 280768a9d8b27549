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

package demo_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"dirpx.dev/spi/internal/demo"
	"dirpx.dev/spi/loader"
	"dirpx.dev/spi/rpcurl"
)

func TestNewEnvironment_RobotByNameAndDefault(t *testing.T) {
	env, err := demo.NewEnvironment()
	require.NoError(t, err)

	l, err := loader.For[demo.Robot](env)
	require.NoError(t, err)

	bee, err := l.ByName("bumblebee")
	require.NoError(t, err)
	require.Contains(t, bee.SayHello(), "radio static")
	require.Contains(t, bee.SayHello(), "[robot]")

	def, err := l.ByName("true")
	require.NoError(t, err)
	require.Contains(t, def.SayHello(), "One shall stand")
}

func TestNewEnvironment_ProtocolAdaptiveDispatch(t *testing.T) {
	env, err := demo.NewEnvironment()
	require.NoError(t, err)

	l, err := loader.For[demo.Protocol](env)
	require.NoError(t, err)

	adaptive, err := l.Adaptive()
	require.NoError(t, err)

	got, err := adaptive.Refer(rpcurl.New("rmi", "h:1", nil))
	require.NoError(t, err)
	require.Equal(t, "rmi://h:1", got)

	got, err = adaptive.Refer(rpcurl.New("", "h:2", nil))
	require.NoError(t, err)
	require.Equal(t, "dubbo://h:2", got)
}

func TestNewEnvironment_FilterActivationOrdering(t *testing.T) {
	env, err := demo.NewEnvironment()
	require.NoError(t, err)

	l, err := loader.For[demo.Filter](env)
	require.NoError(t, err)

	url := rpcurl.New("", "", map[string]string{"cache": "on"})
	out, err := l.Activate(url, nil, "consumer")
	require.NoError(t, err)

	var names []string
	for _, f := range out {
		names = append(names, f.Name())
	}
	require.Equal(t, []string{"trace", "cache"}, names)
}
