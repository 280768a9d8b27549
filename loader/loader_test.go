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

package loader_test

import (
	"reflect"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"dirpx.dev/spi/apis"
	"dirpx.dev/spi/loader"
	"dirpx.dev/spi/rpcurl"
	"dirpx.dev/spi/symtab"
)

type robot interface {
	SayHello() string
}

type optimusPrime struct{}

func (optimusPrime) SayHello() string { return "Hello, I am Optimus Prime." }

type loggingRobotWrapper struct{ inner robot }

func (w loggingRobotWrapper) SayHello() string { return "[log] " + w.inner.SayHello() }

type protocol interface {
	Refer(url *rpcurl.URL) (string, error)
}

type dubboProtocol struct{}

func (dubboProtocol) Refer(url *rpcurl.URL) (string, error) { return "dubbo:" + url.Host(), nil }

type rmiProtocol struct{}

func (rmiProtocol) Refer(url *rpcurl.URL) (string, error) { return "rmi:" + url.Host(), nil }

var bindRobotOnce sync.Once

func newRobotEnv(t *testing.T) *loader.Environment {
	t.Helper()
	bindRobotOnce.Do(func() {
		if err := symtab.Bind[robot]("loadertest.OptimusPrime", func() (robot, error) { return optimusPrime{}, nil }); err != nil {
			t.Fatalf("Bind: %v", err)
		}
		if err := symtab.BindWrapper[robot]("loadertest.LoggingWrapper", func(r robot) robot { return loggingRobotWrapper{inner: r} }); err != nil {
			t.Fatalf("BindWrapper: %v", err)
		}
	})

	fsys := fstest.MapFS{
		"META-INF/spi/dirpx.dev/spi/loader_test.robot": {Data: []byte(
			"optimusPrime = loadertest.OptimusPrime\n" +
				"loadertest.LoggingWrapper\n",
		)},
	}
	env := loader.NewEnvironment(fsys)
	require.NoError(t, loader.Extension[robot](env, "optimusPrime"))
	return env
}

func TestByName_SimpleLookup_IdentityStable(t *testing.T) {
	env := newRobotEnv(t)
	l, err := loader.For[robot](env)
	require.NoError(t, err)

	first, err := l.ByName("optimusPrime")
	require.NoError(t, err)
	require.Contains(t, first.SayHello(), "Optimus Prime")
	require.Contains(t, first.SayHello(), "[log]")

	second, err := l.ByName("optimusPrime")
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestByName_Default_ResolvesTrue(t *testing.T) {
	env := newRobotEnv(t)
	l, err := loader.For[robot](env)
	require.NoError(t, err)

	def, err := l.ByName("true")
	require.NoError(t, err)
	named, err := l.ByName("optimusPrime")
	require.NoError(t, err)
	require.Equal(t, named, def)
}

func TestByName_EmptyName_Errors(t *testing.T) {
	env := newRobotEnv(t)
	l, err := loader.For[robot](env)
	require.NoError(t, err)
	_, err = l.ByName("")
	require.ErrorIs(t, err, apis.ErrEmptyName)
}

func TestByName_UnknownName_NotFoundError(t *testing.T) {
	env := newRobotEnv(t)
	l, err := loader.For[robot](env)
	require.NoError(t, err)
	_, err = l.ByName("nope")
	var notFound *apis.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestNameOf_ReturnsCanonicalAlias(t *testing.T) {
	env := newRobotEnv(t)
	l, err := loader.For[robot](env)
	require.NoError(t, err)
	inst, err := l.ByName("optimusPrime")
	require.NoError(t, err)
	name, ok := l.NameOf(inst)
	require.True(t, ok)
	require.Equal(t, "optimusPrime", name)
}

func TestAlreadyLoaded_NoConstructionBeforeByName(t *testing.T) {
	env := newRobotEnv(t)
	l, err := loader.For[robot](env)
	require.NoError(t, err)

	_, ok := l.AlreadyLoaded("optimusPrime")
	require.False(t, ok)

	_, err = l.ByName("optimusPrime")
	require.NoError(t, err)

	inst, ok := l.AlreadyLoaded("optimusPrime")
	require.True(t, ok)
	require.Contains(t, inst.SayHello(), "Optimus Prime")
}

func TestLoadedNamesAndSupportedNames(t *testing.T) {
	env := newRobotEnv(t)
	l, err := loader.For[robot](env)
	require.NoError(t, err)

	require.Equal(t, []string{"optimusPrime"}, l.SupportedNames())
	require.Empty(t, l.LoadedNames())

	_, err = l.ByName("optimusPrime")
	require.NoError(t, err)
	require.Equal(t, []string{"optimusPrime"}, l.LoadedNames())
}

func TestRegisterReplace_TestOnlyOverrides(t *testing.T) {
	env := newRobotEnv(t)
	l, err := loader.For[robot](env)
	require.NoError(t, err)

	type stub struct{ robot }
	require.NoError(t, l.Register("synthetic", func() (robot, error) { return stub{}, nil }))
	require.True(t, l.HasName("synthetic"))

	require.NoError(t, l.Replace("optimusPrime", stub{}))
	inst, err := l.ByName("optimusPrime")
	require.NoError(t, err)
	require.IsType(t, stub{}, inst)
}

func protocolEnv(t *testing.T, defaultName string) *loader.Environment {
	t.Helper()
	fsys := fstest.MapFS{
		"META-INF/spi/dirpx.dev/spi/loader_test.protocol": {Data: []byte(
			"dubbo = loadertest.Dubbo\n" +
				"rmi = loadertest.Rmi\n",
		)},
	}
	env := loader.NewEnvironment(fsys)
	require.NoError(t, loader.Extension[protocol](env, defaultName, apis.AdaptiveMethod("Refer", "protocol")))
	return env
}

func TestAdaptive_SynthesizedDispatch_RoutesByProtocol(t *testing.T) {
	require.NoError(t, symtab.Bind[protocol]("loadertest.Dubbo", func() (protocol, error) { return dubboProtocol{}, nil }))
	require.NoError(t, symtab.Bind[protocol]("loadertest.Rmi", func() (protocol, error) { return rmiProtocol{}, nil }))

	env := protocolEnv(t, "dubbo")
	l, err := loader.For[protocol](env)
	require.NoError(t, err)

	adaptiveInst, err := l.Adaptive()
	require.NoError(t, err)

	got, err := adaptiveInst.Refer(rpcurl.New("rmi", "h:1", nil))
	require.NoError(t, err)
	require.Equal(t, "rmi:h:1", got)

	got, err = adaptiveInst.Refer(rpcurl.New("", "h:2", nil))
	require.NoError(t, err)
	require.Equal(t, "dubbo:h:2", got)

	again, err := l.Adaptive()
	require.NoError(t, err)
	require.Equal(t, adaptiveInst, again)
}

func TestActivate_OrdersByGroupAndTriggerKey(t *testing.T) {
	require.NoError(t, symtab.BindActivated[activatableProtocol]("loadertest.ActA", func() (activatableProtocol, error) { return dubboProtocol{}, nil },
		symtab.Activation{Groups: []string{"consumer"}, TriggerKeys: []string{"cache"}, Order: 2}))
	require.NoError(t, symtab.BindActivated[activatableProtocol]("loadertest.ActB", func() (activatableProtocol, error) { return rmiProtocol{}, nil },
		symtab.Activation{Groups: []string{"consumer"}, TriggerKeys: []string{"cache"}, Order: 1}))

	fsys := fstest.MapFS{
		"META-INF/spi/dirpx.dev/spi/loader_test.activatableProtocol": {Data: []byte(
			"a = loadertest.ActA\n" +
				"b = loadertest.ActB\n",
		)},
	}
	env := loader.NewEnvironment(fsys)
	require.NoError(t, loader.Extension[activatableProtocol](env, "a"))
	l, err := loader.For[activatableProtocol](env)
	require.NoError(t, err)

	url := rpcurl.New("dubbo", "", map[string]string{"cache": "lru"})
	out, err := l.Activate(url, nil, "consumer")
	require.NoError(t, err)
	require.Len(t, out, 2)
	bName, _ := l.NameOf(out[0])
	aName, _ := l.NameOf(out[1])
	require.Equal(t, "b", bName)
	require.Equal(t, "a", aName)
}

// activatableProtocol is a second, differently-named extension point so
// this test's resource file does not collide with protocolEnv's.
type activatableProtocol interface {
	Refer(url *rpcurl.URL) (string, error)
}

func TestFor_NonInterfaceType_Errors(t *testing.T) {
	env := loader.NewEnvironment(fstest.MapFS{})
	_, err := loader.For[int](env)
	require.ErrorIs(t, err, apis.ErrNotInterface)
}

func TestFor_UnregisteredInterface_Errors(t *testing.T) {
	env := loader.NewEnvironment(fstest.MapFS{})
	type unregistered interface{ M() }
	_, err := loader.For[unregistered](env)
	require.ErrorIs(t, err, apis.ErrNotExtensionPoint)
}

func TestFor_ConcurrentFirstCall_ReturnsSameLoader(t *testing.T) {
	env := newRobotEnv(t)
	const workers = 32
	var wg sync.WaitGroup
	loaders := make([]*loader.Loader[robot], workers)
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(i int) {
			defer wg.Done()
			l, err := loader.For[robot](env)
			require.NoError(t, err)
			loaders[i] = l
		}(i)
	}
	wg.Wait()
	for i := 1; i < workers; i++ {
		require.Same(t, loaders[0], loaders[i])
	}
}

func TestEnvironment_ResourceNameMatchesPackageQualifiedInterface(t *testing.T) {
	var zero robot
	typ := reflect.TypeOf(&zero).Elem()
	require.Equal(t, "dirpx.dev/spi/loader_test.robot", typ.PkgPath()+"."+typ.Name())
}
