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
	"dirpx.dev/spi/apis"
	"dirpx.dev/spi/applog"
	"dirpx.dev/spi/factory"
	"dirpx.dev/spi/loader"
)

// NewEnvironment builds an Environment reading ConfigFS, with every demo
// extension point registered and a zerolog-backed Logger and the default
// Loader-Registry-backed Object Factory installed.
func NewEnvironment() (*loader.Environment, error) {
	env := loader.NewEnvironment(ConfigFS, loader.WithLogger(applog.New()))
	env.SetObjectFactory(factory.New(env))

	if err := loader.Extension[Robot](env, "optimusPrime"); err != nil {
		return nil, err
	}
	if err := loader.Extension[Protocol](env, "dubbo", apis.AdaptiveMethod("Refer", "protocol")); err != nil {
		return nil, err
	}
	if err := loader.Extension[Filter](env, "trace"); err != nil {
		return nil, err
	}
	return env, nil
}
