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

// Package demo holds the extension points cmd/spidemo exercises: Robot
// (simple lookup plus a logging wrapper), Protocol (adaptive dispatch
// over a request URL), and Filter (the activation filter's ordered,
// group/trigger-key-scoped subset). Its config/ subtree is embedded so
// the CLI runs the same way regardless of the working directory it is
// invoked from.
package demo

import (
	"embed"
	"io/fs"
)

//go:embed config
var rawConfig embed.FS

// ConfigFS is the embedded extension-point configuration tree, rooted at
// the same "META-INF/..." layout the Resource Scanner expects.
var ConfigFS = mustSub(rawConfig, "config")

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
