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

package main

import (
	"github.com/spf13/cobra"

	"dirpx.dev/spi/loader"
)

func newRootCmd(env *loader.Environment) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "spidemo",
		Short:         "Exercises the extension loader against a small fixture set",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newRobotCmd(env))
	cmd.AddCommand(newProtocolCmd(env))
	cmd.AddCommand(newActivateCmd(env))

	return cmd
}
