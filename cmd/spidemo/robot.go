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
	"fmt"

	"github.com/spf13/cobra"

	"dirpx.dev/spi/internal/demo"
	"dirpx.dev/spi/loader"
)

func newRobotCmd(env *loader.Environment) *cobra.Command {
	return &cobra.Command{
		Use:   "robot [name]",
		Short: "Look up a Robot by name (or the declared default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "true"
			if len(args) == 1 {
				name = args[0]
			}
			l, err := loader.For[demo.Robot](env)
			if err != nil {
				return err
			}
			r, err := l.ByName(name)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), r.SayHello())
			return nil
		},
	}
}
