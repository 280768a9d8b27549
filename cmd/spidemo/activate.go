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
	"strings"

	"github.com/spf13/cobra"

	"dirpx.dev/spi/internal/demo"
	"dirpx.dev/spi/loader"
	"dirpx.dev/spi/rpcurl"
)

func newActivateCmd(env *loader.Environment) *cobra.Command {
	var group string
	var trigger string
	var requested string

	cmd := &cobra.Command{
		Use:   "activate",
		Short: "Resolve the ordered, group/trigger-key-scoped subset of activatable Filters",
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := loader.For[demo.Filter](env)
			if err != nil {
				return err
			}

			params := map[string]string{}
			if trigger != "" {
				params[trigger] = "on"
			}
			url := rpcurl.New("", "", params)

			var req []string
			if requested != "" {
				req = strings.Split(requested, ",")
			}

			out, err := l.Activate(url, req, group)
			if err != nil {
				return err
			}
			for _, f := range out {
				fmt.Fprintln(cmd.OutOrStdout(), f.Name())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&group, "group", "consumer", "consumer group the activation filter scopes to")
	cmd.Flags().StringVar(&trigger, "trigger", "", "request parameter key that must be present to auto-activate a trigger-scoped filter")
	cmd.Flags().StringVar(&requested, "names", "", "comma-separated user-requested names, honoring -name removal and the default placeholder")
	return cmd
}
