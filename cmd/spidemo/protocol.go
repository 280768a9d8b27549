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
	"dirpx.dev/spi/rpcurl"
)

func newProtocolCmd(env *loader.Environment) *cobra.Command {
	var host string

	cmd := &cobra.Command{
		Use:   "protocol [protocol-name]",
		Short: "Route a request URL through the synthesized adaptive Protocol dispatcher",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var protocol string
			if len(args) == 1 {
				protocol = args[0]
			}

			l, err := loader.For[demo.Protocol](env)
			if err != nil {
				return err
			}
			adaptive, err := l.Adaptive()
			if err != nil {
				return err
			}

			url := rpcurl.New(protocol, host, nil)
			out, err := adaptive.Refer(url)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&host, "host", "localhost:20880", "host:port carried by the synthetic request URL")
	return cmd
}
