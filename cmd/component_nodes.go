// Copyright (c) 2026 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/UnivaCorporation/tortuga/internal/cli"
	"github.com/UnivaCorporation/tortuga/internal/helper"
)

// componentNodesCmd represents the componentNodes command.
var componentNodesCmd = &cobra.Command{
	Use:   "nodes COMPONENT",
	Short: "List the nodes running a component",
	Long: `List, per software profile, the nodes that run a component.
`,
	Example: `  tortuga-query component nodes --kit-name uge qmaster`,
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		kitName, _ := cmd.Flags().GetString("kit-name")
		expand, _ := cmd.Flags().GetBool("expand-installer-hostname")

		runQuery(cmd, func(ctx context.Context, client *helper.Client) error {
			profiles, err := client.ComponentNodes(ctx, helper.ComponentQuery{
				KitName:                 kitName,
				Component:               args[0],
				ExpandInstallerHostname: expand,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				return cli.PrintJSON(out, profiles)
			}

			section, err := nodeSection(args[0], profiles)
			if err != nil {
				return err
			}
			cli.PrintCompactTable(out, []cli.Section{section})

			return nil
		})
	},
}

func init() {
	componentCmd.AddCommand(componentNodesCmd)

	componentNodesCmd.PersistentFlags().
		String("kit-name", "", "Only match components of this kit")
	componentNodesCmd.PersistentFlags().
		Bool("expand-installer-hostname", false, "Replace the installer hostname placeholder")
}
