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

// nicsListCmd represents the nicsList command.
var nicsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List provisioning NICs",
	Long: `List the installer's provisioning NICs, or the provisioning NIC of a
hardware profile. The helper needs root; when not running as root it is run
through the configured privilege wrapper.
`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		hardwareProfile, _ := cmd.Flags().GetString("hardware-profile")

		runQuery(cmd, func(ctx context.Context, client *helper.Client) error {
			nics, err := client.NICs(ctx, helper.NICQuery{HardwareProfile: hardwareProfile})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				return cli.PrintJSON(out, nics)
			}

			cli.PrintCompactTable(out, []cli.Section{nicSection(nics)})

			return nil
		})
	},
}

func init() {
	nicsCmd.AddCommand(nicsListCmd)

	nicsListCmd.PersistentFlags().
		String("hardware-profile", "", "Hardware profile to query instead of the installer")
}
