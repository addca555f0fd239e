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
	"fmt"
	"io"

	masker "github.com/ggwhite/go-masker/v2"
	"github.com/spf13/cobra"

	"github.com/UnivaCorporation/tortuga/internal/cli"
	"github.com/UnivaCorporation/tortuga/internal/config"
)

// configShowCmd represents the configShow command.
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the merged configuration with secrets masked",
	Long: `Print the configuration as JSON after defaults, the config file,
environment variables and flags are merged. Secrets such as the token
signing key are masked.
`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		if err := writeMaskedConfig(cmd.OutOrStdout(), appConfig); err != nil {
			cli.LogFatal(logger, "failed to print config", err)
		}
	},
}

func writeMaskedConfig(
	w io.Writer,
	cfg config.Config,
) error {
	masked, err := masker.NewMaskerMarshaler().Struct(&cfg)
	if err != nil {
		return fmt.Errorf("failed to mask config: %w", err)
	}

	return cli.PrintJSON(w, masked)
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
