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
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/UnivaCorporation/tortuga/internal/authtoken"
	"github.com/UnivaCorporation/tortuga/internal/cli"
)

// TokenGenerator generates signed JWT tokens.
type TokenGenerator interface {
	Generate(
		signingKey string,
		roles []string,
		subject string,
		permissions []string,
		ttl time.Duration,
	) (string, error)
}

// tokenGenerateCmd represents the tokenGenerate command.
var tokenGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new token",
	Long: `Generate a bearer token for the query API, signed with
api.server.security.signing_key.
`,
	Example: `  tortuga-query token generate -r read -u dashboard --ttl 720h`,
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		signingKey := appConfig.API.Server.Security.SigningKey
		roles, _ := cmd.Flags().GetStringSlice("roles")
		subject, _ := cmd.Flags().GetString("subject")
		permissions, _ := cmd.Flags().GetStringSlice("permissions")
		ttl, _ := cmd.Flags().GetDuration("ttl")

		if err := validateRoles(roles); err != nil {
			cli.LogFatal(logger, "invalid roles", err, "allowed", authtoken.Roles)
		}
		if err := validatePermissions(permissions); err != nil {
			cli.LogFatal(logger, "invalid permissions", err, "allowed", authtoken.AllPermissions)
		}

		var tm TokenGenerator = authtoken.New(logger)
		token, err := tm.Generate(signingKey, roles, subject, permissions, ttl)
		if err != nil {
			cli.LogFatal(logger, "failed to generate token", err)
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			if err := cli.PrintJSON(out, map[string]any{
				"token":       token,
				"subject":     subject,
				"roles":       roles,
				"permissions": permissions,
			}); err != nil {
				cli.LogFatal(logger, "failed to print token", err)
			}
			return
		}

		_, _ = fmt.Fprintln(out, token)
	},
}

func init() {
	tokenCmd.AddCommand(tokenGenerateCmd)

	tokenGenerateCmd.Flags().
		StringSliceP("roles", "r", []string{},
			fmt.Sprintf("Roles for the token (allowed: %s)", strings.Join(authtoken.Roles, ", ")))
	tokenGenerateCmd.Flags().
		StringP("subject", "u", "", "Subject for the token (e.g., user ID or unique identifier)")
	tokenGenerateCmd.Flags().
		StringSliceP("permissions", "p", []string{},
			fmt.Sprintf("Direct permissions (overrides role expansion; allowed: %s)",
				strings.Join(authtoken.AllPermissions, ", ")))
	tokenGenerateCmd.Flags().
		Duration("ttl", 24*time.Hour, "How long the token stays valid")

	_ = tokenGenerateCmd.MarkFlagRequired("roles")
	_ = tokenGenerateCmd.MarkFlagRequired("subject")
}

func validateRoles(
	roles []string,
) error {
	for _, role := range roles {
		if _, ok := authtoken.DefaultRolePermissions[role]; !ok {
			return fmt.Errorf("unsupported role: %s", role)
		}
	}

	return nil
}

func validatePermissions(
	permissions []string,
) error {
	allowed := make(map[string]struct{}, len(authtoken.AllPermissions))
	for _, p := range authtoken.AllPermissions {
		allowed[p] = struct{}{}
	}

	for _, p := range permissions {
		if _, ok := allowed[p]; !ok {
			return fmt.Errorf("unsupported permission: %s", p)
		}
	}

	return nil
}
