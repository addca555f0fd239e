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
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/spf13/cobra"

	"github.com/UnivaCorporation/tortuga/internal/api"
	"github.com/UnivaCorporation/tortuga/internal/authtoken"
	"github.com/UnivaCorporation/tortuga/internal/cli"
)

// tokenValidateCmd represents the tokenValidate command.
var tokenValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a token for authenticity and claims",
	Long: `Validate a JSON Web Token (JWT) by checking its signature, issuer,
expiration and roles, then print the permissions it grants.
`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		signingKey := appConfig.API.Server.Security.SigningKey
		tokenString, _ := cmd.Flags().GetString("token")

		var tm api.TokenValidator = authtoken.New(logger)
		claims, err := tm.Validate(tokenString, signingKey)
		if err != nil {
			cli.LogFatal(logger, "failed to validate token", err)
		}

		granted := grantedPermissions(claims)

		out := cmd.OutOrStdout()
		if jsonOutput {
			if err := cli.PrintJSON(out, map[string]any{
				"subject":     claims.Subject,
				"roles":       claims.Roles,
				"permissions": granted,
				"issued_at":   claimTime(claims.IssuedAt),
				"expires_at":  claimTime(claims.ExpiresAt),
			}); err != nil {
				cli.LogFatal(logger, "failed to print claims", err)
			}
			return
		}

		cli.PrintKV(out, "Subject", claims.Subject, "Roles", strings.Join(claims.Roles, ", "))
		cli.PrintKV(out, "Permissions", cli.FormatList(granted))
		cli.PrintKV(out,
			"Issued", claimTime(claims.IssuedAt).Format(time.RFC3339),
			"Expires", claimTime(claims.ExpiresAt).Format(time.RFC3339),
		)
	},
}

// grantedPermissions lists the permissions claims resolve to, in the
// order of authtoken.AllPermissions.
func grantedPermissions(
	claims *authtoken.CustomClaims,
) []string {
	resolved := authtoken.ResolvePermissions(
		claims.Roles,
		claims.Permissions,
		appConfig.API.Server.Security.CustomRolePermissions(),
	)

	granted := make([]string, 0, len(resolved))
	for _, p := range authtoken.AllPermissions {
		if authtoken.HasPermission(resolved, p) {
			granted = append(granted, p)
		}
	}

	return granted
}

func claimTime(
	d *jwt.NumericDate,
) time.Time {
	if d == nil {
		return time.Time{}
	}

	return d.Time
}

func init() {
	tokenCmd.AddCommand(tokenValidateCmd)

	tokenValidateCmd.Flags().StringP("token", "t", "", "The Token string")

	_ = tokenValidateCmd.MarkFlagRequired("token")
}
