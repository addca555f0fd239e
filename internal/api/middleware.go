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

package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/UnivaCorporation/tortuga/internal/authtoken"
)

// Context key constants for injecting caller identity into handlers.
const (
	ContextKeySubject = "auth.subject"
	ContextKeyRoles   = "auth.roles"
)

const (
	codeUnauthorized = "unauthorized"
	codeForbidden    = "forbidden"
)

// TokenValidator parses and validates JWT tokens.
type TokenValidator interface {
	Validate(
		tokenString string,
		signingKey string,
	) (*authtoken.CustomClaims, error)
}

// requirePermission returns middleware that admits requests whose bearer
// token grants required. With no signing key configured it admits every
// request.
func (s *Server) requirePermission(
	required authtoken.Permission,
) echo.MiddlewareFunc {
	signingKey := s.appConfig.API.Server.Security.SigningKey

	return scopeMiddleware(s.logger, s.tokenManager, signingKey, required, s.customRoles)
}

func scopeMiddleware(
	logger *slog.Logger,
	tokenManager TokenValidator,
	signingKey string,
	required authtoken.Permission,
	customRoles map[string][]string,
) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if signingKey == "" {
			return next
		}

		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				return echo.NewHTTPError(http.StatusUnauthorized, "Bearer token required")
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			claims, err := tokenManager.Validate(tokenString, signingKey)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token: "+err.Error())
			}

			c.Set(ContextKeySubject, claims.Subject)
			c.Set(ContextKeyRoles, claims.Roles)

			resolved := authtoken.ResolvePermissions(
				claims.Roles,
				claims.Permissions,
				customRoles,
			)
			if !authtoken.HasPermission(resolved, required) {
				logger.Debug(
					"permission denied",
					slog.String("subject", claims.Subject),
					slog.String("required", required),
				)

				return echo.NewHTTPError(
					http.StatusForbidden,
					fmt.Sprintf("Insufficient permissions. Required: %s", required),
				)
			}

			return next(c)
		}
	}
}
