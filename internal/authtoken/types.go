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

package authtoken

import (
	"log/slog"

	"github.com/golang-jwt/jwt/v4"
)

// Issuer is set on every generated token.
const Issuer = "tortuga-query"

// Token issues and validates API bearer tokens.
type Token struct {
	logger *slog.Logger
}

// CustomClaims are the JWT claims carried by API tokens.
type CustomClaims struct {
	// Roles are expanded into permissions by ResolvePermissions.
	Roles []string `json:"roles" validate:"required,min=1,dive,oneof=admin read monitor"`
	// Permissions, when set, replace the permissions granted by Roles.
	Permissions []string `json:"permissions,omitempty" validate:"omitempty,dive,oneof=component:read parameter:read nic:read health:read"`
	jwt.RegisteredClaims
}
