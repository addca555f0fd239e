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

package query

import (
	"context"
	"log/slog"

	"github.com/UnivaCorporation/tortuga/internal/helper"
	"github.com/UnivaCorporation/tortuga/internal/markup"
)

// Helper runs the Tortuga helper queries.
type Helper interface {
	ComponentNodes(ctx context.Context, query helper.ComponentQuery) (*markup.Value, error)
	GlobalParameter(ctx context.Context, name string) (string, error)
	NICs(ctx context.Context, query helper.NICQuery) ([]helper.NIC, error)
}

// Query implementation of the query endpoints.
type Query struct {
	helper Helper
	logger *slog.Logger
}

// ComponentNodesResponse is the body of GET /v1/components/:component/nodes.
type ComponentNodesResponse struct {
	Component string `json:"component"`
	KitName   string `json:"kit_name,omitempty"`
	// Profiles maps software profile name to node names, in helper order.
	Profiles *markup.Value `json:"profiles"`
}

// ParameterResponse is the body of GET /v1/parameters/:name.
type ParameterResponse struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ProvisioningNICsResponse is the body of GET /v1/provisioning-nics.
type ProvisioningNICsResponse struct {
	HardwareProfile string       `json:"hardware_profile,omitempty"`
	NICs            []helper.NIC `json:"nics"`
}

// ErrorResponse is the JSON body of a failed query.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
