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

package helper

import (
	"context"

	"github.com/UnivaCorporation/tortuga/internal/markup"
)

// ComponentNodes lists, per software profile, the nodes that run the
// requested component. The result is the helper's mapping of profile name
// to node list, in the order the helper printed it.
func (c *Client) ComponentNodes(
	ctx context.Context,
	query ComponentQuery,
) (*markup.Value, error) {
	args := componentNodeArgs(query)

	stdout, err := c.run(ctx, OpComponentNodes, ComponentNodeListCommand, query, args, false)
	if err != nil {
		return nil, err
	}

	v, err := markup.DecodeStructured(stdout)
	if err != nil {
		return nil, c.decodeError(OpComponentNodes, ComponentNodeListCommand, args, err)
	}

	return v, nil
}

// NodesByProfile is ComponentNodes converted to a map of profile name to
// node names.
func (c *Client) NodesByProfile(
	ctx context.Context,
	query ComponentQuery,
) (map[string][]string, error) {
	v, err := c.ComponentNodes(ctx, query)
	if err != nil {
		return nil, err
	}

	nodes, err := v.StringListMap()
	if err != nil {
		return nil, c.shapeError(OpComponentNodes, ComponentNodeListCommand, componentNodeArgs(query), err)
	}

	return nodes, nil
}

func componentNodeArgs(
	query ComponentQuery,
) []string {
	args := make([]string, 0, 4)
	if query.KitName != "" {
		args = append(args, "--kit-name", query.KitName)
	}
	if query.ExpandInstallerHostname {
		args = append(args, "--expand-installer-hostname")
	}

	return append(args, query.Component)
}
