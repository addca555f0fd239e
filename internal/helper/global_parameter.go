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

type parameterQuery struct {
	Name string `validate:"required,helper_arg"`
}

// GlobalParameter returns the value of a Tortuga global parameter with the
// trailing newline removed. A non-zero helper exit is an error.
func (c *Client) GlobalParameter(
	ctx context.Context,
	name string,
) (string, error) {
	stdout, err := c.run(
		ctx,
		OpGlobalParameter,
		GlobalParameterCommand,
		parameterQuery{Name: name},
		[]string{name},
		false,
	)
	if err != nil {
		return "", err
	}

	return markup.DecodeScalar(stdout), nil
}
