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
	"errors"
	"fmt"
	"path/filepath"

	"github.com/UnivaCorporation/tortuga/internal/exec"
)

// ErrInvalidArgument is returned when a query argument is rejected before
// any helper runs.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrUnexpectedShape is returned when helper output decodes but is not the
// structure the operation expects.
var ErrUnexpectedShape = errors.New("unexpected output shape")

// OperationError reports a failed helper operation together with the
// command line that was (or would have been) executed.
type OperationError struct {
	Operation string
	Command   string
	Args      []string
	Err       error
}

func (e *OperationError) Error() string {
	var (
		spawnErr   *exec.SpawnError
		exitErr    *exec.ExitError
		timeoutErr *exec.TimeoutError
	)

	// exec errors already carry the command line.
	if errors.As(e.Err, &spawnErr) || errors.As(e.Err, &exitErr) ||
		errors.As(e.Err, &timeoutErr) {
		return fmt.Sprintf("%s: %v", e.Operation, e.Err)
	}

	return fmt.Sprintf("%s: %s %q: %v", e.Operation, e.Command, e.Args, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

func (c *Client) decodeError(
	operation string,
	command string,
	args []string,
	err error,
) error {
	return &OperationError{
		Operation: operation,
		Command:   filepath.Join(c.baseDir, command),
		Args:      args,
		Err:       err,
	}
}

func (c *Client) shapeError(
	operation string,
	command string,
	args []string,
	err error,
) error {
	return c.decodeError(operation, command, args, fmt.Errorf("%w: %w", ErrUnexpectedShape, err))
}
