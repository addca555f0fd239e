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

package exec

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidSpec is returned when a CommandSpec cannot be executed.
var ErrInvalidSpec = errors.New("invalid command spec")

// SpawnError reports a command that could not be started.
type SpawnError struct {
	Executable string
	Args       []string
	Reason     string
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to execute %s %q: %s", e.Executable, e.Args, e.Reason)
}

// ExitError reports a command that ran and exited non-zero.
type ExitError struct {
	Executable string
	Args       []string
	ExitCode   int
	Stderr     string
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("%s %q exited with status %d", e.Executable, e.Args, e.ExitCode)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg = fmt.Sprintf("%s: %s", msg, stderr)
	}

	return msg
}

// TimeoutError reports a command killed after exceeding its deadline.
type TimeoutError struct {
	Executable string
	Args       []string
	Timeout    time.Duration
	Reason     string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s %q %s", e.Executable, e.Args, e.Reason)
}
