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

// Package helper exposes the Tortuga helper programs as typed operations.
package helper

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/UnivaCorporation/tortuga/internal/exec"
	"github.com/UnivaCorporation/tortuga/internal/validation"
)

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-invocation timeout. Zero defers to the exec
// manager's default.
func WithTimeout(
	d time.Duration,
) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// New factory to create a new Client. baseDir is the directory holding the
// helper programs.
func New(
	logger *slog.Logger,
	appFs afero.Fs,
	execManager exec.Manager,
	baseDir string,
	opts ...Option,
) *Client {
	c := &Client{
		logger:      logger,
		appFs:       appFs,
		execManager: execManager,
		baseDir:     baseDir,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// run validates query, resolves the helper and returns its stdout.
func (c *Client) run(
	ctx context.Context,
	operation string,
	command string,
	query any,
	args []string,
	privileged bool,
) ([]byte, error) {
	path := filepath.Join(c.baseDir, command)

	if query != nil {
		if errMsg, ok := validation.Struct(query); !ok {
			return nil, &OperationError{
				Operation: operation,
				Command:   path,
				Args:      args,
				Err:       fmt.Errorf("%w: %s", ErrInvalidArgument, errMsg),
			}
		}
	}

	c.logger.Debug(
		"running helper",
		slog.String("operation", operation),
		slog.String("command", path),
		slog.Any("args", args),
		slog.Bool("privileged", privileged),
	)

	if err := c.resolve(path); err != nil {
		return nil, &OperationError{
			Operation: operation,
			Command:   path,
			Args:      args,
			Err:       &exec.SpawnError{Executable: path, Args: args, Reason: err.Error()},
		}
	}

	stdout, err := c.execManager.Run(ctx, exec.CommandSpec{
		Executable:        path,
		Args:              args,
		RequiresPrivilege: privileged,
		Timeout:           c.timeout,
	})
	if err != nil {
		return nil, &OperationError{
			Operation: operation,
			Command:   path,
			Args:      args,
			Err:       err,
		}
	}

	return stdout, nil
}

// resolve checks that the helper exists and is an executable file.
func (c *Client) resolve(
	path string,
) error {
	info, err := c.appFs.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return errors.New("helper not installed")
		}
		return err
	}

	if info.IsDir() {
		return errors.New("helper path is a directory")
	}

	if info.Mode().Perm()&0o111 == 0 {
		return errors.New("helper is not executable")
	}

	return nil
}

// CheckInstalled verifies that every helper exists under the base directory
// and is executable. All failures are joined into the returned error.
func (c *Client) CheckInstalled(
	_ context.Context,
) error {
	var errs []error
	for _, command := range Commands {
		path := filepath.Join(c.baseDir, command)
		if err := c.resolve(path); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
		}
	}

	return errors.Join(errs...)
}
