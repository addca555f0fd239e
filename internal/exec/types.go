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
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Manager runs helper commands and classifies their outcome.
type Manager interface {
	// Invoke runs the command described by spec and returns exactly one
	// classified outcome. An error is returned only when spec is invalid
	// or the caller's context was cancelled.
	Invoke(
		ctx context.Context,
		spec CommandSpec,
	) (*InvocationResult, error)
	// Run invokes spec and returns stdout on success, or the typed error
	// describing why the invocation did not succeed.
	Run(
		ctx context.Context,
		spec CommandSpec,
	) ([]byte, error)
}

// Exec runs commands directly, never through a shell.
type Exec struct {
	logger *slog.Logger

	defaultTimeout   time.Duration
	privilegeWrapper []string
	excerptBytes     int
	env              []string
	waitDelay        time.Duration

	geteuid func() int

	tracer      trace.Tracer
	invocations metric.Int64Counter
	durations   metric.Float64Histogram
}

// CommandSpec describes a single command invocation.
type CommandSpec struct {
	// Executable is the absolute path of the program to run.
	Executable string
	// Args are passed to the program as discrete tokens.
	Args []string
	// RequiresPrivilege runs the program through the configured
	// elevation wrapper unless the process is already root.
	RequiresPrivilege bool
	// Timeout overrides the manager default (0 = use default).
	Timeout time.Duration
}

// Outcome classifies how an invocation ended.
type Outcome int

const (
	// Success means the process exited with status 0.
	Success Outcome = iota + 1
	// Failure means the process ran and exited non-zero.
	Failure
	// SpawnFailure means the process could not be started.
	SpawnFailure
	// TimedOut means the process exceeded its deadline and was killed.
	TimedOut
)

// InvocationResult is the classified outcome of one invocation. Exactly
// one Outcome is set; the fields it does not use are left empty.
type InvocationResult struct {
	// Spec is the command as requested by the caller.
	Spec CommandSpec
	// Outcome is the classification of the invocation.
	Outcome Outcome
	// Stdout is the captured standard output (Success only).
	Stdout []byte
	// ExitCode is the process exit status (Failure only).
	ExitCode int
	// Stderr is the tail of standard error (Failure only).
	Stderr string
	// Reason explains a SpawnFailure or TimedOut outcome.
	Reason string
	// Timeout is the deadline that elapsed (TimedOut only).
	Timeout time.Duration
	// Duration is the wall time of the invocation.
	Duration time.Duration
}
