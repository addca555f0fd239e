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
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/UnivaCorporation/tortuga/internal/telemetry"
)

// Validate reports whether the command can be executed.
func (s CommandSpec) Validate() error {
	if s.Executable == "" {
		return fmt.Errorf("%w: executable is required", ErrInvalidSpec)
	}

	if !filepath.IsAbs(s.Executable) {
		return fmt.Errorf("%w: executable %q is not an absolute path", ErrInvalidSpec, s.Executable)
	}

	if s.Timeout < 0 {
		return fmt.Errorf("%w: negative timeout %s", ErrInvalidSpec, s.Timeout)
	}

	for i, arg := range s.Args {
		if strings.ContainsRune(arg, 0) {
			return fmt.Errorf("%w: argument %d contains a NUL byte", ErrInvalidSpec, i)
		}
	}

	return nil
}

// Invoke runs spec and classifies the outcome.
func (e *Exec) Invoke(
	ctx context.Context,
	spec CommandSpec,
) (*InvocationResult, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	spec.Args = slices.Clone(spec.Args)
	invocationID := uuid.NewString()

	ctx, span := e.tracer.Start(ctx, "exec.Invoke",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("exec.invocation_id", invocationID),
			attribute.String("exec.executable", spec.Executable),
			attribute.StringSlice("exec.args", spec.Args),
			attribute.Bool("exec.requires_privilege", spec.RequiresPrivilege),
		),
	)
	defer span.End()

	start := time.Now()

	var result *InvocationResult
	name, args, err := e.commandLine(spec)
	if err != nil {
		result = &InvocationResult{
			Spec:    spec,
			Outcome: SpawnFailure,
			Reason:  err.Error(),
		}
	} else {
		result, err = e.run(ctx, spec, name, args)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())

			return nil, err
		}
	}

	result.Duration = time.Since(start)

	e.logger.Debug(
		"exec invoke",
		slog.String("invocation_id", invocationID),
		slog.String("command", strings.Join(append([]string{name}, args...), " ")),
		slog.String("outcome", result.Outcome.String()),
		slog.Int("exit_code", result.ExitCode),
		slog.String("reason", result.Reason),
		slog.Int64("duration_ms", result.Duration.Milliseconds()),
	)

	e.record(ctx, span, result)

	return result, nil
}

// Run invokes spec and returns stdout on success.
func (e *Exec) Run(
	ctx context.Context,
	spec CommandSpec,
) ([]byte, error) {
	result, err := e.Invoke(ctx, spec)
	if err != nil {
		return nil, err
	}

	if err := result.Err(); err != nil {
		return nil, err
	}

	return result.Stdout, nil
}

// commandLine resolves the argv to spawn, applying the privilege wrapper
// when the command requires elevation and the process is not root.
func (e *Exec) commandLine(
	spec CommandSpec,
) (string, []string, error) {
	if !spec.RequiresPrivilege || e.geteuid() == 0 {
		return spec.Executable, spec.Args, nil
	}

	if len(e.privilegeWrapper) == 0 {
		return spec.Executable, spec.Args, errors.New(
			"command requires elevated privilege but no privilege wrapper is configured",
		)
	}

	args := make([]string, 0, len(e.privilegeWrapper)+len(spec.Args))
	args = append(args, e.privilegeWrapper[1:]...)
	args = append(args, spec.Executable)
	args = append(args, spec.Args...)

	return e.privilegeWrapper[0], args, nil
}

func (e *Exec) run(
	ctx context.Context,
	spec CommandSpec,
	name string,
	args []string,
) (*InvocationResult, error) {
	timeout := spec.Timeout
	if timeout == 0 {
		timeout = e.defaultTimeout
	}

	runCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, name, args...)
	setProcessGroup(cmd)
	cmd.WaitDelay = e.waitDelay
	env := append(slices.Clone(e.env), telemetry.TraceEnv(ctx)...)
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}

	var stdout bytes.Buffer
	stderr := newTailBuffer(e.excerptBytes)
	cmd.Stdout = &stdout
	cmd.Stderr = stderr

	err := cmd.Run()

	result := &InvocationResult{Spec: spec}

	switch {
	case err == nil:
		result.Outcome = Success
		result.Stdout = stdout.Bytes()
	case errors.Is(ctx.Err(), context.Canceled):
		return nil, fmt.Errorf("invocation of %s cancelled: %w", spec.Executable, ctx.Err())
	case errors.Is(runCtx.Err(), context.DeadlineExceeded):
		result.Outcome = TimedOut
		result.Timeout = timeout
		result.Reason = fmt.Sprintf("timed out after %s", timeout)
		if ctx.Err() != nil {
			result.Reason = "caller deadline exceeded"
		}
	case cmd.ProcessState != nil:
		// The process ran to completion. A background child holding the
		// output pipes open past WaitDelay surfaces as exec.ErrWaitDelay
		// and does not change how the helper itself exited.
		if errors.Is(err, exec.ErrWaitDelay) {
			e.logger.Warn(
				"helper left output pipes open after exiting",
				slog.String("command", spec.Executable),
				slog.Duration("wait_delay", e.waitDelay),
			)
		}

		if cmd.ProcessState.Success() {
			result.Outcome = Success
			result.Stdout = stdout.Bytes()
		} else {
			result.Outcome = Failure
			result.ExitCode = cmd.ProcessState.ExitCode()
			result.Stderr = stderr.String()
		}
	default:
		result.Outcome = SpawnFailure
		result.Reason = err.Error()
	}

	return result, nil
}

// record emits the span status and metrics for a finished invocation.
func (e *Exec) record(
	ctx context.Context,
	span trace.Span,
	result *InvocationResult,
) {
	attrs := []attribute.KeyValue{
		attribute.String("command", filepath.Base(result.Spec.Executable)),
		attribute.String("outcome", result.Outcome.String()),
	}

	span.SetAttributes(
		attribute.String("exec.outcome", result.Outcome.String()),
		attribute.Int("exec.exit_code", result.ExitCode),
	)
	if err := result.Err(); err != nil {
		span.SetStatus(codes.Error, err.Error())
	}

	e.invocations.Add(ctx, 1, metric.WithAttributes(attrs...))
	e.durations.Record(ctx, result.Duration.Seconds(), metric.WithAttributes(attrs...))
}

// Err converts a non-success result into its typed error.
func (r *InvocationResult) Err() error {
	switch r.Outcome {
	case Success:
		return nil
	case Failure:
		return &ExitError{
			Executable: r.Spec.Executable,
			Args:       r.Spec.Args,
			ExitCode:   r.ExitCode,
			Stderr:     r.Stderr,
		}
	case TimedOut:
		return &TimeoutError{
			Executable: r.Spec.Executable,
			Args:       r.Spec.Args,
			Timeout:    r.Timeout,
			Reason:     r.Reason,
		}
	default:
		return &SpawnError{
			Executable: r.Spec.Executable,
			Args:       r.Spec.Args,
			Reason:     r.Reason,
		}
	}
}

// String returns the lower-case outcome name.
func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case Failure:
		return "failure"
	case SpawnFailure:
		return "spawn_failure"
	case TimedOut:
		return "timeout"
	default:
		return "unknown"
	}
}
