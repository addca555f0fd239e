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

package exec_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/UnivaCorporation/tortuga/internal/exec"
)

type InvokePublicTestSuite struct {
	suite.Suite

	logger *slog.Logger
	dir    string
}

func (suite *InvokePublicTestSuite) SetupTest() {
	suite.logger = slog.New(slog.NewTextHandler(os.Stdout, nil))
	suite.dir = suite.T().TempDir()
}

// writeScript creates an executable /bin/sh script and returns its path.
func (suite *InvokePublicTestSuite) writeScript(
	name string,
	body string,
) string {
	path := filepath.Join(suite.dir, name)
	err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755)
	suite.Require().NoError(err)

	return path
}

func (suite *InvokePublicTestSuite) TestInvoke() {
	tests := []struct {
		name           string
		script         string
		executable     string
		args           []string
		opts           []exec.Option
		timeout        time.Duration
		validateResult func(*exec.InvocationResult)
	}{
		{
			name:   "when command succeeds captures stdout",
			script: `printf 'engine:\n- node1\n- node2\n'`,
			validateResult: func(r *exec.InvocationResult) {
				suite.Equal(exec.Success, r.Outcome)
				suite.Equal("engine:\n- node1\n- node2\n", string(r.Stdout))
				suite.Zero(r.ExitCode)
				suite.Empty(r.Reason)
			},
		},
		{
			name:   "when command exits 1 with stdout reports failure",
			script: "echo partial\necho boom >&2\nexit 1",
			validateResult: func(r *exec.InvocationResult) {
				suite.Equal(exec.Failure, r.Outcome)
				suite.Equal(1, r.ExitCode)
				suite.Equal("boom\n", r.Stderr)
				suite.Nil(r.Stdout)
			},
		},
		{
			name:   "when command exits with custom status",
			script: "exit 42",
			validateResult: func(r *exec.InvocationResult) {
				suite.Equal(exec.Failure, r.Outcome)
				suite.Equal(42, r.ExitCode)
			},
		},
		{
			name:   "when background child holds stdout open after exit 0 reports success",
			script: "sleep 3 &\necho value\nexit 0",
			opts:   []exec.Option{exec.WithWaitDelay(300 * time.Millisecond)},
			validateResult: func(r *exec.InvocationResult) {
				suite.Equal(exec.Success, r.Outcome)
				suite.Equal("value\n", string(r.Stdout))
				suite.Empty(r.Reason)
			},
		},
		{
			name:   "when background child holds stdout open after exit 4 reports failure",
			script: "sleep 3 &\necho denied >&2\nexit 4",
			opts:   []exec.Option{exec.WithWaitDelay(300 * time.Millisecond)},
			validateResult: func(r *exec.InvocationResult) {
				suite.Equal(exec.Failure, r.Outcome)
				suite.Equal(4, r.ExitCode)
				suite.Equal("denied\n", r.Stderr)
			},
		},
		{
			name:       "when executable does not exist reports spawn failure",
			executable: "/nonexistent/get-global-parameter.sh",
			validateResult: func(r *exec.InvocationResult) {
				suite.Equal(exec.SpawnFailure, r.Outcome)
				suite.NotEmpty(r.Reason)
				suite.Nil(r.Stdout)
			},
		},
		{
			name:   "when argument contains shell metacharacters passes it literally",
			script: `printf '%s\n' "$#" "$1"`,
			args:   []string{"; rm -rf /"},
			validateResult: func(r *exec.InvocationResult) {
				suite.Equal(exec.Success, r.Outcome)
				suite.Equal("1\n; rm -rf /\n", string(r.Stdout))
			},
		},
		{
			name:   "when argument contains command substitution passes it literally",
			script: `printf '%s' "$1"`,
			args:   []string{"$(id -u) `hostname`"},
			validateResult: func(r *exec.InvocationResult) {
				suite.Equal("$(id -u) `hostname`", string(r.Stdout))
			},
		},
		{
			name:   "when stderr exceeds excerpt keeps the tail",
			script: "echo 0123456789abcdef >&2\nexit 3",
			opts:   []exec.Option{exec.WithStderrExcerpt(8)},
			validateResult: func(r *exec.InvocationResult) {
				suite.Equal(exec.Failure, r.Outcome)
				suite.Equal("...9abcdef\n", r.Stderr)
			},
		},
		{
			name:   "when env is configured it reaches the command",
			script: `printf '%s' "$TORTUGA_QUERY_TEST"`,
			opts:   []exec.Option{exec.WithEnv("TORTUGA_QUERY_TEST=installer")},
			validateResult: func(r *exec.InvocationResult) {
				suite.Equal("installer", string(r.Stdout))
			},
		},
		{
			name:    "when command exceeds timeout reports timeout",
			script:  "exec sleep 10",
			timeout: 200 * time.Millisecond,
			validateResult: func(r *exec.InvocationResult) {
				suite.Equal(exec.TimedOut, r.Outcome)
				suite.Equal(200*time.Millisecond, r.Timeout)
				suite.Contains(r.Reason, "timed out after 200ms")
				suite.Less(r.Duration, 5*time.Second)
			},
		},
		{
			name:   "when default timeout applies reports timeout",
			script: "exec sleep 10",
			opts:   []exec.Option{exec.WithTimeout(200 * time.Millisecond)},
			validateResult: func(r *exec.InvocationResult) {
				suite.Equal(exec.TimedOut, r.Outcome)
			},
		},
	}

	for i, tc := range tests {
		suite.Run(tc.name, func() {
			executable := tc.executable
			if executable == "" {
				executable = suite.writeScript("helper-"+strconv.Itoa(i), tc.script)
			}

			em := exec.New(suite.logger, tc.opts...)

			result, err := em.Invoke(context.Background(), exec.CommandSpec{
				Executable: executable,
				Args:       tc.args,
				Timeout:    tc.timeout,
			})

			suite.Require().NoError(err)
			suite.Require().NotNil(result)
			suite.Equal(executable, result.Spec.Executable)
			tc.validateResult(result)
		})
	}
}

func (suite *InvokePublicTestSuite) TestInvokeTimeoutKillsProcess() {
	pidFile := filepath.Join(suite.dir, "pid")
	script := suite.writeScript("sleeper", "echo $$ > "+pidFile+"\nexec sleep 30")

	em := exec.New(suite.logger)

	result, err := em.Invoke(context.Background(), exec.CommandSpec{
		Executable: script,
		Timeout:    500 * time.Millisecond,
	})
	suite.Require().NoError(err)
	suite.Equal(exec.TimedOut, result.Outcome)

	data, err := os.ReadFile(pidFile)
	suite.Require().NoError(err)
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	suite.Require().NoError(err)

	suite.Eventually(func() bool {
		return errors.Is(syscall.Kill(pid, 0), syscall.ESRCH)
	}, 5*time.Second, 50*time.Millisecond)
}

func (suite *InvokePublicTestSuite) TestInvokeTimeoutKillsProcessGroup() {
	if runtime.GOOS != "linux" {
		suite.T().Skip("requires /proc")
	}

	pidFile := filepath.Join(suite.dir, "grandchild")
	script := suite.writeScript(
		"spawner",
		"sleep 30 &\necho $! > "+pidFile+"\nwait",
	)

	em := exec.New(suite.logger)

	result, err := em.Invoke(context.Background(), exec.CommandSpec{
		Executable: script,
		Timeout:    500 * time.Millisecond,
	})
	suite.Require().NoError(err)
	suite.Equal(exec.TimedOut, result.Outcome)

	data, err := os.ReadFile(pidFile)
	suite.Require().NoError(err)
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	suite.Require().NoError(err)

	// An orphan may linger as a zombie until init reaps it.
	suite.Eventually(func() bool {
		status, err := os.ReadFile(filepath.Join("/proc", strconv.Itoa(pid), "status"))
		if errors.Is(err, os.ErrNotExist) {
			return true
		}

		return err == nil && strings.Contains(string(status), "State:\tZ")
	}, 5*time.Second, 50*time.Millisecond)
}

func (suite *InvokePublicTestSuite) TestInvokeInvalidSpec() {
	tests := []struct {
		name          string
		spec          exec.CommandSpec
		errorContains string
	}{
		{
			name:          "when executable is empty",
			spec:          exec.CommandSpec{},
			errorContains: "executable is required",
		},
		{
			name:          "when executable is relative",
			spec:          exec.CommandSpec{Executable: "get-provisioning-nics"},
			errorContains: "is not an absolute path",
		},
		{
			name: "when argument contains a NUL byte",
			spec: exec.CommandSpec{
				Executable: "/bin/true",
				Args:       []string{"ok", "bad\x00arg"},
			},
			errorContains: "argument 1 contains a NUL byte",
		},
		{
			name: "when timeout is negative",
			spec: exec.CommandSpec{
				Executable: "/bin/true",
				Timeout:    -time.Second,
			},
			errorContains: "negative timeout",
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			em := exec.New(suite.logger)

			result, err := em.Invoke(context.Background(), tc.spec)

			suite.Nil(result)
			suite.Require().Error(err)
			suite.ErrorIs(err, exec.ErrInvalidSpec)
			suite.Contains(err.Error(), tc.errorContains)
		})
	}
}

func (suite *InvokePublicTestSuite) TestInvokeCancelledContext() {
	script := suite.writeScript("sleeper", "exec sleep 10")
	em := exec.New(suite.logger)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := em.Invoke(ctx, exec.CommandSpec{Executable: script})

	suite.Nil(result)
	suite.Require().Error(err)
	suite.ErrorIs(err, context.Canceled)
}

func (suite *InvokePublicTestSuite) TestRun() {
	tests := []struct {
		name        string
		script      string
		executable  string
		timeout     time.Duration
		wantStdout  string
		validateErr func(error)
	}{
		{
			name:       "when command succeeds returns stdout",
			script:     "echo value",
			wantStdout: "value\n",
		},
		{
			name:   "when command fails returns exit error",
			script: "echo denied >&2\nexit 1",
			validateErr: func(err error) {
				var exitErr *exec.ExitError
				suite.Require().ErrorAs(err, &exitErr)
				suite.Equal(1, exitErr.ExitCode)
				suite.Contains(err.Error(), "exited with status 1: denied")
			},
		},
		{
			name:       "when executable is missing returns spawn error",
			executable: "/nonexistent/get-provisioning-nics",
			validateErr: func(err error) {
				var spawnErr *exec.SpawnError
				suite.Require().ErrorAs(err, &spawnErr)
				suite.Equal("/nonexistent/get-provisioning-nics", spawnErr.Executable)
				suite.Contains(err.Error(), "failed to execute /nonexistent/get-provisioning-nics")
			},
		},
		{
			name:    "when command times out returns timeout error",
			script:  "exec sleep 10",
			timeout: 100 * time.Millisecond,
			validateErr: func(err error) {
				var timeoutErr *exec.TimeoutError
				suite.Require().ErrorAs(err, &timeoutErr)
				suite.Equal(100*time.Millisecond, timeoutErr.Timeout)
			},
		},
	}

	for i, tc := range tests {
		suite.Run(tc.name, func() {
			executable := tc.executable
			if executable == "" {
				executable = suite.writeScript("run-"+strconv.Itoa(i), tc.script)
			}

			em := exec.New(suite.logger)

			stdout, err := em.Run(context.Background(), exec.CommandSpec{
				Executable: executable,
				Timeout:    tc.timeout,
			})

			if tc.validateErr != nil {
				suite.Nil(stdout)
				tc.validateErr(err)
			} else {
				suite.Require().NoError(err)
				suite.Equal(tc.wantStdout, string(stdout))
			}
		})
	}
}

func (suite *InvokePublicTestSuite) TestOutcomeString() {
	tests := []struct {
		name    string
		outcome exec.Outcome
		want    string
	}{
		{name: "success", outcome: exec.Success, want: "success"},
		{name: "failure", outcome: exec.Failure, want: "failure"},
		{name: "spawn failure", outcome: exec.SpawnFailure, want: "spawn_failure"},
		{name: "timeout", outcome: exec.TimedOut, want: "timeout"},
		{name: "zero value", outcome: exec.Outcome(0), want: "unknown"},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			suite.Equal(tc.want, tc.outcome.String())
		})
	}
}

func (suite *InvokePublicTestSuite) TestInvokePropagatesTraceContext() {
	otel.SetTracerProvider(sdktrace.NewTracerProvider())
	otel.SetTextMapPropagator(propagation.TraceContext{})
	defer otel.SetTracerProvider(tracenoop.NewTracerProvider())

	path := suite.writeScript("traced.sh", `printf '%s' "$TRACEPARENT"`)
	e := exec.New(suite.logger)

	ctx, span := otel.Tracer("test").Start(context.Background(), "parent")
	defer span.End()

	result, err := e.Invoke(ctx, exec.CommandSpec{Executable: path})

	suite.Require().NoError(err)
	suite.Equal(exec.Success, result.Outcome)
	suite.True(strings.HasPrefix(string(result.Stdout), "00-"+span.SpanContext().TraceID().String()))
}

func TestInvokePublicTestSuite(t *testing.T) {
	suite.Run(t, new(InvokePublicTestSuite))
}
