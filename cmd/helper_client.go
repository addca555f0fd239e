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

package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/UnivaCorporation/tortuga/internal/cli"
	"github.com/UnivaCorporation/tortuga/internal/exec"
	"github.com/UnivaCorporation/tortuga/internal/helper"
	"github.com/UnivaCorporation/tortuga/internal/telemetry"
)

const serviceName = "tortuga-query"

// newHelperClient builds the helper client from the loaded configuration.
func newHelperClient() *helper.Client {
	// Already validated by initConfig.
	timeout, _ := appConfig.Helpers.TimeoutDuration()

	opts := []exec.Option{
		exec.WithStderrExcerpt(appConfig.Helpers.StderrExcerptBytes),
		exec.WithEnv(appConfig.Helpers.Env...),
	}
	if wrapper := appConfig.Helpers.Privilege.Wrapper; len(wrapper) > 0 {
		opts = append(opts, exec.WithPrivilegeWrapper(wrapper...))
	}

	return helper.New(
		logger,
		appFs,
		exec.New(logger, opts...),
		appConfig.Helpers.BaseDir,
		helper.WithTimeout(timeout),
	)
}

// runQuery wraps a one-shot query with tracer setup and teardown.
func runQuery(
	cmd *cobra.Command,
	fn func(ctx context.Context, client *helper.Client) error,
) {
	ctx := cmd.Context()

	shutdownTracer, err := telemetry.InitTracer(
		ctx,
		serviceName,
		buildVersion().GitVersion,
		appConfig.Telemetry.Tracing,
	)
	if err != nil {
		cli.LogFatal(logger, "failed to initialize tracer", err)
	}
	defer func() { _ = shutdownTracer(context.Background()) }()

	if err := fn(ctx, newHelperClient()); err != nil {
		_ = shutdownTracer(context.Background())
		cli.LogFatal(logger, "query failed", err)
	}
}
