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
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/UnivaCorporation/tortuga/internal/api"
	"github.com/UnivaCorporation/tortuga/internal/api/health"
	"github.com/UnivaCorporation/tortuga/internal/api/query"
	"github.com/UnivaCorporation/tortuga/internal/audit"
	"github.com/UnivaCorporation/tortuga/internal/cli"
	"github.com/UnivaCorporation/tortuga/internal/telemetry"
)

// ServerManager responsible for Server operations.
type ServerManager interface {
	cli.Lifecycle
	// GetQueryHandler returns the helper query handler for registration.
	GetQueryHandler(helper query.Helper) []func(e *echo.Echo)
	// GetHealthHandler returns health handler for registration.
	GetHealthHandler(
		checker health.Checker,
		startTime time.Time,
		version string,
		metrics health.MetricsProvider,
	) []func(e *echo.Echo)
	// GetMetricsHandler returns Prometheus metrics handler for registration.
	GetMetricsHandler(metricsHandler http.Handler, path string) []func(e *echo.Echo)
	// RegisterHandlers registers a list of handlers with the Echo instance.
	RegisterHandlers(handlers ...[]func(e *echo.Echo))
}

func newServer() ServerManager {
	var opts []api.Option
	if path := appConfig.API.Server.AuditFile; path != "" {
		opts = append(opts, api.WithAuditStore(audit.NewFileStore(appFs, path)))
	}

	return api.New(appConfig, logger, opts...)
}

// serveCmd represents the serve command.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve helper queries over HTTP",
	Long: `Start the HTTP query API. Shuts down gracefully on SIGINT/SIGTERM.
`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()
		appVersion := buildVersion().GitVersion

		shutdownTracer, err := telemetry.InitTracer(
			ctx,
			serviceName,
			appVersion,
			appConfig.Telemetry.Tracing,
		)
		if err != nil {
			cli.LogFatal(logger, "failed to initialize tracer", err)
		}

		metricsHandler, metricsPath, shutdownMeter, err := telemetry.InitMeter(
			appConfig.Telemetry.Metrics,
		)
		if err != nil {
			cli.LogFatal(logger, "failed to initialize meter", err)
		}

		// Created after InitMeter so the invoker binds to the Prometheus
		// meter provider.
		client := newHelperClient()
		if err := client.CheckInstalled(ctx); err != nil {
			logger.Warn("helpers not ready", slog.String("error", err.Error()))
		}

		if appConfig.API.Server.Security.SigningKey == "" {
			logger.Warn("api.server.security.signing_key is empty, query API is unauthenticated")
		}

		sm := newServer()
		sm.RegisterHandlers(
			sm.GetHealthHandler(client, time.Now(), appVersion, health.NewHostProvider()),
			sm.GetQueryHandler(client),
			sm.GetMetricsHandler(metricsHandler, metricsPath),
		)

		cli.RunServer(
			ctx,
			logger,
			sm,
			cli.DefaultShutdownTimeout,
			shutdownMeter,
			shutdownTracer,
		)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.PersistentFlags().
		IntP("port", "p", 8080, "Port the server will bind to")

	_ = viper.BindPFlag("api.server.port", serveCmd.PersistentFlags().Lookup("port"))
}
