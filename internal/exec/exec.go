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

// Package exec runs external helper programs and classifies their outcome.
package exec

import (
	"log/slog"
	"os"
	"slices"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const (
	instrumentationName = "github.com/UnivaCorporation/tortuga/internal/exec"

	// DefaultExcerptBytes is how much of stderr is kept for failures.
	DefaultExcerptBytes = 4096

	defaultWaitDelay = 2 * time.Second
)

// Option configures an Exec.
type Option func(*Exec)

// WithTimeout sets the timeout applied when a CommandSpec has none.
// Zero disables the default timeout.
func WithTimeout(
	d time.Duration,
) Option {
	return func(e *Exec) {
		e.defaultTimeout = d
	}
}

// WithPrivilegeWrapper sets the argv prepended to privileged commands,
// e.g. []string{"sudo", "-n"}.
func WithPrivilegeWrapper(
	argv ...string,
) Option {
	return func(e *Exec) {
		e.privilegeWrapper = slices.Clone(argv)
	}
}

// WithStderrExcerpt sets how many trailing bytes of stderr are retained.
func WithStderrExcerpt(
	n int,
) Option {
	return func(e *Exec) {
		if n > 0 {
			e.excerptBytes = n
		}
	}
}

// WithEnv appends KEY=VALUE entries to the inherited environment of every
// command.
func WithEnv(
	env ...string,
) Option {
	return func(e *Exec) {
		e.env = slices.Clone(env)
	}
}

// WithWaitDelay bounds how long to wait for output pipes to close after the
// process has been killed.
func WithWaitDelay(
	d time.Duration,
) Option {
	return func(e *Exec) {
		e.waitDelay = d
	}
}

// New factory to create a new Exec instance.
func New(
	logger *slog.Logger,
	opts ...Option,
) *Exec {
	e := &Exec{
		logger:       logger,
		excerptBytes: DefaultExcerptBytes,
		waitDelay:    defaultWaitDelay,
		geteuid:      os.Geteuid,
		tracer:       otel.Tracer(instrumentationName),
	}

	for _, opt := range opts {
		opt(e)
	}

	e.initInstruments()

	return e
}

// initInstruments creates the invocation metrics from the global meter
// provider, falling back to noop instruments on error.
func (e *Exec) initInstruments() {
	meter := otel.Meter(instrumentationName)
	fallback := noop.NewMeterProvider().Meter(instrumentationName)

	counter, err := meter.Int64Counter(
		"tortuga_query.invocations",
		metric.WithDescription("Helper command invocations by command and outcome."),
	)
	if err != nil {
		e.logger.Warn("failed to create invocation counter", slog.Any("error", err))
		counter, _ = fallback.Int64Counter("tortuga_query.invocations")
	}

	histogram, err := meter.Float64Histogram(
		"tortuga_query.invocation.duration",
		metric.WithDescription("Helper command wall time."),
		metric.WithUnit("s"),
	)
	if err != nil {
		e.logger.Warn("failed to create duration histogram", slog.Any("error", err))
		histogram, _ = fallback.Float64Histogram("tortuga_query.invocation.duration")
	}

	e.invocations = counter
	e.durations = histogram
}
