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

package telemetry

import (
	"context"
	"sort"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// Compile-time check that envCarrier satisfies the TextMapCarrier interface.
var _ propagation.TextMapCarrier = envCarrier{}

// envCarrier stores propagation fields as environment variable names
// (traceparent -> TRACEPARENT).
type envCarrier map[string]string

// Get returns the value for the key.
func (c envCarrier) Get(
	key string,
) string {
	return c[envName(key)]
}

// Set stores a key-value pair.
func (c envCarrier) Set(
	key string,
	value string,
) {
	c[envName(key)] = value
}

// Keys returns all keys in the carrier.
func (c envCarrier) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, strings.ToLower(k))
	}

	return keys
}

func envName(
	key string,
) string {
	return strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
}

// TraceEnv returns KEY=VALUE entries carrying the current span's trace
// context (TRACEPARENT, TRACESTATE), for passing to a helper process.
// Returns nil when ctx carries no span.
func TraceEnv(
	ctx context.Context,
) []string {
	carrier := envCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	if len(carrier) == 0 {
		return nil
	}

	env := make([]string, 0, len(carrier))
	for k, v := range carrier {
		env = append(env, k+"="+v)
	}
	sort.Strings(env)

	return env
}
