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

package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/UnivaCorporation/tortuga/internal/validation"
)

// DefaultBaseDir is where the Tortuga helper programs are installed.
const DefaultBaseDir = "/opt/tortuga/bin"

// Defaults returns the viper default for every configuration key.
func Defaults() map[string]any {
	return map[string]any{
		"helpers.base_dir":             DefaultBaseDir,
		"helpers.timeout":              "30s",
		"helpers.stderr_excerpt_bytes": 4096,
		"helpers.privilege.wrapper":    []string{"sudo", "-n"},
		"api.server.port":              8080,
		"telemetry.metrics.path":       "/metrics",
	}
}

// Validate checks the configuration for required and well-formed values.
func Validate(
	cfg *Config,
) error {
	if errMsg, ok := validation.Struct(cfg); !ok {
		return errors.New(errMsg)
	}

	if _, err := cfg.Helpers.TimeoutDuration(); err != nil {
		return err
	}

	return nil
}

// TimeoutDuration parses the helper timeout. An empty value means no
// timeout.
func (h Helpers) TimeoutDuration() (time.Duration, error) {
	if h.Timeout == "" {
		return 0, nil
	}

	d, err := time.ParseDuration(h.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid helpers.timeout %q: %w", h.Timeout, err)
	}

	if d < 0 {
		return 0, fmt.Errorf("invalid helpers.timeout %q: must not be negative", h.Timeout)
	}

	return d, nil
}
