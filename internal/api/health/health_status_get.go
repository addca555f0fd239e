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

package health

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// GetHealthStatus returns per-component health with version and uptime.
func (h *Health) GetHealthStatus(
	c echo.Context,
) error {
	ctx := c.Request().Context()

	helpers := ComponentHealth{Status: "ok"}
	overall := "ok"

	if err := h.Checker.CheckInstalled(ctx); err != nil {
		errMsg := err.Error()
		helpers = ComponentHealth{Status: "error", Error: &errMsg}
		overall = "degraded"
	}

	resp := StatusResponse{
		Status:  overall,
		Version: h.Version,
		Uptime:  time.Since(h.StartTime).Round(time.Second).String(),
		Components: map[string]ComponentHealth{
			"helpers": helpers,
		},
	}

	// Host metrics are informational and never degrade the status.
	if h.Metrics != nil {
		host, err := h.Metrics.GetHostMetrics(ctx)
		if err != nil {
			h.logger.Warn("failed to collect host metrics", slog.String("error", err.Error()))
		} else {
			resp.Host = host
		}
	}

	return c.JSON(http.StatusOK, resp)
}
