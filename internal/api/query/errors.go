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

package query

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/UnivaCorporation/tortuga/internal/exec"
	"github.com/UnivaCorporation/tortuga/internal/helper"
	"github.com/UnivaCorporation/tortuga/internal/markup"
)

// Error codes returned in ErrorResponse.Code.
const (
	CodeInvalidArgument   = "invalid_argument"
	CodeHelperFailed      = "helper_failed"
	CodeMalformedOutput   = "malformed_output"
	CodeHelperUnavailable = "helper_unavailable"
	CodeHelperTimeout     = "helper_timeout"
	CodeInternal          = "internal"
	CodeCancelled         = "cancelled"
)

// StatusClientClosedRequest is reported when the caller went away before
// the helper finished.
const StatusClientClosedRequest = 499

// StatusFor maps a helper error to an HTTP status and error code.
func StatusFor(
	err error,
) (int, string) {
	var (
		spawnErr   *exec.SpawnError
		exitErr    *exec.ExitError
		timeoutErr *exec.TimeoutError
		decodeErr  *markup.DecodeError
	)

	switch {
	case errors.Is(err, helper.ErrInvalidArgument):
		return http.StatusBadRequest, CodeInvalidArgument
	case errors.As(err, &timeoutErr):
		return http.StatusGatewayTimeout, CodeHelperTimeout
	case errors.As(err, &spawnErr):
		return http.StatusServiceUnavailable, CodeHelperUnavailable
	case errors.As(err, &exitErr):
		return http.StatusBadGateway, CodeHelperFailed
	case errors.Is(err, context.Canceled):
		return StatusClientClosedRequest, CodeCancelled
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, CodeHelperTimeout
	case errors.As(err, &decodeErr), errors.Is(err, helper.ErrUnexpectedShape):
		return http.StatusBadGateway, CodeMalformedOutput
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

func (q *Query) failure(
	c echo.Context,
	err error,
) error {
	status, code := StatusFor(err)

	level := slog.LevelWarn
	switch {
	case status == StatusClientClosedRequest:
		level = slog.LevelInfo
	case status >= http.StatusInternalServerError:
		level = slog.LevelError
	}
	q.logger.LogAttrs(
		c.Request().Context(),
		level,
		"query failed",
		slog.String("path", c.Path()),
		slog.Int("status", status),
		slog.String("code", code),
		slog.String("error", err.Error()),
	)

	return c.JSON(status, ErrorResponse{Error: err.Error(), Code: code})
}

func (q *Query) badRequest(
	c echo.Context,
	err error,
) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{
		Error: err.Error(),
		Code:  CodeInvalidArgument,
	})
}
