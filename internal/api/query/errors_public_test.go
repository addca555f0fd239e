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

package query_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/UnivaCorporation/tortuga/internal/api/query"
	"github.com/UnivaCorporation/tortuga/internal/exec"
	"github.com/UnivaCorporation/tortuga/internal/helper"
	"github.com/UnivaCorporation/tortuga/internal/markup"
)

type ErrorsPublicTestSuite struct {
	suite.Suite
}

func (s *ErrorsPublicTestSuite) TestStatusFor() {
	wrap := func(err error) error {
		return &helper.OperationError{
			Operation: helper.OpGlobalParameter,
			Command:   "/opt/tortuga/bin/get-global-parameter.sh",
			Err:       err,
		}
	}

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "when argument is invalid",
			err:        wrap(fmt.Errorf("%w: bad", helper.ErrInvalidArgument)),
			wantStatus: http.StatusBadRequest,
			wantCode:   query.CodeInvalidArgument,
		},
		{
			name:       "when helper timed out",
			err:        wrap(&exec.TimeoutError{Executable: "/x", Timeout: time.Second}),
			wantStatus: http.StatusGatewayTimeout,
			wantCode:   query.CodeHelperTimeout,
		},
		{
			name:       "when helper could not be spawned",
			err:        wrap(&exec.SpawnError{Executable: "/x", Reason: "helper not installed"}),
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   query.CodeHelperUnavailable,
		},
		{
			name:       "when helper exited non-zero",
			err:        wrap(&exec.ExitError{Executable: "/x", ExitCode: 1}),
			wantStatus: http.StatusBadGateway,
			wantCode:   query.CodeHelperFailed,
		},
		{
			name:       "when output is not markup",
			err:        wrap(&markup.DecodeError{Err: errors.New("bad indent")}),
			wantStatus: http.StatusBadGateway,
			wantCode:   query.CodeMalformedOutput,
		},
		{
			name:       "when output has an unexpected shape",
			err:        wrap(fmt.Errorf("%w: expected mapping, got sequence", helper.ErrUnexpectedShape)),
			wantStatus: http.StatusBadGateway,
			wantCode:   query.CodeMalformedOutput,
		},
		{
			name: "when caller cancelled the invocation",
			err: wrap(fmt.Errorf(
				"invocation of /x cancelled: %w",
				context.Canceled,
			)),
			wantStatus: query.StatusClientClosedRequest,
			wantCode:   query.CodeCancelled,
		},
		{
			name:       "when caller deadline expired before the helper ran",
			err:        wrap(context.DeadlineExceeded),
			wantStatus: http.StatusGatewayTimeout,
			wantCode:   query.CodeHelperTimeout,
		},
		{
			name:       "when operation error wraps an unclassified cause",
			err:        wrap(errors.New("read /proc: permission denied")),
			wantStatus: http.StatusInternalServerError,
			wantCode:   query.CodeInternal,
		},
		{
			name:       "when error is unknown",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   query.CodeInternal,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			status, code := query.StatusFor(tt.err)

			s.Equal(tt.wantStatus, status)
			s.Equal(tt.wantCode, code)
		})
	}
}

func TestErrorsPublicTestSuite(t *testing.T) {
	suite.Run(t, new(ErrorsPublicTestSuite))
}
