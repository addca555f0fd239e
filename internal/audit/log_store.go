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

package audit

import (
	"context"
	"log/slog"
)

// NewLogStore creates a Store that logs each entry at info level.
func NewLogStore(
	logger *slog.Logger,
) *LogStore {
	return &LogStore{
		logger: logger.With(slog.String("component", "audit")),
	}
}

// Write logs the entry.
func (s *LogStore) Write(
	ctx context.Context,
	entry Entry,
) error {
	s.logger.InfoContext(
		ctx,
		"api request",
		slog.String("id", entry.ID),
		slog.String("user", entry.User),
		slog.Any("roles", entry.Roles),
		slog.String("method", entry.Method),
		slog.String("path", entry.Path),
		slog.String("request_id", entry.RequestID),
		slog.String("source_ip", entry.SourceIP),
		slog.Int("response_code", entry.ResponseCode),
		slog.Int64("duration_ms", entry.DurationMs),
	)

	return nil
}
