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

// Package audit records who queried the API and what they were told.
package audit

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/spf13/afero"
)

// Entry represents a single audit log record.
type Entry struct {
	// ID is the unique identifier for this audit entry.
	ID string `json:"id"`
	// Timestamp is when the request was received.
	Timestamp time.Time `json:"timestamp"`
	// User is the authenticated subject (from JWT sub claim).
	User string `json:"user"`
	// Roles are the roles from the JWT token.
	Roles []string `json:"roles"`
	// Method is the HTTP method.
	Method string `json:"method"`
	// Path is the request URL path.
	Path string `json:"path"`
	// RequestID correlates the entry with the access log.
	RequestID string `json:"request_id,omitempty"`
	// SourceIP is the client's IP address.
	SourceIP string `json:"source_ip"`
	// ResponseCode is the HTTP response status code.
	ResponseCode int `json:"response_code"`
	// DurationMs is the request processing time in milliseconds.
	DurationMs int64 `json:"duration_ms"`
}

// Store persists audit entries.
type Store interface {
	Write(
		ctx context.Context,
		entry Entry,
	) error
}

// LogStore writes audit entries to a structured logger.
type LogStore struct {
	logger *slog.Logger
}

// FileStore appends audit entries to a file as JSON lines.
type FileStore struct {
	mu    sync.Mutex
	appFs afero.Fs
	path  string
}
