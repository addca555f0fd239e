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

package audit_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/suite"

	"github.com/UnivaCorporation/tortuga/internal/audit"
)

type StorePublicTestSuite struct {
	suite.Suite

	entry audit.Entry
}

func (s *StorePublicTestSuite) SetupTest() {
	s.entry = audit.Entry{
		ID:           "2c7d2a4e-36c9-4d3e-8a39-4b4f0c1d2e3f",
		Timestamp:    time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		User:         "installer",
		Roles:        []string{"read"},
		Method:       "GET",
		Path:         "/v1/parameters/DNSZone",
		RequestID:    "req-1",
		SourceIP:     "10.2.0.5",
		ResponseCode: 200,
		DurationMs:   12,
	}
}

func (s *StorePublicTestSuite) TestLogStoreWrite() {
	var buf bytes.Buffer
	store := audit.NewLogStore(slog.New(slog.NewJSONHandler(&buf, nil)))

	err := store.Write(context.Background(), s.entry)

	s.Require().NoError(err)

	var record map[string]any
	s.Require().NoError(json.Unmarshal(buf.Bytes(), &record))
	s.Equal("api request", record["msg"])
	s.Equal("audit", record["component"])
	s.Equal("installer", record["user"])
	s.Equal("/v1/parameters/DNSZone", record["path"])
	s.InDelta(200, record["response_code"], 0)
}

func (s *StorePublicTestSuite) TestFileStoreWrite() {
	tests := []struct {
		name          string
		appFs         func() afero.Fs
		writes        int
		wantLines     int
		errorContains string
	}{
		{
			name:      "when file does not exist creates it",
			appFs:     afero.NewMemMapFs,
			writes:    1,
			wantLines: 1,
		},
		{
			name:      "when entries accumulate appends lines",
			appFs:     afero.NewMemMapFs,
			writes:    3,
			wantLines: 3,
		},
		{
			name: "when filesystem is read only returns error",
			appFs: func() afero.Fs {
				return afero.NewReadOnlyFs(afero.NewMemMapFs())
			},
			writes:        1,
			errorContains: "failed to open audit file",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			appFs := tt.appFs()
			store := audit.NewFileStore(appFs, "/var/log/tortuga/audit.log")

			var err error
			for range tt.writes {
				if err = store.Write(context.Background(), s.entry); err != nil {
					break
				}
			}

			if tt.errorContains != "" {
				s.Require().Error(err)
				s.Contains(err.Error(), tt.errorContains)
				return
			}

			s.Require().NoError(err)

			data, err := afero.ReadFile(appFs, "/var/log/tortuga/audit.log")
			s.Require().NoError(err)

			lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
			s.Len(lines, tt.wantLines)

			var got audit.Entry
			s.Require().NoError(json.Unmarshal([]byte(lines[0]), &got))
			s.Equal(s.entry, got)

			info, err := appFs.Stat("/var/log/tortuga/audit.log")
			s.Require().NoError(err)
			s.Equal("-rw-------", info.Mode().Perm().String())
		})
	}
}

func TestStorePublicTestSuite(t *testing.T) {
	suite.Run(t, new(StorePublicTestSuite))
}
