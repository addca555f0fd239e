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

package exec

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/suite"
)

type InvokeTestSuite struct {
	suite.Suite

	logger *slog.Logger
}

func (s *InvokeTestSuite) SetupTest() {
	s.logger = slog.New(slog.NewTextHandler(os.Stdout, nil))
}

func (s *InvokeTestSuite) TestCommandLine() {
	tests := []struct {
		name          string
		euid          int
		wrapper       []string
		spec          CommandSpec
		wantName      string
		wantArgs      []string
		errorContains string
	}{
		{
			name: "when privilege is not required runs executable directly",
			euid: 1000,
			spec: CommandSpec{
				Executable: "/opt/tortuga/bin/get-global-parameter.sh",
				Args:       []string{"DNSZone"},
			},
			wantName: "/opt/tortuga/bin/get-global-parameter.sh",
			wantArgs: []string{"DNSZone"},
		},
		{
			name:    "when privilege is required and caller is root skips the wrapper",
			euid:    0,
			wrapper: []string{"sudo", "-n"},
			spec: CommandSpec{
				Executable:        "/opt/tortuga/bin/get-provisioning-nics",
				Args:              []string{"--yaml", "--verbose"},
				RequiresPrivilege: true,
			},
			wantName: "/opt/tortuga/bin/get-provisioning-nics",
			wantArgs: []string{"--yaml", "--verbose"},
		},
		{
			name:    "when privilege is required prepends the wrapper tokens",
			euid:    1000,
			wrapper: []string{"/usr/bin/sudo", "-n"},
			spec: CommandSpec{
				Executable:        "/opt/tortuga/bin/get-provisioning-nics",
				Args:              []string{"--yaml", "--verbose"},
				RequiresPrivilege: true,
			},
			wantName: "/usr/bin/sudo",
			wantArgs: []string{
				"-n",
				"/opt/tortuga/bin/get-provisioning-nics",
				"--yaml",
				"--verbose",
			},
		},
		{
			name: "when privilege is required without a wrapper returns error",
			euid: 1000,
			spec: CommandSpec{
				Executable:        "/opt/tortuga/bin/get-provisioning-nics",
				RequiresPrivilege: true,
			},
			errorContains: "no privilege wrapper is configured",
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			e := New(s.logger, WithPrivilegeWrapper(tc.wrapper...))
			e.geteuid = func() int { return tc.euid }

			name, args, err := e.commandLine(tc.spec)

			if tc.errorContains != "" {
				s.Require().Error(err)
				s.Contains(err.Error(), tc.errorContains)
				return
			}

			s.Require().NoError(err)
			s.Equal(tc.wantName, name)
			s.Equal(tc.wantArgs, args)
		})
	}
}

func (s *InvokeTestSuite) TestInvokeWithoutPrivilegeWrapper() {
	e := New(s.logger)
	e.geteuid = func() int { return 1000 }

	result, err := e.Invoke(context.Background(), CommandSpec{
		Executable:        "/opt/tortuga/bin/get-provisioning-nics",
		RequiresPrivilege: true,
	})

	s.Require().NoError(err)
	s.Equal(SpawnFailure, result.Outcome)
	s.Contains(result.Reason, "no privilege wrapper is configured")

	var spawnErr *SpawnError
	s.ErrorAs(result.Err(), &spawnErr)
}

func (s *InvokeTestSuite) TestTailBuffer() {
	tests := []struct {
		name   string
		limit  int
		writes []string
		want   string
	}{
		{
			name:   "when output fits keeps everything",
			limit:  16,
			writes: []string{"boom", "\n"},
			want:   "boom\n",
		},
		{
			name:   "when output is exactly the limit keeps everything",
			limit:  4,
			writes: []string{"abcd"},
			want:   "abcd",
		},
		{
			name:   "when a single write exceeds the limit keeps the tail",
			limit:  4,
			writes: []string{"abcdefgh"},
			want:   "...efgh",
		},
		{
			name:   "when several writes exceed the limit keeps the tail",
			limit:  5,
			writes: []string{"abc", "def", "ghi"},
			want:   "...efghi",
		},
		{
			name:   "when a limit-sized write follows earlier output marks truncation",
			limit:  3,
			writes: []string{"a", "xyz"},
			want:   "...xyz",
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			buf := newTailBuffer(tc.limit)
			for _, w := range tc.writes {
				n, err := buf.Write([]byte(w))
				s.Require().NoError(err)
				s.Equal(len(w), n)
			}

			s.Equal(tc.want, buf.String())
		})
	}
}

func TestInvokeTestSuite(t *testing.T) {
	suite.Run(t, new(InvokeTestSuite))
}
