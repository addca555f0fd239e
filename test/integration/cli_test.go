//go:build integration

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

package integration_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
)

type CLISmokeSuite struct {
	suite.Suite
}

func (s *CLISmokeSuite) TestQueries() {
	tests := []struct {
		name         string
		args         []string
		validateFunc func(stdout string, stderr string, exitCode int)
	}{
		{
			name: "prints a global parameter",
			args: []string{"param", "get", "DNSZone"},
			validateFunc: func(stdout string, _ string, exitCode int) {
				s.Require().Equal(0, exitCode)
				s.Equal("private\n", stdout)
			},
		},
		{
			name: "prints a global parameter as json",
			args: []string{"param", "get", "DNSZone", "--json"},
			validateFunc: func(stdout string, _ string, exitCode int) {
				s.Require().Equal(0, exitCode)

				var result map[string]string
				s.Require().NoError(parseJSON(stdout, &result))
				s.Equal("private", result["value"])
			},
		},
		{
			name: "reports a failing helper",
			args: []string{"param", "get", "Missing"},
			validateFunc: func(_ string, stderr string, exitCode int) {
				s.Equal(1, exitCode)
				s.Contains(stderr, "parameter Missing not found")
			},
		},
		{
			name: "lists component nodes as json",
			args: []string{"component", "nodes", "dhcpd", "--json"},
			validateFunc: func(stdout string, _ string, exitCode int) {
				s.Require().Equal(0, exitCode)
				s.Less(
					strings.Index(stdout, "Installer"),
					strings.Index(stdout, "Compute"),
				)
				s.Contains(stdout, "compute-02")
			},
		},
		{
			name: "lists provisioning nics through the wrapper",
			args: []string{"nics", "list", "--json"},
			validateFunc: func(stdout string, _ string, exitCode int) {
				s.Require().Equal(0, exitCode)

				var result []map[string]any
				s.Require().NoError(parseJSON(stdout, &result))
				s.Require().Len(result, 1)
				s.Equal("eth1", result[0]["device"])
				s.Equal("10.2.0.1", result[0]["ip"])
			},
		},
		{
			name: "masks the signing key",
			args: []string{"config", "show"},
			validateFunc: func(stdout string, _ string, exitCode int) {
				s.Require().Equal(0, exitCode)
				s.NotContains(stdout, signingKey)
			},
		},
		{
			name: "validates a generated token",
			args: []string{"token", "validate", "-t", readToken, "--json"},
			validateFunc: func(stdout string, _ string, exitCode int) {
				s.Require().Equal(0, exitCode)

				var result map[string]any
				s.Require().NoError(parseJSON(stdout, &result))
				s.Equal("dashboard@test", result["subject"])
			},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			stdout, stderr, exitCode := runCLI(tt.args...)
			tt.validateFunc(stdout, stderr, exitCode)
		})
	}
}

func TestCLISmokeSuite(
	t *testing.T,
) {
	suite.Run(t, new(CLISmokeSuite))
}
