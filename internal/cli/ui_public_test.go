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

package cli_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/UnivaCorporation/tortuga/internal/cli"
)

type UIPublicTestSuite struct {
	suite.Suite
}

func TestUIPublicTestSuite(t *testing.T) {
	suite.Run(t, new(UIPublicTestSuite))
}

func (suite *UIPublicTestSuite) TestPrintCompactTable() {
	tests := []struct {
		name         string
		sections     []cli.Section
		validateFunc func(output string)
	}{
		{
			name: "when section has title renders title headers and rows",
			sections: []cli.Section{
				{
					Title:   "Compute",
					Headers: []string{"node"},
					Rows:    [][]string{{"compute-01.private"}, {"compute-02.private"}},
				},
			},
			validateFunc: func(output string) {
				suite.Contains(output, "Compute:")
				suite.Contains(output, "NODE")
				suite.Contains(output, "compute-01.private")
				suite.Contains(output, "compute-02.private")
			},
		},
		{
			name: "when cell spans lines flattens it",
			sections: []cli.Section{
				{
					Headers: []string{"VALUE"},
					Rows:    [][]string{{"line one\nline two"}},
				},
			},
			validateFunc: func(output string) {
				suite.Contains(output, "line one line two")
			},
		},
		{
			name: "when cell is too wide truncates it",
			sections: []cli.Section{
				{
					Headers: []string{"A", "B"},
					Rows:    [][]string{{strings.Repeat("x", 80), "tail"}},
				},
			},
			validateFunc: func(output string) {
				suite.Contains(output, strings.Repeat("x", 49)+"…")
				suite.NotContains(output, strings.Repeat("x", 51))
				suite.Contains(output, "tail")
			},
		},
		{
			name: "when row is short pads missing cells",
			sections: []cli.Section{
				{
					Headers: []string{"DEVICE", "IP", "NETWORK"},
					Rows:    [][]string{{"eth1"}},
				},
			},
			validateFunc: func(output string) {
				suite.Contains(output, "eth1")
				suite.Contains(output, "NETWORK")
			},
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			var buf bytes.Buffer
			cli.PrintCompactTable(&buf, tc.sections)

			tc.validateFunc(buf.String())
		})
	}
}

func (suite *UIPublicTestSuite) TestPrintKV() {
	tests := []struct {
		name      string
		pairs     []string
		wantEmpty bool
		wantIn    []string
	}{
		{
			name:   "when pairs are even renders all",
			pairs:  []string{"Name", "cluster_name", "Value", "tortuga"},
			wantIn: []string{"Name:", "cluster_name", "Value:", "tortuga"},
		},
		{
			name:      "when pairs are odd renders nothing",
			pairs:     []string{"Name"},
			wantEmpty: true,
		},
		{
			name:      "when no pairs renders nothing",
			wantEmpty: true,
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			var buf bytes.Buffer
			cli.PrintKV(&buf, tc.pairs...)

			if tc.wantEmpty {
				suite.Empty(buf.String())
				return
			}

			for _, want := range tc.wantIn {
				suite.Contains(buf.String(), want)
			}
		})
	}
}

func (suite *UIPublicTestSuite) TestPrintJSON() {
	tests := []struct {
		name        string
		value       any
		want        string
		expectError bool
	}{
		{
			name:  "when value is a map renders indented json",
			value: map[string][]string{"Compute": {"n1"}},
			want:  "{\n  \"Compute\": [\n    \"n1\"\n  ]\n}\n",
		},
		{
			name:        "when value cannot be marshalled returns error",
			value:       make(chan int),
			expectError: true,
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			var buf bytes.Buffer
			err := cli.PrintJSON(&buf, tc.value)

			if tc.expectError {
				suite.Error(err)
				suite.Contains(err.Error(), "failed to marshal output")
				return
			}

			suite.NoError(err)
			suite.Equal(tc.want, buf.String())
		})
	}
}

func (suite *UIPublicTestSuite) TestFormatList() {
	suite.Equal("None", cli.FormatList(nil))
	suite.Equal("eth1, eth2", cli.FormatList([]string{"eth1", "eth2"}))
}
