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

package markup_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/suite"

	"github.com/UnivaCorporation/tortuga/internal/markup"
)

type ValuePublicTestSuite struct {
	suite.Suite
}

func (s *ValuePublicTestSuite) decode(
	payload string,
) *markup.Value {
	v, err := markup.DecodeStructured([]byte(payload))
	s.Require().NoError(err)

	return v
}

func (s *ValuePublicTestSuite) TestMarshalJSON() {
	tests := []struct {
		name    string
		payload string
		want    string
	}{
		{
			name:    "when mapping preserves document key order",
			payload: "zeta: [b]\nalpha: [a]\n",
			want:    `{"zeta":["b"],"alpha":["a"]}`,
		},
		{
			name:    "when scalars are typed keeps their types",
			payload: "ip: 10.2.0.1\nmtu: 1500\nenabled: true\nmissing: ~\n",
			want:    `{"ip":"10.2.0.1","mtu":1500,"enabled":true,"missing":null}`,
		},
		{
			name:    "when payload is empty encodes null",
			payload: "",
			want:    `null`,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			got, err := json.Marshal(s.decode(tt.payload))

			s.Require().NoError(err)
			s.Equal(tt.want, string(got))
		})
	}
}

func (s *ValuePublicTestSuite) TestInterface() {
	v := s.decode("eth1:\n  ip: 10.2.0.1\n  network:\n    address: 10.2.0.0\n    netmask: 255.255.255.0\n")

	want := map[string]any{
		"eth1": map[string]any{
			"ip": "10.2.0.1",
			"network": map[string]any{
				"address": "10.2.0.0",
				"netmask": "255.255.255.0",
			},
		},
	}

	s.Empty(cmp.Diff(want, v.Interface()))
}

func (s *ValuePublicTestSuite) TestShapeErrors() {
	tests := []struct {
		name          string
		payload       string
		convert       func(*markup.Value) error
		errorContains string
	}{
		{
			name:    "when string slice is requested from a mapping",
			payload: "a: b\n",
			convert: func(v *markup.Value) error {
				_, err := v.StringSlice()
				return err
			},
			errorContains: "expected sequence, got mapping",
		},
		{
			name:    "when string slice holds a nested list",
			payload: "- a\n- [b]\n",
			convert: func(v *markup.Value) error {
				_, err := v.StringSlice()
				return err
			},
			errorContains: "item 1: expected scalar, got sequence",
		},
		{
			name:    "when list map is requested from a sequence",
			payload: "- a\n",
			convert: func(v *markup.Value) error {
				_, err := v.StringListMap()
				return err
			},
			errorContains: "expected mapping, got sequence",
		},
		{
			name:    "when list map value is a scalar",
			payload: "engine: node1\n",
			convert: func(v *markup.Value) error {
				_, err := v.StringListMap()
				return err
			},
			errorContains: `key "engine": expected sequence, got scalar`,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			err := tt.convert(s.decode(tt.payload))

			s.Require().Error(err)
			s.Contains(err.Error(), tt.errorContains)
		})
	}
}

func (s *ValuePublicTestSuite) TestLookupOnNonMapping() {
	v := s.decode("- a\n")

	got, ok := v.Lookup("a")

	s.False(ok)
	s.Nil(got)
	s.Nil(v.Keys())
}

func TestValuePublicTestSuite(t *testing.T) {
	suite.Run(t, new(ValuePublicTestSuite))
}
