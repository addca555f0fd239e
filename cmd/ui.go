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

package cmd

import (
	"fmt"

	"github.com/UnivaCorporation/tortuga/internal/cli"
	"github.com/UnivaCorporation/tortuga/internal/helper"
	"github.com/UnivaCorporation/tortuga/internal/markup"
)

// nodeSection renders a profile to nodes mapping as one table row per
// profile, in the order the helper printed them.
func nodeSection(
	component string,
	profiles *markup.Value,
) (cli.Section, error) {
	s := cli.Section{
		Title:   component,
		Headers: []string{"PROFILE", "NODES"},
	}

	if profiles.IsEmpty() {
		return s, nil
	}

	if profiles.Kind != markup.Mapping {
		return s, fmt.Errorf("unexpected node list: expected mapping, got %s", profiles.Kind)
	}

	s.Rows = make([][]string, 0, len(profiles.Entries))
	for _, e := range profiles.Entries {
		nodes, err := e.Value.StringSlice()
		if err != nil {
			return s, fmt.Errorf("unexpected node list for profile %q: %w", e.Key, err)
		}
		s.Rows = append(s.Rows, []string{e.Key, cli.FormatList(nodes)})
	}

	return s, nil
}

// nicSection renders provisioning NICs as a table.
func nicSection(
	nics []helper.NIC,
) cli.Section {
	s := cli.Section{
		Headers: []string{"DEVICE", "IP", "NETWORK", "NETMASK"},
		Rows:    make([][]string, 0, len(nics)),
	}

	for _, nic := range nics {
		s.Rows = append(s.Rows, []string{
			nic.Device,
			nic.IP,
			nic.Network.Address,
			nic.Network.Netmask,
		})
	}

	return s
}
