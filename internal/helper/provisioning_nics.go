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

package helper

import (
	"context"
	"errors"
	"fmt"

	"github.com/UnivaCorporation/tortuga/internal/markup"
)

// ProvisioningNICs lists provisioning NICs in verbose YAML form: the
// installer's NICs, or the provisioning NIC of query.HardwareProfile.
// The helper needs root, so the invocation is marked privileged.
func (c *Client) ProvisioningNICs(
	ctx context.Context,
	query NICQuery,
) (*markup.Value, error) {
	args := provisioningNICArgs(query)

	stdout, err := c.run(ctx, OpProvisioningNICs, ProvisioningNICsCommand, query, args, true)
	if err != nil {
		return nil, err
	}

	v, err := markup.DecodeStructured(stdout)
	if err != nil {
		return nil, c.decodeError(OpProvisioningNICs, ProvisioningNICsCommand, args, err)
	}

	return v, nil
}

// NICs is ProvisioningNICs converted to NIC descriptors. The helper prints
// either a mapping of device to descriptor, a single descriptor carrying a
// "device" key (hardware profile form), or a sequence of descriptors; an
// empty document or "{}" means no provisioning NICs.
func (c *Client) NICs(
	ctx context.Context,
	query NICQuery,
) ([]NIC, error) {
	v, err := c.ProvisioningNICs(ctx, query)
	if err != nil {
		return nil, err
	}

	nics, err := parseNICs(v)
	if err != nil {
		return nil, c.shapeError(OpProvisioningNICs, ProvisioningNICsCommand, provisioningNICArgs(query), err)
	}

	return nics, nil
}

func provisioningNICArgs(
	query NICQuery,
) []string {
	args := []string{"--yaml", "--verbose"}
	if query.HardwareProfile != "" {
		args = append(args, "--hardware-profile", query.HardwareProfile)
	}

	return args
}

func parseNICs(
	v *markup.Value,
) ([]NIC, error) {
	nics := []NIC{}
	if v.IsEmpty() {
		return nics, nil
	}

	switch v.Kind {
	case markup.Mapping:
		if _, ok := v.Lookup("device"); ok {
			nic, err := parseNIC("", v)
			if err != nil {
				return nil, err
			}
			return append(nics, nic), nil
		}

		for _, e := range v.Entries {
			nic, err := parseNIC(e.Key, e.Value)
			if err != nil {
				return nil, fmt.Errorf("nic %q: %w", e.Key, err)
			}
			nics = append(nics, nic)
		}
	case markup.Sequence:
		for i, item := range v.Items {
			if item.Kind == markup.Scalar {
				nics = append(nics, NIC{Device: item.Text})
				continue
			}

			nic, err := parseNIC("", item)
			if err != nil {
				return nil, fmt.Errorf("nic %d: %w", i, err)
			}
			nics = append(nics, nic)
		}
	default:
		return nil, fmt.Errorf("expected mapping or sequence of nics, got %s", v.Kind)
	}

	return nics, nil
}

// parseNIC reads one descriptor; device names the NIC when the descriptor
// is keyed by device rather than carrying a "device" field.
func parseNIC(
	device string,
	v *markup.Value,
) (NIC, error) {
	nic := NIC{Device: device}
	if v.Kind == markup.Null {
		return nic, nil
	}

	if v.Kind != markup.Mapping {
		return NIC{}, fmt.Errorf("expected mapping, got %s", v.Kind)
	}

	if d, ok := v.Lookup("device"); ok {
		nic.Device = d.String()
	}
	if ip, ok := v.Lookup("ip"); ok {
		nic.IP = ip.String()
	}
	if network, ok := v.Lookup("network"); ok {
		if addr, ok := network.Lookup("address"); ok {
			nic.Network.Address = addr.String()
		}
		if mask, ok := network.Lookup("netmask"); ok {
			nic.Network.Netmask = mask.String()
		}
	}

	if nic.Device == "" {
		return NIC{}, errors.New("descriptor has no device")
	}

	return nic, nil
}
