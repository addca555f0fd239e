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
	"log/slog"
	"time"

	"github.com/spf13/afero"

	"github.com/UnivaCorporation/tortuga/internal/exec"
)

// Helper program names, resolved under the configured base directory.
const (
	ComponentNodeListCommand = "get-component-node-list.sh"
	GlobalParameterCommand   = "get-global-parameter.sh"
	ProvisioningNICsCommand  = "get-provisioning-nics"
)

// Commands lists every helper the client runs.
var Commands = []string{
	ComponentNodeListCommand,
	GlobalParameterCommand,
	ProvisioningNICsCommand,
}

// Operation names used in errors, logs and metrics.
const (
	OpComponentNodes   = "list component nodes"
	OpGlobalParameter  = "get global parameter"
	OpProvisioningNICs = "list provisioning nics"
)

// Client runs the Tortuga helper programs and decodes their output.
type Client struct {
	logger      *slog.Logger
	appFs       afero.Fs
	execManager exec.Manager
	baseDir     string
	timeout     time.Duration
}

// ComponentQuery selects the component whose nodes are listed.
type ComponentQuery struct {
	// KitName restricts the match to components of this kit (optional).
	KitName string `validate:"omitempty,helper_arg"`
	// Component is the component name, e.g. "qmaster".
	Component string `validate:"required,helper_arg"`
	// ExpandInstallerHostname asks the helper to replace the installer
	// hostname placeholder in its output.
	ExpandInstallerHostname bool
}

// NICQuery selects which provisioning NICs are listed.
type NICQuery struct {
	// HardwareProfile returns the provisioning NIC of this hardware profile
	// instead of the installer's NICs (optional).
	HardwareProfile string `validate:"omitempty,helper_arg"`
}

// NIC describes one provisioning network interface.
type NIC struct {
	Device  string     `json:"device"`
	IP      string     `json:"ip,omitempty"`
	Network NICNetwork `json:"network"`
}

// NICNetwork is the network a NIC is attached to.
type NICNetwork struct {
	Address string `json:"address,omitempty"`
	Netmask string `json:"netmask,omitempty"`
}
