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

package config

// Config represents the root structure of the YAML configuration file.
// This struct is used to unmarshal configuration data from Viper.
type Config struct {
	Helpers   Helpers   `mapstructure:"helpers"`
	API       API       `mapstructure:"api"       mask:"struct"`
	Telemetry Telemetry `mapstructure:"telemetry"`
	// Debug enable or disable debug option set from CLI.
	Debug bool `mapstructure:"debug"`
}

// Helpers configures how the external Tortuga helper programs are run.
type Helpers struct {
	// BaseDir is the installation directory holding the helper programs.
	BaseDir string `mapstructure:"base_dir" validate:"required,absolute_path"`
	// Timeout bounds each helper invocation (e.g. "30s"); "0s" disables it.
	Timeout string `mapstructure:"timeout" validate:"omitempty"`
	// StderrExcerptBytes is how much trailing stderr is kept for failures.
	StderrExcerptBytes int `mapstructure:"stderr_excerpt_bytes" validate:"min=0,max=1048576"`
	// Privilege configures elevation for helpers that need root.
	Privilege Privilege `mapstructure:"privilege"`
	// Env holds extra KEY=VALUE entries passed to every helper.
	Env []string `mapstructure:"env" validate:"dive,contains=="`
}

// Privilege configures the elevation wrapper.
type Privilege struct {
	// Wrapper is the argv prepended to privileged helpers (e.g. ["sudo", "-n"]).
	// Leave empty to require the process to already run as root.
	Wrapper []string `mapstructure:"wrapper" validate:"dive,required"`
}

// Telemetry configuration settings.
type Telemetry struct {
	Tracing TracingConfig `mapstructure:"tracing,omitempty"`
	Metrics MetricsConfig `mapstructure:"metrics,omitempty"`
}

// MetricsConfig configuration settings for Prometheus metrics.
type MetricsConfig struct {
	// Path is the HTTP path for the Prometheus scrape endpoint.
	// Defaults to "/metrics" when empty.
	Path string `mapstructure:"path" validate:"omitempty,startswith=/"`
}

// TracingConfig configuration settings for distributed tracing.
type TracingConfig struct {
	// Enabled enables or disables tracing.
	Enabled bool `mapstructure:"enabled"`
	// Exporter selects the trace exporter: "stdout" or "otlp".
	Exporter string `mapstructure:"exporter" validate:"omitempty,oneof=none stdout otlp"`
	// OTLPEndpoint is the gRPC endpoint for the OTLP exporter (e.g., "localhost:4317").
	OTLPEndpoint string `mapstructure:"otlp_endpoint" validate:"required_if=Exporter otlp"`
}

// API configuration settings.
type API struct {
	Server Server `mapstructure:"server" mask:"struct"`
}

// Server configuration settings.
type Server struct {
	// Port the server will bind to.
	Port int `mapstructure:"port" validate:"min=0,max=65535"`
	// Security contains security-related configuration for the server, such as CORS and tokens.
	Security ServerSecurity `mapstructure:"security" mask:"struct"`
	// AuditFile receives authenticated query requests as JSON lines.
	// When empty, audit entries go to the log.
	AuditFile string `mapstructure:"audit_file" validate:"omitempty,absolute_path"`
}

// CustomRole defines a named set of permissions that can be assigned to tokens.
type CustomRole struct {
	// Permissions granted to this role (e.g. "parameter:read").
	Permissions []string `mapstructure:"permissions" validate:"dive,oneof=component:read parameter:read nic:read health:read"`
}

// ServerSecurity represents security-related settings for the server.
type ServerSecurity struct {
	// CORS Cross-Origin Resource Sharing (CORS) settings for the server.
	CORS CORS `mapstructure:"cors"`
	// SigningKey is the key used for signing or validating tokens.
	// Leave empty to serve the query API without authentication.
	SigningKey string `mapstructure:"signing_key" validate:"omitempty,min=16" mask:"password"`
	// Roles defines custom roles with fine-grained permissions.
	Roles map[string]CustomRole `mapstructure:"roles" validate:"dive"`
}

// CORS represents the CORS (Cross-Origin Resource Sharing) settings.
type CORS struct {
	// List of origins allowed to access the server (e.g., "foo").
	AllowOrigins []string `mapstructure:"allow_origins,omitempty"`
}

// CustomRolePermissions flattens Roles into the form authtoken expects.
func (s ServerSecurity) CustomRolePermissions() map[string][]string {
	if len(s.Roles) == 0 {
		return nil
	}

	out := make(map[string][]string, len(s.Roles))
	for name, role := range s.Roles {
		out[name] = role.Permissions
	}

	return out
}
