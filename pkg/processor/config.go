// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package processor

import (
	"github.com/NVIDIA/hostcond/pkg/defaults"
	"github.com/NVIDIA/hostcond/pkg/invoker"
)

// Config holds the dependencies shared by condition modules.
type Config struct {
	// Invoker runs external tools.
	Invoker invoker.Invoker

	// Workers bounds concurrent certificate inspections. Values below one
	// are treated as one.
	Workers int

	// Keychain is the certificate store listed by the certificates module.
	Keychain string

	// TCCOverrides is the MDM privacy overrides plist read by the pppcp module.
	TCCOverrides string

	// NTPConfig is the NTP configuration file read by the system_setup module.
	NTPConfig string

	// SystemDUnits are the units reported by the systemd module.
	SystemDUnits []string
}

// Option is a functional option for configuring Config.
type Option func(*Config)

// WithInvoker sets the tool invoker.
func WithInvoker(inv invoker.Invoker) Option {
	return func(c *Config) {
		c.Invoker = inv
	}
}

// WithWorkers sets the certificate inspection pool size.
func WithWorkers(n int) Option {
	return func(c *Config) {
		c.Workers = n
	}
}

// WithKeychain sets the certificate store path.
func WithKeychain(path string) Option {
	return func(c *Config) {
		c.Keychain = path
	}
}

// WithTCCOverrides sets the privacy overrides plist path.
func WithTCCOverrides(path string) Option {
	return func(c *Config) {
		c.TCCOverrides = path
	}
}

// WithNTPConfig sets the NTP configuration path.
func WithNTPConfig(path string) Option {
	return func(c *Config) {
		c.NTPConfig = path
	}
}

// WithSystemDUnits sets the systemd units to report.
func WithSystemDUnits(units []string) Option {
	return func(c *Config) {
		c.SystemDUnits = units
	}
}

// NewConfig returns a Config with production defaults overridden by opts.
func NewConfig(opts ...Option) *Config {
	c := &Config{
		Workers:      defaults.InspectionWorkers,
		Keychain:     defaults.SystemKeychain,
		TCCOverrides: defaults.TCCOverridesFile,
		NTPConfig:    defaults.NTPConfigFile,
		SystemDUnits: []string{
			"containerd.service",
			"docker.service",
			"kubelet.service",
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.Invoker == nil {
		c.Invoker = invoker.New(invoker.WithTimeout(defaults.ToolTimeout))
	}
	if c.Workers < 1 {
		c.Workers = 1
	}
	return c
}
