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

// Package builtin assembles the registry of condition modules shipped with hostcond.
package builtin

import (
	"github.com/NVIDIA/hostcond/pkg/processor"
	"github.com/NVIDIA/hostcond/pkg/processor/certificates"
	"github.com/NVIDIA/hostcond/pkg/processor/pppcp"
	"github.com/NVIDIA/hostcond/pkg/processor/python"
	"github.com/NVIDIA/hostcond/pkg/processor/systemd"
	"github.com/NVIDIA/hostcond/pkg/processor/systemsetup"
	"github.com/NVIDIA/hostcond/pkg/processor/useraccounts"
)

// Factory creates a module from the shared configuration.
type Factory func(cfg *processor.Config) processor.Processor

// entry pairs a module name with its factory.
type entry struct {
	name    string
	factory Factory
}

// modules is the declared module order.
var modules = []entry{
	{certificates.Name, func(cfg *processor.Config) processor.Processor { return certificates.New(cfg) }},
	{useraccounts.Name, func(cfg *processor.Config) processor.Processor { return useraccounts.New(cfg) }},
	{pppcp.Name, func(cfg *processor.Config) processor.Processor { return pppcp.New(cfg) }},
	{python.Name, func(cfg *processor.Config) processor.Processor { return python.New(cfg) }},
	{systemsetup.Name, func(cfg *processor.Config) processor.Processor { return systemsetup.New(cfg) }},
	{systemd.Name, func(cfg *processor.Config) processor.Processor { return systemd.New(cfg) }},
}

// Names returns the built-in module names in declared order.
func Names() []string {
	out := make([]string, len(modules))
	for i, m := range modules {
		out[i] = m.name
	}
	return out
}

// NewRegistry returns a registry holding every built-in module, configured by cfg.
func NewRegistry(cfg *processor.Config) *processor.Registry {
	reg := processor.NewRegistry()
	for _, m := range modules {
		reg.MustRegister(m.name, m.factory(cfg))
	}
	return reg
}
