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

// Package systemd reports the state of selected systemd units on Linux hosts.
//
// Units are queried over the system D-Bus. A host without systemd or without
// a reachable bus yields empty lists.
package systemd

import (
	"context"
	"log/slog"

	"github.com/coreos/go-systemd/v22/dbus"

	"github.com/NVIDIA/hostcond/pkg/condition"
	"github.com/NVIDIA/hostcond/pkg/defaults"
	"github.com/NVIDIA/hostcond/pkg/processor"
)

// Name is the module name used for selection.
const Name = "systemd"

// Condition keys produced by this module.
const (
	KeyUnits       = "systemd_units"
	KeyActiveUnits = "systemd_active_units"
)

const (
	loadStateNotFound = "not-found"
	activeStateActive = "active"
)

// Conn is the subset of the systemd D-Bus connection this module uses.
type Conn interface {
	ListUnitsByNamesContext(ctx context.Context, units []string) ([]dbus.UnitStatus, error)
	Close()
}

// Dialer opens a systemd connection.
type Dialer func(ctx context.Context) (Conn, error)

// DialSystem connects to the system bus.
func DialSystem(ctx context.Context) (Conn, error) {
	return dbus.NewSystemdConnectionContext(ctx)
}

// Processor gathers systemd unit conditions.
type Processor struct {
	Units []string
	Dial  Dialer
}

// New creates the systemd module from cfg.
func New(cfg *processor.Config) *Processor {
	return &Processor{
		Units: cfg.SystemDUnits,
		Dial:  DialSystem,
	}
}

// Name implements processor.Processor.
func (p *Processor) Name() string { return Name }

// Run implements processor.Processor.
func (p *Processor) Run(ctx context.Context) condition.Set {
	units := condition.NewSequence()
	active := condition.NewSequence()

	build := func() condition.Set {
		return condition.NewBuilder().
			SetStrings(KeyUnits, units.Values()).
			SetStrings(KeyActiveUnits, active.Values()).
			Build()
	}

	if len(p.Units) == 0 {
		return build()
	}

	ctx, cancel := context.WithTimeout(ctx, defaults.DBusTimeout)
	defer cancel()

	conn, err := p.Dial(ctx)
	if err != nil {
		slog.Debug("systemd bus unavailable", "error", err)
		return build()
	}
	defer conn.Close()

	statuses, err := conn.ListUnitsByNamesContext(ctx, p.Units)
	if err != nil {
		slog.Warn("failed to list systemd units", "units", p.Units, "error", err)
		return build()
	}

	for _, s := range statuses {
		if s.LoadState == loadStateNotFound {
			continue
		}
		units.Add(s.Name + "," + s.ActiveState + "," + s.SubState)
		if s.ActiveState == activeStateActive {
			active.Add(s.Name)
		}
	}
	return build()
}
