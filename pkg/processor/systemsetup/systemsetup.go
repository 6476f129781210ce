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

// Package systemsetup reports system configuration: remote access services,
// firmware password, printing, SIP, time settings, and Rosetta 2.
//
// Scalar conditions that cannot be determined on the host are reported as
// an empty string rather than omitted, so a policy can tell "unknown" apart
// from false.
package systemsetup

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"howett.net/plist"

	"github.com/NVIDIA/hostcond/pkg/condition"
	"github.com/NVIDIA/hostcond/pkg/errors"
	"github.com/NVIDIA/hostcond/pkg/invoker"
	"github.com/NVIDIA/hostcond/pkg/parser"
	"github.com/NVIDIA/hostcond/pkg/processor"
	"github.com/NVIDIA/hostcond/pkg/version"
)

// Name is the module name used for selection.
const Name = "system_setup"

// Condition keys produced by this module.
const (
	KeyARDEnabled         = "ard_enabled"
	KeyEFIPasswordEnabled = "efi_password_enabled"
	KeyEFIPasswordSupport = "efi_password_supported"
	KeyCUPSWebInterface   = "cups_web_interface_enabled"
	KeyPrinterSharing     = "printer_sharing_enabled"
	KeySIPEnabled         = "sip_enabled"
	KeyNTPEnabled         = "ntp_enabled"
	KeyNTPServers         = "ntp_servers"
	KeyRemoteAppleEvents  = "remote_apple_events_enabled"
	KeySSHEnabled         = "ssh_enabled"
	KeyTimezone           = "timezone"
	KeyWakeOnLAN          = "wake_on_lan"
	KeyRosettaInstalled   = "rosetta2_installed"
	KeyRosettaVersion     = "rosetta2_version"
)

const (
	archTool        = "/usr/bin/arch"
	mdmclient       = "/usr/libexec/mdmclient"
	firmwarepasswd  = "/usr/sbin/firmwarepasswd"
	cupsctl         = "/usr/sbin/cupsctl"
	csrutil         = "/usr/bin/csrutil"
	systemsetupTool = "/usr/sbin/systemsetup"
	pkgutil         = "/usr/sbin/pkgutil"

	sipEnabledText = "System Integrity Protection status: enabled"
	rosettaPackage = "com.apple.pkg.RosettaUpdateAuto"
	fieldSep       = ": "
	timezoneField  = "Time Zone"
)

// rosettaRelocated is the last release that used the legacy Rosetta location.
var rosettaRelocated = version.MustParseVersion("11.4")

var rosettaFiles = []string{"oahd", "oahd-helper", "oahd-root-helper"}

// Processor gathers system setup conditions.
type Processor struct {
	Invoker   invoker.Invoker
	NTPConfig string

	// RosettaDir and LegacyRosettaDir are where the Rosetta 2 runtime lives
	// after and up to macOS 11.4.
	RosettaDir       string
	LegacyRosettaDir string
}

// New creates the system_setup module from cfg.
func New(cfg *processor.Config) *Processor {
	return &Processor{
		Invoker:          cfg.Invoker,
		NTPConfig:        cfg.NTPConfig,
		RosettaDir:       "/usr/libexec/rosetta",
		LegacyRosettaDir: "/Library/Apple/usr/libexec/oah",
	}
}

// Name implements processor.Processor.
func (p *Processor) Name() string { return Name }

// Run implements processor.Processor.
func (p *Processor) Run(ctx context.Context) condition.Set {
	set := condition.Set{}
	set.Merge(p.ard(ctx))
	set.Merge(p.efiPassword(ctx))
	set.Merge(p.printing(ctx))
	set.Merge(p.sip(ctx))
	set.Merge(p.systemSetup(ctx))
	set.Merge(p.rosetta(ctx))
	return set
}

// unknown marks a scalar that could not be determined.
var unknown = condition.Str("")

func (p *Processor) ard(ctx context.Context) condition.Set {
	set := condition.Set{KeyARDEnabled: unknown}
	res, err := invoker.Probe(ctx, p.Invoker, mdmclient, "QuerySecurityInfo")
	if err != nil {
		logUnavailable(mdmclient, err)
		return set
	}
	for _, line := range strings.Split(res.Stdout, "\n") {
		if strings.Contains(line, "RemoteDesktopEnabled") {
			set[KeyARDEnabled] = condition.Bool(strings.Contains(line, "1"))
			break
		}
	}
	return set
}

func (p *Processor) efiPassword(ctx context.Context) condition.Set {
	set := condition.Set{KeyEFIPasswordEnabled: unknown, KeyEFIPasswordSupport: unknown}

	arch := invoker.Text(ctx, p.Invoker, archTool)
	switch {
	case arch == "":
		return set
	case strings.Contains(arch, "arm"):
		// Apple silicon has no firmware password.
		set[KeyEFIPasswordEnabled] = condition.Bool(false)
		set[KeyEFIPasswordSupport] = condition.Bool(false)
		return set
	}

	res, err := invoker.Probe(ctx, p.Invoker, firmwarepasswd, "-check")
	if err != nil {
		logUnavailable(firmwarepasswd, err)
		return set
	}
	set[KeyEFIPasswordEnabled] = condition.Bool(hasField(res.Stdout, "Yes"))
	set[KeyEFIPasswordSupport] = condition.Bool(true)
	return set
}

func (p *Processor) printing(ctx context.Context) condition.Set {
	set := condition.Set{KeyCUPSWebInterface: unknown, KeyPrinterSharing: unknown}
	res, err := invoker.Probe(ctx, p.Invoker, cupsctl)
	if err != nil {
		logUnavailable(cupsctl, err)
		return set
	}

	// "_share_printers=1", "WebInterface=No"; keys without a value stay undetermined
	settings := parser.NewParser(parser.WithSkipEmptyValues(true)).Map(res.Stdout)
	if v, ok := settings["_share_printers"]; ok {
		set[KeyPrinterSharing] = condition.Bool(v == "1")
	}
	if v, ok := settings["WebInterface"]; ok {
		set[KeyCUPSWebInterface] = condition.Bool(strings.EqualFold(v, "yes"))
	}
	return set
}

func (p *Processor) sip(ctx context.Context) condition.Set {
	set := condition.Set{KeySIPEnabled: unknown}
	res, err := invoker.Probe(ctx, p.Invoker, csrutil, "status")
	if err != nil {
		logUnavailable(csrutil, err)
		return set
	}
	set[KeySIPEnabled] = condition.Bool(strings.Contains(res.Stdout, sipEnabledText))
	return set
}

// systemSetupVerbs maps systemsetup getters to the boolean keys they answer.
var systemSetupVerbs = []struct {
	verb string
	key  string
}{
	{"-getusingnetworktime", KeyNTPEnabled},
	{"-getwakeonnetworkaccess", KeyWakeOnLAN},
	{"-getremotelogin", KeySSHEnabled},
	{"-getremoteappleevents", KeyRemoteAppleEvents},
}

func (p *Processor) systemSetup(ctx context.Context) condition.Set {
	set := condition.Set{
		KeyTimezone:   unknown,
		KeyNTPServers: condition.Strings(p.ntpServers()),
	}

	// "Time Zone: Europe/Berlin"
	if out := invoker.Text(ctx, p.Invoker, systemsetupTool, "-gettimezone"); out != "" {
		fields := parser.NewParser(parser.WithKVDelimiter(":"), parser.WithSkipEmptyValues(true)).Map(out)
		if tz, ok := fields[timezoneField]; ok {
			set[KeyTimezone] = condition.Str(tz)
		}
	}

	// "Remote Login: On"
	for _, v := range systemSetupVerbs {
		set[v.key] = unknown
		out := invoker.Text(ctx, p.Invoker, systemsetupTool, v.verb)
		if out == "" {
			continue
		}
		set[v.key] = condition.Bool(hasField(out, "On"))
	}
	return set
}

// ntpServers reads server lines from the NTP configuration in file order.
func (p *Processor) ntpServers() []string {
	seq := condition.NewSequence()
	lines, err := parser.NewParser().FileLines(p.NTPConfig)
	if err != nil {
		slog.Debug("ntp configuration unavailable", "path", p.NTPConfig, "error", err)
		return seq.Values()
	}
	for _, line := range lines {
		if srv, ok := parser.ValueAfterPrefix(line, "server "); ok {
			if srv = strings.TrimSpace(srv); srv != "" {
				seq.Add(srv)
			}
		}
	}
	return seq.Values()
}

func (p *Processor) rosetta(ctx context.Context) condition.Set {
	dir := p.RosettaDir
	if v, ok := processor.ProductVersion(ctx, p.Invoker); ok && !v.IsNewer(rosettaRelocated) {
		dir = p.LegacyRosettaDir
	}

	installed := true
	for _, f := range rosettaFiles {
		if _, err := os.Stat(filepath.Join(dir, f)); err != nil {
			installed = false
			break
		}
	}

	set := condition.Set{
		KeyRosettaInstalled: condition.Bool(installed),
		KeyRosettaVersion:   unknown,
	}

	res, err := invoker.Probe(ctx, p.Invoker, pkgutil, "--pkg-info-plist", rosettaPackage)
	if err != nil {
		logUnavailable(pkgutil, err)
		return set
	}
	var info struct {
		Version string `plist:"pkg-version"`
	}
	if _, err := plist.Unmarshal([]byte(res.Stdout), &info); err != nil {
		slog.Debug("rosetta package info unparseable", "error", err)
		return set
	}
	set[KeyRosettaVersion] = condition.Str(info.Version)
	return set
}

// hasField reports whether any ": "-separated field after the label equals want.
func hasField(out, want string) bool {
	fields := strings.Split(strings.TrimSpace(out), fieldSep)
	for _, f := range fields[1:] {
		if strings.TrimSpace(f) == want {
			return true
		}
	}
	return false
}

func logUnavailable(tool string, err error) {
	slog.Debug("tool unavailable", "command", tool, "code", errors.CodeOf(err), "error", err)
}
