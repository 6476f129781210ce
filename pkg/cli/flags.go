/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/hostcond/pkg/defaults"
	"github.com/NVIDIA/hostcond/pkg/processor/certificates"
	"github.com/NVIDIA/hostcond/pkg/processor/pppcp"
	"github.com/NVIDIA/hostcond/pkg/processor/python"
	"github.com/NVIDIA/hostcond/pkg/processor/systemd"
	"github.com/NVIDIA/hostcond/pkg/processor/systemsetup"
	"github.com/NVIDIA/hostcond/pkg/processor/useraccounts"
	"github.com/NVIDIA/hostcond/pkg/sink"
)

const moduleCategory = "Modules"

// moduleFlag binds a boolean selection flag to a module name.
type moduleFlag struct {
	module  string
	flag    string
	aliases []string
	usage   string
}

var moduleFlags = []moduleFlag{
	{certificates.Name, "certificates", nil, "process certificate conditions from the system keychain"},
	{useraccounts.Name, "user-accounts", []string{"user-accts"}, "process user account conditions"},
	{pppcp.Name, "pppcp", nil, "process privacy preference (TCC) override conditions"},
	{python.Name, "python", nil, "process python interpreter conditions"},
	{systemsetup.Name, "system-setup", nil, "process system setup conditions"},
	{systemd.Name, "systemd", nil, "process systemd unit conditions"},
}

func rootFlags() []cli.Flag {
	flags := make([]cli.Flag, 0, len(moduleFlags)+16)
	for _, m := range moduleFlags {
		flags = append(flags, &cli.BoolFlag{
			Name:     m.flag,
			Aliases:  m.aliases,
			Usage:    m.usage,
			Category: moduleCategory,
		})
	}

	return append(flags,
		&cli.StringSliceFlag{
			Name:     "module",
			Aliases:  []string{"m"},
			Usage:    "Run a module by name (can be repeated)",
			Category: moduleCategory,
		},
		&cli.StringFlag{
			Name:    "prefs",
			Usage:   "Preferences file holding the default module selection",
			Sources: cli.EnvVars("HOSTCOND_PREFS"),
			Value:   defaults.PreferencesFile,
		},
		&cli.BoolFlag{
			Name:  "purge",
			Usage: "Remove the existing conditions file before running",
		},
		&cli.StringFlag{
			Name:    "dest",
			Aliases: []string{"o"},
			Usage:   "Conditions destination: file path, - for stdout, or cm://namespace/name",
			Sources: cli.EnvVars("HOSTCOND_DEST"),
			Value:   defaults.ConditionsFile,
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"t"},
			Usage: fmt.Sprintf("Output format (%s); empty picks one from the destination",
				strings.Join(sink.SupportedFormats(), ", ")),
			Sources: cli.EnvVars("HOSTCOND_FORMAT"),
		},
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "Log level: debug, info, warn, error (default: $LOG_LEVEL or info)",
			Sources: cli.EnvVars("HOSTCOND_LOG_LEVEL"),
		},
		&cli.DurationFlag{
			Name:    "tool-timeout",
			Usage:   "Bound on each external tool invocation (0 disables)",
			Sources: cli.EnvVars("HOSTCOND_TOOL_TIMEOUT"),
			Value:   defaults.ToolTimeout,
		},
		&cli.IntFlag{
			Name:    "workers",
			Usage:   "Concurrent certificate inspections",
			Sources: cli.EnvVars("HOSTCOND_WORKERS"),
			Value:   defaults.InspectionWorkers,
		},
		&cli.StringFlag{
			Name:  "keychain",
			Usage: "Keychain listed by the certificates module",
			Value: defaults.SystemKeychain,
		},
		&cli.StringFlag{
			Name:  "tcc-overrides",
			Usage: "MDM privacy preference overrides read by the pppcp module",
			Value: defaults.TCCOverridesFile,
		},
		&cli.StringFlag{
			Name:  "ntp-config",
			Usage: "NTP configuration read by the system-setup module",
			Value: defaults.NTPConfigFile,
		},
		&cli.StringSliceFlag{
			Name:  "systemd-unit",
			Usage: "Unit queried by the systemd module (can be repeated)",
		},
		&cli.StringFlag{
			Name:    "metrics-file",
			Usage:   "Write Prometheus metrics in textfile format to this path",
			Sources: cli.EnvVars("HOSTCOND_METRICS_FILE"),
		},
		&cli.StringFlag{
			Name:    "kubeconfig",
			Usage:   "Kubeconfig used for cm:// destinations",
			Sources: cli.EnvVars("HOSTCOND_KUBECONFIG"),
		},
		&cli.BoolFlag{
			Name:    "skip-root-check",
			Usage:   "Run without root privileges",
			Sources: cli.EnvVars("HOSTCOND_SKIP_ROOT_CHECK"),
		},
	)
}

// parseOutputFormat returns the --format value. Empty means "derive from
// the destination".
func parseOutputFormat(cmd *cli.Command) (sink.Format, error) {
	f := sink.Format(strings.ToLower(strings.TrimSpace(cmd.String("format"))))
	if f == "" {
		return "", nil
	}
	if f.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q", f)
	}
	return f, nil
}

// explicitSelection collects module flags and --module values.
func explicitSelection(cmd *cli.Command) []string {
	var names []string
	for _, m := range moduleFlags {
		if cmd.Bool(m.flag) {
			names = append(names, m.module)
		}
	}
	for _, n := range cmd.StringSlice("module") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	return names
}
