/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v3"
	"golang.org/x/time/rate"

	"github.com/NVIDIA/hostcond/pkg/defaults"
	"github.com/NVIDIA/hostcond/pkg/dispatch"
	"github.com/NVIDIA/hostcond/pkg/errors"
	"github.com/NVIDIA/hostcond/pkg/invoker"
	"github.com/NVIDIA/hostcond/pkg/processor"
	"github.com/NVIDIA/hostcond/pkg/processor/builtin"
	"github.com/NVIDIA/hostcond/pkg/sink"
)

// runConditions is the root action. Module and sink failures are logged and
// never change the exit status; only privilege and usage errors do.
func runConditions(ctx context.Context, cmd *cli.Command) error {
	if !cmd.Bool("skip-root-check") && geteuid() != 0 {
		return errors.New(errors.ErrCodeUnauthorized,
			fmt.Sprintf("%s must be run as root (use --skip-root-check to override)", name))
	}

	outFormat, err := parseOutputFormat(cmd)
	if err != nil {
		return err
	}

	dest := cmd.String("dest")
	s, err := sink.New(dest, outFormat,
		sink.WithOutput(cmd.Writer),
		sink.WithKubeconfig(cmd.String("kubeconfig")))
	if err != nil {
		return fmt.Errorf("invalid destination %q: %w", dest, err)
	}

	if cmd.Bool("purge") {
		if err := sink.Purge(dest); err != nil {
			slog.Error("failed to purge conditions", "error", err)
		}
	}

	reg := builtin.NewRegistry(newProcessorConfig(cmd))
	sel := resolveSelection(cmd, reg.Names())

	report := dispatch.NewController(reg, s).Run(ctx, sel)
	slog.Info("conditions gathered",
		"run_id", report.RunID,
		"dest", dest,
		"ran", report.Ran,
		"skipped", report.Skipped,
		"duration", report.Duration)

	if path := cmd.String("metrics-file"); path != "" {
		if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
			slog.Error("failed to write metrics file", "path", path, "error", err)
		}
	}

	return nil
}

func newProcessorConfig(cmd *cli.Command) *processor.Config {
	inv := invoker.New(
		invoker.WithTimeout(cmd.Duration("tool-timeout")),
		invoker.WithRateLimit(rate.NewLimiter(rate.Limit(defaults.SpawnRate), defaults.SpawnBurst)),
	)

	opts := []processor.Option{
		processor.WithInvoker(inv),
		processor.WithWorkers(int(cmd.Int("workers"))),
		processor.WithKeychain(cmd.String("keychain")),
		processor.WithTCCOverrides(cmd.String("tcc-overrides")),
		processor.WithNTPConfig(cmd.String("ntp-config")),
	}
	if units := cmd.StringSlice("systemd-unit"); len(units) > 0 {
		opts = append(opts, processor.WithSystemDUnits(units))
	}
	return processor.NewConfig(opts...)
}

// resolveSelection reads the preferences file only when no module was named.
// An unreadable preferences file falls back to running every module.
func resolveSelection(cmd *cli.Command, known []string) dispatch.Selection {
	explicit := explicitSelection(cmd)

	var prefs map[string]bool
	if len(explicit) == 0 {
		path := cmd.String("prefs")
		p, err := sink.ReadPreferences(path)
		if err != nil {
			slog.Warn("ignoring preferences", "path", path, "error", err)
		} else {
			prefs = p
		}
	}

	return dispatch.ResolveSelection(explicit, prefs, known)
}
