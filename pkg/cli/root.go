/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/hostcond/pkg/logging"
)

const (
	name           = "hostcond"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// geteuid is swapped in tests.
var geteuid = os.Geteuid

// Execute runs the root command with the process arguments.
// This is called by main.main().
func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle SIGINT/SIGTERM for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nReceived interrupt signal, shutting down gracefully...")
		cancel()
	}()

	if err := newRootCmd().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cli.Command {
	return &cli.Command{
		Name:                  name,
		EnableShellCompletion: true,
		Usage:                 "Gather host conditions for the deployment policy engine",
		Version:               fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		Description: `Run condition modules and merge their facts into the conditions file
consumed by the deployment policy engine.

Module selection:
  - Any module flag or --module value selects exactly those modules.
  - Otherwise the preferences file (--prefs) selects modules mapped to true.
  - Otherwise every module runs.

Destinations:
  - a file path (.plist, .json, .yaml) is merged in place
  - "-" prints each module's conditions to stdout
  - cm://namespace/name merges into a Kubernetes ConfigMap

# Examples

Run everything into the default conditions file:
  hostcond

Only certificates and user accounts, printed as a table:
  hostcond --certificates --user-accounts --dest - --format table

Publish to a ConfigMap:
  hostcond --dest cm://fleet/node-conditions`,
		Flags:    rootFlags(),
		Before:   initLogger,
		Action:   runConditions,
		Commands: []*cli.Command{modulesCmd()},
	}
}

// initLogger configures slog after flags are parsed so --log-level takes
// effect before any command executes.
func initLogger(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	logLevel := cmd.String("log-level")
	logging.SetDefaultStructuredLoggerWithLevel(name, version, logLevel)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
		"logLevel", logLevel)
	return ctx, nil
}
