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

package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/hostcond/pkg/errors"
	"github.com/NVIDIA/hostcond/pkg/sink"
)

func withEUID(t *testing.T, uid int) {
	t.Helper()
	orig := geteuid
	geteuid = func() int { return uid }
	t.Cleanup(func() { geteuid = orig })
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		name       string
		format     string
		wantFormat sink.Format
		wantErr    bool
	}{
		{name: "empty format", format: "", wantFormat: ""},
		{name: "plist", format: "plist", wantFormat: sink.FormatPlist},
		{name: "json", format: "json", wantFormat: sink.FormatJSON},
		{name: "yaml upper case", format: "YAML", wantFormat: sink.FormatYAML},
		{name: "table", format: "table", wantFormat: sink.FormatTable},
		{name: "invalid format xml", format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cli.Command{
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "format",
						Value: tt.format,
					},
				},
				Action: func(_ context.Context, c *cli.Command) error {
					got, err := parseOutputFormat(c)
					if tt.wantErr {
						assert.Error(t, err)
						return nil
					}
					assert.NoError(t, err)
					assert.Equal(t, tt.wantFormat, got)
					return nil
				},
			}

			require.NoError(t, cmd.Run(context.Background(), []string{"test"}))
		})
	}
}

func TestExplicitSelection(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "no selection",
			args: []string{"test"},
			want: nil,
		},
		{
			name: "module flags in flag order",
			args: []string{"test", "--systemd", "--certificates"},
			want: []string{"certificates", "systemd"},
		},
		{
			name: "legacy alias",
			args: []string{"test", "--user-accts"},
			want: []string{"user_accounts"},
		},
		{
			name: "flags plus names",
			args: []string{"test", "--pppcp", "--module", "bogus_module", "-m", "python"},
			want: []string{"pppcp", "bogus_module", "python"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			cmd := &cli.Command{
				Flags: rootFlags(),
				Action: func(_ context.Context, c *cli.Command) error {
					got = explicitSelection(c)
					return nil
				},
			}
			require.NoError(t, cmd.Run(context.Background(), tt.args))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRootRequiresPrivilege(t *testing.T) {
	withEUID(t, 501)

	err := newRootCmd().Run(context.Background(), []string{name, "--dest", "-"})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeUnauthorized, errors.CodeOf(err))
}

func TestRootInvalidUsage(t *testing.T) {
	withEUID(t, 0)

	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown format", args: []string{name, "--format", "xml", "--dest", "-"}},
		{name: "bad configmap uri", args: []string{name, "--dest", "cm://only-namespace"}},
		{name: "table to file", args: []string{name, "--format", "table", "--dest", "/tmp/c.plist"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, newRootCmd().Run(context.Background(), tt.args))
		})
	}
}

func TestRootUnknownModuleStillSucceeds(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "conditions.json")
	metrics := filepath.Join(dir, "hostcond.prom")

	err := newRootCmd().Run(context.Background(), []string{
		name,
		"--skip-root-check",
		"--module", "bogus_module",
		"--dest", dest,
		"--metrics-file", metrics,
	})
	require.NoError(t, err)

	_, statErr := os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr), "no module ran, so nothing is written")

	data, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(data), `hostcond_module_runs_total{module="bogus_module",status="unknown"}`)
}

func TestRootPurge(t *testing.T) {
	withEUID(t, 0)

	dir := t.TempDir()
	dest := filepath.Join(dir, "ConditionalItems.plist")
	require.NoError(t, os.WriteFile(dest, []byte("stale"), 0o644))

	err := newRootCmd().Run(context.Background(), []string{
		name, "--purge", "--module", "bogus_module", "--dest", dest,
	})
	require.NoError(t, err)

	_, statErr := os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr))
}

func TestModulesCommand(t *testing.T) {
	var buf bytes.Buffer
	cmd := newRootCmd()
	cmd.Writer = &buf

	require.NoError(t, cmd.Run(context.Background(), []string{name, "modules"}))

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 8)
	assert.True(t, strings.HasPrefix(lines[2], "certificates"))
	assert.Contains(t, out, "--user-accounts")
	assert.Contains(t, out, "--system-setup")
}
