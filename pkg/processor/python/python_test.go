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

package python

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/hostcond/pkg/invoker/invokertest"
	"github.com/NVIDIA/hostcond/pkg/processor"
)

func TestRun(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "Python.framework", "python3.11")
	require.NoError(t, os.MkdirAll(filepath.Dir(target), 0o755))
	require.NoError(t, os.WriteFile(target, []byte("#!/bin/sh\n"), 0o755))
	link := filepath.Join(dir, "munki-python")
	require.NoError(t, os.Symlink(target, link))

	legacy := filepath.Join(dir, "python2")
	require.NoError(t, os.WriteFile(legacy, []byte("#!/bin/sh\n"), 0o755))

	realTarget, err := filepath.EvalSymlinks(target)
	require.NoError(t, err)
	realLegacy, err := filepath.EvalSymlinks(legacy)
	require.NoError(t, err)

	fake := invokertest.New().
		Stdout(realTarget+" --version", "Python 3.11.4\n").
		Stderr(realLegacy+" --version", "Python 2.7.16\n")

	p := New(processor.NewConfig(processor.WithInvoker(fake)))
	p.Interpreters = []Interpreter{
		{Prefix: "mac_os_python", Paths: []string{legacy}},
		{Prefix: "munki_python", Paths: []string{filepath.Join(dir, "missing"), link}, Symlink: true},
		{Prefix: "official_python3", Paths: []string{filepath.Join(dir, "absent")}, Symlink: true},
	}

	set := p.Run(context.Background())
	raw := set.Raw()

	assert.Equal(t, realLegacy, raw["mac_os_python_path"])
	assert.Equal(t, "2.7.16", raw["mac_os_python_ver"])
	assert.NotContains(t, raw, "mac_os_python_symlink")

	assert.Equal(t, realTarget, raw["munki_python_path"])
	assert.Equal(t, link, raw["munki_python_symlink"])
	assert.Equal(t, "3.11.4", raw["munki_python_ver"])

	assert.Equal(t, "", raw["official_python3_path"])
	assert.Equal(t, "", raw["official_python3_symlink"])
	assert.Equal(t, "", raw["official_python3_ver"])
}

func TestRunVersionFailure(t *testing.T) {
	dir := t.TempDir()
	bin := filepath.Join(dir, "python3")
	require.NoError(t, os.WriteFile(bin, []byte("#!/bin/sh\n"), 0o755))
	resolved, err := filepath.EvalSymlinks(bin)
	require.NoError(t, err)

	fake := invokertest.New().Exit(resolved+" --version", 1)
	p := &Processor{
		Invoker:      fake,
		Interpreters: []Interpreter{{Prefix: "official_python3", Paths: []string{bin}}},
	}

	raw := p.Run(context.Background()).Raw()
	assert.Equal(t, resolved, raw["official_python3_path"])
	assert.Equal(t, "", raw["official_python3_ver"])
}

func TestDefaults(t *testing.T) {
	p := New(processor.NewConfig(processor.WithInvoker(invokertest.New())))
	assert.Equal(t, "python", p.Name())
	assert.Len(t, p.Interpreters, 3)
}
