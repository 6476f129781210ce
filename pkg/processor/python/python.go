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

// Package python reports which Python interpreters are installed, where they
// resolve to, and their versions.
package python

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/NVIDIA/hostcond/pkg/condition"
	"github.com/NVIDIA/hostcond/pkg/invoker"
	"github.com/NVIDIA/hostcond/pkg/processor"
)

// Name is the module name used for selection.
const Name = "python"

const versionPrefix = "Python "

// Interpreter is one well-known interpreter location.
type Interpreter struct {
	// Prefix names the condition keys: <Prefix>_path, <Prefix>_ver and,
	// when Symlink is set, <Prefix>_symlink.
	Prefix string
	// Paths are tried in order; the first existing one is used.
	Paths []string
	// Symlink reports the unresolved path as well.
	Symlink bool
}

// DefaultInterpreters are the interpreters reported on a managed Mac.
var DefaultInterpreters = []Interpreter{
	{Prefix: "mac_os_python", Paths: []string{"/usr/bin/python"}},
	{Prefix: "munki_python", Paths: []string{"/usr/local/munki/munki-python", "/usr/local/munki/python"}, Symlink: true},
	{Prefix: "official_python3", Paths: []string{"/usr/local/bin/python3"}, Symlink: true},
}

// Processor gathers Python interpreter conditions.
type Processor struct {
	Invoker      invoker.Invoker
	Interpreters []Interpreter
}

// New creates the python module from cfg.
func New(cfg *processor.Config) *Processor {
	return &Processor{
		Invoker:      cfg.Invoker,
		Interpreters: DefaultInterpreters,
	}
}

// Name implements processor.Processor.
func (p *Processor) Name() string { return Name }

// Run implements processor.Processor.
func (p *Processor) Run(ctx context.Context) condition.Set {
	b := condition.NewBuilder()

	for _, in := range p.Interpreters {
		path, resolved := locate(in.Paths)

		b.SetString(in.Prefix+"_path", resolved)
		if in.Symlink {
			b.SetString(in.Prefix+"_symlink", path)
		}
		ver := ""
		if resolved != "" {
			ver = p.version(ctx, resolved)
		}
		b.SetString(in.Prefix+"_ver", ver)
	}

	return b.Build()
}

// version asks the interpreter for its version. Older interpreters print it on stderr.
func (p *Processor) version(ctx context.Context, path string) string {
	res, err := p.Invoker.Invoke(ctx, []string{path, "--version"}, "")
	if err != nil || !res.Succeeded() {
		slog.Debug("python version unavailable", "path", path, "error", err)
		return ""
	}
	out := strings.TrimSpace(res.Stdout)
	if out == "" {
		out = strings.TrimSpace(res.Stderr)
	}
	return strings.TrimSpace(strings.TrimPrefix(out, versionPrefix))
}

// locate returns the first existing path and its resolved target.
func locate(paths []string) (string, string) {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		resolved, err := filepath.EvalSymlinks(path)
		if err != nil {
			slog.Debug("python path unresolvable", "path", path, "error", err)
			continue
		}
		return path, resolved
	}
	return "", ""
}
