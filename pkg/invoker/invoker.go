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

package invoker

import (
	"bytes"
	"context"
	stderrors "errors"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/time/rate"
	utilexec "k8s.io/utils/exec"

	"github.com/NVIDIA/hostcond/pkg/errors"
)

// Result is the outcome of one tool invocation.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Succeeded reports whether the tool exited with status zero.
func (r *Result) Succeeded() bool {
	return r != nil && r.ExitCode == 0
}

// Invoker runs an external command and captures its outcome.
type Invoker interface {
	// Invoke runs args[0] with args[1:] and feeds stdin when non-empty.
	Invoke(ctx context.Context, args []string, stdin string) (*Result, error)
}

// Exec is the production Invoker.
type Exec struct {
	execer  utilexec.Interface
	timeout time.Duration
	limiter *rate.Limiter
}

// Option is a functional option for configuring Exec.
type Option func(*Exec)

// WithTimeout bounds every invocation. Zero or negative disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(e *Exec) {
		e.timeout = d
	}
}

// WithRateLimit throttles process spawns through l.
func WithRateLimit(l *rate.Limiter) Option {
	return func(e *Exec) {
		e.limiter = l
	}
}

// WithExecer replaces the process backend.
func WithExecer(ex utilexec.Interface) Option {
	return func(e *Exec) {
		e.execer = ex
	}
}

// New returns an Exec backed by the operating system.
func New(opts ...Option) *Exec {
	e := &Exec{
		execer: utilexec.New(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Invoke implements Invoker.
func (e *Exec) Invoke(ctx context.Context, args []string, stdin string) (*Result, error) {
	if len(args) == 0 || args[0] == "" {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "no command given")
	}

	if e.limiter != nil {
		if err := e.limiter.Wait(ctx); err != nil {
			return nil, errors.WrapWithContext(errors.ErrCodeTimeout, "spawn limiter wait aborted", err,
				map[string]any{"command": args[0]})
		}
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := e.execer.CommandContext(ctx, args[0], args[1:]...)
	if stdin != "" {
		cmd.SetStdin(strings.NewReader(stdin))
	}
	cmd.SetStdout(&stdout)
	cmd.SetStderr(&stderr)

	start := time.Now()
	runErr := cmd.Run()
	slog.Debug("tool invoked",
		"command", args[0],
		"args", len(args)-1,
		"duration", time.Since(start))

	// The context check comes first: a killed process also reports an exit error.
	if ctxErr := ctx.Err(); ctxErr != nil {
		code := errors.ErrCodeTimeout
		if stderrors.Is(ctxErr, context.Canceled) {
			code = errors.ErrCodeProbeUnavailable
		}
		return nil, errors.WrapWithContext(code, "tool did not complete", ctxErr,
			map[string]any{"command": args[0], "timeout": e.timeout.String()})
	}

	res := &Result{
		Stdout: decode(stdout.Bytes()),
		Stderr: decode(stderr.Bytes()),
	}

	if runErr != nil {
		var exitErr utilexec.ExitError
		if stderrors.As(runErr, &exitErr) {
			res.ExitCode = exitErr.ExitStatus()
			return res, nil
		}
		return nil, errors.WrapWithContext(errors.ErrCodeProbeUnavailable, "failed to start tool", runErr,
			map[string]any{"command": args[0]})
	}

	return res, nil
}

// decode converts raw tool output into text.
func decode(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	out, err := unicode.UTF8BOM.NewDecoder().Bytes(b)
	if err != nil {
		return strings.ToValidUTF8(string(b), "\uFFFD")
	}
	return string(out)
}
