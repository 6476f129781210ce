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

// Package invokertest provides a scripted invoker.Invoker for tests.
package invokertest

import (
	"context"
	"strings"
	"sync"

	"github.com/NVIDIA/hostcond/pkg/errors"
	"github.com/NVIDIA/hostcond/pkg/invoker"
)

// Call records one invocation.
type Call struct {
	Args  []string
	Stdin string
}

// HandlerFunc answers invocations the static script does not cover.
// Returning a nil result and a nil error falls through to "executable not found".
type HandlerFunc func(args []string, stdin string) (*invoker.Result, error)

type response struct {
	res *invoker.Result
	err error
}

// Fake is a scripted Invoker keyed by the space-joined command line.
// It is safe for concurrent use.
type Fake struct {
	mu        sync.Mutex
	responses map[string]response
	handler   HandlerFunc
	calls     []Call
}

// New returns an empty Fake. Unscripted commands fail as unavailable.
func New() *Fake {
	return &Fake{responses: make(map[string]response)}
}

// Stdout scripts a successful invocation printing out.
func (f *Fake) Stdout(cmdline, out string) *Fake {
	return f.Result(cmdline, &invoker.Result{Stdout: out})
}

// Stderr scripts a successful invocation printing only to stderr.
func (f *Fake) Stderr(cmdline, out string) *Fake {
	return f.Result(cmdline, &invoker.Result{Stderr: out})
}

// Exit scripts a non-zero exit.
func (f *Fake) Exit(cmdline string, code int) *Fake {
	return f.Result(cmdline, &invoker.Result{ExitCode: code})
}

// Result scripts an arbitrary result.
func (f *Fake) Result(cmdline string, res *invoker.Result) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[cmdline] = response{res: res}
	return f
}

// Error scripts an invocation error.
func (f *Fake) Error(cmdline string, err error) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[cmdline] = response{err: err}
	return f
}

// Handle installs a fallback for commands without a scripted response.
func (f *Fake) Handle(h HandlerFunc) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handler = h
	return f
}

// Calls returns the recorded invocations in call order.
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

// CallCount returns how many invocations started with prefix.
func (f *Fake) CallCount(prefix string) int {
	n := 0
	for _, c := range f.Calls() {
		if strings.HasPrefix(strings.Join(c.Args, " "), prefix) {
			n++
		}
	}
	return n
}

// Invoke implements invoker.Invoker.
func (f *Fake) Invoke(ctx context.Context, args []string, stdin string) (*invoker.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeTimeout, "tool did not complete", err)
	}

	f.mu.Lock()
	f.calls = append(f.calls, Call{Args: append([]string(nil), args...), Stdin: stdin})
	resp, ok := f.responses[strings.Join(args, " ")]
	h := f.handler
	f.mu.Unlock()

	if ok {
		if resp.err != nil {
			return nil, resp.err
		}
		cp := *resp.res
		return &cp, nil
	}
	if h != nil {
		if res, err := h(args, stdin); res != nil || err != nil {
			return res, err
		}
	}
	return nil, errors.NewWithContext(errors.ErrCodeProbeUnavailable, "executable file not found",
		map[string]any{"command": strings.Join(args, " ")})
}
