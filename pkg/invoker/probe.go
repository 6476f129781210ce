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
	"context"
	"strings"

	"github.com/NVIDIA/hostcond/pkg/errors"
)

// Probe runs args and returns the result only when the tool exited zero and
// printed something on stdout. Both failure shapes are reported as
// ErrCodeProbeUnavailable; invocation errors are passed through.
func Probe(ctx context.Context, inv Invoker, args ...string) (*Result, error) {
	res, err := inv.Invoke(ctx, args, "")
	if err != nil {
		return nil, err
	}
	if err := Check(res, args); err != nil {
		return nil, err
	}
	return res, nil
}

// Check classifies a finished invocation. Non-zero exit and empty stdout are
// the same failure.
func Check(res *Result, args []string) error {
	name := ""
	if len(args) > 0 {
		name = args[0]
	}
	if res == nil || !res.Succeeded() {
		code := -1
		if res != nil {
			code = res.ExitCode
		}
		return errors.NewWithContext(errors.ErrCodeProbeUnavailable, "tool exited non-zero",
			map[string]any{"command": name, "exit_code": code})
	}
	if strings.TrimSpace(res.Stdout) == "" {
		return errors.NewWithContext(errors.ErrCodeProbeUnavailable, "tool produced no output",
			map[string]any{"command": name})
	}
	return nil
}

// Text runs args and returns trimmed stdout, or "" when the probe is
// unavailable for any reason.
func Text(ctx context.Context, inv Invoker, args ...string) string {
	res, err := Probe(ctx, inv, args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(res.Stdout)
}
