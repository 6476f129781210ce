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

package processor

import (
	"context"
	"log/slog"

	"github.com/NVIDIA/hostcond/pkg/invoker"
	"github.com/NVIDIA/hostcond/pkg/version"
)

// swVers reports the OS product version on macOS.
const swVers = "/usr/bin/sw_vers"

// ProductVersion returns the host's OS product version. It reports false when
// the version cannot be determined.
func ProductVersion(ctx context.Context, inv invoker.Invoker) (version.Version, bool) {
	out := invoker.Text(ctx, inv, swVers, "-productVersion")
	if out == "" {
		return version.Version{}, false
	}
	v, err := version.ParseVersion(out)
	if err != nil {
		slog.Debug("unparseable product version", "output", out, "error", err)
		return version.Version{}, false
	}
	return v, true
}
