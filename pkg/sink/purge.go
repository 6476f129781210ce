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

package sink

import (
	"log/slog"
	"os"
	"strings"

	"github.com/NVIDIA/hostcond/pkg/defaults"
	"github.com/NVIDIA/hostcond/pkg/errors"
)

// Purge removes the conditions file at dest. A missing file is not an error.
// Stdout and ConfigMap destinations hold no file and are left alone.
func Purge(dest string) error {
	dest = strings.TrimSpace(dest)
	if dest == StdoutDestination || strings.HasPrefix(dest, ConfigMapURIScheme) {
		slog.Debug("purge skipped for non-file destination", "dest", dest)
		return nil
	}
	if dest == "" {
		dest = defaults.ConditionsFile
	}

	if err := os.Remove(dest); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.WrapWithContext(errors.ErrCodeSinkFailure, "failed to purge conditions file", err,
			map[string]any{"path": dest})
	}

	slog.Info("removed conditions file", "path", dest)
	return nil
}
