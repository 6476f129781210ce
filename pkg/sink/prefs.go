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
	"fmt"
	"log/slog"
	"os"

	"github.com/NVIDIA/hostcond/pkg/errors"
)

// ReadPreferences loads the persisted module selection from path.
// The document is a flat map of module name to bool, encoded by extension.
// A missing file returns (nil, nil).
func ReadPreferences(path string) (map[string]bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read preferences %s: %w", path, err)
	}

	doc, err := Decode(FormatFromPath(path), data)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest, "invalid preferences", err,
			map[string]any{"path": path})
	}

	prefs := make(map[string]bool, len(doc))
	for name, v := range doc {
		enabled, ok := v.(bool)
		if !ok {
			slog.Warn("ignoring non-boolean preference", "module", name, "value", v)
			continue
		}
		prefs[name] = enabled
	}
	return prefs, nil
}
