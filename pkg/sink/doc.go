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

// Package sink persists condition sets produced by processor runs.
//
// Every module run hands its condition.Set to a Sink exactly once. The
// destination decides how that set is stored:
//
//   - A file path merges the set into an existing conditions document and
//     rewrites it atomically. The encoding follows the file extension:
//     .plist (default), .json, .yaml or .yml.
//   - "-" prints each set to stdout as JSON, YAML or a table.
//   - cm://namespace/name merges the set into the conditions.yaml key of a
//     Kubernetes ConfigMap.
//
// Keys written by a module overwrite keys of the same name already present;
// all other keys in the document are preserved.
//
// # Usage
//
//	s, err := sink.New(dest, sink.FormatFromPath(dest))
//	if err != nil {
//	    return err
//	}
//	if err := s.Write(ctx, set); err != nil {
//	    slog.Warn("sink write failed", "error", err)
//	}
//
// Purge removes an existing conditions file before a run. ReadPreferences
// loads the persisted default module selection using the same decoders.
package sink
