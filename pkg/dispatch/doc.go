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

// Package dispatch runs the selected processor modules and forwards their
// conditions to a sink.
//
// A run is strictly sequential. For each selected name, in order:
//
//  1. Unknown names record an UNKNOWN_MODULE diagnostic and are skipped.
//  2. Registered names without a runnable handle, or whose Run panics,
//     record a MODULE_CONTRACT_VIOLATION diagnostic and are skipped.
//  3. The module's condition set is written to the sink immediately, one
//     Write per module. A failed write records a SINK_FAILURE diagnostic
//     and the run continues with the next module.
//
// No module outcome aborts the run. The returned Report lists the modules
// that ran, the modules that were skipped and every diagnostic.
//
// # Selection
//
// ResolveSelection applies the precedence rules: explicit names win
// outright, otherwise the persisted preferences decide, otherwise every
// known module runs. Known modules keep their declared order; names the
// registry does not know follow in lexical order so they still surface as
// diagnostics.
//
// # Metrics
//
//   - hostcond_module_runs_total{module,status}
//   - hostcond_module_duration_seconds{module}
//   - hostcond_module_conditions{module}
//   - hostcond_run_duration_seconds
package dispatch
