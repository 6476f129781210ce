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

// Package defaults provides centralized configuration constants for hostcond.
//
// This package defines tool timeouts, well-known file locations, and other
// defaults shared by the processors, the sinks, and the CLI.
//
// # Usage
//
// Import and use constants directly:
//
//	import "github.com/NVIDIA/hostcond/pkg/defaults"
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.ToolTimeout)
//	defer cancel()
//
// # Timeout Guidelines
//
//   - External tools: 30s per invocation, respects parent context deadline
//   - D-Bus queries: 10s
//   - ConfigMap writes: 30s per module write
package defaults
