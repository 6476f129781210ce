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

package defaults

import "time"

// External tool timeouts.
const (
	// ToolTimeout bounds a single external tool invocation.
	// Zero disables the bound and is accepted from the CLI.
	ToolTimeout = 30 * time.Second

	// DBusTimeout bounds a systemd D-Bus query.
	DBusTimeout = 10 * time.Second
)

// Kubernetes timeouts for K8s API operations.
const (
	// ConfigMapWriteTimeout bounds a single get-and-update of the conditions ConfigMap.
	ConfigMapWriteTimeout = 30 * time.Second
)

// Concurrency defaults.
const (
	// InspectionWorkers is the default number of concurrent certificate
	// inspections. One keeps inspection strictly sequential.
	InspectionWorkers = 1

	// SpawnRate is the sustained rate of external process spawns per second.
	SpawnRate = 20

	// SpawnBurst is the burst size of the process spawn limiter.
	SpawnBurst = 4
)
