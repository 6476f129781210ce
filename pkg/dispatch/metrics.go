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

package dispatch

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusSuccess           = "success"
	statusUnknown           = "unknown"
	statusContractViolation = "contract_violation"
	statusSinkFailure       = "sink_failure"
)

var (
	moduleRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hostcond_module_runs_total",
			Help: "Total number of module dispatch attempts",
		},
		[]string{"module", "status"},
	)

	moduleDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hostcond_module_duration_seconds",
			Help:    "Time taken by individual modules, including the sink write",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60},
		},
		[]string{"module"},
	)

	moduleConditions = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "hostcond_module_conditions",
			Help: "Number of condition keys produced by the module's last run",
		},
		[]string{"module"},
	)

	runDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hostcond_run_duration_seconds",
			Help:    "Time taken by a complete dispatch run",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300},
		},
	)
)
