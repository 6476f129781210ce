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
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/NVIDIA/hostcond/pkg/condition"
	"github.com/NVIDIA/hostcond/pkg/errors"
	"github.com/NVIDIA/hostcond/pkg/processor"
	"github.com/NVIDIA/hostcond/pkg/sink"
)

// Diagnostic records a module that did not complete normally.
type Diagnostic struct {
	Code    errors.ErrorCode `json:"code" yaml:"code"`
	Module  string           `json:"module" yaml:"module"`
	Message string           `json:"message" yaml:"message"`
}

// Report summarizes one dispatch run.
type Report struct {
	RunID  string `json:"runId" yaml:"runId"`
	Source Source `json:"source" yaml:"source"`

	// Ran lists modules whose conditions reached the sink.
	Ran []string `json:"ran" yaml:"ran"`

	// Skipped lists modules that produced nothing or whose write failed.
	Skipped []string `json:"skipped" yaml:"skipped"`

	Diagnostics []Diagnostic  `json:"diagnostics" yaml:"diagnostics"`
	Duration    time.Duration `json:"duration" yaml:"duration"`
}

// Count returns the number of diagnostics carrying code.
func (r *Report) Count(code errors.ErrorCode) int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Code == code {
			n++
		}
	}
	return n
}

func (r *Report) skip(module string, code errors.ErrorCode, msg string) {
	r.Skipped = append(r.Skipped, module)
	r.Diagnostics = append(r.Diagnostics, Diagnostic{Code: code, Module: module, Message: msg})
}

// Controller runs modules from a registry and hands their conditions to a sink.
type Controller struct {
	Registry *processor.Registry
	Sink     sink.Sink
}

// NewController returns a controller over reg writing to s.
func NewController(reg *processor.Registry, s sink.Sink) *Controller {
	return &Controller{Registry: reg, Sink: s}
}

// Run executes the selection sequentially and never fails.
// A cancelled context stops the run before the next module starts.
func (c *Controller) Run(ctx context.Context, sel Selection) *Report {
	start := time.Now()
	report := &Report{
		RunID:       uuid.NewString(),
		Source:      sel.Source,
		Ran:         []string{},
		Skipped:     []string{},
		Diagnostics: []Diagnostic{},
	}
	log := slog.Default().With("run_id", report.RunID)

	defer func() {
		report.Duration = time.Since(start)
		runDuration.Observe(report.Duration.Seconds())
	}()

	log.Info("dispatch starting", "modules", sel.Names, "source", sel.Source)

	for i, name := range sel.Names {
		if err := ctx.Err(); err != nil {
			code := errors.ErrCodeInternal
			if stderrors.Is(err, context.DeadlineExceeded) {
				code = errors.ErrCodeTimeout
			}
			for _, rest := range sel.Names[i:] {
				report.skip(rest, code, "run cancelled before module started")
			}
			log.Warn("dispatch cancelled", "error", err, "remaining", len(sel.Names)-i)
			break
		}
		c.dispatch(ctx, log, name, report)
	}

	log.Info("dispatch complete",
		"ran", len(report.Ran),
		"skipped", len(report.Skipped),
		"diagnostics", len(report.Diagnostics))
	return report
}

func (c *Controller) dispatch(ctx context.Context, log *slog.Logger, name string, report *Report) {
	log = log.With("module", name)
	moduleStart := time.Now()
	defer func() {
		moduleDuration.WithLabelValues(name).Observe(time.Since(moduleStart).Seconds())
	}()

	p, ok := c.lookup(name)
	if !ok {
		moduleRunsTotal.WithLabelValues(name, statusUnknown).Inc()
		log.Error("module not found", "code", errors.ErrCodeUnknownModule)
		report.skip(name, errors.ErrCodeUnknownModule, "module not found")
		return
	}
	if p == nil {
		moduleRunsTotal.WithLabelValues(name, statusContractViolation).Inc()
		log.Error("module not runnable", "code", errors.ErrCodeModuleContract)
		report.skip(name, errors.ErrCodeModuleContract, "module not runnable")
		return
	}

	log.Debug("running module")
	set, err := run(ctx, p)
	if err != nil {
		moduleRunsTotal.WithLabelValues(name, statusContractViolation).Inc()
		log.Error("module failed", "code", errors.ErrCodeModuleContract, "error", err)
		report.skip(name, errors.ErrCodeModuleContract, err.Error())
		return
	}
	moduleConditions.WithLabelValues(name).Set(float64(len(set)))

	if err := c.write(ctx, set); err != nil {
		moduleRunsTotal.WithLabelValues(name, statusSinkFailure).Inc()
		log.Error("failed to write conditions", "code", errors.ErrCodeSinkFailure, "error", err)
		report.skip(name, errors.ErrCodeSinkFailure, err.Error())
		return
	}

	moduleRunsTotal.WithLabelValues(name, statusSuccess).Inc()
	report.Ran = append(report.Ran, name)
	log.Debug("module complete", "conditions", len(set), "duration", time.Since(moduleStart))
}

func (c *Controller) lookup(name string) (processor.Processor, bool) {
	if c.Registry == nil {
		return nil, false
	}
	return c.Registry.Get(name)
}

func (c *Controller) write(ctx context.Context, set condition.Set) error {
	if c.Sink == nil {
		return errors.New(errors.ErrCodeSinkFailure, "no sink configured")
	}
	return c.Sink.Write(ctx, set)
}

// run calls p.Run and turns a panic into a contract violation.
func run(ctx context.Context, p processor.Processor) (set condition.Set, err error) {
	defer func() {
		if r := recover(); r != nil {
			set = nil
			err = errors.NewWithContext(errors.ErrCodeModuleContract,
				fmt.Sprintf("module panicked: %v", r), map[string]any{"panic": fmt.Sprint(r)})
		}
	}()

	set = p.Run(ctx)
	if set == nil {
		set = condition.Set{}
	}
	return set, nil
}
