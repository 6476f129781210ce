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

package certificates

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/NVIDIA/hostcond/pkg/condition"
	"github.com/NVIDIA/hostcond/pkg/errors"
	"github.com/NVIDIA/hostcond/pkg/invoker"
	"github.com/NVIDIA/hostcond/pkg/processor"
)

// Name is the module name used for selection.
const Name = "certificates"

const listTool = "/usr/bin/security"

// Processor walks a keychain and reports its certificates.
type Processor struct {
	Invoker  invoker.Invoker
	Keychain string
	Workers  int
}

// New creates the certificates module from cfg.
func New(cfg *processor.Config) *Processor {
	return &Processor{
		Invoker:  cfg.Invoker,
		Keychain: cfg.Keychain,
		Workers:  cfg.Workers,
	}
}

// Name implements processor.Processor.
func (p *Processor) Name() string { return Name }

// Run implements processor.Processor.
func (p *Processor) Run(ctx context.Context) condition.Set {
	return p.Collect(ctx).Conditions()
}

// Collect lists the keychain and inspects every certificate found.
func (p *Processor) Collect(ctx context.Context) *Inventory {
	t := newTables()

	args := []string{listTool, "find-certificate", "-a", "-p", "-Z", p.Keychain}
	res, err := invoker.Probe(ctx, p.Invoker, args...)
	if err != nil {
		slog.Warn("certificate store listing unavailable",
			"keychain", p.Keychain,
			"code", errors.CodeOf(err),
			"error", err)
		return t.inventory()
	}

	records := splitRecords(res.Stdout)
	certificateRecords.Set(float64(len(records)))

	start := time.Now()
	metas := p.inspectAll(ctx, records)
	slog.Debug("certificate inspection complete",
		"records", len(records),
		"workers", p.workers(),
		"duration", time.Since(start))

	for i, rec := range records {
		t.add(rec, metas[i])
	}
	return t.inventory()
}

func (p *Processor) workers() int {
	if p.Workers < 1 {
		return 1
	}
	return p.Workers
}

// inspectAll inspects every PEM-bearing record through a bounded pool.
// The result slice is indexed like records; entries without PEM stay nil.
func (p *Processor) inspectAll(ctx context.Context, records []Record) []*Metadata {
	metas := make([]*Metadata, len(records))

	var g errgroup.Group
	g.SetLimit(p.workers())

	for i, rec := range records {
		if !rec.HasPEM() {
			continue
		}
		g.Go(func() error {
			m, result := inspect(ctx, p.Invoker, rec)
			certificateInspectionsTotal.WithLabelValues(result).Inc()
			if result != resultUnavailable && result != resultTimeout {
				metas[i] = &m
			}
			return nil
		})
	}

	// Inspections never return errors; a failed one leaves its slot nil.
	_ = g.Wait()
	return metas
}
