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

	"github.com/NVIDIA/hostcond/pkg/condition"
)

// Processor gathers one module's conditions.
type Processor interface {
	// Name returns the stable module name used for selection.
	Name() string
	// Run returns the module's facts. It never returns an error; failures
	// degrade to partial or empty facts.
	Run(ctx context.Context) condition.Set
}

// Func adapts a function into a Processor.
type Func struct {
	ID string
	Fn func(ctx context.Context) condition.Set
}

// Name implements Processor.
func (f Func) Name() string { return f.ID }

// Run implements Processor.
func (f Func) Run(ctx context.Context) condition.Set {
	return f.Fn(ctx)
}
