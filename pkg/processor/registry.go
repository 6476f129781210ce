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
	"fmt"
	"sync"
)

// Registry maps module names to processors and remembers registration order.
type Registry struct {
	mu      sync.RWMutex
	order   []string
	entries map[string]Processor
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]Processor),
	}
}

// Register adds p under name. Registering a name twice is an error.
// A nil p reserves the name without a runnable module.
func (r *Registry) Register(name string, p Processor) error {
	if name == "" {
		return fmt.Errorf("module name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[name]; exists {
		return fmt.Errorf("module %s already registered", name)
	}

	r.entries[name] = p
	r.order = append(r.order, name)
	return nil
}

// MustRegister is a convenience function that panics on registration error.
func (r *Registry) MustRegister(name string, p Processor) {
	if err := r.Register(name, p); err != nil {
		panic(err)
	}
}

// Get returns the processor registered under name. The bool reports whether
// the name is registered at all; the processor may still be nil.
func (r *Registry) Get(name string) (Processor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.entries[name]
	return p, ok
}

// Names returns registered names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Count returns the number of registered names.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
