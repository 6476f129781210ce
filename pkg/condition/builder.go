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

package condition

// Builder provides a fluent API for building Set instances.
type Builder struct {
	data Set
}

// NewBuilder creates a new, empty Builder.
func NewBuilder() *Builder {
	return &Builder{data: make(Set)}
}

// Set adds or updates a key-value pair.
func (b *Builder) Set(key string, value Value) *Builder {
	b.data[key] = value
	return b
}

// SetString is a convenience method for adding string values.
func (b *Builder) SetString(key, value string) *Builder {
	b.data[key] = Str(value)
	return b
}

// SetBool is a convenience method for adding bool values.
func (b *Builder) SetBool(key string, value bool) *Builder {
	b.data[key] = Bool(value)
	return b
}

// SetStrings is a convenience method for adding sequence values.
func (b *Builder) SetStrings(key string, value []string) *Builder {
	b.data[key] = Strings(value)
	return b
}

// Build returns the assembled Set.
func (b *Builder) Build() Set {
	return b.data
}
