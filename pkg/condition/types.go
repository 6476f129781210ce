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

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Value is a runtime interface so a Set can hold mixed value shapes.
type Value interface {
	isValue()
	// Any returns the plain Go value: string, bool, or []string.
	Any() any
	String() string

	json.Marshaler
}

// AllowedScalar is the compile-time constraint for scalar conditions.
type AllowedScalar interface {
	~bool | ~string
}

// Scalar wraps an allowed scalar type.
type Scalar[T AllowedScalar] struct {
	V T
}

func (Scalar[T]) isValue() {}

// Any returns the underlying scalar.
func (s Scalar[T]) Any() any { return s.V }

// String returns the string representation of the underlying scalar value.
func (s Scalar[T]) String() string {
	return fmt.Sprintf("%v", s.V)
}

// MarshalJSON makes the JSON value be the underlying scalar (not an object wrapper).
func (s Scalar[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.V)
}

// MarshalYAML makes the YAML value be the underlying scalar (not an object wrapper).
func (s Scalar[T]) MarshalYAML() (any, error) {
	return s.V, nil
}

// List is an ordered sequence of strings.
type List []string

func (List) isValue() {}

// Any returns the sequence as a non-nil []string.
func (l List) Any() any {
	if l == nil {
		return []string{}
	}
	return []string(l)
}

// String joins the sequence with ", ".
func (l List) String() string {
	return strings.Join(l, ", ")
}

// MarshalJSON renders an empty list as [] rather than null.
func (l List) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.Any())
}

// MarshalYAML renders the list as a plain sequence.
func (l List) MarshalYAML() (any, error) {
	return l.Any(), nil
}

// Str returns a string condition.
func Str(v string) Value { return Scalar[string]{V: v} }

// Bool returns a boolean condition.
func Bool(v bool) Value { return Scalar[bool]{V: v} }

// Strings returns a sequence condition. The slice is copied.
func Strings(v []string) Value {
	out := make(List, len(v))
	copy(out, v)
	return out
}

// Set is the mapping produced by one module run.
type Set map[string]Value

// Merge copies every entry of other into s. Keys in other win.
func (s Set) Merge(other Set) {
	for k, v := range other {
		s[k] = v
	}
}

// Keys returns the keys of s in lexical order.
func (s Set) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the value for key, or nil.
func (s Set) Get(key string) Value {
	return s[key]
}

// Strings returns the sequence stored under key.
// It returns nil when the key is absent or does not hold a sequence.
func (s Set) Strings(key string) []string {
	l, ok := s[key].(List)
	if !ok {
		return nil
	}
	return l.Any().([]string)
}

// Raw flattens s into plain Go values for encoders.
func (s Set) Raw() map[string]any {
	out := make(map[string]any, len(s))
	for k, v := range s {
		if v == nil {
			continue
		}
		out[k] = v.Any()
	}
	return out
}
